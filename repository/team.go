/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package repository

import (
	"context"

	"github.com/tomoncle/memberdata/audit"
	"github.com/tomoncle/memberdata/entity"
	"github.com/tomoncle/memberdata/store"
	"github.com/tomoncle/memberdata/types"
)

type teamRepositoryImpl struct {
	*baseRepositoryImpl[entity.Team, *entity.Team]
}

// NewTeamRepository returns the team facade. A team that still has members
// cannot be deleted.
func NewTeamRepository(teams *store.Store[*entity.Team], stamper *audit.Stamper) TeamRepository {
	r := &teamRepositoryImpl{baseRepositoryImpl: newBaseRepository[entity.Team](teams, stamper)}
	r.beforeDelete = func(_ context.Context, t *entity.Team) error {
		if n := t.MemberCount(); n > 0 {
			return types.Violation("team %d still has %d members", t.ID(), n)
		}
		return nil
	}
	return r
}

func (r *teamRepositoryImpl) FindByName(name string) []*entity.Team {
	out := make([]*entity.Team, 0)
	for _, t := range r.store.All() {
		if t.Name() == name {
			out = append(out, t)
		}
	}
	return out
}
