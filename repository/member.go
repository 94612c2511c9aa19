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

	"github.com/sirupsen/logrus"

	"github.com/tomoncle/memberdata/audit"
	"github.com/tomoncle/memberdata/entity"
	"github.com/tomoncle/memberdata/query"
	"github.com/tomoncle/memberdata/store"
	"github.com/tomoncle/memberdata/types"
)

type memberRepositoryImpl struct {
	*baseRepositoryImpl[entity.Member, *entity.Member]
	teams  *store.Store[*entity.Team]
	linker *entity.Linker
	query  *query.MemberQuery
}

// NewMemberRepository returns the member facade over the given stores.
func NewMemberRepository(members *store.Store[*entity.Member], teams *store.Store[*entity.Team], stamper *audit.Stamper, linker *entity.Linker) MemberRepository {
	if linker == nil {
		linker = entity.NewLinker(teams)
	}
	r := &memberRepositoryImpl{
		baseRepositoryImpl: newBaseRepository[entity.Member](members, stamper),
		teams:              teams,
		linker:             linker,
		query:              query.NewMemberQuery(members, teams),
	}
	r.beforeDelete = func(_ context.Context, m *entity.Member) error {
		return r.linker.Unlink(m)
	}
	return r
}

func (r *memberRepositoryImpl) FindByUsernameAndAgeGreaterThan(username string, minAge int) []*entity.Member {
	return r.query.FindByUsernameAndAgeGreaterThan(username, minAge)
}

func (r *memberRepositoryImpl) FindUser(username string, age int) []*entity.Member {
	return r.query.FindUser(username, age)
}

func (r *memberRepositoryImpl) FindUsernameList() []string {
	return r.query.FindUsernameList()
}

func (r *memberRepositoryImpl) FindByNames(names []string) []*entity.Member {
	return r.query.FindByNames(names)
}

func (r *memberRepositoryImpl) FindByAge(age int, req *types.PageRequest) (*types.Page[entity.Member], error) {
	return r.query.FindByAge(age, req)
}

func (r *memberRepositoryImpl) FindSliceByAge(age int, req *types.PageRequest) (*types.Slice[entity.Member], error) {
	return r.query.FindSliceByAge(age, req)
}

func (r *memberRepositoryImpl) FindMemberDto() ([]entity.MemberDto, error) {
	return r.query.FindMemberDto()
}

func (r *memberRepositoryImpl) ProjectToSummary(selector func(*entity.Member) bool) ([]entity.MemberDto, error) {
	return r.query.ProjectToSummary(selector)
}

func (r *memberRepositoryImpl) BulkAgePlus(_ context.Context, threshold int) (int, error) {
	n, err := r.query.BulkAgePlus(threshold)
	if err != nil {
		return 0, err
	}
	logger.WithFields(logrus.Fields{"threshold": threshold, "affected": n}).
		Debug("bulk age update applied without auditing; re-fetch members read before this call")
	return n, nil
}

func (r *memberRepositoryImpl) ChangeTeam(ctx context.Context, m *entity.Member, t *entity.Team) error {
	if err := r.managed(m); err != nil {
		return err
	}
	if t == nil {
		return types.Violation("team is required for member %d", m.ID())
	}
	if t.IsNew() {
		return types.Violation("team %q is not persisted", t.Name())
	}
	current, err := r.teams.Get(t.ID())
	if err != nil {
		return err
	}
	if current != t {
		return types.Violation("team %d is not the instance held by the store", t.ID())
	}
	if id, ok := m.TeamID(); ok && id == t.ID() {
		return nil
	}
	if err := r.linker.Link(m, t); err != nil {
		return err
	}
	r.stamper.StampUpdate(ctx, m)
	logger.WithFields(logrus.Fields{"member": m.ID(), "team": t.ID()}).Debug("member changed team")
	return nil
}

func (r *memberRepositoryImpl) FetchTeam(m *entity.Member) (*entity.Team, error) {
	if m == nil {
		return nil, types.Violation("member is required")
	}
	id, ok := m.TeamID()
	if !ok {
		return nil, nil
	}
	return r.teams.Get(id)
}
