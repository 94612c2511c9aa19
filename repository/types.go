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

	"github.com/tomoncle/memberdata/entity"
	"github.com/tomoncle/memberdata/types"
)

// CrudRepository defines basic CRUD operations for an entity type.
type CrudRepository[E any] interface {
	// Save inserts an unsaved entity or records a modification of a saved one.
	Save(ctx context.Context, e E) (E, error)

	FindByID(id int64) (E, error)

	FindAll() []E

	Count() int

	Delete(ctx context.Context, e E) error

	DeleteByID(ctx context.Context, id int64) error
}

// MemberQueryRepository defines the derived member queries.
type MemberQueryRepository interface {
	FindByUsernameAndAgeGreaterThan(username string, minAge int) []*entity.Member
	FindUser(username string, age int) []*entity.Member
	FindUsernameList() []string
	FindByNames(names []string) []*entity.Member
	FindByAge(age int, req *types.PageRequest) (*types.Page[entity.Member], error)
	FindSliceByAge(age int, req *types.PageRequest) (*types.Slice[entity.Member], error)
	FindMemberDto() ([]entity.MemberDto, error)
	ProjectToSummary(selector func(*entity.Member) bool) ([]entity.MemberDto, error)

	// BulkAgePlus adds one to the age of every member with age >= threshold.
	// It bypasses auditing.
	BulkAgePlus(ctx context.Context, threshold int) (int, error)
}

// MemberRepository combines member CRUD, derived queries and team membership.
type MemberRepository interface {
	CrudRepository[*entity.Member]
	MemberQueryRepository

	// ChangeTeam moves a managed member into a managed team.
	ChangeTeam(ctx context.Context, m *entity.Member, t *entity.Team) error

	// FetchTeam resolves the member's team reference. It returns nil when the
	// member has no team.
	FetchTeam(m *entity.Member) (*entity.Team, error)
}

// TeamRepository defines team CRUD and lookup by name.
type TeamRepository interface {
	CrudRepository[*entity.Team]

	FindByName(name string) []*entity.Team
}
