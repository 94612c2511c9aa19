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

package query

import (
	"cmp"
	"fmt"
	"math"
	"strings"

	"github.com/tomoncle/memberdata/entity"
	"github.com/tomoncle/memberdata/types"
)

// MemberSource is the member store as seen by the evaluator.
type MemberSource interface {
	All() []*entity.Member
	Mutate(fn func(items []*entity.Member) (int, error)) (int, error)
}

// TeamSource resolves team references for projections.
type TeamSource interface {
	Get(id int64) (*entity.Team, error)
}

// MemberSortKeys are the properties a member page request may sort by.
var MemberSortKeys = SortKeys[entity.Member]{
	"id":               func(a, b *entity.Member) int { return cmp.Compare(a.ID(), b.ID()) },
	"username":         func(a, b *entity.Member) int { return strings.Compare(a.Username(), b.Username()) },
	"age":              func(a, b *entity.Member) int { return cmp.Compare(a.Age(), b.Age()) },
	"createddate":      func(a, b *entity.Member) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"createdat":        func(a, b *entity.Member) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"lastmodifieddate": func(a, b *entity.Member) int { return a.LastModifiedAt.Compare(b.LastModifiedAt) },
	"lastmodifiedat":   func(a, b *entity.Member) int { return a.LastModifiedAt.Compare(b.LastModifiedAt) },
}

func memberID(m *entity.Member) int64 { return m.ID() }

// MemberQuery holds the named member operations. Every operation reads a fresh
// snapshot of the store.
type MemberQuery struct {
	members MemberSource
	teams   TeamSource
}

func NewMemberQuery(members MemberSource, teams TeamSource) *MemberQuery {
	return &MemberQuery{members: members, teams: teams}
}

func filter(items []*entity.Member, pred func(*entity.Member) bool) []*entity.Member {
	out := make([]*entity.Member, 0)
	for _, m := range items {
		if pred(m) {
			out = append(out, m)
		}
	}
	return out
}

// FindByUsernameAndAgeGreaterThan matches username == username AND age > minAge.
func (q *MemberQuery) FindByUsernameAndAgeGreaterThan(username string, minAge int) []*entity.Member {
	return filter(q.members.All(), func(m *entity.Member) bool {
		return m.Username() == username && m.Age() > minAge
	})
}

// FindUser matches username == username AND age == age.
func (q *MemberQuery) FindUser(username string, age int) []*entity.Member {
	return filter(q.members.All(), func(m *entity.Member) bool {
		return m.Username() == username && m.Age() == age
	})
}

// FindUsernameList returns every username in store order.
func (q *MemberQuery) FindUsernameList() []string {
	all := q.members.All()
	names := make([]string, 0, len(all))
	for _, m := range all {
		names = append(names, m.Username())
	}
	return names
}

// FindByNames matches username IN names. Repeated names do not repeat members.
func (q *MemberQuery) FindByNames(names []string) []*entity.Member {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return filter(q.members.All(), func(m *entity.Member) bool {
		_, ok := set[m.Username()]
		return ok
	})
}

// FindByAge matches age == age and returns the requested page with totals.
func (q *MemberQuery) FindByAge(age int, req *types.PageRequest) (*types.Page[entity.Member], error) {
	matches := filter(q.members.All(), func(m *entity.Member) bool { return m.Age() == age })
	return PageOf(matches, req, MemberSortKeys, memberID)
}

// FindSliceByAge matches age == age and returns the requested slice.
func (q *MemberQuery) FindSliceByAge(age int, req *types.PageRequest) (*types.Slice[entity.Member], error) {
	matches := filter(q.members.All(), func(m *entity.Member) bool { return m.Age() == age })
	return SliceOf(matches, req, MemberSortKeys, memberID)
}

// BulkAgePlus increments the age of every member with age >= threshold and
// returns how many were changed. Audit blocks are not touched, and values
// copied out of the store before the call are stale afterwards.
func (q *MemberQuery) BulkAgePlus(threshold int) (int, error) {
	return q.members.Mutate(func(items []*entity.Member) (int, error) {
		eligible := filter(items, func(m *entity.Member) bool { return m.Age() >= threshold })
		for _, m := range eligible {
			if m.Age() == math.MaxInt {
				return 0, types.Violation("age of member %d would overflow", m.ID())
			}
		}
		for _, m := range eligible {
			m.SetAge(m.Age() + 1)
		}
		return len(eligible), nil
	})
}

// ProjectToSummary projects every member accepted by selector (all members
// when selector is nil) to a MemberDto. Members without a team get an empty
// team name.
func (q *MemberQuery) ProjectToSummary(selector func(*entity.Member) bool) ([]entity.MemberDto, error) {
	if selector == nil {
		selector = func(*entity.Member) bool { return true }
	}
	matches := filter(q.members.All(), selector)
	dtos := make([]entity.MemberDto, 0, len(matches))
	for _, m := range matches {
		teamName := ""
		if teamID, ok := m.TeamID(); ok {
			team, err := q.teams.Get(teamID)
			if err != nil {
				return nil, fmt.Errorf("project member %d: %w", m.ID(), err)
			}
			teamName = team.Name()
		}
		dtos = append(dtos, entity.NewMemberDto(m, teamName))
	}
	return dtos, nil
}

// FindMemberDto projects the members that belong to a team.
func (q *MemberQuery) FindMemberDto() ([]entity.MemberDto, error) {
	return q.ProjectToSummary(func(m *entity.Member) bool { return m.HasTeam() })
}
