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
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomoncle/memberdata/entity"
	"github.com/tomoncle/memberdata/store"
	"github.com/tomoncle/memberdata/types"
)

type fixture struct {
	members *store.Store[*entity.Member]
	teams   *store.Store[*entity.Team]
	linker  *entity.Linker
	query   *MemberQuery
}

func newFixture() *fixture {
	members := store.New[*entity.Member]("member")
	teams := store.New[*entity.Team]("team")
	return &fixture{
		members: members,
		teams:   teams,
		linker:  entity.NewLinker(teams),
		query:   NewMemberQuery(members, teams),
	}
}

func (f *fixture) member(t *testing.T, username string, age int) *entity.Member {
	t.Helper()
	m := entity.NewMemberWithAge(username, age)
	_, err := f.members.Insert(m)
	require.NoError(t, err)
	return m
}

func (f *fixture) team(t *testing.T, name string) *entity.Team {
	t.Helper()
	team := entity.NewTeam(name)
	_, err := f.teams.Insert(team)
	require.NoError(t, err)
	return team
}

func usernames(items []*entity.Member) []string {
	out := make([]string, 0, len(items))
	for _, m := range items {
		out = append(out, m.Username())
	}
	return out
}

func TestFindByUsernameAndAgeGreaterThan(t *testing.T) {
	f := newFixture()
	f.member(t, "AAA", 10)
	aaa20 := f.member(t, "AAA", 20)
	f.member(t, "BBB", 30)

	got := f.query.FindByUsernameAndAgeGreaterThan("AAA", 15)
	require.Len(t, got, 1)
	require.Same(t, aaa20, got[0])
	require.Equal(t, 20, got[0].Age())

	require.Empty(t, f.query.FindByUsernameAndAgeGreaterThan("AAA", 20))
}

func TestFindUserAndUsernameList(t *testing.T) {
	f := newFixture()
	f.member(t, "AAA", 10)
	f.member(t, "BBB", 20)

	got := f.query.FindUser("AAA", 10)
	require.Len(t, got, 1)
	require.Empty(t, f.query.FindUser("AAA", 11))
	require.Equal(t, []string{"AAA", "BBB"}, f.query.FindUsernameList())
}

func TestFindByNamesCollapsesDuplicates(t *testing.T) {
	f := newFixture()
	f.member(t, "AAA", 10)
	f.member(t, "BBB", 20)
	f.member(t, "CCC", 30)

	got := f.query.FindByNames([]string{"BBB", "AAA", "AAA", "ZZZ"})
	require.Equal(t, []string{"AAA", "BBB"}, usernames(got))
	require.Empty(t, f.query.FindByNames(nil))
}

func TestFindByAgePaging(t *testing.T) {
	f := newFixture()
	for i := 1; i <= 8; i++ {
		f.member(t, fmt.Sprintf("member%d", i), 10)
	}
	f.member(t, "member9", 11)

	req := types.NewPageRequest(0, 3, types.SortBy(types.Descending, "username"))
	page, err := f.query.FindByAge(10, req)
	require.NoError(t, err)
	require.Equal(t, []string{"member8", "member7", "member6"}, usernames(page.Items))
	require.Equal(t, 8, page.Total)
	require.Equal(t, 0, page.Page)
	require.Equal(t, 3, page.TotalPages())
	require.True(t, page.IsFirst())
	require.True(t, page.HasNext())

	last, err := f.query.FindByAge(10, types.NewPageRequest(2, 3, types.SortBy(types.Descending, "username")))
	require.NoError(t, err)
	require.Equal(t, []string{"member2", "member1"}, usernames(last.Items))
	require.False(t, last.HasNext())

	beyond, err := f.query.FindByAge(10, types.NewPageRequest(5, 3, types.Unsorted()))
	require.NoError(t, err)
	require.Empty(t, beyond.Items)
	require.Equal(t, 8, beyond.Total)
	require.False(t, beyond.HasNext())
}

func TestFindSliceByAge(t *testing.T) {
	f := newFixture()
	for i := 1; i <= 8; i++ {
		f.member(t, fmt.Sprintf("member%d", i), 10)
	}
	req := types.NewPageRequest(0, 3, types.SortBy(types.Descending, "username"))
	slice, err := f.query.FindSliceByAge(10, req)
	require.NoError(t, err)
	require.Len(t, slice.Items, 3)
	require.True(t, slice.HasNext())

	tail, err := f.query.FindSliceByAge(10, types.NewPageRequest(2, 3, types.Unsorted()))
	require.NoError(t, err)
	require.Len(t, tail.Items, 2)
	require.False(t, tail.HasNext())
}

func TestSortTiesBreakByID(t *testing.T) {
	f := newFixture()
	first := f.member(t, "same", 10)
	second := f.member(t, "same", 10)

	page, err := f.query.FindByAge(10, types.NewPageRequest(0, 5, types.SortBy(types.Descending, "Username")))
	require.NoError(t, err)
	require.Same(t, first, page.Items[0])
	require.Same(t, second, page.Items[1])
}

func TestPagingRejectsBadRequests(t *testing.T) {
	f := newFixture()
	f.member(t, "a", 10)

	_, err := f.query.FindByAge(10, types.NewDefaultPageRequest(0, 0))
	require.True(t, types.IsValidation(err))
	_, err = f.query.FindByAge(10, types.NewPageRequest(0, 3, types.SortBy(types.Ascending, "height")))
	require.True(t, types.IsValidation(err))
	_, err = f.query.FindSliceByAge(10, types.NewDefaultPageRequest(-1, 3))
	require.True(t, types.IsValidation(err))
}

func TestBulkAgePlus(t *testing.T) {
	f := newFixture()
	for i, age := range []int{10, 19, 20, 21, 40} {
		f.member(t, fmt.Sprintf("member%d", i), age)
	}
	n, err := f.query.BulkAgePlus(20)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	var ages []int
	for _, m := range f.members.All() {
		ages = append(ages, m.Age())
	}
	require.Equal(t, []int{10, 19, 21, 22, 41}, ages)
}

func TestBulkAgePlusOverflowIsAllOrNothing(t *testing.T) {
	f := newFixture()
	f.member(t, "young", 30)
	f.member(t, "ancient", math.MaxInt)

	_, err := f.query.BulkAgePlus(20)
	require.True(t, types.IsConstraintViolation(err))
	require.Equal(t, 30, f.members.All()[0].Age())
}

func TestProjections(t *testing.T) {
	f := newFixture()
	teamA := f.team(t, "teamA")
	m1 := f.member(t, "member1", 10)
	f.member(t, "member2", 20)
	require.NoError(t, f.linker.Link(m1, teamA))

	dtos, err := f.query.FindMemberDto()
	require.NoError(t, err)
	require.Equal(t, []entity.MemberDto{{ID: m1.ID(), Username: "member1", TeamName: "teamA"}}, dtos)

	all, err := f.query.ProjectToSummary(nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "", all[1].TeamName)
}
