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

package entity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomoncle/memberdata/types"
)

type teamMap map[int64]*Team

func (m teamMap) Get(id int64) (*Team, error) {
	t, ok := m[id]
	if !ok {
		return nil, types.NotFound("team %d", id)
	}
	return t, nil
}

func persisted(t *testing.T, id int64, e interface{ AssignID(int64) error }) {
	t.Helper()
	require.NoError(t, e.AssignID(id))
}

func TestLinkMovesMemberBetweenTeams(t *testing.T) {
	teamA, teamB := NewTeam("teamA"), NewTeam("teamB")
	persisted(t, 1, teamA)
	persisted(t, 2, teamB)
	linker := NewLinker(teamMap{1: teamA, 2: teamB})

	m := NewMemberWithAge("member1", 10)
	persisted(t, 7, m)

	require.NoError(t, linker.Link(m, teamA))
	require.True(t, teamA.HasMember(7))

	require.NoError(t, linker.Link(m, teamB))
	id, ok := m.TeamID()
	require.True(t, ok)
	require.Equal(t, int64(2), id)
	require.False(t, teamA.HasMember(7))
	require.Equal(t, []int64{7}, teamB.MemberIDs())

	require.NoError(t, linker.Link(m, teamB))
	require.Equal(t, 1, teamB.MemberCount())
}

func TestLinkRejectsUnpersisted(t *testing.T) {
	team := NewTeam("teamA")
	linker := NewLinker(teamMap{})
	m := NewMember("member1")

	require.True(t, types.IsConstraintViolation(linker.Link(nil, team)))
	require.True(t, types.IsConstraintViolation(linker.Link(m, nil)))
	require.True(t, types.IsConstraintViolation(linker.Link(m, team)))

	persisted(t, 1, m)
	require.True(t, types.IsConstraintViolation(linker.Link(m, team)))
	require.False(t, m.HasTeam())
}

func TestUnlink(t *testing.T) {
	team := NewTeam("teamA")
	persisted(t, 1, team)
	linker := NewLinker(teamMap{1: team})
	m := NewMember("member1")
	persisted(t, 3, m)

	require.NoError(t, linker.Unlink(m))
	require.NoError(t, linker.Link(m, team))
	require.NoError(t, linker.Unlink(m))
	require.False(t, m.HasTeam())
	require.Equal(t, 0, team.MemberCount())
}

func TestAssignIDOnce(t *testing.T) {
	m := NewMember("a")
	require.True(t, m.IsNew())
	require.True(t, types.IsConstraintViolation(m.AssignID(0)))
	require.NoError(t, m.AssignID(5))
	require.True(t, types.IsConstraintViolation(m.AssignID(6)))
	require.Equal(t, int64(5), m.ID())
}
