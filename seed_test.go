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

package memberdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomoncle/memberdata/types"
)

const sampleSeed = `
teams:
  - name: teamA
  - name: teamB
members:
  - username: member1
    age: 10
    team: teamA
  - username: member2
    age: 20
    team: teamA
  - username: member3
    age: 30
    team: teamB
  - username: member4
    age: 40
`

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed([]byte(sampleSeed))
	require.NoError(t, err)
	require.Len(t, seed.Teams, 2)
	require.Equal(t, SeedMember{Username: "member3", Age: 30, Team: "teamB"}, seed.Members[2])
	require.Empty(t, seed.Members[3].Team)
}

func TestParseSeedRejectsBadFixtures(t *testing.T) {
	bad := map[string]string{
		"unknown team":   "members:\n  - username: a\n    team: nowhere\n",
		"duplicate team": "teams:\n  - name: a\n  - name: a\n",
		"empty team":     "teams:\n  - name: ' '\n",
		"no username":    "members:\n  - age: 3\n",
		"malformed":      "teams: [",
	}
	for name, doc := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSeed([]byte(doc))
			require.True(t, types.IsValidation(err), "got %v", err)
		})
	}
}

func TestSeedLinksMembers(t *testing.T) {
	s := NewService()
	seed, err := ParseSeed([]byte(sampleSeed))
	require.NoError(t, err)
	require.NoError(t, s.Seed(context.Background(), seed))

	teamA := s.Teams.FindByName("teamA")
	require.Len(t, teamA, 1)
	require.Equal(t, 2, teamA[0].MemberCount())

	dtos, err := s.Members.FindMemberDto()
	require.NoError(t, err)
	require.Len(t, dtos, 3)

	require.True(t, types.IsValidation(s.Seed(context.Background(), nil)))
	require.Equal(t, 4, s.Members.Count())
}
