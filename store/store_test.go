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

package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomoncle/memberdata/entity"
	"github.com/tomoncle/memberdata/types"
)

func TestInsertAssignsDistinctIdentities(t *testing.T) {
	s := New[*entity.Member]("member")
	seen := map[int64]bool{}
	for i := 0; i < 10; i++ {
		m := entity.NewMember("m")
		id, err := s.Insert(m)
		require.NoError(t, err)
		require.False(t, seen[id])
		seen[id] = true

		got, err := s.Get(id)
		require.NoError(t, err)
		require.Same(t, m, got)
	}
	require.Equal(t, 10, s.Count())
}

func TestInsertRejectsPersistedEntity(t *testing.T) {
	s := New[*entity.Member]("member")
	m := entity.NewMember("a")
	_, err := s.Insert(m)
	require.NoError(t, err)

	_, err = s.Insert(m)
	require.True(t, types.IsConstraintViolation(err))
}

func TestDeleteNeverReusesIdentity(t *testing.T) {
	s := New[*entity.Member]("member")
	a := entity.NewMember("a")
	id, _ := s.Insert(a)

	require.NoError(t, s.Delete(id))
	require.True(t, types.IsNotFound(s.Delete(id)))
	_, err := s.Get(id)
	require.True(t, types.IsNotFound(err))

	b := entity.NewMember("b")
	next, err := s.Insert(b)
	require.NoError(t, err)
	require.NotEqual(t, id, next)
}

func TestAllKeepsInsertionOrder(t *testing.T) {
	s := New[*entity.Member]("member")
	names := []string{"c", "a", "b"}
	for _, n := range names {
		_, err := s.Insert(entity.NewMember(n))
		require.NoError(t, err)
	}
	first := s.All()[0]
	require.NoError(t, s.Delete(first.ID()))

	var got []string
	for _, m := range s.All() {
		got = append(got, m.Username())
	}
	require.Equal(t, []string{"a", "b"}, got)
}

func TestRestoreAndClearKeepSequence(t *testing.T) {
	s := New[*entity.Member]("member")
	m := entity.RestoreMember(41, "restored", 30, entity.AuditBlock{})
	require.NoError(t, s.Restore(m))
	require.Equal(t, int64(42), s.Sequence())
	require.True(t, types.IsConstraintViolation(s.Restore(m)))
	require.True(t, types.IsConstraintViolation(s.Restore(entity.NewMember("new"))))

	s.Clear()
	require.Equal(t, 0, s.Count())
	id, err := s.Insert(entity.NewMember("after"))
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	s.AdvanceSequence(10)
	require.Equal(t, int64(43), s.Sequence())
	s.AdvanceSequence(100)
	require.Equal(t, int64(100), s.Sequence())
}

func TestMutateFailureLeavesStoreUntouched(t *testing.T) {
	s := New[*entity.Member]("member")
	_, _ = s.Insert(entity.NewMemberWithAge("a", 10))

	_, err := s.Mutate(func(items []*entity.Member) (int, error) {
		return 0, types.Violation("refused")
	})
	require.True(t, types.IsConstraintViolation(err))
	require.Equal(t, 10, s.All()[0].Age())
}
