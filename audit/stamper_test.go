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

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tomoncle/memberdata/entity"
)

type stepClock struct{ times []time.Time }

func (c *stepClock) Now() time.Time {
	t := c.times[0]
	if len(c.times) > 1 {
		c.times = c.times[1:]
	}
	return t
}

func TestStampInsertAndUpdate(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)
	s := NewStamper(WithClock(&stepClock{times: []time.Time{t0, t1}}))
	m := entity.NewMember("member1")

	s.StampInsert(WithActor(context.Background(), "alice"), m)
	require.Equal(t, "alice", *m.CreatedBy)
	require.Equal(t, "alice", *m.LastModifiedBy)
	require.Equal(t, t0, m.CreatedAt)
	require.Equal(t, t0, m.LastModifiedAt)

	s.StampUpdate(WithActor(context.Background(), "bob"), m)
	require.Equal(t, "alice", *m.CreatedBy)
	require.Equal(t, t0, m.CreatedAt)
	require.Equal(t, "bob", *m.LastModifiedBy)
	require.Equal(t, t1, m.LastModifiedAt)
}

func TestAbsentActorLeavesActorFieldsNil(t *testing.T) {
	s := NewStamper()
	m := entity.NewMember("member1")
	s.StampInsert(context.Background(), m)
	require.Nil(t, m.CreatedBy)
	require.Nil(t, m.LastModifiedBy)
	require.True(t, m.IsStamped())

	s.StampUpdate(WithActor(context.Background(), "   "), m)
	require.Nil(t, m.LastModifiedBy)
}

func TestBackwardsClockIsClamped(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s := NewStamper(
		WithActorProvider(FixedActor("system")),
		WithClock(&stepClock{times: []time.Time{t0, t0.Add(-time.Hour)}}),
	)
	m := entity.NewMember("member1")
	s.StampInsert(context.Background(), m)
	s.StampUpdate(context.Background(), m)
	require.Equal(t, t0, m.LastModifiedAt)
	require.Equal(t, "system", *m.LastModifiedBy)
}

func TestStampedActorIsCopied(t *testing.T) {
	s := NewStamper()
	m := entity.NewMember("member1")
	actor := "alice"
	s.OnInsert(m, &actor, time.Now())
	actor = "mallory"
	require.Equal(t, "alice", *m.CreatedBy)
	require.NotSame(t, m.CreatedBy, m.LastModifiedBy)
}
