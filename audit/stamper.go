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
	"time"

	"github.com/tomoncle/memberdata/entity"
)

// Stamper writes audit blocks. It never invents an actor: when the provider
// has none, the actor fields are left nil.
type Stamper struct {
	actors ActorProvider
	clock  Clock
}

// Option configures a Stamper.
type Option func(*Stamper)

func WithActorProvider(p ActorProvider) Option {
	return func(s *Stamper) {
		if p != nil {
			s.actors = p
		}
	}
}

func WithClock(c Clock) Option {
	return func(s *Stamper) {
		if c != nil {
			s.clock = c
		}
	}
}

// NewStamper defaults to the context actor provider and the system clock.
func NewStamper(opts ...Option) *Stamper {
	s := &Stamper{actors: ContextActorProvider, clock: SystemClock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve asks the providers for the current actor and time.
func (s *Stamper) Resolve(ctx context.Context) (*string, time.Time) {
	now := s.clock.Now()
	actor, ok := s.actors.CurrentActor(ctx)
	if !ok {
		return nil, now
	}
	return &actor, now
}

// OnInsert sets both the created and last-modified fields.
func (s *Stamper) OnInsert(e entity.Auditable, actor *string, now time.Time) {
	a := e.AuditInfo()
	a.CreatedBy = copyActor(actor)
	a.CreatedAt = now
	a.LastModifiedBy = copyActor(actor)
	a.LastModifiedAt = now
}

// OnUpdate sets the last-modified fields only. A clock that went backwards is
// clamped so the modification time never decreases.
func (s *Stamper) OnUpdate(e entity.Auditable, actor *string, now time.Time) {
	a := e.AuditInfo()
	if now.Before(a.LastModifiedAt) {
		now = a.LastModifiedAt
	}
	a.LastModifiedBy = copyActor(actor)
	a.LastModifiedAt = now
}

// StampInsert resolves the providers and calls OnInsert.
func (s *Stamper) StampInsert(ctx context.Context, e entity.Auditable) {
	actor, now := s.Resolve(ctx)
	s.OnInsert(e, actor, now)
}

// StampUpdate resolves the providers and calls OnUpdate.
func (s *Stamper) StampUpdate(ctx context.Context, e entity.Auditable) {
	actor, now := s.Resolve(ctx)
	s.OnUpdate(e, actor, now)
}

func copyActor(actor *string) *string {
	if actor == nil {
		return nil
	}
	v := *actor
	return &v
}
