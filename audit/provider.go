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
	"strings"
	"time"
)

type actorKey struct{}

// ActorProvider supplies the identity of the caller, if one is known.
type ActorProvider interface {
	CurrentActor(ctx context.Context) (string, bool)
}

// ActorProviderFunc adapts a function to ActorProvider.
type ActorProviderFunc func(ctx context.Context) (string, bool)

func (f ActorProviderFunc) CurrentActor(ctx context.Context) (string, bool) { return f(ctx) }

// WithActor returns a context carrying actor for ContextActorProvider.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by WithActor.
func ActorFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	actor, ok := ctx.Value(actorKey{}).(string)
	if !ok || strings.TrimSpace(actor) == "" {
		return "", false
	}
	return actor, true
}

// ContextActorProvider reads the actor placed on the context by WithActor.
var ContextActorProvider ActorProvider = ActorProviderFunc(ActorFromContext)

// FixedActor always reports the same actor.
func FixedActor(actor string) ActorProvider {
	return ActorProviderFunc(func(context.Context) (string, bool) { return actor, true })
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)
