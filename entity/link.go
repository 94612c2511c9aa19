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
	"fmt"

	"github.com/tomoncle/memberdata/types"
)

// TeamResolver resolves a team id to the canonical Team instance.
type TeamResolver interface {
	Get(id int64) (*Team, error)
}

// Linker is the only code path that changes the Member/Team association, so
// Member.team == T holds exactly when T's member set contains the member.
type Linker struct {
	teams TeamResolver
}

// NewLinker returns a Linker resolving previous teams through teams.
func NewLinker(teams TeamResolver) *Linker {
	return &Linker{teams: teams}
}

// Link moves m into t, detaching it from its current team first. Linking to
// the current team again changes nothing.
func (l *Linker) Link(m *Member, t *Team) error {
	if m == nil {
		return types.Violation("member is required")
	}
	if t == nil {
		return types.Violation("team is required for member %d", m.ID())
	}
	if m.IsNew() {
		return types.Violation("member %q is not persisted", m.Username())
	}
	if t.IsNew() {
		return types.Violation("team %q is not persisted", t.Name())
	}
	if m.teamID == t.ID() {
		t.members[m.ID()] = struct{}{}
		return nil
	}
	if m.teamID != 0 {
		prev, err := l.teams.Get(m.teamID)
		if err != nil {
			return fmt.Errorf("resolve current team of member %d: %w", m.ID(), err)
		}
		delete(prev.members, m.ID())
	}
	m.teamID = t.ID()
	t.members[m.ID()] = struct{}{}
	return nil
}

// Unlink detaches m from its team, if it has one.
func (l *Linker) Unlink(m *Member) error {
	if m == nil {
		return types.Violation("member is required")
	}
	if m.teamID == 0 {
		return nil
	}
	prev, err := l.teams.Get(m.teamID)
	if err != nil {
		return fmt.Errorf("resolve current team of member %d: %w", m.ID(), err)
	}
	delete(prev.members, m.ID())
	m.teamID = 0
	return nil
}
