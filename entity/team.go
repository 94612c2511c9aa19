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
	"slices"
)

// Team groups members. Its member set is maintained only by the Linker.
type Team struct {
	Identity
	name    string
	members map[int64]struct{}
}

// NewTeam creates an unsaved team with no members.
func NewTeam(name string) *Team {
	return &Team{name: name, members: make(map[int64]struct{})}
}

// RestoreTeam rebuilds a persisted team with an empty member set.
func RestoreTeam(id int64, name string) *Team {
	t := NewTeam(name)
	t.id = id
	return t
}

func (t *Team) Name() string { return t.name }

func (t *Team) SetName(name string) { t.name = name }

// MemberIDs returns the member ids in ascending order.
func (t *Team) MemberIDs() []int64 {
	ids := make([]int64, 0, len(t.members))
	for id := range t.members {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (t *Team) HasMember(memberID int64) bool {
	_, ok := t.members[memberID]
	return ok
}

func (t *Team) MemberCount() int { return len(t.members) }

func (t *Team) String() string {
	return fmt.Sprintf("Team(id=%d, name=%s)", t.ID(), t.name)
}
