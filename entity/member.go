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

import "fmt"

// Member is a user that may belong to one Team. The team is held as an id
// only; resolving it to a Team is an explicit fetch.
type Member struct {
	Identity
	AuditBlock
	username string
	age      int
	teamID   int64
}

// NewMember creates an unsaved member with age 0.
func NewMember(username string) *Member {
	return &Member{username: username}
}

// NewMemberWithAge creates an unsaved member.
func NewMemberWithAge(username string, age int) *Member {
	return &Member{username: username, age: age}
}

// RestoreMember rebuilds a persisted member. The team association is
// re-established separately through a Linker.
func RestoreMember(id int64, username string, age int, audit AuditBlock) *Member {
	return &Member{
		Identity:   Identity{id: id},
		AuditBlock: audit,
		username:   username,
		age:        age,
	}
}

func (m *Member) Username() string { return m.username }

func (m *Member) SetUsername(username string) { m.username = username }

func (m *Member) Age() int { return m.age }

func (m *Member) SetAge(age int) { m.age = age }

// TeamID returns the id of the member's team, if any.
func (m *Member) TeamID() (int64, bool) {
	return m.teamID, m.teamID != 0
}

func (m *Member) HasTeam() bool { return m.teamID != 0 }

func (m *Member) String() string {
	return fmt.Sprintf("Member(id=%d, username=%s, age=%d)", m.ID(), m.username, m.age)
}
