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

// MemberDto is a read-only projection of a member and its team name.
type MemberDto struct {
	ID       int64  `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	TeamName string `json:"teamName" yaml:"team_name"`
}

// NewMemberDto projects m with the given team name.
func NewMemberDto(m *Member, teamName string) MemberDto {
	return MemberDto{ID: m.ID(), Username: m.Username(), TeamName: teamName}
}

func (d MemberDto) String() string {
	return fmt.Sprintf("MemberDto(id=%d, username=%s, teamName=%s)", d.ID, d.Username, d.TeamName)
}
