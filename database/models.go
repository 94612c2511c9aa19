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

package database

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/tomoncle/memberdata/entity"
)

// Sequence names stored in the sequences table.
const (
	MemberSequence = "members"
	TeamSequence   = "teams"
)

func init() {
	RegisterModel((*TeamModel)(nil), 10)
	RegisterModel((*MemberModel)(nil), 20)
	RegisterModel((*SequenceModel)(nil), 30)
}

type TeamModel struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID   int64  `bun:"id,pk"`
	Name string `bun:"name,notnull"`
}

type MemberModel struct {
	bun.BaseModel `bun:"table:members,alias:m"`

	ID             int64     `bun:"id,pk"`
	Username       string    `bun:"username,notnull"`
	Age            int       `bun:"age,notnull"`
	TeamID         *int64    `bun:"team_id"`
	CreatedBy      *string   `bun:"created_by"`
	CreatedAt      time.Time `bun:"created_at,nullzero"`
	LastModifiedBy *string   `bun:"last_modified_by"`
	LastModifiedAt time.Time `bun:"last_modified_at,nullzero"`
}

// SequenceModel stores the next identity of one entity type so identities
// stay unique across reloads.
type SequenceModel struct {
	bun.BaseModel `bun:"table:sequences,alias:s"`

	Name   string `bun:"name,pk"`
	NextID int64  `bun:"next_id,notnull"`
}

func NewTeamModel(t *entity.Team) *TeamModel {
	return &TeamModel{ID: t.ID(), Name: t.Name()}
}

func (m *TeamModel) ToEntity() *entity.Team {
	return entity.RestoreTeam(m.ID, m.Name)
}

func NewMemberModel(m *entity.Member) *MemberModel {
	model := &MemberModel{
		ID:             m.ID(),
		Username:       m.Username(),
		Age:            m.Age(),
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		LastModifiedBy: m.LastModifiedBy,
		LastModifiedAt: m.LastModifiedAt,
	}
	if id, ok := m.TeamID(); ok {
		model.TeamID = &id
	}
	return model
}

// ToEntity rebuilds the member without its team; the caller links it.
func (m *MemberModel) ToEntity() *entity.Member {
	return entity.RestoreMember(m.ID, m.Username, m.Age, entity.AuditBlock{
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		LastModifiedBy: m.LastModifiedBy,
		LastModifiedAt: m.LastModifiedAt,
	})
}
