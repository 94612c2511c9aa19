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

import "time"

// AuditBlock carries creation and modification metadata. A nil actor means no
// caller identity was available when the entity was stamped.
type AuditBlock struct {
	CreatedBy      *string
	CreatedAt      time.Time
	LastModifiedBy *string
	LastModifiedAt time.Time
}

// Auditable is implemented by entities that carry an AuditBlock.
type Auditable interface {
	AuditInfo() *AuditBlock
}

func (a *AuditBlock) AuditInfo() *AuditBlock { return a }

// IsStamped reports whether the block was ever stamped on insert.
func (a *AuditBlock) IsStamped() bool { return !a.CreatedAt.IsZero() }
