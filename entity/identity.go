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

import "github.com/tomoncle/memberdata/types"

// Identity is the store-assigned id embedded in every entity. Zero means the
// entity has not been persisted yet.
type Identity struct {
	id int64
}

func (i *Identity) ID() int64 { return i.id }

// IsNew reports whether no identity has been assigned.
func (i *Identity) IsNew() bool { return i.id == 0 }

// AssignID sets the identity once. Reassignment is a constraint violation.
func (i *Identity) AssignID(id int64) error {
	if i.id != 0 {
		return types.Violation("identity already assigned (%d)", i.id)
	}
	if id <= 0 {
		return types.Violation("identity must be positive, got %d", id)
	}
	i.id = id
	return nil
}
