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

package types

import "strings"

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// Direction is the sort direction of a single order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

var _ BaseEnum = Ascending

func (d Direction) IsValid() bool {
	return d == Ascending || d == Descending
}

func (d Direction) Number() int {
	if !d.IsValid() {
		return IllegalValue
	}
	return int(d)
}

func (d Direction) Name() string {
	switch d {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return IllegalName
	}
}

func (d Direction) String() string { return d.Name() }

func (d Direction) Desc() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return IllegalDesc
	}
}

// ParseDirection accepts ASC/DESC in any case.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASC":
		return Ascending, true
	case "DESC":
		return Descending, true
	default:
		return Direction(IllegalValue), false
	}
}
