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

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	sort, err := ParseSort("username DESC", "id", "age asc")
	require.NoError(t, err)
	require.Equal(t, []Order{
		{Property: "username", Direction: Descending},
		{Property: "id", Direction: Ascending},
		{Property: "age", Direction: Ascending},
	}, sort.Orders)
	require.Equal(t, "username DESC", sort.Orders[0].String())

	_, err = ParseSort("username sideways")
	require.True(t, IsValidation(err))

	_, err = ParseSort("a b c")
	require.True(t, IsValidation(err))
}

func TestPageRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  *PageRequest
		ok   bool
	}{
		{"nil", nil, false},
		{"negative page", NewDefaultPageRequest(-1, 3), false},
		{"zero size", NewDefaultPageRequest(0, 0), false},
		{"negative size", NewDefaultPageRequest(0, -2), false},
		{"overflow", NewDefaultPageRequest(math.MaxInt/2, 3), false},
		{"empty property", NewPageRequest(0, 3, Sort{Orders: []Order{{Property: " "}}}), false},
		{"bad direction", NewPageRequest(0, 3, Sort{Orders: []Order{{Property: "age", Direction: Direction(7)}}}), false},
		{"valid", NewPageRequest(2, 3, SortBy(Descending, "username")), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.True(t, IsValidation(err), "got %v", err)
		})
	}
}

func TestPageNavigation(t *testing.T) {
	a, b := 1, 2
	p := NewPage([]*int{&a, &b}, 2, 3, 8)
	require.Equal(t, 3, p.TotalPages())
	require.False(t, p.IsFirst())
	require.False(t, p.HasNext())
	require.True(t, p.IsLast())
	require.True(t, p.HasPrevious())

	empty := NewPage[int](nil, 0, 3, 0)
	require.Equal(t, 0, empty.TotalPages())
	require.NotNil(t, empty.Items)
	require.True(t, empty.IsFirst())
	require.False(t, empty.HasNext())

	doubled := MapPage(p, func(v *int) *int {
		d := *v * 2
		return &d
	})
	require.Equal(t, 8, doubled.Total)
	require.Equal(t, 4, *doubled.Items[1])
}

func TestSliceNavigation(t *testing.T) {
	s := NewSlice[int](nil, 0, 3, true)
	require.True(t, s.IsFirst())
	require.True(t, s.HasNext())
	require.False(t, s.IsLast())
}
