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

package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/tomoncle/memberdata/types"
)

// Comparator orders two items the way cmp.Compare does.
type Comparator[T any] func(a, b *T) int

// SortKeys maps lower-cased property names to comparators.
type SortKeys[T any] map[string]Comparator[T]

// comparator chains the requested orders and always breaks ties by ascending id.
func (k SortKeys[T]) comparator(sort types.Sort, id func(*T) int64) (Comparator[T], error) {
	chain := make([]Comparator[T], 0, len(sort.Orders))
	for _, o := range sort.Orders {
		c, ok := k[strings.ToLower(strings.TrimSpace(o.Property))]
		if !ok {
			return nil, types.Invalid("unknown sort property %q", o.Property)
		}
		if o.Direction == types.Descending {
			asc := c
			c = func(a, b *T) int { return asc(b, a) }
		}
		chain = append(chain, c)
	}
	return func(a, b *T) int {
		for _, c := range chain {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return cmp.Compare(id(a), id(b))
	}, nil
}

// Sorted returns a sorted copy of items.
func Sorted[T any](items []*T, sort types.Sort, keys SortKeys[T], id func(*T) int64) ([]*T, error) {
	if err := sort.Validate(); err != nil {
		return nil, err
	}
	c, err := keys.comparator(sort, id)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(items)
	slices.SortFunc(out, c)
	return out, nil
}

func window[T any](items []*T, offset int, limit int) []*T {
	if offset >= len(items) {
		return make([]*T, 0)
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	out := make([]*T, end-offset)
	copy(out, items[offset:end])
	return out
}

// PageOf orders items and cuts the requested page, counting every match.
func PageOf[T any](items []*T, req *types.PageRequest, keys SortKeys[T], id func(*T) int64) (*types.Page[T], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ordered, err := Sorted(items, req.GetSort(), keys, id)
	if err != nil {
		return nil, err
	}
	content := window(ordered, req.GetOffset(), req.GetPageSize())
	return types.NewPage(content, req.GetPage(), req.GetPageSize(), len(ordered)), nil
}

// SliceOf orders items and reads one extra element past the requested window
// to learn whether another slice follows. No total is computed.
func SliceOf[T any](items []*T, req *types.PageRequest, keys SortKeys[T], id func(*T) int64) (*types.Slice[T], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ordered, err := Sorted(items, req.GetSort(), keys, id)
	if err != nil {
		return nil, err
	}
	content := window(ordered, req.GetOffset(), req.GetPageSize()+1)
	hasNext := len(content) > req.GetPageSize()
	if hasNext {
		content = content[:req.GetPageSize()]
	}
	return types.NewSlice(content, req.GetPage(), req.GetPageSize(), hasNext), nil
}
