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
	"fmt"
	"math"
	"strings"
)

// Order is a single sort property with its direction.
type Order struct {
	Property  string
	Direction Direction
}

func (o Order) String() string {
	return fmt.Sprintf("%s %s", o.Property, o.Direction)
}

// Sort is an ordered list of orders. The zero value is unsorted.
type Sort struct {
	Orders []Order
}

// SortBy builds a Sort applying the same direction to every property.
func SortBy(direction Direction, properties ...string) Sort {
	orders := make([]Order, 0, len(properties))
	for _, p := range properties {
		orders = append(orders, Order{Property: p, Direction: direction})
	}
	return Sort{Orders: orders}
}

// Unsorted returns an empty Sort.
func Unsorted() Sort { return Sort{} }

// And appends the orders of other after the orders of s.
func (s Sort) And(other Sort) Sort {
	orders := make([]Order, 0, len(s.Orders)+len(other.Orders))
	orders = append(orders, s.Orders...)
	orders = append(orders, other.Orders...)
	return Sort{Orders: orders}
}

func (s Sort) IsSorted() bool { return len(s.Orders) > 0 }

// Validate checks that every order names a property and a known direction.
func (s Sort) Validate() error {
	for i, o := range s.Orders {
		if strings.TrimSpace(o.Property) == "" {
			return Invalid("sort order %d has no property", i)
		}
		if !o.Direction.IsValid() {
			return Invalid("sort order %q has invalid direction %d", o.Property, int(o.Direction))
		}
	}
	return nil
}

// ParseSort parses expressions such as "username DESC" or "id". A missing
// direction defaults to ascending.
func ParseSort(exprs ...string) (Sort, error) {
	orders := make([]Order, 0, len(exprs))
	for _, expr := range exprs {
		fields := strings.Fields(expr)
		switch len(fields) {
		case 1:
			orders = append(orders, Order{Property: fields[0], Direction: Ascending})
		case 2:
			dir, ok := ParseDirection(fields[1])
			if !ok {
				return Sort{}, Invalid("malformed sort key %q", expr)
			}
			orders = append(orders, Order{Property: fields[0], Direction: dir})
		default:
			return Sort{}, Invalid("malformed sort key %q", expr)
		}
	}
	return Sort{Orders: orders}, nil
}

// PageRequest describes a zero-based page index, a page size and ordering.
type PageRequest struct {
	page     int
	pageSize int
	sort     Sort
}

// NewPageRequest constructs a PageRequest. Use Validate before relying on it.
func NewPageRequest(page int, pageSize int, sort Sort) *PageRequest {
	return &PageRequest{page: page, pageSize: pageSize, sort: sort}
}

// NewPageRequestWithOrders constructs a PageRequest from "property DIR" strings.
func NewPageRequestWithOrders(page int, pageSize int, orders ...string) (*PageRequest, error) {
	sort, err := ParseSort(orders...)
	if err != nil {
		return nil, err
	}
	return NewPageRequest(page, pageSize, sort), nil
}

// NewDefaultPageRequest constructs an unsorted PageRequest.
func NewDefaultPageRequest(page int, pageSize int) *PageRequest {
	return NewPageRequest(page, pageSize, Unsorted())
}

func (p *PageRequest) GetPage() int { return p.page }

func (p *PageRequest) GetPageSize() int { return p.pageSize }

func (p *PageRequest) GetSort() Sort { return p.sort }

func (p *PageRequest) GetOffset() int { return p.page * p.pageSize }

// Validate rejects negative page indexes, non-positive sizes, windows whose
// offset overflows and malformed orders.
func (p *PageRequest) Validate() error {
	if p == nil {
		return Invalid("page request is required")
	}
	if p.page < 0 {
		return Invalid("page index must not be negative, got %d", p.page)
	}
	if p.pageSize <= 0 {
		return Invalid("page size must be positive, got %d", p.pageSize)
	}
	if p.page > (math.MaxInt-p.pageSize)/p.pageSize {
		return Invalid("page %d with size %d is out of range", p.page, p.pageSize)
	}
	return p.sort.Validate()
}

// Page holds one window of results plus the total match count.
type Page[T any] struct {
	Items    []*T
	Page     int
	PageSize int
	Total    int
}

// NewPage constructs a page container.
func NewPage[T any](items []*T, page int, pageSize int, total int) *Page[T] {
	if items == nil {
		items = make([]*T, 0)
	}
	return &Page[T]{Items: items, Page: page, PageSize: pageSize, Total: total}
}

// TotalPages is ceil(Total / PageSize).
func (p *Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

func (p *Page[T]) IsFirst() bool { return p.Page == 0 }

func (p *Page[T]) HasNext() bool { return (p.Page+1)*p.PageSize < p.Total }

func (p *Page[T]) IsLast() bool { return !p.HasNext() }

func (p *Page[T]) HasPrevious() bool { return p.Page > 0 }

// MapPage converts the items of a page while keeping its metadata.
func MapPage[T any, R any](p *Page[T], fn func(*T) *R) *Page[R] {
	items := make([]*R, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return NewPage(items, p.Page, p.PageSize, p.Total)
}

// Slice holds one window of results and only knows whether another follows.
type Slice[T any] struct {
	Items    []*T
	Page     int
	PageSize int
	hasNext  bool
}

// NewSlice constructs a slice container.
func NewSlice[T any](items []*T, page int, pageSize int, hasNext bool) *Slice[T] {
	if items == nil {
		items = make([]*T, 0)
	}
	return &Slice[T]{Items: items, Page: page, PageSize: pageSize, hasNext: hasNext}
}

func (s *Slice[T]) IsFirst() bool { return s.Page == 0 }

func (s *Slice[T]) HasNext() bool { return s.hasNext }

func (s *Slice[T]) IsLast() bool { return !s.hasNext }
