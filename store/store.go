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

package store

import (
	"sync"

	"github.com/tomoncle/memberdata/types"
)

// Identifiable is implemented by entity pointers held in a Store.
type Identifiable interface {
	ID() int64
	AssignID(id int64) error
}

// Store holds the canonical copy of every entity of one type, in insertion
// order. Mutators take the exclusive lock, readers share it.
type Store[E Identifiable] struct {
	name   string
	mu     sync.RWMutex
	byID   map[int64]E
	order  []int64
	nextID int64
}

// New returns an empty store; name is used in error messages.
func New[E Identifiable](name string) *Store[E] {
	return &Store[E]{
		name:   name,
		byID:   make(map[int64]E),
		nextID: 1,
	}
}

func (s *Store[E]) Name() string { return s.name }

// Insert assigns a fresh identity to e and stores it.
func (s *Store[E]) Insert(e E) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID() != 0 {
		return 0, types.Violation("%s %d is already persisted", s.name, e.ID())
	}
	id := s.nextID
	if err := e.AssignID(id); err != nil {
		return 0, err
	}
	s.nextID++
	s.byID[id] = e
	s.order = append(s.order, id)
	return id, nil
}

// Restore stores an entity that already carries its identity and moves the
// sequence past it.
func (s *Store[E]) Restore(e E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := e.ID()
	if id <= 0 {
		return types.Violation("%s has no identity to restore", s.name)
	}
	if _, ok := s.byID[id]; ok {
		return types.Violation("%s %d already exists", s.name, id)
	}
	s.byID[id] = e
	s.order = append(s.order, id)
	if id >= s.nextID {
		s.nextID = id + 1
	}
	return nil
}

func (s *Store[E]) Get(id int64) (E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		var zero E
		return zero, types.NotFound("%s %d", s.name, id)
	}
	return e, nil
}

func (s *Store[E]) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return types.NotFound("%s %d", s.name, id)
	}
	delete(s.byID, id)
	for i, held := range s.order {
		if held == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store[E]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// All returns the stored entities in insertion order. The slice is a snapshot;
// its elements are the canonical references.
func (s *Store[E]) All() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store[E]) snapshot() []E {
	items := make([]E, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.byID[id])
	}
	return items
}

// Mutate runs fn over a snapshot while holding the exclusive lock. fn must
// validate everything it needs before its first write so a failure leaves the
// store unchanged.
func (s *Store[E]) Mutate(fn func(items []E) (int, error)) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.snapshot())
}

// Clear drops every entity. The sequence is kept so identities are never reused.
func (s *Store[E]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[int64]E)
	s.order = nil
}

// Sequence returns the identity the next Insert will assign.
func (s *Store[E]) Sequence() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID
}

// AdvanceSequence moves the sequence forward to next. It never moves back.
func (s *Store[E]) AdvanceSequence(next int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next > s.nextID {
		s.nextID = next
	}
}
