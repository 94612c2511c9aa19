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

package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tomoncle/memberdata/audit"
	"github.com/tomoncle/memberdata/entity"
	"github.com/tomoncle/memberdata/store"
	"github.com/tomoncle/memberdata/types"
	"github.com/tomoncle/memberdata/utils"
)

var logger = utils.NewLogger("REPOSITORY")

// persistable is satisfied by pointers to entities carrying an Identity.
type persistable[T any] interface {
	*T
	store.Identifiable
	IsNew() bool
}

type baseRepositoryImpl[T any, E persistable[T]] struct {
	store        *store.Store[E]
	stamper      *audit.Stamper
	beforeDelete func(ctx context.Context, e E) error
}

func newBaseRepository[T any, E persistable[T]](s *store.Store[E], stamper *audit.Stamper) *baseRepositoryImpl[T, E] {
	if stamper == nil {
		stamper = audit.NewStamper()
	}
	return &baseRepositoryImpl[T, E]{store: s, stamper: stamper}
}

func (r *baseRepositoryImpl[T, E]) fields(id int64) logrus.Fields {
	return logrus.Fields{"entity": r.store.Name(), "id": id}
}

func (r *baseRepositoryImpl[T, E]) Save(ctx context.Context, e E) (E, error) {
	if e == nil {
		return nil, types.Violation("%s entity is required", r.store.Name())
	}
	if e.IsNew() {
		id, err := r.store.Insert(e)
		if err != nil {
			return nil, fmt.Errorf("save %s: %w", r.store.Name(), err)
		}
		if a, ok := any(e).(entity.Auditable); ok {
			r.stamper.StampInsert(ctx, a)
		}
		logger.WithFields(r.fields(id)).Debug("entity inserted")
		return e, nil
	}

	current, err := r.store.Get(e.ID())
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", r.store.Name(), err)
	}
	if current != e {
		return nil, types.Violation("%s %d is not the instance held by the store", r.store.Name(), e.ID())
	}
	if a, ok := any(e).(entity.Auditable); ok {
		r.stamper.StampUpdate(ctx, a)
	}
	logger.WithFields(r.fields(e.ID())).Debug("entity updated")
	return e, nil
}

func (r *baseRepositoryImpl[T, E]) FindByID(id int64) (E, error) {
	return r.store.Get(id)
}

func (r *baseRepositoryImpl[T, E]) FindAll() []E {
	return r.store.All()
}

func (r *baseRepositoryImpl[T, E]) Count() int {
	return r.store.Count()
}

func (r *baseRepositoryImpl[T, E]) Delete(ctx context.Context, e E) error {
	if e == nil {
		return types.Violation("%s entity is required", r.store.Name())
	}
	if e.IsNew() {
		return types.NotFound("%s has no identity", r.store.Name())
	}
	return r.DeleteByID(ctx, e.ID())
}

func (r *baseRepositoryImpl[T, E]) DeleteByID(ctx context.Context, id int64) error {
	e, err := r.store.Get(id)
	if err != nil {
		return err
	}
	if r.beforeDelete != nil {
		if err := r.beforeDelete(ctx, e); err != nil {
			return err
		}
	}
	if err := r.store.Delete(id); err != nil {
		return err
	}
	logger.WithFields(r.fields(id)).Debug("entity deleted")
	return nil
}

// managed returns an error unless e is the instance the store holds.
func (r *baseRepositoryImpl[T, E]) managed(e E) error {
	if e == nil {
		return types.Violation("%s entity is required", r.store.Name())
	}
	if e.IsNew() {
		return types.Violation("%s is not persisted", r.store.Name())
	}
	current, err := r.store.Get(e.ID())
	if err != nil {
		return err
	}
	if current != e {
		return types.Violation("%s %d is not the instance held by the store", r.store.Name(), e.ID())
	}
	return nil
}
