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
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
)

// Table runs the statements a snapshot needs against one model type. Every
// method takes the bun.IDB to run on, so the same Table works inside and
// outside a transaction.
type Table[T any] struct {
	db  *bun.DB
	key string
}

// NewTable returns a Table keyed by the given column.
func NewTable[T any](db *bun.DB, key string) *Table[T] {
	return &Table[T]{db: db, key: key}
}

// All returns every row ordered by key.
func (t *Table[T]) All(ctx context.Context, idb bun.IDB) ([]*T, error) {
	rows := make([]*T, 0)
	err := idb.NewSelect().Model(&rows).OrderExpr("? ASC", bun.Ident(t.key)).Scan(ctx)
	return rows, err
}

// Upsert inserts rows, updating fields of rows whose key already exists. The
// statement is picked from the dialect's features.
func (t *Table[T]) Upsert(ctx context.Context, idb bun.IDB, fields []string, rows []*T) error {
	if len(fields) == 0 {
		return fmt.Errorf("fields cannot be empty")
	}
	if len(rows) == 0 {
		return nil
	}
	switch {
	case t.db.HasFeature(feature.InsertOnConflict):
		return t.upsertOnConflict(ctx, idb, fields, rows)
	case t.db.HasFeature(feature.InsertOnDuplicateKey):
		return t.upsertOnDuplicateKey(ctx, idb, fields, rows)
	default:
		return t.upsertFallback(ctx, idb, rows)
	}
}

func (t *Table[T]) upsertOnConflict(ctx context.Context, idb bun.IDB, fields []string, rows []*T) error {
	sets := make([]string, 0, len(fields))
	for _, field := range fields {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", field, field))
	}
	_, err := idb.NewInsert().
		Model(&rows).
		On(fmt.Sprintf("CONFLICT (%s) DO UPDATE", t.key)).
		Set(strings.Join(sets, ", ")).
		Exec(ctx)
	return err
}

func (t *Table[T]) upsertOnDuplicateKey(ctx context.Context, idb bun.IDB, fields []string, rows []*T) error {
	sets := make([]string, 0, len(fields))
	for _, field := range fields {
		sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", field, field))
	}
	_, err := idb.NewInsert().
		Model(&rows).
		On("DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")).
		Exec(ctx)
	return err
}

func (t *Table[T]) upsertFallback(ctx context.Context, idb bun.IDB, rows []*T) error {
	for _, row := range rows {
		if _, err := idb.NewInsert().Model(row).Exec(ctx); err != nil {
			if _, updateErr := idb.NewUpdate().Model(row).WherePK().Exec(ctx); updateErr != nil {
				return fmt.Errorf("upsert failed: insert error: %v, update error: %w", err, updateErr)
			}
		}
	}
	return nil
}

// DeleteExcept removes every row whose key is not in keep and reports how
// many rows went away. An empty keep empties the table.
func (t *Table[T]) DeleteExcept(ctx context.Context, idb bun.IDB, keep []interface{}) (int64, error) {
	q := idb.NewDelete().Model((*T)(nil))
	if len(keep) > 0 {
		q = q.Where("? NOT IN (?)", bun.Ident(t.key), bun.In(keep))
	} else {
		q = q.Where("1 = 1")
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
