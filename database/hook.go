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
	"database/sql"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"
)

var bunSqlSilentMode atomic.Bool

// EnableBunSqlSilent mutes the query hooks, e.g. while migrations run.
func EnableBunSqlSilent(b bool) {
	bunSqlSilentMode.Store(b)
}

func operationColor(operation string) *color.Color {
	switch operation {
	case "SELECT":
		return color.New(color.FgGreen)
	case "INSERT":
		return color.New(color.FgBlue)
	case "UPDATE":
		return color.New(color.FgYellow)
	case "DELETE":
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgRed)
	}
}

// QueryHook logs failed queries and, when slowTime is positive, queries that
// ran longer than slowTime.
type QueryHook struct {
	logger   Logger
	slowTime time.Duration
}

var _ bun.QueryHook = (*QueryHook)(nil)

func NewQueryHook(logger Logger, slowTime time.Duration) *QueryHook {
	if logger == nil {
		logger = GetLogger()
	}
	return &QueryHook{logger: logger, slowTime: slowTime}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if bunSqlSilentMode.Load() {
		return
	}
	duration := time.Since(event.StartTime).Round(time.Microsecond)
	operation := event.Operation()

	if event.Err != nil {
		if errors.Is(event.Err, sql.ErrNoRows) || errors.Is(event.Err, sql.ErrTxDone) {
			return
		}
		h.logger.Error("Database query failed",
			"operation", operation,
			"duration", duration,
			"query", operationColor(operation).Sprint(event.Query),
			"error", color.New(color.BgRed).Sprint(event.Err.Error()),
		)
		return
	}

	if h.slowTime > 0 && duration > h.slowTime {
		h.logger.Warn("Database slow query detected",
			"operation", operation,
			"duration", duration,
			"slow_threshold", h.slowTime,
			"query", color.New(color.FgYellow, color.Bold).Sprint(event.Query),
		)
	}
}
