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
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/tomoncle/memberdata/types"
)

type SQLError int

const (
	UnknownErr SQLError = iota
	NoRowsErr
	NoIndexErr
	NoColumnErr
	ExistIndexErr
	ExistColumnErr
	NoTableErr
	ExistTableErr
	DuplicateKeyErr
	NotNullViolationErr
	ForeignKeyViolationErr
	CheckConstraintViolationErr
	DataTruncatedErr
	InvalidTypeCastErr
)

func (e SQLError) String() string {
	switch e {
	case NoRowsErr:
		return "no rows"
	case NoIndexErr:
		return "no index"
	case NoColumnErr:
		return "no column"
	case ExistIndexErr:
		return "index exists"
	case ExistColumnErr:
		return "column exists"
	case NoTableErr:
		return "no table"
	case ExistTableErr:
		return "table exists"
	case DuplicateKeyErr:
		return "duplicate key"
	case NotNullViolationErr:
		return "not null violation"
	case ForeignKeyViolationErr:
		return "foreign key violation"
	case CheckConstraintViolationErr:
		return "check constraint violation"
	case DataTruncatedErr:
		return "data truncated"
	case InvalidTypeCastErr:
		return "invalid type cast"
	default:
		return "unknown"
	}
}

var mysqlErrors = map[uint16]SQLError{
	1091: NoIndexErr,
	1054: NoColumnErr,
	1061: ExistIndexErr,
	1060: ExistColumnErr,
	1146: NoTableErr,
	1050: ExistTableErr,
	1062: DuplicateKeyErr,
	1048: NotNullViolationErr,
	1216: ForeignKeyViolationErr,
	1217: ForeignKeyViolationErr,
	1451: ForeignKeyViolationErr,
	1452: ForeignKeyViolationErr,
	3819: CheckConstraintViolationErr,
	1265: DataTruncatedErr,
	1406: DataTruncatedErr,
}

var postgresErrors = map[pq.ErrorCode]SQLError{
	"42704": NoIndexErr,
	"42703": NoColumnErr,
	"42701": ExistColumnErr,
	"42P01": NoTableErr,
	"42P07": ExistTableErr,
	"23505": DuplicateKeyErr,
	"23502": NotNullViolationErr,
	"23503": ForeignKeyViolationErr,
	"23514": CheckConstraintViolationErr,
	"22001": DataTruncatedErr,
	"42804": InvalidTypeCastErr,
}

// IsSqlError classifies err. Driver error types are checked first, then the
// message is matched for drivers without typed errors such as SQLite.
func IsSqlError(err error) (is bool, sqlErr SQLError) {
	if err == nil {
		return false, UnknownErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true, NoRowsErr
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if kind, ok := mysqlErrors[mysqlErr.Number]; ok {
			return true, kind
		}
		return true, UnknownErr
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if kind, ok := postgresErrors[pqErr.Code]; ok {
			return true, kind
		}
		return true, UnknownErr
	}
	return classifyMessage(strings.ToLower(err.Error()))
}

func classifyMessage(s string) (bool, SQLError) {
	switch {
	case strings.Contains(s, "undefined column") ||
		strings.Contains(s, "no such column"):
		return true, NoColumnErr
	case strings.Contains(s, "no such index"):
		return true, NoIndexErr
	case strings.Contains(s, "undefined table") ||
		strings.Contains(s, "no such table"):
		return true, NoTableErr
	case strings.Contains(s, "already exists") && strings.Contains(s, "index"):
		return true, ExistIndexErr
	case strings.Contains(s, "already exists") && strings.Contains(s, "table"):
		return true, ExistTableErr
	case strings.Contains(s, "duplicate column name"):
		return true, ExistColumnErr
	case strings.Contains(s, "duplicate key value") ||
		strings.Contains(s, "unique constraint failed"):
		return true, DuplicateKeyErr
	case strings.Contains(s, "not null constraint failed") ||
		strings.Contains(s, "not-null constraint"):
		return true, NotNullViolationErr
	case strings.Contains(s, "foreign key constraint failed") ||
		strings.Contains(s, "foreign key violation"):
		return true, ForeignKeyViolationErr
	case strings.Contains(s, "check constraint"):
		return true, CheckConstraintViolationErr
	case strings.Contains(s, "data truncated") ||
		strings.Contains(s, "string data right truncation"):
		return true, DataTruncatedErr
	case strings.Contains(s, "datatype mismatch"):
		return true, InvalidTypeCastErr
	}
	return false, UnknownErr
}

// TranslateError maps a driver error onto the types error taxonomy, keeping
// the driver error in the chain. Errors that do not map are returned as is.
func TranslateError(err error) error {
	is, kind := IsSqlError(err)
	if !is {
		return err
	}
	switch kind {
	case NoRowsErr:
		return fmt.Errorf("%w: %w", types.ErrNotFound, err)
	case DuplicateKeyErr, NotNullViolationErr, ForeignKeyViolationErr, CheckConstraintViolationErr:
		return fmt.Errorf("%w: %s: %w", types.ErrConstraintViolation, kind, err)
	case DataTruncatedErr, InvalidTypeCastErr:
		return fmt.Errorf("%w: %s: %w", types.ErrValidation, kind, err)
	default:
		return err
	}
}
