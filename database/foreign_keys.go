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
	"fmt"
	"os"
	"strings"

	"github.com/uptrace/bun"
	"gopkg.in/yaml.v3"
)

var referentialActions = []string{"CASCADE", "RESTRICT", "SET NULL", "NO ACTION"}

// ForeignKeyConstraint describes a foreign key relationship between tables.
type ForeignKeyConstraint struct {
	Table           string `yaml:"table"`
	Column          string `yaml:"column"`
	ReferenceTable  string `yaml:"reference_table"`
	ReferenceColumn string `yaml:"reference_column"`
	OnDelete        string `yaml:"on_delete"` // CASCADE, RESTRICT, SET NULL, NO ACTION
	OnUpdate        string `yaml:"on_update"`
	ConstraintName  string `yaml:"constraint_name"`
	Description     string `yaml:"description,omitempty"`
}

// ForeignKeyConfig is the YAML document listing foreign key constraints.
type ForeignKeyConfig struct {
	ForeignKeys []ForeignKeyConstraint `yaml:"foreign_keys"`
}

// GenerateConstraintName returns the explicit name or a derived name.
func (fk *ForeignKeyConstraint) GenerateConstraintName() string {
	if fk.ConstraintName != "" {
		return fk.ConstraintName
	}
	return fmt.Sprintf("fk_%s_%s", fk.Table, fk.Column)
}

// apply adds the constraint to a CREATE TABLE statement. Constraints are
// declared with the table because SQLite cannot add them afterwards.
func (fk *ForeignKeyConstraint) apply(q *bun.CreateTableQuery) *bun.CreateTableQuery {
	clause := "(?) REFERENCES ? (?)"
	args := []interface{}{bun.Ident(fk.Column), bun.Ident(fk.ReferenceTable), bun.Ident(fk.ReferenceColumn)}
	if fk.OnDelete != "" {
		clause += " ON DELETE " + strings.ToUpper(fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		clause += " ON UPDATE " + strings.ToUpper(fk.OnUpdate)
	}
	return q.ForeignKey(clause, args...)
}

// DefaultForeignKeys are used when no foreign key file is configured.
func DefaultForeignKeys() []ForeignKeyConstraint {
	return []ForeignKeyConstraint{
		{
			Table:           "members",
			Column:          "team_id",
			ReferenceTable:  "teams",
			ReferenceColumn: "id",
			OnDelete:        "SET NULL",
			ConstraintName:  "fk_members_team_id",
		},
	}
}

// LoadForeignKeyConfig reads constraints from a YAML file.
func LoadForeignKeyConfig(path string) ([]ForeignKeyConstraint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read foreign key file: %w", err)
	}
	var config ForeignKeyConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse foreign key file: %w", err)
	}
	return config.ForeignKeys, nil
}

// ForeignKeyManager holds the constraints applied when tables are created.
type ForeignKeyManager struct {
	constraints []ForeignKeyConstraint
	logger      Logger
}

// NewForeignKeyManager loads constraints from path, falling back to
// DefaultForeignKeys when path is empty or unreadable.
func NewForeignKeyManager(logger Logger, path string) *ForeignKeyManager {
	constraints := DefaultForeignKeys()
	if path != "" {
		loaded, err := LoadForeignKeyConfig(path)
		if err != nil {
			if logger != nil {
				logger.Warn("Failed to load foreign key constraints, using defaults", "error", err, "config_path", path)
			}
		} else {
			constraints = loaded
		}
	}
	return &ForeignKeyManager{constraints: constraints, logger: logger}
}

// GetConstraintsByTable returns the constraints declared on a table.
func (fkm *ForeignKeyManager) GetConstraintsByTable(tableName string) []ForeignKeyConstraint {
	var result []ForeignKeyConstraint
	for _, constraint := range fkm.constraints {
		if strings.EqualFold(constraint.Table, tableName) {
			result = append(result, constraint)
		}
	}
	return result
}

func (fkm *ForeignKeyManager) ListAllConstraints() []ForeignKeyConstraint {
	return fkm.constraints
}

// ValidateConstraints checks the configured constraints for missing names
// and unknown referential actions.
func (fkm *ForeignKeyManager) ValidateConstraints() []error {
	var errs []error
	for _, c := range fkm.constraints {
		if c.Table == "" {
			errs = append(errs, fmt.Errorf("table name cannot be empty"))
		}
		if c.Column == "" {
			errs = append(errs, fmt.Errorf("column name cannot be empty: %s", c.Table))
		}
		if c.ReferenceTable == "" {
			errs = append(errs, fmt.Errorf("reference table name cannot be empty: %s.%s", c.Table, c.Column))
		}
		if c.ReferenceColumn == "" {
			errs = append(errs, fmt.Errorf("reference column name cannot be empty: %s.%s -> %s", c.Table, c.Column, c.ReferenceTable))
		}
		if c.OnDelete != "" && !validAction(c.OnDelete) {
			errs = append(errs, fmt.Errorf("invalid delete policy: %s, constraint: %s", c.OnDelete, c.GenerateConstraintName()))
		}
		if c.OnUpdate != "" && !validAction(c.OnUpdate) {
			errs = append(errs, fmt.Errorf("invalid update policy: %s, constraint: %s", c.OnUpdate, c.GenerateConstraintName()))
		}
	}
	return errs
}

func validAction(action string) bool {
	for _, a := range referentialActions {
		if strings.EqualFold(action, a) {
			return true
		}
	}
	return false
}
