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
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func openTestDB(t *testing.T) *bun.DB {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ConnectionConfig.DBName = filepath.Join(t.TempDir(), "memberdata")

	manager := NewDatabaseManager(&cfg.ConnectionConfig, cfg.DataMigrateConfig)
	ctx := context.Background()
	require.NoError(t, manager.Connect(ctx))
	t.Cleanup(func() { _ = manager.Disconnect() })
	require.NoError(t, manager.RunMigrations(ctx))
	require.True(t, manager.HealthCheck(ctx).Healthy)
	return manager.GetDB()
}

func strPtr(s string) *string { return &s }

func TestMigrationsAreRecordedOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	mm := NewMigrationManager(db, nil, DefaultConfig().DataMigrateConfig)
	require.NoError(t, mm.RunMigrations(ctx))

	applied, err := mm.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 2)
	require.Equal(t, "001", applied[0].Version)
	require.Equal(t, "create_member_indexes", applied[1].Name)
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	snapshots := NewSnapshotStore(db, nil)

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	teamID := int64(1)
	snap := &Snapshot{
		Teams: []*TeamModel{{ID: 1, Name: "teamA"}, {ID: 2, Name: "teamB"}},
		Members: []*MemberModel{
			{ID: 1, Username: "member1", Age: 10, TeamID: &teamID, CreatedBy: strPtr("admin"), CreatedAt: created, LastModifiedBy: strPtr("admin"), LastModifiedAt: created},
			{ID: 3, Username: "member3", Age: 30},
		},
		Sequences: map[string]int64{TeamSequence: 3, MemberSequence: 4},
	}
	require.NoError(t, snapshots.Save(ctx, snap))

	loaded, err := snapshots.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Teams, 2)
	require.Len(t, loaded.Members, 2)
	require.Equal(t, int64(3), loaded.Sequences[TeamSequence])
	require.Equal(t, int64(4), loaded.Sequences[MemberSequence])

	m1 := loaded.Members[0]
	require.Equal(t, "member1", m1.Username)
	require.NotNil(t, m1.TeamID)
	require.Equal(t, int64(1), *m1.TeamID)
	require.Equal(t, "admin", *m1.CreatedBy)
	require.True(t, created.Equal(m1.CreatedAt), "created_at %v", m1.CreatedAt)
	require.Nil(t, loaded.Members[1].TeamID)
	require.Nil(t, loaded.Members[1].CreatedBy)
	require.True(t, loaded.Members[1].CreatedAt.IsZero())

	snap.Teams = snap.Teams[:1]
	snap.Teams[0].Name = "renamed"
	snap.Members = snap.Members[:1]
	snap.Members[0].Age = 11
	snap.Sequences[MemberSequence] = 5
	require.NoError(t, snapshots.Save(ctx, snap))

	loaded, err = snapshots.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Teams, 1)
	require.Equal(t, "renamed", loaded.Teams[0].Name)
	require.Len(t, loaded.Members, 1)
	require.Equal(t, 11, loaded.Members[0].Age)
	require.Equal(t, int64(5), loaded.Sequences[MemberSequence])

	require.NoError(t, snapshots.Save(ctx, &Snapshot{}))
	loaded, err = snapshots.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded.Teams)
	require.Empty(t, loaded.Members)
}

func TestSnapshotBulkAgePlus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	snapshots := NewSnapshotStore(db, nil)

	snap := &Snapshot{Sequences: map[string]int64{}}
	for i, age := range []int{10, 19, 20, 21, 40} {
		snap.Members = append(snap.Members, &MemberModel{ID: int64(i + 1), Username: "m", Age: age})
	}
	require.NoError(t, snapshots.Save(ctx, snap))

	n, err := snapshots.BulkAgePlus(ctx, 20)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	loaded, err := snapshots.Load(ctx)
	require.NoError(t, err)
	var ages []int
	for _, m := range loaded.Members {
		ages = append(ages, m.Age)
	}
	require.Equal(t, []int{10, 19, 21, 22, 41}, ages)
}

func TestForeignKeyManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fk.yaml")
	fkm := NewForeignKeyManager(nil, path)
	require.Len(t, fkm.GetConstraintsByTable("MEMBERS"), 1)
	require.Empty(t, fkm.ValidateConstraints())

	bad := &ForeignKeyManager{constraints: []ForeignKeyConstraint{{Table: "members", OnDelete: "EXPLODE"}}}
	require.Len(t, bad.ValidateConstraints(), 4)
	require.Equal(t, "fk_members_", bad.constraints[0].GenerateConstraintName())
}
