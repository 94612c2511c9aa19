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

	"github.com/uptrace/bun"
)

// Snapshot is the persisted form of the in-memory stores.
type Snapshot struct {
	Teams     []*TeamModel
	Members   []*MemberModel
	Sequences map[string]int64
}

// SnapshotStore writes and reads whole snapshots.
type SnapshotStore struct {
	db        *bun.DB
	logger    Logger
	teams     *Table[TeamModel]
	members   *Table[MemberModel]
	sequences *Table[SequenceModel]
}

func NewSnapshotStore(db *bun.DB, logger Logger) *SnapshotStore {
	if logger == nil {
		logger = GetLogger()
	}
	return &SnapshotStore{
		db:        db,
		logger:    logger,
		teams:     NewTable[TeamModel](db, "id"),
		members:   NewTable[MemberModel](db, "id"),
		sequences: NewTable[SequenceModel](db, "name"),
	}
}

// Save replaces the stored snapshot in one transaction. Rows missing from
// snap are deleted; members go before teams so foreign keys hold throughout.
func (s *SnapshotStore) Save(ctx context.Context, snap *Snapshot) error {
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := s.teams.Upsert(ctx, tx, []string{"name"}, snap.Teams); err != nil {
			return err
		}
		memberFields := []string{"username", "age", "team_id", "created_by", "created_at", "last_modified_by", "last_modified_at"}
		if err := s.members.Upsert(ctx, tx, memberFields, snap.Members); err != nil {
			return err
		}

		memberIDs := make([]interface{}, 0, len(snap.Members))
		for _, m := range snap.Members {
			memberIDs = append(memberIDs, m.ID)
		}
		removedMembers, err := s.members.DeleteExcept(ctx, tx, memberIDs)
		if err != nil {
			return err
		}
		teamIDs := make([]interface{}, 0, len(snap.Teams))
		for _, t := range snap.Teams {
			teamIDs = append(teamIDs, t.ID)
		}
		removedTeams, err := s.teams.DeleteExcept(ctx, tx, teamIDs)
		if err != nil {
			return err
		}

		sequences := make([]*SequenceModel, 0, len(snap.Sequences))
		for _, name := range []string{TeamSequence, MemberSequence} {
			if next, ok := snap.Sequences[name]; ok {
				sequences = append(sequences, &SequenceModel{Name: name, NextID: next})
			}
		}
		if err := s.sequences.Upsert(ctx, tx, []string{"next_id"}, sequences); err != nil {
			return err
		}

		s.logger.Debug("Snapshot saved",
			"teams", len(snap.Teams), "members", len(snap.Members),
			"removed_teams", removedTeams, "removed_members", removedMembers)
		return nil
	})
	return TranslateError(err)
}

// Load reads the whole snapshot.
func (s *SnapshotStore) Load(ctx context.Context) (*Snapshot, error) {
	teams, err := s.teams.All(ctx, s.db)
	if err != nil {
		return nil, TranslateError(err)
	}
	members, err := s.members.All(ctx, s.db)
	if err != nil {
		return nil, TranslateError(err)
	}
	sequences, err := s.sequences.All(ctx, s.db)
	if err != nil {
		return nil, TranslateError(err)
	}
	snap := &Snapshot{Teams: teams, Members: members, Sequences: make(map[string]int64, len(sequences))}
	for _, seq := range sequences {
		snap.Sequences[seq.Name] = seq.NextID
	}
	return snap, nil
}

// BulkAgePlus increments age for every stored member with age >= threshold
// and returns the number of rows changed. Audit columns are not touched.
func (s *SnapshotStore) BulkAgePlus(ctx context.Context, threshold int) (int64, error) {
	res, err := s.db.NewUpdate().
		Model((*MemberModel)(nil)).
		Set("age = age + 1").
		Where("age >= ?", threshold).
		Exec(ctx)
	if err != nil {
		return 0, TranslateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	s.logger.Debug("Bulk age update executed", "threshold", threshold, "affected", n)
	return n, nil
}
