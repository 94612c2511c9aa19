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

package memberdata

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/tomoncle/memberdata/audit"
	"github.com/tomoncle/memberdata/database"
	"github.com/tomoncle/memberdata/entity"
	"github.com/tomoncle/memberdata/repository"
	"github.com/tomoncle/memberdata/store"
	"github.com/tomoncle/memberdata/utils"
)

var logger = utils.NewLogger("MEMBERDATA")

// Service wires the entity stores, the audit stamper and the repositories,
// and optionally flushes the stores to a relational database.
type Service struct {
	Members repository.MemberRepository
	Teams   repository.TeamRepository

	members *store.Store[*entity.Member]
	teams   *store.Store[*entity.Team]
	linker  *entity.Linker

	mu       sync.Mutex
	db       *bun.DB
	snapshot *database.SnapshotStore
	closer   func() error
}

type serviceOptions struct {
	stamperOpts []audit.Option
	db          *bun.DB
}

// Option configures a Service.
type Option func(*serviceOptions)

// WithActorProvider sets where audit actors come from.
func WithActorProvider(p audit.ActorProvider) Option {
	return func(o *serviceOptions) { o.stamperOpts = append(o.stamperOpts, audit.WithActorProvider(p)) }
}

// WithClock sets the audit clock.
func WithClock(c audit.Clock) Option {
	return func(o *serviceOptions) { o.stamperOpts = append(o.stamperOpts, audit.WithClock(c)) }
}

// WithDatabase binds the service to db instead of the global database.
func WithDatabase(db *bun.DB) Option {
	return func(o *serviceOptions) { o.db = db }
}

func NewService(opts ...Option) *Service {
	o := &serviceOptions{}
	for _, opt := range opts {
		opt(o)
	}
	members := store.New[*entity.Member]("member")
	teams := store.New[*entity.Team]("team")
	linker := entity.NewLinker(teams)
	stamper := audit.NewStamper(o.stamperOpts...)
	return &Service{
		Members: repository.NewMemberRepository(members, teams, stamper, linker),
		Teams:   repository.NewTeamRepository(teams, stamper),
		members: members,
		teams:   teams,
		linker:  linker,
		db:      o.db,
	}
}

// Open connects to the configured database, migrates it, loads its contents
// and seeds an empty database when DataInitConfig asks for it.
func Open(ctx context.Context, cfg *database.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	db, err := database.InitDatabaseWithOptions(ctx, cfg, true)
	if err != nil {
		return nil, err
	}
	s := NewService(append(opts, WithDatabase(db))...)
	s.closer = func() error {
		if database.GetDB() != db {
			return nil
		}
		return database.CloseDB()
	}

	if err := s.Reload(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	initCfg := cfg.DataInitConfig
	if initCfg.AutoInitOnStartup && initCfg.Filepath != "" && s.Members.Count() == 0 && s.Teams.Count() == 0 {
		if err := s.seedFromFile(ctx, initCfg.Filepath); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Service) seedFromFile(ctx context.Context, path string) error {
	seed, err := LoadSeed(path)
	if err != nil {
		return err
	}
	if err := s.Seed(ctx, seed); err != nil {
		return err
	}
	if err := s.Flush(ctx); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"teams": len(seed.Teams), "members": len(seed.Members), "file": path}).
		Info("seed data loaded")
	return nil
}

// Close releases the database opened by Open, unless another Open has
// replaced it since. Services built with NewService leave their database alone.
func (s *Service) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// snapshotStore binds to the database on first use, falling back to the
// global database when none was given.
func (s *Service) snapshotStore() (*database.SnapshotStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot != nil {
		return s.snapshot, nil
	}
	db := s.db
	if db == nil {
		db = database.GetDB()
	}
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	s.snapshot = database.NewSnapshotStore(db, nil)
	return s.snapshot, nil
}

// Flush writes the current stores, including both identity sequences, to the
// database in one transaction.
func (s *Service) Flush(ctx context.Context) error {
	snapshots, err := s.snapshotStore()
	if err != nil {
		return err
	}
	snap := &database.Snapshot{
		Sequences: map[string]int64{
			database.TeamSequence:   s.teams.Sequence(),
			database.MemberSequence: s.members.Sequence(),
		},
	}
	for _, t := range s.teams.All() {
		snap.Teams = append(snap.Teams, database.NewTeamModel(t))
	}
	for _, m := range s.members.All() {
		snap.Members = append(snap.Members, database.NewMemberModel(m))
	}
	if err := snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	logger.WithFields(logrus.Fields{"teams": len(snap.Teams), "members": len(snap.Members)}).Debug("stores flushed")
	return nil
}

// Clear drops every in-memory entity. Identity sequences are kept, and
// references obtained earlier are no longer managed.
func (s *Service) Clear() {
	s.members.Clear()
	s.teams.Clear()
}

// Reload clears the stores and loads them from the database. Unflushed
// changes are lost.
func (s *Service) Reload(ctx context.Context) error {
	snapshots, err := s.snapshotStore()
	if err != nil {
		return err
	}
	snap, err := snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}

	s.Clear()
	s.teams.AdvanceSequence(snap.Sequences[database.TeamSequence])
	s.members.AdvanceSequence(snap.Sequences[database.MemberSequence])
	for _, row := range snap.Teams {
		if err := s.teams.Restore(row.ToEntity()); err != nil {
			return fmt.Errorf("reload team %d: %w", row.ID, err)
		}
	}
	for _, row := range snap.Members {
		m := row.ToEntity()
		if err := s.members.Restore(m); err != nil {
			return fmt.Errorf("reload member %d: %w", row.ID, err)
		}
		if row.TeamID == nil {
			continue
		}
		team, err := s.teams.Get(*row.TeamID)
		if err != nil {
			return fmt.Errorf("reload member %d: %w", row.ID, err)
		}
		if err := s.linker.Link(m, team); err != nil {
			return fmt.Errorf("reload member %d: %w", row.ID, err)
		}
	}
	logger.WithFields(logrus.Fields{"teams": len(snap.Teams), "members": len(snap.Members)}).Debug("stores reloaded")
	return nil
}

type bulkOptions struct {
	clearAutomatically bool
}

// BulkOption configures BulkAgePlusInDatabase.
type BulkOption func(*bulkOptions)

// ClearAutomatically reloads the stores after the bulk statement so later
// reads see the new values.
func ClearAutomatically() BulkOption {
	return func(o *bulkOptions) { o.clearAutomatically = true }
}

// BulkAgePlusInDatabase runs the age increment as one UPDATE statement. The
// in-memory stores keep their old values unless ClearAutomatically is given.
func (s *Service) BulkAgePlusInDatabase(ctx context.Context, threshold int, opts ...BulkOption) (int64, error) {
	o := &bulkOptions{}
	for _, opt := range opts {
		opt(o)
	}
	snapshots, err := s.snapshotStore()
	if err != nil {
		return 0, err
	}
	n, err := snapshots.BulkAgePlus(ctx, threshold)
	if err != nil {
		return 0, err
	}
	if o.clearAutomatically {
		if err := s.Reload(ctx); err != nil {
			return n, err
		}
	} else {
		logger.WithFields(logrus.Fields{"threshold": threshold, "affected": n}).
			Debug("database bulk update leaves loaded members stale until reload")
	}
	return n, nil
}
