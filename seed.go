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
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tomoncle/memberdata/entity"
	"github.com/tomoncle/memberdata/types"
)

// Seed is the YAML fixture used to populate an empty database:
//
//	teams:
//	  - name: teamA
//	members:
//	  - username: member1
//	    age: 10
//	    team: teamA
type Seed struct {
	Teams   []SeedTeam   `yaml:"teams"`
	Members []SeedMember `yaml:"members"`
}

type SeedTeam struct {
	Name string `yaml:"name"`
}

type SeedMember struct {
	Username string `yaml:"username"`
	Age      int    `yaml:"age"`
	Team     string `yaml:"team,omitempty"`
}

func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return seed, nil
}

// ParseSeed decodes and validates a YAML seed.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, types.Invalid("malformed seed: %v", err)
	}
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// Validate requires unique non-empty team names, non-empty usernames and
// member teams that the seed declares.
func (s *Seed) Validate() error {
	teams := make(map[string]struct{}, len(s.Teams))
	for i, t := range s.Teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return types.Invalid("seed team %d has no name", i)
		}
		if _, dup := teams[name]; dup {
			return types.Invalid("seed team %q is declared twice", name)
		}
		teams[name] = struct{}{}
	}
	for i, m := range s.Members {
		if strings.TrimSpace(m.Username) == "" {
			return types.Invalid("seed member %d has no username", i)
		}
		if m.Team == "" {
			continue
		}
		if _, ok := teams[strings.TrimSpace(m.Team)]; !ok {
			return types.Invalid("seed member %q references unknown team %q", m.Username, m.Team)
		}
	}
	return nil
}

// Seed saves the seed's teams and members through the repositories, so they
// are audited and linked like any other save. The seed is validated before
// anything is written.
func (s *Service) Seed(ctx context.Context, seed *Seed) error {
	if seed == nil {
		return types.Invalid("seed is required")
	}
	if err := seed.Validate(); err != nil {
		return err
	}
	teams := make(map[string]*entity.Team, len(seed.Teams))
	for _, t := range seed.Teams {
		name := strings.TrimSpace(t.Name)
		saved, err := s.Teams.Save(ctx, entity.NewTeam(name))
		if err != nil {
			return fmt.Errorf("seed team %q: %w", name, err)
		}
		teams[name] = saved
	}
	for _, sm := range seed.Members {
		m, err := s.Members.Save(ctx, entity.NewMemberWithAge(sm.Username, sm.Age))
		if err != nil {
			return fmt.Errorf("seed member %q: %w", sm.Username, err)
		}
		if sm.Team == "" {
			continue
		}
		if err := s.Members.ChangeTeam(ctx, m, teams[strings.TrimSpace(sm.Team)]); err != nil {
			return fmt.Errorf("seed member %q: %w", sm.Username, err)
		}
	}
	return nil
}
