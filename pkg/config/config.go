// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/dglib/go-dglib/pkg/util/collection/arena"
)

const (
	defaultSeed       = 1
	defaultOperations = 10000
	defaultMaxKey     = 256
)

// Config captures the settings of the dglib tool, as read from a TOML file.
// Absent keys take their default values.
type Config struct {
	// Containers configures how containers are constructed.
	Containers struct {
		// DefaultCapacity is the initial capacity of freshly constructed
		// containers.
		DefaultCapacity uint32 `toml:"default-capacity"`
	} `toml:"containers"`

	// Stress configures the randomised stress runs.
	Stress struct {
		// Seed for the random operation sequence.
		Seed uint64 `toml:"seed"`
		// Operations is the number of operations applied to each container.
		Operations uint `toml:"operations"`
		// MaxKey bounds the keys (and values) used.
		MaxKey uint `toml:"max-key"`
	} `toml:"stress"`
}

// Default returns a configuration with every setting at its default.
func Default() *Config {
	var c Config
	// Cannot fail
	_ = c.adjust()
	//
	return &c
}

// Load reads a configuration from the given TOML file, applying defaults
// for absent settings.
func Load(path string) (*Config, error) {
	var c Config
	//
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	} else if err := c.adjust(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	//
	return &c, nil
}

// Parse a configuration from a TOML string, applying defaults for absent
// settings.
func Parse(text string) (*Config, error) {
	var c Config
	//
	if _, err := toml.Decode(text, &c); err != nil {
		return nil, err
	} else if err := c.adjust(); err != nil {
		return nil, err
	}
	//
	return &c, nil
}

func (c *Config) adjust() error {
	if c.Containers.DefaultCapacity == 0 {
		c.Containers.DefaultCapacity = arena.DefaultCapacity
	}
	if c.Stress.Seed == 0 {
		c.Stress.Seed = defaultSeed
	}
	if c.Stress.Operations == 0 {
		c.Stress.Operations = defaultOperations
	}
	if c.Stress.MaxKey == 0 {
		c.Stress.MaxKey = defaultMaxKey
	}
	if c.Stress.MaxKey > math.MaxUint32 {
		return fmt.Errorf("max key %d exceeds %d", c.Stress.MaxKey, uint(math.MaxUint32))
	}
	return nil
}
