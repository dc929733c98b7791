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
package cmd

import (
	"fmt"
	"os"

	"github.com/dglib/go-dglib/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint64 gets an expected unsigned integer flag, or exits if an error
// arises.
func GetUint64(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// readConfig reads the configuration named by the "config" flag, falling back
// to the defaults when none is given.  Flags explicitly set on the command line
// override the file.
func readConfig(cmd *cobra.Command) *config.Config {
	var (
		cfg  = config.Default()
		path = GetString(cmd, "config")
		err  error
	)
	//
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		log.Debugf("read configuration from %s", path)
	}
	//
	if flag := cmd.Flags().Lookup("capacity"); flag != nil && flag.Changed {
		cfg.Containers.DefaultCapacity = uint32(GetUint(cmd, "capacity"))
	}
	//
	if flag := cmd.Flags().Lookup("seed"); flag != nil && flag.Changed {
		cfg.Stress.Seed = GetUint64(cmd, "seed")
	}
	//
	if flag := cmd.Flags().Lookup("ops"); flag != nil && flag.Changed {
		cfg.Stress.Operations = GetUint(cmd, "ops")
	}
	//
	if flag := cmd.Flags().Lookup("max-key"); flag != nil && flag.Changed {
		cfg.Stress.MaxKey = GetUint(cmd, "max-key")
	}
	//
	if cfg.Containers.DefaultCapacity == 0 {
		fmt.Println("capacity must be positive")
		os.Exit(2)
	}
	//
	return cfg
}
