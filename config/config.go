// Copyright (C) 2026 The izgo Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads the tunables that govern sieve segmentation,
// primality-test strength, and worker fan-out, via a small
// YAML-or-JSON document (sigs.k8s.io/yaml round-trips either).
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Config holds every tunable this module's CLI and library surface
// accept, with defaults matching the original implementation's
// hardcoded constants. Only WorkerCount is read in this module (by
// cmd/izprime); VxLimit, TestRounds and CacheDir are decoded and
// defaulted but not passed to any sieve, oracle or file writer.
type Config struct {
	// VxLimit bounds how many wheel primes a segmented sieve folds
	// into its base pattern (compute_limited_vx's vx_limit).
	VxLimit int `json:"vxLimit"`

	// TestRounds is the Miller-Rabin round count for probabilistic
	// primality testing.
	TestRounds int `json:"testRounds"`

	// WorkerCount is the default number of worker subprocesses a
	// random-prime search fans out across.
	WorkerCount int `json:"workerCount"`

	// CacheDir names a directory for persisted Bitmap/PrimeList/GapList
	// containers.
	CacheDir string `json:"cacheDir"`
}

// Default returns the configuration the original implementation's
// constants imply.
func Default() Config {
	return Config{
		VxLimit:     6,
		TestRounds:  25,
		WorkerCount: 1,
		CacheDir:    ".izgo-cache",
	}
}

// Load reads a YAML or JSON config document from path, filling in
// Default() for any field the document omits.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
