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

// Command izprime drives the iZ-Matrix prime engine: sieving a range,
// finding the next prime from a base, and generating random primes of
// a given bit size (optionally fanning the search out across worker
// subprocesses).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/Zprime137/izgo/config"
	"github.com/Zprime137/izgo/iz"
	"github.com/Zprime137/izgo/izsieve"
	"github.com/Zprime137/izgo/nextprime"
	"github.com/Zprime137/izgo/ptest"
	"github.com/Zprime137/izgo/randomprime"
	"github.com/Zprime137/izgo/sieve"
)

var (
	dashConfig  string
	dashWorkers int
	dashForward bool
)

func init() {
	flag.StringVar(&dashConfig, "config", "", "path to a YAML/JSON config file (optional)")
	flag.IntVar(&dashWorkers, "workers", 0, "worker subprocess count for random-prime search (0 uses config default)")
	flag.BoolVar(&dashForward, "forward", true, "search forward (next-prime) vs. backward (previous-prime)")
}

func exitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func loadConfig() config.Config {
	if dashConfig == "" {
		return config.Default()
	}
	cfg, err := config.Load(dashConfig)
	if err != nil {
		exitf("loading config: %s", err)
	}
	return cfg
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "usage:\n")
		fmt.Fprintf(os.Stderr, "    %s sieve <n>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        sieve every prime up to n using sieve-iZm\n")
		fmt.Fprintf(os.Stderr, "    %s next-prime <base>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        find the next (or, with -forward=false, previous) prime from base\n")
		fmt.Fprintf(os.Stderr, "    %s random-prime <bit-size>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        generate a random prime of roughly bit-size bits\n")
		fmt.Fprintf(os.Stderr, "    %s search-worker <matrix-id> <vx>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        internal: one random-prime search worker (spawned by random-prime)\n")
		fmt.Fprintf(os.Stderr, "flag usage:\n")
		flag.Usage()
		os.Exit(1)
	}

	switch args[0] {
	case "sieve":
		if len(args) != 2 {
			exitf("usage: sieve <n>")
		}
		runSieve(args[1])
	case "next-prime":
		if len(args) != 2 {
			exitf("usage: next-prime <base>")
		}
		runNextPrime(args[1])
	case "random-prime":
		if len(args) != 2 {
			exitf("usage: random-prime <bit-size>")
		}
		runRandomPrime(args[1])
	case "search-worker":
		if len(args) != 3 {
			exitf("usage: search-worker <matrix-id> <vx>")
		}
		runSearchWorker(args[1], args[2])
	default:
		exitf("unknown command %q", args[0])
	}
}

func runSieve(nArg string) {
	n, err := strconv.ParseUint(nArg, 10, 64)
	if err != nil {
		exitf("invalid n: %s", err)
	}

	primes, err := izsieve.SieveIZm(n)
	if err != nil {
		exitf("sieve failed: %s", err)
	}
	log.Printf("found %d primes up to %d", primes.Count, n)
	for _, p := range primes.P[:primes.Count] {
		fmt.Println(p)
	}
}

func runNextPrime(baseArg string) {
	base, ok := new(big.Int).SetString(baseArg, 10)
	if !ok {
		exitf("invalid base: %q", baseArg)
	}

	p, found := nextprime.Search(base, dashForward, ptest.NewMillerRabin())
	if !found {
		exitf("no prime found near %s", base)
	}
	fmt.Println(p)
}

func runRandomPrime(bitSizeArg string) {
	bitSize, err := strconv.Atoi(bitSizeArg)
	if err != nil {
		exitf("invalid bit size: %s", err)
	}

	cfg := loadConfig()
	workers := dashWorkers
	if workers == 0 {
		workers = cfg.WorkerCount
	}

	smallPrimes, err := sieve.Eratosthenes(10000)
	if err != nil {
		exitf("preparing small primes: %s", err)
	}

	requestID := uuid.New()
	log.Printf("random-prime request %s: bitSize=%d workers=%d", requestID, bitSize, workers)

	selfExe, err := os.Executable()
	if err != nil {
		exitf("resolving self executable: %s", err)
	}

	p, err := randomprime.Generate(
		context.Background(),
		iz.MatrixPlus,
		bitSize,
		workers,
		smallPrimes.P[:smallPrimes.Count],
		[]string{selfExe, "search-worker"},
	)
	if err != nil {
		exitf("random-prime request %s failed: %s", requestID, err)
	}
	fmt.Println(p)
}

func runSearchWorker(matrixIDArg, vxArg string) {
	matrixID, err := strconv.Atoi(matrixIDArg)
	if err != nil {
		exitf("invalid matrix id: %s", err)
	}
	vx, ok := new(big.Int).SetString(vxArg, 10)
	if !ok {
		exitf("invalid vx: %q", vxArg)
	}

	p, err := randomprime.SearchIZPrime(matrixID, vx, ptest.NewMillerRabin())
	if err != nil {
		os.Exit(1)
	}
	fmt.Println(p)
}
