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

// Package randomprime implements the vertical random-prime search: a
// random starting point within one iZ-Matrix column, advanced one
// segment (x by vx, the value by 6*vx) at a time until a probable
// prime is found. SearchIZPrime runs the
// search in-process; Parallel fans the same search out across worker
// subprocesses and keeps whichever finishes first, mirroring the
// original implementation's fork-and-race design without relying on
// fork() (Go offers no direct equivalent — see the worker-fan-out
// notes alongside this package).
package randomprime

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os/exec"
	"syscall"
	"time"

	"github.com/Zprime137/izgo/ints"
	"github.com/Zprime137/izgo/iz"
	"github.com/Zprime137/izgo/ptest"
	"golang.org/x/sys/unix"
)

// ErrSearchExhausted is returned when no prime turns up within
// AttemptsLimit tries along a column.
var ErrSearchExhausted = errors.New("randomprime: search exhausted without finding a prime")

// AttemptsLimit bounds how many times SearchIZPrime advances a
// candidate by 6*vx (one segment) before giving up on a column.
const AttemptsLimit = 1_000_000

// MinBitSize and MaxWorkers are the clamps random-prime search
// applies to its inputs.
const (
	MinBitSize = 10
	MaxWorkers = 16
)

// SearchIZPrime picks a random x in [0,vx), projects it into matrix
// matrixID via iZ, advances it until coprime with vx, then walks the
// resulting column one segment at a time (x by vx, the value by 6*vx)
// testing each candidate for primality, up to AttemptsLimit tries.
func SearchIZPrime(matrixID int, vx *big.Int, oracle ptest.Oracle) (*big.Int, error) {
	x, err := rand.Int(rand.Reader, vx)
	if err != nil {
		return nil, fmt.Errorf("randomprime: %w", err)
	}

	tmp := iz.IZBig(x, matrixID)
	six := big.NewInt(6)
	g := new(big.Int)

	for {
		tmp.Add(tmp, six)
		g.GCD(nil, nil, vx, tmp)
		if g.Cmp(big.NewInt(1)) == 0 {
			break
		}
	}

	// one step along the column: x advances by vx, the value by 6*vx
	stride := new(big.Int).Mul(vx, six)
	for attempts := 0; attempts < AttemptsLimit; attempts++ {
		tmp.Add(tmp, stride)
		if oracle.IsProbablyPrime(tmp) {
			return new(big.Int).Set(tmp), nil
		}
	}

	return nil, ErrSearchExhausted
}

// clampInputs normalizes bitSize and workerCount to the ranges the
// original implementation enforces.
func clampInputs(bitSize, workerCount int) (int, int) {
	return ints.Max(bitSize, MinBitSize), ints.Min(workerCount, MaxWorkers)
}

// Generate finds a random probable prime of roughly bitSize bits in
// matrix matrixID. The stride vx stays below 2^bitSize (see
// iz.ComputeMaxVxBig), and the result's bit length is not guaranteed
// to reach bitSize. With workerCount < 2 it searches in-process; with
// workerCount >= 2 it fans the search out across that many worker
// subprocesses via Parallel, re-invoking the current executable, and
// keeps whichever candidate completes first.
func Generate(ctx context.Context, matrixID, bitSize, workerCount int, smallPrimes []uint64, workerCmd []string) (*big.Int, error) {
	bitSize, workerCount = clampInputs(bitSize, workerCount)

	vx, err := iz.ComputeMaxVxBig(smallPrimes, bitSize)
	if err != nil {
		return nil, fmt.Errorf("randomprime: %w", err)
	}

	if workerCount < 2 {
		return SearchIZPrime(matrixID, vx, ptest.NewMillerRabin())
	}

	return Parallel(ctx, workerCount, workerCmd, matrixID, vx)
}

// Parallel launches workerCount copies of workerCmd (the current
// executable re-invoked in its search-worker mode — see
// cmd/izprime's "search-worker" subcommand), each independently
// running SearchIZPrime for matrix matrixID and stride vx, and
// returns whichever candidate is printed first. The losing workers'
// process groups are sent SIGTERM once a winner is confirmed.
//
// This substitutes for the original fork()+pipe()+kill() fan-out: Go
// has no fork() equivalent that preserves a clean address space, so
// each worker is a full subprocess, started with its own process
// group (via SysProcAttr.Setpgid) so the whole group — not just the
// immediate child — can be reliably signaled.
func Parallel(ctx context.Context, workerCount int, workerCmd []string, matrixID int, vx *big.Int) (*big.Int, error) {
	if len(workerCmd) == 0 {
		return nil, errors.New("randomprime: workerCmd must name the worker executable")
	}

	type result struct {
		prime *big.Int
		err   error
	}

	resultCh := make(chan result, workerCount)
	cmds := make([]*exec.Cmd, workerCount)

	args := append(append([]string{}, workerCmd[1:]...), fmt.Sprint(matrixID), vx.String())

	for i := 0; i < workerCount; i++ {
		cmd := exec.CommandContext(ctx, workerCmd[0], args...)
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		cmds[i] = cmd

		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return nil, fmt.Errorf("randomprime: worker %d: %w", i, err)
		}
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("randomprime: worker %d: %w", i, err)
		}

		go func(i int, stdout io.ReadCloser) {
			scanner := bufio.NewScanner(stdout)
			if scanner.Scan() {
				line := scanner.Text()
				p, ok := new(big.Int).SetString(line, 10)
				if ok {
					resultCh <- result{prime: p}
					return
				}
			}
			resultCh <- result{err: fmt.Errorf("worker %d produced no candidate", i)}
		}(i, stdout)
	}

	defer killAll(cmds)

	var lastErr error
	for i := 0; i < workerCount; i++ {
		r := <-resultCh
		if r.err != nil {
			lastErr = r.err
			continue
		}
		return r.prime, nil
	}

	if lastErr == nil {
		lastErr = ErrSearchExhausted
	}
	return nil, lastErr
}

// killAll signals every worker's process group with SIGTERM and reaps
// it, ignoring processes that have already exited.
func killAll(cmds []*exec.Cmd) {
	for _, cmd := range cmds {
		if cmd.Process == nil {
			continue
		}
		pgid, err := unix.Getpgid(cmd.Process.Pid)
		if err == nil {
			_ = unix.Kill(-pgid, unix.SIGTERM)
		}
		done := make(chan struct{})
		go func(c *exec.Cmd) {
			_ = c.Wait()
			close(done)
		}(cmd)
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}
}
