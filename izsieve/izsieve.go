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

// Package izsieve implements the Sieve-iZ family: SieveIZ, the
// classic whole-range iZ-Matrix sieve, and SieveIZm, its
// constant-memory segmented counterpart. Both return the same prime
// set as package sieve's classic algorithms for the same n (this
// package's tests compare both against sieve.Eratosthenes).
package izsieve

import (
	"errors"
	"fmt"
	"math"

	"github.com/Zprime137/izgo/bitmap"
	"github.com/Zprime137/izgo/iz"
	"github.com/Zprime137/izgo/primelist"
)

// ErrRangeTooSmall is returned by SieveIZ when n is too small for the
// iZ-Matrix decomposition to apply (n < 10).
var ErrRangeTooSmall = errors.New("izsieve: n must be at least 10")

func piEstimate(n uint64) int {
	if n < 20 {
		return 10
	}
	return int(float64(n)/math.Log(float64(n))*1.5) + 10
}

// SieveIZ finds every prime up to n by walking the iZ- (6x-1) and iZ+
// (6x+1) matrices in lockstep, marking composites of each prime
// discovered below sqrt(n).
func SieveIZ(n uint64) (*primelist.List, error) {
	if n < 10 {
		return nil, ErrRangeTooSmall
	}

	primes, err := primelist.New(piEstimate(n))
	if err != nil {
		return nil, err
	}
	primes.Append(2)
	primes.Append(3)

	xN := n/6 + 1
	x5, err := bitmap.Create(xN + 1)
	if err != nil {
		return nil, err
	}
	x7, err := bitmap.Create(xN + 1)
	if err != nil {
		return nil, err
	}
	x5.SetAll()
	x7.SetAll()

	nSqrt := uint64(math.Sqrt(float64(n))) + 1

	for x := uint64(1); x <= xN; x++ {
		if x5.GetBit(x) {
			p := iz.IZ(x, -1)
			primes.Append(p)
			if p < nSqrt {
				x5.ClearModP(p, p*x+x, xN+1)
				x7.ClearModP(p, p*x-x, xN+1)
			}
		}
		if x7.GetBit(x) {
			p := iz.IZ(x, 1)
			primes.Append(p)
			if p < nSqrt {
				x5.ClearModP(p, p*x-x, xN+1)
				x7.ClearModP(p, p*x+x, xN+1)
			}
		}
	}

	primes.TrimOvershoot(n)
	primes.TrimToCount()
	return primes, nil
}

// SieveIZm finds every prime up to n with the segmented Sieve-iZm: it
// decomposes [1,n] into fixed-size segments of width vx (a product of
// small wheel primes), pre-sieves one base segment, and re-sieves only
// against the remaining root primes in every subsequent segment. Below
// n=1000 it delegates to SieveIZ, where segmenting has no benefit.
func SieveIZm(n uint64) (*primelist.List, error) {
	if n < 1000 {
		return SieveIZ(n)
	}

	xN := n/6 + 1

	primes, err := primelist.New(piEstimate(n))
	if err != nil {
		return nil, err
	}
	primes.Append(2)
	primes.Append(3)

	const vxLimit = 6
	vx := iz.ComputeLimitedVx(xN, vxLimit)

	wheelPrimes := []uint64{5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}
	startI := 2
	for i := 0; i < vxLimit && i < len(wheelPrimes); i++ {
		if vx%wheelPrimes[i] == 0 {
			primes.Append(wheelPrimes[i])
			startI++
		} else {
			break
		}
	}

	baseX5, baseX7, err := iz.ConstructIZmSegment(vx)
	if err != nil {
		return nil, fmt.Errorf("izsieve: %w", err)
	}

	x5 := baseX5.Clone()
	x7 := baseX7.Clone()

	for x := uint64(2); x <= vx; x++ {
		if x5.GetBit(x) {
			p := iz.IZ(x, -1)
			primes.Append(p)
			if (p*p)/6 < vx {
				x5.ClearModP(p, p*x+x, vx+1)
				x7.ClearModP(p, p*x-x, vx+1)
			}
		}
		if x7.GetBit(x) {
			p := iz.IZ(x, 1)
			primes.Append(p)
			if (p*p)/6 < vx {
				x5.ClearModP(p, p*x-x, vx+1)
				x7.ClearModP(p, p*x+x, vx+1)
			}
		}
	}

	maxY := int(xN / vx)
	limit := vx
	yvx := vx

	for y := 1; y <= maxY; y++ {
		x5 = baseX5.Clone()
		x7 = baseX7.Clone()

		if y == maxY {
			limit = xN % vx
		}

		for i := startI; i < primes.Count; i++ {
			p := primes.P[i]
			if (p*p)/6 > yvx+limit {
				break
			}
			x5.ClearModP(p, iz.SolveForX(iz.MatrixMinus, p, vx, uint64(y)), limit+1)
			x7.ClearModP(p, iz.SolveForX(iz.MatrixPlus, p, vx, uint64(y)), limit+1)
		}

		for x := uint64(2); x <= limit; x++ {
			if x5.GetBit(x) {
				primes.Append(iz.IZ(x+yvx, -1))
			}
			if x7.GetBit(x) {
				primes.Append(iz.IZ(x+yvx, 1))
			}
		}

		yvx += vx
	}

	primes.TrimOvershoot(n)
	primes.TrimToCount()
	return primes, nil
}
