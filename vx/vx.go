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

// Package vx implements sieve-vx: the per-segment hybrid sieve that
// combines deterministic composite marking (for root primes smaller
// than the segment's square-root bound) with probabilistic primality
// testing (for the remainder), emitting a gaplist.List of gaps
// between consecutive surviving candidates in one segment of the
// iZ-Matrix.
package vx

import (
	"fmt"
	"math/big"

	"github.com/Zprime137/izgo/bitmap"
	"github.com/Zprime137/izgo/gaplist"
	"github.com/Zprime137/izgo/iz"
	"github.com/Zprime137/izgo/primelist"
	"github.com/Zprime137/izgo/ptest"
)

// Assets bundles the reusable, y-independent state every segment of
// a given stride vx sieves against: the pre-sieved base bitmaps (see
// iz.ConstructIZmSegment) and the root primes that must be checked
// deterministically in every segment.
type Assets struct {
	Vx         uint64
	BaseX5     *bitmap.Bitmap
	BaseX7     *bitmap.Bitmap
	RootPrimes *primelist.List
}

// NewAssets builds Assets for stride vx, drawing root primes (every
// prime up to and including vx) from rootPrimes — typically produced
// by izsieve.SieveIZm(vx) or sieve.Eratosthenes(vx) by the caller.
func NewAssets(vx uint64, rootPrimes *primelist.List) (*Assets, error) {
	baseX5, baseX7, err := iz.ConstructIZmSegment(vx)
	if err != nil {
		return nil, fmt.Errorf("vx: %w", err)
	}
	return &Assets{Vx: vx, BaseX5: baseX5, BaseX7: baseX7, RootPrimes: rootPrimes}, nil
}

// Obj is one segment's sieve state: its index y, the gap list being
// populated, and running counters for the two kinds of work the
// hybrid sieve performs.
type Obj struct {
	Vx          uint64
	Y           *big.Int
	Gaps        *gaplist.List
	BitOps      uint64
	PTestOps    uint64
}

// NewObj creates an Obj for segment y of stride vx, with a gap list
// pre-sized for roughly vx/3 survivors (a generous estimate; the gap
// list grows past this if needed).
func NewObj(vx uint64, y *big.Int) (*Obj, error) {
	gaps, err := gaplist.New(vx, y, int(vx/3)+8)
	if err != nil {
		return nil, err
	}
	return &Obj{Vx: vx, Y: new(big.Int).Set(y), Gaps: gaps}, nil
}

// Sieve runs the hybrid deterministic/probabilistic pass over one
// segment and populates obj.Gaps with the gaps between consecutive
// surviving candidates.
//
// Deterministic phase: every root prime that does not divide vx
// marks its composites in the segment's clone of the base bitmaps,
// via solve-for-x positioning, up to the point where root primes can
// no longer have a composite within the segment (unless the segment's
// own sqrt bound exceeds vx, in which case every root prime is used).
//
// Probabilistic phase: for each surviving bit, oracle confirms
// primality only when the segment's sqrt bound exceeds vx (small
// segments are already definitively sieved by the deterministic
// phase alone).
func Sieve(obj *Obj, assets *Assets, oracle ptest.Oracle) error {
	vx := assets.Vx
	x5 := assets.BaseX5.Clone()
	x7 := assets.BaseX7.Clone()

	yvx := new(big.Int).Mul(obj.Y, new(big.Int).SetUint64(vx))

	rootLimit := new(big.Int).Add(yvx, new(big.Int).SetUint64(vx))
	rootLimit = iz.IZBig(rootLimit, 1)
	rootLimit.Sqrt(rootLimit)

	isLargeLimit := rootLimit.Cmp(new(big.Int).SetUint64(vx)) > 0

	for i := 2; i < assets.RootPrimes.Count; i++ {
		p := assets.RootPrimes.P[i]
		if vx%p == 0 {
			continue
		}
		if !isLargeLimit && rootLimit.Cmp(new(big.Int).SetUint64(p)) < 0 {
			break
		}

		x5.ClearModP(p, iz.SolveForXBig(iz.MatrixMinus, p, vx, obj.Y), vx+1)
		x7.ClearModP(p, iz.SolveForXBig(iz.MatrixPlus, p, vx, obj.Y), vx+1)

		obj.BitOps += (2 * vx) / p
	}

	xp := new(big.Int)
	p := new(big.Int)
	gap := uint16(0)

	for x := uint64(1); x <= vx; x++ {
		gap += 4

		if x5.GetBit(x) {
			isPrime := true
			if isLargeLimit {
				xp.Add(yvx, new(big.Int).SetUint64(x))
				p = iz.IZBig(xp, -1)
				isPrime = oracle.IsProbablyPrime(p)
				obj.PTestOps++
			}
			if isPrime {
				obj.Gaps.Append(gap)
				gap = 0
			}
		}

		gap += 2

		if x7.GetBit(x) {
			isPrime := true
			if isLargeLimit {
				xp.Add(yvx, new(big.Int).SetUint64(x))
				p = iz.IZBig(xp, 1)
				isPrime = oracle.IsProbablyPrime(p)
				obj.PTestOps++
			}
			if isPrime {
				obj.Gaps.Append(gap)
				gap = 0
			}
		}
	}

	obj.Gaps.TrimToCount()
	return nil
}
