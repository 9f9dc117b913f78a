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

// Package nextprime implements forward and backward next-prime
// search from an arbitrary base, walking fixed-size pre-sieved
// segments of the iZ-Matrix outward from base until a probable prime
// turns up.
package nextprime

import (
	"math/big"

	"github.com/Zprime137/izgo/bitmap"
	"github.com/Zprime137/izgo/iz"
	"github.com/Zprime137/izgo/ptest"
)

// vx is fixed at 5*7*11*13 = 5005, covering 6*5005 = 30030 natural
// numbers per segment — enough that a handful of segments almost
// always turn up a prime.
const vx = 5 * 7 * 11 * 13

// maxSegments bounds how many segments the search walks before giving
// up, guarding against pathological gaps.
const maxSegments = 1000

// Search finds the nearest probable prime beyond base: the smallest
// one greater than base if forward is true, the largest one less than
// base otherwise. It reports false if no prime turned up within
// maxSegments segments. The pre-sieved wheel clears 5, 7, 11 and 13
// themselves, so those four are found only by the base±2 checks.
func Search(base *big.Int, forward bool, oracle ptest.Oracle) (*big.Int, bool) {
	tmp := new(big.Int).Set(base)

	mod6 := new(big.Int).Mod(tmp, big.NewInt(6)).Int64()
	if mod6 == 5 && forward {
		candidate := new(big.Int).Add(tmp, big.NewInt(2))
		if oracle.IsProbablyPrime(candidate) {
			return candidate, true
		}
	} else if mod6 == 1 && !forward {
		candidate := new(big.Int).Sub(tmp, big.NewInt(2))
		if oracle.IsProbablyPrime(candidate) {
			return candidate, true
		}
	}

	x5, x7, err := iz.ConstructIZmSegment(vx)
	if err != nil {
		return nil, false
	}

	vxBig := big.NewInt(vx)
	y := new(big.Int).Div(tmp, new(big.Int).Mul(big.NewInt(6), vxBig))
	yvx := new(big.Int).Mul(y, vxBig)

	xp := new(big.Int).Div(tmp, big.NewInt(6))

	step := int64(1)
	if !forward {
		step = -1
	}
	// The scan starts in base's own column xp and keeps only candidates
	// strictly beyond base in the search direction (p.Cmp(tmp) == step).
	startX := new(big.Int).Mod(xp, vxBig).Int64()
	if startX == 0 {
		// column 0 of segment y is column vx of segment y-1
		startX = vx
		yvx.Sub(yvx, vxBig)
	}
	endX := int64(vx + 1)
	if !forward {
		endX = 0
	}

	candidate := new(big.Int)

	for seg := 0; seg < maxSegments; seg++ {
		if seg > 0 {
			if forward {
				startX = 1
			} else {
				startX = vx
			}
		}

		if forward {
			for x := startX; x < endX; x++ {
				if p, ok := tryCandidate(x5, yvx, uint64(x), -1, oracle, candidate); ok && p.Cmp(tmp) == int(step) {
					return p, true
				}
				if p, ok := tryCandidate(x7, yvx, uint64(x), 1, oracle, candidate); ok && p.Cmp(tmp) == int(step) {
					return p, true
				}
			}
			yvx.Add(yvx, vxBig)
		} else {
			for x := startX; x > endX; x-- {
				if p, ok := tryCandidate(x7, yvx, uint64(x), 1, oracle, candidate); ok && p.Cmp(tmp) == int(step) {
					return p, true
				}
				if p, ok := tryCandidate(x5, yvx, uint64(x), -1, oracle, candidate); ok && p.Cmp(tmp) == int(step) {
					return p, true
				}
			}
			yvx.Sub(yvx, vxBig)
		}
	}

	return nil, false
}

func tryCandidate(bm *bitmap.Bitmap, yvx *big.Int, x uint64, matrixSign int, oracle ptest.Oracle, scratch *big.Int) (*big.Int, bool) {
	if !bm.GetBit(x) {
		return nil, false
	}
	scratch.Add(yvx, new(big.Int).SetUint64(x))
	p := iz.IZBig(scratch, matrixSign)
	if oracle.IsProbablyPrime(p) {
		return p, true
	}
	return nil, false
}
