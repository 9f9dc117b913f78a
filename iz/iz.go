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

// Package iz implements the iZ-Framework's number-theoretic core: the
// matrix projection iZ(x,i) = 6x+i, its inverse mappings, and the base
// segment construction every sieve in this module builds on.
//
// Every prime greater than 3 is congruent to ±1 mod 6. iZ- (matrix id
// -1) enumerates the 6x-1 residue class, iZ+ (matrix id 1) the 6x+1
// class. A wheel of stride vx (35 = 5*7, optionally times the next
// primes 11, 13, ... in order) tiles both classes into a segment that can be duplicated
// and re-sieved without reconsidering primes that already divide vx.
package iz

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Zprime137/izgo/bitmap"
)

// ErrNoModularInverse is returned by ModularInverse and SolveForY when
// the operands are not coprime, so no inverse (and therefore no
// solution) exists.
var ErrNoModularInverse = errors.New("iz: no modular inverse exists")

// MatrixMinus and MatrixPlus identify the two residue classes 6x-1
// and 6x+1 that iZ enumerates.
const (
	MatrixMinus = -1
	MatrixPlus  = 1
)

// wheelPrimes lists the primes 5 through 47 that make up a wheel
// stride vx, in ascending order: 5 and 7 form the base 35 seeded by
// ConstructVx2, and each later entry can extend it.
var wheelPrimes = []uint64{5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

// IZ projects (x, i) onto the integer 6x+i.
func IZ(x uint64, i int) uint64 {
	return uint64(int64(6*x) + int64(i))
}

// IZBig is the arbitrary-precision form of IZ, for segments addressed
// by a y too large to fit in a uint64.
func IZBig(x *big.Int, i int) *big.Int {
	z := new(big.Int).Mul(x, big.NewInt(6))
	z.Add(z, big.NewInt(int64(i)))
	return z
}

// MatrixID reports which residue class p belongs to: MatrixPlus if
// p ≡ 1 (mod 6), MatrixMinus otherwise (p ≡ -1 (mod 6)).
func MatrixID(p uint64) int {
	if p%6 == 1 {
		return MatrixPlus
	}
	return MatrixMinus
}

// ConstructVx2 seeds x5 (iZ-) and x7 (iZ+) with the base wheel pattern
// for vx=35=5*7, over positions 1..35. Both bitmaps must already have
// capacity for at least 36 bits.
func ConstructVx2(x5, x7 *bitmap.Bitmap) {
	for i := uint64(1); i <= 35; i++ {
		if (i-1)%5 != 0 && (i+1)%7 != 0 {
			x5.SetBit(i)
		}
		if (i+1)%5 != 0 && (i-1)%7 != 0 {
			x7.SetBit(i)
		}
	}
}

// ConstructIZmSegment builds a pre-sieved base segment of size vx:
// x5 and x7 have every composite of every prime dividing vx cleared,
// so later segments can be tiled from this pattern and only need
// sieving against primes that do NOT divide vx. vx must be a product
// of a prefix of wheelPrimes (35, 35*11, 35*11*13, ...).
func ConstructIZmSegment(vx uint64) (x5, x7 *bitmap.Bitmap, err error) {
	x5, err = bitmap.Create(vx + 1)
	if err != nil {
		return nil, nil, err
	}
	x7, err = bitmap.Create(vx + 1)
	if err != nil {
		return nil, nil, err
	}

	ConstructVx2(x5, x7)

	currentSize := uint64(35)
	idx := 2 // wheelPrimes[0],[1] = 5,7 already folded into ConstructVx2
	for idx < len(wheelPrimes) && vx%wheelPrimes[idx] == 0 {
		p := wheelPrimes[idx]
		idx++

		x := (p + 1) / 6

		x5.DuplicateSegment(1, currentSize, p)
		x7.DuplicateSegment(1, currentSize, p)
		currentSize *= p

		if p%6 > 1 {
			x5.ClearBit(x)
			x5.ClearModP(p, p*x+x, currentSize+1)
			x7.ClearModP(p, p*x-x, currentSize+1)
		} else {
			x7.ClearBit(x)
			x5.ClearModP(p, p*x-x, currentSize+1)
			x7.ClearModP(p, p*x+x, currentSize+1)
		}
	}

	return x5, x7, nil
}

// SolveForX finds the smallest 1<=x<=p such that iZ(y*vx+x, matrixID)
// is the first multiple of p at or after the start of segment y — the
// position where p's composites begin within that segment.
func SolveForX(matrixID int, p, vx, y uint64) uint64 {
	xp := (p + 1) / 6
	if MatrixID(p) != matrixID {
		xp = p - xp
	}

	a := xp % p
	b := (vx * y) % p
	x := (a + p - b) % p
	if x == 0 {
		x = p
	}
	return x
}

// SolveForXBig is SolveForX for a segment index y too large to fit in
// a uint64.
func SolveForXBig(matrixID int, p, vx uint64, y *big.Int) uint64 {
	xp := (p + 1) / 6
	if MatrixID(p) != matrixID {
		xp = p - xp
	}

	yvx := new(big.Int).Mul(y, new(big.Int).SetUint64(vx))
	b := new(big.Int).Mod(yvx, new(big.Int).SetUint64(p)).Uint64()

	a := xp % p
	x := (a + p - b) % p
	if x == 0 {
		x = p
	}
	return x
}

// SolveForY finds the smallest y such that iZ(y*vx+x, matrixID) is a
// multiple of p, given that p does not divide vx. It returns
// ErrNoModularInverse if p divides vx (vx and p share p as a common
// factor, so no y satisfies the congruence).
func SolveForY(matrixID int, p, vx, x uint64) (uint64, error) {
	if vx%p == 0 {
		return 0, fmt.Errorf("%w: %d divides vx=%d", ErrNoModularInverse, p, vx)
	}

	xp := (p + 1) / 6
	if MatrixID(p) != matrixID {
		xp = p - xp
	}

	if x%p == xp {
		return 0, nil
	}

	delta := (int64(xp) - int64(x%p)) % int64(p)
	if delta < 0 {
		delta += int64(p)
	}

	vxInv, err := ModularInverse(int64(vx%p), int64(p))
	if err != nil {
		return 0, err
	}

	y := (uint64(delta) * uint64(vxInv)) % p
	return y, nil
}

// ModularInverse returns a^-1 mod m via the extended Euclidean
// algorithm, or ErrNoModularInverse if a and m are not coprime.
func ModularInverse(a, m int64) (int64, error) {
	if m == 1 {
		return 0, nil
	}
	if a == 0 {
		return 0, ErrNoModularInverse
	}

	m0, x0, x1 := m, int64(0), int64(1)
	for a > 1 {
		if m == 0 {
			return 0, ErrNoModularInverse
		}
		q := a / m
		a, m = m, a%m
		x0, x1 = x1-q*x0, x0
	}

	if x1 < 0 {
		x1 += m0
	}
	return x1, nil
}

// ComputeLimitedVx picks a wheel stride no larger than the product of
// the first vxLimit eligible wheelPrimes, multiplying in the next
// wheel prime only while the product stays under half of xN — the
// largest x-coordinate a sieve over n will reach. The result is never
// below 35.
func ComputeLimitedVx(xN uint64, vxLimit int) uint64 {
	vx := uint64(35)
	i := 2
	for i < vxLimit && i < len(wheelPrimes) && vx*wheelPrimes[i] < xN/2 {
		vx *= wheelPrimes[i]
		i++
	}
	return vx
}

// ComputeMaxVxBig picks the largest primorial-style vx (built from
// smallPrimes, in ascending order starting after 2 and 3) whose bit
// length is at least bitSize, then backs off by one factor so the
// result's bit length is just under bitSize. smallPrimes must contain
// enough primes to reach bitSize bits; sieve.Eratosthenes(10000) or
// izsieve.SieveIZ(10000) comfortably supplies that for any bitSize
// this module is used at.
func ComputeMaxVxBig(smallPrimes []uint64, bitSize int) (*big.Int, error) {
	if len(smallPrimes) < 3 {
		return nil, fmt.Errorf("iz: need at least 3 small primes, got %d", len(smallPrimes))
	}

	i := 2 // skip 2, 3
	vx := new(big.Int).SetUint64(smallPrimes[i])

	for vx.BitLen() < bitSize {
		i++
		if i >= len(smallPrimes) {
			return nil, fmt.Errorf("iz: exhausted %d small primes before reaching %d bits", len(smallPrimes), bitSize)
		}
		vx.Mul(vx, new(big.Int).SetUint64(smallPrimes[i]))
	}

	vx.Div(vx, new(big.Int).SetUint64(smallPrimes[i]))
	return vx, nil
}
