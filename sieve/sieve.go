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

// Package sieve implements the classic sieve algorithms used as
// cross-checks against the iZ-Matrix sieves: two Eratosthenes
// variants (classic boolean-array and bitmap-optimized), a segmented
// Eratosthenes sieve, Euler's sieve, and Atkin's sieve. All five, and
// the iZ sieves in package izsieve, must agree on the prime set (and
// therefore the hash) for the same n.
package sieve

import (
	"math"

	"github.com/Zprime137/izgo/bitmap"
	"github.com/Zprime137/izgo/primelist"
)

// estimate returns a capacity hint for the prime list below n, using
// the prime counting function's asymptotic n/ln(n), padded generously
// for small n where the approximation is loose.
func estimate(n uint64) int {
	if n < 20 {
		return 10
	}
	return int(float64(n)/math.Log(float64(n))*1.2) + 10
}

// ClassicEratosthenes is the textbook Sieve of Eratosthenes: an
// all-true boolean array repeatedly struck through by each prime's
// multiples, starting at p*p.
func ClassicEratosthenes(n uint64) (*primelist.List, error) {
	if n < 2 {
		return primelist.New(1)
	}
	composite := make([]bool, n+1)

	list, err := primelist.New(estimate(n))
	if err != nil {
		return nil, err
	}
	for p := uint64(2); p <= n; p++ {
		if composite[p] {
			continue
		}
		list.Append(p)
		if p*p > n {
			continue
		}
		for m := p * p; m <= n; m += p {
			composite[m] = true
		}
	}
	return list, nil
}

// Eratosthenes is the bitmap-backed optimized variant: it skips even
// numbers entirely (tracking only odd candidates) and strikes
// composites via Bitmap.ClearModP, the same primitive the iZ sieves
// use for their hot loop.
func Eratosthenes(n uint64) (*primelist.List, error) {
	if n < 2 {
		return primelist.New(1)
	}
	list, err := primelist.New(estimate(n))
	if err != nil {
		return nil, err
	}
	if n >= 2 {
		list.Append(2)
	}
	if n < 3 {
		return list, nil
	}

	// odd[i] represents the odd number 2i+1, for i in [1, (n-1)/2].
	size := (n-1)/2 + 1
	odd, err := bitmap.Create(size)
	if err != nil {
		return nil, err
	}
	odd.SetAll()
	odd.ClearBit(0) // 1 is not prime

	limit := uint64(math.Sqrt(float64(n)))
	for i := uint64(1); 2*i+1 <= limit; i++ {
		if !odd.GetBit(i) {
			continue
		}
		p := 2*i + 1
		// index (m-1)/2 of odd multiple m steps by p as m steps by 2p
		odd.ClearModP(p, (p*p-1)/2, size)
	}

	for i := uint64(1); i < size; i++ {
		if odd.GetBit(i) {
			list.Append(2*i + 1)
		}
	}
	return list, nil
}

// SegmentedEratosthenes sieves [2,n] in fixed-size windows, so memory
// use stays bounded by segmentSize regardless of n. It first sieves
// the small primes up to sqrt(n), then reuses them to strike
// composites in each window.
func SegmentedEratosthenes(n uint64, segmentSize uint64) (*primelist.List, error) {
	if n < 2 {
		return primelist.New(1)
	}
	if segmentSize < 2 {
		segmentSize = 32768
	}

	root := uint64(math.Sqrt(float64(n))) + 1
	base, err := ClassicEratosthenes(root)
	if err != nil {
		return nil, err
	}

	list, err := primelist.New(estimate(n))
	if err != nil {
		return nil, err
	}

	for low := uint64(2); low <= n; low += segmentSize {
		high := low + segmentSize - 1
		if high > n {
			high = n
		}
		width := high - low + 1
		segment := make([]bool, width)

		for _, p := range base.P[:base.Count] {
			start := ((low + p - 1) / p) * p
			if start < p*p {
				start = p * p
			}
			for m := start; m <= high; m += p {
				segment[m-low] = true
			}
		}

		for i, isComposite := range segment {
			v := low + uint64(i)
			if !isComposite && v >= 2 {
				list.Append(v)
			}
		}
	}
	return list, nil
}

// Euler is the Sieve of Euler (also called the linear sieve): each
// composite is struck exactly once, by its smallest prime factor,
// giving O(n) total work instead of Eratosthenes' O(n log log n).
func Euler(n uint64) (*primelist.List, error) {
	if n < 2 {
		return primelist.New(1)
	}
	list, err := primelist.New(estimate(n))
	if err != nil {
		return nil, err
	}

	isComposite := make([]bool, n+1)
	for i := uint64(2); i <= n; i++ {
		if !isComposite[i] {
			list.Append(i)
		}
		for _, p := range list.P[:list.Count] {
			if i*p > n {
				break
			}
			isComposite[i*p] = true
			if i%p == 0 {
				break
			}
		}
	}
	return list, nil
}

// Atkin is the Sieve of Atkin: candidates are flipped into the
// prime set by parity of solution counts to three quadratic forms,
// then squares of primes 5 and above have their multiples struck.
func Atkin(n uint64) (*primelist.List, error) {
	if n < 2 {
		return primelist.New(1)
	}

	sieve := make([]bool, n+1)
	limit := uint64(math.Sqrt(float64(n))) + 1

	for x := uint64(1); x <= limit; x++ {
		for y := uint64(1); y <= limit; y++ {
			xx, yy := x*x, y*y

			v := 4*xx + yy
			if v <= n && (v%12 == 1 || v%12 == 5) {
				sieve[v] = !sieve[v]
			}

			v = 3*xx + yy
			if v <= n && v%12 == 7 {
				sieve[v] = !sieve[v]
			}

			if x > y {
				v = 3*xx - yy
				if v <= n && v%12 == 11 {
					sieve[v] = !sieve[v]
				}
			}
		}
	}

	for r := uint64(5); r <= limit; r++ {
		if sieve[r] {
			for k := r * r; k <= n; k += r * r {
				sieve[k] = false
			}
		}
	}

	list, err := primelist.New(estimate(n))
	if err != nil {
		return nil, err
	}
	if n >= 2 {
		list.Append(2)
	}
	if n >= 3 {
		list.Append(3)
	}
	for r := uint64(5); r <= n; r++ {
		if sieve[r] {
			list.Append(r)
		}
	}
	return list, nil
}
