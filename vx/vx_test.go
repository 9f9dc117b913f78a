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

package vx

import (
	"math/big"
	"testing"

	"github.com/Zprime137/izgo/ptest"
	"github.com/Zprime137/izgo/sieve"
)

func TestSieveSegmentZeroMatchesClassicSieve(t *testing.T) {
	const testVx = 35

	rootPrimes, err := sieve.Eratosthenes(testVx)
	if err != nil {
		t.Fatal(err)
	}

	assets, err := NewAssets(testVx, rootPrimes)
	if err != nil {
		t.Fatal(err)
	}

	obj, err := NewObj(testVx, big.NewInt(0))
	if err != nil {
		t.Fatal(err)
	}

	if err := Sieve(obj, assets, ptest.NewMillerRabin()); err != nil {
		t.Fatal(err)
	}

	got := obj.Gaps.Primes()

	reference, err := sieve.Eratosthenes(testVx)
	if err != nil {
		t.Fatal(err)
	}
	// Segment y=0 covers iZ candidates in [1,vx]; exclude 2,3,5,7 which
	// aren't iZ-matrix candidates (5 and 7 are, in fact: 5=6*1-1,
	// 7=6*1+1 — only 2 and 3 fall outside the matrix entirely).
	var want []int64
	for _, p := range reference.P[:reference.Count] {
		if p == 2 || p == 3 {
			continue
		}
		want = append(want, int64(p))
	}

	if len(got) != len(want) {
		t.Fatalf("got %d primes %v, want %d %v", len(got), got, len(want), want)
	}
	for i, w := range want {
		if got[i].Cmp(big.NewInt(w)) != 0 {
			t.Errorf("primes[%d] = %s, want %d", i, got[i], w)
		}
	}
}

func TestSieveSegmentOneIsDeterministicOnly(t *testing.T) {
	const testVx = 35

	rootPrimes, err := sieve.Eratosthenes(testVx)
	if err != nil {
		t.Fatal(err)
	}
	assets, err := NewAssets(testVx, rootPrimes)
	if err != nil {
		t.Fatal(err)
	}

	obj, err := NewObj(testVx, big.NewInt(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := Sieve(obj, assets, ptest.NewMillerRabin()); err != nil {
		t.Fatal(err)
	}

	if obj.PTestOps != 0 {
		t.Fatalf("segment y=1 at vx=35 should stay within the deterministic bound, got %d p-test ops", obj.PTestOps)
	}

	for _, p := range obj.Gaps.Primes() {
		if !p.ProbablyPrime(25) {
			t.Errorf("%s reported as a survivor but is not prime", p)
		}
	}
}
