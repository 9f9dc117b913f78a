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

package ptest

import (
	"math/big"
	"testing"
)

func TestMillerRabinKnownPrimesAndComposites(t *testing.T) {
	oracle := NewMillerRabin()

	primes := []int64{2, 3, 5, 7, 104729, 2147483647}
	for _, p := range primes {
		if !oracle.IsProbablyPrime(big.NewInt(p)) {
			t.Errorf("%d should be probably prime", p)
		}
	}

	composites := []int64{1, 4, 6, 8, 9, 100, 104730}
	for _, c := range composites {
		if oracle.IsProbablyPrime(big.NewInt(c)) {
			t.Errorf("%d should not be probably prime", c)
		}
	}
}

func TestMillerRabinDefaultsRoundsWhenZero(t *testing.T) {
	oracle := MillerRabin{}
	if !oracle.IsProbablyPrime(big.NewInt(97)) {
		t.Fatal("zero-value MillerRabin should still fall back to DefaultRounds")
	}
}
