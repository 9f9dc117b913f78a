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

// Package ptest provides the probabilistic primality oracle that
// sieve-vx, next-prime search, and random-prime search fall back to
// once candidates grow past the range a deterministic sieve can
// cover. This engine never proves primality; see the module's
// Non-goals.
package ptest

import "math/big"

// DefaultRounds is the Miller-Rabin round count the original
// implementation uses (mpz_probab_prime_p's TEST_ROUNDS).
const DefaultRounds = 25

// Oracle reports whether n is probably prime.
type Oracle interface {
	IsProbablyPrime(n *big.Int) bool
}

// MillerRabin is an Oracle backed by math/big's baseline
// Miller-Rabin implementation (which itself runs a Baillie-PSW check
// first), run for Rounds iterations.
type MillerRabin struct {
	Rounds int
}

// NewMillerRabin returns a MillerRabin oracle using DefaultRounds.
func NewMillerRabin() MillerRabin {
	return MillerRabin{Rounds: DefaultRounds}
}

// IsProbablyPrime reports whether n passes ProbablyPrime(m.Rounds).
func (m MillerRabin) IsProbablyPrime(n *big.Int) bool {
	rounds := m.Rounds
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	return n.ProbablyPrime(rounds)
}
