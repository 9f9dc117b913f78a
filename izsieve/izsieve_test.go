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

package izsieve

import (
	"errors"
	"testing"

	"github.com/Zprime137/izgo/sieve"
)

func assertList(t *testing.T, got []uint64, want []uint64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("count = %d, want %d (%v vs %v)", len(got), len(want), got, want)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("P[%d] = %d, want %d", i, got[i], w)
		}
	}
}

func TestSieveIZConcreteScenario(t *testing.T) {
	l, err := SieveIZ(30)
	if err != nil {
		t.Fatal(err)
	}
	assertList(t, l.P, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29})
}

func TestSieveIZRejectsTooSmallRange(t *testing.T) {
	if _, err := SieveIZ(9); !errors.Is(err, ErrRangeTooSmall) {
		t.Fatalf("expected ErrRangeTooSmall, got %v", err)
	}
}

func TestSieveIZmConcreteScenario(t *testing.T) {
	l, err := SieveIZm(100)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint64{
		2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
		53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
	}
	assertList(t, l.P, want)
}

func TestSieveIZmDelegatesBelow1000(t *testing.T) {
	small, err := SieveIZm(500)
	if err != nil {
		t.Fatal(err)
	}
	reference, err := SieveIZ(500)
	if err != nil {
		t.Fatal(err)
	}
	if small.ComputeHash() != reference.ComputeHash() {
		t.Fatal("SieveIZm(500) should match SieveIZ(500) exactly")
	}
}

func TestSieveIZAndIZmAgreeWithClassicSieves(t *testing.T) {
	for _, n := range []uint64{1000, 10_000, 100_000, 1_000_000} {
		reference, err := sieve.Eratosthenes(n)
		if err != nil {
			t.Fatal(err)
		}
		refHash := reference.ComputeHash()

		izList, err := SieveIZ(n)
		if err != nil {
			t.Fatal(err)
		}
		if izList.ComputeHash() != refHash {
			t.Errorf("n=%d: SieveIZ disagrees with sieve.Eratosthenes", n)
		}

		izmList, err := SieveIZm(n)
		if err != nil {
			t.Fatal(err)
		}
		if izmList.ComputeHash() != refHash {
			t.Errorf("n=%d: SieveIZm disagrees with sieve.Eratosthenes", n)
		}
	}
}
