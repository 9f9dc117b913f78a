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

package bitmap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSetGetClearFlip(t *testing.T) {
	b, err := Create(100)
	if err != nil {
		t.Fatal(err)
	}
	for i := uint64(0); i < 100; i++ {
		if b.GetBit(i) {
			t.Fatalf("bit %d set on fresh bitmap", i)
		}
	}
	b.SetBit(42)
	if !b.GetBit(42) {
		t.Fatal("SetBit did not take effect")
	}
	b.FlipBit(42)
	if b.GetBit(42) {
		t.Fatal("FlipBit did not clear a set bit")
	}
	b.FlipBit(42)
	b.ClearBit(42)
	if b.GetBit(42) {
		t.Fatal("ClearBit did not take effect")
	}
}

func TestSetAllClearAll(t *testing.T) {
	b, _ := Create(37)
	b.SetAll()
	for i := uint64(0); i < 37; i++ {
		if !b.GetBit(i) {
			t.Fatalf("bit %d not set after SetAll", i)
		}
	}
	b.ClearAll()
	for i := uint64(0); i < 37; i++ {
		if b.GetBit(i) {
			t.Fatalf("bit %d set after ClearAll", i)
		}
	}
}

// TestClearModP checks the scenario from the spec: size=100, p=7,
// start=14, limit=100 clears {14,21,...,98} and nothing else.
func TestClearModP(t *testing.T) {
	b, _ := Create(100)
	b.SetAll()
	b.ClearModP(7, 14, 100)

	cleared := map[uint64]bool{}
	for x := uint64(14); x < 100; x += 7 {
		cleared[x] = true
	}
	for i := uint64(0); i < 100; i++ {
		want := !cleared[i]
		if b.GetBit(i) != want {
			t.Errorf("bit %d: got %v want %v", i, b.GetBit(i), want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b, _ := Create(64)
	b.SetBit(5)
	c := b.Clone()
	c.SetBit(6)
	if b.GetBit(6) {
		t.Fatal("mutating clone affected original")
	}
	if !Equal(b, b.Clone()) {
		t.Fatal("clone of unmodified bitmap should be equal")
	}
}

func TestDuplicateSegmentIdempotence(t *testing.T) {
	b, _ := Create(40)
	b.SetBit(1)
	b.SetBit(3)
	b.DuplicateSegment(1, 5, 4)

	for k := uint64(0); k < 4; k++ {
		for i := uint64(0); i < 5; i++ {
			got := b.GetBit(1 + k*5 + i)
			want := b.GetBit(1 + i)
			if got != want {
				t.Errorf("segment %d offset %d: got %v want %v", k, i, got, want)
			}
		}
	}
}

func TestToStringFromStringRoundTrip(t *testing.T) {
	b, _ := Create(50)
	b.SetBit(0)
	b.SetBit(49)
	b.SetBit(25)
	s := b.ToString()

	b2, _ := Create(50)
	if err := b2.FromString(s); err != nil {
		t.Fatal(err)
	}
	if !Equal(b, b2) {
		t.Fatal("round trip through ToString/FromString changed bits")
	}
}

func TestHashRoundTripAndCorruption(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seg.bitmap")

	b, _ := Create(128)
	b.SetBit(3)
	b.SetBit(100)
	if err := b.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	read, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(b, read) {
		t.Fatal("read-back bitmap does not match original")
	}

	// Corrupt one byte of the packed body (after the 8-byte size
	// header) and confirm ReadFile surfaces ErrHashMismatch.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	raw[8] ^= 0xff
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path); !errors.Is(err, ErrHashMismatch) {
		t.Fatalf("expected ErrHashMismatch, got %v", err)
	}
}

func TestQuickHashDistinguishesContent(t *testing.T) {
	a, _ := Create(64)
	b, _ := Create(64)
	if a.QuickHash() != b.QuickHash() {
		t.Fatal("identical empty bitmaps should quick-hash identically")
	}
	b.SetBit(10)
	if a.QuickHash() == b.QuickHash() {
		t.Fatal("quick hash did not change after setting a bit")
	}
}

func TestBlake2FingerprintStable(t *testing.T) {
	a, _ := Create(64)
	a.SetBit(1)
	f1 := a.Blake2Fingerprint()
	f2 := a.Blake2Fingerprint()
	if f1 != f2 {
		t.Fatal("Blake2Fingerprint not deterministic")
	}
}
