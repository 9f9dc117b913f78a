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

package primelist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func buildList(t *testing.T, primes ...uint64) *List {
	t.Helper()
	l, err := New(len(primes) + 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range primes {
		l.Append(p)
	}
	return l
}

func TestAppendAndTrim(t *testing.T) {
	l := buildList(t, 2, 3, 5, 7, 11)
	if l.Count != 5 {
		t.Fatalf("count = %d, want 5", l.Count)
	}
	if l.Last() != 11 {
		t.Fatalf("last = %d, want 11", l.Last())
	}
}

func TestTrimOvershootLoopsUntilBound(t *testing.T) {
	// Simulate a sieve that overshot by more than one entry.
	l := buildList(t, 2, 3, 5, 7, 11, 13, 17)
	l.TrimOvershoot(10)
	want := []uint64{2, 3, 5, 7}
	if l.Count != len(want) {
		t.Fatalf("count = %d, want %d", l.Count, len(want))
	}
	for i, v := range want {
		if l.P[i] != v {
			t.Errorf("P[%d] = %d, want %d", i, l.P[i], v)
		}
	}
}

func TestWriteFileReadFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "primes.plist")

	l := buildList(t, 2, 3, 5, 7, 11, 13, 17, 19, 23, 29)
	if err := l.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	read, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if read.Count != l.Count {
		t.Fatalf("count = %d, want %d", read.Count, l.Count)
	}
	for i := range l.P {
		if read.P[i] != l.P[i] {
			t.Errorf("P[%d] = %d, want %d", i, read.P[i], l.P[i])
		}
	}
}

func TestReadFileHashMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "primes.plist")

	l := buildList(t, 2, 3, 5, 7, 11)
	if err := l.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	raw[4] ^= 0xff // corrupt the first prime's low byte
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadFile(path); !errors.Is(err, ErrHashMismatch) {
		t.Fatalf("expected ErrHashMismatch, got %v", err)
	}
}

func TestWriteCompressedReadCompressedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "primes.plist.zst")

	l := buildList(t, 2, 3, 5, 7, 11, 13, 17, 19, 23, 29)
	if err := l.WriteCompressed(path); err != nil {
		t.Fatal(err)
	}

	read, err := ReadCompressed(path)
	if err != nil {
		t.Fatal(err)
	}
	if read.Count != l.Count {
		t.Fatalf("count = %d, want %d", read.Count, l.Count)
	}
	for i := range l.P {
		if read.P[i] != l.P[i] {
			t.Errorf("P[%d] = %d, want %d", i, read.P[i], l.P[i])
		}
	}
}
