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

// Package primelist implements the append-only 64-bit prime sequence
// container that every sieve in this module returns.
package primelist

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrInvalidArgument = errors.New("primelist: invalid argument")
	ErrHashMismatch    = errors.New("primelist: hash mismatch")
	ErrIoError         = errors.New("primelist: io error")
)

// List is an append-only sequence of primes discovered by a sieve.
// P may have spare capacity beyond Count; call TrimToCount before
// relying on len(P) == Count.
type List struct {
	Count int
	P     []uint64
	Hash  [sha256.Size]byte
}

// New returns an empty list with room for initialEstimate primes.
// initialEstimate is a caller-supplied capacity hint, not a hard cap:
// Append grows the backing slice as needed.
func New(initialEstimate int) (*List, error) {
	if initialEstimate <= 0 {
		return nil, fmt.Errorf("%w: initial estimate must be positive", ErrInvalidArgument)
	}
	return &List{P: make([]uint64, 0, initialEstimate)}, nil
}

// Append adds p to the list.
func (l *List) Append(p uint64) {
	l.P = append(l.P, p)
	l.Count++
}

// Last returns the most recently appended prime. Panics if the list
// is empty, mirroring direct slice indexing at the call sites this
// replaces.
func (l *List) Last() uint64 {
	return l.P[l.Count-1]
}

// TrimOvershoot drops trailing entries greater than n, looping until
// none remain (a sieve may overshoot its target by more than the one
// entry the original implementation assumed — see REDESIGN FLAGS).
func (l *List) TrimOvershoot(n uint64) {
	for l.Count > 0 && l.P[l.Count-1] > n {
		l.Count--
	}
	l.P = l.P[:l.Count]
}

// TrimToCount shrinks the backing slice to exactly Count entries.
func (l *List) TrimToCount() {
	l.P = l.P[:l.Count]
}

// ComputeHash writes the SHA-256 digest of the prime array (as
// little-endian uint64s) into Hash and returns it.
func (l *List) ComputeHash() [sha256.Size]byte {
	l.Hash = sha256.Sum256(encode(l.P[:l.Count]))
	return l.Hash
}

// ValidateHash recomputes the digest and reports whether it matches
// the stored Hash.
func (l *List) ValidateHash() bool {
	return sha256.Sum256(encode(l.P[:l.Count])) == l.Hash
}

func encode(p []uint64) []byte {
	buf := make([]byte, len(p)*8)
	for i, v := range p {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	return buf
}

func decode(buf []byte) []uint64 {
	out := make([]uint64, len(buf)/8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return out
}

// writeListBody writes count, the primes, and the hash to w. The
// caller must have already called ComputeHash.
func writeListBody(w io.Writer, l *List) error {
	var cbuf [4]byte
	binary.LittleEndian.PutUint32(cbuf[:], uint32(l.Count))
	if _, err := w.Write(cbuf[:]); err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}
	if _, err := w.Write(encode(l.P[:l.Count])); err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}
	if _, err := w.Write(l.Hash[:]); err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}
	return nil
}

// readListBody is the inverse of writeListBody. It does not validate
// the hash; callers do that once they've chosen how bytes reach r.
func readListBody(r io.Reader) (*List, error) {
	var cbuf [4]byte
	if _, err := io.ReadFull(r, cbuf[:]); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoError, err)
	}
	count := int(binary.LittleEndian.Uint32(cbuf[:]))

	body := make([]byte, count*8)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoError, err)
	}

	var hash [sha256.Size]byte
	if _, err := io.ReadFull(r, hash[:]); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoError, err)
	}

	return &List{Count: count, P: decode(body), Hash: hash}, nil
}

// WriteFile writes count, the primes (little-endian uint64s), and
// the SHA-256 hash to path.
func (l *List) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}
	defer f.Close()

	l.ComputeHash()
	return writeListBody(f, l)
}

// ReadFile reads a list written by WriteFile, failing with
// ErrHashMismatch if the stored hash disagrees with the freshly
// computed one.
func ReadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoError, err)
	}
	defer f.Close()

	l, err := readListBody(f)
	if err != nil {
		return nil, err
	}
	if !l.ValidateHash() {
		return nil, ErrHashMismatch
	}
	return l, nil
}
