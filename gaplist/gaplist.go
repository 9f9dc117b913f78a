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

// Package gaplist implements the append-only 16-bit prime-gap
// sequence that sieve-vx emits for one segment of the iZ-Matrix.
package gaplist

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
)

var (
	ErrInvalidArgument = errors.New("gaplist: invalid argument")
	ErrHashMismatch    = errors.New("gaplist: hash mismatch")
	ErrIoError         = errors.New("gaplist: io error")
)

// List is the sequence of gaps between consecutive surviving prime
// candidates within one segment of a sieve-vx pass.
//
// Anchor is the prime candidate immediately preceding the segment's
// first surviving value: 6*Y*Vx + 1. The original C implementation
// left this implicit in the caller's knowledge of vx and y; it is an
// explicit field here so a GapList is self-describing without an
// external convention (see Open Questions in the spec).
type List struct {
	Vx     uint64
	Y      *big.Int
	Anchor *big.Int
	Count  int
	Gaps   []uint16
	Hash   [sha256.Size]byte
}

// New returns an empty gap list for segment y of stride vx, with
// room for initialEstimate gaps (vx/3 is a good estimate — see
// vx.NewObj).
func New(vx uint64, y *big.Int, initialEstimate int) (*List, error) {
	if initialEstimate <= 0 {
		return nil, fmt.Errorf("%w: initial estimate must be positive", ErrInvalidArgument)
	}
	if y.Sign() < 0 {
		return nil, fmt.Errorf("%w: y must be non-negative", ErrInvalidArgument)
	}

	yvx := new(big.Int).Mul(y, new(big.Int).SetUint64(vx))
	anchor := new(big.Int).Lsh(yvx, 0) // copy
	anchor.Mul(yvx, big.NewInt(6))
	anchor.Add(anchor, big.NewInt(1))

	return &List{
		Vx:     vx,
		Y:      new(big.Int).Set(y),
		Anchor: anchor,
		Gaps:   make([]uint16, 0, initialEstimate),
	}, nil
}

// Append adds a gap to the list.
func (l *List) Append(gap uint16) {
	l.Gaps = append(l.Gaps, gap)
	l.Count++
}

// TrimToCount shrinks the backing slice to exactly Count entries.
func (l *List) TrimToCount() {
	l.Gaps = l.Gaps[:l.Count]
}

// Primes reconstructs every surviving candidate in the segment by
// running the gaps forward from Anchor, in ascending order. This is
// the property Testable Property 9 in the spec checks.
func (l *List) Primes() []*big.Int {
	out := make([]*big.Int, 0, l.Count)
	cur := new(big.Int).Set(l.Anchor)
	for _, g := range l.Gaps[:l.Count] {
		cur = new(big.Int).Add(cur, big.NewInt(int64(g)))
		out = append(out, new(big.Int).Set(cur))
	}
	return out
}

func encodeGaps(g []uint16) []byte {
	buf := make([]byte, len(g)*2)
	for i, v := range g {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}

func decodeGaps(buf []byte) []uint16 {
	out := make([]uint16, len(buf)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(buf[i*2:])
	}
	return out
}

// ComputeHash writes the SHA-256 digest of the gap array into Hash
// and returns it.
func (l *List) ComputeHash() [sha256.Size]byte {
	l.Hash = sha256.Sum256(encodeGaps(l.Gaps[:l.Count]))
	return l.Hash
}

// ValidateHash recomputes the digest and reports whether it matches
// the stored Hash.
func (l *List) ValidateHash() bool {
	return sha256.Sum256(encodeGaps(l.Gaps[:l.Count])) == l.Hash
}

// WriteFile writes the y-string length, the null-terminated decimal
// y, the count, the gap bytes, and the SHA-256 hash to path.
func (l *List) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}
	defer f.Close()

	ystr := l.Y.String() + "\x00"

	var lbuf [8]byte
	binary.LittleEndian.PutUint64(lbuf[:], uint64(len(ystr)))
	if _, err := f.Write(lbuf[:]); err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}
	if _, err := f.Write([]byte(ystr)); err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}

	l.ComputeHash()

	var cbuf [8]byte
	binary.LittleEndian.PutUint64(cbuf[:], uint64(l.Count))
	if _, err := f.Write(cbuf[:]); err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}
	if _, err := f.Write(encodeGaps(l.Gaps[:l.Count])); err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}
	if _, err := f.Write(l.Hash[:]); err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}
	return nil
}

// ReadFile reads a list written by WriteFile. vx is required to
// reconstruct Anchor, since the on-disk format (matching the spec)
// carries y but not vx. It fails with ErrHashMismatch if the stored
// hash disagrees with the freshly computed one over the gap bytes.
func ReadFile(path string, vx uint64) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoError, err)
	}
	defer f.Close()

	var lbuf [8]byte
	if _, err := io.ReadFull(f, lbuf[:]); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoError, err)
	}
	ylen := binary.LittleEndian.Uint64(lbuf[:])

	ybuf := make([]byte, ylen)
	if _, err := io.ReadFull(f, ybuf); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoError, err)
	}
	ystr := string(ybuf[:len(ybuf)-1]) // drop the null terminator

	y, ok := new(big.Int).SetString(ystr, 10)
	if !ok {
		return nil, fmt.Errorf("%w: non-numeric y string %q", ErrInvalidArgument, ystr)
	}

	var cbuf [8]byte
	if _, err := io.ReadFull(f, cbuf[:]); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoError, err)
	}
	count := int(binary.LittleEndian.Uint64(cbuf[:]))

	body := make([]byte, count*2)
	if _, err := io.ReadFull(f, body); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoError, err)
	}

	var hash [sha256.Size]byte
	if _, err := io.ReadFull(f, hash[:]); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoError, err)
	}

	l, err := New(vx, y, count+1)
	if err != nil {
		return nil, err
	}
	l.Count = count
	l.Gaps = decodeGaps(body)
	l.Hash = hash

	if !l.ValidateHash() {
		return nil, ErrHashMismatch
	}
	return l, nil
}
