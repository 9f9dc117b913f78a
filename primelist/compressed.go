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
	"bytes"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt is the conventional extension for files written by
// WriteCompressed; neither WriteCompressed nor ReadCompressed adds or
// checks it. The compressed form is an additive archival envelope
// around the canonical uncompressed layout WriteFile produces; it
// never changes that layout.
const CompressedExt = ".plist.zst"

// WriteCompressed writes the same byte stream as WriteFile (count,
// primes, hash) through a zstd encoder, useful for archiving very
// large prime lists (e.g. pi(10^9) has ~50M entries).
func (l *List) WriteCompressed(path string) error {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}

	l.ComputeHash()
	if err := writeListBody(enc, l); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %s", ErrIoError, err)
	}
	return nil
}

// ReadCompressed is the inverse of WriteCompressed.
func ReadCompressed(path string) (*List, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoError, err)
	}
	dec, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIoError, err)
	}
	defer dec.Close()

	l, err := readListBody(dec)
	if err != nil {
		return nil, err
	}
	if !l.ValidateHash() {
		return nil, ErrHashMismatch
	}
	return l, nil
}
