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

import "github.com/dchest/siphash"

// fixed process-wide key; QuickHash is never persisted, so stability
// across process restarts is not required.
const (
	quickHashK0 = 0x6261746d706b3031
	quickHashK1 = 0x756e702d6861736b
)

func quickHash(data []byte) uint64 {
	return siphash.Hash(quickHashK0, quickHashK1, data)
}
