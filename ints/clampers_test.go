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

package ints

import "testing"

func TestMinMaxClamp(t *testing.T) {
	if got := Min(3, 7); got != 3 {
		t.Errorf("Min(3,7) = %d, want 3", got)
	}
	if got := Max(3, 7); got != 7 {
		t.Errorf("Max(3,7) = %d, want 7", got)
	}
	if got := Clamp(10, 0, 5); got != 5 {
		t.Errorf("Clamp(10,0,5) = %d, want 5", got)
	}
	if got := Clamp(-1, 0, 5); got != 0 {
		t.Errorf("Clamp(-1,0,5) = %d, want 0", got)
	}
	if got := Clamp(3, 0, 5); got != 3 {
		t.Errorf("Clamp(3,0,5) = %d, want 3", got)
	}
}
