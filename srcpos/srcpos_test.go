// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package srcpos

import "testing"

func step(r *Registry, s string) []Pos {
	var out []Pos
	for i := 0; i < len(s); i++ {
		out = append(out, r.Step(s[i]))
	}
	return out
}

func TestStepIsMonotonic(t *testing.T) {
	r := New()
	r.OpenSourceFile("a")
	positions := step(r, "ab\ncd\n")
	for i := 1; i < len(positions); i++ {
		if positions[i] <= positions[i-1] {
			t.Fatalf("position %d (%d) did not increase over position %d (%d)", i, positions[i], i-1, positions[i-1])
		}
	}
}

func TestInfoResolvesLineAndColumn(t *testing.T) {
	r := New()
	r.OpenSourceFile("a")
	positions := step(r, "ab\ncd\n")
	// positions: a=0 b=1 \n=2 c=3 d=4 \n=5
	tests := []struct {
		idx        int
		line, col  int
	}{
		{0, 1, 0},
		{1, 1, 1},
		{3, 2, 0},
		{4, 2, 1},
	}
	for _, tt := range tests {
		info, ok := r.Info(positions[tt.idx])
		if !ok {
			t.Fatalf("Info(%d) returned ok=false", positions[tt.idx])
		}
		if info.Line != tt.line || info.Column != tt.col {
			t.Errorf("Info(%d) = line %d col %d, want line %d col %d", positions[tt.idx], info.Line, info.Column, tt.line, tt.col)
		}
		if info.File != "a" {
			t.Errorf("Info(%d).File = %q, want %q", positions[tt.idx], info.File, "a")
		}
	}
}

func TestInfoUnknownPositionFails(t *testing.T) {
	r := New()
	r.OpenSourceFile("a")
	step(r, "ab\n")
	if _, ok := r.Info(Pos(1000)); ok {
		t.Errorf("Info() on an unstepped position returned ok=true, want false")
	}
}

func TestSourceStripsTrailingNewline(t *testing.T) {
	r := New()
	r.OpenSourceFile("a")
	positions := step(r, "hello\nworld\n")
	info, ok := r.Info(positions[0])
	if !ok {
		t.Fatalf("Info() returned ok=false")
	}
	buf := make([]byte, 32)
	n, complete := r.Source(info, buf)
	if !complete {
		t.Fatalf("Source() reported incomplete copy")
	}
	if got := string(buf[:n]); got != "hello" {
		t.Errorf("Source() = %q, want %q", got, "hello")
	}
}

func TestMultipleFilesKeepSeparatePositionRanges(t *testing.T) {
	r := New()
	r.OpenSourceFile("first")
	firstPositions := step(r, "ab\n")
	r.OpenSourceFile("second")
	secondPositions := step(r, "cd\n")

	info, ok := r.Info(firstPositions[0])
	if !ok || info.File != "first" {
		t.Fatalf("Info(firstPositions[0]) = %+v, ok=%v, want File=first", info, ok)
	}
	info, ok = r.Info(secondPositions[0])
	if !ok || info.File != "second" {
		t.Fatalf("Info(secondPositions[0]) = %+v, ok=%v, want File=second", info, ok)
	}
	if secondPositions[0] <= firstPositions[len(firstPositions)-1] {
		t.Errorf("second file's first position (%d) did not exceed first file's last position (%d)", secondPositions[0], firstPositions[len(firstPositions)-1])
	}
}

func TestInfoStringFormatting(t *testing.T) {
	withFile := Info{File: "a.txt", Line: 3, Column: 5}
	if got, want := withFile.String(), "a.txt:3:5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	noFile := Info{Line: 3, Column: 5}
	if got, want := noFile.String(), "3:5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
