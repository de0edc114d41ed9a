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

package scanner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/salikh/xlscan/blob"
	"github.com/salikh/xlscan/errsink"
	"github.com/salikh/xlscan/literal"
	"github.com/salikh/xlscan/srcpos"
)

func newScanner(src string) (*Scanner, *bytes.Buffer) {
	var errOut bytes.Buffer
	positions := srcpos.New()
	positions.OpenSourceFile("test")
	errs := errsink.New(positions, &errOut)
	return New(strings.NewReader(src), positions, nil, errs, Options{}), &errOut
}

func readAll(t *testing.T, src string, limit int) []Token {
	t.Helper()
	sc, _ := newScanner(src)
	var toks []Token
	for i := 0; i < limit; i++ {
		tok := sc.Read()
		toks = append(toks, tok)
		if tok == EOF {
			break
		}
	}
	return toks
}

func TestIndentSequence(t *testing.T) {
	sc, _ := newScanner("  \n  foo\n")
	want := []Token{NEWLINE, INDENT, NAME, NEWLINE, UNINDENT, EOF}
	for i, w := range want {
		got := sc.Read()
		if got != w {
			t.Fatalf("token %d: Read() = %s, want %s", i, got, w)
		}
		if w == NAME && sc.Spelling() != "foo" {
			t.Errorf("token %d: Spelling() = %q, want %q", i, sc.Spelling(), "foo")
		}
	}
}

func TestNoLeadingNewlineForFlatFirstLine(t *testing.T) {
	// A first line at the enclosing (zero) indent never gets a synthetic
	// leading NEWLINE: there is no previous line to separate it from.
	toks := readAll(t, "foo\n", 4)
	want := []Token{NAME, NEWLINE, EOF}
	if !tokensEqual(toks, want) {
		t.Fatalf("Read() sequence = %v, want %v", toks, want)
	}
}

func tokensEqual(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestIntegerBaseRedefinition(t *testing.T) {
	tests := []struct {
		src  string
		want uint64
	}{
		{"16#FF", 255},
		{"2#1_0000_0000", 256},
	}
	for _, tt := range tests {
		sc, errOut := newScanner(tt.src)
		tok := sc.Read()
		if tok != INTEGER {
			t.Errorf("scanning %q: Read() = %s, want INTEGER (errors: %s)", tt.src, tok, errOut)
			continue
		}
		n, ok := sc.Value.(*literal.Natural)
		if !ok {
			t.Errorf("scanning %q: Value has type %T, want *literal.Natural", tt.src, sc.Value)
			continue
		}
		if n.Value != tt.want {
			t.Errorf("scanning %q: Value = %d, want %d", tt.src, n.Value, tt.want)
		}
	}
}

func TestBlobLiteral(t *testing.T) {
	sc, errOut := newScanner("$16#DEAD_BEEF$")
	tok := sc.Read()
	if tok != BLOB {
		t.Fatalf("Read() = %s, want BLOB (errors: %s)", tok, errOut)
	}
	b, ok := sc.Value.(*blob.Blob)
	if !ok {
		t.Fatalf("Value has type %T, want *blob.Blob", sc.Value)
	}
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if !bytes.Equal(b.Data(), want) {
		t.Errorf("Data() = %x, want %x", b.Data(), want)
	}
}

func TestBlobBaseRedefinition(t *testing.T) {
	tests := []struct {
		src  string
		want []byte
	}{
		// No explicit base: falls back to blob_base = 16.
		{"$DEAD$", []byte{0xDE, 0xAD}},
		{"$2#1010_0101$", []byte{0xA5}},
		{"$8#01234567$", []byte{0x05, 0x39, 0x77}},
		{"$64#ABCD=$", []byte{0x00, 0x10, 0x83}},
	}
	for _, tt := range tests {
		sc, errOut := newScanner(tt.src)
		tok := sc.Read()
		if tok != BLOB {
			t.Errorf("scanning %q: Read() = %s, want BLOB (errors: %s)", tt.src, tok, errOut)
			continue
		}
		b, ok := sc.Value.(*blob.Blob)
		if !ok {
			t.Errorf("scanning %q: Value has type %T, want *blob.Blob", tt.src, sc.Value)
			continue
		}
		if !bytes.Equal(b.Data(), tt.want) {
			t.Errorf("scanning %q: Data() = %x, want %x", tt.src, b.Data(), tt.want)
		}
	}
}

func TestRealExponent(t *testing.T) {
	sc, errOut := newScanner("1.5e-2")
	tok := sc.Read()
	if tok != REAL {
		t.Fatalf("Read() = %s, want REAL (errors: %s)", tok, errOut)
	}
	r, ok := sc.Value.(*literal.Real)
	if !ok {
		t.Fatalf("Value has type %T, want *literal.Real", sc.Value)
	}
	const want = 0.015
	if diff := r.Value - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("Value = %v, want %v", r.Value, want)
	}
}

func TestCharacterLiteral(t *testing.T) {
	sc, errOut := newScanner("'a'")
	tok := sc.Read()
	if tok != CHARACTER {
		t.Fatalf("Read() = %s, want CHARACTER (errors: %s)", tok, errOut)
	}
	c, ok := sc.Value.(*literal.Character)
	if !ok {
		t.Fatalf("Value has type %T, want *literal.Character", sc.Value)
	}
	if c.Value != 'a' {
		t.Errorf("Value = %q, want %q", c.Value, 'a')
	}
}

func TestCharacterLiteralTooLong(t *testing.T) {
	sc, errOut := newScanner("'ab'")
	tok := sc.Read()
	if tok != CHARACTER {
		t.Fatalf("Read() = %s, want CHARACTER (errors: %s)", tok, errOut)
	}
	if !strings.Contains(errOut.String(), "one character") {
		t.Errorf("errors = %q, want a mention of \"one character\"", errOut.String())
	}
}

func TestTextDoubledDelimiter(t *testing.T) {
	sc, errOut := newScanner(`"he said ""hi"""`)
	tok := sc.Read()
	if tok != TEXT {
		t.Fatalf("Read() = %s, want TEXT (errors: %s)", tok, errOut)
	}
	txt, ok := sc.Value.(*blob.Text)
	if !ok {
		t.Fatalf("Value has type %T, want *blob.Text", sc.Value)
	}
	const want = `he said "hi"`
	if txt.String() != want {
		t.Errorf("Value = %q, want %q", txt.String(), want)
	}
}

func TestRangeOperatorPushback(t *testing.T) {
	sc, errOut := newScanner("1..3")
	tok := sc.Read()
	if tok != INTEGER {
		t.Fatalf("Read() #1 = %s, want INTEGER (errors: %s)", tok, errOut)
	}
	if n := sc.Value.(*literal.Natural).Value; n != 1 {
		t.Errorf("Value #1 = %d, want 1", n)
	}
	tok = sc.Read()
	if tok != SYMBOL {
		t.Fatalf("Read() #2 = %s, want SYMBOL (errors: %s)", tok, errOut)
	}
	if sc.Spelling() != ".." {
		t.Errorf("Spelling() #2 = %q, want %q", sc.Spelling(), "..")
	}
	tok = sc.Read()
	if tok != INTEGER {
		t.Fatalf("Read() #3 = %s, want INTEGER (errors: %s)", tok, errOut)
	}
	if n := sc.Value.(*literal.Natural).Value; n != 3 {
		t.Errorf("Value #3 = %d, want 3", n)
	}
}

func TestMultiLevelDedentEmitsOneUnindentPerLevel(t *testing.T) {
	// Jumping from a 3-deep nest straight back to the second level closes
	// two enclosing blocks, and must emit two UNINDENT tokens even though
	// the source only has one dedenting line.
	sc, errOut := newScanner("w\n    x\n        y\n            z\n    v\n")
	want := []Token{
		NAME, INDENT, NAME, INDENT, NAME, INDENT, NAME, UNINDENT, UNINDENT, NAME,
	}
	names := []string{"w", "x", "y", "z", "v"}
	nameIdx := 0
	for i, w := range want {
		got := sc.Read()
		if got != w {
			t.Fatalf("token %d: Read() = %s, want %s (errors so far: %s)", i, got, w, errOut)
		}
		if w == NAME {
			if sc.Spelling() != names[nameIdx] {
				t.Errorf("token %d: Spelling() = %q, want %q", i, sc.Spelling(), names[nameIdx])
			}
			nameIdx++
		}
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected errors: %s", errOut)
	}
}

func TestUnindentMismatchReportsError(t *testing.T) {
	// A line dedenting to a column between two known indent levels is a
	// lexical error, not merely a structural surprise.
	sc, errOut := newScanner("a\n    b\n  c\n")
	want := []Token{NAME, INDENT, NAME, ERROR}
	for i, w := range want {
		got := sc.Read()
		if got != w {
			t.Fatalf("token %d: Read() = %s, want %s (errors so far: %s)", i, got, w, errOut)
		}
	}
	if !strings.Contains(errOut.String(), "unindenting") {
		t.Errorf("errors = %q, want a mention of unindenting", errOut.String())
	}
}

func TestParentheseSuspendsIndentation(t *testing.T) {
	sc, errOut := newScanner("f (\n  a\n  b\n)\n")
	// f, whitespace run, SYMBOL "(" - discovery mode has no block table, so
	// "(" is not an OPEN and the operator scanner never makes the call;
	// drive the state machine by hand instead.
	tok := sc.Read()
	if tok != NAME {
		t.Fatalf("Read() #1 = %s, want NAME (errors: %s)", tok, errOut)
	}
	tok = sc.Read()
	if tok != SYMBOL {
		t.Fatalf("Read() #2 = %s, want SYMBOL (errors: %s)", tok, errOut)
	}
	saved := sc.OpenParenthese()
	// Inside the parenthesis, the first interior line becomes the new
	// reference indent instead of being compared against the enclosing one,
	// so neither interior line produces INDENT/UNINDENT, only NEWLINE.
	tok = sc.Read()
	if tok != NEWLINE {
		t.Fatalf("Read() #3 = %s, want NEWLINE (errors: %s)", tok, errOut)
	}
	tok = sc.Read()
	if tok != NAME {
		t.Fatalf("Read() #4 = %s, want NAME (errors: %s)", tok, errOut)
	}
	tok = sc.Read()
	if tok != NEWLINE {
		t.Fatalf("Read() #5 = %s, want NEWLINE (errors: %s)", tok, errOut)
	}
	tok = sc.Read()
	if tok != NAME {
		t.Fatalf("Read() #6 = %s, want NAME (errors: %s)", tok, errOut)
	}
	sc.CloseParenthese(saved)
}

func TestHadSpaceBeforeAndAfter(t *testing.T) {
	sc, errOut := newScanner("a +b c")
	tests := []struct {
		want                  Token
		wantBefore, wantAfter bool
	}{
		{NAME, false, true},   // "a", followed by a space
		{SYMBOL, true, false}, // "+", preceded by a space, glued to "b"
		{NAME, false, true},   // "b", glued to "+", followed by a space
		{NAME, true, false},   // "c", preceded by a space, then EOF
	}
	for i, tt := range tests {
		tok := sc.Read()
		if tok != tt.want {
			t.Fatalf("token %d: Read() = %s, want %s (errors: %s)", i, tok, tt.want, errOut)
		}
		if sc.HadSpaceBefore != tt.wantBefore {
			t.Errorf("token %d (%s): HadSpaceBefore = %v, want %v", i, sc.Spelling(), sc.HadSpaceBefore, tt.wantBefore)
		}
		if sc.HadSpaceAfter != tt.wantAfter {
			t.Errorf("token %d (%s): HadSpaceAfter = %v, want %v", i, sc.Spelling(), sc.HadSpaceAfter, tt.wantAfter)
		}
	}
}

func TestSkipDropsIndentedContinuationLines(t *testing.T) {
	// Drive the scanner to an indent of 2 (as in TestIndentSequence), then
	// Skip a region spanning a continuation line with 2 extra leading
	// spaces: those 2 columns belong to the indent and are dropped, but
	// anything past them survives.
	sc, errOut := newScanner("  note***one\n    two***more")
	tok := sc.Read()
	if tok != INDENT {
		t.Fatalf("Read() #1 = %s, want INDENT (errors: %s)", tok, errOut)
	}
	got, err := sc.Skip("***")
	if err != nil {
		t.Fatalf("Skip() #1 returned error: %v", err)
	}
	if got != "note" {
		t.Errorf("Skip() #1 = %q, want %q", got, "note")
	}
	got, err = sc.Skip("***")
	if err != nil {
		t.Fatalf("Skip() #2 returned error: %v", err)
	}
	// "    two" has 4 leading columns; only the first 2 (matching the
	// current indent) are dropped, leaving 2 columns of genuine content
	// indentation in the result.
	if want := "one\n  two"; got != want {
		t.Errorf("Skip() #2 = %q, want %q", got, want)
	}
}

func TestSkipReadsUntilClosingMarker(t *testing.T) {
	sc, _ := newScanner("raw content***more")
	got, err := sc.Skip("***")
	if err != nil {
		t.Fatalf("Skip() returned error: %v", err)
	}
	if got != "raw content" {
		t.Errorf("Skip() = %q, want %q", got, "raw content")
	}
	// The scanner resumes ordinary tokenizing right after the marker.
	tok := sc.Read()
	if tok != NAME {
		t.Fatalf("Read() after Skip() = %s, want NAME", tok)
	}
	if sc.Spelling() != "more" {
		t.Errorf("Spelling() after Skip() = %q, want %q", sc.Spelling(), "more")
	}
}

func TestSkipUnterminatedReportsError(t *testing.T) {
	sc, _ := newScanner("raw content")
	_, err := sc.Skip("***")
	if err == nil {
		t.Fatalf("Skip() returned nil error, want an unterminated-input error")
	}
}
