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
	"fmt"
)

// Skip consumes raw bytes verbatim until the first occurrence of closing,
// bypassing ordinary token grammar entirely, and returns everything
// consumed before that marker. It is used for raw-text regions whose end
// is a literal spelling rather than a token (a fenced block, a long
// comment with a caller-chosen terminator).
//
// Indentation bookkeeping continues during the skip (§4.6): on each
// continuation line, leading spaces and tabs up to the current indent
// column are dropped from the returned text rather than copied through,
// the same as they would be if measuring an ordinary line's indentation.
// Whitespace beyond that column, and all non-whitespace content, is kept.
func (s *Scanner) Skip(closing string) (string, error) {
	if closing == "" {
		return "", fmt.Errorf("scanner: Skip: empty closing marker")
	}
	match := []byte(closing)
	var buf []byte
	dropping := false
	var column uint32
	for {
		r, _, ok := s.readRune()
		if !ok {
			return string(buf), fmt.Errorf("scanner: reached end of input before closing marker %q", closing)
		}
		if dropping && (r == ' ' || r == '\t') && column < s.indent {
			column++
			continue
		}
		dropping = false
		buf = append(buf, []byte(string(r))...)
		if bytes.HasSuffix(buf, match) {
			return string(buf[:len(buf)-len(match)]), nil
		}
		if r == '\n' {
			dropping = true
			column = 0
		}
	}
}

// parenState is the indentation context saved by OpenParenthese and
// restored by CloseParenthese: the enclosing indent and whether it was
// itself still awaiting its first interior line.
type parenState struct {
	indent        uint32
	settingIndent bool
}

// OpenParenthese is called once the scanner has produced the OPEN token
// for a parenthesis-like block. It saves the enclosing indent context and
// arms settingIndent, so the block's first interior line — whatever its
// own column — becomes the new reference indent (§4.6 step 3) rather than
// being compared against the enclosing one. The returned value must be
// passed to a matching CloseParenthese once the block's CLOSE token is
// produced.
func (s *Scanner) OpenParenthese() any {
	saved := parenState{indent: s.indent, settingIndent: s.settingIndent}
	s.settingIndent = true
	return saved
}

// CloseParenthese restores the indentation context saved by the matching
// OpenParenthese. If the block ever set a fresh indent level (which pushed
// the enclosing indent onto the indent stack), that pushed entry is popped
// now, since the block itself is closing rather than merely dedenting
// within it.
func (s *Scanner) CloseParenthese(saved any) {
	p := saved.(parenState)
	s.indent = p.indent
	s.settingIndent = p.settingIndent
	if !s.indents.Empty() && s.indents.Top() == s.indent {
		s.indents.Pop()
	}
}
