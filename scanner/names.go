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
	"strings"
	"unicode"

	"github.com/salikh/xlscan/blob"
	"github.com/salikh/xlscan/literal"
	"github.com/salikh/xlscan/srcpos"
)

func isNameStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isOperatorByte(r rune) bool {
	if r > unicode.MaxASCII {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// scanName implements §4.6 step 7: a UTF-8 alphabetic identifier, possibly
// interrupted by single underscores, classified against the syntax table
// as a plain NAME, as the OPEN half of a block, or as the CLOSE that the
// last OPEN expects. A doubled or trailing underscore is reported and left
// out of the name, so the name stays valid.
func (s *Scanner) scanName(first rune, pos srcpos.Pos) Token {
	var raw strings.Builder
	raw.WriteRune(first)
	s.emit(first)
	prevUnderscore := false
	for {
		r, rp, ok := s.readRune()
		if !ok {
			break
		}
		if r == '_' {
			s.emit(r)
			if prevUnderscore {
				s.errs.Error(rp, "doubled underscore in name")
				continue
			}
			prevUnderscore = true
			raw.WriteRune(r)
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			prevUnderscore = false
			raw.WriteRune(r)
			s.emit(r)
			continue
		}
		s.ungetch(r, rp)
		break
	}
	spelling := raw.String()
	if prevUnderscore {
		s.errs.Error(pos, "name %q ends with an underscore", spelling)
		spelling = strings.TrimSuffix(spelling, "_")
	}
	name := blob.NewName(pos, []byte(spelling))
	s.Value = name
	if closing, ok := s.syn.IsBlock(name.Normalized()); ok {
		s.blockClose = closing
		return OPEN
	}
	if blob.Normalize(spelling) == blob.Normalize(s.blockClose) {
		return CLOSE
	}
	return NAME
}

// scanOperator implements §4.6 step 9: a maximal run of punctuation bytes
// that the syntax table accepts as a (prefix of an) operator. In
// discovery mode every run is accepted as-is. An operator spelling is
// also checked against the block table, since block delimiters like "("
// and "{" are themselves punctuation-only names.
func (s *Scanner) scanOperator(first rune, pos srcpos.Pos) Token {
	var raw strings.Builder
	raw.WriteRune(first)
	s.emit(first)
	for {
		r, rp, ok := s.readRune()
		if !ok {
			break
		}
		if !isOperatorByte(r) {
			s.ungetch(r, rp)
			break
		}
		candidate := raw.String() + string(r)
		if !s.syn.IsOperator(candidate) {
			s.ungetch(r, rp)
			break
		}
		raw.WriteRune(r)
		s.emit(r)
	}
	spelling := raw.String()
	name := blob.NewName(pos, []byte(spelling))
	s.Value = name
	if closing, ok := s.syn.IsBlock(name.Normalized()); ok {
		s.blockClose = closing
		return OPEN
	}
	if s.blockClose != "" && blob.Normalize(spelling) == blob.Normalize(s.blockClose) {
		return CLOSE
	}
	return SYMBOL
}

// scanDelimited implements §4.6 step 8: a TEXT or CHARACTER literal
// bounded by a doubled-delimiter escape (`'it''s'` spells `it's`), erroring
// without aborting if the stream ends before the closing delimiter.
func (s *Scanner) scanDelimited(pos srcpos.Pos, delim rune, kind Token) Token {
	s.emit(delim)
	var data []byte
	for {
		r, rp, ok := s.readRune()
		if !ok {
			s.errs.Error(pos, "unterminated literal: missing closing %q", delim)
			break
		}
		if r == delim {
			s.emit(r)
			r2, rp2, ok2 := s.readRune()
			if ok2 && r2 == delim {
				s.emit(r2)
				data = append(data, []byte(string(delim))...)
				continue
			}
			if ok2 {
				s.ungetch(r2, rp2)
			}
			break
		}
		s.emit(r)
		data = append(data, []byte(string(r))...)
	}
	if kind == CHARACTER {
		rs := []rune(string(data))
		var r rune
		if len(rs) != 1 {
			s.errs.Error(pos, "character literal must contain exactly one character, got %d", len(rs))
			if len(rs) > 0 {
				r = rs[0]
			}
		} else {
			r = rs[0]
		}
		s.Value = literal.NewCharacter(pos, r)
		return CHARACTER
	}
	s.Value = blob.NewText(pos, string(data))
	return TEXT
}
