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

package blob

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	log "github.com/golang/glog"

	"github.com/salikh/xlscan/srcpos"
	"github.com/salikh/xlscan/tree"
)

// Name is a blob whose bytes obey the name-validity rule (§4.2): it is
// either an operator spelling (all-punctuation), an alphabetic-or-UTF8
// identifier, or one of the three single-byte syntactic markers NEWLINE,
// INDENT, UNINDENT.
type Name struct {
	Blob
}

// NewName allocates a name node. raw must already satisfy Validate; a
// violation is a scanner bug, not a user-facing error, so it is fatal.
func NewName(pos srcpos.Pos, raw []byte) *Name {
	if err := Validate(raw); err != nil {
		log.Exitf("name: invalid name %q: %v", raw, err)
	}
	n := &Name{}
	n.Node.Init(n, "name", nameDispatch)
	if _, err := n.Dispatch(tree.Initialize, pos, raw); err != nil {
		log.Exitf("name: initialize: %v", err)
	}
	return n
}

// String returns the name's raw (not normalized) spelling.
func (n *Name) String() string { return string(n.data) }

// Normalized returns the name's canonical form: every '_' stripped and
// every ASCII letter lowercased.
func (n *Name) Normalized() string { return Normalize(string(n.data)) }

func nameDispatch(self tree.Tree, verb tree.Verb, args ...any) (any, error) {
	n := self.(*Name)
	switch verb {
	case tree.Initialize:
		n.Pos = args[0].(srcpos.Pos)
		n.data = append([]byte(nil), args[1].([]byte)...)
		n.MarkLive()
		return self, nil
	case tree.Clone:
		return NewName(n.Pos, n.data), nil
	case tree.Cast:
		if args[0].(string) == "name" {
			return self, nil
		}
		return commonDispatch(self, n, tree.Cast, args...)
	default:
		return commonDispatch(self, n, verb, args...)
	}
}

// Normalize computes the canonical comparison form of a name: ASCII
// lower-cased with every '_' removed. Normalize is idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			continue
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// Equal compares two names by their normalized forms.
func Equal(a, b *Name) bool {
	return Normalize(string(a.data)) == Normalize(string(b.data))
}

const markers = "\n\t\b"

// Validate checks raw against the name-validity rule.
func Validate(raw []byte) error {
	if len(raw) == 0 {
		return fmt.Errorf("empty name")
	}
	if len(raw) == 1 && (raw[0] == '\n' || raw[0] == '\t' || raw[0] == '\b') {
		return nil
	}
	first, w := utf8.DecodeRune(raw)
	if first == utf8.RuneError {
		return fmt.Errorf("invalid UTF-8 at start of name %q", raw)
	}
	if isOperatorRune(first) {
		for i := 0; i < len(raw); i++ {
			if !isOperatorRune(rune(raw[i])) {
				return fmt.Errorf("operator name %q mixes punctuation with non-punctuation byte %q", raw, raw[i])
			}
		}
		return nil
	}
	if !unicode.IsLetter(first) {
		return fmt.Errorf("name %q must start with a letter or punctuation", raw)
	}
	prevUnderscore := false
	for i := w; i < len(raw); {
		r, rw := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && rw <= 1 {
			return fmt.Errorf("invalid UTF-8 in name %q at byte %d", raw, i)
		}
		switch {
		case r == '_':
			if prevUnderscore {
				return fmt.Errorf("name %q contains a doubled underscore", raw)
			}
			prevUnderscore = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			prevUnderscore = false
		default:
			return fmt.Errorf("name %q contains invalid byte %q at %d", raw, r, i)
		}
		i += rw
	}
	if prevUnderscore {
		return fmt.Errorf("name %q ends with an underscore", raw)
	}
	return nil
}

// isOperatorRune reports whether r belongs to the "punctuation" class used
// to classify operator-spelling names: printable ASCII punctuation and
// symbol characters, matching what the scanner accepts as the start of an
// operator token (§4.6 step 9).
func isOperatorRune(r rune) bool {
	if r > unicode.MaxASCII {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
