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
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	log "github.com/golang/glog"

	"github.com/salikh/xlscan/blob"
	"github.com/salikh/xlscan/errsink"
	"github.com/salikh/xlscan/srcpos"
	"github.com/salikh/xlscan/syntax"
	"github.com/salikh/xlscan/tree"
)

// Options controls non-default scanner behavior. The zero Options is the
// common case.
type Options struct {
	// Trace makes Read log every emitted token at glog verbosity 2, useful
	// when chasing down an indentation bug without attaching a debugger.
	Trace bool
}

type pendingRune struct {
	r   rune
	pos srcpos.Pos
}

// Scanner is the single-pass lexical state machine. A Scanner is not safe
// for concurrent use, matching the cooperative single-threaded model the
// rest of this module assumes.
type Scanner struct {
	r         *bufio.Reader
	positions *srcpos.Registry
	syn       syntax.Table
	errs      *errsink.Sink
	opts      Options

	source strings.Builder
	// Value holds the scanned payload of the most recently returned
	// content token (INTEGER, REAL, CHARACTER, TEXT, BLOB, NAME, SYMBOL,
	// OPEN, CLOSE); it is nil after a structural token (NEWLINE, INDENT,
	// UNINDENT, EOF, ERROR).
	Value tree.Tree
	// HadSpaceBefore and HadSpaceAfter record whitespace adjacency around
	// the most recently returned content token (§4.5, §4.6 step 10): the
	// parser consumes them to tell a user-defined operator's prefix use
	// ("- x") from its infix use ("x - y"). Both are meaningless for a
	// structural token (NEWLINE, INDENT, UNINDENT, EOF, ERROR).
	HadSpaceBefore bool
	HadSpaceAfter  bool
	// pendingSpace accumulates across the whitespace loop in read() and is
	// captured into HadSpaceBefore, then cleared, the moment a token
	// actually starts.
	pendingSpace bool

	indents        *blob.Typed[uint32]
	indent         uint32
	column         uint32
	indentChar     byte
	checkingIndent bool
	settingIndent  bool
	blockClose     string
	// contentResolved becomes true once the first indent decision (INDENT,
	// UNINDENT or unchanged) has run. Until then, an unchanged decision
	// skips its usual NEWLINE: the very first content line of a file has no
	// preceding line to separate from.
	contentResolved bool
	// dedenting, dedentTarget and dedentPos carry a multi-level dedent
	// across the several Read calls it takes to unwind, one UNINDENT per
	// enclosing level, until the stack drains down to dedentTarget.
	dedenting    bool
	dedentTarget uint32
	dedentPos    srcpos.Pos

	pending []pendingRune

	needClosingNewline bool
	eof                bool
}

// New creates a scanner reading from r. positions must outlive every token
// the scanner produces, since each token's srcpos.Pos resolves against it.
// syn may be nil, in which case the scanner runs in discovery mode
// (syntax.Discovery).
func New(r io.Reader, positions *srcpos.Registry, syn syntax.Table, errs *errsink.Sink, opts Options) *Scanner {
	if syn == nil {
		syn = syntax.Discovery{}
	}
	return &Scanner{
		r:         bufio.NewReader(r),
		positions: positions,
		syn:       syn,
		errs:      errs,
		opts:      opts,
		indents:   blob.NewTyped[uint32](),
		// The start of input is treated like the point right after an
		// implicit newline, so a leading blank or indented first line is
		// measured the same way any other line would be.
		checkingIndent: true,
	}
}

// Spelling returns the exact source bytes consumed by the most recently
// returned token, whitespace and comments stripped except for the newlines
// that belong to a NEWLINE/INDENT/UNINDENT token itself.
func (s *Scanner) Spelling() string { return s.source.String() }

func (s *Scanner) errorf(pos srcpos.Pos, format string, args ...any) Token {
	s.errs.Error(pos, format, args...)
	s.needClosingNewline = false
	return ERROR
}

// readByte reads one raw byte, stepping the position registry.
func (s *Scanner) readByte() (byte, srcpos.Pos, bool) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, 0, false
	}
	return b, s.positions.Step(b), true
}

func utf8Extra(b0 byte) int {
	switch {
	case b0&0x80 == 0:
		return 0
	case b0&0xE0 == 0xC0:
		return 1
	case b0&0xF0 == 0xE0:
		return 2
	case b0&0xF8 == 0xF0:
		return 3
	default:
		return 0
	}
}

// readRune returns the next logical rune, either from the pushback stack or
// freshly decoded from the byte stream.
func (s *Scanner) readRune() (rune, srcpos.Pos, bool) {
	if n := len(s.pending); n > 0 {
		p := s.pending[n-1]
		s.pending = s.pending[:n-1]
		return p.r, p.pos, true
	}
	b0, pos, ok := s.readByte()
	if !ok {
		return 0, 0, false
	}
	if b0 < utf8.RuneSelf {
		return rune(b0), pos, true
	}
	extra := utf8Extra(b0)
	buf := make([]byte, 1, extra+1)
	buf[0] = b0
	for i := 0; i < extra; i++ {
		b, _, ok := s.readByte()
		if !ok {
			break
		}
		buf = append(buf, b)
	}
	r, _ := utf8.DecodeRune(buf)
	return r, pos, true
}

// ungetch pushes back a rune for a later readRune to return first. The
// number-literal grammar needs at least two levels of pushback (the '.'
// ambiguity between a decimal point and a range operator); the buffer
// itself grows as needed rather than enforcing that as a hard cap.
func (s *Scanner) ungetch(r rune, pos srcpos.Pos) {
	s.pending = append(s.pending, pendingRune{r: r, pos: pos})
}

func (s *Scanner) emit(r rune) { s.source.WriteRune(r) }

// Read returns the next token. Lexical errors never abort scanning: Read
// reports them through the errsink.Sink supplied to New and continues with
// the following call. An unindent to an unknown column, a number with no
// digits and an unexpected character make that one token ERROR; mixed
// indentation, an unsupported base, a doubled underscore and a malformed
// text or character literal are reported while the token itself is
// returned as usual.
func (s *Scanner) Read() Token {
	tok := s.read()
	if s.opts.Trace {
		log.V(2).Infof("scanner: %s %q", tok, s.Spelling())
	}
	return tok
}

func (s *Scanner) read() Token {
	s.source.Reset()
	s.Value = nil
	s.HadSpaceAfter = false

	// Step 1: unindent / EOF drain. A dedent that closes more than one
	// nesting level needs one UNINDENT per level; indentDecision resolves
	// only the first of those (the rest have no new column to measure
	// against, so they drain here across subsequent Read calls). At true
	// EOF the whole remaining stack drains the same way, unconditionally,
	// since there is no further column to compare against at all.
	if s.eof {
		if !s.indents.Empty() {
			s.indents.Pop()
			return UNINDENT
		}
		return EOF
	}
	if s.dedenting {
		old := s.indents.Pop()
		s.indent = old
		switch {
		case s.indent == s.dedentTarget:
			s.dedenting = false
		case s.indent < s.dedentTarget:
			s.dedenting = false
			return s.errorf(s.dedentPos, "unindenting to the right of previous indentation")
		}
		return UNINDENT
	}

	for {
		r, pos, ok := s.readRune()
		if !ok {
			return s.atEOF()
		}
		switch {
		case r == '\n':
			wasBlank := s.checkingIndent
			s.column = 0
			s.checkingIndent = true
			s.indentChar = 0
			s.pendingSpace = true
			s.emit('\n')
			if wasBlank {
				// This line never had a non-space character before its own
				// terminator: it is blank, and blank lines always separate
				// with a plain NEWLINE, never an INDENT/UNINDENT, whatever
				// whitespace they happened to contain.
				s.needClosingNewline = false
				return NEWLINE
			}
			continue
		case r == ' ' || r == '\t':
			s.pendingSpace = true
			if s.checkingIndent {
				if s.indentChar == 0 {
					s.indentChar = byte(r)
				} else if byte(r) != s.indentChar {
					s.errs.Error(pos, "mixed tabs and spaces in indentation")
				}
				s.column++
			}
			continue
		default:
			if s.checkingIndent {
				s.checkingIndent = false
				s.ungetch(r, pos)
				return s.indentDecision(pos)
			}
			return s.finishContentToken(s.scanToken(r, pos))
		}
	}
}

// atEOF handles end of input reached while still inside the whitespace
// loop: either mid-line (no trailing newline was ever seen) or while
// measuring the indentation of a line that turns out not to exist.
func (s *Scanner) atEOF() Token {
	s.eof = true
	if s.needClosingNewline {
		s.needClosingNewline = false
		return NEWLINE
	}
	if !s.indents.Empty() {
		s.indents.Pop()
		return UNINDENT
	}
	return EOF
}

// indentDecision implements §4.6 step 3: compare the column measured since
// the last newline against the current indent and the top of the indent
// stack, and emit exactly one of NEWLINE, INDENT, UNINDENT or ERROR. The
// one exception is the first line of input held at the enclosing indent:
// it returns that line's first content token directly.
func (s *Scanner) indentDecision(pos srcpos.Pos) Token {
	column := s.column
	first := !s.contentResolved
	s.contentResolved = true
	switch {
	case s.settingIndent:
		// The previous token opened a parenthesis-like block: this line,
		// whatever its column, becomes the new reference indent for the
		// block's contents rather than being compared against the
		// enclosing indent.
		s.indents.Push(s.indent)
		s.indent = column
		s.settingIndent = false
		return NEWLINE
	case column > s.indent:
		s.indents.Push(s.indent)
		s.indent = column
		return INDENT
	case column < s.indent:
		// Fall back exactly one nesting level: the popped value is the
		// level that enclosed the one we're leaving, not necessarily the
		// line's own column. A dedent that skips past intermediate levels
		// needs one UNINDENT per level, the rest of which drain in
		// subsequent Read calls (see the dedenting field).
		old := s.indents.Pop()
		s.indent = old
		switch {
		case s.indent == column:
			return UNINDENT
		case s.indent < column:
			return s.errorf(pos, "unindenting to the right of previous indentation")
		default:
			s.dedenting = true
			s.dedentTarget = column
			s.dedentPos = pos
			return UNINDENT
		}
	default:
		if first {
			// No line has ever been resolved yet and this one holds at the
			// enclosing indent: there is nothing before it to separate from,
			// so fall straight through to its content instead of emitting a
			// spurious leading NEWLINE. r was already pushed back by the
			// caller, so readRune returns it immediately.
			r, rp, _ := s.readRune()
			return s.finishContentToken(s.scanToken(r, rp))
		}
		return NEWLINE
	}
}

// finishContentToken implements §4.6 step 10 ("Set had_space_after from the
// lookahead") for whatever content token scanToken just produced: it peeks
// one rune ahead and pushes it back, so the following Read call sees it
// again unchanged.
func (s *Scanner) finishContentToken(tok Token) Token {
	r, rp, ok := s.readRune()
	if !ok {
		s.HadSpaceAfter = false
		return tok
	}
	s.ungetch(r, rp)
	s.HadSpaceAfter = r == ' ' || r == '\t' || r == '\n'
	return tok
}

// scanToken dispatches on the first non-space character of a token, after
// the indent decision (if any) for its line has already been resolved.
func (s *Scanner) scanToken(r rune, pos srcpos.Pos) Token {
	s.HadSpaceBefore = s.pendingSpace
	s.pendingSpace = false
	s.needClosingNewline = true
	switch {
	case r == '$':
		return s.scanNumber(pos, true)
	case r >= '0' && r <= '9':
		s.ungetch(r, pos)
		return s.scanNumber(pos, false)
	case r == '"':
		return s.scanDelimited(pos, '"', TEXT)
	case r == '\'':
		return s.scanDelimited(pos, '\'', CHARACTER)
	case isNameStart(r):
		return s.scanName(r, pos)
	case isOperatorByte(r):
		return s.scanOperator(r, pos)
	default:
		return s.errorf(pos, "unexpected character %q", r)
	}
}
