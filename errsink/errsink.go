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

// Package errsink implements the error collector the scanner reports
// through (§4.4): Error either displays a message immediately or, while a
// buffer is active, accumulates it as a text node tagged with its source
// position. Save/Commit/Clear let a speculative caller try a rule, then
// either fold its errors into the enclosing buffer or discard them on
// backtrack.
package errsink

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"

	"github.com/salikh/xlscan/blob"
	"github.com/salikh/xlscan/srcpos"
)

// Buffer is one level of the hierarchical error-buffer stack: a vector of
// text nodes, each carrying its own srcpos.
type Buffer = blob.Typed[*blob.Text]

// Sink is the process-wide error collector. A Sink is not safe for
// concurrent use, matching the single-threaded cooperative model the rest
// of this module assumes; callers needing isolated error state construct
// their own Sink rather than relying on package-level globals.
type Sink struct {
	Positions *srcpos.Registry
	Out       io.Writer

	current *Buffer
}

// New creates an error sink that resolves positions against positions and
// writes displayed errors to out.
func New(positions *srcpos.Registry, out io.Writer) *Sink {
	return &Sink{Positions: positions, Out: out}
}

// Error formats a message tagged with pos. If a buffer is active (see
// Save) the message is pushed onto it; otherwise it is displayed
// immediately.
func (s *Sink) Error(pos srcpos.Pos, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	t := blob.NewText(pos, msg)
	if s.current != nil {
		s.current.Push(t)
		return
	}
	s.display(t)
}

// Save installs a fresh, empty buffer as current and returns the previous
// one (nil if errors were being displayed immediately). Pair every Save
// with exactly one Commit or Clear.
func (s *Sink) Save() *Buffer {
	prev := s.current
	s.current = blob.NewTyped[*blob.Text]()
	return prev
}

// Commit restores prev as current. If prev is non-nil the buffer accrued
// since the matching Save is appended to it. If prev is nil (there was no
// enclosing buffer) every accrued message is displayed immediately and
// Commit returns a combined error built with multierr, or nil if nothing
// was recorded.
func (s *Sink) Commit(prev *Buffer) error {
	cur := s.current
	s.current = prev
	if cur == nil || cur.Empty() {
		return nil
	}
	if prev != nil {
		prev.Append(cur.Slice()...)
		return nil
	}
	var errs error
	for _, t := range cur.Slice() {
		s.display(t)
		errs = multierr.Append(errs, errors.New(t.String()))
	}
	return errs
}

// Clear restores prev as current and discards everything accrued since the
// matching Save.
func (s *Sink) Clear(prev *Buffer) {
	s.current = prev
}

func (s *Sink) display(t *blob.Text) {
	info, ok := s.Positions.Info(t.Pos)
	if !ok {
		fmt.Fprintln(s.Out, t.String())
		return
	}
	fmt.Fprintf(s.Out, "%s:%d: %s\n", info.File, info.Line, t.String())
	buf := make([]byte, info.LineLength)
	n, _ := s.Positions.Source(info, buf)
	fmt.Fprintln(s.Out, string(buf[:n]))
	fmt.Fprintln(s.Out, strings.Repeat(" ", info.Column)+"^")
}
