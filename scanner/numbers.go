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
	"math"

	"github.com/salikh/xlscan/blob"
	"github.com/salikh/xlscan/literal"
	"github.com/salikh/xlscan/srcpos"
)

// digitValue reports the numeric value of r as a digit of base, or false
// if r is not a valid digit of that base. Bases up to 36 use the usual
// 0-9a-z alphabet; base 64 switches to the standard base-64 alphabet
// (A-Za-z0-9+/), matching the blob literal grammar's widest packing mode.
func digitValue(r rune, base int) (int, bool) {
	if base == 64 {
		switch {
		case r >= 'A' && r <= 'Z':
			return int(r - 'A'), true
		case r >= 'a' && r <= 'z':
			return int(r-'a') + 26, true
		case r >= '0' && r <= '9':
			return int(r-'0') + 52, true
		case r == '+':
			return 62, true
		case r == '/':
			return 63, true
		default:
			return 0, false
		}
	}
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case r >= 'a' && r <= 'z':
		v = int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		v = int(r-'A') + 10
	default:
		return 0, false
	}
	if v >= base {
		return 0, false
	}
	return v, true
}

// blobParams returns the digit-bit-width and flush-group-bit-width a blob
// literal's bit packer uses for base (§4.6 step 6): bases 2, 4 and 16 flush
// one byte at a time, bases 8 and 64 flush three bytes at a time so a
// whole number of their 3- or 6-bit digits ends on a byte boundary, and any other
// base falls back to 8-bit packing (ok is false, signalling the caller to
// report a bad-blob-base error).
func blobParams(base int) (digBits, groupBits int, ok bool) {
	switch base {
	case 2:
		return 1, 8, true
	case 16:
		return 4, 8, true
	case 4:
		return 2, 8, true
	case 8:
		return 3, 24, true
	case 64:
		return 6, 24, true
	default:
		return 8, 8, false
	}
}

// bitPacker accumulates digit values MSB-first and flushes whole
// groupBits-sized chunks as bytes, big-endian.
type bitPacker struct {
	digBits, groupBits int
	buf                uint32
	count              int
	out                []byte
}

func newBitPacker(digBits, groupBits int) *bitPacker {
	return &bitPacker{digBits: digBits, groupBits: groupBits}
}

func (p *bitPacker) push(v int) {
	p.buf = p.buf<<uint(p.digBits) | uint32(v)
	p.count += p.digBits
	for p.count >= p.groupBits {
		shift := p.count - p.groupBits
		chunk := (p.buf >> uint(shift)) & ((1 << uint(p.groupBits)) - 1)
		nbytes := p.groupBits / 8
		for i := nbytes - 1; i >= 0; i-- {
			p.out = append(p.out, byte(chunk>>uint(8*i)))
		}
		p.count = shift
		p.buf &= (1 << uint(p.count)) - 1
	}
}

// flush left-shifts any partial trailing group to fill groupBits and emits
// it, per §4.6 step 6's "any remaining partial chunk is left-shifted to
// fill the flush width and emitted" rule.
func (p *bitPacker) flush() {
	if p.count == 0 {
		return
	}
	chunk := p.buf << uint(p.groupBits-p.count)
	nbytes := p.groupBits / 8
	for i := nbytes - 1; i >= 0; i-- {
		p.out = append(p.out, byte(chunk>>uint(8*i)))
	}
	p.count = 0
	p.buf = 0
}

// scanNumber implements §4.6 step 6: an integer, real or blob literal. If
// isBlob, the leading '$' has already been consumed by the caller and is
// emitted here; otherwise the first digit is still unread (the caller
// pushed it back).
//
// The leading digit run is always attempted in base 10 first, even in
// blob mode: an explicit "NN#" base prefix is conventionally decimal
// regardless of blob mode, and whether the run is actually a base prefix
// is only known once the following character is seen. If no '#' follows,
// a blob literal falls back to its default base 16; the digits already
// consumed (necessarily plain 0-9, a subset of the hex alphabet, since a
// base-10 scan stops at the first non-decimal rune) are replayed as
// base-16 digit values into the packer before scanning continues.
func (s *Scanner) scanNumber(pos srcpos.Pos, isBlob bool) Token {
	if isBlob {
		s.emit('$')
	}
	natural, values, sawDigit := s.scanDigitRun(10, nil)

	base := 10
	if isBlob {
		base = 16
	}
	var packer *bitPacker

	// Explicit base redefinition: NN#digits...
	redefined := false
	if r, rp, ok := s.readRune(); ok {
		if sawDigit && r == '#' {
			s.emit('#')
			redefined = true
			newBase := int(natural)
			if newBase < 2 || newBase > 36 {
				if newBase != 64 {
					s.errs.Error(rp, "unsupported base %d, using 36", newBase)
					newBase = 36
				}
			}
			base = newBase
			if isBlob {
				digBits, groupBits, baseOK := blobParams(base)
				if !baseOK {
					s.errs.Error(rp, "unsupported blob base %d, packing as 8-bit", base)
					digBits, groupBits = 8, 8
				}
				packer = newBitPacker(digBits, groupBits)
			}
			natural, _, sawDigit = s.scanDigitRun(base, packer)
			if !sawDigit {
				return s.errorf(rp, "expected a digit after base prefix")
			}
		} else {
			s.ungetch(r, rp)
		}
	}

	if !redefined && isBlob {
		digBits, groupBits, _ := blobParams(16)
		packer = newBitPacker(digBits, groupBits)
		for _, v := range values {
			packer.push(v)
		}
		_, _, sawMore := s.scanDigitRun(16, packer)
		sawDigit = sawDigit || sawMore
	}
	if !sawDigit {
		return s.errorf(pos, "expected a digit")
	}

	real := float64(natural)
	isReal := false

	// Optional fractional part. A '.' not followed by a digit is not a
	// decimal point (e.g. the ".." of a range operator), so it and the
	// character after it are both pushed back.
	if r, rp, ok := s.readRune(); ok {
		if r == '.' {
			if r2, rp2, ok2 := s.readRune(); ok2 {
				if v, dok := digitValue(r2, base); dok {
					isReal = true
					s.emit('.')
					s.emit(r2)
					frac := float64(v)
					scale := float64(base)
					for {
						r3, rp3, ok3 := s.readRune()
						if !ok3 {
							break
						}
						if r3 == '_' {
							s.emit(r3)
							continue
						}
						v3, dok3 := digitValue(r3, base)
						if !dok3 {
							s.ungetch(r3, rp3)
							break
						}
						s.emit(r3)
						frac += float64(v3) / scale
						scale *= float64(base)
					}
					real += frac / float64(base)
				} else {
					s.ungetch(r2, rp2)
					s.ungetch(r, rp)
				}
			} else {
				s.ungetch(r, rp)
			}
		} else {
			s.ungetch(r, rp)
		}
	}

	// Optional terminator '#' closing a based literal before an exponent.
	if r, rp, ok := s.readRune(); ok {
		if r == '#' && !isBlob {
			s.emit('#')
		} else {
			s.ungetch(r, rp)
		}
	}

	// Optional exponent.
	if r, rp, ok := s.readRune(); ok {
		if r == 'e' || r == 'E' {
			if exp, expOK := s.scanExponent(r, rp); expOK {
				isReal = true
				real *= math.Pow(float64(base), float64(exp))
			}
		} else {
			s.ungetch(r, rp)
		}
	}

	if isBlob {
		s.skipBlobPadding()
		packer.flush()
		return s.finishBlob(pos, packer.out)
	}
	if isReal {
		s.Value = literal.NewReal(pos, real)
		return REAL
	}
	s.Value = literal.NewNatural(pos, natural)
	return INTEGER
}

// scanDigitRun consumes a maximal run of digits of base and interleaved
// single underscores, feeding each digit into packer if non-nil. Besides
// the accumulated natural value it also returns the individual digit
// values in order, so a caller that guessed the wrong base (see
// scanNumber's handling of blob literals) can replay them against a
// different base without re-reading the input. It reports whether at
// least one digit was seen.
func (s *Scanner) scanDigitRun(base int, packer *bitPacker) (uint64, []int, bool) {
	var natural uint64
	var values []int
	var sawDigit, prevUnderscore bool
	for {
		r, pos, ok := s.readRune()
		if !ok {
			break
		}
		if r == '_' {
			if prevUnderscore {
				s.errs.Error(pos, "doubled underscore in numeric literal")
			}
			prevUnderscore = true
			s.emit(r)
			continue
		}
		v, dok := digitValue(r, base)
		if !dok {
			s.ungetch(r, pos)
			break
		}
		prevUnderscore = false
		sawDigit = true
		s.emit(r)
		natural = natural*uint64(base) + uint64(v)
		values = append(values, v)
		if packer != nil {
			packer.push(v)
		}
	}
	return natural, values, sawDigit
}

func (s *Scanner) scanExponent(marker rune, markerPos srcpos.Pos) (int, bool) {
	sign := 1
	consumed := []rune{marker}
	positions := []srcpos.Pos{markerPos}
	r, pos, ok := s.readRune()
	if ok && (r == '+' || r == '-') {
		if r == '-' {
			sign = -1
		}
		consumed = append(consumed, r)
		positions = append(positions, pos)
	} else if ok {
		s.ungetch(r, pos)
	}
	exp, _, sawDigit := s.scanDigitRun(10, nil)
	if !sawDigit {
		// Not an exponent after all: push everything back in reverse.
		for i := len(consumed) - 1; i >= 0; i-- {
			s.ungetch(consumed[i], positions[i])
		}
		return 0, false
	}
	for _, r := range consumed {
		s.emit(r)
	}
	return sign * int(exp), true
}

func (s *Scanner) skipBlobPadding() {
	for {
		r, pos, ok := s.readRune()
		if !ok {
			return
		}
		if r == '=' {
			s.emit(r)
			continue
		}
		if r == '$' {
			s.emit(r)
			return
		}
		s.ungetch(r, pos)
		return
	}
}

func (s *Scanner) finishBlob(pos srcpos.Pos, data []byte) Token {
	s.Value = blob.NewBlob(pos, data)
	return BLOB
}
