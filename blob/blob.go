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

// Package blob implements the variable-length byte container that Text and
// Name build on, plus a generic typed-blob generator used for small
// element vectors (indent columns, saved-error lists) elsewhere in this
// module.
package blob

import (
	"bytes"
	"fmt"
	"io"

	log "github.com/golang/glog"

	"github.com/salikh/xlscan/srcpos"
	"github.com/salikh/xlscan/tree"
)

// Blob is a variable-length byte sequence. Its length is authoritative:
// nothing beyond len(data) belongs to the blob even if the backing array
// has spare capacity.
type Blob struct {
	tree.Node
	data []byte
}

// Data returns the blob's current bytes. Kinds built on top of Blob (Text,
// Name) promote this method, which is how their handlers fall through to
// the shared blob behavior in dispatch below.
func (b *Blob) Data() []byte { return b.data }

// NewBlob allocates a blob that owns a private copy of data.
func NewBlob(pos srcpos.Pos, data []byte) *Blob {
	b := &Blob{}
	b.Node.Init(b, "blob", dispatch)
	if _, err := b.Dispatch(tree.Initialize, pos, data); err != nil {
		log.Exitf("blob: initialize: %v", err)
	}
	return b
}

func dispatch(self tree.Tree, verb tree.Verb, args ...any) (any, error) {
	b := self.(*Blob)
	switch verb {
	case tree.Initialize:
		b.Pos = args[0].(srcpos.Pos)
		b.data = append([]byte(nil), args[1].([]byte)...)
		b.MarkLive()
		return self, nil
	case tree.Clone:
		return NewBlob(b.Pos, b.data), nil
	default:
		return commonDispatch(self, b, verb, args...)
	}
}

// withData is implemented by Blob and, by promotion, by every kind built
// on top of it (Text, Name).
type withData interface {
	tree.Tree
	Data() []byte
}

// commonDispatch implements the verbs that are identical for every
// blob-shaped kind, then falls through to the base tree handler. Calling
// this from Text's and Name's own dispatch functions is what realizes
// "text falls through to blob, blob falls through to tree" in Go: each
// kind's handler either answers a verb itself or asks commonDispatch,
// which either answers it generically or asks tree.Base.
func commonDispatch(self tree.Tree, b withData, verb tree.Verb, args ...any) (any, error) {
	switch verb {
	case tree.Size:
		return uint64(len(b.Data())), nil
	case tree.Arity:
		return uint32(0), nil
	case tree.Children:
		return []tree.Tree(nil), nil
	case tree.Render:
		w := args[0].(io.Writer)
		_, err := w.Write(b.Data())
		return nil, err
	default:
		return tree.Base(self, verb, args...)
	}
}

// Append appends data to b, reallocating the backing array if needed. In
// the reference implementation blob_append_data takes a pointer-to-pointer
// so the caller's handle can be repointed at a new allocation; in Go that
// workaround is unnecessary because b's identity never moves, only its
// data slice is replaced underneath it.
func (b *Blob) Append(data []byte) {
	b.data = append(b.data, data...)
}

// Range narrows b in place to the byte sub-range [start, start+length).
func (b *Blob) Range(start, length int) error {
	if start < 0 || length < 0 || start+length > len(b.data) {
		return fmt.Errorf("blob: range [%d,%d) out of bounds for length %d", start, start+length, len(b.data))
	}
	b.data = append([]byte(nil), b.data[start:start+length]...)
	return nil
}

// Compare performs the lexicographic byte comparison the data model
// promises, returning <0, 0, >0 like bytes.Compare.
func Compare(a, b *Blob) int {
	return bytes.Compare(a.data, b.data)
}

// Len returns the authoritative byte length.
func (b *Blob) Len() int { return len(b.data) }
