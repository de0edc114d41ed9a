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
	"bytes"
	"testing"

	"github.com/salikh/xlscan/tree"
)

func TestBlobDataIsPrivateCopy(t *testing.T) {
	src := []byte("hello")
	b := NewBlob(0, src)
	src[0] = 'X'
	if got := string(b.Data()); got != "hello" {
		t.Errorf("NewBlob() aliased the caller's slice: Data() = %q, want %q", got, "hello")
	}
}

func TestBlobAppend(t *testing.T) {
	b := NewBlob(0, []byte("ab"))
	b.Append([]byte("cd"))
	if got := string(b.Data()); got != "abcd" {
		t.Errorf("Append() left Data() = %q, want %q", got, "abcd")
	}
	if got := b.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
}

func TestBlobRange(t *testing.T) {
	b := NewBlob(0, []byte("abcdef"))
	if err := b.Range(2, 3); err != nil {
		t.Fatalf("Range() returned error: %v", err)
	}
	if got := string(b.Data()); got != "cde" {
		t.Errorf("Range(2,3) left Data() = %q, want %q", got, "cde")
	}
}

func TestBlobRangeOutOfBounds(t *testing.T) {
	b := NewBlob(0, []byte("abc"))
	if err := b.Range(2, 5); err == nil {
		t.Errorf("Range() past the end returned nil error, want one")
	}
}

func TestBlobCompare(t *testing.T) {
	a := NewBlob(0, []byte("abc"))
	b := NewBlob(0, []byte("abd"))
	if Compare(a, a) != 0 {
		t.Errorf("Compare(a, a) != 0")
	}
	if Compare(a, b) >= 0 {
		t.Errorf("Compare(a, b) = %d, want < 0", Compare(a, b))
	}
}

func TestBlobCloneIsIndependent(t *testing.T) {
	b := NewBlob(0, []byte("abc"))
	c := tree.Clone(b).(*Blob)
	c.Append([]byte("def"))
	if string(b.Data()) != "abc" {
		t.Errorf("cloning and mutating the clone changed the original: %q", b.Data())
	}
	if string(c.Data()) != "abcdef" {
		t.Errorf("clone Data() = %q, want %q", c.Data(), "abcdef")
	}
}

func TestBlobArityChildrenRender(t *testing.T) {
	b := NewBlob(0, []byte("abcde"))
	if got := tree.Arity(b); got != 0 {
		t.Errorf("Arity() = %d, want 0", got)
	}
	if got := len(tree.Children(b)); got != 0 {
		t.Errorf("len(Children()) = %d, want 0", got)
	}
	var buf bytes.Buffer
	if err := tree.Render(b, &buf); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if got := buf.String(); got != "abcde" {
		t.Errorf("Render() wrote %q, want %q", got, "abcde")
	}
}

func TestBlobCastOwnKindOnly(t *testing.T) {
	b := NewBlob(0, []byte("x"))
	if tree.Cast(b, "blob") == nil {
		t.Errorf("Cast(blob, \"blob\") = nil, want non-nil")
	}
	if tree.Cast(b, "name") != nil {
		t.Errorf("Cast(blob, \"name\") = non-nil, want nil")
	}
}
