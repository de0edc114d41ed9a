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

// Typed is the typed-blob generator described by the data model: a
// parallel API over arbitrary fixed-size element types, giving stack
// semantics (Push/Top/Pop) over a plain slice. The scanner uses
// Typed[uint32] for its indent-column stack; the error sink uses
// Typed[Text-like] vectors for saved error batches.
type Typed[T any] struct {
	data []T
}

// NewTyped returns an empty typed blob.
func NewTyped[T any]() *Typed[T] {
	return &Typed[T]{}
}

// Push appends v to the top of the stack.
func (t *Typed[T]) Push(v T) {
	t.data = append(t.data, v)
}

// Top returns the most recently pushed element without removing it.
func (t *Typed[T]) Top() T {
	return t.data[len(t.data)-1]
}

// Pop removes and returns the most recently pushed element.
func (t *Typed[T]) Pop() T {
	n := len(t.data) - 1
	v := t.data[n]
	t.data = t.data[:n]
	return v
}

// Len returns the number of elements currently on the stack.
func (t *Typed[T]) Len() int {
	return len(t.data)
}

// Empty reports whether the stack has no elements.
func (t *Typed[T]) Empty() bool {
	return len(t.data) == 0
}

// Slice returns the current elements bottom-to-top. The caller must not
// mutate the returned slice.
func (t *Typed[T]) Slice() []T {
	return t.data
}

// Append extends the typed blob with additional elements, mirroring the
// byte-level Blob.Append for arbitrary element types.
func (t *Typed[T]) Append(vs ...T) {
	t.data = append(t.data, vs...)
}

// Reset empties the typed blob without discarding its backing array.
func (t *Typed[T]) Reset() {
	t.data = t.data[:0]
}
