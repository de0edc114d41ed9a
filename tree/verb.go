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

package tree

// Verb identifies one command in the uniform contract every node handler
// honors. A handler that does not recognize a verb delegates to its parent
// kind's handler instead of erroring, so that e.g. Text falls through to
// Blob and Blob falls through to the base tree handler.
type Verb int

const (
	Typename Verb = iota
	Size
	Arity
	Children
	Cast
	Initialize
	Copy
	Clone
	Render
	Delete
	Freeze
	Thaw
)

var verbNames = [...]string{
	Typename:   "TYPENAME",
	Size:       "SIZE",
	Arity:      "ARITY",
	Children:   "CHILDREN",
	Cast:       "CAST",
	Initialize: "INITIALIZE",
	Copy:       "COPY",
	Clone:      "CLONE",
	Render:     "RENDER",
	Delete:     "DELETE",
	Freeze:     "FREEZE",
	Thaw:       "THAW",
}

func (v Verb) String() string {
	if int(v) < 0 || int(v) >= len(verbNames) {
		return "VERB(?)"
	}
	return verbNames[v]
}
