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
	log "github.com/golang/glog"

	"github.com/salikh/xlscan/srcpos"
	"github.com/salikh/xlscan/tree"
)

// Text is a blob holding arbitrary bytes, typically the bytes of a `"..."`
// literal or an error-sink message.
type Text struct {
	Blob
}

// NewText allocates a text node wrapping a private copy of s.
func NewText(pos srcpos.Pos, s string) *Text {
	t := &Text{}
	t.Node.Init(t, "text", textDispatch)
	if _, err := t.Dispatch(tree.Initialize, pos, []byte(s)); err != nil {
		log.Exitf("text: initialize: %v", err)
	}
	return t
}

// String returns the text's bytes as a Go string.
func (t *Text) String() string { return string(t.data) }

func textDispatch(self tree.Tree, verb tree.Verb, args ...any) (any, error) {
	t := self.(*Text)
	switch verb {
	case tree.Initialize:
		t.Pos = args[0].(srcpos.Pos)
		t.data = append([]byte(nil), args[1].([]byte)...)
		t.MarkLive()
		return self, nil
	case tree.Clone:
		return NewText(t.Pos, t.String()), nil
	case tree.Cast:
		if args[0].(string) == "text" {
			return self, nil
		}
		return commonDispatch(self, t, tree.Cast, args...)
	default:
		return commonDispatch(self, t, verb, args...)
	}
}
