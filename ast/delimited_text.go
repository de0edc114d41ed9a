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

package ast

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/salikh/xlscan/blob"
	"github.com/salikh/xlscan/srcpos"
	"github.com/salikh/xlscan/tree"
)

// DelimitedText is a three-child node for text captured between a pair of
// named delimiters, e.g. the body of a long-text literal or a block
// comment returned by Scanner.Skip wrapped back into the tree.
type DelimitedText struct {
	tree.Node
	Value            *blob.Text
	Opening, Closing *blob.Name
}

// NewDelimitedText allocates a delimited-text node.
func NewDelimitedText(pos srcpos.Pos, value *blob.Text, opening, closing *blob.Name) *DelimitedText {
	n := &DelimitedText{}
	n.Node.Init(n, "delimited_text", delimitedTextDispatch)
	if _, err := n.Dispatch(tree.Initialize, pos, value, opening, closing); err != nil {
		log.Exitf("delimited_text: initialize: %v", err)
	}
	return n
}

func delimitedTextDispatch(self tree.Tree, verb tree.Verb, args ...any) (any, error) {
	n := self.(*DelimitedText)
	switch verb {
	case tree.Initialize:
		n.Pos = args[0].(srcpos.Pos)
		value := args[1].(*blob.Text)
		opening, closing := args[2].(*blob.Name), args[3].(*blob.Name)
		if value == nil {
			return nil, fmt.Errorf("delimited_text: value must be non-nil")
		}
		if opening == nil || closing == nil {
			return nil, fmt.Errorf("delimited_text: opening and closing must be names")
		}
		n.Value = tree.Use(value).(*blob.Text)
		n.Opening = tree.Use(opening).(*blob.Name)
		n.Closing = tree.Use(closing).(*blob.Name)
		n.MarkLive()
		return self, nil
	case tree.Size:
		return uint64(3), nil
	case tree.Arity:
		return uint32(3), nil
	case tree.Children:
		return []tree.Tree{n.Value, n.Opening, n.Closing}, nil
	case tree.Cast:
		if args[0].(string) == "delimited_text" {
			return self, nil
		}
		return tree.Base(self, verb, args...)
	case tree.Clone:
		return NewDelimitedText(n.Pos, tree.Clone(n.Value).(*blob.Text), tree.Clone(n.Opening).(*blob.Name), tree.Clone(n.Closing).(*blob.Name)), nil
	default:
		return tree.Base(self, verb, args...)
	}
}
