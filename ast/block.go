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

// Block is a three-child node: the enclosed child plus the opening and
// closing names that bracket it (e.g. "(" ... ")", or an indentation
// block whose opening/closing are the synthetic INDENT/UNINDENT markers).
type Block struct {
	tree.Node
	Child            tree.Tree
	Opening, Closing *blob.Name
}

// NewBlock allocates a block node. opening and closing must both be Name
// nodes.
func NewBlock(pos srcpos.Pos, child tree.Tree, opening, closing *blob.Name) *Block {
	n := &Block{}
	n.Node.Init(n, "block", blockDispatch)
	if _, err := n.Dispatch(tree.Initialize, pos, child, opening, closing); err != nil {
		log.Exitf("block: initialize: %v", err)
	}
	return n
}

func blockDispatch(self tree.Tree, verb tree.Verb, args ...any) (any, error) {
	n := self.(*Block)
	switch verb {
	case tree.Initialize:
		n.Pos = args[0].(srcpos.Pos)
		child := args[1].(tree.Tree)
		opening, closing := args[2].(*blob.Name), args[3].(*blob.Name)
		if child == nil {
			return nil, fmt.Errorf("block: child must be non-nil")
		}
		if opening == nil || closing == nil {
			return nil, fmt.Errorf("block: opening and closing must be names")
		}
		n.Child = tree.Use(child)
		n.Opening = tree.Use(opening).(*blob.Name)
		n.Closing = tree.Use(closing).(*blob.Name)
		n.MarkLive()
		return self, nil
	case tree.Size:
		return uint64(3), nil
	case tree.Arity:
		return uint32(3), nil
	case tree.Children:
		return []tree.Tree{n.Child, n.Opening, n.Closing}, nil
	case tree.Cast:
		if args[0].(string) == "block" {
			return self, nil
		}
		return tree.Base(self, verb, args...)
	case tree.Clone:
		return NewBlock(n.Pos, tree.Clone(n.Child), tree.Clone(n.Opening).(*blob.Name), tree.Clone(n.Closing).(*blob.Name)), nil
	default:
		return tree.Base(self, verb, args...)
	}
}
