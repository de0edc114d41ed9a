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

// Infix is a three-child node: an operator spelling plus its left and
// right operands.
type Infix struct {
	tree.Node
	Opcode      *blob.Text
	Left, Right tree.Tree
}

// NewInfix allocates an infix node. opcode must be non-empty.
func NewInfix(pos srcpos.Pos, opcode *blob.Text, left, right tree.Tree) *Infix {
	n := &Infix{}
	n.Node.Init(n, "infix", infixDispatch)
	if _, err := n.Dispatch(tree.Initialize, pos, opcode, left, right); err != nil {
		log.Exitf("infix: initialize: %v", err)
	}
	return n
}

func infixDispatch(self tree.Tree, verb tree.Verb, args ...any) (any, error) {
	n := self.(*Infix)
	switch verb {
	case tree.Initialize:
		n.Pos = args[0].(srcpos.Pos)
		opcode := args[1].(*blob.Text)
		left, right := args[2].(tree.Tree), args[3].(tree.Tree)
		if opcode == nil || opcode.Len() == 0 {
			return nil, fmt.Errorf("infix: opcode must be non-empty")
		}
		if left == nil || right == nil {
			return nil, fmt.Errorf("infix: both operands must be non-nil")
		}
		n.Opcode = tree.Use(opcode).(*blob.Text)
		n.Left, n.Right = tree.Use(left), tree.Use(right)
		n.MarkLive()
		return self, nil
	case tree.Size:
		return uint64(3), nil
	case tree.Arity:
		return uint32(3), nil
	case tree.Children:
		return []tree.Tree{n.Opcode, n.Left, n.Right}, nil
	case tree.Cast:
		if args[0].(string) == "infix" {
			return self, nil
		}
		return tree.Base(self, verb, args...)
	case tree.Clone:
		return NewInfix(n.Pos, tree.Clone(n.Opcode).(*blob.Text), tree.Clone(n.Left), tree.Clone(n.Right)), nil
	default:
		return tree.Base(self, verb, args...)
	}
}
