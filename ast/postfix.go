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

	"github.com/salikh/xlscan/srcpos"
	"github.com/salikh/xlscan/tree"
)

// Postfix is a two-child node for a postfix operator application (e.g. x!).
type Postfix struct {
	tree.Node
	Left, Right tree.Tree
}

// NewPostfix allocates a postfix node. Both children must be non-nil.
func NewPostfix(pos srcpos.Pos, left, right tree.Tree) *Postfix {
	n := &Postfix{}
	n.Node.Init(n, "postfix", postfixDispatch)
	if _, err := n.Dispatch(tree.Initialize, pos, left, right); err != nil {
		log.Exitf("postfix: initialize: %v", err)
	}
	return n
}

func postfixDispatch(self tree.Tree, verb tree.Verb, args ...any) (any, error) {
	n := self.(*Postfix)
	switch verb {
	case tree.Initialize:
		n.Pos = args[0].(srcpos.Pos)
		left, right := args[1].(tree.Tree), args[2].(tree.Tree)
		if left == nil || right == nil {
			return nil, fmt.Errorf("postfix: both children must be non-nil")
		}
		n.Left, n.Right = tree.Use(left), tree.Use(right)
		n.MarkLive()
		return self, nil
	case tree.Size:
		return uint64(2), nil
	case tree.Arity:
		return uint32(2), nil
	case tree.Children:
		return []tree.Tree{n.Left, n.Right}, nil
	case tree.Cast:
		if args[0].(string) == "postfix" {
			return self, nil
		}
		return tree.Base(self, verb, args...)
	case tree.Clone:
		return NewPostfix(n.Pos, tree.Clone(n.Left), tree.Clone(n.Right)), nil
	default:
		return tree.Base(self, verb, args...)
	}
}
