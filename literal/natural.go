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

// Package literal implements the three fixed-size numeric/character leaf
// kinds: Natural, Real and Character.
package literal

import (
	"fmt"
	"io"
	"strconv"

	log "github.com/golang/glog"

	"github.com/salikh/xlscan/srcpos"
	"github.com/salikh/xlscan/tree"
)

// Natural is an unsigned 64-bit integer leaf.
type Natural struct {
	tree.Node
	Value uint64
}

// NewNatural allocates a natural-number leaf.
func NewNatural(pos srcpos.Pos, value uint64) *Natural {
	n := &Natural{}
	n.Node.Init(n, "natural", naturalDispatch)
	if _, err := n.Dispatch(tree.Initialize, pos, value); err != nil {
		log.Exitf("natural: initialize: %v", err)
	}
	return n
}

func naturalDispatch(self tree.Tree, verb tree.Verb, args ...any) (any, error) {
	n := self.(*Natural)
	switch verb {
	case tree.Initialize:
		n.Pos = args[0].(srcpos.Pos)
		n.Value = args[1].(uint64)
		n.MarkLive()
		return self, nil
	case tree.Size:
		return uint64(8), nil
	case tree.Arity:
		return uint32(0), nil
	case tree.Children:
		return []tree.Tree(nil), nil
	case tree.Cast:
		if args[0].(string) == "natural" {
			return self, nil
		}
		return tree.Base(self, verb, args...)
	case tree.Clone:
		return NewNatural(n.Pos, n.Value), nil
	case tree.Render:
		w := args[0].(io.Writer)
		_, err := io.WriteString(w, strconv.FormatUint(n.Value, 10))
		return nil, err
	default:
		return tree.Base(self, verb, args...)
	}
}

func (n *Natural) String() string {
	return fmt.Sprintf("%d", n.Value)
}
