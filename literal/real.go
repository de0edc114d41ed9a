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

package literal

import (
	"fmt"
	"io"
	"strconv"

	log "github.com/golang/glog"

	"github.com/salikh/xlscan/srcpos"
	"github.com/salikh/xlscan/tree"
)

// Real is a 64-bit floating point leaf.
type Real struct {
	tree.Node
	Value float64
}

// NewReal allocates a floating-point leaf.
func NewReal(pos srcpos.Pos, value float64) *Real {
	r := &Real{}
	r.Node.Init(r, "real", realDispatch)
	if _, err := r.Dispatch(tree.Initialize, pos, value); err != nil {
		log.Exitf("real: initialize: %v", err)
	}
	return r
}

func realDispatch(self tree.Tree, verb tree.Verb, args ...any) (any, error) {
	r := self.(*Real)
	switch verb {
	case tree.Initialize:
		r.Pos = args[0].(srcpos.Pos)
		r.Value = args[1].(float64)
		r.MarkLive()
		return self, nil
	case tree.Size:
		return uint64(8), nil
	case tree.Arity:
		return uint32(0), nil
	case tree.Children:
		return []tree.Tree(nil), nil
	case tree.Cast:
		if args[0].(string) == "real" {
			return self, nil
		}
		return tree.Base(self, verb, args...)
	case tree.Clone:
		return NewReal(r.Pos, r.Value), nil
	case tree.Render:
		w := args[0].(io.Writer)
		_, err := io.WriteString(w, strconv.FormatFloat(r.Value, 'g', -1, 64))
		return nil, err
	default:
		return tree.Base(self, verb, args...)
	}
}

func (r *Real) String() string {
	return fmt.Sprintf("%g", r.Value)
}
