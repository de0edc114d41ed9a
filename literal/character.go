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
	"unicode/utf8"

	log "github.com/golang/glog"

	"github.com/salikh/xlscan/srcpos"
	"github.com/salikh/xlscan/tree"
)

// Character is a single Unicode scalar value leaf.
type Character struct {
	tree.Node
	Value rune
}

// NewCharacter allocates a character leaf. value must be a valid Unicode
// scalar value (not a surrogate half); a violation is a scanner bug.
func NewCharacter(pos srcpos.Pos, value rune) *Character {
	if !utf8.ValidRune(value) {
		log.Exitf("character: invalid Unicode scalar value %U", value)
	}
	c := &Character{}
	c.Node.Init(c, "character", characterDispatch)
	if _, err := c.Dispatch(tree.Initialize, pos, value); err != nil {
		log.Exitf("character: initialize: %v", err)
	}
	return c
}

func characterDispatch(self tree.Tree, verb tree.Verb, args ...any) (any, error) {
	c := self.(*Character)
	switch verb {
	case tree.Initialize:
		c.Pos = args[0].(srcpos.Pos)
		c.Value = args[1].(rune)
		c.MarkLive()
		return self, nil
	case tree.Size:
		return uint64(4), nil
	case tree.Arity:
		return uint32(0), nil
	case tree.Children:
		return []tree.Tree(nil), nil
	case tree.Cast:
		if args[0].(string) == "character" {
			return self, nil
		}
		return tree.Base(self, verb, args...)
	case tree.Clone:
		return NewCharacter(c.Pos, c.Value), nil
	case tree.Render:
		w := args[0].(io.Writer)
		_, err := io.WriteString(w, string(c.Value))
		return nil, err
	default:
		return tree.Base(self, verb, args...)
	}
}

func (c *Character) String() string {
	return fmt.Sprintf("%q", c.Value)
}
