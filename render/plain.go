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

// Package render provides the one concrete renderer this module ships:
// Plain reconstructs a plausible surface-syntax rendering of a structural
// node by rendering its children and interposing the node's own fixed
// punctuation. Literal and blob kinds never reach this code path; they
// implement RENDER themselves and only the structural kinds (prefix,
// postfix, infix, block, delimited_text) fall through to the base
// handler's delegation to whatever renderer tree.SetRenderer installed.
package render

import (
	"fmt"
	"io"

	"github.com/salikh/xlscan/ast"
	"github.com/salikh/xlscan/tree"
)

// Plain is the default renderer.
type Plain struct{}

// Install registers Plain as the process-wide renderer used by the base
// node handler's default RENDER behavior.
func Install() { tree.SetRenderer(Plain{}) }

// RenderNode implements tree.Renderer.
func (Plain) RenderNode(w io.Writer, t tree.Tree) error {
	switch n := t.(type) {
	case *ast.Prefix:
		if err := tree.Render(n.Left, w); err != nil {
			return err
		}
		return tree.Render(n.Right, w)
	case *ast.Postfix:
		if err := tree.Render(n.Left, w); err != nil {
			return err
		}
		return tree.Render(n.Right, w)
	case *ast.Infix:
		if err := tree.Render(n.Left, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := tree.Render(n.Opcode, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		return tree.Render(n.Right, w)
	case *ast.Block:
		if err := tree.Render(n.Opening, w); err != nil {
			return err
		}
		if err := tree.Render(n.Child, w); err != nil {
			return err
		}
		return tree.Render(n.Closing, w)
	case *ast.DelimitedText:
		if err := tree.Render(n.Opening, w); err != nil {
			return err
		}
		if err := tree.Render(n.Value, w); err != nil {
			return err
		}
		return tree.Render(n.Closing, w)
	default:
		return fmt.Errorf("render: no plain rendering for kind %q", tree.Typename(t))
	}
}
