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

// Package tree implements the polymorphic reference-counted node substrate
// shared by every literal and structural node kind. Per-kind behavior lives
// entirely in a per-kind Handler; the generic parts of the contract (COPY,
// the default DELETE, the default CLONE failure) live in the base handler
// that every kind falls through to when it doesn't recognize a verb.
package tree

import (
	"fmt"
	"io"

	log "github.com/golang/glog"

	"github.com/salikh/xlscan/srcpos"
)

// Handler is the per-kind command dispatcher. self is the concrete node the
// verb is being applied to; a handler that does not recognize verb should
// delegate to its parent kind's handler function rather than erroring.
type Handler func(self Tree, verb Verb, args ...any) (any, error)

// Tree is satisfied by every concrete node kind (Natural, Real, Character,
// Blob, Text, Name, Prefix, Postfix, Infix, Block, DelimitedText). It is
// the only type the scanner and the (out-of-scope) parser exchange.
type Tree interface {
	// Base returns the embedded Node, giving generic code (Use, Dispose,
	// Arity, Children, ...) access to the common fields.
	Base() *Node
	// Dispatch sends one command verb to this node's handler.
	Dispatch(verb Verb, args ...any) (any, error)
}

// Node is the common base every concrete kind embeds as its first field.
type Node struct {
	self    Tree
	handler Handler
	kind    string
	refs    int32
	Pos     srcpos.Pos
}

// Base implements Tree.
func (n *Node) Base() *Node { return n }

// Dispatch implements Tree by forwarding to the node's own handler.
func (n *Node) Dispatch(verb Verb, args ...any) (any, error) {
	if n.handler == nil {
		log.Exitf("tree: node of kind %q has no handler", n.kind)
	}
	return n.handler(n.self, verb, args...)
}

// Init installs the base fields of a freshly allocated node. Concrete
// constructors call Init once, supplying self (the outer struct embedding
// this Node) and the node's own dispatch function, then immediately
// dispatch INITIALIZE with the constructor arguments. Refcount starts at 0
// until INITIALIZE runs, matching the "allocate raw storage, then
// initialize" lifecycle from the data model.
func (n *Node) Init(self Tree, kind string, handler Handler) {
	n.self = self
	n.kind = kind
	n.handler = handler
	n.refs = 0
}

// Refs exposes the current refcount for tests and diagnostics.
func (n *Node) Refs() int32 { return n.refs }

// MarkLive sets the refcount to 1. Every kind's INITIALIZE handler calls
// this once construction succeeds, giving the constructor's caller the
// single owning reference the lifecycle model promises.
func (n *Node) MarkLive() { n.refs = 1 }

// Kind returns the node's static kind name.
func (n *Node) Kind() string { return n.kind }

// --- Generic package-level API (§4.1) ---

// Use bumps t's refcount and returns t, so that storing t into a new
// holder reads `holder = tree.Use(t)`.
func Use(t Tree) Tree {
	if t == nil {
		return nil
	}
	if _, err := t.Dispatch(Copy); err != nil {
		log.Exitf("tree: use: %v", err)
	}
	return t
}

// Dispose decrements the refcount of *t and nulls the holder. When the
// refcount reaches zero it dispatches DELETE first, so the node releases
// its owned children before becoming unreachable.
func Dispose(t *Tree) {
	if t == nil || *t == nil {
		return
	}
	n := (*t).Base()
	n.refs--
	if n.refs < 0 {
		log.Exitf("tree: refcount underflow disposing %s node", n.kind)
	}
	if n.refs == 0 {
		if _, err := (*t).Dispatch(Delete); err != nil {
			log.Errorf("tree: delete %s: %v", n.kind, err)
		}
	}
	*t = nil
}

// Typename returns the node's kind name, e.g. "natural" or "infix".
func Typename(t Tree) string {
	v, err := t.Dispatch(Typename)
	if err != nil {
		log.Exitf("tree: typename: %v", err)
	}
	return v.(string)
}

// Arity returns the node's fixed child count (0 for every literal kind).
func Arity(t Tree) uint32 {
	v, err := t.Dispatch(Arity)
	if err != nil {
		log.Exitf("tree: arity: %v", err)
	}
	return v.(uint32)
}

// Children returns the node's children in the same order Arity promises.
func Children(t Tree) []Tree {
	v, err := t.Dispatch(Children)
	if err != nil {
		log.Exitf("tree: children: %v", err)
	}
	if v == nil {
		return nil
	}
	return v.([]Tree)
}

// Clone produces a deep, independent copy of t.
func Clone(t Tree) Tree {
	v, err := t.Dispatch(Clone)
	if err != nil {
		log.Exitf("tree: clone: %v", err)
	}
	return v.(Tree)
}

// Renderer is the surrounding renderer collaborator: the base handler's
// default RENDER behavior delegates to it. Its output contract (what
// "rendering" a node means beyond reproducing bytes) is a collaborator of
// this module, not specified here; render.Plain is the one concrete
// implementation this module ships.
type Renderer interface {
	RenderNode(w io.Writer, t Tree) error
}

var activeRenderer Renderer

// SetRenderer installs the process-wide renderer consulted by the base
// handler's default RENDER behavior. Structural kinds (prefix, postfix,
// infix, block, delimited_text) rely on this default rather than
// implementing their own RENDER case.
func SetRenderer(r Renderer) { activeRenderer = r }

// Render writes t's rendered form to w.
func Render(t Tree, w io.Writer) error {
	_, err := t.Dispatch(Render, w)
	return err
}

// Cast returns t if its own kind is kind, or nil otherwise. The kinds a
// handler falls through to do not match: a text node does not cast to
// "blob".
func Cast(t Tree, kind string) Tree {
	v, err := t.Dispatch(Cast, kind)
	if err != nil {
		log.Exitf("tree: cast: %v", err)
	}
	if v == nil {
		return nil
	}
	return v.(Tree)
}

// --- Base handler: generic defaults every kind falls through to ---

// Base is the root handler every other kind's handler ultimately delegates
// to. It implements generic COPY (refcount bump), a default DELETE driven
// purely by ARITY/CHILDREN, TYPENAME, a default RENDER that delegates to the
// installed Renderer (failing if none is installed), and failure responses
// for verbs a leaf kind has no sensible default for (CLONE, FREEZE, THAW).
func Base(self Tree, verb Verb, args ...any) (any, error) {
	n := self.Base()
	switch verb {
	case Typename:
		return n.kind, nil
	case Copy:
		n.refs++
		return self, nil
	case Cast:
		target, _ := args[0].(string)
		if target == n.kind {
			return self, nil
		}
		return nil, nil
	case Delete:
		children := Children(self)
		for _, c := range children {
			if c == nil {
				continue
			}
			Dispose(&c)
		}
		return nil, nil
	case Clone:
		return nil, fmt.Errorf("tree: CLONE not implemented for kind %q", n.kind)
	case Render:
		if activeRenderer == nil {
			return nil, fmt.Errorf("tree: RENDER %q: no renderer installed, see tree.SetRenderer", n.kind)
		}
		w := args[0].(io.Writer)
		return nil, activeRenderer.RenderNode(w, self)
	case Freeze:
		return nil, fmt.Errorf("tree: FREEZE not implemented for kind %q", n.kind)
	case Thaw:
		return nil, fmt.Errorf("tree: THAW not implemented for kind %q", n.kind)
	case Size, Arity, Children, Initialize:
		return nil, fmt.Errorf("tree: kind %q did not implement required verb %s", n.kind, verb)
	default:
		return nil, fmt.Errorf("tree: unhandled verb %s for kind %q", verb, n.kind)
	}
}
