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

// Package syntax is the scanner's external collaborator (§4.7): it answers
// whether a punctuation run may keep extending as one operator, and
// whether a name opens a block, and if so what name closes it. The
// syntax-description loader that would normally author one of these
// tables from a full language grammar is out of scope; this package only
// ships the two implementations needed to drive the scanner without it.
package syntax

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/salikh/xlscan/blob"
)

// Table is the interface the scanner consumes.
type Table interface {
	// IsOperator reports whether spelling may be extended as an operator
	// token.
	IsOperator(spelling string) bool
	// IsBlock reports whether name opens a block, and if so which name
	// closes it.
	IsBlock(name string) (closing string, ok bool)
}

// Discovery is the zero-value table: it puts the scanner in discovery
// mode, where any punctuation run is a single operator and no name opens
// a block.
type Discovery struct{}

// IsOperator always reports true in discovery mode.
func (Discovery) IsOperator(string) bool { return true }

// IsBlock always reports false in discovery mode.
func (Discovery) IsBlock(string) (string, bool) { return "", false }

// StaticTable is a fixed operator/block table, typically loaded once from
// a YAML description at start-up.
type StaticTable struct {
	Operators []string          `yaml:"operators"`
	Blocks    map[string]string `yaml:"blocks"`

	opByPrefix map[string]bool
	blocks     map[string]string
}

// LoadTable decodes a StaticTable from YAML of the form:
//
//	operators: ["+", "-", "->", "::"]
//	blocks: {"(": ")", "[": "]", "{": "}"}
func LoadTable(r io.Reader) (*StaticTable, error) {
	var t StaticTable
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("syntax: decoding table: %w", err)
	}
	t.index()
	return &t, nil
}

// NewStaticTable builds a table directly from Go values, for tests and for
// callers that don't need the YAML front end.
func NewStaticTable(operators []string, blocks map[string]string) *StaticTable {
	t := &StaticTable{Operators: operators, Blocks: blocks}
	t.index()
	return t
}

func (t *StaticTable) index() {
	t.opByPrefix = make(map[string]bool, len(t.Operators)*2)
	for _, op := range t.Operators {
		for i := 1; i <= len(op); i++ {
			t.opByPrefix[op[:i]] = true
		}
	}
	t.blocks = make(map[string]string, len(t.Blocks))
	for k, v := range t.Blocks {
		t.blocks[blob.Normalize(k)] = v
	}
}

// IsOperator reports whether spelling is itself a known operator or a
// proper prefix of one, so the scanner's greedy extension loop (§4.6 step
// 9) knows whether to keep consuming punctuation bytes.
func (t *StaticTable) IsOperator(spelling string) bool {
	return t.opByPrefix[spelling]
}

// IsBlock reports whether name (already normalized by the caller) opens a
// block, matched case- and underscore-insensitively like every other name
// comparison in this module.
func (t *StaticTable) IsBlock(name string) (string, bool) {
	closing, ok := t.blocks[blob.Normalize(name)]
	return closing, ok
}

var _ Table = Discovery{}
var _ Table = (*StaticTable)(nil)
