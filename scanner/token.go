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

// Package scanner implements the single-pass lexical state machine: UTF-8
// aware name recognition, multi-base number and blob literals,
// indentation/dedentation token emission, and syntax-driven operator and
// block recognition.
package scanner

// Token identifies the lexical class of one Read result.
type Token int

const (
	EOF Token = iota
	NEWLINE
	INDENT
	UNINDENT
	INTEGER
	REAL
	CHARACTER
	TEXT
	BLOB
	NAME
	SYMBOL
	OPEN
	CLOSE
	ERROR
)

var tokenNames = [...]string{
	EOF:       "EOF",
	NEWLINE:   "NEWLINE",
	INDENT:    "INDENT",
	UNINDENT:  "UNINDENT",
	INTEGER:   "INTEGER",
	REAL:      "REAL",
	CHARACTER: "CHARACTER",
	TEXT:      "TEXT",
	BLOB:      "BLOB",
	NAME:      "NAME",
	SYMBOL:    "SYMBOL",
	OPEN:      "OPEN",
	CLOSE:     "CLOSE",
	ERROR:     "ERROR",
}

func (t Token) String() string {
	if int(t) < 0 || int(t) >= len(tokenNames) {
		return "TOKEN(?)"
	}
	return tokenNames[t]
}
