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

// Binary xlscan drives the scanner package over a file or stdin and prints
// one line per token, the thin exercising surface for the scanner, the
// position registry and the error sink end to end.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/golang/glog"
	"github.com/spf13/pflag"

	"github.com/salikh/xlscan/errsink"
	"github.com/salikh/xlscan/render"
	"github.com/salikh/xlscan/scanner"
	"github.com/salikh/xlscan/srcpos"
	"github.com/salikh/xlscan/syntax"
	"github.com/salikh/xlscan/tree"
)

var (
	verbose      = pflag.BoolP("verbose", "v", false, "Trace every token at glog verbosity 2.")
	syntaxFile   = pflag.StringP("syntax", "s", "", "Path to a YAML operator/block table. If empty, the scanner runs in discovery mode.")
	inputFile    = pflag.StringP("input", "i", "", "Path to the file to scan. If empty, read from stdin.")
	showSpelling = pflag.Bool("spelling", false, "Print the raw source spelling alongside each token's scanned value.")
)

func main() {
	pflag.Parse()
	if err := run(); err != nil {
		log.Exitf("xlscan: %v", err)
	}
}

func run() error {
	render.Install()

	var syn syntax.Table
	if *syntaxFile != "" {
		f, err := os.Open(*syntaxFile)
		if err != nil {
			return fmt.Errorf("opening syntax table %q: %w", *syntaxFile, err)
		}
		defer f.Close()
		table, err := syntax.LoadTable(f)
		if err != nil {
			return fmt.Errorf("loading syntax table %q: %w", *syntaxFile, err)
		}
		syn = table
	}

	name := *inputFile
	var r io.Reader = os.Stdin
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("opening %q: %w", name, err)
		}
		defer f.Close()
		r = f
	} else {
		name = "<stdin>"
	}

	positions := srcpos.New()
	positions.OpenSourceFile(name)
	errs := errsink.New(positions, os.Stderr)
	sc := scanner.New(r, positions, syn, errs, scanner.Options{Trace: *verbose})

	var exitErr error
	for {
		tok := sc.Read()
		printToken(os.Stdout, sc, tok)
		if tok == scanner.EOF {
			break
		}
		if tok == scanner.ERROR {
			exitErr = fmt.Errorf("scanning finished with at least one lexical error")
		}
	}
	return exitErr
}

func printToken(w io.Writer, sc *scanner.Scanner, tok scanner.Token) {
	var value string
	if sc.Value != nil {
		var b strings.Builder
		if err := tree.Render(sc.Value, &b); err != nil {
			value = fmt.Sprintf("<render error: %v>", err)
		} else {
			value = b.String()
		}
	}
	if *showSpelling {
		fmt.Fprintf(w, "%-9s %-20q %s\n", tok, sc.Spelling(), value)
		return
	}
	fmt.Fprintf(w, "%-9s %s\n", tok, value)
}
