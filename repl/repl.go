/*
File    : goml/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package repl implements a Read-Parse-Print Loop for exploring the GML
parser interactively. Unlike an interpreter's REPL there is no Eval step:
what comes back from each line is the AST the parser built for it, not a
runtime value, matching the fact that this module implements no
evaluator at all.
*/
package repl

import (
	"io"
	"strings"

	"github.com/akashmaji946/goml/parser"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the static presentation details of an interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl constructs a Repl with the given banner and metadata.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "GML parser REPL - type a line of GML and see the AST it produces.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the main loop until the user exits or input ends.
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)

		r.parseAndPrint(writer, line)
	}
}

// parseAndPrint parses a single line and renders either its AST (one
// pretty-printed top-level expression per output line) or the parse
// error, colored by outcome. The recover guard matches go-mix's own
// REPL loop: nothing in the parser is expected to panic on malformed
// input today, but the loop should survive it rather than take the
// session down if that ever stops being true.
func (r *Repl) parseAndPrint(writer io.Writer, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[PARSER ERROR] %v\n", recovered)
		}
	}()

	ast, err := parser.Parse(line)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}
	if len(ast.Expressions()) == 0 {
		yellowColor.Fprintln(writer, "(no expression)")
		return
	}
	for _, expr := range ast.Expressions() {
		yellowColor.Fprintln(writer, expr.String())
	}
}
