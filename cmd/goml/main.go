/*
File    : goml/cmd/goml/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/akashmaji946/goml/parser"
	"github.com/akashmaji946/goml/repl"
	"github.com/fatih/color"
)

const (
	VERSION = "v1.0.0"
	AUTHOR  = "Akash Maji <akashmaji(@iisc.ac.in)>"
	LICENSE = "MIT"
	PROMPT  = "gml >>> "
	LINE    = "----------------------------------------"
	BANNER  = `  ____ __  __ _
 / ___|  \/  | |
| |  _| |\/| | |
| |_| | |  | | |___
 \____|_|  |_|_____|  GML parser`
)

var redColor = color.New(color.FgRed)

func usage() {
	fmt.Println("goml - GML tokenizer/parser front end")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  goml <file.gml>     parse a file and print its AST")
	fmt.Println("  goml -              parse stdin and print its AST")
	fmt.Println("  goml --repl         start the interactive parser REPL")
	fmt.Println("  goml --version, -v  print version information")
	fmt.Println("  goml --help, -h     print this message")
}

func main() {
	args := os.Args[1:]

	if len(args) == 0 {
		r := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT)
		r.Start(os.Stdout)
		return
	}

	switch args[0] {
	case "--help", "-h":
		usage()
		return
	case "--version", "-v":
		fmt.Println("goml " + VERSION)
		return
	case "--repl":
		r := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT)
		r.Start(os.Stdout)
		return
	}

	source, err := readSource(args[0])
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	ast, err := parser.Parse(source)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	for _, expr := range ast.Expressions() {
		fmt.Println(expr.String())
	}
}

func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
