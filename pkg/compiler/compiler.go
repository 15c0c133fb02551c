// Package compiler provides the front-end pipeline for streamlang scripts.
// It chains lexical analysis and parsing into a single call:
//
//	source text → Lexer → token stream → Parser → AST
//
// The resulting AST is consumed by pkg/interp. The pipeline stops at the
// first lexical or syntax error; no partial AST is ever returned.
package compiler

import (
	"github.com/zurustar/streamlang/pkg/compiler/ast"
	"github.com/zurustar/streamlang/pkg/compiler/lexer"
	"github.com/zurustar/streamlang/pkg/compiler/parser"
	"github.com/zurustar/streamlang/pkg/script"
)

// Compile parses UTF-8 source code into a Program AST.
func Compile(source string) (*ast.Program, error) {
	l := lexer.New(source)
	p := parser.New(l)
	return p.ParseProgram()
}

// CompileFile reads a script file (converting Shift-JIS input to UTF-8 when
// necessary) and compiles its content.
func CompileFile(path string) (*ast.Program, error) {
	src, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	return Compile(src)
}
