// Package ast defines the abstract syntax tree for streamlang programs.
// Nodes are built once by the parser and never mutated afterwards; each
// node is exclusively owned by its parent.
package ast

import (
	"bytes"

	"github.com/zurustar/streamlang/pkg/compiler/token"
)

type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// CommandKind identifies a media transport command.
type CommandKind string

const (
	CmdOpen    CommandKind = "open"
	CmdPlay    CommandKind = "play"
	CmdPause   CommandKind = "pause"
	CmdStop    CommandKind = "stop"
	CmdSeek    CommandKind = "seek"
	CmdForward CommandKind = "forward"
	CmdRewind  CommandKind = "rewind"
	CmdWait    CommandKind = "wait"
)

// QueryKind identifies a media state query.
type QueryKind string

const (
	QueryPosition  QueryKind = "position"
	QueryDuration  QueryKind = "duration"
	QueryEnded     QueryKind = "ended"
	QueryIsPlaying QueryKind = "is_playing"
)

// Program is the root node.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

// BlockStatement: { ... }
type BlockStatement struct {
	Token      token.Token // '{'
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range bs.Statements {
		out.WriteString(s.String())
	}
	out.WriteString(" }")
	return out.String()
}

// IfStatement: if (COND) STMT [else STMT]
// The else always belongs to the nearest unmatched if.
type IfStatement struct {
	Token       token.Token // token.IF
	Condition   Expression
	Consequence Statement
	Alternative Statement // nil when there is no else branch
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternative.String())
	}
	return out.String()
}

// WhileStatement: while (COND) STMT
type WhileStatement struct {
	Token     token.Token // token.WHILE
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	var out bytes.Buffer
	out.WriteString("while (")
	out.WriteString(ws.Condition.String())
	out.WriteString(") ")
	out.WriteString(ws.Body.String())
	return out.String()
}

// PrintStatement: print EXPR;
type PrintStatement struct {
	Token token.Token // token.PRINT
	Value Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PrintStatement) String() string {
	var out bytes.Buffer
	out.WriteString("print ")
	out.WriteString(ps.Value.String())
	out.WriteString(";")
	return out.String()
}

// AssignStatement: NAME = EXPR;
type AssignStatement struct {
	Token token.Token // the identifier token
	Name  *Identifier
	Value Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) String() string {
	var out bytes.Buffer
	out.WriteString(as.Name.String())
	out.WriteString(" = ")
	out.WriteString(as.Value.String())
	out.WriteString(";")
	return out.String()
}

// CommandStatement: a media transport command, e.g. open("a.mp4"); or play;
// Arg is nil for the zero-argument commands (play, pause, stop).
type CommandStatement struct {
	Token token.Token // the command keyword
	Kind  CommandKind
	Arg   Expression
}

func (cs *CommandStatement) statementNode()       {}
func (cs *CommandStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CommandStatement) String() string {
	var out bytes.Buffer
	out.WriteString(string(cs.Kind))
	if cs.Arg != nil {
		out.WriteString("(")
		out.WriteString(cs.Arg.String())
		out.WriteString(")")
	}
	out.WriteString(";")
	return out.String()
}

// Identifier
type Identifier struct {
	Token token.Token // token.IDENT
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

// StringLiteral
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return `"` + sl.Value + `"` }

// PrefixExpression: -EXPR
type PrefixExpression struct {
	Token    token.Token // the prefix token, '-'
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(pe.Operator)
	out.WriteString(pe.Right.String())
	out.WriteString(")")
	return out.String()
}

// InfixExpression: EXPR OP EXPR
type InfixExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(ie.Left.String())
	out.WriteString(" " + ie.Operator + " ")
	out.WriteString(ie.Right.String())
	out.WriteString(")")
	return out.String()
}

// QueryExpression: a media state query, e.g. position() or ended.
type QueryExpression struct {
	Token token.Token // the query keyword
	Kind  QueryKind
}

func (qe *QueryExpression) expressionNode()      {}
func (qe *QueryExpression) TokenLiteral() string { return qe.Token.Literal }
func (qe *QueryExpression) String() string       { return string(qe.Kind) + "()" }

// CommandKindOf returns the command kind for a command keyword token type.
func CommandKindOf(t token.Type) (CommandKind, bool) {
	switch t {
	case token.OPEN:
		return CmdOpen, true
	case token.PLAY:
		return CmdPlay, true
	case token.PAUSE:
		return CmdPause, true
	case token.STOP:
		return CmdStop, true
	case token.SEEK:
		return CmdSeek, true
	case token.FORWARD:
		return CmdForward, true
	case token.REWIND:
		return CmdRewind, true
	case token.WAIT:
		return CmdWait, true
	}
	return "", false
}

// QueryKindOf returns the query kind for a query keyword token type.
func QueryKindOf(t token.Type) (QueryKind, bool) {
	switch t {
	case token.POSITION:
		return QueryPosition, true
	case token.DURATION:
		return QueryDuration, true
	case token.ENDED:
		return QueryEnded, true
	case token.IS_PLAYING:
		return QueryIsPlaying, true
	}
	return "", false
}

// TakesArgument reports whether the command kind requires exactly one
// argument expression.
func (k CommandKind) TakesArgument() bool {
	switch k {
	case CmdOpen, CmdSeek, CmdForward, CmdRewind, CmdWait:
		return true
	}
	return false
}
