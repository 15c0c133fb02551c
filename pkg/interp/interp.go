// Package interp executes streamlang ASTs against a media player.
//
// Execution is a single-threaded, depth-first, left-to-right walk of the
// statement sequence: each statement finishes, including all of its side
// effects, before the next begins, so print output and player commands
// happen in exactly program order. Every run is single-shot against a fresh
// environment; the first unrecovered runtime error stops the walk.
package interp

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zurustar/streamlang/pkg/compiler/ast"
	"github.com/zurustar/streamlang/pkg/logger"
	"github.com/zurustar/streamlang/pkg/player"
)

// State is the lifecycle state of one interpreter run.
type State string

const (
	StateIdle     State = "IDLE"
	StateRunning  State = "RUNNING"
	StateFinished State = "FINISHED"
	StateFailed   State = "FAILED"
)

// Interp walks a Program, maintaining the variable environment and invoking
// the player for media effects.
type Interp struct {
	player player.Player
	env    *Environment
	out    io.Writer
	log    *slog.Logger
	state  State
}

// New creates an interpreter with a fresh environment.
func New(p player.Player) *Interp {
	return NewWithEnvironment(p, NewEnvironment())
}

// NewWithEnvironment creates an interpreter sharing an existing environment.
// The REPL uses this to keep variables alive across inputs; each Run is
// still single-shot.
func NewWithEnvironment(p player.Player, env *Environment) *Interp {
	return &Interp{
		player: p,
		env:    env,
		out:    os.Stdout,
		log:    logger.GetLogger(),
		state:  StateIdle,
	}
}

// SetOutput redirects print output. The default is stdout.
func (in *Interp) SetOutput(w io.Writer) {
	in.out = w
}

// State returns the lifecycle state of the run.
func (in *Interp) State() State {
	return in.state
}

// Environment returns the variable environment of the run.
func (in *Interp) Environment() *Environment {
	return in.env
}

// Run executes the program to completion or to the first runtime error.
// There is no resumption: a finished or failed interpreter cannot run again.
func (in *Interp) Run(program *ast.Program) error {
	if in.state != StateIdle {
		return fmt.Errorf("interpreter already ran (state %s)", in.state)
	}
	in.state = StateRunning

	for _, stmt := range program.Statements {
		if err := in.execStatement(stmt); err != nil {
			in.state = StateFailed
			in.log.Error("run aborted", "error", err)
			return err
		}
	}

	in.state = StateFinished
	return nil
}

func (in *Interp) execStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		for _, inner := range s.Statements {
			if err := in.execStatement(inner); err != nil {
				return err
			}
		}
		return nil

	case *ast.IfStatement:
		cond, err := in.evalExpression(s.Condition)
		if err != nil {
			return err
		}
		truth, err := in.truthy(cond, s.Token.Line)
		if err != nil {
			return err
		}
		if truth {
			return in.execStatement(s.Consequence)
		}
		if s.Alternative != nil {
			return in.execStatement(s.Alternative)
		}
		return nil

	case *ast.WhileStatement:
		for {
			cond, err := in.evalExpression(s.Condition)
			if err != nil {
				return err
			}
			truth, err := in.truthy(cond, s.Token.Line)
			if err != nil {
				return err
			}
			if !truth {
				return nil
			}
			if err := in.execStatement(s.Body); err != nil {
				return err
			}
		}

	case *ast.PrintStatement:
		v, err := in.evalExpression(s.Value)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(in.out, v.Inspect())
		return err

	case *ast.AssignStatement:
		v, err := in.evalExpression(s.Value)
		if err != nil {
			return err
		}
		in.env.Set(s.Name.Value, v)
		return nil

	case *ast.CommandStatement:
		return in.execCommand(s)

	default:
		return fmt.Errorf("unsupported statement type: %T", stmt)
	}
}

// execCommand evaluates the optional argument, checks its type and issues
// the transport command. A player failure surfaces as a runtime error.
func (in *Interp) execCommand(s *ast.CommandStatement) error {
	var cmdErr error

	switch s.Kind {
	case ast.CmdOpen:
		path, err := in.stringArg(s)
		if err != nil {
			return err
		}
		cmdErr = in.player.Open(path)

	case ast.CmdPlay:
		cmdErr = in.player.Play()

	case ast.CmdPause:
		cmdErr = in.player.Pause()

	case ast.CmdStop:
		cmdErr = in.player.Stop()

	case ast.CmdSeek:
		n, err := in.integerArg(s)
		if err != nil {
			return err
		}
		cmdErr = in.player.Seek(n)

	case ast.CmdForward:
		n, err := in.integerArg(s)
		if err != nil {
			return err
		}
		cmdErr = in.player.Forward(n)

	case ast.CmdRewind:
		n, err := in.integerArg(s)
		if err != nil {
			return err
		}
		cmdErr = in.player.Rewind(n)

	case ast.CmdWait:
		n, err := in.integerArg(s)
		if err != nil {
			return err
		}
		cmdErr = in.player.Wait(n)

	default:
		return fmt.Errorf("unsupported media command: %s", s.Kind)
	}

	if cmdErr != nil {
		return &RuntimeError{
			Kind:    ErrorPlayer,
			Message: fmt.Sprintf("media command %s failed: %v", s.Kind, cmdErr),
			Line:    s.Token.Line,
			Err:     cmdErr,
		}
	}
	return nil
}

// stringArg evaluates a command argument that must be a String.
func (in *Interp) stringArg(s *ast.CommandStatement) (string, error) {
	v, err := in.evalExpression(s.Arg)
	if err != nil {
		return "", err
	}
	str, ok := v.(*String)
	if !ok {
		return "", newRuntimeError(ErrorTypeMismatch, s.Token.Line,
			"%s requires a string argument, got %s", s.Kind, v.Type())
	}
	return str.Value, nil
}

// integerArg evaluates a command argument that must be an Integer.
func (in *Interp) integerArg(s *ast.CommandStatement) (int64, error) {
	v, err := in.evalExpression(s.Arg)
	if err != nil {
		return 0, err
	}
	n, ok := v.(*Integer)
	if !ok {
		return 0, newRuntimeError(ErrorTypeMismatch, s.Token.Line,
			"%s requires an integer argument, got %s", s.Kind, v.Type())
	}
	return n.Value, nil
}

func (in *Interp) evalExpression(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &Integer{Value: e.Value}, nil

	case *ast.StringLiteral:
		return &String{Value: e.Value}, nil

	case *ast.Identifier:
		v, ok := in.env.Get(e.Value)
		if !ok {
			return nil, newRuntimeError(ErrorUndefinedVar, e.Token.Line,
				"undefined variable: %s", e.Value)
		}
		return v, nil

	case *ast.PrefixExpression:
		return in.evalPrefix(e)

	case *ast.InfixExpression:
		return in.evalInfix(e)

	case *ast.QueryExpression:
		return in.evalQuery(e)

	default:
		return nil, fmt.Errorf("unsupported expression type: %T", expr)
	}
}

func (in *Interp) evalPrefix(e *ast.PrefixExpression) (Value, error) {
	right, err := in.evalExpression(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "-":
		n, ok := right.(*Integer)
		if !ok {
			return nil, newRuntimeError(ErrorTypeMismatch, e.Token.Line,
				"unary minus requires an integer operand, got %s", right.Type())
		}
		return &Integer{Value: -n.Value}, nil
	default:
		return nil, fmt.Errorf("unsupported prefix operator: %s", e.Operator)
	}
}

// evalInfix evaluates a binary operation. The left operand is always
// evaluated first. Arithmetic and ordering need integer operands; equality
// also compares string against string. Everything else is a type error.
func (in *Interp) evalInfix(e *ast.InfixExpression) (Value, error) {
	left, err := in.evalExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpression(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "==", "!=":
		return in.evalEquality(e, left, right)
	case "+", "-", "*", "/":
		return in.evalArithmetic(e, left, right)
	case "<", "<=", ">", ">=":
		return in.evalOrdering(e, left, right)
	default:
		return nil, fmt.Errorf("unsupported infix operator: %s", e.Operator)
	}
}

func (in *Interp) evalEquality(e *ast.InfixExpression, left, right Value) (Value, error) {
	if l, ok := left.(*Integer); ok {
		if r, ok := right.(*Integer); ok {
			if e.Operator == "==" {
				return &Boolean{Value: l.Value == r.Value}, nil
			}
			return &Boolean{Value: l.Value != r.Value}, nil
		}
	}
	if l, ok := left.(*String); ok {
		if r, ok := right.(*String); ok {
			if e.Operator == "==" {
				return &Boolean{Value: l.Value == r.Value}, nil
			}
			return &Boolean{Value: l.Value != r.Value}, nil
		}
	}
	return nil, newRuntimeError(ErrorTypeMismatch, e.Token.Line,
		"cannot apply %s to %s and %s", e.Operator, left.Type(), right.Type())
}

func (in *Interp) evalArithmetic(e *ast.InfixExpression, left, right Value) (Value, error) {
	l, r, err := in.integerOperands(e, left, right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "+":
		return &Integer{Value: l + r}, nil
	case "-":
		return &Integer{Value: l - r}, nil
	case "*":
		return &Integer{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, newRuntimeError(ErrorDivisionByZero, e.Token.Line, "division by zero")
		}
		return &Integer{Value: floorDiv(l, r)}, nil
	}
	return nil, fmt.Errorf("unsupported arithmetic operator: %s", e.Operator)
}

// floorDiv divides rounding toward negative infinity. Go's native division
// truncates toward zero; the language rounds down, so -7 / 2 is -4.
func floorDiv(l, r int64) int64 {
	q := l / r
	if l%r != 0 && (l < 0) != (r < 0) {
		q--
	}
	return q
}

func (in *Interp) evalOrdering(e *ast.InfixExpression, left, right Value) (Value, error) {
	l, r, err := in.integerOperands(e, left, right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "<":
		return &Boolean{Value: l < r}, nil
	case "<=":
		return &Boolean{Value: l <= r}, nil
	case ">":
		return &Boolean{Value: l > r}, nil
	case ">=":
		return &Boolean{Value: l >= r}, nil
	}
	return nil, fmt.Errorf("unsupported ordering operator: %s", e.Operator)
}

func (in *Interp) integerOperands(e *ast.InfixExpression, left, right Value) (int64, int64, error) {
	l, ok := left.(*Integer)
	if !ok {
		return 0, 0, newRuntimeError(ErrorTypeMismatch, e.Token.Line,
			"operator %s requires integer operands, got %s", e.Operator, left.Type())
	}
	r, ok := right.(*Integer)
	if !ok {
		return 0, 0, newRuntimeError(ErrorTypeMismatch, e.Token.Line,
			"operator %s requires integer operands, got %s", e.Operator, right.Type())
	}
	return l.Value, r.Value, nil
}

func (in *Interp) evalQuery(e *ast.QueryExpression) (Value, error) {
	switch e.Kind {
	case ast.QueryPosition:
		return &Integer{Value: in.player.Position()}, nil
	case ast.QueryDuration:
		return &Integer{Value: in.player.Duration()}, nil
	case ast.QueryEnded:
		return &Boolean{Value: in.player.Ended()}, nil
	case ast.QueryIsPlaying:
		return &Boolean{Value: in.player.IsPlaying()}, nil
	default:
		return nil, fmt.Errorf("unsupported media query: %s", e.Kind)
	}
}

// truthy coerces a condition result: booleans as-is, any nonzero integer is
// true. A string condition is a type error.
func (in *Interp) truthy(v Value, line int) (bool, error) {
	switch val := v.(type) {
	case *Boolean:
		return val.Value, nil
	case *Integer:
		return val.Value != 0, nil
	default:
		return false, newRuntimeError(ErrorTypeMismatch, line,
			"%s value used as a condition", v.Type())
	}
}
