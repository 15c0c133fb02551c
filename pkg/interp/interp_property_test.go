package interp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zurustar/streamlang/pkg/compiler"
)

func evalPrint(source string) (string, error) {
	program, err := compiler.Compile(source)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	in := New(&fakePlayer{})
	in.SetOutput(&out)
	if err := in.Run(program); err != nil {
		return "", err
	}
	return out.String(), nil
}

func TestArithmeticProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	operand := gen.Int64Range(-1_000_000, 1_000_000)

	properties.Property("print a + b yields the sum", prop.ForAll(
		func(a, b int64) bool {
			got, err := evalPrint(fmt.Sprintf("print %d + %d;", a, b))
			return err == nil && got == fmt.Sprintf("%d\n", a+b)
		},
		operand, operand,
	))

	properties.Property("print a * b yields the product", prop.ForAll(
		func(a, b int64) bool {
			got, err := evalPrint(fmt.Sprintf("print %d * %d;", a, b))
			return err == nil && got == fmt.Sprintf("%d\n", a*b)
		},
		operand, operand,
	))

	properties.Property("quotient satisfies the floor-division identity", prop.ForAll(
		func(a, b int64) bool {
			if b == 0 {
				return true
			}
			got, err := evalPrint(fmt.Sprintf("print %d / %d;", a, b))
			if err != nil {
				return false
			}
			q, err := strconv.ParseInt(strings.TrimSuffix(got, "\n"), 10, 64)
			if err != nil {
				return false
			}
			// q*b never exceeds a; the remainder carries the divisor's sign
			// and is strictly smaller in magnitude.
			rem := a - q*b
			if rem != 0 && (rem > 0) != (b > 0) {
				return false
			}
			absRem, absB := rem, b
			if absRem < 0 {
				absRem = -absRem
			}
			if absB < 0 {
				absB = -absB
			}
			return absRem < absB
		},
		operand, operand,
	))

	properties.Property("comparison matches Go semantics", prop.ForAll(
		func(a, b int64) bool {
			got, err := evalPrint(fmt.Sprintf("print %d < %d;", a, b))
			return err == nil && got == fmt.Sprintf("%t\n", a < b)
		},
		operand, operand,
	))

	properties.TestingRun(t)
}

func TestWhileLoopProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("counting loop runs exactly n times", prop.ForAll(
		func(n int64) bool {
			source := fmt.Sprintf(
				"count = 0; i = 0; while (i < %d) { count = count + 1; i = i + 1; } print count;", n)
			got, err := evalPrint(source)
			return err == nil && got == fmt.Sprintf("%d\n", n)
		},
		gen.Int64Range(0, 100),
	))

	properties.TestingRun(t)
}
