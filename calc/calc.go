// Package calc evaluates a single binary arithmetic expression.
package calc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidNumber   = errors.New("calc: invalid number")
	ErrUnknownOperator = errors.New("calc: unknown operator")
	ErrDivisionByZero  = errors.New("calc: division by zero")
)

// Operators lists the accepted operator spellings.
var Operators = []string{"+", "-", "*", "x", "/", "%"}

func Evaluate(left, op, right string) (decimal.Decimal, error) {
	a, err := decimal.NewFromString(strings.TrimSpace(left))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, left)
	}
	b, err := decimal.NewFromString(strings.TrimSpace(right))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, right)
	}

	switch strings.TrimSpace(op) {
	case "+":
		return a.Add(b), nil
	case "-":
		return a.Sub(b), nil
	case "*", "x":
		return a.Mul(b), nil
	case "/":
		if b.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		return a.Div(b), nil
	case "%":
		if b.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		return a.Mod(b), nil
	}

	return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
}
