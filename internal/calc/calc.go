// Package calc evaluates four-function arithmetic expressions.
//
// Supported: non-negative integer literals, + - * /, unary minus and plus,
// parentheses, whitespace. Arithmetic is exact (rational), so 100/3*3 is 100.
package calc

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Evaluation errors.
var (
	ErrEmpty          = errors.New("empty expression")
	ErrSyntax         = errors.New("syntax error")
	ErrUnbalanced     = errors.New("unbalanced parentheses")
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("result out of range")
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	op   byte
	num  *big.Rat
	pos  int
}

// Eval parses and evaluates expr.
func Eval(expr string) (*big.Rat, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, ErrEmpty
	}
	toks, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	v, err := p.expr()
	if err != nil {
		return nil, err
	}
	switch t := p.peek(); t.kind {
	case tokEOF:
		return v, nil
	case tokRParen:
		return nil, fmt.Errorf("%w: unexpected ')' at %d", ErrUnbalanced, t.pos)
	default:
		return nil, fmt.Errorf("%w: unexpected token at %d", ErrSyntax, t.pos)
	}
}

// EvalInt evaluates expr and truncates the result toward zero.
func EvalInt(expr string) (int, error) {
	v, err := Eval(expr)
	if err != nil {
		return 0, err
	}
	return Trunc(v)
}

// Trunc truncates r toward zero.
func Trunc(r *big.Rat) (int, error) {
	q := new(big.Int).Quo(r.Num(), r.Denom())
	if !q.IsInt64() {
		return 0, ErrOverflow
	}
	n := q.Int64()
	if int64(int(n)) != n {
		return 0, ErrOverflow
	}
	return int(n), nil
}

func tokenize(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9':
			start := i
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				i++
			}
			n, _ := new(big.Int).SetString(s[start:i], 10)
			toks = append(toks, token{kind: tokNumber, num: new(big.Rat).SetInt(n), pos: start})
		case c == '+' || c == '-' || c == '*' || c == '/':
			toks = append(toks, token{kind: tokOp, op: c, pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, c, i)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(s)}), nil
}

type parser struct {
	toks  []token
	i     int
	depth int // open parentheses
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() (*big.Rat, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.op != '+' && t.op != '-') {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		if t.op == '+' {
			left = new(big.Rat).Add(left, right)
		} else {
			left = new(big.Rat).Sub(left, right)
		}
	}
}

// term := unary (('*' | '/') unary)*
func (p *parser) term() (*big.Rat, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.op != '*' && t.op != '/') {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		if t.op == '*' {
			left = new(big.Rat).Mul(left, right)
			continue
		}
		if right.Sign() == 0 {
			return nil, fmt.Errorf("%w at %d", ErrDivisionByZero, t.pos)
		}
		left = new(big.Rat).Quo(left, right)
	}
}

// unary := ('+' | '-') unary | primary
func (p *parser) unary() (*big.Rat, error) {
	t := p.peek()
	if t.kind == tokOp && (t.op == '+' || t.op == '-') {
		p.next()
		v, err := p.unary()
		if err != nil {
			return nil, err
		}
		if t.op == '-' {
			return new(big.Rat).Neg(v), nil
		}
		return v, nil
	}
	return p.primary()
}

// primary := number | '(' expr ')'
func (p *parser) primary() (*big.Rat, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.num, nil
	case tokLParen:
		p.depth++
		v, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("%w: missing ')' for '(' at %d", ErrUnbalanced, t.pos)
		}
		p.depth--
		return v, nil
	case tokRParen:
		if p.depth == 0 {
			return nil, fmt.Errorf("%w: unexpected ')' at %d", ErrUnbalanced, t.pos)
		}
		return nil, fmt.Errorf("%w: empty parentheses at %d", ErrSyntax, t.pos)
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	default:
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.op, t.pos)
	}
}
