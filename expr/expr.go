// Package expr builds expression parsers from a term parser and a table of
// prefix, postfix and infix operators, using a precedence climbing
// algorithm.
//
// See http://www.engr.mun.ca/~theo/Misc/exp_parsing.htm#climbing.
//
package expr

import (
	"fmt"

	"github.com/db47h/parsekit"
	"golang.org/x/exp/slices"
)

type kind int

const (
	infixL kind = iota
	infixR
	prefix
	postfix
)

// An Operator describes how an operator is parsed and applied. Operators
// with a higher precedence bind tighter.
//
type Operator[T comparable, V any] struct {
	prec   int
	kind   kind
	binary parsekit.Parser[T, func(V, V) V]
	unary  parsekit.Parser[T, func(V) V]
}

// InfixL returns a left associative binary operator. op parses the operator
// and returns the function that combines both operands.
//
func InfixL[T comparable, V any](prec int, op parsekit.Parser[T, func(a, b V) V]) Operator[T, V] {
	return Operator[T, V]{prec: prec, kind: infixL, binary: op}
}

// InfixR returns a right associative binary operator.
//
func InfixR[T comparable, V any](prec int, op parsekit.Parser[T, func(a, b V) V]) Operator[T, V] {
	return Operator[T, V]{prec: prec, kind: infixR, binary: op}
}

// Prefix returns a unary prefix operator. Its operand is the expression that
// follows, limited to operators of precedence prec or higher.
//
func Prefix[T comparable, V any](prec int, op parsekit.Parser[T, func(V) V]) Operator[T, V] {
	return Operator[T, V]{prec: prec, kind: prefix, unary: op}
}

// Postfix returns a unary postfix operator. Since op can parse arbitrary
// input, Postfix also serves for function calls or indexing: op parses the
// argument list and returns a function applying it to the callee.
//
func Postfix[T comparable, V any](prec int, op parsekit.Parser[T, func(V) V]) Operator[T, V] {
	return Operator[T, V]{prec: prec, kind: postfix, unary: op}
}

// led is a parsed infix or postfix operator.
type led[V any] struct {
	prec   int
	right  bool
	binary func(V, V) V
	unary  func(V) V
}

// nud is a parsed prefix operator.
type nud[V any] struct {
	prec  int
	unary func(V) V
}

type level[T comparable, V any] struct {
	prec int
	p    parsekit.Parser[T, led[V]] // all infix/postfix operators of precedence >= prec
}

type builder[T comparable, V any] struct {
	term   parsekit.Parser[T, V]
	prefix parsekit.Parser[T, nud[V]]
	levels []level[T, V] // by increasing precedence
}

// Build returns a parser for expressions made of the terms returned by term
// and the given operators. term receives the expression parser itself, so
// that terms can contain sub-expressions, typically between parentheses.
//
// When several operators can match the same input, the one listed first
// wins. Wrap operator parsers with parsekit.Try when one is a prefix of
// another, like "<" and "<=".
//
// The resulting parser panics with a *parsekit.InvariantError if a postfix
// operator succeeds without consuming input.
//
func Build[T comparable, V any](term func(expr parsekit.Parser[T, V]) parsekit.Parser[T, V], ops ...Operator[T, V]) parsekit.Parser[T, V] {
	b := new(builder[T, V])
	self := func(s *parsekit.State[T], c *parsekit.Collector[T]) parsekit.Result[V] {
		return b.parse(s, c, 0)
	}
	b.term = term(self)

	var (
		prefixes []parsekit.Parser[T, nud[V]]
		lefts    []Operator[T, V]
	)
	for _, op := range ops {
		switch op.kind {
		case prefix:
			prefixes = append(prefixes, parsekit.Map(op.unary, func(f func(V) V) nud[V] {
				return nud[V]{op.prec, f}
			}))
		default:
			lefts = append(lefts, op)
		}
	}
	if len(prefixes) > 0 {
		b.prefix = parsekit.Or(prefixes...)
	}

	precs := make([]int, 0, len(lefts))
	for _, op := range lefts {
		precs = append(precs, op.prec)
	}
	slices.Sort(precs)
	precs = slices.Compact(precs)
	for _, prec := range precs {
		var ps []parsekit.Parser[T, led[V]]
		for _, op := range lefts {
			if op.prec >= prec {
				ps = append(ps, ledParser(op))
			}
		}
		b.levels = append(b.levels, level[T, V]{prec, parsekit.Or(ps...)})
	}
	return self
}

func ledParser[T comparable, V any](op Operator[T, V]) parsekit.Parser[T, led[V]] {
	if op.kind == postfix {
		return parsekit.Map(op.unary, func(f func(V) V) led[V] {
			return led[V]{prec: op.prec, unary: f}
		})
	}
	return parsekit.Map(op.binary, func(f func(V, V) V) led[V] {
		return led[V]{prec: op.prec, right: op.kind == infixR, binary: f}
	})
}

// leftOps returns the parser for the infix and postfix operators of
// precedence pmin or higher, or nil if there are none.
//
func (b *builder[T, V]) leftOps(pmin int) parsekit.Parser[T, led[V]] {
	for _, l := range b.levels {
		if l.prec >= pmin {
			return l.p
		}
	}
	return nil
}

func (b *builder[T, V]) parse(s *parsekit.State[T], c *parsekit.Collector[T], pmin int) parsekit.Result[V] {
	var lhs parsekit.Result[V]

	// primary
	matched := false
	if b.prefix != nil {
		op := b.prefix(s, c)
		switch {
		case op.Ok:
			rhs := b.parse(s, c, op.Value.prec)
			if !rhs.Ok {
				return parsekit.Failure[V](op.Consumed || rhs.Consumed)
			}
			lhs = parsekit.Success(op.Value.unary(rhs.Value), op.Consumed || rhs.Consumed)
			matched = true
		case op.Consumed:
			return parsekit.Failure[V](true)
		}
	}
	if !matched {
		if lhs = b.term(s, c); !lhs.Ok {
			return lhs
		}
	}

	for {
		p := b.leftOps(pmin)
		if p == nil {
			return lhs
		}
		op := p(s, c)
		if !op.Ok {
			if op.Consumed {
				return parsekit.Failure[V](true)
			}
			return lhs
		}
		lhs.Consumed = lhs.Consumed || op.Consumed
		if op.Value.binary == nil {
			if !op.Consumed {
				panic(&parsekit.InvariantError{
					Err:    parsekit.ErrZeroProgress,
					Detail: fmt.Sprintf("postfix operator of precedence %d", op.Value.prec),
				})
			}
			lhs.Value = op.Value.unary(lhs.Value)
			continue
		}
		next := op.Value.prec + 1
		if op.Value.right {
			next = op.Value.prec
		}
		rhs := b.parse(s, c, next)
		if !rhs.Ok {
			return parsekit.Failure[V](lhs.Consumed || rhs.Consumed)
		}
		lhs.Value = op.Value.binary(lhs.Value, rhs.Value)
		lhs.Consumed = lhs.Consumed || rhs.Consumed
	}
}
