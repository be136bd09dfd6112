package parsekit_test

import (
	"testing"
	"unicode"

	"github.com/db47h/parsekit"
	"github.com/db47h/parsekit/token"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	parser[V any] = parsekit.Parser[rune, V]
	perr          = parsekit.ParseError[rune]
)

func str(s string) parser[string] {
	return parsekit.Map(parsekit.Sequence([]rune(s)...), func(rs []rune) string { return string(rs) })
}

func char(r rune) parser[rune] { return parsekit.Token(r) }

var digit = parsekit.Labelled(parsekit.Satisfy(unicode.IsDigit), "digit")

// parse runs p over input both as an in-memory span and streamed one rune at a
// time, and checks that both agree.
func parse[V any](t *testing.T, p parser[V], input string) (parsekit.Result[V], *perr) {
	t.Helper()
	res, err := parsekit.ParseSlice(p, []rune(input), token.RunePos)
	sres, serr := parsekit.Parse(p, newReader([]rune(input), 1), token.RunePos)
	assert.Equal(t, res, sres, "streamed result differs")
	assert.Equal(t, err, serr, "streamed error differs")
	if err == nil {
		return res, nil
	}
	var pe *perr
	require.True(t, errors.As(err, &pe), "not a ParseError: %v", err)
	return res, pe
}

func expected(pe *perr) []string {
	var ss []string
	for _, e := range pe.Expected {
		ss = append(ss, e.String())
	}
	return ss
}

func TestSequence(t *testing.T) {
	p := str("foo")

	res, pe := parse(t, p, "foo")
	require.Nil(t, pe)
	assert.Equal(t, parsekit.Success("foo", true), res)

	res, pe = parse(t, p, "bar")
	require.NotNil(t, pe)
	assert.False(t, res.Consumed)
	assert.True(t, pe.HasUnexpected)
	assert.Equal(t, 'b', pe.Unexpected)
	assert.Equal(t, token.Position{Line: 1, Column: 1}, pe.Pos)
	assert.Equal(t, []string{`"foo"`}, expected(pe))
	assert.Equal(t, `unexpected 'b', expected "foo" at line 1, column 1`, pe.Error())

	res, pe = parse(t, p, "fo")
	require.NotNil(t, pe)
	assert.True(t, res.Consumed)
	assert.True(t, pe.EOF)
	assert.Equal(t, `unexpected end of input, expected "foo" at line 1, column 3`, pe.Error())

	eres, pe := parse(t, parsekit.Sequence[rune](), "x")
	require.Nil(t, pe)
	assert.False(t, eres.Consumed)

	// the result is owned by the caller
	seq := parsekit.Sequence([]rune("foo")...)
	sres, pe := parse(t, seq, "foo")
	require.Nil(t, pe)
	sres.Value[0] = 'X'
	sres, pe = parse(t, seq, "foo")
	require.Nil(t, pe)
	assert.Equal(t, "foo", string(sres.Value))
	_, pe = parse(t, seq, "bar")
	require.NotNil(t, pe)
	assert.Equal(t, `unexpected 'b', expected "foo" at line 1, column 1`, pe.Error())
}

func TestSequenceFunc(t *testing.T) {
	p := parsekit.SequenceFunc(func(a, b rune) bool { return unicode.ToLower(a) == unicode.ToLower(b) }, []rune("select")...)
	res, pe := parse(t, p, "SeLeCt")
	require.Nil(t, pe)
	assert.Equal(t, "select", string(res.Value))

	_, pe = parse(t, p, "seLEX")
	require.NotNil(t, pe)
	assert.Equal(t, `unexpected 'X', expected "select" at line 1, column 5`, pe.Error())
}

func TestOr(t *testing.T) {
	p := parsekit.Or(str("foo"), str("four"))

	res, pe := parse(t, p, "foul")
	require.NotNil(t, pe)
	assert.True(t, res.Consumed)
	assert.Equal(t, token.Position{Line: 1, Column: 3}, pe.Pos)
	assert.Equal(t, []string{`"foo"`}, expected(pe))
	assert.Equal(t, 'u', pe.Unexpected)

	res, pe = parse(t, p, "")
	require.NotNil(t, pe)
	assert.False(t, res.Consumed)
	assert.True(t, pe.EOF)
	assert.ElementsMatch(t, []string{`"foo"`, `"four"`}, expected(pe))
	assert.Equal(t, `unexpected end of input, expected "foo" or "four" at line 1, column 1`, pe.Error())

	_, pe = parse(t, parsekit.Or(char('a'), char('b'), char('c')), "d")
	require.NotNil(t, pe)
	assert.Equal(t, `unexpected 'd', expected "a", "b", or "c" at line 1, column 1`, pe.Error())

	rres, pe := parse(t, parsekit.Or(char('a'), char('b')), "b")
	require.Nil(t, pe)
	assert.Equal(t, parsekit.Success('b', true), rres)
}

func TestOr_Fail(t *testing.T) {
	p := parsekit.Or(parsekit.Fail[rune, rune]("test"), char('a'))
	res, pe := parse(t, p, "a")
	require.Nil(t, pe)
	assert.Equal(t, 'a', res.Value)

	_, pe = parse(t, p, "b")
	require.NotNil(t, pe)
	assert.Equal(t, "test", pe.Message)
	assert.Equal(t, 'b', pe.Unexpected)
	assert.Equal(t, "test at line 1, column 1", pe.Error())
}

func TestTry(t *testing.T) {
	p := parsekit.Or(parsekit.Try(str("foo")), str("foul"))
	res, pe := parse(t, p, "foul")
	require.Nil(t, pe)
	assert.Equal(t, parsekit.Success("foul", true), res)

	res, pe = parse(t, parsekit.Try(str("foo")), "fox")
	require.NotNil(t, pe)
	assert.False(t, res.Consumed)
	assert.Equal(t, token.Position{Line: 1, Column: 3}, pe.Pos)

	nested := parsekit.Or(
		parsekit.Try(parsekit.Then(str("foo"), parsekit.Or(parsekit.Try(str("bar")), str("baz")))),
		str("foobat"))
	for _, in := range []string{"foobar", "foobaz", "foobat"} {
		res, pe = parse(t, nested, in)
		require.Nil(t, pe, in)
		assert.Equal(t, in[len(in)-3:], res.Value[len(res.Value)-3:])
	}
	_, pe = parse(t, nested, "fooba")
	require.NotNil(t, pe)
	assert.True(t, pe.EOF)
	assert.Equal(t, token.Position{Line: 1, Column: 6}, pe.Pos)
}

func TestDeepestFailureWins(t *testing.T) {
	p := parsekit.Or(
		parsekit.Try(parsekit.Then(str("foo"), str("bar"))),
		parsekit.Then(str("foo"), str("baz")))
	res, pe := parse(t, p, "fooqux")
	require.NotNil(t, pe)
	assert.True(t, res.Consumed)
	assert.Equal(t, token.Position{Line: 1, Column: 4}, pe.Pos)
	assert.Equal(t, 'q', pe.Unexpected)
	assert.ElementsMatch(t, []string{`"bar"`, `"baz"`}, expected(pe))
}

func TestNot(t *testing.T) {
	p := parsekit.Then(parsekit.Not(str("ab")), parsekit.CurrentOffset[rune]())

	res, pe := parse(t, p, "ac")
	require.Nil(t, pe)
	assert.Equal(t, parsekit.Success(0, false), res)

	res, pe = parse(t, p, "abc")
	require.NotNil(t, pe)
	assert.False(t, res.Consumed)
	assert.Equal(t, 'a', pe.Unexpected)
	assert.Empty(t, pe.Expected)
	assert.Equal(t, "unexpected 'a' at line 1, column 1", pe.Error())

	// not at end of input
	_, pe = parse(t, parsekit.Not(parsekit.End[rune]()), "")
	require.NotNil(t, pe)
	assert.True(t, pe.EOF)
}

func TestLookahead(t *testing.T) {
	p := parsekit.Then(parsekit.Lookahead(str("ab")), str("abc"))
	res, pe := parse(t, p, "abc")
	require.Nil(t, pe)
	assert.Equal(t, "abc", res.Value)

	res, pe = parse(t, parsekit.Lookahead(str("ab")), "ac")
	require.NotNil(t, pe)
	assert.True(t, res.Consumed)
	assert.Equal(t, token.Position{Line: 1, Column: 2}, pe.Pos)
}

func TestLabelled(t *testing.T) {
	_, pe := parse(t, digit, "x")
	require.NotNil(t, pe)
	assert.Equal(t, "unexpected 'x', expected digit at line 1, column 1", pe.Error())

	kw := parsekit.Labelled(str("func"), "keyword")
	_, pe = parse(t, kw, "fun(")
	require.NotNil(t, pe)
	assert.Equal(t, "unexpected '(', expected keyword at line 1, column 4", pe.Error())

	_, pe = parse(t, parsekit.Labelled(parsekit.Or(digit, char('-')), "number"), "")
	require.NotNil(t, pe)
	assert.Equal(t, "unexpected end of input, expected number at line 1, column 1", pe.Error())
}

func TestMany(t *testing.T) {
	p := parsekit.Many(char('a'))
	res, pe := parse(t, p, "aaab")
	require.Nil(t, pe)
	assert.Equal(t, parsekit.Success([]rune("aaa"), true), res)

	res, pe = parse(t, p, "")
	require.Nil(t, pe)
	assert.False(t, res.Consumed)
	assert.Empty(t, res.Value)

	// the expectations of the failed repetition are reported
	_, pe = parse(t, parsekit.Then(p, char('c')), "aaab")
	require.NotNil(t, pe)
	assert.Equal(t, `unexpected 'b', expected "a" or "c" at line 1, column 4`, pe.Error())

	// failure after consuming input is final
	sres, pe := parse(t, parsekit.Many(str("ab")), "abac")
	require.NotNil(t, pe)
	assert.True(t, sres.Consumed)
	assert.Equal(t, `unexpected 'c', expected "ab" at line 1, column 4`, pe.Error())

	ures, pe := parse(t, parsekit.SkipMany(char(' ')), "   x")
	require.Nil(t, pe)
	assert.True(t, ures.Consumed)
}

func TestMany_ZeroProgress(t *testing.T) {
	for name, p := range map[string]parser[struct{}]{
		"Many":             parsekit.Map(parsekit.Many(parsekit.Return[rune](1)), func([]int) struct{} { return struct{}{} }),
		"SkipMany":         parsekit.SkipMany(parsekit.Optional(char('x'), 'y')),
		"AtLeastOnce":      parsekit.Map(parsekit.AtLeastOnce(parsekit.Return[rune](1)), func([]int) struct{} { return struct{}{} }),
		"AtLeastOnceUntil": parsekit.SkipAtLeastOnceUntil(parsekit.CurrentPos[rune](), char('.')),
	} {
		t.Run(name, func(t *testing.T) {
			requireInvariant(t, parsekit.ErrZeroProgress, func() {
				_, _ = parsekit.ParseSlice(p, []rune("abc"), nil)
			})
		})
	}
}

func TestAtLeastOnce(t *testing.T) {
	p := parsekit.AtLeastOnce(char('a'))
	res, pe := parse(t, p, "aa")
	require.Nil(t, pe)
	assert.Equal(t, []rune("aa"), res.Value)

	res, pe = parse(t, p, "b")
	require.NotNil(t, pe)
	assert.False(t, res.Consumed)
	assert.Equal(t, `unexpected 'b', expected "a" at line 1, column 1`, pe.Error())
}

func TestChainL(t *testing.T) {
	num := parsekit.Map(digit, func(r rune) int { return int(r - '0') })
	sum := parsekit.ChainL(num,
		func(v int) int { return v },
		func(acc, v int) int { return acc + v })
	res, pe := parse(t, sum, "1234x")
	require.Nil(t, pe)
	assert.Equal(t, 10, res.Value)

	_, pe = parse(t, parsekit.Before(sum, parsekit.End[rune]()), "12x")
	require.NotNil(t, pe)
	assert.Equal(t, "unexpected 'x', expected digit or end of input at line 1, column 3", pe.Error())
}

func TestSepBy(t *testing.T) {
	p := parsekit.SepBy(char('a'), char(','))
	res, pe := parse(t, p, "a,a,a")
	require.Nil(t, pe)
	assert.Equal(t, []rune("aaa"), res.Value)

	res, pe = parse(t, p, "")
	require.Nil(t, pe)
	assert.Empty(t, res.Value)
	assert.False(t, res.Consumed)

	res, pe = parse(t, p, "a,")
	require.NotNil(t, pe)
	assert.True(t, res.Consumed)
	assert.Equal(t, `unexpected end of input, expected "a" at line 1, column 3`, pe.Error())

	_, pe = parse(t, parsekit.SepBy1(char('a'), char(',')), "")
	require.NotNil(t, pe)
}

func TestUntil(t *testing.T) {
	comment := parsekit.Then(str("/*"), parsekit.Until(parsekit.Any[rune](), str("*/")))
	res, pe := parse(t, comment, "/* abc */")
	require.Nil(t, pe)
	assert.Equal(t, " abc ", string(res.Value))

	res, pe = parse(t, comment, "/**/")
	require.Nil(t, pe)
	assert.Empty(t, res.Value)

	_, pe = parse(t, comment, "/* abc")
	require.NotNil(t, pe)
	assert.Equal(t, `unexpected end of input, expected "*/" or any token at line 1, column 7`, pe.Error())

	// the terminator failed after consuming input
	_, pe = parse(t, comment, "/* a*b")
	require.NotNil(t, pe)
	assert.Equal(t, `unexpected 'b', expected "*/" at line 1, column 6`, pe.Error())

	// the body failed after consuming input
	_, pe = parse(t, parsekit.Until(str("ab"), char('.')), "abac.")
	require.NotNil(t, pe)
	assert.Equal(t, `unexpected 'c', expected "ab" at line 1, column 4`, pe.Error())

	skip := parsekit.Then(parsekit.SkipUntil(parsekit.Any[rune](), char(';')), parsekit.CurrentOffset[rune]())
	res2, pe := parse(t, skip, "abc;d")
	require.Nil(t, pe)
	assert.Equal(t, 4, res2.Value)
}

func TestRecoverWith(t *testing.T) {
	var got *perr
	p := parsekit.RecoverWith(str("foo"), func(err *perr) parser[string] {
		got = err
		return parsekit.Map(parsekit.Many(parsekit.Any[rune]()), func(rs []rune) string { return "skipped " + string(rs) })
	})
	res, pe := parse(t, p, "fox")
	require.Nil(t, pe)
	assert.Equal(t, parsekit.Success("skipped x", true), res)
	require.NotNil(t, got)
	assert.Equal(t, `unexpected 'x', expected "foo" at line 1, column 3`, got.Error())

	res, pe = parse(t, p, "foo")
	require.Nil(t, pe)
	assert.Equal(t, "foo", res.Value)
}

func TestAssert(t *testing.T) {
	p := parsekit.Assert(parsekit.Many(char('a')), func(as []rune) bool { return len(as) == 2 }, "want two a's")
	_, pe := parse(t, p, "aa")
	require.Nil(t, pe)

	res, pe := parse(t, p, "aaa")
	require.NotNil(t, pe)
	assert.True(t, res.Consumed)
	assert.Equal(t, "want two a's at line 1, column 4", pe.Error())
}

func TestBindMapSeq(t *testing.T) {
	// a digit n followed by n x's
	p := parsekit.Bind(digit, func(d rune) parser[int] {
		ps := make([]parser[rune], d-'0')
		for i := range ps {
			ps[i] = char('x')
		}
		return parsekit.Map(parsekit.Seq(ps...), func(xs []rune) int { return len(xs) })
	})
	res, pe := parse(t, p, "3xxx")
	require.Nil(t, pe)
	assert.Equal(t, parsekit.Success(3, true), res)

	res, pe = parse(t, p, "3xx")
	require.NotNil(t, pe)
	assert.True(t, res.Consumed)

	sres, pe := parse(t, parsekit.Seq[rune, rune](), "")
	require.Nil(t, pe)
	assert.Equal(t, parsekit.Success([]rune{}, false), sres)
}

func TestBetween(t *testing.T) {
	p := parsekit.Between(char('('), parsekit.Many(digit), char(')'))
	res, pe := parse(t, p, "(42)")
	require.Nil(t, pe)
	assert.Equal(t, "42", string(res.Value))

	_, pe = parse(t, p, "(42")
	require.NotNil(t, pe)
	assert.Equal(t, `unexpected end of input, expected ")" or digit at line 1, column 4`, pe.Error())
}

func TestOptional(t *testing.T) {
	sign := parsekit.Optional(char('-'), '+')
	res, pe := parse(t, sign, "-1")
	require.Nil(t, pe)
	assert.Equal(t, parsekit.Success('-', true), res)

	res, pe = parse(t, sign, "1")
	require.Nil(t, pe)
	assert.Equal(t, parsekit.Success('+', false), res)

	// expectations of an empty match are reported by the next failure
	tests := []struct {
		name string
		p    parser[rune]
	}{
		{"Optional", parsekit.Then(parsekit.Optional(char('a'), 0), char('b'))},
		{"SepBy", parsekit.Then(parsekit.SepBy(char('a'), char(',')), char('b'))},
		{"Many", parsekit.Then(parsekit.Many(char('a')), char('b'))},
	}
	for _, tt := range tests {
		_, pe = parse(t, tt.p, "c")
		require.NotNil(t, pe, tt.name)
		assert.Equal(t, `unexpected 'c', expected "a" or "b" at line 1, column 1`, pe.Error(), tt.name)
	}
}

func TestLazy(t *testing.T) {
	// balanced parentheses
	var parens parser[int]
	parens = parsekit.Lazy(func() parser[int] {
		return parsekit.Map(
			parsekit.Many(parsekit.Between(char('('), parens, char(')'))),
			func(ds []int) int {
				m := 0
				for _, d := range ds {
					m = max(m, d+1)
				}
				return m
			})
	})
	res, pe := parse(t, parsekit.Before(parens, parsekit.End[rune]()), "(()(()))()")
	require.Nil(t, pe)
	assert.Equal(t, 3, res.Value)

	_, pe = parse(t, parsekit.Before(parens, parsekit.End[rune]()), "(()")
	require.NotNil(t, pe)
	assert.Equal(t, token.Position{Line: 1, Column: 4}, pe.Pos)
}

func TestCurrentPos(t *testing.T) {
	p := parsekit.Then(parsekit.Many(parsekit.Satisfy(func(r rune) bool { return r != 'x' })), parsekit.CurrentPos[rune]())
	res, pe := parse(t, p, "ab\n\tcx")
	require.Nil(t, pe)
	assert.Equal(t, token.Position{Line: 2, Column: 6}, res.Value)
	assert.True(t, res.Consumed)
}

func TestEnd(t *testing.T) {
	_, pe := parse(t, parsekit.End[rune](), "")
	require.Nil(t, pe)

	_, pe = parse(t, parsekit.End[rune](), "a")
	require.NotNil(t, pe)
	assert.Equal(t, "unexpected 'a', expected end of input at line 1, column 1", pe.Error())
}

func TestParse_NonTextTokens(t *testing.T) {
	type tok int
	p := parsekit.Many(parsekit.Or(parsekit.Token(tok(1)), parsekit.Token(tok(2))))
	res, err := parsekit.Parse(parsekit.Before(p, parsekit.End[tok]()), newReader([]tok{1, 2, 2, 3}, 2), nil)
	require.Error(t, err)
	assert.False(t, res.Ok)
	assert.Equal(t, "unexpected 3, expected 1, 2, or end of input at line 1, column 4", err.Error())
}
