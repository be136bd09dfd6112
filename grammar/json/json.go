// Package json implements a JSON parser on top of parsekit.
//
// It is both a usable RFC 8259 parser and an example of a complete grammar
// written with the combinators of the parsekit and text packages: objects
// decode to map[string]any, arrays to []any, numbers to float64, strings to
// string, and true, false and null to their Go counterparts.
//
package json

import (
	"io"
	"strconv"
	"unicode"
	"unicode/utf16"

	"github.com/db47h/parsekit"
	"github.com/db47h/parsekit/source"
	"github.com/db47h/parsekit/text"
	"github.com/db47h/parsekit/token"
)

type (
	parser[V any] = parsekit.Parser[rune, V]

	member struct {
		key   string
		value any
	}
)

var (
	// Value parses a single JSON value, followed by optional white space.
	Value = value()
	// Document parses a JSON text: a value surrounded by optional white
	// space, up to the end of input.
	Document = parsekit.Then(ws, parsekit.Before(Value, parsekit.End[rune]()))
)

// Parse parses a JSON document read from r.
//
func Parse(r io.Reader, opts ...parsekit.Option) (any, error) {
	res, err := parsekit.Parse(Document, source.Runes(r), token.RunePos, opts...)
	return res.Value, err
}

// ParseString parses the JSON document in s.
//
func ParseString(s string, opts ...parsekit.Option) (any, error) {
	res, err := parsekit.ParseSlice(Document, []rune(s), token.RunePos, opts...)
	return res.Value, err
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

var ws = parsekit.SkipMany(parsekit.Satisfy(isSpace))

func lexeme[V any](p parser[V]) parser[V] {
	return parsekit.Before(p, ws)
}

func value() parser[any] {
	var v parser[any]
	ref := parsekit.Lazy(func() parser[any] { return v })

	var (
		comma  = lexeme(text.Rune(','))
		object = parsekit.Map(
			parsekit.Between(lexeme(text.Rune('{')), parsekit.SepBy(objectMember(ref), comma), lexeme(text.Rune('}'))),
			toMap)
		array = parsekit.Between(lexeme(text.Rune('[')), parsekit.SepBy(ref, comma), lexeme(text.Rune(']')))
		str   = toAny(stringLiteral())
		num   = number()
		lTrue = parsekit.Map(text.String("true"), func(string) any { return true })
		lFals = parsekit.Map(text.String("false"), func(string) any { return false })
		lNull = parsekit.Map(text.String("null"), func(string) any { return nil })
		first = parsekit.Labelled(parsekit.Lookahead(text.AnyOf(`{["-0123456789tfn`)), "value")
	)

	v = lexeme(parsekit.Bind(first, func(r rune) parser[any] {
		switch r {
		case '{':
			return object
		case '[':
			return parsekit.Map(array, toSlice)
		case '"':
			return str
		case 't':
			return lTrue
		case 'f':
			return lFals
		case 'n':
			return lNull
		}
		return num
	}))
	return v
}

func objectMember(value parser[any]) parser[member] {
	key := parsekit.Then(
		parsekit.Labelled(parsekit.Lookahead(text.Rune('"')), "object key"),
		lexeme(stringLiteral()))
	colon := lexeme(text.Rune(':'))
	return parsekit.Bind(key, func(k string) parser[member] {
		return parsekit.Map(parsekit.Then(colon, value), func(v any) member {
			return member{k, v}
		})
	})
}

func toMap(ms []member) any {
	m := make(map[string]any, len(ms))
	for _, e := range ms {
		m[e.key] = e.value
	}
	return m
}

func toSlice(vs []any) any {
	if vs == nil {
		return []any{}
	}
	return vs
}

func toAny[V any](p parser[V]) parser[any] {
	return parsekit.Map(p, func(v V) any { return v })
}

var unescape = map[rune]rune{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

func isHex(r rune) bool {
	return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

func stringLiteral() parser[string] {
	var (
		hex    = parsekit.Labelled(parsekit.Satisfy(isHex), "hex digit")
		hex4   = parsekit.Map(parsekit.Seq(hex, hex, hex, hex), hexValue)
		simple = parsekit.Map(text.AnyOf(`"\/bfnrt`), func(r rune) rune { return unescape[r] })
		escape = parsekit.Or(
			parsekit.Labelled(simple, "escape sequence"),
			parsekit.Then(parsekit.Labelled(text.Rune('u'), "escape sequence"), hex4))
		plain = parsekit.Satisfy(func(r rune) bool { return r >= 0x20 && r != '"' && r != '\\' })
		char  = parsekit.Or(plain, parsekit.Then(parsekit.Satisfy(func(r rune) bool { return r == '\\' }), escape))
		open  = parsekit.Labelled(text.Rune('"'), "string")
		end   = parsekit.Labelled(text.Rune('"'), "end of string")
	)
	return parsekit.Between(open, parsekit.Map(parsekit.Many(char), decodeUTF16), end)
}

func hexValue(ds []rune) rune {
	var v rune
	for _, d := range ds {
		switch {
		case d <= '9':
			d -= '0'
		case d >= 'a':
			d -= 'a' - 10
		default:
			d -= 'A' - 10
		}
		v = v<<4 | d
	}
	return v
}

// decodeUTF16 combines surrogate pairs from \u escapes. Lone surrogates are
// replaced by U+FFFD.
//
func decodeUTF16(rs []rune) string {
	out := make([]rune, 0, len(rs))
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if utf16.IsSurrogate(r) {
			if i+1 < len(rs) {
				if d := utf16.DecodeRune(r, rs[i+1]); d != unicode.ReplacementChar {
					out = append(out, d)
					i++
					continue
				}
			}
			r = unicode.ReplacementChar
		}
		out = append(out, r)
	}
	return string(out)
}

func number() parser[any] {
	var (
		str      = func(r rune) string { return string(r) }
		optional = func(p parser[string]) parser[string] { return parsekit.Optional(p, "") }
		concat   = func(ss []string) string {
			var n string
			for _, s := range ss {
				n += s
			}
			return n
		}
		digits  = parsekit.Map(parsekit.AtLeastOnce(text.Digit), func(rs []rune) string { return string(rs) })
		nonZero = parsekit.Labelled(parsekit.Satisfy(func(r rune) bool { return '1' <= r && r <= '9' }), "digit")
		integer = parsekit.Or(
			text.String("0"),
			parsekit.Map(parsekit.Seq(
				parsekit.Map(nonZero, str),
				parsekit.Map(parsekit.Many(text.Digit), func(rs []rune) string { return string(rs) })), concat))
		frac = optional(parsekit.Map(parsekit.Seq(text.String("."), digits), concat))
		exp  = optional(parsekit.Map(parsekit.Seq(
			parsekit.Map(text.AnyOf("eE"), str),
			optional(parsekit.Map(text.AnyOf("+-"), str)),
			digits), concat))
		literal = parsekit.Map(parsekit.Seq(optional(text.String("-")), integer, frac, exp), concat)
	)
	return parsekit.Bind(literal, func(s string) parser[any] {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return parsekit.Fail[rune, any]("number " + s + " out of range")
		}
		return parsekit.Return[rune, any](f)
	})
}
