package expr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokX
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	pos  int
	text string
}

// unicodeOps maps accepted non-ASCII operator runes to their ASCII form.
var unicodeOps = map[rune]string{
	'−': "-", // U+2212 MINUS SIGN
	'×': "*", // U+00D7 MULTIPLICATION SIGN
	'÷': "/", // U+00F7 DIVISION SIGN
}

// Normalize returns the NFC form of src. Offsets in tokens, nodes and
// syntax errors refer to this form.
func Normalize(src string) string {
	return norm.NFC.String(src)
}

// lex splits normalized source into tokens ending with tokEOF.
func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			return nil, &SyntaxError{Pos: i, Message: "invalid UTF-8"}
		case unicode.IsSpace(r):
			i += size
		case r >= '0' && r <= '9':
			j := i
			for j < len(src) && src[j] >= '0' && src[j] <= '9' {
				j++
			}
			toks = append(toks, token{kind: tokNumber, pos: i, text: src[i:j]})
			i = j
		case r == 'x' || r == 'X':
			toks = append(toks, token{kind: tokX, pos: i, text: "x"})
			i += size
		case r == '(':
			toks = append(toks, token{kind: tokLParen, pos: i, text: "("})
			i += size
		case r == ')':
			toks = append(toks, token{kind: tokRParen, pos: i, text: ")"})
			i += size
		case strings.HasPrefix(src[i:], "//"):
			toks = append(toks, token{kind: tokOp, pos: i, text: string(OpFloorDiv)})
			i += 2
		case strings.HasPrefix(src[i:], "**"):
			toks = append(toks, token{kind: tokOp, pos: i, text: string(OpPow)})
			i += 2
		case strings.ContainsRune("+-*/%^", r):
			toks = append(toks, token{kind: tokOp, pos: i, text: string(r)})
			i += size
		default:
			if op, ok := unicodeOps[r]; ok {
				toks = append(toks, token{kind: tokOp, pos: i, text: op})
				i += size
				continue
			}
			return nil, &SyntaxError{Pos: i, Message: "unexpected character " + strconv.QuoteRune(r)}
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}
