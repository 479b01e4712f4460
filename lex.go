package calculator

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenLit is a literal: a number, a variable name, or text.
	tokenLit
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open bracket.
	tokenOpen
	// tokenClose is a close bracket.
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenLit:
		return "Lit"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/%"

// OpenBracket and CloseBracket group expressions.
const (
	OpenBracket  = '('
	CloseBracket = ')'
)

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
	// open is the position of an open bracket that ended a literal, or 0.
	open int
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
// Invalid UTF-8 is an error.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if err == nil && r == utf8.RuneError && sz == 1 {
		return r, &EncodingError{Col: l.rune}
	}
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Subsequent times, the result is
// an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	if l.open > 0 {
		tok := lexToken{text: string(OpenBracket), kind: tokenOpen, pos: l.open}
		l.open = 0
		return tok, nil
	}
	for {
		tok := lexToken{pos: l.rune}
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case strings.ContainsRune(Operators, r):
			tok.text = string(r)
			tok.kind = tokenOp
			return tok, nil
		case r == OpenBracket:
			// () with nothing between is no group at all.
			c, err := l.readRune()
			if err == nil {
				if c == CloseBracket {
					continue
				}
				l.unreadRune()
			} else if !errors.Is(err, io.EOF) {
				return tok, err
			}
			tok.text = string(OpenBracket)
			tok.kind = tokenOpen
			return tok, nil
		case r == CloseBracket:
			tok.text = string(CloseBracket)
			tok.kind = tokenClose
			return tok, nil
		default:
			l.unreadRune()
			if err := l.scanLit(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenLit
			return tok, nil
		}
	}
}

// scanLit scans a literal. Whitespace and empty groups inside a literal are
// dropped rather than ending it, so "1 000" and "1()000" are the single
// literal "1000".
func (l *lexer) scanLit() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides literal scanning before
				// calling scanLit, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case unicode.IsSpace(r):
			// Skip without unreading. The rune after the spaces decides
			// whether the literal continues.
		case isLitRune(r):
			l.buf.WriteRune(r)
		case r == OpenBracket:
			pos := l.rune - 1
			c, err := l.readRune()
			if err == nil && c == CloseBracket {
				continue
			}
			if err == nil {
				l.unreadRune()
			} else if !errors.Is(err, io.EOF) {
				return err
			}
			// The bracket can't be unread along with c, so next emits it.
			l.open = pos
			return nil
		default:
			l.unreadRune()
			return nil
		}
	}
}

// isLitRune returns whether r may appear in a literal.
func isLitRune(r rune) bool {
	return r != OpenBracket && r != CloseBracket && !strings.ContainsRune(Operators, r) && !unicode.IsSpace(r)
}

// all scans the remaining input. The last token is always the EOF token.
func (l *lexer) all() ([]lexToken, error) {
	var toks []lexToken
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokenEOF {
			return toks, nil
		}
	}
}
