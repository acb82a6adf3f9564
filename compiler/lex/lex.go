package lex

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/xlang/xc/compiler/set"
)

type (
	lexer struct {
		tr tlog.Span

		line int
		buf  []rune // pending non-delimiter runes

		toks []Token
	}
)

var (
	spaces = set.NewChars(' ', '\t', '\r')
	delims = set.NewChars('=', ';', ':', '+', '(', ')', '{', '}').Or(spaces)

	punct = [128]Kind{
		'=': Eq,
		';': Semi,
		':': Colon,
		'+': Plus,
		'(': LParen,
		')': RParen,
		'{': LBrace,
		'}': RBrace,
	}
)

// Lex reads source text line by line and returns its tokens.
func Lex(ctx context.Context, r io.Reader) ([]Token, error) {
	var lines []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 16<<20)

	for sc.Scan() {
		lines = append(lines, sc.Text())
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read line %d", len(lines)+1)
	}

	return LexLines(ctx, lines)
}

// LexLines tokenizes source already split into lines.
// Line i of the slice is reported as line i+1.
func LexLines(ctx context.Context, lines []string) ([]Token, error) {
	l := &lexer{
		tr: tlog.SpanFromContext(ctx),
	}

	if l.tr.If("lex_lines") {
		l.tr.Printw("lex", "lines", len(lines), "delims", delims)
	}

	for i, line := range lines {
		err := l.lexLine(i+1, line)
		if err != nil {
			return nil, err
		}
	}

	return l.toks, nil
}

func (l *lexer) lexLine(n int, line string) (err error) {
	l.line = n
	l.buf = l.buf[:0]

	col := 0

	for _, r := range line {
		col++

		if !delims.Has(r) {
			l.buf = append(l.buf, r)
			continue
		}

		err = l.flush(col, punct[r])
		if err != nil {
			return err
		}
	}

	return l.flush(col+1, Invalid)
}

// flush emits the pending buffer, if any, as a classified token
// and then the punctuation token p at col, unless p is Invalid.
func (l *lexer) flush(col int, p Kind) error {
	if len(l.buf) != 0 {
		t, err := classify(l.buf, Pos{Line: l.line, Col: col - len(l.buf)})
		if err != nil {
			return err
		}

		l.emit(t)
		l.buf = l.buf[:0]
	}

	if p != Invalid {
		l.emit(Token{Kind: p, Pos: Pos{Line: l.line, Col: col}})
	}

	return nil
}

func (l *lexer) emit(t Token) {
	if l.tr.If("lex_tokens") {
		l.tr.Printw("token", "kind", t.Kind, "text", t.Text, "pos", t.Pos)
	}

	l.toks = append(l.toks, t)
}

func classify(buf []rune, pos Pos) (Token, error) {
	s := string(buf)

	if k, ok := keywords[s]; ok {
		return Token{Kind: k, Pos: pos}, nil
	}

	digits := buf
	if len(digits) > 1 && digits[0] == '-' {
		digits = digits[1:]
	}

	if isDigit(digits[0]) {
		for _, r := range digits {
			if !isDigit(r) {
				return Token{}, Error{Kind: InvalidNumericLiteral, Pos: pos, Text: s}
			}
		}

		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Token{}, Error{Kind: InvalidNumericLiteral, Pos: pos, Text: s}
		}

		return Token{Kind: Int, Text: s, Int: int32(v), Pos: pos}, nil
	}

	if !isIdentStart(buf[0]) {
		return Token{}, Error{Kind: InvalidIdentifier, Pos: pos, Text: s}
	}

	for i, r := range buf[1:] {
		if !isIdentPart(r) {
			return Token{}, Error{
				Kind: InvalidCharacterSequence,
				Pos:  Pos{Line: pos.Line, Col: pos.Col + 1 + i},
				Text: s,
			}
		}
	}

	return Token{Kind: Ident, Text: s, Pos: pos}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
