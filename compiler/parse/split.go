package parse

import (
	"tlog.app/go/loc"

	"github.com/xlang/xc/compiler/lex"
)

// scan walks toks tracking () and {} nesting and calls f with the index
// of every token at depth zero, brackets themselves excluded.
// It stops at the first index f accepts and returns it, or -1.
func (s *parser) scan(toks []lex.Token, f func(i int) bool) (int, error) {
	var open []lex.Token

	for i, t := range toks {
		switch t.Kind {
		case lex.LParen, lex.LBrace:
			open = append(open, t)
			continue
		case lex.RParen, lex.RBrace:
			if len(open) == 0 || closer(open[len(open)-1].Kind) != t.Kind {
				return -1, errAt(UnbalancedBraces, t, "unmatched %v", t.Kind)
			}

			open = open[:len(open)-1]
			continue
		}

		if len(open) == 0 && f(i) {
			return i, nil
		}
	}

	if len(open) != 0 {
		t := open[len(open)-1]
		return -1, errAt(UnbalancedBraces, t, "unclosed %v", t.Kind)
	}

	return -1, nil
}

// index returns the index of the first top-level k in toks, or -1.
func (s *parser) index(toks []lex.Token, k lex.Kind) (i int, err error) {
	i, err = s.scan(toks, func(j int) bool { return toks[j].Kind == k })

	if s.tr.If("parse_split") {
		s.tr.Printw("index", "sep", k, "at", i, "len", len(toks), "err", err, "from", loc.Callers(1, 2))
	}

	return i, err
}

// lastIndex returns the index of the last top-level k in toks, or -1.
func (s *parser) lastIndex(toks []lex.Token, k lex.Kind) (i int, err error) {
	i = -1

	_, err = s.scan(toks, func(j int) bool {
		if toks[j].Kind == k {
			i = j
		}

		return false
	})
	if err != nil {
		i = -1
	}

	if s.tr.If("parse_split") {
		s.tr.Printw("last index", "sep", k, "at", i, "len", len(toks), "err", err, "from", loc.Callers(1, 2))
	}

	return i, err
}

// enclosed reports whether toks is a single parenthesized group.
func enclosed(toks []lex.Token) bool {
	if len(toks) < 2 || toks[0].Kind != lex.LParen || toks[len(toks)-1].Kind != lex.RParen {
		return false
	}

	d := 0

	for i, t := range toks {
		switch t.Kind {
		case lex.LParen:
			d++
		case lex.RParen:
			d--

			if d == 0 {
				return i == len(toks)-1
			}
		}
	}

	return false
}

func closer(k lex.Kind) lex.Kind {
	switch k {
	case lex.LParen:
		return lex.RParen
	case lex.LBrace:
		return lex.RBrace
	default:
		return lex.Invalid
	}
}
