package query

import (
	"errors"
	"fmt"
	"strings"
)

// MaxDepth bounds how deeply NOT operators and parentheses may nest.
const MaxDepth = 256

// ErrQueryTooDeep is returned by Compile when a query nests past MaxDepth.
var ErrQueryTooDeep = errors.New("query nesting too deep")

// node is one element of a compiled expression tree.
type node interface {
	match(record map[string]interface{}, fields []string) bool
	render(sb *strings.Builder)
}

// termNode matches a literal search word against the record fields.
type termNode struct {
	term  string
	lower string
}

func (n termNode) match(record map[string]interface{}, fields []string) bool {
	return matchLowerTerm(record, n.lower, fields)
}

func (n termNode) render(sb *strings.Builder) { sb.WriteString(n.term) }

type notNode struct {
	operand node
}

func (n notNode) match(record map[string]interface{}, fields []string) bool {
	return !n.operand.match(record, fields)
}

func (n notNode) render(sb *strings.Builder) {
	sb.WriteString("NOT ")
	n.operand.render(sb)
}

type andNode struct {
	left, right node
}

func (n andNode) match(record map[string]interface{}, fields []string) bool {
	return n.left.match(record, fields) && n.right.match(record, fields)
}

func (n andNode) render(sb *strings.Builder) {
	sb.WriteByte('(')
	n.left.render(sb)
	sb.WriteString(" AND ")
	n.right.render(sb)
	sb.WriteByte(')')
}

type orNode struct {
	left, right node
}

func (n orNode) match(record map[string]interface{}, fields []string) bool {
	return n.left.match(record, fields) || n.right.match(record, fields)
}

func (n orNode) render(sb *strings.Builder) {
	sb.WriteByte('(')
	n.left.render(sb)
	sb.WriteString(" OR ")
	n.right.render(sb)
	sb.WriteByte(')')
}

// constNode stands in for a factor that has no term: input that ran out is
// true, a stray operator or closing paren is false.
type constNode bool

func (n constNode) match(map[string]interface{}, []string) bool { return bool(n) }

func (n constNode) render(sb *strings.Builder) {
	if n {
		sb.WriteString("TRUE")
		return
	}
	sb.WriteString("FALSE")
}

// parser is a recursive-descent parser over a token slice:
//
//	Expression := Term (OR Term)*
//	Term       := Factor ((AND Factor) | Factor)*
//	Factor     := NOT Factor | LPAREN Expression RPAREN | TERM
//
// Malformed input is tolerated: unclosed parens are closed implicitly and
// tokens left over after the first Expression are ignored.
type parser struct {
	tokens []Token
	pos    int
	depth  int
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *parser) parseExpression() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != KindOr {
			return left, nil
		}
		p.pos++

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.Kind == KindRParen || tok.Kind == KindOr {
			return left, nil
		}
		if tok.Kind == KindAnd {
			p.pos++
		}

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
}

func (p *parser) parseFactor() (node, error) {
	tok, ok := p.next()
	if !ok {
		return constNode(true), nil
	}

	switch tok.Kind {
	case KindTerm:
		return termNode{term: tok.Value, lower: strings.ToLower(tok.Value)}, nil

	case KindNot:
		if err := p.descend(); err != nil {
			return nil, err
		}
		defer p.ascend()

		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return notNode{operand: operand}, nil

	case KindLParen:
		if err := p.descend(); err != nil {
			return nil, err
		}
		defer p.ascend()

		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if next, ok := p.peek(); ok && next.Kind == KindRParen {
			p.pos++
		}
		return inner, nil
	}

	return constNode(false), nil
}

func (p *parser) descend() error {
	p.depth++
	if p.depth > MaxDepth {
		return fmt.Errorf("%w: more than %d nested groups at token %d", ErrQueryTooDeep, MaxDepth, p.pos)
	}
	return nil
}

func (p *parser) ascend() { p.depth-- }
