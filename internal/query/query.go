package query

import (
	"log"
	"strings"
)

// Query is a compiled boolean search expression.
// A Query is immutable and may be matched from many goroutines at once.
type Query struct {
	raw    string
	tokens []Token
	root   node
}

// Compile parses query into a reusable expression.
// An empty or whitespace-only query compiles to a Query that matches everything.
// The only error is ErrQueryTooDeep; every other malformation is tolerated.
func Compile(query string) (*Query, error) {
	if strings.TrimSpace(query) == "" {
		return &Query{raw: query}, nil
	}

	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return &Query{raw: query}, nil
	}

	p := &parser{tokens: tokens}
	root, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &Query{raw: query, tokens: tokens, root: root}, nil
}

// MustCompile is like Compile but panics on error. Intended for fixed queries in tests and seeds.
func MustCompile(query string) *Query {
	q, err := Compile(query)
	if err != nil {
		panic("query: Compile(" + query + "): " + err.Error())
	}
	return q
}

// Match reports whether record satisfies the query when terms are looked up in fields.
// A nil or empty Query matches every record.
func (q *Query) Match(record map[string]interface{}, fields []string) bool {
	if q == nil || q.root == nil {
		return true
	}
	return q.root.match(record, fields)
}

// IsEmpty reports whether the query places no constraint on records.
func (q *Query) IsEmpty() bool {
	return q == nil || q.root == nil
}

// Raw returns the query text as given to Compile.
func (q *Query) Raw() string {
	if q == nil {
		return ""
	}
	return q.raw
}

// Tokens returns a copy of the tokens the query was parsed from.
func (q *Query) Tokens() []Token {
	if q == nil {
		return []Token{}
	}
	out := make([]Token, len(q.tokens))
	copy(out, q.tokens)
	return out
}

// String renders the expression fully parenthesised, e.g. "(history AND NOT war)".
// An empty query renders as "*".
func (q *Query) String() string {
	if q.IsEmpty() {
		return "*"
	}
	var sb strings.Builder
	q.root.render(&sb)
	return sb.String()
}

// Evaluate reports whether record matches query over the given fields.
//
// An empty query matches everything. Evaluate never panics: a query that cannot
// be evaluated is logged and treated as matching nothing.
func Evaluate(record map[string]interface{}, query string, fields []string) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Error evaluating query %q: %v", query, r)
			matched = false
		}
	}()

	q, err := Compile(query)
	if err != nil {
		log.Printf("Error evaluating query %q: %v", query, err)
		return false
	}
	return q.Match(record, fields)
}
