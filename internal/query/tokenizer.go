// Package query implements the boolean search language used by catalog listings.
//
// A query is a free-text string made of search terms combined with AND, OR, NOT
// and parentheses. Adjacent terms with no operator between them are joined with
// an implicit AND, so "ancient china" is the same as "ancient AND china".
// Operators are recognised case-insensitively; everything else is a term that
// is matched as a case-insensitive substring against a caller-chosen set of
// record fields.
package query

import (
	"strings"
)

// Kind classifies a lexical unit of a query string.
type Kind int

const (
	KindTerm Kind = iota
	KindAnd
	KindOr
	KindNot
	KindLParen
	KindRParen
)

var kindNames = map[Kind]string{
	KindTerm:   "TERM",
	KindAnd:    "AND",
	KindOr:     "OR",
	KindNot:    "NOT",
	KindLParen: "LPAREN",
	KindRParen: "RPAREN",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the kind by name so tokens serialize readably in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a classified fragment of the query string.
// Value holds the fragment exactly as it appeared in the input.
type Token struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

// parenSpacer isolates parentheses so "(a" and "a)" split into separate fragments.
var parenSpacer = strings.NewReplacer("(", " ( ", ")", " ) ")

// Tokenize splits a query string into tokens in source order.
// It never fails: empty or whitespace-only input yields an empty slice.
func Tokenize(query string) []Token {
	fragments := strings.Fields(parenSpacer.Replace(query))

	tokens := make([]Token, 0, len(fragments)) // Initialize as empty slice, not nil
	for _, fragment := range fragments {
		tokens = append(tokens, Token{Kind: classify(fragment), Value: fragment})
	}
	return tokens
}

func classify(fragment string) Kind {
	switch fragment {
	case "(":
		return KindLParen
	case ")":
		return KindRParen
	}

	switch strings.ToUpper(fragment) {
	case "AND":
		return KindAnd
	case "OR":
		return KindOr
	case "NOT":
		return KindNot
	}
	return KindTerm
}
