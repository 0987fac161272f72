package model

import (
	"strconv"
	"strings"
)

// IDField is the key every catalog item is identified by.
const IDField = "id"

// CreatedAtField holds the RFC 3339 creation time assigned when an item is first saved.
const CreatedAtField = "createdAt"

// Document is a flexible map representing one catalog item (a book, article,
// audio, video or artist profile) as decoded from JSON.
// Example: doc["title"], doc["titleZh"], doc["views"]
type Document map[string]interface{}

// GetID returns the item id if it is stored under "id" as a non-empty string.
func (d Document) GetID() (string, bool) {
	if id, ok := d[IDField]; ok {
		if str, sok := id.(string); sok && str != "" {
			return str, true
		}
	}
	return "", false
}

// GetString returns the field as a string, or "" when it is missing or not a string.
func (d Document) GetString(field string) string {
	if s, ok := d[field].(string); ok {
		return s
	}
	return ""
}

// Year returns the year held by field. Strings such as "2011" or "2011-05-02"
// yield their leading integer, numbers are truncated. A missing or unparsable
// value reports false.
func (d Document) Year(field string) (int, bool) {
	switch v := d[field].(type) {
	case string:
		return LeadingInt(v)
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// LeadingInt parses the optional sign and digits at the start of s, ignoring
// leading spaces, in the forgiving way form inputs such as "2011-05" are read.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
