package query

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MatchTerm reports whether any of the named fields of record contains term,
// ignoring case. Only string and numeric fields take part; numbers are compared
// through their shortest decimal form, so "120" matches a page count of 1200.
func MatchTerm(record map[string]interface{}, term string, fields []string) bool {
	return matchLowerTerm(record, strings.ToLower(term), fields)
}

func matchLowerTerm(record map[string]interface{}, lowerTerm string, fields []string) bool {
	for _, field := range fields {
		text, ok := fieldText(record[field])
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(text), lowerTerm) {
			return true
		}
	}
	return false
}

// fieldText returns the searchable text of a field value.
// Anything other than a string or number is not searchable.
func fieldText(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case json.Number:
		return v.String(), true
	}
	return "", false
}
