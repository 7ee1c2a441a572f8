package transcript

import (
	"encoding/json"
	"strings"
)

// CountWords totals the whitespace-separated words across every string value
// in a transcript payload, at any nesting depth. Non-JSON input counts as
// zero.
func CountWords(raw []byte) int {
	if len(raw) == 0 {
		return 0
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	return countValue(v)
}

func countValue(v interface{}) int {
	switch t := v.(type) {
	case string:
		return len(strings.Fields(t))
	case []interface{}:
		total := 0
		for _, e := range t {
			total += countValue(e)
		}
		return total
	case map[string]interface{}:
		total := 0
		for _, e := range t {
			total += countValue(e)
		}
		return total
	default:
		return 0
	}
}
