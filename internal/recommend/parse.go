package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse signals that no usable movie list could be extracted from
// the provider's reply.
var ErrParse = errors.New("recommend: no usable movie list in provider reply")

// maxSalvageScan bounds the slice of the reply inspected by the
// salvage pass, so a pathological reply cannot make it expensive.
const maxSalvageScan = 64 << 10

// ParseMovies extracts the "movies" array from raw provider text.
// It first tries the whole text as JSON, then falls back to the first
// {...} span (greedy, first '{' to last '}') in case the model wrapped
// its JSON in prose. Fewer than three entries is a parse failure.
func ParseMovies(raw string) ([]string, error) {
	if titles, ok := decodeMovies([]byte(raw)); ok {
		return titles, nil
	}
	if span, ok := salvageJSONObject(raw); ok {
		if titles, ok := decodeMovies([]byte(span)); ok {
			return titles, nil
		}
	}
	return nil, ErrParse
}

func decodeMovies(data []byte) ([]string, bool) {
	var env struct {
		Movies []any `json:"movies"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	if len(env.Movies) < minMovies {
		return nil, false
	}
	titles := make([]string, 0, len(env.Movies))
	for _, m := range env.Movies {
		titles = append(titles, coerceString(m))
	}
	return titles, true
}

// salvageJSONObject returns the greedy {...} span of raw, capped at
// maxSalvageScan bytes. Nested braces inside string values can
// mis-bound the span; the strict pass already handled every reply that
// was actually valid JSON, so this only sees malformed ones.
func salvageJSONObject(raw string) (string, bool) {
	if len(raw) > maxSalvageScan {
		raw = raw[:maxSalvageScan]
	}
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(raw, '}')
	if end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func coerceString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
