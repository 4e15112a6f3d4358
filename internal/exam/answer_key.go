package exam

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// AnswerKey is a sorted list of option tokens.
// It decodes from either a comma-joined string ("a,c") or a string array (["a","c"]).
type AnswerKey []string

func (k *AnswerKey) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*k = nil
		return nil
	}

	var raw []string
	switch {
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.Split(s, ",")
	case len(b) > 0 && b[0] == '[':
		if err := json.Unmarshal(b, &raw); err != nil {
			return fmt.Errorf("answer key array must hold strings: %w", err)
		}
	default:
		return errors.New("answer key must be a string or an array of strings")
	}

	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			return errors.New("answer key has an empty token")
		}
		out = append(out, t)
	}
	sort.Strings(out)
	*k = out
	return nil
}

// String renders the key in its comma-joined form.
func (k AnswerKey) String() string { return strings.Join(k, ",") }
