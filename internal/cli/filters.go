package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/hobbyist/internal/api"
)

// Filter argument keys accepted by the list commands.
const (
	filterID      = "_id"
	filterName    = "name"
	filterHobbies = "hobbies"
)

// parseFilterArgs splits key=value arguments, rejecting keys outside allowed
// and keys given twice.
func parseFilterArgs(args []string, allowed ...string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter %q (expected key=value)", arg)
		}
		if !slices.Contains(allowed, key) {
			return nil, fmt.Errorf("unknown filter key %q (valid: %s)", key, strings.Join(allowed, ", "))
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("filter key %q given twice", key)
		}
		out[key] = value
	}
	return out, nil
}

func optional(m map[string]string, key string) *string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	return &v
}

func hobbyFilter(args []string) (*api.HobbyFilterInput, error) {
	m, err := parseFilterArgs(args, filterID, filterName)
	if err != nil {
		return nil, err
	}
	return &api.HobbyFilterInput{ID: optional(m, filterID), Name: optional(m, filterName)}, nil
}

// personFilter parses person list filters. hobbies takes a JSON array of
// ids, matched as the exact stored sequence.
func personFilter(args []string) (*api.PersonFilterInput, error) {
	m, err := parseFilterArgs(args, filterID, filterName, filterHobbies)
	if err != nil {
		return nil, err
	}
	in := &api.PersonFilterInput{ID: optional(m, filterID), Name: optional(m, filterName)}
	if raw, ok := m[filterHobbies]; ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, fmt.Errorf("invalid hobbies filter %q (expected a JSON array of ids): %w", raw, err)
		}
		if ids == nil {
			ids = []string{}
		}
		in.Hobbies = &ids
	}
	return in, nil
}
