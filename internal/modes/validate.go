package modes

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// ValidationError lists every problem found with a set of field values
type ValidationError struct {
	Missing []string
	Unknown []string
	Invalid []string // values outside a field's choice set
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required field(s): "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown field(s): "+strings.Join(e.Unknown, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid choice for field(s): "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

// Validate checks values against the spec's fields. A blank value counts as
// missing. It returns nil or a *ValidationError.
func (s Spec) Validate(values map[string]string) error {
	verr := &ValidationError{}

	for _, f := range s.Fields {
		v, ok := values[f.Name]
		blank := !ok || strings.TrimSpace(v) == ""
		if blank {
			if f.Required {
				verr.Missing = append(verr.Missing, f.Name)
			}
			continue
		}
		if len(f.Choices) > 0 && !slices.Contains(f.Choices, v) {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("%s (%q)", f.Name, v))
		}
	}

	for name := range values {
		if _, ok := s.Field(name); !ok {
			verr.Unknown = append(verr.Unknown, name)
		}
	}
	sort.Strings(verr.Unknown)

	if len(verr.Missing) == 0 && len(verr.Unknown) == 0 && len(verr.Invalid) == 0 {
		return nil
	}
	return verr
}
