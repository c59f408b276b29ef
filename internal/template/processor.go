// Package template expands parameterized resource bundles. Expansion is pure
// string substitution over the template's raw objects: ${NAME} references are
// replaced with the declared parameter's value, and "${{NAME}}" references
// are spliced in unquoted so parameters can carry numbers or booleans.
package template

import (
	"encoding/json"
	"fmt"
	"regexp"

	"konverge/internal/resource"
)

// Options controls expansion strictness.
type Options struct {
	// FailOnMissing aborts expansion when a referenced parameter has no
	// value instead of substituting the empty string.
	FailOnMissing bool
}

var (
	rawParamRef    = regexp.MustCompile(`"\$\{\{([A-Za-z0-9_]+)\}\}"`)
	stringParamRef = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)
)

// Process expands the template locally and returns the resulting list. The
// returned list re-enters the dispatcher like any other parsed input.
func Process(t *resource.Template, opts Options) (*resource.List, error) {
	ref := resource.RefOf(t)

	values := make(map[string]string, len(t.Parameters))
	declared := make(map[string]bool, len(t.Parameters))
	for _, p := range t.Parameters {
		if p.Name == "" {
			return nil, resource.NewTemplateError(ref, "template declares a parameter with no name", nil)
		}
		declared[p.Name] = true
		values[p.Name] = p.Value
	}

	list := resource.NewList()
	for i, obj := range t.Objects {
		expanded, err := substitute(ref, []byte(obj), values, declared, opts)
		if err != nil {
			return nil, err
		}
		entity, err := resource.Parse(expanded)
		if err != nil {
			return nil, resource.NewTemplateError(ref, fmt.Sprintf("object %d after expansion: %v", i, err), err)
		}
		if r, ok := entity.(resource.Resource); ok && len(t.ObjectLabels) > 0 {
			applyLabels(r, t.ObjectLabels)
		}
		list.Append(entity)
	}
	return list, nil
}

// substitute resolves both reference forms in one pass over the raw JSON.
// Unquoted ${{NAME}} references go first so their values are not re-escaped
// by the string pass.
func substitute(ref resource.Reference, data []byte, values map[string]string, declared map[string]bool, opts Options) ([]byte, error) {
	var missing string

	out := rawParamRef.ReplaceAllFunc(data, func(match []byte) []byte {
		name := string(rawParamRef.FindSubmatch(match)[1])
		value, ok := resolve(name, values, declared, opts, &missing)
		if !ok {
			return match
		}
		if value == "" {
			return []byte("null")
		}
		return []byte(value)
	})

	out = stringParamRef.ReplaceAllFunc(out, func(match []byte) []byte {
		name := string(stringParamRef.FindSubmatch(match)[1])
		value, ok := resolve(name, values, declared, opts, &missing)
		if !ok {
			return match
		}
		escaped, err := json.Marshal(value)
		if err != nil {
			return match
		}
		// strip the quotes added by Marshal; the reference sits inside an
		// existing JSON string
		return escaped[1 : len(escaped)-1]
	})

	if missing != "" {
		return nil, resource.NewTemplateError(ref, fmt.Sprintf("no value for parameter %q", missing), nil)
	}
	return out, nil
}

// resolve looks up a parameter reference. Undeclared references are left
// intact in lax mode so downstream tooling can spot them; declared parameters
// fall back to their (possibly empty) default value.
func resolve(name string, values map[string]string, declared map[string]bool, opts Options, missing *string) (string, bool) {
	if !declared[name] {
		if opts.FailOnMissing && *missing == "" {
			*missing = name
		}
		return "", false
	}
	value := values[name]
	if value == "" && opts.FailOnMissing {
		if *missing == "" {
			*missing = name
		}
		return "", false
	}
	return value, true
}

func applyLabels(r resource.Resource, labels map[string]string) {
	merged := r.GetLabels()
	if merged == nil {
		merged = make(map[string]string, len(labels))
	}
	for k, v := range labels {
		merged[k] = v
	}
	r.SetLabels(merged)
}
