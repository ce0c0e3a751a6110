// Package expressions binds node settings containing {{ path }} expressions
// to integration parameter structs using the current item as data source.
package expressions

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Binder implements domain.IntegrationParameterBinder. Expressions reference
// item fields by path; a setting that is exactly one expression keeps the
// resolved value's type, otherwise matches are stringified in place.
type Binder struct {
	accessor  *PathAccessor
	exprRegex *regexp.Regexp
	logger    zerolog.Logger
}

type BinderOptions struct {
	Logger zerolog.Logger
}

func DefaultBinderOptions() BinderOptions {
	return BinderOptions{
		Logger: zerolog.Nop(),
	}
}

func NewBinder(opts BinderOptions) *Binder {
	return &Binder{
		accessor:  NewPathAccessor(),
		exprRegex: regexp.MustCompile(`\{\{(.*?)\}\}`),
		logger:    opts.Logger,
	}
}

// BindToStruct resolves expressions in userNodeSettings against item, then
// JSON-roundtrips the bound settings into target.
func (b *Binder) BindToStruct(ctx context.Context, item any, target any, userNodeSettings map[string]any) error {
	if target == nil {
		return fmt.Errorf("bind target cannot be nil")
	}

	boundData := b.bindValue(item, userNodeSettings)

	jsonData, err := json.Marshal(boundData)
	if err != nil {
		return fmt.Errorf("failed to marshal bound settings: %w", err)
	}

	if err := json.Unmarshal(jsonData, target); err != nil {
		return fmt.Errorf("failed to unmarshal bound settings: %w", err)
	}

	return nil
}

func (b *Binder) bindValue(item any, value any) any {
	switch t := value.(type) {
	case string:
		return b.bindString(item, t)
	case map[string]any:
		bound := make(map[string]any, len(t))
		for key, nested := range t {
			bound[key] = b.bindValue(item, nested)
		}
		return bound
	case []any:
		bound := make([]any, len(t))
		for i, nested := range t {
			bound[i] = b.bindValue(item, nested)
		}
		return bound
	default:
		return value
	}
}

func (b *Binder) bindString(item any, str string) any {
	matches := b.exprRegex.FindStringSubmatch(str)
	if matches == nil {
		return str
	}

	// A whole-string expression keeps the resolved value's native type.
	if strings.TrimSpace(b.exprRegex.ReplaceAllString(str, "")) == "" && strings.Count(str, "{{") == 1 {
		resolved, found := b.accessor.Get(item, strings.TrimSpace(matches[1]))
		if !found {
			b.logger.Debug().Str("path", matches[1]).Msg("expression path not found in item")
			return nil
		}

		return resolved
	}

	return b.exprRegex.ReplaceAllStringFunc(str, func(expr string) string {
		path := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(expr, "{{"), "}}"))

		resolved, found := b.accessor.Get(item, path)
		if !found {
			return ""
		}

		switch v := resolved.(type) {
		case string:
			return v
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return ""
			}
			return string(encoded)
		}
	})
}
