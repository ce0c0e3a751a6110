package expressions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathAccessor_Get(t *testing.T) {
	accessor := NewPathAccessor()

	tests := []struct {
		name     string
		source   any
		path     string
		expected any
		exists   bool
	}{
		{
			name:     "simple path",
			source:   map[string]any{"name": "test"},
			path:     "name",
			expected: "test",
			exists:   true,
		},
		{
			name:     "nested path",
			source:   map[string]any{"config": map[string]any{"timeout": 30}},
			path:     "config.timeout",
			expected: 30,
			exists:   true,
		},
		{
			name: "array index path",
			source: map[string]any{
				"parts": []any{
					map[string]any{"text": "first"},
					map[string]any{"text": "second"},
				},
			},
			path:     "parts[1].text",
			expected: "second",
			exists:   true,
		},
		{
			name:     "missing path",
			source:   map[string]any{"name": "test"},
			path:     "missing.deep",
			expected: nil,
			exists:   false,
		},
		{
			name:     "index out of range",
			source:   map[string]any{"parts": []any{"only"}},
			path:     "parts[3]",
			expected: nil,
			exists:   false,
		},
		{
			name:     "invalid path",
			source:   map[string]any{"name": "test"},
			path:     "",
			expected: nil,
			exists:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, exists := accessor.Get(tt.source, tt.path)
			assert.Equal(t, tt.exists, exists)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestBinder_BindToStruct(t *testing.T) {
	binder := NewBinder(DefaultBinderOptions())

	type sendParams struct {
		SessionID string `json:"session_id"`
		Prompt    string `json:"prompt"`
		Limit     int    `json:"limit"`
	}

	item := map[string]any{
		"session": map[string]any{"id": "ses_1"},
		"ask":     "2+2?",
		"limit":   25,
	}

	settings := map[string]any{
		"session_id": "{{ session.id }}",
		"prompt":     "question: {{ ask }}",
		"limit":      "{{ limit }}",
	}

	var params sendParams
	require.NoError(t, binder.BindToStruct(context.Background(), item, &params, settings))

	assert.Equal(t, "ses_1", params.SessionID)
	assert.Equal(t, "question: 2+2?", params.Prompt)
	assert.Equal(t, 25, params.Limit)
}

func TestBinder_MissingPathBindsEmpty(t *testing.T) {
	binder := NewBinder(DefaultBinderOptions())

	type params struct {
		Value string `json:"value"`
	}

	var p params
	err := binder.BindToStruct(context.Background(), map[string]any{}, &p, map[string]any{
		"value": "{{ nope }}",
	})
	require.NoError(t, err)

	assert.Empty(t, p.Value)
}

func TestBinder_PlainValuesPassThrough(t *testing.T) {
	binder := NewBinder(DefaultBinderOptions())

	type params struct {
		Title   string         `json:"title"`
		Options map[string]any `json:"options"`
	}

	var p params
	err := binder.BindToStruct(context.Background(), nil, &p, map[string]any{
		"title": "plain",
		"options": map[string]any{
			"nested": "{{ also.missing }}",
			"kept":   true,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "plain", p.Title)
	assert.Equal(t, true, p.Options["kept"])
}
