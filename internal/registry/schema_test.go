package registry

import (
	"testing"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	r := NewDefault()

	testCases := []struct {
		name      string
		component string
		config    map[string]any
		wantErr   string
	}{
		{
			name:      "valid title",
			component: "TitleScene",
			config:    map[string]any{"text": "Hello", "variant": "bold"},
		},
		{
			name:      "missing required",
			component: "TitleScene",
			config:    map[string]any{"variant": "bold"},
			wantErr:   "text is required",
		},
		{
			name:      "bad enum",
			component: "LowerThird",
			config:    map[string]any{"name": "Ada", "start_time": 1.0, "position": "middle"},
			wantErr:   `position "middle" is not one of`,
		},
		{
			name:      "wrong scalar type",
			component: "CodeBlock",
			config:    map[string]any{"code": "x", "start_time": 0, "show_line_numbers": "yes"},
			wantErr:   "show_line_numbers must be a boolean",
		},
		{
			name:      "number accepts ints and floats",
			component: "Counter",
			config:    map[string]any{"end_value": 10, "start_value": 1.5, "start_time": 0},
		},
		{
			name:      "slots are never required",
			component: "PiPLayout",
			config:    map[string]any{},
		},
		{
			name:      "unknown keys allowed",
			component: "DemoBox",
			config:    map[string]any{"anything": true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := r.ValidateConfig(tc.component, tc.config)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	schema, _ := NewDefault().Get("LowerThird")
	err := schema.Validate(map[string]any{"variant": "neon"})
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "start_time is required")
	assert.Contains(t, msg, `variant "neon"`)
}

func TestApplyDefaults(t *testing.T) {
	schema, _ := NewDefault().Get("CodeBlock")
	out := schema.ApplyDefaults(map[string]any{"code": "fmt.Println()", "variant": "terminal"})

	assert.Equal(t, "terminal", out["variant"])
	assert.Equal(t, "javascript", out["language"])
	assert.Equal(t, true, out["show_line_numbers"])
	assert.Equal(t, "fade_in", out["animation"])
	assert.NotContains(t, out, "start_time")
}

func TestRequiredFields(t *testing.T) {
	schema, _ := NewDefault().Get("LowerThird")
	assert.Equal(t, []string{"name", "start_time"}, schema.RequiredFields())
}
