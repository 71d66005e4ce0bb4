package errors

import (
	stderrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReelErrorError(t *testing.T) {
	testCases := []struct {
		name     string
		err      *ReelError
		expected string
	}{
		{
			name:     "message only",
			err:      &ReelError{Message: "boom"},
			expected: "boom",
		},
		{
			name:     "code and component",
			err:      NewValidationError(ErrCodeInvalidSlot, "bad slot").WithComponent("Grid"),
			expected: "[ERR_INVALID_SLOT] component:Grid bad slot",
		},
		{
			name:     "path and cause",
			err:      NewIOError(ErrCodeWriteFailed, "write failed", fmt.Errorf("disk full")).WithPath("src/Root.tsx"),
			expected: "[ERR_WRITE_FAILED] src/Root.tsx write failed: disk full",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestReelErrorIs(t *testing.T) {
	err := ErrTemplateNotFound("Terminal")

	assert.True(t, stderrors.Is(err, &ReelError{Type: ErrorTypeNotFound, Code: ErrCodeTemplateNotFound}))
	assert.False(t, stderrors.Is(err, &ReelError{Type: ErrorTypeNotFound, Code: ErrCodeThemeNotFound}))

	wrapped := fmt.Errorf("rendering: %w", err)
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.Equal(t, "Terminal", err.Component)
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, ErrorTypeIO, ErrCodeReadFailed, "read"))
	})

	t.Run("foreign error", func(t *testing.T) {
		cause := fmt.Errorf("permission denied")
		err := WrapIO(cause, ErrCodeReadFailed, "cannot read scenes", "scenes.yaml")

		require.NotNil(t, err)
		assert.Equal(t, ErrorTypeIO, err.Type)
		assert.Equal(t, "scenes.yaml", err.Path)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("reel error keeps context", func(t *testing.T) {
		inner := NewValidationError(ErrCodeInvalidScene, "missing type").
			WithComponent("Grid").
			WithContext("index", 2)
		err := WrapBuild(inner, ErrCodeRenderFailed, "render failed", "Grid")

		require.NotNil(t, err)
		assert.Equal(t, ErrorTypeBuild, err.Type)
		assert.Equal(t, 2, err.Context["index"])
		assert.True(t, stderrors.Is(err, inner))
	})
}

func TestConstructorsAssignTypes(t *testing.T) {
	assert.True(t, IsConflict(ErrProjectExists("demo")))
	assert.True(t, IsNotFound(ErrProjectNotFound("demo")))
	assert.True(t, IsNotFound(ErrThemeNotFound("neon")))
	assert.True(t, IsNotFound(ErrComponentNotFound("Widget")))
	assert.True(t, IsBuildError(NewBuildError(ErrCodeRenderFailed, "x", nil)))
	assert.Equal(t, ErrorTypeConfig, TypeOf(NewConfigError(ErrCodeConfigInvalid, "x")))
	assert.Equal(t, ErrorType(""), TypeOf(fmt.Errorf("plain")))
}

func TestErrorCollector(t *testing.T) {
	collector := NewErrorCollector()
	assert.False(t, collector.HasErrors())
	assert.NoError(t, collector.Err())

	collector.Add("Terminal", ErrTemplateNotFound("Terminal"))
	collector.Add("Banner", ErrTemplateNotFound("Banner"))
	collector.Add("Ignored", nil)

	require.Equal(t, 2, collector.Len())
	failures := collector.Failures()
	assert.Equal(t, "Banner", failures[0].Component)
	assert.Equal(t, "Terminal", failures[1].Component)

	err := collector.Err()
	require.Error(t, err)
	assert.True(t, IsBuildError(err))
	assert.Contains(t, err.Error(), "2 component(s) failed: Banner, Terminal")

	collector.Clear()
	assert.False(t, collector.HasErrors())
}

func TestErrorCollectorConcurrentAdd(t *testing.T) {
	collector := NewErrorCollector()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			collector.Add(fmt.Sprintf("Component%02d", n), fmt.Errorf("failed %d", n))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, collector.Len())
}
