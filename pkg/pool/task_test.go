package pool

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFuncTask(t *testing.T) {
	called := false
	fn := func(ctx context.Context) error {
		called = true
		return nil
	}

	task := NewFuncTask(fn)

	assert.NotEmpty(t, task.ID())
	assert.True(t, strings.HasPrefix(task.ID(), "task-"))

	// Execute task
	err := task.Execute(context.Background())
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestNewFuncTask_UniqueIDs(t *testing.T) {
	fn := func(ctx context.Context) error {
		return nil
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewFuncTask(fn).ID()
		assert.False(t, seen[id], "duplicate task ID %s", id)
		seen[id] = true
	}
}

func TestNewFuncTaskWithID(t *testing.T) {
	fn := func(ctx context.Context) error {
		return nil
	}

	customID := "custom-task-123"
	task := NewFuncTaskWithID(customID, fn)

	assert.Equal(t, customID, task.ID())
}

func TestFuncTask_Execute(t *testing.T) {
	tests := []struct {
		name        string
		fn          func(ctx context.Context) error
		expectError bool
	}{
		{
			name: "successful execution",
			fn: func(ctx context.Context) error {
				return nil
			},
			expectError: false,
		},
		{
			name: "failed execution",
			fn: func(ctx context.Context) error {
				return fmt.Errorf("task failed")
			},
			expectError: true,
		},
		{
			name:        "nil function",
			fn:          nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewFuncTask(tt.fn)
			err := task.Execute(context.Background())

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
