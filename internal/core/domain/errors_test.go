package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrMissingField", ErrMissingField},
		{"ErrUnknownSource", ErrUnknownSource},
		{"ErrSpawn", ErrSpawn},
		{"ErrStreamEnded", ErrStreamEnded},
		{"ErrWorkspaceInvalid", ErrWorkspaceInvalid},
		{"ErrSourceUnavailable", ErrSourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrStreamEnded_Message(t *testing.T) {
	assert.Equal(t, "process ended unexpectedly", ErrStreamEnded.Error())
}

// TestErrors_Wrapping tests that wrapped sentinels survive errors.Is
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: path (required for filesystem source)", ErrMissingField)
	assert.True(t, errors.Is(wrapped, ErrMissingField))
	assert.False(t, errors.Is(wrapped, ErrUnknownSource))

	spawn := fmt.Errorf("%w: exec: \"uv\": executable file not found in $PATH", ErrSpawn)
	assert.True(t, errors.Is(spawn, ErrSpawn))
	assert.Contains(t, spawn.Error(), "uv")
}

func TestSyncError(t *testing.T) {
	err := &SyncError{Source: SourceFab, Stderr: "No solution found when resolving dependencies\n"}

	assert.Contains(t, err.Error(), "dependency sync failed")
	assert.Contains(t, err.Error(), "No solution found")

	var target *SyncError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, SourceFab, target.Source)
}

func TestIsSyncFailure(t *testing.T) {
	bare := &SyncError{Source: SourceUAS, Stderr: "network unreachable\n"}
	assert.True(t, IsSyncFailure(bare))

	wrapped := fmt.Errorf("preparing marketplace run: %w", bare)
	assert.True(t, IsSyncFailure(wrapped))

	assert.False(t, IsSyncFailure(ErrSpawn))
	assert.False(t, IsSyncFailure(nil))
}
