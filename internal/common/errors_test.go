// File: internal/common/errors_test.go
package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetailsLeavesSentinelUntouched(t *testing.T) {
	detailed := ErrNotFound.WithDetails("User not found with this Firebase UID.")

	assert.Nil(t, ErrNotFound.Details)
	assert.Equal(t, "User not found with this Firebase UID.", detailed.Details)
	assert.Equal(t, ErrNotFound.StatusCode, detailed.StatusCode)
}

func TestErrorsIsMatchesDetailedCopyAgainstSentinel(t *testing.T) {
	detailed := ErrNotFound.WithDetails("Listing not found.")

	assert.True(t, errors.Is(detailed, ErrNotFound))
	assert.False(t, errors.Is(detailed, ErrConflict))

	wrapped := fmt.Errorf("loading listing: %w", detailed)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestIsAPIErrorUnwrapsDetailedCopies(t *testing.T) {
	wrapped := fmt.Errorf("repo: %w", ErrConflict.WithDetails("duplicate firebase uid"))

	apiErr, ok := IsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrConflict.Code, apiErr.Code)
}
