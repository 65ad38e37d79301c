package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSample = NewDomainError("SAMPLE", "sample failure")

func TestDomainError_WithContext_KeepsTemplateUntouched(t *testing.T) {
	// Act
	err := errSample.WithContext("key", "abc", "count", 3)

	// Assert
	assert.Equal(t, "sample failure (context: count=3, key=abc)", err.Error())
	assert.Equal(t, "sample failure", errSample.Error())
	assert.Empty(t, errSample.Context)
}

func TestDomainError_Is_MatchesByCodeThroughWrapping(t *testing.T) {
	// Arrange
	wrapped := fmt.Errorf("saving: %w", errSample.WithContext("path", "/tmp/x"))
	other := NewDomainError("OTHER", "sample failure")

	// Assert
	assert.ErrorIs(t, wrapped, errSample)
	assert.False(t, errors.Is(wrapped, other))
}

func TestDomainError_WithContext_OddArgumentsPanics(t *testing.T) {
	assert.Panics(t, func() {
		_ = errSample.WithContext("dangling")
	})
}
