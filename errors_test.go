package identity_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	identity "github.com/identikit/go-identity-mongo"
)

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name: "write exception with duplicate code",
			err: mongo.WriteException{
				WriteErrors: mongo.WriteErrors{
					{Code: 11000, Message: "E11000 duplicate key error"},
				},
			},
			expected: true,
		},
		{
			name: "unrelated write exception",
			err: mongo.WriteException{
				WriteErrors: mongo.WriteErrors{
					{Code: 2, Message: "bad value"},
				},
			},
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: false,
		},
		{
			name:     "nil",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, identity.IsDuplicateKey(tt.err))
		})
	}
}

func TestIsMultipleResults(t *testing.T) {
	wrapped := fmt.Errorf("users filter: %w", identity.ErrMultipleResults)

	assert.True(t, identity.IsMultipleResults(wrapped))
	assert.True(t, identity.IsMultipleResults(identity.ErrMultipleResults))
	assert.False(t, identity.IsMultipleResults(errors.New("boom")))
	assert.False(t, identity.IsMultipleResults(nil))
}
