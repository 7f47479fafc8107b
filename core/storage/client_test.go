package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("Strips Scheme", func(t *testing.T) {
		client, err := NewClient(Config{Endpoint: "http://localhost:9000"})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("Invalid Endpoint", func(t *testing.T) {
		client, err := NewClient(Config{Endpoint: "://bad endpoint"})
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}
