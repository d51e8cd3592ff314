package network

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDirect(t *testing.T) {
	client, err := NewClient("")
	require.NoError(t, err)
	assert.Nil(t, client.Transport)
	assert.Equal(t, clientTimeout, client.Timeout)
}

func TestNewClientSOCKS5(t *testing.T) {
	client, err := NewClient("127.0.0.1:9050")
	require.NoError(t, err)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, transport.DialContext)
}
