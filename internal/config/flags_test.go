package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_Set_Valid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHost string
		wantPort int
	}{
		{"localhost", "localhost:8080", "localhost", 8080},
		{"ip address", "127.0.0.1:9090", "127.0.0.1", 9090},
		{"empty host", ":8080", "", 8080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			require.NoError(t, a.Set(tt.input))
			assert.Equal(t, tt.wantHost, a.Host)
			assert.Equal(t, tt.wantPort, a.Port)
		})
	}
}

func TestNetAddress_Set_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no colon", "localhost8080"},
		{"non-numeric port", "localhost:abc"},
		{"zero port", "localhost:0"},
		{"bad ip", "999.999.0.1:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			require.Error(t, a.Set(tt.input))
		})
	}
}

func TestNetAddress_String(t *testing.T) {
	a := NetAddress{Host: "localhost", Port: 8080}
	assert.Equal(t, "localhost:8080", a.String())

	var zero NetAddress
	assert.Empty(t, zero.String())
}
