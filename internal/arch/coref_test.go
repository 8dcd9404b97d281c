package arch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	known := []string{"Payment Service", "API Gateway", "PostgreSQL"}

	tests := []struct {
		mention string
		want    string
		ok      bool
	}{
		{"payment service", "Payment Service", true},
		{"the payment service", "Payment Service", true},
		{"service", "Payment Service", true},
		{"gateway", "API Gateway", true},
		{"PostgreSQL database", "PostgreSQL", true},
		{"postgres", "PostgreSQL", true},
		{"message broker", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := Resolve(tc.mention, known)
		assert.Equal(t, tc.ok, ok, "Resolve(%q) ok", tc.mention)
		assert.Equal(t, tc.want, got, "Resolve(%q)", tc.mention)
	}
}

func TestResolveExactOutranksSuffix(t *testing.T) {
	got, ok := Resolve("gateway", []string{"Payment Gateway", "Gateway"})
	assert.True(t, ok)
	assert.Equal(t, "Gateway", got)
}

func TestResolveTieStaysUnresolved(t *testing.T) {
	_, ok := Resolve("gateway", []string{"Payment Gateway", "API Gateway"})
	assert.False(t, ok)
}
