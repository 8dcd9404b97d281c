package canon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
enabled: true
strictness: moderate
component_rules:
  enabled: true
  patterns:
    billing:
      - "billing"
    billing_platform:
      - "billing engine"
environment_rules:
  enabled: true
  patterns:
    qa:
      - "quality assurance"
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "normalization.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func loadTest(t *testing.T) *Canonicalizer {
	t.Helper()
	c, err := Load(writeConfig(t, testConfig), nil)
	require.NoError(t, err)
	return c
}

func TestNormalizeFixedTableFirstMatchWins(t *testing.T) {
	c := loadTest(t)

	tests := []struct {
		cat  Category
		in   string
		want string
	}{
		{CategoryComponent, "the PostgreSQL database", "PostgreSQL"},
		{CategoryComponent, "postgres", "PostgreSQL"},
		{CategoryComponent, "Redis cache", "Redis"},
		{CategoryComponent, "backend services", "Backend Service"},
		{CategoryDevice, "desktop browsers", "Web Browser"},
		{CategoryDevice, "web browser", "Web Browser"},
		{CategoryDevice, "a mobile phone", "Mobile Device"},
		{CategoryNode, "kubernetes cluster", "Kubernetes"},
		{CategoryNode, "application server", "Server"},
		{CategoryEnvironment, "k8s", "Kubernetes"},
		{CategoryExternalSystem, "stripe payments", "Stripe"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, c.Normalize(tc.cat, tc.in), "Normalize(%s, %q)", tc.cat, tc.in)
	}
}

func TestNormalizeConfigLongestMatchWins(t *testing.T) {
	c := loadTest(t)

	// both patterns match; "billing engine" spans more characters
	assert.Equal(t, "Billing Platform", c.Normalize(CategoryComponent, "shared billing engine"))
	assert.Equal(t, "Billing", c.Normalize(CategoryComponent, "billing module"))
}

func TestNormalizeEnvironmentKeyIsUppercased(t *testing.T) {
	c := loadTest(t)
	assert.Equal(t, "QA", c.Normalize(CategoryEnvironment, "quality assurance"))
}

func TestNormalizeCleanFallback(t *testing.T) {
	c := loadTest(t)

	assert.Equal(t, "Payment Service", c.Normalize(CategoryComponent, "the   payment    service"))
	assert.Equal(t, "Email Gateway", c.Normalize(CategoryComponent, "via email gateway"))
	assert.Equal(t, "", c.Normalize(CategoryComponent, "   "))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	c := loadTest(t)

	inputs := []struct {
		cat Category
		in  string
	}{
		{CategoryComponent, "the PostgreSQL database"},
		{CategoryComponent, "shared billing engine"},
		{CategoryComponent, "an order fulfilment worker"},
		{CategoryDevice, "desktop browser"},
		{CategoryNode, "linux servers"},
		{CategoryEnvironment, "quality assurance"},
	}
	for _, tc := range inputs {
		once := c.Normalize(tc.cat, tc.in)
		assert.Equal(t, once, c.Normalize(tc.cat, once), "Normalize(%s, %q) not stable", tc.cat, tc.in)
	}
}

func TestNormalizeKeepsConfigCanonicals(t *testing.T) {
	c := loadTest(t)

	// a canonical containing a shorter variant must not re-match it
	assert.Equal(t, "Billing Platform", c.Normalize(CategoryComponent, "Billing Platform"))
	assert.Equal(t, "Billing", c.Normalize(CategoryComponent, "Billing"))
	assert.Equal(t, "QA", c.Normalize(CategoryEnvironment, "QA"))
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestReloadFailureKeepsOldRules(t *testing.T) {
	path := writeConfig(t, testConfig)
	c, err := Load(path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{{{ not yaml"), 0o644))
	assert.Error(t, c.Reload())

	assert.Equal(t, "Billing Platform", c.Normalize(CategoryComponent, "billing engine"))
}

func TestPyTitle(t *testing.T) {
	assert.Equal(t, "Order Item", pyTitle("order item"))
	assert.Equal(t, "Api Gateway", pyTitle("API gateway"))
	assert.Equal(t, "File-Based Store", pyTitle("file-based store"))
}
