package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownPorts(t *testing.T) {
	tests := []struct {
		port uint16
		name string
		risk RiskLevel
	}{
		{3306, "MySQL", Critical},
		{5432, "PostgreSQL", Critical},
		{27017, "MongoDB", Critical},
		{6379, "Redis", High},
		{9200, "Elasticsearch", High},
		{11211, "Memcached", High},
		{22, "SSH", Critical},
		{53, "DNS", Critical},
		{2375, "Docker", Critical},
		{6443, "Kubernetes", Critical},
		{3000, "Dev Server", Low},
		{5173, "Vite", Low},
		{8080, "HTTP Alt", Low},
	}
	for _, tc := range tests {
		s := Lookup(tc.port)
		require.NotNil(t, s, "port %d", tc.port)
		assert.Equal(t, tc.name, s.Name, "port %d", tc.port)
		assert.Equal(t, tc.risk, s.Risk, "port %d", tc.port)
	}
}

func TestLookupUnknownPort(t *testing.T) {
	assert.Nil(t, Lookup(54321))
}

func TestRequiresConfirmation(t *testing.T) {
	assert.True(t, RequiresConfirmation(3306))  // MySQL - Critical
	assert.True(t, RequiresConfirmation(22))    // SSH - Critical
	assert.True(t, RequiresConfirmation(6379))  // Redis - High
	assert.False(t, RequiresConfirmation(3000)) // Dev server - Low
	assert.False(t, RequiresConfirmation(80))   // HTTP - Medium
	assert.False(t, RequiresConfirmation(65432))
}

func TestRequiresConfirmationMatchesLookupTier(t *testing.T) {
	for _, s := range All() {
		want := s.Risk == High || s.Risk == Critical
		got := RequiresConfirmation(s.Port)
		// duplicate port entries resolve to the first row
		first := Lookup(s.Port)
		if first.Name != s.Name {
			want = first.Risk == High || first.Risk == Critical
		}
		assert.Equal(t, want, got, "port %d", s.Port)
	}
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "PostgreSQL", ShortName(5432))
	assert.Equal(t, "Ollama", ShortName(11434))
	assert.Equal(t, "", ShortName(65432))
}

func TestRiskLevelOrdering(t *testing.T) {
	assert.Less(t, Low, Medium)
	assert.Less(t, Medium, High)
	assert.Less(t, High, Critical)
}

func TestRiskLevelLabels(t *testing.T) {
	assert.Equal(t, "Low Risk", Low.String())
	assert.Equal(t, "CRITICAL", Critical.String())
}
