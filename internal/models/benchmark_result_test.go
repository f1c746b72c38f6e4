package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBenchmarkResult_ProviderKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   BenchmarkResult
		expected string
	}{
		{
			name:     "flat field wins over joined field",
			result:   BenchmarkResult{Provider: "Groq", ProviderRef: &NameRef{Name: "openai"}},
			expected: "groq",
		},
		{
			name:     "joined field used when flat is absent",
			result:   BenchmarkResult{ProviderRef: &NameRef{Name: "OpenAI"}},
			expected: "openai",
		},
		{
			name:     "whitespace-only flat field falls through",
			result:   BenchmarkResult{Provider: "   ", ProviderRef: &NameRef{Name: "mistral"}},
			expected: "mistral",
		},
		{
			name:     "no provider at all maps to unknown sentinel",
			result:   BenchmarkResult{},
			expected: UnknownProvider,
		},
		{
			name:     "empty joined name maps to unknown sentinel",
			result:   BenchmarkResult{ProviderRef: &NameRef{Name: ""}},
			expected: UnknownProvider,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.result.ProviderKey())
		})
	}
}

func TestBenchmarkResult_ModelName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   BenchmarkResult
		expected string
	}{
		{
			name:     "flat field wins and preserves case",
			result:   BenchmarkResult{Model: "Llama-3.3-70B", ModelRef: &NameRef{Name: "other"}},
			expected: "Llama-3.3-70B",
		},
		{
			name:     "joined field used when flat is absent",
			result:   BenchmarkResult{ModelRef: &NameRef{Name: "gpt-4o"}},
			expected: "gpt-4o",
		},
		{
			name:     "no model at all maps to Unknown sentinel",
			result:   BenchmarkResult{},
			expected: UnknownModel,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.result.ModelName())
		})
	}
}

func TestBenchmarkResult_Succeeded(t *testing.T) {
	t.Parallel()

	status200 := 200
	status500 := 500

	tests := []struct {
		name     string
		result   BenchmarkResult
		expected bool
	}{
		{name: "success flag set", result: BenchmarkResult{Success: true}, expected: true},
		{name: "status 200 without flag", result: BenchmarkResult{StatusCode: &status200}, expected: true},
		{name: "status 500 without flag", result: BenchmarkResult{StatusCode: &status500}, expected: false},
		{name: "no flag no status", result: BenchmarkResult{}, expected: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.result.Succeeded())
		})
	}
}

func TestBenchmarkResult_HasTTFT(t *testing.T) {
	t.Parallel()

	positive := 120.5
	zero := 0.0
	negative := -5.0

	assert.False(t, (&BenchmarkResult{}).HasTTFT())
	assert.False(t, (&BenchmarkResult{TTFTMs: &zero}).HasTTFT())
	assert.False(t, (&BenchmarkResult{TTFTMs: &negative}).HasTTFT())
	assert.True(t, (&BenchmarkResult{TTFTMs: &positive}).HasTTFT())
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Groq", DisplayName("groq"))
	assert.Equal(t, "Unknown", DisplayName("unknown"))
	assert.Equal(t, "Unknown", DisplayName(""))
}
