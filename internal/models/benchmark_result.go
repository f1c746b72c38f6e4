package models

import (
	"strings"
	"time"
)

const (
	// UnknownProvider is the sentinel group for rows with no resolvable provider.
	UnknownProvider = "unknown"
	// UnknownModel is the sentinel display value for rows with no resolvable model.
	UnknownModel = "Unknown"
)

// NameRef is the joined form of a provider/model reference as delivered by the
// relational backend when the query selects the related row instead of the
// de-normalized string column.
type NameRef struct {
	Name string `json:"name"`
}

// BenchmarkResult is one measured API call against a model provider.
//
// TTFTMs, TPS and StatusCode are pointers because the measurement pipeline is a
// live, imperfect process: a failed request has no time-to-first-token, a
// non-streaming probe has no throughput sample. Absent values are never an
// error; the aggregation core degrades to documented defaults instead.
//
// Example JSON (flat form):
//
//	{
//	  "id": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
//	  "runId": "run-2026-01-14T10:00",
//	  "provider": "groq",
//	  "model": "llama-3.3-70b",
//	  "inputTokens": 50,
//	  "outputTokens": 50,
//	  "totalLatencyMs": 412.5,
//	  "ttftMs": 98.2,
//	  "tps": 512.0,
//	  "statusCode": 200,
//	  "success": true,
//	  "costUsd": 0.001,
//	  "createdAt": "2026-01-14T10:00:03Z"
//	}
//
// The joined form carries "providers": {"name": "groq"} and
// "models": {"name": "llama-3.3-70b"} instead of the flat strings.
type BenchmarkResult struct {
	ID    string `json:"id"`
	RunID string `json:"runId"`

	Provider    string   `json:"provider,omitempty"`
	Model       string   `json:"model,omitempty"`
	ProviderRef *NameRef `json:"providers,omitempty"`
	ModelRef    *NameRef `json:"models,omitempty"`

	InputTokens  int64 `json:"inputTokens"`
	OutputTokens int64 `json:"outputTokens"`

	TotalLatencyMs float64  `json:"totalLatencyMs"`
	TTFTMs         *float64 `json:"ttftMs,omitempty"`
	TPS            *float64 `json:"tps,omitempty"`

	StatusCode   *int    `json:"statusCode,omitempty"`
	Success      bool    `json:"success"`
	ErrorMessage *string `json:"errorMessage,omitempty"`

	CostUSD float64 `json:"costUsd"`

	CreatedAt time.Time `json:"createdAt"`
}

// ProviderKey resolves the grouping key for a result. Precedence: flat provider
// field first, then the joined providers.name, then the "unknown" sentinel.
// The key is lower-cased and trimmed so that "Groq" and "groq " group together.
func (r *BenchmarkResult) ProviderKey() string {
	if key := strings.ToLower(strings.TrimSpace(r.Provider)); key != "" {
		return key
	}
	if r.ProviderRef != nil {
		if key := strings.ToLower(strings.TrimSpace(r.ProviderRef.Name)); key != "" {
			return key
		}
	}
	return UnknownProvider
}

// ModelName resolves the model display name. Same precedence as ProviderKey:
// flat field, joined field, sentinel. Case is preserved.
func (r *BenchmarkResult) ModelName() string {
	if name := strings.TrimSpace(r.Model); name != "" {
		return name
	}
	if r.ModelRef != nil {
		if name := strings.TrimSpace(r.ModelRef.Name); name != "" {
			return name
		}
	}
	return UnknownModel
}

// TotalTokens is the sum of input and output tokens for the call.
func (r *BenchmarkResult) TotalTokens() int64 {
	return r.InputTokens + r.OutputTokens
}

// HasTTFT reports whether the result carries a usable time-to-first-token
// sample (present and strictly positive).
func (r *BenchmarkResult) HasTTFT() bool {
	return r.TTFTMs != nil && *r.TTFTMs > 0
}

// Succeeded reports whether the call outcome counts as a success for
// reliability purposes: either the success flag is set or the status code
// is 200.
func (r *BenchmarkResult) Succeeded() bool {
	return r.Success || (r.StatusCode != nil && *r.StatusCode == 200)
}

// DisplayName derives a human-readable provider name from a provider key by
// capitalizing its first letter. "groq" -> "Groq", "unknown" -> "Unknown".
func DisplayName(providerKey string) string {
	if providerKey == "" {
		return UnknownModel
	}
	return strings.ToUpper(providerKey[:1]) + providerKey[1:]
}
