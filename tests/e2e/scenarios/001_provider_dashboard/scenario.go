package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalResults   = 4800 // Total number of benchmark result rows to generate
	resultsPerProv = 1200 // totalResults / len(providerProfiles)
)

// providerProfiles define deterministic latency/cost shapes per provider. Each
// provider's rows cycle through a small set of TTFT offsets so the aggregated
// averages and rankings are exactly predictable.
var providerProfiles = []struct {
	provider    string
	model       string
	baseTTFT    float64 // ms; row TTFT = baseTTFT + (i%5)*10
	tps         float64
	costUSD     float64 // per 100-token call
	failEvery   int     // every Nth row fails (0 = never)
	expectOrder int     // expected position in the fastest ranking (0-based)
}{
	{provider: "groq", model: "llama-3.3-70b", baseTTFT: 80, tps: 500, costUSD: 0.0001, failEvery: 0, expectOrder: 0},
	{provider: "gemini", model: "gemini-2.0-flash", baseTTFT: 250, tps: 180, costUSD: 0.0004, failEvery: 400, expectOrder: 1},
	{provider: "openai", model: "gpt-4o-mini", baseTTFT: 420, tps: 95, costUSD: 0.0008, failEvery: 300, expectOrder: 2},
	{provider: "anthropic", model: "claude-3-5-haiku", baseTTFT: 600, tps: 70, costUSD: 0.002, failEvery: 200, expectOrder: 3},
}

// ### End - fixed configs

type benchmarkRow struct {
	Provider       string   `json:"provider"`
	Model          string   `json:"model"`
	InputTokens    int64    `json:"inputTokens"`
	OutputTokens   int64    `json:"outputTokens"`
	TotalLatencyMs float64  `json:"totalLatencyMs"`
	TTFTMs         *float64 `json:"ttftMs,omitempty"`
	TPS            *float64 `json:"tps,omitempty"`
	StatusCode     *int     `json:"statusCode,omitempty"`
	Success        bool     `json:"success"`
	CostUSD        float64  `json:"costUsd"`
	CreatedAt      string   `json:"createdAt"`
}

type batchToSend struct {
	batchIndex int
	jsonData   []byte
	isOriginal bool
}

type rankingsResponse struct {
	Window     string `json:"window"`
	SampleSize int    `json:"sampleSize"`
	Providers  []struct {
		Provider string  `json:"provider"`
		AvgTTFT  float64 `json:"avgTtft"`
	} `json:"providers"`
	TopFastest []struct {
		Provider string `json:"provider"`
	} `json:"topFastest"`
	ReliabilityRate float64 `json:"reliabilityRate"`
}

// main runs the e2e scenario: 001_provider_dashboard
//
// This scenario tests the end-to-end flow of benchmark result ingestion,
// provider-partitioned persistence, and dashboard aggregation. It sends 4,800
// deterministic benchmark rows across four providers to the API, with
// configurable duplicate batches to test idempotency handling.
//
// What it tests:
//   - Result batch ingestion via POST /api/results
//   - Idempotency key handling for duplicate batch detection
//   - Provider-partitioned queueing and Postgres persistence
//   - Dashboard snapshot aggregation via GET /api/rankings
//   - Fastest-provider ranking order against the known latency profiles
//
// Expected results:
//   - All original batches return 202 Accepted
//   - All duplicate batches return 409 Conflict (idempotency working)
//   - GET /api/rankings reports sampleSize == 4800 once the pipeline drains
//   - topFastest order is groq, gemini, openai, anthropic
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the bench-analytics API server
	itemsPerBatch := 20                // Number of result rows per batch. Original batches = totalResults / itemsPerBatch
	parallel := 2                      // Number of concurrent batch requests to send
	totalDuplicates := 200             // Total number of duplicate batches to send across all batches
	runID := "run-e2e-001"             // Run ID to use in requests
	fileStorageDir := ".tmp/data"      // Raw batch archive directory relative to project root
	wantCleanFileStorage := true       // If true, clean up the archive directory before running
	drainWait := 5 * time.Second       // How long to wait for the persistence pipeline to drain

	if totalResults%itemsPerBatch != 0 {
		fmt.Fprintf(os.Stderr, "ERROR: totalResults (%d) must be divisible by itemsPerBatch (%d)\n", totalResults, itemsPerBatch)
		os.Exit(1)
	}
	batchCount := totalResults / itemsPerBatch

	if wantCleanFileStorage {
		storagePath, err := resolveProjectPath(fileStorageDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleaning raw batch archive: %s\n", storagePath)
		if err := os.RemoveAll(storagePath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean archive directory: %v\n", err)
		}
		fmt.Println()
	}

	fmt.Println("Starting e2e scenario: 001_provider_dashboard")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("ITEMS_PER_BATCH: %d\n", itemsPerBatch)
	fmt.Printf("BATCH_COUNT: %d\n", batchCount)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TOTAL_DUPLICATES: %d\n", totalDuplicates)
	fmt.Printf("TOTAL_RESULTS: %d\n", totalResults)
	fmt.Println()

	// Generate all batches (original + duplicates)
	fmt.Println("Generating all batches (original + duplicates)...")
	rows := generateAllRows()
	batchesToSend := make([]batchToSend, 0, batchCount+totalDuplicates)
	for batchIndex := 1; batchIndex <= batchCount; batchIndex++ {
		jsonData, err := json.Marshal(rows[(batchIndex-1)*itemsPerBatch : batchIndex*itemsPerBatch])
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to generate JSON for batch %d: %v\n", batchIndex, err)
			os.Exit(1)
		}
		batchesToSend = append(batchesToSend, batchToSend{batchIndex: batchIndex, jsonData: jsonData, isOriginal: true})
	}

	// Distribute duplicates round-robin across the original batches.
	for i := 0; i < totalDuplicates; i++ {
		original := batchesToSend[i%batchCount]
		batchesToSend = append(batchesToSend, batchToSend{
			batchIndex: original.batchIndex,
			jsonData:   original.jsonData,
			isOriginal: false,
		})
	}
	fmt.Printf("Generated %d batches to send (%d original + %d duplicates)\n", len(batchesToSend), batchCount, totalDuplicates)
	fmt.Println()

	// Create worker pool for parallel batch sending
	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var sendErrors []error
	var acceptedRequest int64   // 202 status code
	var conflictedRequest int64 // 409 status code
	var otherRequest int64

	for _, batch := range batchesToSend {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(b batchToSend) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			statusCode, err := sendBatch(baseURL, runID, b)
			if err != nil {
				mu.Lock()
				sendErrors = append(sendErrors, fmt.Errorf("batch %d: %w", b.batchIndex, err))
				mu.Unlock()
				return
			}
			switch statusCode {
			case http.StatusAccepted:
				atomic.AddInt64(&acceptedRequest, 1)
			case http.StatusConflict:
				atomic.AddInt64(&conflictedRequest, 1)
			default:
				atomic.AddInt64(&otherRequest, 1)
			}
		}(batch)
	}
	wg.Wait()

	fmt.Println()
	if len(sendErrors) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d batch sends failed\n", len(sendErrors))
		os.Exit(1)
	}

	fmt.Println("All batches completed")
	fmt.Println("=== Statistics ===")
	fmt.Printf("Accepted request (202): %d\n", atomic.LoadInt64(&acceptedRequest))
	fmt.Printf("Conflicted request (409): %d\n", atomic.LoadInt64(&conflictedRequest))
	fmt.Printf("Other statuses: %d\n", atomic.LoadInt64(&otherRequest))
	fmt.Println()

	if got := atomic.LoadInt64(&conflictedRequest); got != int64(totalDuplicates) {
		fmt.Fprintf(os.Stderr, "ERROR: expected %d conflicted requests, got %d\n", totalDuplicates, got)
		os.Exit(1)
	}

	// Give the partitioned consumers time to drain into Postgres.
	fmt.Printf("Waiting %s for the persistence pipeline to drain...\n", drainWait)
	time.Sleep(drainWait)

	// Verify the dashboard sees every row and ranks providers as profiled.
	rankings, err := fetchRankings(baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to fetch rankings: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Rankings ===")
	fmt.Printf("Window: %s\n", rankings.Window)
	fmt.Printf("Sample size: %d\n", rankings.SampleSize)
	fmt.Printf("Reliability: %.1f%%\n", rankings.ReliabilityRate)

	if rankings.SampleSize != totalResults {
		fmt.Fprintf(os.Stderr, "ERROR: expected sample size %d, got %d\n", totalResults, rankings.SampleSize)
		os.Exit(1)
	}

	for _, profile := range providerProfiles {
		if profile.expectOrder >= len(rankings.TopFastest) {
			continue
		}
		got := rankings.TopFastest[profile.expectOrder].Provider
		if got != profile.provider {
			fmt.Fprintf(os.Stderr, "ERROR: expected %q at fastest position %d, got %q\n",
				profile.provider, profile.expectOrder, got)
			os.Exit(1)
		}
	}

	fmt.Println("Scenario completed successfully")
}

// resolveProjectPath resolves a path relative to the project root, found by
// walking up from the working directory to the nearest go.mod.
func resolveProjectPath(rel string) (string, error) {
	root, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return filepath.Abs(filepath.Join(root, rel))
		}
		parent := filepath.Dir(root)
		if parent == root {
			break
		}
		root = parent
	}
	return "", fmt.Errorf("could not find go.mod; run from inside the project")
}

func generateAllRows() []benchmarkRow {
	now := time.Now().UTC()
	rows := make([]benchmarkRow, 0, totalResults)
	for _, profile := range providerProfiles {
		for i := 0; i < resultsPerProv; i++ {
			failed := profile.failEvery > 0 && i%profile.failEvery == profile.failEvery-1

			row := benchmarkRow{
				Provider:     profile.provider,
				Model:        profile.model,
				InputTokens:  50,
				OutputTokens: 50,
				Success:      !failed,
				CostUSD:      profile.costUSD,
				CreatedAt:    now.Add(-time.Duration(i) * time.Second).Format(time.RFC3339Nano),
			}

			if failed {
				status := 500
				row.StatusCode = &status
				row.TotalLatencyMs = 30000
			} else {
				status := 200
				ttft := profile.baseTTFT + float64(i%5)*10
				tps := profile.tps
				row.StatusCode = &status
				row.TTFTMs = &ttft
				row.TPS = &tps
				row.TotalLatencyMs = ttft + 1000
			}

			rows = append(rows, row)
		}
	}
	return rows
}

func sendBatch(baseURL, runID string, batch batchToSend) (int, error) {
	// Same idempotency key for all duplicates of this batch.
	idempotencyKey := fmt.Sprintf("batch-%06d", batch.batchIndex)

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/results", bytes.NewReader(batch.jsonData))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-run-id", runID)
	req.Header.Set("idempotency-key", idempotencyKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	// 409 Conflict is expected for duplicates; other 4xx/5xx are failures.
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusConflict {
		return resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}

func fetchRankings(baseURL string) (*rankingsResponse, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(baseURL + "/api/rankings?window=24h")
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var rankings rankingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&rankings); err != nil {
		return nil, fmt.Errorf("failed to decode rankings: %w", err)
	}
	return &rankings, nil
}
