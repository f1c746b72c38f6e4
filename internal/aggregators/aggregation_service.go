package aggregators

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"bench-analytics/internal/caches"
	"bench-analytics/internal/models"
	"bench-analytics/internal/rankings"
	"bench-analytics/internal/shared/loggers"
	"bench-analytics/internal/stores"
)

// DashboardSnapshot is the full payload behind the dashboard for one query
// window: aggregated provider summaries plus every derived card value. It is
// recomputed from the raw rows on every cache miss and carries no state
// between computations.
type DashboardSnapshot struct {
	Window      string    `json:"window"`
	GeneratedAt time.Time `json:"generatedAt"`
	SampleSize  int       `json:"sampleSize"`

	// Providers is ordered by first appearance in the source rows so that
	// the top-N lists below are deterministic under ties.
	Providers []*models.ProviderMetrics `json:"providers"`

	TopFastest    []*models.ProviderMetrics `json:"topFastest"`
	TopSlowest    []*models.ProviderMetrics `json:"topSlowest"`
	TopBestValue  []*models.ProviderMetrics `json:"topBestValue"`
	TopMostStable []*models.ProviderMetrics `json:"topMostStable"`

	SpeedGap        float64                    `json:"speedGap"`
	CostSpread      float64                    `json:"costSpread"`
	ReliabilityRate float64                    `json:"reliabilityRate"`
	Efficiency      []rankings.EfficiencyScore `json:"efficiency"`
	Stability       []rankings.StabilityRatio  `json:"stability"`
	MTBF            string                     `json:"mtbf"`
}

// ModelIdentity names one side of a head-to-head comparison.
type ModelIdentity struct {
	Provider string
	Model    string
}

// Comparison is the head-to-head payload for two provider+model identities.
type Comparison struct {
	Window  string                      `json:"window"`
	A       rankings.ComparisonSide     `json:"a"`
	B       rankings.ComparisonSide     `json:"b"`
	Metrics []rankings.MetricComparison `json:"metrics"`
}

//go:generate mockgen -source=aggregation_service.go -destination=./mocks/aggregation_service_mock.go -package=mocks
type AggregationService interface {
	// DashboardSnapshot serves the aggregated view for a window, from cache
	// when fresh enough, otherwise recomputed from the result store.
	DashboardSnapshot(ctx context.Context, window models.TimeWindow) (*DashboardSnapshot, error)

	// Compare computes the head-to-head view for two provider+model
	// identities over the same window. Never cached: the identity space is
	// too large to be worth it.
	Compare(ctx context.Context, window models.TimeWindow, a, b ModelIdentity) (*Comparison, error)
}

type aggregationService struct {
	resultStore stores.ResultStore
	cache       caches.SnapshotCache
	aggregator  ProviderAggregator
	maxRows     int
	topN        int
}

func NewAggregationService(resultStore stores.ResultStore, cache caches.SnapshotCache, aggregator ProviderAggregator, maxRows, topN int) AggregationService {
	return &aggregationService{
		resultStore: resultStore,
		cache:       cache,
		aggregator:  aggregator,
		maxRows:     maxRows,
		topN:        topN,
	}
}

func (s *aggregationService) DashboardSnapshot(ctx context.Context, window models.TimeWindow) (*DashboardSnapshot, error) {
	logger := loggers.Ctx(ctx)

	cacheKey := "dashboard:" + string(window)
	if payload, ok := s.cache.Get(ctx, cacheKey); ok {
		var snapshot DashboardSnapshot
		if err := json.Unmarshal(payload, &snapshot); err == nil {
			return &snapshot, nil
		}
		// A corrupt cache entry is treated as a miss.
		logger.Warn().Str("cache_key", cacheKey).Msg("discarding unreadable cached snapshot")
	}

	results, err := s.resultStore.ListResults(ctx, window, s.maxRows)
	if err != nil {
		return nil, errInternalResultStoreFailed(err)
	}

	snapshot := s.buildSnapshot(window, results)

	if payload, err := json.Marshal(snapshot); err == nil {
		s.cache.Set(ctx, cacheKey, payload)
	}

	metricSnapshotComputedTotal.WithLabelValues(string(window)).Inc()
	logger.Debug().
		Str("window", string(window)).
		Int("sample_size", snapshot.SampleSize).
		Int("providers", len(snapshot.Providers)).
		Msg("computed dashboard snapshot")

	return snapshot, nil
}

func (s *aggregationService) buildSnapshot(window models.TimeWindow, results []*models.BenchmarkResult) *DashboardSnapshot {
	return BuildSnapshot(s.aggregator, window, results, s.topN)
}

// BuildSnapshot runs the pure aggregation core over one window of rows. It is
// shared by the HTTP service and the offline CLI, which feeds it rows loaded
// from a file instead of the result store.
func BuildSnapshot(aggregator ProviderAggregator, window models.TimeWindow, results []*models.BenchmarkResult, topN int) *DashboardSnapshot {
	byProvider := aggregator.AggregateAll(results)

	providers := make([]*models.ProviderMetrics, 0, len(byProvider))
	for _, key := range ProvidersInOrder(results) {
		providers = append(providers, byProvider[key])
	}

	var successes int
	for _, r := range results {
		if r.Succeeded() {
			successes++
		}
	}

	return &DashboardSnapshot{
		Window:      string(window),
		GeneratedAt: time.Now().UTC(),
		SampleSize:  len(results),
		Providers:   providers,

		TopFastest:    rankings.TopFastest(providers, topN),
		TopSlowest:    rankings.TopSlowest(providers, topN),
		TopBestValue:  rankings.TopBestValue(providers, topN),
		TopMostStable: rankings.TopMostStable(providers, topN),

		SpeedGap:        rankings.SpeedGap(results),
		CostSpread:      rankings.CostSpread(providers),
		ReliabilityRate: rankings.ReliabilityRate(results),
		Efficiency:      rankings.EfficiencyScores(results),
		Stability:       rankings.StabilityRatios(results),
		MTBF:            rankings.MTBFLabel(len(results), successes),
	}
}

func (s *aggregationService) Compare(ctx context.Context, window models.TimeWindow, a, b ModelIdentity) (*Comparison, error) {
	if a.Provider == "" || b.Provider == "" {
		return nil, errCompareValidationFailed("both comparison sides need a provider", nil)
	}

	results, err := s.resultStore.ListResults(ctx, window, s.maxRows)
	if err != nil {
		return nil, errInternalResultStoreFailed(err)
	}

	return BuildComparison(s.aggregator, window, results, a, b), nil
}

// BuildComparison computes the head-to-head payload over one window of rows.
// Shared by the HTTP service and the offline CLI.
func BuildComparison(aggregator ProviderAggregator, window models.TimeWindow, results []*models.BenchmarkResult, a, b ModelIdentity) *Comparison {
	sideA := buildSide(aggregator, a, results)
	sideB := buildSide(aggregator, b, results)

	return &Comparison{
		Window:  string(window),
		A:       sideA,
		B:       sideB,
		Metrics: rankings.CompareSides(sideA, sideB),
	}
}

// buildSide filters the window's rows down to one provider+model identity and
// aggregates them. An identity with no matching rows yields an all-default
// side, not an error.
func buildSide(aggregator ProviderAggregator, identity ModelIdentity, results []*models.BenchmarkResult) rankings.ComparisonSide {
	providerKey := strings.ToLower(strings.TrimSpace(identity.Provider))

	var matched []*models.BenchmarkResult
	for _, r := range results {
		if r.ProviderKey() != providerKey {
			continue
		}
		if identity.Model != "" && !strings.EqualFold(r.ModelName(), identity.Model) {
			continue
		}
		matched = append(matched, r)
	}

	metrics := aggregator.AggregateProvider(providerKey, matched)
	return rankings.SideFromMetrics(metrics, identity.Model, rankings.ReliabilityRate(matched))
}
