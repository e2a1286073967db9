package metrics

import "time"

// RecordDatabaseQuery records the latency and outcome of one repository call
func RecordDatabaseQuery(operation string, duration time.Duration, err error) {
	m := Get()
	status := "success"
	if err != nil {
		status = "error"
	}
	m.DatabaseQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	m.DatabaseQueriesTotal.WithLabelValues(operation, status).Inc()
}

// RecordRecommendation records one recommendation request
func RecordRecommendation(outcome string, candidates int, duration time.Duration) {
	m := Get()
	m.RecommendationRequests.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		m.RecommendationCandidates.Observe(float64(candidates))
		m.RecommendationDuration.Observe(duration.Seconds())
	}
}

// RecordSimilarityMatch counts which scoring rule decided a comparison
func RecordSimilarityMatch(kind string) {
	Get().SimilarityMatches.WithLabelValues(kind).Inc()
}

// SetSimilarityTableRelations publishes the size of the loaded genre table
func SetSimilarityTableRelations(n int) {
	Get().SimilarityTableRelations.Set(float64(n))
}

// RecordError counts an error surfaced by an endpoint
func RecordError(errorType, endpoint string) {
	Get().ErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}
