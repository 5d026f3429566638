package metrics

import (
	"time"
)

// Stage labels for SummarizeStageDuration.
const (
	StageFetch = "fetch"
	StageRank  = "rank"
	StageTotal = "total"
)

// RecordSummarizeSuccess records a successful summarization run.
//
// Parameters:
//   - duration: end-to-end time of the run
//   - selected: number of sentences in the summary
//   - documentRunes: length of the summarized text in runes
func RecordSummarizeSuccess(duration time.Duration, selected, documentRunes int) {
	SummarizeRequestsTotal.WithLabelValues("success", "none").Inc()
	SummarizeStageDuration.WithLabelValues(StageTotal).Observe(duration.Seconds())
	SummarySentencesSelected.Observe(float64(selected))
	DocumentLengthRunes.Observe(float64(documentRunes))
}

// RecordSummarizeFailure records a failed run. errorKind is the label of the
// entity.ErrorKind that caused it.
func RecordSummarizeFailure(duration time.Duration, errorKind string) {
	SummarizeRequestsTotal.WithLabelValues("failure", errorKind).Inc()
	SummarizeStageDuration.WithLabelValues(StageTotal).Observe(duration.Seconds())
}

// RecordStageDuration records the time spent in one pipeline stage.
func RecordStageDuration(stage string, duration time.Duration) {
	SummarizeStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordContentFetchSuccess records a successful page fetch and the size of
// the extracted text.
//
// Example:
//
//	start := time.Now()
//	text, err := fetcher.FetchContent(ctx, url)
//	if err == nil {
//	    RecordContentFetchSuccess(time.Since(start), len(text))
//	}
func RecordContentFetchSuccess(duration time.Duration, size int) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	RecordStageDuration(StageFetch, duration)
	ContentFetchSize.Observe(float64(size))
}

// RecordContentFetchFailed records a failed page fetch.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	RecordStageDuration(StageFetch, duration)
}

// SetNLPResourcesLoaded updates the NLP readiness gauge.
func SetNLPResourcesLoaded(loaded bool) {
	if loaded {
		NLPResourcesLoaded.Set(1)
		return
	}
	NLPResourcesLoaded.Set(0)
}

// RecordRateLimitDecision counts one limiter decision.
func RecordRateLimitDecision(allowed bool) {
	if allowed {
		RateLimitDecisionsTotal.WithLabelValues("allowed").Inc()
		return
	}
	RateLimitDecisionsTotal.WithLabelValues("denied").Inc()
}

// SetRateLimitActiveClients updates the tracked client gauge.
func SetRateLimitActiveClients(n int) {
	RateLimitActiveClients.Set(float64(n))
}

// SetCircuitBreakerState records a breaker transition. state follows
// gobreaker's numbering.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
