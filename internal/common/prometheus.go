package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	MintSubmissionTotal        = "mint_submission_total"
	ProfileFetchTotal          = "profile_fetch_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		MintSubmissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MintSubmissionTotal,
			Help: "Count of all mint transaction submissions",
		}, []string{"slot", "result"}),
		ProfileFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ProfileFetchTotal,
			Help: "Count of all profile fetches",
		}, []string{"result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)
