package domain

// OpsMetrics is a read-back snapshot of the console's own operational
// counters, served to the admin portal alongside the raw Prometheus export.
type OpsMetrics struct {
	TotalRequests  int64   `json:"totalRequests"`
	ErrorRate      float64 `json:"errorRate"`
	CoreAPIErrors  int64   `json:"coreApiErrors"`
	CacheHitRate   float64 `json:"cacheHitRate"`
	StaleResponses int64   `json:"staleResponses"`
	Period         string  `json:"period"`
}
