package remoteproxy

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const probeTimeout = 3 * time.Second

// HealthChecker probes a proxy endpoint with a lightweight GET to its health
// route. It implements domain.HealthChecker so the factory's selection policy
// can be tested with a stub.
type HealthChecker struct {
	httpClient *http.Client
}

// NewHealthChecker creates a health checker with a short probe timeout.
func NewHealthChecker(httpClient *http.Client) *HealthChecker {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: probeTimeout}
	}
	return &HealthChecker{httpClient: httpClient}
}

// Healthy reports whether the endpoint answers its health route with a 2xx.
func (h *HealthChecker) Healthy(ctx context.Context, endpoint string) bool {
	if endpoint == "" {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	probeURL := strings.TrimRight(endpoint, "/") + "/health"
	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, probeURL, nil)
	if err != nil {
		return false
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
