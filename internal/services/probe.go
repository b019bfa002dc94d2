package services

import (
	"context"
	"net/http"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// ProbeTimeout bounds a single reachability check. Probes are advisory, so a
// slow service is reported as unreachable rather than holding up the caller.
const ProbeTimeout = 5 * time.Second

// probeConcurrency caps simultaneous probe requests.
const probeConcurrency = 3

// Status is the result of a single endpoint reachability check.
type Status struct {
	Capability Capability    `json:"capability"`
	BaseURL    string        `json:"base_url"`
	Reachable  bool          `json:"reachable"`
	Latency    time.Duration `json:"latency_ns"`
	Detail     string        `json:"detail,omitempty"`
}

// Probe checks every endpoint concurrently and returns one Status per
// capability, ordered by capability name. Reachability means the host
// answered at all: any HTTP status counts, since a 404 from the root path
// still proves the service is up.
func (c *Client) Probe(ctx context.Context, endpoints map[Capability]Endpoint) []Status {
	statuses := make([]Status, 0, len(endpoints))
	for _, ep := range endpoints {
		statuses = append(statuses, Status{Capability: ep.Capability, BaseURL: ep.BaseURL})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Capability < statuses[j].Capability })

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(probeConcurrency)
	for i := range statuses {
		st := &statuses[i]
		g.Go(func() error {
			st.Reachable, st.Latency, st.Detail = c.probeOne(ctx, st.BaseURL)
			return nil
		})
	}
	g.Wait()
	return statuses
}

// probeOne issues a single GET against the service root.
func (c *Client) probeOne(ctx context.Context, baseURL string) (bool, time.Duration, string) {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, http.NoBody)
	if err != nil {
		return false, 0, err.Error()
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return false, latency, err.Error()
	}
	defer resp.Body.Close()
	return true, latency, resp.Status
}
