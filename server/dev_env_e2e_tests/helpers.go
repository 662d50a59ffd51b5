//go:build e2e
// +build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

// env returns the value of key or the provided fallback when the env var is unset.
func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ping checks that a GET request to the given URL returns HTTP 200.
// It is used to quickly skip tests when the dev stack is not running.
func ping(url string) error {
	r, err := http.Get(url)
	if err != nil {
		return err
	}
	_ = r.Body.Close()
	if r.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", r.StatusCode)
	}
	return nil
}

// waitForHealthy polls /api/health until the service reports "healthy" or
// the timeout elapses.
func waitForHealthy(t *testing.T, baseURL string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/api/health")
		if err == nil {
			var data struct {
				Status string `json:"status"`
			}
			decErr := json.NewDecoder(resp.Body).Decode(&data)
			_ = resp.Body.Close()
			if decErr == nil && resp.StatusCode == http.StatusOK && data.Status == "healthy" {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("roster service not healthy within %s", timeout)
}

// baseURL returns the service under test, skipping when it is not running.
func baseURL(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	url := env("ROSTER_API", "http://localhost:5000")
	if err := ping(url + "/api/health"); err != nil {
		t.Skipf("service %s unreachable: %v", url, err)
	}
	waitForHealthy(t, url, 5*time.Second)
	return url
}
