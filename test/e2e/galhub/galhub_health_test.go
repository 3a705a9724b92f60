package galhub_test

import (
	"testing"

	"github.com/galhub/galhub/pkg/galhubsdk"
)

// TestLivezEndpoint verifies the liveness probe.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := galhubsdk.NewClient(baseURL)

	health, err := client.Livez(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzEndpoint verifies the readiness probe, including the
// database check.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := galhubsdk.NewClient(baseURL)

	health, err := client.Readyz(t.Context())
	assertHealthy(t, health, err)
}
