package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveSuccess(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveSuccess(120*time.Millisecond, 10, 2)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]bool{}
	for _, f := range families {
		byName[f.GetName()] = true
	}
	require.True(t, byName["blogbuilder_build_duration_seconds"])
	require.True(t, byName["blogbuilder_builds_total"])
	require.True(t, byName["blogbuilder_posts_published"])
}

func TestRecorder_Handler_ServesMetrics(t *testing.T) {
	r := NewRecorder(nil)
	r.ObserveSuccess(time.Second, 3, 0)
	r.ObserveFailure(time.Second)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `blogbuilder_builds_total{outcome="success"} 1`)
	require.Contains(t, body, `blogbuilder_builds_total{outcome="failure"} 1`)
	require.Contains(t, body, "blogbuilder_posts_published 3")
}
