package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCountersAreExposed(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.SessionOp("set")
	m.SessionOp("set")
	m.DocumentGenerated("self_import")
	m.Request("GET", 200, 0.01)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`agentreport_session_operations_total{op="set"} 2`,
		`agentreport_documents_generated_total{kind="self_import"} 1`,
		`agentreport_http_requests_total{method="GET",status="200"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output lacks %q", want)
		}
	}
}

func TestIndependentRegistries(t *testing.T) {
	if _, err := New(); err != nil {
		t.Fatal(err)
	}
	if _, err := New(); err != nil {
		t.Fatalf("second New: %v", err)
	}
}
