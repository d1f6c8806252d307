package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCountsRequestsAndMutations(t *testing.T) {
	r := NewRecorder()

	r.ObserveRequest("get_teams", 200, 10*time.Millisecond)
	r.ObserveRequest("get_teams", 200, 5*time.Millisecond)
	r.ObserveRequest("transfer_player", 0, time.Millisecond)
	r.RecordMutation("transfer", OutcomeRejected)
	r.RecordCommand("teams")

	if got := testutil.ToFloat64(r.requests.WithLabelValues("get_teams", "200")); got != 2 {
		t.Fatalf("expected 2 get_teams requests, got %v", got)
	}
	if got := testutil.ToFloat64(r.requests.WithLabelValues("transfer_player", "error")); got != 1 {
		t.Fatalf("expected transport failure labelled error, got %v", got)
	}
	if got := testutil.ToFloat64(r.MutationCounter("transfer", OutcomeRejected)); got != 1 {
		t.Fatalf("expected 1 rejected transfer, got %v", got)
	}
	if got := testutil.ToFloat64(r.commands.WithLabelValues("teams")); got != 1 {
		t.Fatalf("expected 1 teams command, got %v", got)
	}
}

func TestRecorderHandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.RecordMutation("remove", OutcomeOK)

	rr := httptest.NewRecorder()
	r.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), `auction_bot_mutations_total{action="remove",outcome="ok"} 1`) {
		t.Fatalf("expected mutation counter in output, got:\n%s", body)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.ObserveRequest("x", 200, time.Second)
	r.RecordMutation("transfer", OutcomeOK)
	r.RecordCommand("help")

	rr := httptest.NewRecorder()
	r.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	if rr.Code != 404 {
		t.Fatalf("expected 404 from nil recorder handler, got %d", rr.Code)
	}
}
