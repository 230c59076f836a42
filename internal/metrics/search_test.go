package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSearch_CountsByStatus(t *testing.T) {
	okBefore := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("true", "false", "ok"))
	errBefore := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("true", "false", "error"))

	ObserveSearch(true, false, nil, 15, 0.01)
	ObserveSearch(true, false, errors.New("boom"), 0, 0.02)

	if got := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("true", "false", "ok")); got != okBefore+1 {
		t.Errorf("ok counter = %f, want %f", got, okBefore+1)
	}
	if got := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("true", "false", "error")); got != errBefore+1 {
		t.Errorf("error counter = %f, want %f", got, errBefore+1)
	}
	if testutil.CollectAndCount(SearchResultsReturned) == 0 {
		t.Error("expected search_results_returned to be collected")
	}
}

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()
}

func TestObserveQuery_SlowAndFailed(t *testing.T) {
	slowBefore := testutil.ToFloat64(DBSlowQueriesTotal)
	errBefore := testutil.ToFloat64(DBQueriesTotal.WithLabelValues("error"))

	ObserveQuery(0.5, -1, true, true)

	if got := testutil.ToFloat64(DBSlowQueriesTotal); got != slowBefore+1 {
		t.Errorf("slow counter = %f, want %f", got, slowBefore+1)
	}
	if got := testutil.ToFloat64(DBQueriesTotal.WithLabelValues("error")); got != errBefore+1 {
		t.Errorf("error counter = %f, want %f", got, errBefore+1)
	}
}
