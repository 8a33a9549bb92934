package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/metrics"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", metrics.Outcome(nil))
	assert.Equal(t, "validation", metrics.Outcome(apperr.Validation("bad")))
	assert.Equal(t, "not_found", metrics.Outcome(apperr.NotFound("tx")))
	assert.Equal(t, "conflict", metrics.Outcome(apperr.Conflict("dup")))
	assert.Equal(t, "error", metrics.Outcome(errors.New("boom")))
}

func TestCollector_Handler(t *testing.T) {
	c := metrics.NewCollector()

	c.ObserveMutation("transaction_create", time.Now(), nil)
	c.ObserveMutation("transaction_create", time.Now(), apperr.Validation("amount"))
	c.RefundRejected(apperr.Conflict("already a refund"))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `ledger_mutations_total{operation="transaction_create",outcome="ok"} 1`)
	assert.Contains(t, body, `ledger_mutations_total{operation="transaction_create",outcome="validation"} 1`)
	assert.Contains(t, body, `refund_rejections_total{kind="conflict"} 1`)
}

func TestCollector_Nil(t *testing.T) {
	var c *metrics.Collector

	assert.NotPanics(t, func() {
		c.ObserveMutation("account_delete", time.Now(), nil)
		c.RefundRejected(apperr.Validation("bound"))
	})
}
