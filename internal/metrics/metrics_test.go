package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.DeliveryAppended("WIDE")
	r.DeliveryAppended("WIDE")
	r.DeliveryAppended("NONE")
	r.DeliveryRejected("out_of_sequence")
	r.WebhookSent(nil)
	r.WebhookSent(errors.New("boom"))
	r.RecordRequest("/api/matches", http.MethodPost, http.StatusCreated, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.deliveries.WithLabelValues("WIDE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.deliveries.WithLabelValues("NONE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejected.WithLabelValues("out_of_sequence")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.webhooks.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.webhooks.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("/api/matches", "POST", "201")))
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.DeliveryAppended("NONE")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cricket_deliveries_appended_total{extra_type="NONE"} 1`)
}
