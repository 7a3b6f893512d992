package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.AccountOpened("mesa")
	m.AccountFinished("fechada")
	m.ItemsSent(3)
	m.ItemDelivered(nil)
	m.PaymentReceived("pix", 10)
	m.KitchenTickets(2)
}

func TestCounters(t *testing.T) {
	m := New()
	m.AccountOpened("mesa")
	m.AccountOpened("mesa")
	m.AccountOpened("avulso")
	m.ItemsSent(3)
	secs := 120
	m.ItemDelivered(&secs)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.accountsOpened.WithLabelValues("mesa")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.itemsSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.itemsDelivered))
}

func TestHandlerAndMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/mesas/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/mesas/42", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `pdv_http_requests_total{method="GET",route="/mesas/:id",status="200"} 1`))
}
