package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hesab/backend/internal/infrastructure/metrics"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics_LabelsByRoutePattern(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(HTTPMetrics(m))
	r.GET("/vouchers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodGet, "/vouchers/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/vouchers/2", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))

	body := serve(m.Handler(), httptest.NewRequest(http.MethodGet, "/metrics", nil)).Body.String()
	assert.Contains(t, body, `hesab_http_requests_total{method="GET",route="/vouchers/:id",status="200"} 2`)
	assert.Contains(t, body, `hesab_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, body, "hesab_http_requests_in_flight 0")
}

func TestHTTPMetrics_NilIsNoop(t *testing.T) {
	w := serve(newRouter(HTTPMetrics(nil)), httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
