// Package metrics expõe contadores do ciclo de vida de contas e requisições HTTP
// no formato Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pdv"

// Metrics agrupa os coletores da aplicação. Um *Metrics nil é válido e não registra nada.
type Metrics struct {
	registry       *prometheus.Registry
	accountsOpened *prometheus.CounterVec
	accountsClosed *prometheus.CounterVec
	itemsSent      prometheus.Counter
	itemsDelivered prometheus.Counter
	productionTime prometheus.Histogram
	paymentsAmount *prometheus.CounterVec
	kitchenTickets prometheus.Gauge
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

// New cria e registra os coletores em um registry próprio
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		accountsOpened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_opened_total",
			Help:      "Contas abertas por tipo (mesa, avulso).",
		}, []string{"kind"}),
		accountsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_finished_total",
			Help:      "Contas encerradas por status final (fechada, cancelada).",
		}, []string{"status"}),
		itemsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kitchen_items_sent_total",
			Help:      "Itens enviados para a cozinha.",
		}),
		itemsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kitchen_items_delivered_total",
			Help:      "Itens entregues pela cozinha.",
		}),
		productionTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kitchen_production_seconds",
			Help:      "Tempo entre o envio e a entrega de um item.",
			Buckets:   []float64{60, 180, 300, 600, 900, 1200, 1800, 3600},
		}),
		paymentsAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_amount_total",
			Help:      "Valor recebido por forma de pagamento.",
		}, []string{"method"}),
		kitchenTickets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "kitchen_tickets",
			Help:      "Itens atualmente na tela da cozinha.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por rota e status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.accountsOpened,
		m.accountsClosed,
		m.itemsSent,
		m.itemsDelivered,
		m.productionTime,
		m.paymentsAmount,
		m.kitchenTickets,
		m.httpRequests,
		m.httpLatency,
	)
	return m
}

// Registry retorna o registry usado pelos coletores
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// AccountOpened conta uma conta aberta
func (m *Metrics) AccountOpened(kind string) {
	if m == nil {
		return
	}
	m.accountsOpened.WithLabelValues(kind).Inc()
}

// AccountFinished conta uma conta fechada ou cancelada
func (m *Metrics) AccountFinished(status string) {
	if m == nil {
		return
	}
	m.accountsClosed.WithLabelValues(status).Inc()
}

// ItemsSent conta itens enviados para a cozinha
func (m *Metrics) ItemsSent(n int) {
	if m == nil {
		return
	}
	m.itemsSent.Add(float64(n))
}

// ItemDelivered conta um item entregue e observa seu tempo de produção
func (m *Metrics) ItemDelivered(productionSeconds *int) {
	if m == nil {
		return
	}
	m.itemsDelivered.Inc()
	if productionSeconds != nil {
		m.productionTime.Observe(float64(*productionSeconds))
	}
}

// PaymentReceived soma o valor recebido em uma forma de pagamento
func (m *Metrics) PaymentReceived(method string, amount float64) {
	if m == nil {
		return
	}
	m.paymentsAmount.WithLabelValues(method).Add(amount)
}

// KitchenTickets atualiza a quantidade de itens na tela da cozinha
func (m *Metrics) KitchenTickets(n int) {
	if m == nil {
		return
	}
	m.kitchenTickets.Set(float64(n))
}

// Handler expõe o endpoint /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// GinMiddleware mede as requisições pela rota registrada, não pelo caminho bruto
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
