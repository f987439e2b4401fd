package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OffersGrouped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "offers_grouped_total",
			Help: "Raw store offers folded into product groups",
		},
	)
	ExtractionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nutrition_extractions_total",
			Help: "Nutrition text extraction runs",
		},
	)
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "product_data_cache_hits_total",
			Help: "Product payloads served from the Redis cache",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(OffersGrouped, ExtractionsTotal, CacheHits)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
