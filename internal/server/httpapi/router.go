// Package httpapi serves the item collection over REST with gin:
//
//	GET    <base>        list
//	POST   <base>        create
//	GET    <base>/:id    get
//	PUT    <base>/:id    replace title and body
//	DELETE <base>/:id    delete
//	GET    /metrics      Prometheus metrics
//
// In ephemeral mode writes are acknowledged but not applied: create answers
// id = count+1, update echoes the request, delete answers 200.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	BasePath  string
	Ephemeral bool
}

// NewRouter builds the API. Metrics are registered with reg and served from
// gatherer, usually the same *prometheus.Registry.
func NewRouter(repo items.Repository, opts Options, reg prometheus.Registerer, gatherer prometheus.Gatherer, l logging.Logger) *gin.Engine {
	if l == nil {
		l = logging.Nop()
	}
	if opts.BasePath == "" {
		opts.BasePath = "/posts"
	}

	h := &handler{
		repo:      repo,
		ephemeral: opts.Ephemeral,
		metrics:   newMetrics(reg),
		logger:    l.With("module", "http_api"),
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), observe(h.metrics, h.logger))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	g := r.Group(opts.BasePath)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return r
}
