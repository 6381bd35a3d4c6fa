package server

import (
	"encoding/json"
	"net/http"

	v1 "cinestats/api/query/v1"
	"cinestats/internal/conf"
	"cinestats/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Custom response encoder so Spanish messages keep their quotes and accents unescaped
func customResponseEncoder(w http.ResponseWriter, r *http.Request, v interface{}) error {
	switch v.(type) {
	case *v1.ResultReply, *v1.StatusReply:
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	default:
		return khttp.DefaultResponseEncoder(w, r, v)
	}
}

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Server, querySvc *service.QueryService, logger log.Logger) *khttp.Server {
	var opts = []khttp.ServerOption{
		khttp.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
			MetricsMiddleware(),
		),
		khttp.ResponseEncoder(customResponseEncoder),
	}
	if c.Http != nil {
		if c.Http.Network != "" {
			opts = append(opts, khttp.Network(c.Http.Network))
		}
		if c.Http.Addr != "" {
			opts = append(opts, khttp.Address(c.Http.Addr))
		}
		if c.Http.Timeout.AsDuration() > 0 {
			opts = append(opts, khttp.Timeout(c.Http.Timeout.AsDuration()))
		}
	}
	srv := khttp.NewServer(opts...)
	srv.Handle("/metrics", promhttp.Handler())
	v1.RegisterQueryServiceHTTPServer(srv, querySvc)
	return srv
}
