package server

import (
	nethttp "net/http"

	"github.com/go-chi/cors"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/conf"
	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/service"
)

// NewHTTPServer 创建 HTTP 服务
func NewHTTPServer(c *conf.Server, limiter *RateLimiter, s *service.TradeService, logger log.Logger) *http.Server {
	hc := c.Http
	if hc == nil {
		hc = conf.Default().Server.Http
	}

	origins := hc.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	encode := errorEncoder(hc.ExposeErrors, log.NewHelper(logger))

	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		http.Filter(
			cors.Handler(cors.Options{
				AllowedOrigins:   origins,
				AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders:   []string{"*"},
				AllowCredentials: !allowsAnyOrigin(origins),
			}),
			limiter.Filter,
		),
		http.ErrorEncoder(encode),
		http.NotFoundHandler(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			encode(w, r, errors.NotFound("NOT_FOUND", "Not Found"))
		})),
		http.MethodNotAllowedHandler(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			encode(w, r, errors.New(nethttp.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method Not Allowed"))
		})),
		http.Timeout(conf.Duration(hc.Timeout, conf.DefaultHTTPTimeout)),
		http.StrictSlash(false),
	}
	if hc.Addr != "" {
		opts = append(opts, http.Address(hc.Addr))
	}

	srv := http.NewServer(opts...)
	service.RegisterTradeHTTPServer(srv, s)
	return srv
}

// allowsAnyOrigin 通配来源时不允许携带凭据
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// errorEncoder 统一输出 {"error", "message"}；未分类的 5xx 只返回概括信息
func errorEncoder(expose bool, l *log.Helper) http.EncodeErrorFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
		se := errors.FromError(err)
		message := se.Message
		if se.Code >= 500 && se.Reason == "" {
			l.Errorf("Unhandled exception: %v", err)
			if !expose {
				message = "Internal server error"
			}
		}
		if se.Code == nethttp.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}

		codec, _ := http.CodecForRequest(r, "Accept")
		body, mErr := codec.Marshal(&errorBody{Error: message, Message: message})
		if mErr != nil {
			w.WriteHeader(nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/"+codec.Name())
		w.WriteHeader(int(se.Code))
		_, _ = w.Write(body)
	}
}
