package service

import (
	"context"
	"strconv"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationRoot    = "/trade.v1.Trade/Root"
	OperationLogin   = "/trade.v1.Trade/Login"
	OperationAnalyze = "/trade.v1.Trade/Analyze"
	OperationHealth  = "/trade.v1.Trade/Health"
)

// RegisterTradeHTTPServer 注册路由
func RegisterTradeHTTPServer(s *http.Server, srv *TradeService) {
	r := s.Route("/")
	r.GET("/", tradeRootHandler(srv))
	r.POST("/login", tradeLoginHandler(srv))
	// 允许空的 sector，交给校验返回 400；不跨越路径分隔符
	r.GET("/analyze/{sector:[^/]*}", tradeAnalyzeHandler(srv))
	r.GET("/health", tradeHealthHandler(srv))
}

func tradeRootHandler(srv *TradeService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationRoot)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Root(ctx, req.(*struct{}))
		})
		out, err := h(ctx, &struct{}{})
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func tradeHealthHandler(srv *TradeService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationHealth)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Health(ctx, req.(*struct{}))
		})
		out, err := h(ctx, &struct{}{})
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func tradeLoginHandler(srv *TradeService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in LoginRequest
		if err := ctx.Bind(&in); err != nil {
			return errors.BadRequest("INVALID_LOGIN_REQUEST", "invalid login request body").WithCause(err)
		}
		http.SetOperation(ctx, OperationLogin)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Login(ctx, req.(*LoginRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func tradeAnalyzeHandler(srv *TradeService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		in := AnalyzeRequest{
			Sector:        ctx.Vars().Get("sector"),
			Authorization: ctx.Header().Get("Authorization"),
		}
		if raw := ctx.Query().Get("save_report"); raw != "" {
			save, err := strconv.ParseBool(raw)
			if err != nil {
				return errors.BadRequest("INVALID_QUERY", "save_report must be a boolean")
			}
			in.SaveReport = save
		}
		http.SetOperation(ctx, OperationAnalyze)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Analyze(ctx, req.(*AnalyzeRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}
