package server

import (
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/grpc"

	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/conf"
)

// NewGRPCServer 只暴露 kratos 自动注册的 grpc.health.v1 健康检查
func NewGRPCServer(c *conf.Server, logger log.Logger) *grpc.Server {
	var opts = []grpc.ServerOption{
		grpc.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
	}
	if c.Grpc != nil {
		if c.Grpc.Addr != "" {
			opts = append(opts, grpc.Address(c.Grpc.Addr))
		}
		opts = append(opts, grpc.Timeout(conf.Duration(c.Grpc.Timeout, conf.DefaultGRPCTimeout)))
	}
	return grpc.NewServer(opts...)
}
