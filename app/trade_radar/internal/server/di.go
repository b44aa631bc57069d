package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/biz"
	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/data"
	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/service"
)

// ProviderSet 是 trade_radar 服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewGRPCServer,
	NewRateLimiter,

	// Data providers
	data.NewData,
	data.NewCollector,
	data.NewAnalyzer,
	data.NewReportGenerator,
	data.NewUsageRepo,

	// UseCase providers
	biz.NewAuthUseCase,
	biz.NewAnalysisUseCase,

	// Service providers
	service.NewTradeService,
)
