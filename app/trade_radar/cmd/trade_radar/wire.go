//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final binary.

package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/biz"
	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/conf"
	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/data"
	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/server"
)

var confFields = wire.FieldsOf(new(*conf.Bootstrap), "App", "Server", "Auth", "RateLimit")

// initApp init kratos application.
func initApp(*conf.Bootstrap, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		confFields,
		server.ProviderSet,
		newApp,
	))
}

// initAnalysis 供命令行单次分析使用
func initAnalysis(*conf.Bootstrap, log.Logger) (*biz.AnalysisUseCase, func(), error) {
	panic(wire.Build(
		wire.FieldsOf(new(*conf.Bootstrap), "Server"),
		data.NewData,
		data.NewCollector,
		data.NewAnalyzer,
		data.NewReportGenerator,
		data.NewUsageRepo,
		biz.NewAnalysisUseCase,
	))
}
