package service

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/biz"
	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/conf"
)

// TradeService 对外的 HTTP 接口
type TradeService struct {
	auth     *biz.AuthUseCase
	analysis *biz.AnalysisUseCase
	app      *conf.App
	log      *log.Helper
}

func NewTradeService(auth *biz.AuthUseCase, analysis *biz.AnalysisUseCase, app *conf.App, logger log.Logger) *TradeService {
	if app == nil {
		app = conf.Default().App
	}
	return &TradeService{
		auth:     auth,
		analysis: analysis,
		app:      app,
		log:      log.NewHelper(logger),
	}
}

func (s *TradeService) Root(_ context.Context, _ *struct{}) (*RootReply, error) {
	return &RootReply{
		Message: "Welcome to " + s.app.Name,
		Version: s.app.Version,
		Endpoints: Endpoints{
			Login:   "/login",
			Analyze: "/analyze/{sector}",
			Health:  "/health",
		},
	}, nil
}

func (s *TradeService) Health(_ context.Context, _ *struct{}) (*HealthReply, error) {
	return &HealthReply{Status: "healthy", Service: s.app.Name, Version: s.app.Version}, nil
}

func (s *TradeService) Login(ctx context.Context, req *LoginRequest) (*LoginReply, error) {
	tok, err := s.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return &LoginReply{AccessToken: tok.AccessToken, TokenType: tok.TokenType}, nil
}

func (s *TradeService) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeReply, error) {
	id := s.auth.ResolveIdentity(ctx, req.Authorization)
	s.log.WithContext(ctx).Infof("analyze request: sector=%q identity=%s save_report=%t", req.Sector, id, req.SaveReport)
	rep, err := s.analysis.Analyze(ctx, req.Sector, id, req.SaveReport)
	if err != nil {
		return nil, err
	}
	return &AnalyzeReply{
		Sector:          rep.Sector,
		Report:          rep.Body,
		SourcesAnalyzed: rep.SourcesAnalyzed,
		SavedTo:         rep.SavedPath,
		Timestamp:       rep.Timestamp.Format(time.RFC3339),
	}, nil
}
