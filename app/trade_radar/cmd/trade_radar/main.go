package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/go-kratos/kratos/v2/transport/grpc"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/biz"
	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/conf"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name = "trade_radar"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string

	id, _ = os.Hostname()
)

func main() {
	root := &cobra.Command{
		Use:           "trade_radar",
		Short:         "Trade opportunities analysis for Indian market sectors",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagconf, "conf", "app/trade_radar/configs/config.yaml", "config path, eg: --conf config.yaml")
	root.AddCommand(serveCmd(), analyzeCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bc, kl, err := bootstrap()
			if err != nil {
				return err
			}
			app, cleanup, err := initApp(bc, kl)
			if err != nil {
				return err
			}
			defer cleanup()

			logger.Log.Infof("Starting %s %s on %s", bc.App.Name, bc.App.Version, bc.Server.Http.Addr)
			return app.Run()
		},
	}
}

func analyzeCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "analyze <sector>",
		Short: "Run one analysis and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, kl, err := bootstrap()
			if err != nil {
				return err
			}
			uc, cleanup, err := initAnalysis(bc, kl)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), conf.Duration(bc.Server.Http.Timeout, conf.DefaultHTTPTimeout))
			defer cancel()

			rep, err := uc.Analyze(ctx, args[0], biz.AuthenticatedAs("cli"), save)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rep.Body)
			if rep.SavedPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "report saved to %s\n", rep.SavedPath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "save the report under report.output_dir")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			v := Version
			if v == "" {
				v = conf.Default().App.Version
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Name, v)
		},
	}
}

// bootstrap 加载 .env 与配置文件，初始化日志
func bootstrap() (*conf.Bootstrap, log.Logger, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
			env.NewSource(),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	// 扫描配置到带默认值的 Bootstrap 结构体
	bc := conf.Default()
	if err := c.Scan(bc); err != nil {
		return nil, nil, fmt.Errorf("scan config: %w", err)
	}
	if Version != "" {
		bc.App.Version = Version
	}

	lc := bc.Log
	if err := logger.InitLogger(logger.Options{
		Level:      lc.Level,
		File:       lc.File,
		MaxSizeMB:  int(lc.MaxSizeMb),
		MaxBackups: int(lc.MaxBackups),
		MaxAgeDays: int(lc.MaxAgeDays),
	}); err != nil {
		return nil, nil, err
	}

	kl := log.With(logger.NewKratosLogger(),
		"service.id", id,
		"service.name", Name,
	)
	return bc, kl, nil
}

func newApp(logger log.Logger, c *conf.Server, hs *http.Server, gs *grpc.Server) *kratos.App {
	servers := []transport.Server{hs}
	if c.Grpc != nil && c.Grpc.Addr != "" {
		servers = append(servers, gs)
	}
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(servers...),
	)
}
