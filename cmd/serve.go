package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/gemini-pose-kit/internal/builder"
	"github.com/shouni/gemini-pose-kit/internal/server"
	"github.com/shouni/gemini-pose-kit/pkg/domain"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveOpts struct {
	Addr     string
	Prefetch bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "ポーズ転送の JSON API サーバーを起動します。",
	RunE:  serveCommand,
}

func init() {
	serveCmd.Flags().StringVar(&serveOpts.Addr, "addr", "", "待ち受けアドレスです（未指定なら SERVER_ADDR）。")
	serveCmd.Flags().BoolVar(&serveOpts.Prefetch, "prefetch", false, "起動時に組み込みテンプレートを取得してキャッシュします。")
}

func serveCommand(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig(cmd)
	if serveOpts.Addr != "" {
		cfg.ServerAddr = serveOpts.Addr
	}

	app, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	if serveOpts.Prefetch {
		go app.Resolver.Prefetch(ctx, domain.DefaultTemplates())
	}

	if !opts.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := server.New(app.Session)
	if err != nil {
		return err
	}
	return srv.Run(ctx, cfg.ServerAddr)
}
