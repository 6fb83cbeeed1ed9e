package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shouni/gemini-pose-kit/pkg/domain"
	"github.com/shouni/gemini-pose-kit/pkg/session"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// PoseSession は HTTP ハンドラーが操作するセッションのインターフェースです。
type PoseSession interface {
	UploadUserImage(file domain.File) error
	UploadTemplate(file domain.File) (domain.PoseTemplate, error)
	SelectTemplate(id string) error
	Templates() []domain.PoseTemplate
	State() session.State
	Generate(ctx context.Context) (*domain.ImageResponse, error)
	Reset()
}

// Server は1つのセッションを JSON API として公開します。
type Server struct {
	session PoseSession
	engine  *gin.Engine
}

// New はルーティングを設定した Server を作成します。
func New(sess PoseSession) (*Server, error) {
	if sess == nil {
		return nil, fmt.Errorf("session is required")
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{session: sess, engine: engine}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	api.GET("/templates", s.listTemplates)
	api.POST("/templates", s.uploadTemplate)
	api.PUT("/templates/:id/select", s.selectTemplate)
	api.POST("/user-image", s.uploadUserImage)
	api.POST("/generate", s.generate)
	api.GET("/result", s.result)
	api.GET("/result/download", s.download)
	api.POST("/reset", s.reset)
}

// Handler は http.Handler としてのエンジンを返します。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run は addr で待ち受け、ctx がキャンセルされたらグレースフルに停止します。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "HTTPサーバーを起動します", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.InfoContext(ctx, "HTTPサーバーを停止します")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger はリクエストごとに slog でアクセスログを出力します。
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start))
	}
}
