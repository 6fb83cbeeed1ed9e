package builder

import (
	"context"
	"fmt"

	"github.com/shouni/gemini-pose-kit/internal/config"
	"github.com/shouni/gemini-pose-kit/pkg/generator"
	"github.com/shouni/gemini-pose-kit/pkg/resolver"
	"github.com/shouni/gemini-pose-kit/pkg/session"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持します。
type AppContext struct {
	Config    *config.Config
	Resolver  *resolver.Resolver
	Generator *generator.GeminiPoseGenerator
	Session   *session.Session
}

// NewAppContext は API クライアントを初期化して AppContext を構築します。
// API キーが無い場合は起動できないためエラーを返します。
func NewAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	aiClient, err := generator.NewGenAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return buildAppContext(cfg, aiClient)
}

func buildAppContext(cfg *config.Config, aiClient generator.ContentGenerator) (*AppContext, error) {
	gen, err := generator.NewGeminiPoseGenerator(aiClient, cfg.ImageModel)
	if err != nil {
		return nil, fmt.Errorf("GeminiPoseGeneratorの初期化に失敗しました: %w", err)
	}

	res, err := InitializeResolver(cfg)
	if err != nil {
		return nil, err
	}

	var opts []session.Option
	if cfg.RateInterval > 0 {
		opts = append(opts, session.WithRateLimiter(rate.NewLimiter(rate.Every(cfg.RateInterval), 1)))
	}
	sess, err := session.New(res, gen, opts...)
	if err != nil {
		return nil, fmt.Errorf("セッションの初期化に失敗しました: %w", err)
	}

	return &AppContext{
		Config:    cfg,
		Resolver:  res,
		Generator: gen,
		Session:   sess,
	}, nil
}

// InitializeResolver はテンプレート画像キャッシュ付きの Resolver を初期化します。
func InitializeResolver(cfg *config.Config) (*resolver.Resolver, error) {
	httpClient := resty.New().
		SetTimeout(cfg.HTTPTimeout).
		SetResponseBodyLimit(config.DefaultMaxTemplateBytes)
	imgCache := cache.New(cfg.CacheTTL, config.DefaultCleanupInterval)

	opts := []resolver.Option{resolver.WithPrefetchLimit(config.DefaultPrefetchParallel)}
	if !cfg.AllowPrivateTemplateHosts {
		opts = append(opts, resolver.WithURLValidator(resolver.IsSafeURL))
	}

	res, err := resolver.NewResolver(httpClient, imgCache, cfg.CacheTTL, opts...)
	if err != nil {
		return nil, fmt.Errorf("Resolverの初期化に失敗しました: %w", err)
	}
	return res, nil
}
