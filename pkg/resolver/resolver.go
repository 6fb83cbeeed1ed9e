package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shouni/gemini-pose-kit/pkg/domain"
	"github.com/shouni/gemini-pose-kit/pkg/imgutil"

	"github.com/go-resty/resty/v2"
)

// DefaultMimeType は埋め込みテンプレートから MIME タイプを取り出せなかった場合の既定値です。
const DefaultMimeType = "image/jpeg"

// ImageCacher は、取得済みのテンプレート画像をキャッシュするためのインターフェースです。
type ImageCacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

// URLValidator はリモート URL を取得してよいかを判定します。
type URLValidator func(rawURL string) (bool, error)

// maxRedirects はテンプレート取得で追従するリダイレクトの上限です。
const maxRedirects = 5

// Resolver はアップロードファイルやテンプレートを domain.ImageSource に正規化します。
type Resolver struct {
	httpClient    *resty.Client
	cache         ImageCacher
	expiration    time.Duration
	validateURL   URLValidator
	prefetchLimit int
}

// Option は Resolver の任意設定です。
type Option func(*Resolver)

// WithURLValidator はリモート取得前の URL 検証を設定します。
func WithURLValidator(v URLValidator) Option {
	return func(r *Resolver) {
		r.validateURL = v
	}
}

// WithPrefetchLimit は Prefetch の同時取得数を設定します。
func WithPrefetchLimit(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.prefetchLimit = n
		}
	}
}

// NewResolver は依存関係を注入して Resolver を初期化します。
func NewResolver(httpClient *resty.Client, cache ImageCacher, cacheTTL time.Duration, opts ...Option) (*Resolver, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	// cache は nil を許容（キャッシュなし動作）

	r := &Resolver{
		httpClient:    httpClient,
		cache:         cache,
		expiration:    cacheTTL,
		prefetchLimit: defaultPrefetchLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.validateURL != nil {
		// リダイレクト先も同じ検証を通す
		httpClient.SetRedirectPolicy(redirectPolicy(r.validateURL))
	}
	return r, nil
}

// ResolveFromFile はファイルの内容をすべて読み込み、申告された MIME タイプと組にします。
// 内容による検証は行いません。
func (r *Resolver) ResolveFromFile(file domain.File) (*domain.ImageSource, error) {
	if file.Content == nil {
		return nil, domain.NewError(domain.KindRead, "Failed to read image file: no content", nil)
	}

	data, err := io.ReadAll(file.Content)
	if err != nil {
		return nil, domain.NewError(domain.KindRead, fmt.Sprintf("Failed to read image file: %v", err), err)
	}

	return &domain.ImageSource{Data: data, MimeType: file.MimeType}, nil
}

// ResolveFromTemplate はテンプレートの参照先を解決します。
// 埋め込みの data URL はその場で解析し、リモート URL はダウンロードします。
func (r *Resolver) ResolveFromTemplate(ctx context.Context, tmpl domain.PoseTemplate) (*domain.ImageSource, error) {
	if tmpl.IsEmbedded() {
		return r.resolveEmbedded(ctx, tmpl)
	}
	return r.resolveRemote(ctx, tmpl.Src)
}

func (r *Resolver) resolveEmbedded(ctx context.Context, tmpl domain.PoseTemplate) (*domain.ImageSource, error) {
	mimeType, data, err := imgutil.ParseDataURL(tmpl.Src)
	if errors.Is(err, imgutil.ErrMissingPayload) {
		return nil, domain.NewError(domain.KindMalformedDataReference, "Malformed template image reference: missing image data.", err)
	}
	if err != nil {
		return nil, domain.NewError(domain.KindRead, fmt.Sprintf("Failed to read template image: %v", err), err)
	}

	if mimeType == "" {
		slog.WarnContext(ctx, "テンプレートの MIME タイプを取得できなかったため既定値を使用します",
			"template", tmpl.Name, "default", DefaultMimeType)
		mimeType = DefaultMimeType
	}

	return &domain.ImageSource{Data: data, MimeType: mimeType}, nil
}

func (r *Resolver) resolveRemote(ctx context.Context, rawURL string) (*domain.ImageSource, error) {
	// キャッシュの確認
	if r.cache != nil {
		if cached, found := r.cache.Get(rawURL); found {
			if src, ok := cached.(*domain.ImageSource); ok {
				return src, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", rawURL, "type", fmt.Sprintf("%T", cached))
		}
	}

	// SSRF対策のバリデーション
	if r.validateURL != nil {
		if safe, err := r.validateURL(rawURL); err != nil || !safe {
			slog.WarnContext(ctx, "SSRFの可能性がある、または不正なURLをブロックしました", "url", rawURL, "error", err)
			reason := "blocked URL"
			if err != nil {
				reason = err.Error()
			}
			return nil, domain.NewError(domain.KindFetch, "Failed to fetch template image: "+reason, err)
		}
	}

	src, err := r.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Set(rawURL, src, r.expiration)
	}
	return src, nil
}
