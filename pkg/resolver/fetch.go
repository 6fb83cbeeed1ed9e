package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/shouni/gemini-pose-kit/pkg/domain"

	"github.com/go-resty/resty/v2"
)

// fetch はテンプレート画像をダウンロードし、Content-Type と組にして返します。
func (r *Resolver) fetch(ctx context.Context, rawURL string) (*domain.ImageSource, error) {
	resp, err := r.httpClient.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, domain.NewError(domain.KindFetch, fmt.Sprintf("Failed to fetch template image: %v", err), err)
	}

	if !resp.IsSuccess() {
		slog.WarnContext(ctx, "テンプレート画像の取得に失敗しました", "url", rawURL, "status", resp.StatusCode())
		return nil, domain.NewError(domain.KindFetch, "Failed to fetch template image: "+statusText(resp), nil)
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, domain.NewError(domain.KindRead, "Failed to read template image: empty response body", nil)
	}

	return &domain.ImageSource{
		Data:     body,
		MimeType: mediaType(resp.Header().Get("Content-Type"), body),
	}, nil
}

// redirectPolicy はリダイレクトの各ホップで validate を実行し、不正な転送先への追従を止めます。
func redirectPolicy(validate URLValidator) resty.RedirectPolicy {
	return resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("リダイレクトが多すぎます (%d 回)", len(via))
		}
		safe, err := validate(req.URL.String())
		if err != nil {
			return fmt.Errorf("リダイレクト先をブロックしました: %w", err)
		}
		if !safe {
			return fmt.Errorf("リダイレクト先をブロックしました: %s", req.URL.Redacted())
		}
		return nil
	})
}

// statusText はステータス行から理由句だけを取り出します。
func statusText(resp *resty.Response) string {
	code := resp.StatusCode()
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status(), strconv.Itoa(code)))
	if text == "" {
		text = http.StatusText(code)
	}
	return text
}

// mediaType は Content-Type からパラメータを除いた MIME タイプを返します。
// ヘッダーが無い場合は内容から推定します。
func mediaType(contentType string, body []byte) string {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType
	}
	return mt
}
