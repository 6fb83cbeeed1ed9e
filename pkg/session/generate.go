package session

import (
	"context"
	"log/slog"

	"github.com/shouni/gemini-pose-kit/pkg/domain"
)

// Generate は選択中の入力でポーズ転送画像を1回生成します。
//
// 呼び出しごとにトークンを採番し、表示状態を更新するのは最新トークンの結果だけです。
// 古い呼び出しの結果は呼び出し元には返りますが、表示状態には反映されません。
func (s *Session) Generate(ctx context.Context) (*domain.ImageResponse, error) {
	s.mu.Lock()
	tmpl, ok := s.selectedLocked()
	if s.userImage == nil || !ok {
		s.mu.Unlock()
		return nil, domain.NewError(domain.KindMissingInput, domain.MsgMissingInput, nil)
	}
	subject := s.userImage
	s.latestToken++
	token := s.latestToken
	s.inFlight++
	// 結果が出る前に前回の表示を消す
	s.result = nil
	s.mu.Unlock()

	slog.InfoContext(ctx, "ポーズ転送を開始します", "template", tmpl.Name, "token", token)
	resp, err := s.run(ctx, subject, tmpl)
	s.complete(ctx, token, resp, err)
	return resp, err
}

// run はテンプレートの解決を終えてから生成リクエストを送ります。
func (s *Session) run(ctx context.Context, subject *domain.ImageSource, tmpl domain.PoseTemplate) (*domain.ImageResponse, error) {
	reference, err := s.resolver.ResolveFromTemplate(ctx, tmpl)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, domain.NewError(domain.KindGenerationFailed, err.Error(), err)
		}
	}

	return s.generator.GeneratePose(ctx, domain.GenerationRequest{
		Subject:   subject,
		Reference: reference,
	})
}

func (s *Session) complete(ctx context.Context, token uint64, resp *domain.ImageResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight--
	if token != s.latestToken {
		slog.InfoContext(ctx, "古い生成結果のため表示を更新しません", "token", token, "latest", s.latestToken)
		return
	}

	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = domain.MsgUnknown
		}
		slog.WarnContext(ctx, "ポーズ転送に失敗しました", "kind", domain.KindOf(err), "error", msg)
		s.result = &domain.GenerationResult{Error: msg}
		return
	}
	s.result = &domain.GenerationResult{Image: resp}
}
