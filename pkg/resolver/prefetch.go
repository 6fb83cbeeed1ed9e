package resolver

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/shouni/gemini-pose-kit/pkg/domain"

	"golang.org/x/sync/errgroup"
)

const defaultPrefetchLimit = 4

// Prefetch はリモートテンプレートを並列に取得してキャッシュを温めます。
// 個々の失敗は警告ログに残して続行し、取得できた件数を返します。
// ctx がキャンセルされた場合、未着手のテンプレートは取得しません。
func (r *Resolver) Prefetch(ctx context.Context, templates []domain.PoseTemplate) int {
	var eg errgroup.Group
	eg.SetLimit(r.prefetchLimit)

	var warmed atomic.Int32
	for _, tmpl := range templates {
		if tmpl.IsEmbedded() {
			continue
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := r.resolveRemote(ctx, tmpl.Src); err != nil {
				slog.WarnContext(ctx, "テンプレートの事前取得に失敗しました", "template", tmpl.Name, "error", err)
				return nil
			}
			warmed.Add(1)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		slog.WarnContext(ctx, "テンプレートの事前取得を中断しました", "error", err)
	}

	slog.InfoContext(ctx, "テンプレートの事前取得が完了しました", "warmed", warmed.Load(), "total", len(templates))
	return int(warmed.Load())
}
