package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-pose-kit/pkg/domain"

	"google.golang.org/genai"
)

// GeminiPoseGenerator は、被写体画像とポーズ参照画像から
// ポーズ転送画像を生成するジェネレーターです。
type GeminiPoseGenerator struct {
	aiClient ContentGenerator
	model    string
}

// NewGeminiPoseGenerator は GeminiPoseGenerator を初期化します。
func NewGeminiPoseGenerator(aiClient ContentGenerator, model string) (*GeminiPoseGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (ContentGenerator) is required")
	}
	if model == "" {
		model = DefaultModel
	}

	return &GeminiPoseGenerator{
		aiClient: aiClient,
		model:    model,
	}, nil
}

// Model は使用するモデル名を返します。
func (g *GeminiPoseGenerator) Model() string {
	return g.model
}

// GeneratePose は指示文・被写体画像・参照画像の3パーツを1回だけ送信し、結果を分類して返します。
// リトライは行いません。
func (g *GeminiPoseGenerator) GeneratePose(ctx context.Context, req domain.GenerationRequest) (*domain.ImageResponse, error) {
	if req.Subject == nil || req.Reference == nil {
		return nil, domain.NewError(domain.KindMissingInput, domain.MsgMissingInput, nil)
	}

	parts := buildParts(req)
	slog.InfoContext(ctx, "Geminiにポーズ転送をリクエストします",
		"model", g.model,
		"subject_mime_type", req.Subject.MimeType,
		"reference_mime_type", req.Reference.MimeType,
		"total_parts", len(parts))

	resp, err := g.executeRequest(ctx, parts)
	if err != nil {
		slog.ErrorContext(ctx, "Gemini API の呼び出しに失敗しました", "model", g.model, "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "ポーズ転送画像を受信しました", "bytes", len(resp.Data), "mime_type", resp.MimeType)
	return resp, nil
}

// buildParts は [指示文, 被写体画像, 参照画像] の順でパーツを組み立てます。
func buildParts(req domain.GenerationRequest) []*genai.Part {
	return []*genai.Part{
		{Text: PoseTransferPrompt},
		toPart(req.Subject),
		toPart(req.Reference),
	}
}

// toPart は ImageSource を genai.Part (InlineData) に変換します。
func toPart(src *domain.ImageSource) *genai.Part {
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: src.MimeType,
			Data:     src.Data,
		},
	}
}
