package generator

import (
	"context"

	"github.com/shouni/gemini-pose-kit/pkg/domain"

	"google.golang.org/genai"
)

// PoseGenerator はビジネスロジック層が利用するポーズ転送の窓口です。
type PoseGenerator interface {
	// GeneratePose は被写体画像にポーズ参照画像のポーズを転写した画像を1枚生成します。
	GeneratePose(ctx context.Context, req domain.GenerationRequest) (*domain.ImageResponse, error)
}

// ContentGenerator は Gemini API の generateContent 呼び出しを抽象化するインターフェースです。
// *genai.Models がこれを満たします。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}
