package generator

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrMissingAPIKey は API キーが設定されていない場合に返されます。
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable not set")

// NewGenAIClient は Gemini API 用のクライアントを初期化し、generateContent の窓口を返します。
// API キーが空の場合はクライアントを作成せずにエラーを返します。
func NewGenAIClient(ctx context.Context, apiKey string) (ContentGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	return client.Models, nil
}
