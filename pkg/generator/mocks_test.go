package generator

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

type mockAIClient struct {
	calls        int
	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig

	generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastContents = contents
	m.lastConfig = config
	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, contents, config)
	}
	return imageResponse("image/png", []byte("fake")), nil
}

// imageResponse は最初のパーツにインライン画像を持つレスポンスを作成します。
func imageResponse(mimeType string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}},
			},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}
