package generator

import (
	"context"
	"strings"

	"github.com/shouni/gemini-pose-kit/pkg/domain"

	"google.golang.org/genai"
)

// imageOnlyConfig は画像のみを出力させる生成設定を返します。
func imageOnlyConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
	}
}

func (g *GeminiPoseGenerator) executeRequest(ctx context.Context, parts []*genai.Part) (*domain.ImageResponse, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.aiClient.GenerateContent(ctx, g.model, contents, imageOnlyConfig())
	if err != nil {
		return nil, classifyError(err)
	}

	return parseToResponse(resp)
}

// parseToResponse は最初の候補 (Candidate) の最初のパーツだけを見て結果を分類します。
func parseToResponse(resp *genai.GenerateContentResponse) (*domain.ImageResponse, error) {
	var candidate *genai.Candidate
	if resp != nil && len(resp.Candidates) > 0 {
		candidate = resp.Candidates[0]
	}

	if candidate != nil && candidate.Content != nil && len(candidate.Content.Parts) > 0 {
		if first := candidate.Content.Parts[0]; first != nil && first.InlineData != nil {
			return &domain.ImageResponse{
				Data:     first.InlineData.Data,
				MimeType: first.InlineData.MIMEType,
			}, nil
		}
	}

	// 安全フィルターによるブロックの確認
	if candidate != nil && candidate.FinishReason == genai.FinishReasonSafety {
		return nil, domain.NewError(domain.KindSafetyBlocked, domain.MsgSafetyBlocked, nil)
	}

	return nil, domain.NewError(domain.KindNoImageProduced, domain.MsgNoImageProduced, nil)
}

// classifyError は API 呼び出し自体の失敗を分類します。
// API キーに言及するエラーは InvalidCredential、それ以外はメッセージをそのまま GenerationFailed にします。
func classifyError(err error) error {
	msg := err.Error()
	if mentionsAPIKey(msg) {
		return domain.NewError(domain.KindInvalidCredential, domain.MsgInvalidCredential, err)
	}
	if msg == "" {
		msg = domain.MsgGenerationFailed
	}
	return domain.NewError(domain.KindGenerationFailed, msg, err)
}

// mentionsAPIKey はエラーメッセージに "API_KEY" がそのまま含まれるかを判定します。
func mentionsAPIKey(msg string) bool {
	return strings.Contains(msg, "API_KEY")
}
