package session

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/shouni/gemini-pose-kit/pkg/domain"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// --- Mocks ---

// mockAIClient は generator.ContentGenerator のテスト用モックです。
type mockAIClient struct {
	mu       sync.Mutex
	calls    int
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	respond  func() (*genai.GenerateContentResponse, error)
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.calls++
	m.contents = contents
	m.config = config
	m.mu.Unlock()
	return m.respond()
}

// mockGenerator は generator.PoseGenerator のテスト用モックです。
type mockGenerator struct {
	generateFunc func(ctx context.Context, req domain.GenerationRequest) (*domain.ImageResponse, error)
}

func (m *mockGenerator) GeneratePose(ctx context.Context, req domain.GenerationRequest) (*domain.ImageResponse, error) {
	return m.generateFunc(ctx, req)
}

// blockingGenerator は block が true を返す呼び出しで started を閉じ、release まで応答を保留します。
func blockingGenerator(block func(call int) bool, started chan<- struct{}, release <-chan struct{}) *mockGenerator {
	var mu sync.Mutex
	calls := 0
	return &mockGenerator{
		generateFunc: func(ctx context.Context, req domain.GenerationRequest) (*domain.ImageResponse, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if block(n) {
				close(started)
				<-release
			}
			return &domain.ImageResponse{Data: []byte("result"), MimeType: "image/png"}, nil
		},
	}
}

// mockResolver は ImageResolver のテスト用モックです。
type mockResolver struct {
	fileErr     error
	templateErr error
}

func (m *mockResolver) ResolveFromFile(file domain.File) (*domain.ImageSource, error) {
	if m.fileErr != nil {
		return nil, m.fileErr
	}
	return &domain.ImageSource{Data: []byte(file.Name), MimeType: file.MimeType}, nil
}

func (m *mockResolver) ResolveFromTemplate(ctx context.Context, tmpl domain.PoseTemplate) (*domain.ImageSource, error) {
	if m.templateErr != nil {
		return nil, m.templateErr
	}
	return &domain.ImageSource{Data: []byte(tmpl.ID), MimeType: "image/jpeg"}, nil
}

// テスト用のダミー画像（10x10の赤い正方形）を作成するヘルパー
func createDummyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}
