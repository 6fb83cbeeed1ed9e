package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/gemini-pose-kit/pkg/domain"
	"github.com/shouni/gemini-pose-kit/pkg/generator"
	"github.com/shouni/gemini-pose-kit/pkg/imgutil"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// ImageResolver は入力画像を domain.ImageSource に正規化するインターフェースです。
type ImageResolver interface {
	ResolveFromFile(file domain.File) (*domain.ImageSource, error)
	ResolveFromTemplate(ctx context.Context, tmpl domain.PoseTemplate) (*domain.ImageSource, error)
}

// State は画面に表示するセッション状態のスナップショットです。
type State struct {
	HasUserImage     bool
	SelectedTemplate *domain.PoseTemplate
	Result           *domain.GenerationResult
	Loading          bool
}

// Session は1人の利用者のセッション状態を保持するコントローラーです。
// 状態はすべてこの構造体が所有し、mu で保護します。
type Session struct {
	resolver  ImageResolver
	generator generator.PoseGenerator
	limiter   *rate.Limiter
	builtins  []domain.PoseTemplate

	mu          sync.Mutex
	userImage   *domain.ImageSource
	templates   []domain.PoseTemplate
	selectedID  string
	result      *domain.GenerationResult
	inFlight    int
	latestToken uint64
}

// Option は Session の任意設定です。
type Option func(*Session)

// WithTemplates は組み込みテンプレートを差し替えます。
func WithTemplates(templates []domain.PoseTemplate) Option {
	return func(s *Session) {
		s.builtins = append([]domain.PoseTemplate(nil), templates...)
	}
}

// WithRateLimiter は生成リクエストの送信間隔を制限します。
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(s *Session) {
		s.limiter = limiter
	}
}

// New は依存関係を注入して Session を初期化します。
// 最初の組み込みテンプレートが選択された状態で始まります。
func New(resolver ImageResolver, gen generator.PoseGenerator, opts ...Option) (*Session, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}

	s := &Session{
		resolver:  resolver,
		generator: gen,
		builtins:  domain.DefaultTemplates(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetLocked()
	return s, nil
}

// UploadUserImage は被写体画像を差し替え、表示中の結果を消去します。
func (s *Session) UploadUserImage(file domain.File) error {
	src, err := s.resolver.ResolveFromFile(file)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userImage = src
	s.result = nil
	slog.Info("被写体画像を受け付けました", "name", file.Name, "mime_type", src.MimeType, "bytes", len(src.Data))
	return nil
}

// UploadTemplate はアップロードされた画像を埋め込みテンプレートとして先頭に追加し、選択します。
func (s *Session) UploadTemplate(file domain.File) (domain.PoseTemplate, error) {
	src, err := s.resolver.ResolveFromFile(file)
	if err != nil {
		return domain.PoseTemplate{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domain.PoseTemplate{}, fmt.Errorf("テンプレートIDの生成に失敗しました: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmpl := domain.PoseTemplate{
		ID:   id.String(),
		Name: fmt.Sprintf("Custom %d", len(s.templates)+1-len(s.builtins)),
		Src:  imgutil.EncodeDataURL(src.MimeType, src.Data),
	}
	s.templates = append([]domain.PoseTemplate{tmpl}, s.templates...)
	s.selectedID = tmpl.ID

	slog.Info("カスタムテンプレートを追加しました", "id", tmpl.ID, "name", tmpl.Name)
	return tmpl, nil
}

// SelectTemplate は ID で指定したテンプレートを選択します。
func (s *Session) SelectTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.templates {
		if t.ID == id {
			s.selectedID = id
			return nil
		}
	}
	return domain.NewError(domain.KindTemplateNotFound, fmt.Sprintf("Pose template %q not found.", id), nil)
}

// Templates は現在のテンプレート一覧（新しいカスタムテンプレートが先頭）を返します。
func (s *Session) Templates() []domain.PoseTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.PoseTemplate(nil), s.templates...)
}

// State は現在の表示状態を返します。
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		HasUserImage: s.userImage != nil,
		Loading:      s.inFlight > 0,
	}
	if tmpl, ok := s.selectedLocked(); ok {
		st.SelectedTemplate = &tmpl
	}
	if s.result != nil {
		r := *s.result
		st.Result = &r
	}
	return st
}

// Reset はセッションを初期状態（組み込みテンプレートのみ、未選択の入力なし）に戻します。
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	// 実行中の生成結果が表示に反映されないようにトークンを進める
	s.latestToken++
}

func (s *Session) resetLocked() {
	s.userImage = nil
	s.templates = append([]domain.PoseTemplate(nil), s.builtins...)
	s.selectedID = ""
	if len(s.templates) > 0 {
		s.selectedID = s.templates[0].ID
	}
	s.result = nil
}

func (s *Session) selectedLocked() (domain.PoseTemplate, bool) {
	for _, t := range s.templates {
		if t.ID == s.selectedID {
			return t, true
		}
	}
	return domain.PoseTemplate{}, false
}
