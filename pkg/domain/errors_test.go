package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoseError_Is(t *testing.T) {
	t.Run("種類が一致すればセンチネルと一致する", func(t *testing.T) {
		err := NewError(KindFetch, "Failed to fetch template image: Not Found", nil)
		wrapped := fmt.Errorf("テンプレートの解決に失敗しました: %w", err)

		assert.ErrorIs(t, wrapped, ErrFetch)
		assert.NotErrorIs(t, wrapped, ErrRead)
		assert.Equal(t, KindFetch, KindOf(wrapped))
	})

	t.Run("Error はメッセージをそのまま返す", func(t *testing.T) {
		err := NewError(KindSafetyBlocked, MsgSafetyBlocked, nil)
		assert.Equal(t, "Image generation failed due to safety filters. Please try a different image.", err.Error())
	})

	t.Run("原因のエラーを Unwrap できる", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := NewError(KindGenerationFailed, cause.Error(), cause)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("分類されていないエラーの種類は空", func(t *testing.T) {
		assert.Empty(t, KindOf(errors.New("plain")))
	})
}
