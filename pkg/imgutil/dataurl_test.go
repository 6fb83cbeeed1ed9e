package imgutil

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

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
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode dummy image: %v", err)
	}
	return buf.Bytes()
}

func TestParseDataURL(t *testing.T) {
	pngData := createDummyPNG(t)
	encoded := base64.StdEncoding.EncodeToString(pngData)

	tests := []struct {
		name     string
		input    string
		wantMime string
		wantData []byte
		wantErr  error
	}{
		{"webp の MIME を取り出せる", "data:image/webp;base64," + encoded, "image/webp", pngData, nil},
		{"大文字のスキームも受け付ける", "DATA:image/png;base64," + encoded, "image/png", pngData, nil},
		{"セミコロンが無いと MIME は空", "data:image/webp," + "abc", "", []byte("abc"), nil},
		{"MIME が空", "data:;base64," + encoded, "", pngData, nil},
		{"パーセントエンコード", "data:text/plain;charset=utf-8,a%20b", "text/plain", []byte("a b"), nil},
		{"ペイロード区切りなし", "data:image/png;base64", "", nil, ErrMissingPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mimeType, data, err := ParseDataURL(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mimeType != tt.wantMime {
				t.Errorf("mime type mismatch: want %q, got %q", tt.wantMime, mimeType)
			}
			if !bytes.Equal(data, tt.wantData) {
				t.Errorf("decoded data mismatch")
			}
		})
	}

	t.Run("壊れた base64 はエラー", func(t *testing.T) {
		if _, _, err := ParseDataURL("data:image/png;base64,@@@"); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("data URL 以外はエラー", func(t *testing.T) {
		if _, _, err := ParseDataURL("https://example.com/a.png"); err == nil {
			t.Error("expected error for non data URL")
		}
	})
}

func TestEncodeDataURL(t *testing.T) {
	pngData := createDummyPNG(t)

	url := EncodeDataURL("image/png", pngData)
	if !IsDataURL(url) {
		t.Fatalf("encoded value is not a data URL: %s", url)
	}

	mimeType, data, err := ParseDataURL(url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mimeType != "image/png" || !bytes.Equal(data, pngData) {
		t.Error("round trip through data URL changed the payload")
	}
}

func TestIsDataURL(t *testing.T) {
	if IsDataURL("dat") {
		t.Error("short string must not be a data URL")
	}
	if !IsDataURL("data:,") {
		t.Error("minimal data URL was not detected")
	}
}
