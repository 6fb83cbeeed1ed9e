package domain

import (
	"io"
	"slices"

	"github.com/shouni/gemini-pose-kit/pkg/imgutil"
)

// ResultFileName はダウンロード用に提供する生成結果のファイル名です。
const ResultFileName = "pose-transfer-result.png"

// AllowedMimeTypes はアップロードを受け付ける画像形式です。
var AllowedMimeTypes = []string{"image/png", "image/jpeg", "image/webp"}

// IsAllowedMimeType は mimeType がアップロード可能な画像形式かどうかを返します。
func IsAllowedMimeType(mimeType string) bool {
	return slices.Contains(AllowedMimeTypes, mimeType)
}

// ImageSource は送信可能な形に正規化された画像（バイナリと MIME タイプの組）です。
// 生成後は変更しないでください。
type ImageSource struct {
	Data     []byte
	MimeType string
}

// File はローカルからアップロードされたファイルと、その申告された MIME タイプです。
type File struct {
	Name     string
	MimeType string
	Content  io.Reader
}

// GenerationRequest は解決済みの被写体画像とポーズ参照画像の組です。
// 1回の生成呼び出しの間だけ有効です。
type GenerationRequest struct {
	Subject   *ImageSource
	Reference *ImageSource
}

// ImageResponse は生成された画像データです。
// Data はモデルが返したインラインデータそのもので、再エンコードしません。
type ImageResponse struct {
	Data     []byte
	MimeType string
}

// DataURL は表示用に PNG の data URL として包んだ文字列を返します。
func (r *ImageResponse) DataURL() string {
	return imgutil.EncodeDataURL("image/png", r.Data)
}

// GenerationResult は画面に表示される直近の生成結果です。
// Image と Error はどちらか一方のみが設定されます。
type GenerationResult struct {
	Image *ImageResponse
	Error string
}
