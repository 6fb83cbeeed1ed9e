package imgutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const dataURLPrefix = "data:"

// ErrMissingPayload は data URL にペイロード区切りの "," が無い場合に返されます。
var ErrMissingPayload = errors.New("data URL にペイロードがありません")

// IsDataURL は s が data URL 形式かどうかを返します。
func IsDataURL(s string) bool {
	return len(s) >= len(dataURLPrefix) && strings.EqualFold(s[:len(dataURLPrefix)], dataURLPrefix)
}

// ParseDataURL は data URL から MIME タイプとデコード済みのデータを取り出します。
// MIME タイプは ":" と最初の ";" の間の文字列で、取り出せない場合は空文字を返します。
// 既定値への置き換えは呼び出し側の責務です。
func ParseDataURL(s string) (mimeType string, data []byte, err error) {
	if !IsDataURL(s) {
		return "", nil, fmt.Errorf("data URL ではありません")
	}

	header, payload, found := strings.Cut(s[len(dataURLPrefix):], ",")
	if !found {
		return "", nil, ErrMissingPayload
	}

	params := strings.Split(header, ";")
	if len(params) > 1 {
		mimeType = strings.TrimSpace(params[0])
	}

	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}

	if isBase64 {
		data, err = decodeBase64(payload)
		if err != nil {
			return mimeType, nil, fmt.Errorf("base64 デコードに失敗しました: %w", err)
		}
		return mimeType, data, nil
	}

	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return mimeType, nil, fmt.Errorf("ペイロードのデコードに失敗しました: %w", err)
	}
	return mimeType, []byte(unescaped), nil
}

// EncodeDataURL は data を base64 の data URL に変換します。
func EncodeDataURL(mimeType string, data []byte) string {
	return dataURLPrefix + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// decodeBase64 はパディングの有無にかかわらずデコードします。
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
