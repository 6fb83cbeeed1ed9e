package domain

import "github.com/shouni/gemini-pose-kit/pkg/imgutil"

// PoseTemplate はポーズ参照画像のテンプレートです。
// Src は埋め込みの data URL か、リモート画像の URL のどちらかです。
type PoseTemplate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Src  string `json:"src"`
}

// IsEmbedded は Src が data URL として埋め込まれているかを返します。
func (t PoseTemplate) IsEmbedded() bool {
	return imgutil.IsDataURL(t.Src)
}

// DefaultTemplates は起動時に用意される組み込みテンプレートを返します。
// 呼び出しごとに新しいスライスを返すので、呼び出し側で自由に扱えます。
func DefaultTemplates() []PoseTemplate {
	return []PoseTemplate{
		{ID: "1", Name: "Yoga Serenity", Src: "https://images.pexels.com/photos/4164844/pexels-photo-4164844.jpeg"},
		{ID: "2", Name: "Joyful Leap", Src: "https://images.pexels.com/photos/1553783/pexels-photo-1553783.jpeg"},
		{ID: "3", Name: "Pondering Stance", Src: "https://images.pexels.com/photos/3775566/pexels-photo-3775566.jpeg"},
		{ID: "4", Name: "Heroic Arrival", Src: "https://images.pexels.com/photos/2781814/pexels-photo-2781814.jpeg"},
		{ID: "5", Name: "Elegant Dance", Src: "https://images.pexels.com/photos/1152994/pexels-photo-1152994.jpeg"},
		{ID: "6", Name: "Confident Point", Src: "https://images.pexels.com/photos/3757955/pexels-photo-3757955.jpeg"},
		{ID: "7", Name: "Casual Confidence", Src: "https://images.pexels.com/photos/3076516/pexels-photo-3076516.jpeg"},
		{ID: "8", Name: "Relaxed Lean", Src: "https://images.pexels.com/photos/1036627/pexels-photo-1036627.jpeg"},
	}
}

// FindTemplate は ID または表示名が一致するテンプレートを探します。
func FindTemplate(templates []PoseTemplate, key string) (PoseTemplate, bool) {
	for _, t := range templates {
		if t.ID == key || t.Name == key {
			return t, true
		}
	}
	return PoseTemplate{}, false
}
