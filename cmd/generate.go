package cmd

import (
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/gemini-pose-kit/internal/builder"
	"github.com/shouni/gemini-pose-kit/pkg/domain"
	"github.com/shouni/gemini-pose-kit/pkg/session"

	"github.com/spf13/cobra"
)

type generateOptions struct {
	UserImage    string
	Template     string
	TemplateFile string
	Output       string
}

var genOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "写真にテンプレートのポーズを転写した画像を1枚生成します。",
	Long: `--user-image の写真に、--template（組み込みテンプレートの ID か名前）または
--template-file の画像のポーズを転写し、結果を PNG として保存します。
テンプレートを指定しない場合は最初の組み込みテンプレートを使います。`,
	RunE: generateCommand,
}

func init() {
	generateCmd.Flags().StringVarP(&genOpts.UserImage, "user-image", "i", "", "被写体となるあなたの写真（PNG/JPEG/WEBP）です。")
	generateCmd.Flags().StringVarP(&genOpts.Template, "template", "t", "", "組み込みテンプレートの ID または名前です。")
	generateCmd.Flags().StringVar(&genOpts.TemplateFile, "template-file", "", "ポーズの参照に使う任意の画像ファイルです。")
	generateCmd.Flags().StringVarP(&genOpts.Output, "output", "o", domain.ResultFileName, "生成画像の保存先です。")
	generateCmd.MarkFlagsMutuallyExclusive("template", "template-file")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if genOpts.UserImage == "" {
		return fmt.Errorf("被写体の写真（--user-image）を指定してください")
	}

	app, err := builder.NewAppContext(ctx, loadConfig(cmd))
	if err != nil {
		return err
	}

	if err := uploadFromPath(genOpts.UserImage, app.Session.UploadUserImage); err != nil {
		return err
	}
	if err := chooseTemplate(app.Session); err != nil {
		return err
	}

	st := app.Session.State()
	slog.Info("ポーズ転送を実行します",
		"user_image", genOpts.UserImage,
		"template", st.SelectedTemplate.Name,
		"model", app.Generator.Model())

	resp, err := app.Session.Generate(ctx)
	if err != nil {
		return err
	}

	if err := os.WriteFile(genOpts.Output, resp.Data, 0o644); err != nil {
		return fmt.Errorf("生成画像の保存に失敗しました: %w", err)
	}
	slog.Info("生成画像を保存しました", "path", genOpts.Output, "bytes", len(resp.Data))
	return nil
}

func chooseTemplate(sess *session.Session) error {
	switch {
	case genOpts.TemplateFile != "":
		return uploadFromPath(genOpts.TemplateFile, func(f domain.File) error {
			_, err := sess.UploadTemplate(f)
			return err
		})
	case genOpts.Template != "":
		tmpl, ok := domain.FindTemplate(sess.Templates(), genOpts.Template)
		if !ok {
			return domain.NewError(domain.KindTemplateNotFound, fmt.Sprintf("Pose template %q not found.", genOpts.Template), nil)
		}
		return sess.SelectTemplate(tmpl.ID)
	default:
		return nil
	}
}

// uploadFromPath はローカルファイルを開き、拡張子から判定した MIME タイプを付けて upload に渡します。
func uploadFromPath(path string, upload func(domain.File) error) error {
	mimeType, err := mimeTypeFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.NewError(domain.KindRead, fmt.Sprintf("Failed to read image file: %v", err), err)
	}
	defer f.Close()

	return upload(domain.File{Name: filepath.Base(path), MimeType: mimeType, Content: f})
}

func mimeTypeFromPath(path string) (string, error) {
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = mt
	}
	if !domain.IsAllowedMimeType(mimeType) {
		return "", fmt.Errorf("%s は対応していない画像形式です（PNG/JPEG/WEBP のみ）", path)
	}
	return mimeType, nil
}
