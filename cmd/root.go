package cmd

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shouni/gemini-pose-kit/internal/config"

	"github.com/spf13/cobra"
)

// AppOptions はコマンドライン全体で共有するフラグの値です。
type AppOptions struct {
	Verbose     bool
	ImageModel  string
	HTTPTimeout time.Duration
}

var opts AppOptions

var rootCmd = &cobra.Command{
	Use:   "pose-transfer",
	Short: "Gemini の画像モデルで写真の人物にテンプレートのポーズを転写します。",
	Long: `あなたの写真と参照ポーズ画像を Gemini の画像モデルに送り、
本人の見た目を保ったまま参照画像のポーズを取らせた新しい画像を生成します。`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "デバッグログを出力します。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "model", config.DefaultImageModel, "使用する Gemini 画像モデル名です。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "テンプレート画像取得のタイムアウトです。")

	rootCmd.AddCommand(generateCmd, serveCmd, templatesCmd)
}

func setupLogger(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig は環境変数の設定に、明示的に指定されたフラグの値を上書きします。
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.LoadConfig()
	if cmd.Flags().Changed("model") {
		cfg.ImageModel = opts.ImageModel
	}
	if cmd.Flags().Changed("http-timeout") {
		cfg.HTTPTimeout = opts.HTTPTimeout
	}
	return cfg
}

// Execute はアプリケーションのエントリポイントです。
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("コマンドの実行に失敗しました", "error", err)
		os.Exit(1)
	}
}
