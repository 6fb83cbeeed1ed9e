package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/shouni/gemini-pose-kit/pkg/domain"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "組み込みのポーズテンプレートを一覧表示します。",
	Args:  cobra.NoArgs,
	RunE:  templatesCommand,
}

func templatesCommand(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSOURCE")
	for _, t := range domain.DefaultTemplates() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Src)
	}
	return w.Flush()
}
