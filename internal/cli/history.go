package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"yesno-quiz/internal/app"
	"yesno-quiz/internal/history"
)

// NewHistoryCmd prints a profile's stored score history and average.
func NewHistoryCmd(configPath *string) *cobra.Command {
	var profile string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the stored score history of a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			b, err := openBackend(ctx, cfg)
			if err != nil {
				return err
			}
			defer b.Close()
			return printHistory(ctx, cmd.OutOrStdout(), history.NewAdapter(b.kv.ForProfile(profile)))
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "profile whose history to show")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func printHistory(ctx context.Context, w io.Writer, store app.HistoryStore) error {
	scores, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "no scores recorded")
		return err
	}
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = app.FormatPercent(s)
	}
	_, err = fmt.Fprintf(w, "scores: %s\naverage: %s\n", strings.Join(parts, ", "), app.FormatPercent(app.Average(scores)))
	return err
}
