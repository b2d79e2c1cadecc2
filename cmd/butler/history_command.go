package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"butler/internal/audit"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent relocation records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := audit.OpenStore(filepath.Join(cfg.Paths.LogDir, "audit.db"))
			if err != nil {
				return fmt.Errorf("open audit store: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read audit entries: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No relocation records yet")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit records as JSON")
	return cmd
}

func renderHistoryTable(entries []audit.Entry) string {
	headers := []string{"When", "Action", "Source", "Destination"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		destination := entry.DestinationPath
		if entry.Action == audit.ActionDeleted {
			destination = "(deleted)"
		}
		rows = append(rows, []string{
			entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			string(entry.Action),
			entry.SourcePath,
			destination,
		})
	}
	return renderTable(headers, rows, nil)
}
