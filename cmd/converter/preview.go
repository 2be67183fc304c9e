package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newPreviewCmd(root *rootOptions) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "preview <arquivo>",
		Short: "Mostra as primeiras linhas, as colunas e o mapeamento sugerido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.load()
			if err != nil {
				return err
			}
			defer a.log.Sync()

			if !cmd.Flags().Changed("rows") {
				rows = a.cfg.Output.PreviewRows
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("erro ao abrir %s: %w", args[0], err)
			}
			defer file.Close()

			preview, err := a.service.PreviewFile(file, filepath.Base(args[0]), rows)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(preview)
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "número de linhas exibidas")
	return cmd
}
