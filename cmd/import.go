package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fundroom/crm-api/internal/config"
	"github.com/fundroom/crm-api/internal/ingest"
	"github.com/fundroom/crm-api/internal/sheet"
)

var importUserID int64

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import leads from an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := config.Validate(cfg, "import"); err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "read workbook")
		}

		rows, err := sheet.ReadLeads(data)
		if err != nil {
			return eris.Wrap(err, "decode workbook")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		var owner *int64
		if importUserID > 0 {
			owner = &importUserID
		}

		report, err := ingest.New(st, cfg.Batch.MaxConcurrentRows).Ingest(ctx, rows, owner)
		if err != nil {
			return eris.Wrap(err, "ingest")
		}

		zap.L().Info("import complete",
			zap.String("file", args[0]),
			zap.Int("total", report.Summary.Total),
			zap.Int("created", report.Summary.Created),
			zap.Int("duplicates", report.Summary.Duplicates),
			zap.Int("failed", report.Summary.Invalid),
			zap.Int("rows_with_null_fields", report.Summary.NullFields),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().Int64Var(&importUserID, "user", 0, "owning user id for rows without one")
	rootCmd.AddCommand(importCmd)
}
