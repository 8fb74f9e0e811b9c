package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grilled-pork-chop/civitest/internal/history"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import quiz history from a JSON export",
	Long:  "Import quiz history from a JSON export, replacing the current history. The file is checked before anything is overwritten.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		svc, st, err := openHistory(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := svc.Import(data); err != nil {
			var ierr *history.ImportError
			if errors.As(err, &ierr) {
				switch ierr.Kind {
				case history.ImportSyntax:
					return fmt.Errorf("%s is not valid JSON: %w", args[0], ierr.Err)
				case history.ImportStructure:
					return fmt.Errorf("%s is not a civitest history export: %w", args[0], ierr.Err)
				}
			}
			return fmt.Errorf("import history: %w", err)
		}

		fmt.Fprintln(os.Stderr, "History imported from", args[0])
		return nil
	},
}
