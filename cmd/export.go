package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export quiz history as JSON",
	Long:  "Export the full quiz history as JSON to the given file, or to stdout when no file is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		svc, st, err := openHistory(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		data, err := svc.Export()
		if err != nil {
			return fmt.Errorf("export history: %w", err)
		}

		if len(args) == 0 {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		fmt.Fprintln(os.Stderr, "History exported to", args[0])
		return nil
	},
}
