package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past exam results, newest first",
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

		results := svc.Results()
		if len(results) == 0 {
			fmt.Println("No exams recorded yet.")
			return nil
		}
		for _, r := range results {
			verdict := "PASS"
			if !r.Passed {
				verdict = "FAIL"
			}
			fmt.Printf("%s  %2d/%d (%3d%%)  %d:%02d  %s\n",
				r.Date.Format("2006-01-02 15:04"),
				r.Score, r.TotalQuestions, r.Percentage,
				r.TimeTaken/60, r.TimeTaken%60, verdict)
		}
		return nil
	},
}
