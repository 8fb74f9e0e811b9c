package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grilled-pork-chop/civitest/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Validate the question bank and report supply per topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		files, err := cfg.BankFiles()
		if err != nil {
			return err
		}

		res, err := bank.LoadFiles(files)
		if err != nil {
			return err
		}

		for path, ferr := range res.Skipped {
			fmt.Printf("SKIPPED %s: %v\n", path, ferr)
		}
		for id, verr := range res.Rejected {
			fmt.Printf("REJECTED %s: %v\n", id, verr)
		}

		supply := bank.Supply(res.Questions)
		fmt.Printf("\n%d valid questions across %d file(s)\n\n", len(res.Questions), len(files))
		fmt.Printf("%-26s %9s %5s %6s %5s\n", "Topic", "Knowledge", "Sit.", "Total", "Need")

		short := false
		for _, topic := range bank.TopicOrder {
			quota := bank.Quotas[topic]
			have := supply[topic]
			mark := ""
			if have.Total() < quota.Target || have.Situational < quota.Situational {
				mark = "  SHORT"
				short = true
			}
			fmt.Printf("%-26s %9d %5d %6d %5d%s\n",
				topic.DisplayName(), have.Knowledge, have.Situational, have.Total(), quota.Target, mark)
		}
		if short {
			fmt.Println("\nSome topics cannot fill their exam quota; exams will run short.")
		}
		return nil
	},
}
