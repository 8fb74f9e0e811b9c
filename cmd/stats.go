package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grilled-pork-chop/civitest/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate exam statistics",
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

		s := stats.Compute(svc.Results())
		if s.TotalQuizzes == 0 {
			fmt.Println("No exams recorded yet.")
			return nil
		}

		fmt.Printf("Exams taken:    %d\n", s.TotalQuizzes)
		fmt.Printf("Average score:  %d%%\n", s.AverageScore)
		fmt.Printf("Pass rate:      %d%%\n", s.PassRate)
		fmt.Printf("Best score:     %d%%\n", s.BestScore)
		fmt.Printf("Worst score:    %d%%\n", s.WorstScore)
		fmt.Printf("Average time:   %d:%02d\n", s.AverageTimeTaken/60, s.AverageTimeTaken%60)

		if len(s.RecentTrend) > 0 {
			parts := make([]string, len(s.RecentTrend))
			for i, pct := range s.RecentTrend {
				parts[i] = fmt.Sprintf("%d", pct)
			}
			fmt.Printf("Recent trend:   %s\n", strings.Join(parts, " "))
		}

		if len(s.TopicTotals) > 0 {
			fmt.Println("\nLifetime by topic:")
			for _, tp := range s.TopicTotals {
				fmt.Printf("  %-26s %4d/%-4d %3d%%\n",
					tp.Topic.DisplayName(), tp.Correct, tp.Total, tp.Percentage)
			}
		}
		return nil
	},
}
