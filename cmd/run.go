package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grilled-pork-chop/civitest/internal/app"
	"github.com/grilled-pork-chop/civitest/internal/bank"
	"github.com/grilled-pork-chop/civitest/internal/config"
	"github.com/grilled-pork-chop/civitest/internal/history"
	"github.com/grilled-pork-chop/civitest/internal/quiz"
	"github.com/grilled-pork-chop/civitest/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc, st, err := openHistory(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	questions, err := loadBank(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Question bank unavailable:", err)
		questions = nil
	}

	return app.Run(app.Options{
		Engine:    quiz.NewEngine(svc),
		History:   svc,
		Questions: questions,
	})
}

// openHistory opens the SQLite store and wraps it in the history service.
// The caller owns the returned store and must Close it.
func openHistory(cmd *cobra.Command, cfg config.Config) (*history.Service, *store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}

	var opts []store.Option
	if cfg.Storage.MaxHistoryBytes > 0 {
		opts = append(opts, store.WithMaxValueBytes(cfg.Storage.MaxHistoryBytes))
	}
	st, err := store.Open(dbPath, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	svc, err := history.NewService(st)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("load history: %w", err)
	}
	return svc, st, nil
}

// loadBank reads and validates the configured question bank files, warning
// on stderr about anything skipped or rejected.
func loadBank(cfg config.Config) ([]bank.Question, error) {
	files, err := cfg.BankFiles()
	if err != nil {
		return nil, err
	}

	res, err := bank.LoadFiles(files)
	if err != nil {
		return nil, err
	}
	for path, ferr := range res.Skipped {
		fmt.Fprintf(os.Stderr, "Skipped bank file %s: %v\n", path, ferr)
	}
	for id, verr := range res.Rejected {
		fmt.Fprintf(os.Stderr, "Rejected question %s: %v\n", id, verr)
	}
	return res.Questions, nil
}
