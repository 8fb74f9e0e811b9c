package main

import (
	"os"

	"github.com/grilled-pork-chop/civitest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
