// Command logics checks and evaluates formulas described in scenario files.
package main

import (
	"os"

	"github.com/gitrdm/logics/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
