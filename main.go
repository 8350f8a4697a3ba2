package main

import (
	"fmt"
	"os"

	"github.com/aliasimkazmi/core-components/cmd"
	"github.com/aliasimkazmi/core-components/pkg/logger"
)

// main hands the run to cobra and flushes buffered log lines before a
// non-zero exit, so a failed run never loses its tail.
func main() {
	err := cmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pick:", err)
		os.Exit(1)
	}
}
