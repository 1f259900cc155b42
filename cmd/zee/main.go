// Command zee partitions sparse matrices over P images and reports on the
// partition. Run "zee --help" for the command list.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/katalvlaran/zee/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "zee:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
