// flywheel-env: in-cluster endpoint configuration for the data flywheel
//
// Usage:
//
//	flywheel-env show
//	flywheel-env exec -- python -m flywheel.worker
package main

import (
	"fmt"
	"os"

	"github.com/jeffvincent/flywheel-env/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !cmd.ChildExited(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
