package cmd

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/jeffvincent/flywheel-env/internal/endpoints"
	"github.com/jeffvincent/flywheel-env/internal/environ"
)

// exitError carries a child's exit status back to main.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.code)
}

// ExitCode returns the status a failed child exited with, or 1.
func ExitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// ChildExited reports whether err only carries a child's exit status. The
// child has already written its own diagnostics, so main stays silent.
func ChildExited(err error) bool {
	var ee *exitError
	return errors.As(err, &ee)
}

func newExecCmd() *cobra.Command {
	var quiet bool

	c := &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command with the endpoint variables set",
		Long: `Configures the environment, then runs the command as a child process
that inherits it. The summary goes to stderr so the child's stdout
stays clean.

Examples:
  flywheel-env exec -- python -m flywheel.worker
  flywheel-env exec -q -- env`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eps := endpoints.Default()
			conf := &environ.Configurator{Env: environ.OSEnv{}}
			if !quiet {
				conf.Out = cmd.ErrOrStderr()
			}
			if err := conf.Configure(cmd.Context(), eps); err != nil {
				return err
			}

			child := environ.Command(cmd.Context(), eps, args[0], args[1:]...)
			child.Stdin = cmd.InOrStdin()
			child.Stdout = cmd.OutOrStdout()
			child.Stderr = cmd.ErrOrStderr()
			if err := child.Run(); err != nil {
				var ee *exec.ExitError
				if errors.As(err, &ee) {
					return &exitError{code: ee.ExitCode()}
				}
				return fmt.Errorf("failed to run %s: %w", args[0], err)
			}
			return nil
		},
	}

	c.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the summary")
	return c
}
