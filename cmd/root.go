package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"phoebe/internal/app"

	"github.com/spf13/cobra"
)

// Exit codes for the phoebe command.
const (
	// ExitCodeSuccess indicates successful execution, including -h and -v.
	ExitCodeSuccess = app.ExitCodeSuccess
	// ExitCodeError indicates a fatal bootstrap failure.
	ExitCodeError = app.ExitCodeFatal
)

// releaseDate can be set during build with -ldflags.
var releaseDate = "unreleased"

// exitError carries a non-zero exit code out of RunE.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("phoebe exited with code %d", e.code)
}

// rootCmd represents the phoebe front end. Cobra's own flag parsing is
// disabled: phoebe's switches and parameter files are interpreted in
// command line order by the startup sequence.
var rootCmd = &cobra.Command{
	Use:   "phoebe [-hv] [parameter_file ...]",
	Short: "PHOEBE eclipsing binary modeling front end",
	Long: `phoebe starts the PHOEBE front end. Parameter files given on the
command line are loaded in order; -h prints usage and -v prints the release.

Environment:
  PHOEBE_DEBUG        enable debug logging
  PHOEBE_CONFIG_BASE  directory holding the .phoebe-* configuration directories
  PHOEBE_TEMP_DIR     parent of the engine's scratch directory
  PHOEBE_HEADLESS     do not start the interactive console`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	DisableFlagParsing: true,
}

func init() {
	rootCmd.RunE = runPhoebe
}

func runPhoebe(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfigFromEnv(GetVersion(), releaseDate)
	cfg.Stdout = cmd.OutOrStdout()
	cfg.Stderr = cmd.ErrOrStderr()

	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if code := application.Run(ctx, args); code != ExitCodeSuccess {
		return &exitError{code: code}
	}
	return nil
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// SetReleaseDate sets the release date shown by -v.
func SetReleaseDate(d string) {
	releaseDate = d
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		exitCode := getExitCode(err)
		var ee *exitError
		if !errors.As(err, &ee) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode)
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	return ExitCodeError
}
