// Package cmd provides the root command and CLI setup for truthcheck.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"truthcheck.dev/pkg/truthcheck/internal/adapter"
	"truthcheck.dev/pkg/truthcheck/internal/controller"
	"truthcheck.dev/pkg/truthcheck/internal/domain"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// Process exit codes. "Could not evaluate" codes are distinct from a
// failed verdict.
const (
	exitPass        = 0
	exitFail        = 1
	exitRenderError = 2
	exitLoadError   = 3
	exitWriteError  = 4
	exitUsageError  = 64
)

var sceneLoader adapter.SceneLoader
var renderer adapter.Renderer
var scorer adapter.Scorer
var artifactStore adapter.ArtifactStore
var reportStore adapter.ReportStore
var reportOpener adapter.ReportOpener
var extractor domain.Extractor
var checker domain.Checker
var ui controller.UI

// outputDirFlag is a root-level flag shared by commands that read/write artifacts.
var outputDirFlag string

var verboseFlag bool
var logFileFlag string

// errVerdictFailed marks a run that was evaluated and did not pass.
var errVerdictFailed = errors.New("verdict: FAIL")

// usageError marks invalid arguments, flags or configuration values.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func init() {
	configureRootFlags(rootCmd)
	rootCmd.AddCommand(newCheckCmd(), newViewCmd(), newInitCmd(), newVersionCmd())

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	sceneLoader = adapter.NewUSDALoader()
	renderer = adapter.NewUSDRecordRenderer()
	scorer = adapter.NewSSIMScorer()
	artifactStore = adapter.NewLocalArtifactStore()
	reportStore = adapter.NewReportStore(artifactStore)
	reportOpener = adapter.NewBrowserOpener()
	extractor = domain.NewExtractor(sceneLoader)
	checker = domain.NewChecker(
		renderer,
		scorer,
		extractor,
		artifactStore,
		reportStore,
		reportOpener,
		ui,
	)
}

const rootLongDescription = `Truthcheck verifies that a final revision of a USD stage matches an
approved review revision, both visually (SSIM over usdrecord renders) and
structurally (material bindings, visibility and variant selections), and can
author a corrective override layer that reconciles the differences.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "truthcheck",
		Short:         "USD review-versus-final truth checker",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for renders, layers and reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// usageArgs wraps a positional argument validator so its failures map to
// the usage exit code.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}

		return nil
	}
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitPass
	}

	if errors.Is(err, errVerdictFailed) {
		return exitFail
	}

	var usageErr *usageError
	if errors.As(err, &usageErr) {
		return exitUsageError
	}

	var loadErr *m.LoadError
	if errors.As(err, &loadErr) {
		return exitLoadError
	}

	var writeErr *m.WriteError
	if errors.As(err, &writeErr) {
		return exitWriteError
	}

	return exitRenderError
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errVerdictFailed) {
		rootCmd.PrintErrln("Error:", err)
	}

	if code := exitCode(err); code != exitPass {
		os.Exit(code)
	}
}
