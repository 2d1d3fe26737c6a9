// Package cli implements the hobbyist command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/hobbyist/internal/logger"
	"github.com/mesh-intelligence/hobbyist/internal/paths"
	"github.com/mesh-intelligence/hobbyist/pkg/hobbyist"
	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by one command tree: flags, the loaded
// configuration and the logger built from it.
type app struct {
	flags     rootFlags
	configDir string
	v         *viper.Viper
	log       *logger.Logger
}

// systemError marks failures that are not the caller's fault.
type systemError struct{ err error }

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &systemError{err: err}
}

// NewRootCmd creates the top-level "hobbyist" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: logger.Nop()}

	root := &cobra.Command{
		Use:   "hobbyist",
		Short: "Manage hobbies and the persons who practise them",
		Long: "Hobbyist stores hobbies and persons. A person keeps an ordered list of\n" +
			"hobby ids that can be resolved into hobby records on request.",
		Version:           hobbyist.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.preRun,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.log.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: sqlite, memory or surrealdb")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newServeCmd(a),
		newHobbyCmd(a),
		newPersonCmd(a),
	)
	return root
}

// Execute runs the root command with os.Args and returns the process exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode maps an error to 1 for caller mistakes and 2 for storage or
// environment failures.
func exitCode(err error) int {
	var se *systemError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &se), errors.Is(err, types.ErrStorageUnavailable):
		return exitSysError
	default:
		return exitUserError
	}
}

// preRun resolves the config directory, loads config.yaml and builds the
// logger. The version command needs none of it.
func (a *app) preRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysErr(err)
	}
	pf := cmd.Root().PersistentFlags()
	if err := v.BindPFlag(cfgKeyBackend, pf.Lookup("backend")); err != nil {
		return sysErr(err)
	}
	if err := v.BindPFlag(cfgKeyLogLevel, pf.Lookup("log-level")); err != nil {
		return sysErr(err)
	}

	log, err := logger.New(logger.Options{Level: v.GetString(cfgKeyLogLevel), Writer: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}

	a.configDir = configDir
	a.v = v
	a.log = log
	return nil
}
