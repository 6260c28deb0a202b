// Package cli implements the luma command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dpshade/luma/internal/config"
	apperrors "github.com/dpshade/luma/internal/errors"
	"github.com/dpshade/luma/internal/logging"
	"github.com/dpshade/luma/internal/service"
)

// Version is set at build time
var Version = "dev"

// GlobalOptions are the persistent flags shared by every command
type GlobalOptions struct {
	ConfigFile string
	DataDir    string
	Store      string
	Verbose    bool
}

// Builder opens the service once global flags are parsed
type Builder func(opts GlobalOptions) (*service.Service, error)

// TUIRunner starts the interactive interface
type TUIRunner func(svc *service.Service) error

// CLI holds the state shared by all commands of one invocation
type CLI struct {
	opts    GlobalOptions
	build   Builder
	runTUI  TUIRunner
	service *service.Service
	isTTY   func() bool
}

// DefaultBuilder resolves configuration, builds the logger and opens the service
func DefaultBuilder(opts GlobalOptions) (*service.Service, error) {
	overrides := map[string]string{}
	if opts.DataDir != "" {
		overrides[config.KeyDataDir] = opts.DataDir
	}
	if opts.Store != "" {
		overrides[config.KeyStore] = opts.Store
	}

	cfg, err := config.Load(config.Options{ConfigFile: opts.ConfigFile, Overrides: overrides})
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		File:    cfg.LogFile(),
		Level:   cfg.Log.Level,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	svc, err := service.New(cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, err
	}
	return svc, nil
}

// NewRootCmd creates the top-level "luma" command
func NewRootCmd(build Builder, runTUI TUIRunner) *cobra.Command {
	c := &CLI{
		build:  build,
		runTUI: runTUI,
		isTTY: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}
	return c.rootCmd()
}

func (c *CLI) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "luma",
		Short: "Build structured AI prompts with the 7-step framework",
		Long: `luma assembles prompts from seven parts (role, task, context, format,
constraints, examples, iteration), scores them, and keeps a local library.

Run without arguments to start the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoService] == "true" {
				return nil
			}
			return c.open()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.runTUI == nil || !c.isTTY() {
				return cmd.Help()
			}
			return c.runTUI(c.service)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/luma/config.yaml)")
	flags.StringVar(&c.opts.DataDir, "data-dir", "", "library directory (default ~/.luma, env LUMA_DIR)")
	flags.StringVar(&c.opts.Store, "store", "", "storage backend: json, sqlite or memory")
	flags.BoolVarP(&c.opts.Verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		c.newCmd(),
		c.instantCmd(),
		c.composeCmd(),
		c.validateCmd(),
		c.listCmd(),
		c.searchCmd(),
		c.showCmd(),
		c.deleteCmd(),
		c.exportCmd(),
		c.copyCmd(),
		c.importCmd(),
		c.templatesCmd(),
		c.themeCmd(),
		c.schemaCmd(),
		c.versionCmd(),
	)
	c.closeOnError(root)

	return root
}

// closeOnError wraps every RunE so a failing command still releases the
// service. Cobra skips PersistentPostRun when RunE returns an error.
func (c *CLI) closeOnError(cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if err != nil {
				c.close()
			}
			return err
		}
	}
	for _, sub := range cmd.Commands() {
		c.closeOnError(sub)
	}
}

// annotationNoService marks commands that run without opening the library
const annotationNoService = "luma/no-service"

func (c *CLI) open() error {
	if c.service != nil {
		return nil
	}
	svc, err := c.build(c.opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	c.service = svc
	return nil
}

func (c *CLI) close() {
	if c.service == nil {
		return
	}
	logger := c.service.Logger()
	if err := c.service.Close(); err != nil {
		logger.Warn("failed to close store", zap.Error(err))
	}
	_ = logger.Sync()
	c.service = nil
}

// Execute runs the root command and reports failures on stderr
func Execute(root *cobra.Command, stderr io.Writer) int {
	if err := root.Execute(); err != nil {
		verbose, _ := root.PersistentFlags().GetBool("verbose")
		handler := apperrors.NewCLIErrorHandler(verbose, nil)
		fmt.Fprintln(stderr, handler.FormatError(err))
		return 1
	}
	return 0
}
