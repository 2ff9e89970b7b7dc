// File: cmd/bucketctl/root.go
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"bucketctl/internal/config"
	"bucketctl/internal/flags"
	"bucketctl/internal/logger"
	"bucketctl/internal/ui/menu"
	"bucketctl/pkg/formatter"
)

// cli carries the global flags and the lazily built application across commands
type cli struct {
	configPath string
	provider   string
	debug      bool

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	logger        *slog.Logger
	configManager *config.ConfigManager
	app           *appContainer

	// Wraps a subcommand context so Ctrl-C cancels in-flight requests
	interrupts  func(context.Context) (context.Context, context.CancelFunc)
	stopSignals context.CancelFunc
}

func newCLI(in io.Reader, out, errOut io.Writer) *cli {
	return &cli{
		in:     in,
		out:    out,
		errOut: errOut,
		interrupts: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		},
	}
}

func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bucketctl",
		Short: "bucketctl manages object storage buckets and objects.",
		Long: `An operator tool for creating, listing, copying, downloading and deleting
buckets and objects on S3, GCS or any S3-compatible endpoint.
Run without a subcommand to start the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The interactive menu keeps the default SIGINT exit; a prompt blocked
			// on stdin cannot observe a cancelled context
			if cmd.HasParent() {
				ctx, stop := c.interrupts(cmd.Context())
				cmd.SetContext(ctx)
				c.stopSignals = stop
			}
			return c.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.application()
			if err != nil {
				return err
			}
			svc, err := app.StorageService(cmd.Context())
			if err != nil {
				return err
			}

			m := menu.New(svc, app.Prompter, c.out, menu.Options{
				Title:    fmt.Sprintf("%s Storage Menu", svc.Provider()),
				SinkPath: app.Config.Diagnostics.File,
			})
			return m.Run(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.configPath, flags.Config, "", "Path to the config file (default ~/.config/bucketctl/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&c.provider, flags.Provider, flags.ProviderShort, "", "Provider to use instead of the configured default")
	rootCmd.PersistentFlags().BoolVarP(&c.debug, flags.Debug, flags.DebugShort, false, "Enable debug logging")

	rootCmd.AddCommand(newBucketCmd(c), newObjectCmd(c), newBrowseCmd(c), newConfigCmd(c))
	return rootCmd
}

func (c *cli) setup() error {
	c.logger = logger.NewLoggerTo(c.errOut)
	if c.debug {
		if err := logger.SetLevel("debug"); err != nil {
			return err
		}
	}

	var (
		cm  *config.ConfigManager
		err error
	)
	if c.configPath != "" {
		cm, err = config.NewConfigManagerWithPath(c.configPath)
	} else {
		cm, err = config.NewConfigManager()
	}
	if err != nil {
		return err
	}
	c.configManager = cm
	return nil
}

// Config commands never call this, so a broken config file can still be repaired
func (c *cli) application() (*appContainer, error) {
	if c.app != nil {
		return c.app, nil
	}
	app, err := newApp(c)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	c.app = app
	return app, nil
}

func (c *cli) close() error {
	if c.stopSignals != nil {
		c.stopSignals()
	}
	if c.app == nil {
		return nil
	}
	return c.app.Close()
}

// Runs the command tree and returns the process exit code
func Execute() int {
	return execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	return newCLI(in, out, errOut).run(ctx, args)
}

func (c *cli) run(ctx context.Context, args []string) int {
	rootCmd := newRootCmd(c)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(c.in)
	rootCmd.SetOut(c.out)
	rootCmd.SetErr(c.errOut)

	err := rootCmd.ExecuteContext(ctx)
	if closeErr := c.close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(c.errOut, formatter.Failure("Error: "+err.Error()))
		return 1
	}
	return 0
}
