package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/bovespa-fetcher/internal/config"
	"github.com/rxtech-lab/bovespa-fetcher/internal/logger"
	"github.com/rxtech-lab/bovespa-fetcher/internal/version"
	"github.com/rxtech-lab/bovespa-fetcher/internal/workspace"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/marketdata"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/marketdata/persister"
)

// loadConfig reads the config file and applies the command line overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"data":     &cfg.DataDir,
		"logs":     &cfg.LogDir,
		"provider": &cfg.Provider,
		"format":   &cfg.Format,
	}

	for flag, target := range overrides {
		if cmd.IsSet(flag) {
			*target = cmd.String(flag)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// progressRenderer draws writer progress on w, creating the bar on first use.
func progressRenderer(w io.Writer) persister.OnProgress {
	var bar *progressbar.ProgressBar

	return func(current float64, total float64, message string) {
		if bar == nil {
			bar = progressbar.NewOptions(int(total),
				progressbar.OptionSetWriter(w),
				progressbar.OptionSetDescription(message),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		_ = bar.Set(int(current))
	}
}

// fetchAction runs the pipeline once. A failed fetch is reported on stdout
// and in the log file but does not fail the command.
func fetchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := workspace.EnsureDirectories(cfg.DataDir, cfg.LogDir); err != nil {
		return err
	}

	fileLogger, err := logger.NewFileLogger(cfg.LogPath())
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	defer fileLogger.Close()

	var onProgress persister.OnProgress
	if !cmd.Bool("quiet") {
		onProgress = progressRenderer(cmd.ErrWriter)
	}

	client, err := marketdata.NewClient(cfg, fileLogger, onProgress)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	if _, err := client.Run(ctx, cmd.Writer); err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}

	return nil
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := config.Schema()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, schema)

	return nil
}

func providersAction(_ context.Context, cmd *cli.Command) error {
	for _, name := range marketdata.GetSupportedProviders() {
		info, err := marketdata.GetProviderInfo(name)
		if err != nil {
			return err
		}

		auth := ""
		if info.RequiresAuth {
			auth = " (requires API key)"
		}

		fmt.Fprintf(cmd.Root().Writer, "%-10s %s%s\n", info.Name, info.Description, auth)
	}

	return nil
}

func newCommand(stdout io.Writer, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "bovespa",
		Usage:     "Fetch one month of Bovespa index history and save it to a timestamped file",
		Version:   version.GetVersion(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
				Sources: cli.EnvVars("BOVESPA_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Directory the output files are written to",
				Value:   config.DefaultDataDir,
			},
			&cli.StringFlag{
				Name:    "logs",
				Aliases: []string{"l"},
				Usage:   "Directory of the log file",
				Value:   config.DefaultLogDir,
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   fmt.Sprintf("Data provider to use (%s)", strings.Join(marketdata.GetSupportedProviders(), ", ")),
				Value:   config.DefaultProvider,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (csv, parquet)",
				Value:   config.DefaultFormat,
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Do not draw the progress bar",
			},
		},
		Action: fetchAction,
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the configuration file",
				Action: schemaAction,
			},
			{
				Name:   "providers",
				Usage:  "List the supported data providers",
				Action: providersAction,
			},
		},
	}
}

// run executes the command and returns the process exit code. Errors raised
// before the log file exists go to the console logger on stderr.
func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	if err := newCommand(stdout, stderr).Run(ctx, args); err != nil {
		consoleLog := logger.NewLogger(stderr)
		consoleLog.Error(err.Error())
		_ = consoleLog.Sync()

		return 1
	}

	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}
