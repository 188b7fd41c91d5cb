package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	configapp "sysmon/internal/config/application"
	"sysmon/internal/infrastructure/logger"
	metricsapp "sysmon/internal/metrics/application"
	metricsinfra "sysmon/internal/metrics/infrastructure"
)

var version = "dev"

func newApp(action func(ctx context.Context, opts configapp.CLIOptions) error) *cli.App {
	return &cli.App{
		Name:    "sysmon",
		Usage:   "live one-line system monitor (CPU, RAM, disk, disk I/O, network)",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "interval", Aliases: []string{"i"}, Usage: "sampling period, e.g. 1s or 500ms (default: 1s)"},
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "mount path for disk usage (default: /)"},
			&cli.StringSliceFlag{Name: "disk-prefix", Usage: "block device name prefix counted for disk I/O; repeatable (default: sd, nvme, hd)"},
			&cli.StringFlag{Name: "proc-root", Usage: "procfs mount to read counters from (default: /proc)"},
			&cli.StringFlag{Name: "source", Usage: "counter backend: procfs or gopsutil"},
			&cli.StringFlag{Name: "log-level", Usage: "DEBUG, INFO, WARN or ERROR"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
			&cli.StringFlag{Name: "log-output", Usage: "stdout, stderr or a file path (default: stderr)"},
			&cli.StringFlag{Name: "env-file", Usage: "dotenv file to load (default: .env)"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return fmt.Errorf("unexpected arguments: %v", c.Args().Slice())
			}
			return action(c.Context, configapp.CLIOptions{
				Interval:     c.String("interval"),
				Path:         c.String("path"),
				DiskPrefixes: c.StringSlice("disk-prefix"),
				ProcRoot:     c.String("proc-root"),
				Source:       c.String("source"),
				LogLevel:     c.String("log-level"),
				LogFormat:    c.String("log-format"),
				LogOutput:    c.String("log-output"),
				EnvFile:      c.String("env-file"),
				ConfigPath:   c.String("config"),
			})
		},
	}
}

// newMonitor returns the app action drawing the status line on stdout
func newMonitor(stdout io.Writer) func(ctx context.Context, opts configapp.CLIOptions) error {
	var width metricsinfra.WidthFunc
	if f, ok := stdout.(*os.File); ok {
		width = metricsinfra.FileWidth(f)
	}
	return func(ctx context.Context, opts configapp.CLIOptions) error {
		return monitor(ctx, opts, metricsinfra.NewTerminalSink(stdout, width))
	}
}

func monitor(ctx context.Context, opts configapp.CLIOptions, sink *metricsinfra.TerminalSink) error {
	// Until the full configuration is known, log with whatever the flags say
	bootLogger := logger.NewLogger(logger.Options{Level: opts.LogLevel, Format: opts.LogFormat, Output: opts.LogOutput})
	configapp.LoadEnvFile(bootLogger, opts.EnvFile)

	fileCfg, err := configapp.LoadFileConfig(ctx, configapp.ResolveConfigPath(opts))
	if err != nil {
		return err
	}

	cfg, err := configapp.LoadRuntimeConfig(opts, fileCfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appLogger := logger.NewLogger(cfg.LoggerOptions())
	logger.SetDefaultLogger(appLogger)

	reader, err := metricsinfra.NewSystemMetricsReader(cfg.Source, cfg.ProcRoot, cfg.DiskPrefixes, appLogger)
	if err != nil {
		return err
	}

	sampler := metricsapp.NewSampler(reader, reader, sink, appLogger, cfg.SamplerOptions())

	appLogger.Debug("Starting sysmon",
		"version", version,
		"interval", cfg.Interval,
		"path", cfg.MountPath,
		"source", cfg.Source,
		"disk_prefixes", cfg.DiskPrefixes,
	)

	runErr := sampler.Run(ctx)
	if err := sink.Finish(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to finish status line: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	appLogger.Debug("Interrupted, shutting down")
	return nil
}

func run(args []string, stdout io.Writer) error {
	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return newApp(newMonitor(stdout)).RunContext(sigCtx, args)
}

func main() {
	if err := run(os.Args, os.Stdout); err != nil {
		logger.DefaultLogger().Error("Application error", "err", err)
		os.Exit(1)
	}
}
