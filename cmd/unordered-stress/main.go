// Command unordered-stress runs random workloads against the containers
// and exits non-zero when any invariant breaks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/homier/unordered/internal/workload"
)

var (
	configPath = flag.String("config", "", "path to a TOML stress configuration")
	logFile    = flag.String("log-file", "", "write logs to this file, rotated by size")
	logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
	maxSizeMB  = flag.Int("log-max-size", 64, "size in MB at which the log file is rotated")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run returns the process exit code so deferred log flushing happens
// before the process exits.
func run() int {
	logger, err := newLogger(*logFile, *logLevel, *maxSizeMB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	f := workload.DefaultFile()
	if *configPath != "" {
		if f, err = workload.Load(*configPath); err != nil {
			logger.Error("load config", zap.Error(err))
			return 2
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		zap.Int("workers", f.Workload.Workers),
		zap.Int("ops", f.Workload.Ops),
		zap.Int("key_space", f.Workload.KeySpace),
		zap.Bool("multi", f.Workload.Multi),
		zap.Float32("max_load_factor", f.Table.MaxLoadFactor),
		zap.Stringer("growth", f.Table.Growth),
	)

	results, err := workload.Run(ctx, f, logger)
	if err != nil {
		logger.Error("workload failed", zap.Error(err))
		return 1
	}

	total := 0
	for _, r := range results {
		total += r.Inserts + r.Finds + r.Erases
	}
	logger.Info("workload passed", zap.Int("ops", total))

	return 0
}

func newLogger(path, level string, maxSizeMB int) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stdout)
	if path != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: 3,
			Compress:   true,
		})
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, zap.NewAtomicLevelAt(lvl))

	return zap.New(core, zap.AddCaller()), nil
}
