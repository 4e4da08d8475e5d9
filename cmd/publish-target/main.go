package main

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"go.uber.org/zap/zapcore"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/matzegebbe/publish-target/internal/plan"
	"github.com/matzegebbe/publish-target/pkg/metrics"
	"github.com/matzegebbe/publish-target/pkg/util"
)

func main() {
	var opts flagOptions
	var timeout time.Duration

	flag.StringVar(&opts.ConfigPath, "config", "", "config file path (default $CONFIG_PATH or publish-target.yaml in the project dir)")
	flag.StringVar(&opts.ProjectDir, "project-dir", ".", "project directory; its name is the default artifactId")
	flag.StringVar(&opts.BuildScript, "build-script", "", "gradle build script to read (default build.gradle.kts or build.gradle in the project dir)")
	flag.StringVar(&opts.Output, "output", "", "plan output format: text, json or yaml")
	flag.StringVar(&opts.MetricsFile, "metrics-file", "", "write prometheus metrics to this file")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "timeout for credential lookups")
	zapOpts := zap.Options{Development: false, DestWriter: os.Stderr, TimeEncoder: zapcore.ISO8601TimeEncoder}
	zapOpts.BindFlags(flag.CommandLine)
	flag.Parse()

	logger := zap.New(zap.UseFlagOptions(&zapOpts))
	ctrl.SetLogger(logger)

	if err := run(context.Background(), logger, opts, timeout, os.Stdout); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, logger logr.Logger, opts flagOptions, timeout time.Duration, out io.Writer) error {
	ctx = logr.NewContext(ctx, logger)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cfg, err := runtimeLoader{lookupEnv: os.LookupEnv}.load(ctx, opts)
	if err != nil {
		logger.Error(err, "resolve configuration failed")
		return err
	}

	p, err := plan.Build(ctx, plan.Input{
		Identity:    cfg.Identity,
		ReleaseURL:  cfg.ReleaseURL,
		SnapshotURL: cfg.SnapshotURL,
		Credentials: cfg.Credentials,
		SourceName:  cfg.SourceName,
		Rewrite:     util.NewURLRewriter(cfg.URLMap),
	})
	if err != nil {
		logger.Error(err, "build publish plan failed")
		return err
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error(err, "write metrics file failed", "path", cfg.MetricsFile)
			return err
		}
	}

	if err := p.Write(out, cfg.Output); err != nil {
		logger.Error(err, "write plan failed")
		return err
	}
	return nil
}
