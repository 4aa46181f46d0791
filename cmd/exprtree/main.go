package main

import (
	"context"
	"flag"
	"os"

	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/darkowlzz/expression-toolkit/artifact"
	"github.com/darkowlzz/expression-toolkit/config"
	"github.com/darkowlzz/expression-toolkit/pipeline"
	"github.com/darkowlzz/expression-toolkit/telemetry/export"
)

var setupLog = logf.Log.WithName("setup")

func main() {
	var configPath string
	var outputDir string
	flag.StringVar(&configPath, "config", "", "Path to the YAML configuration file. The defaults are used when empty.")
	flag.StringVar(&outputDir, "output-dir", "", "Directory the formula file and the tree images are written into. "+
		"Overrides the configuration and the "+config.EnvOutputDir+" environment variable.")
	opts := zap.Options{
		Development: true,
	}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	logf.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	// Setup a tracer provider.
	shutdown, err := export.InstallStdoutExporter("exprtree", os.Stdout)
	if err != nil {
		setupLog.Error(err, "unable to set up tracing")
		os.Exit(1)
	}
	defer shutdown()

	if err := run(context.Background(), configPath, outputDir); err != nil {
		setupLog.Error(err, "run failed")
		shutdown()
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, outputDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	store := artifact.NewDiskStore(cfg.OutputDir)
	p, err := pipeline.New(cfg, store)
	if err != nil {
		return err
	}

	setupLog.Info("starting run", "formulas", cfg.Formulas, "trees", cfg.Trees, "outputDir", cfg.OutputDir)
	report, err := p.Run(ctx)
	if err != nil {
		return err
	}
	for _, t := range report.Trees {
		setupLog.Info("tree", "depth", t.Depth, "postfix", t.Postfix, "image", store.Path(t.Image))
	}
	setupLog.Info("done", "formulaFile", store.Path(cfg.FormulaFile))
	return nil
}
