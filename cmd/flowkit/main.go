// Command flowkit runs and validates pipeline definitions from YAML files.
//
// Only the built-in static connector is registered, so pipelines executed
// through this binary read inline rows and buffer writes in memory; real
// connectors are injected by the embedding service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datalith/flowkit/config"
	"github.com/datalith/flowkit/connector"
	"github.com/datalith/flowkit/engine"
	"github.com/datalith/flowkit/logger"
	"github.com/datalith/flowkit/observability"
	"github.com/datalith/flowkit/pipeline"
	"github.com/datalith/flowkit/transform"
	"github.com/datalith/flowkit/version"
)

const serviceName = "flowkit"

type appConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
}

func (c *appConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
}

func main() {
	var (
		configFile string
		dryRun     bool
	)

	root := &cobra.Command{
		Use:          "flowkit",
		Short:        "Execute and validate data pipeline definitions",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to config.yml")

	runCmd := &cobra.Command{
		Use:   "run <pipeline.yaml>",
		Short: "Execute a pipeline definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd.Context(), args[0], configFile, dryRun)
		},
	}
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "use sample data and skip destination writes")

	validateCmd := &cobra.Command{
		Use:   "validate <pipeline.yaml>",
		Short: "Validate a pipeline definition without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return validatePipeline(args[0])
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(*cobra.Command, []string) {
			fmt.Println(version.Resolve())
		},
	}

	root.AddCommand(runCmd, validateCmd, versionCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPipeline(ctx context.Context, path, configFile string, dryRun bool) error {
	var cfg appConfig
	if err := config.Load(serviceName, &cfg, configFile); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(&cfg.Logging, serviceName)
	logger.SetGlobalLogger(log)

	engineOpts := []engine.Option{engine.WithLogger(log)}

	if cfg.Telemetry.Enabled {
		tracerCfg := observability.DefaultTracerConfig(serviceName)
		tracerCfg.ServiceVersion = cfg.Version
		tracerCfg.Environment = cfg.Environment
		tracerCfg.Endpoint = cfg.Telemetry.Endpoint
		tracerCfg.Insecure = cfg.Telemetry.Insecure
		tracerCfg.SampleRate = cfg.Telemetry.SampleRate

		tp, err := observability.InitTracer(ctx, tracerCfg)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		defer func() { _ = tp.Shutdown(context.Background()) }()

		meterCfg := observability.DefaultMeterConfig(serviceName)
		meterCfg.ServiceVersion = cfg.Version
		meterCfg.Environment = cfg.Environment
		meterCfg.Endpoint = cfg.Telemetry.Endpoint
		meterCfg.Insecure = cfg.Telemetry.Insecure

		mp, err := observability.InitMeter(ctx, meterCfg)
		if err != nil {
			return fmt.Errorf("initializing meter: %w", err)
		}
		defer func() { _ = mp.Shutdown(context.Background()) }()

		metrics, err := observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			return fmt.Errorf("creating metrics: %w", err)
		}
		engineOpts = append(engineOpts, engine.WithMetrics(metrics))
	}

	p, err := pipeline.LoadFile(path)
	if err != nil {
		return err
	}

	ports := connector.NewRegistry()
	ports.Register("static", connector.NewStatic())

	eng := engine.New(ports, engineOpts...)
	result := eng.Execute(ctx, p, engine.Options{DryRun: dryRun})

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if !result.Success {
		return fmt.Errorf("pipeline %s failed", p.ID)
	}
	return nil
}

func validatePipeline(path string) error {
	p, err := pipeline.LoadFile(path)
	if err != nil {
		return err
	}
	if _, err := engine.Order(p); err != nil {
		return err
	}
	for _, n := range p.Nodes {
		if n.Type != pipeline.Transform {
			continue
		}
		transformType, _ := n.Config["transformType"].(string)
		if !transform.Registered(transformType) {
			fmt.Printf("warning: node %s: unknown transformType %q, rows will pass through unchanged\n", n.ID, transformType)
		}
	}
	fmt.Printf("pipeline %s: ok (%d nodes, %d edges)\n", p.ID, len(p.Nodes), len(p.Edges))
	return nil
}
