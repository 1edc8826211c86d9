// Package cli builds the catchment model's command tree: run, validate,
// and worker. It mirrors inmaputil/cmd.go's Cfg/InitializeConfig shape —
// a struct holding the cobra commands plus a shared Viper instance wired
// through PersistentPreRunE — narrowed to this core's much smaller
// configuration surface.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dvalters/catchmentfp/config"
	"github.com/dvalters/catchmentfp/dem"
	"github.com/dvalters/catchmentfp/executor"
	"github.com/dvalters/catchmentfp/executor/distexec"
	"github.com/dvalters/catchmentfp/grid"
	"github.com/dvalters/catchmentfp/writer"
)

// Cfg holds the command tree and the Viper instance every subcommand
// reads its configuration from.
type Cfg struct {
	v *viper.Viper

	root, runCmd, validateCmd, workerCmd *cobra.Command

	paramFile string
	outDir    string
	csvPath   string
	interval  int
	workers   []string
	rpcPort   string
}

// Root builds and returns the catchment command tree.
func Root() *cobra.Command {
	cfg := &Cfg{v: config.New()}

	cfg.root = &cobra.Command{
		Use:   "catchment",
		Short: "A cellular-automaton shallow-water catchment flow-routing model.",
		Long: `catchment runs a LISFLOOD-FP-style inertial shallow-water flow-routing
simulation over a DEM-derived grid. Configuration comes from a
line-oriented parameter file, overridable by command-line flags or
CATCHMENT_-prefixed environment variables.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if cfg.paramFile == "" {
				return nil
			}
			return config.LoadParamFile(cfg.v, cfg.paramFile)
		},
	}
	cfg.root.PersistentFlags().StringVar(&cfg.paramFile, "params", "", "path to the parameter file")
	config.BindFlags(cfg.v, cfg.root.PersistentFlags())

	cfg.runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a simulation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.run(cmd.Context())
		},
		DisableAutoGenTag: true,
	}
	cfg.runCmd.Flags().StringVar(&cfg.outDir, "out", "", "directory for PNG depth-map snapshots (disabled if empty)")
	cfg.runCmd.Flags().StringVar(&cfg.csvPath, "csv", "", "path for the CSV mass-balance summary (disabled if empty)")
	cfg.runCmd.Flags().IntVar(&cfg.interval, "interval", 1, "write a snapshot every N steps")
	cfg.runCmd.Flags().StringSliceVar(&cfg.workers, "workers", nil, "addresses of running worker processes for distributed execution; runs serially if empty")

	cfg.validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Check the DEM and parameter file without running a simulation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.validate()
		},
		DisableAutoGenTag: true,
	}

	cfg.workerCmd = &cobra.Command{
		Use:   "worker",
		Short: "Start a halo-exchange worker process and wait for RPC requests.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.serveWorker()
		},
		DisableAutoGenTag: true,
	}
	cfg.workerCmd.Flags().StringVar(&cfg.rpcPort, "port", "6060", "RPC listen port")

	cfg.root.AddCommand(cfg.runCmd, cfg.validateCmd, cfg.workerCmd)
	return cfg.root
}

func (cfg *Cfg) validate() error {
	demCfg, _ := config.Resolve(cfg.v)
	if err := config.CheckDEMPath(demCfg.DEMPath); err != nil {
		return err
	}
	g, hdr, err := dem.Load(demCfg.DEMPath)
	if err != nil {
		return err
	}
	if err := g.ValidateOutlet(); err != nil {
		return err
	}
	extent := hdr.Extent()
	fmt.Printf("OK: %s is a %dx%d catchment with a valid outlet, extent (%.1f,%.1f)-(%.1f,%.1f)\n",
		demCfg.DEMPath, g.IMax, g.JMax, extent.Min.X, extent.Min.Y, extent.Max.X, extent.Max.Y)
	return nil
}

func (cfg *Cfg) run(ctx context.Context) error {
	demCfg, params := config.Resolve(cfg.v)
	if err := config.CheckDEMPath(demCfg.DEMPath); err != nil {
		return err
	}
	g, hdr, err := dem.Load(demCfg.DEMPath)
	if err != nil {
		return err
	}
	params.DX = hdr.CellSize
	params.DY = hdr.CellSize
	params.NoDataValue = hdr.NoDataValue
	params.MaxDepth = grid.MinDepthForCFL // stays at this floor for the whole run; nothing updates it from observed depths

	if err := g.ValidateOutlet(); err != nil {
		return err
	}

	w, closeWriter, err := cfg.buildWriter()
	if err != nil {
		return err
	}
	if closeWriter != nil {
		defer closeWriter()
	}

	log := logrus.New()
	log.WithField("config_fingerprint", config.Fingerprint(params)).Info("starting run")

	if len(cfg.workers) > 0 {
		return cfg.runDistributed(ctx, g, params, w, log)
	}

	e := executor.New(g, params, w, log)
	if err := e.Run(ctx, demCfg.Iterations); err != nil {
		return err
	}
	bal := e.MassBalance()
	log.WithFields(logrus.Fields{"injected": bal.Injected, "clamped": bal.ClampedOutflow, "balance": bal.Balance()}).Info("run complete")
	return nil
}

func (cfg *Cfg) runDistributed(ctx context.Context, g *grid.Grid, params grid.Params, w writer.Writer, log logrus.FieldLogger) error {
	cluster, err := distexec.Dial(cfg.workers)
	if err != nil {
		return err
	}
	defer cluster.Shutdown()

	parts := distexec.SplitRows(g, len(cfg.workers))
	if err := cluster.Init(parts, params); err != nil {
		return err
	}

	n := cfg.v.GetInt("no_of_iterations")
	var totalClamped float64
	for s := 0; s < n; s++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		clamped, err := cluster.Step(ctx)
		if err != nil {
			return err
		}
		totalClamped += clamped
		if w != nil {
			// Merge is only needed when a writer wants to see the grid;
			// cheap partitions mean re-merging every interval step is fine.
			distexec.Merge(g, parts)
			if err := w.Write(ctx, s, g); err != nil {
				return err
			}
		}
		log.WithFields(logrus.Fields{"step": s, "clamped": clamped}).Info("distributed step complete")
	}
	log.WithFields(logrus.Fields{"total_clamped": totalClamped}).Info("distributed run complete")
	return nil
}

func (cfg *Cfg) buildWriter() (writer.Writer, func(), error) {
	var ws writer.Multi
	var closers []func()

	if cfg.outDir != "" {
		ws = append(ws, writer.Interval{N: cfg.interval, W: writer.DepthPNG{
			Dir:      filepath.Join(cfg.outDir, "depth"),
			Prefix:   "depth",
			MaxDepth: cfg.v.GetFloat64("water_depth_erosion_threshold"),
		}})
	}
	if cfg.csvPath != "" {
		csvW, err := writer.NewCSVSummary(cfg.csvPath)
		if err != nil {
			return nil, nil, err
		}
		ws = append(ws, writer.Interval{N: cfg.interval, W: csvW})
		closers = append(closers, func() { csvW.Close() })
	}
	if len(ws) == 0 {
		return nil, nil, nil
	}
	return ws, func() {
		for _, c := range closers {
			c()
		}
	}, nil
}

func (cfg *Cfg) serveWorker() error {
	w := distexec.NewWorker(logrus.StandardLogger())
	return distexec.Listen(w, cfg.rpcPort)
}
