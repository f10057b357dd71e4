package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	tally "github.com/uber-go/tally/v4"

	"github.com/edgeplan/edgeplan/plan"
)

var (
	// CLI flags for the planner
	inputPath   string // Path to the problem description file
	outputPath  string // Path to write the placement to (empty = stdout)
	strategy    string // Placement strategy name
	workers     int    // Scoring worker count (0 = one per CPU)
	progress    bool   // Render a progress bar on stderr
	resultsPath string // File to save the JSON results report to
	configPath  string // Path to YAML planner configuration file
	logLevel    string // Log verbosity level

	// CLI flags for score
	placementPath string // Path to an existing placement file to grade
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "edgeplan",
	Short: "Content-placement planner for CDN edge caches",
}

// planCmd loads a problem, runs the greedy optimizer and emits the placement.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a placement plan for a problem file",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if inputPath == "" {
			logrus.Fatalf("--input is required")
		}

		// Load config file if specified; explicit CLI flags override file values.
		cfg := plan.DefaultConfig()
		if configPath != "" {
			cfg, err = plan.LoadConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load config: %v", err)
			}
		}
		if cmd.Flags().Changed("strategy") {
			cfg.Strategy = strategy
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers = workers
		}
		if cmd.Flags().Changed("progress") {
			cfg.Progress = progress
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid config: %v", err)
		}

		p, err := plan.LoadProblem(inputPath)
		if err != nil {
			logrus.Fatalf("Failed to load problem: %v", err)
		}
		logrus.Infof("Loaded problem: %d videos, %d endpoints, %d demand entries, %d caches of capacity %d",
			len(p.Videos), len(p.Endpoints), len(p.Demands), p.NumCaches, p.CacheCapacity)

		startTime := time.Now()
		opt := plan.NewOptimizer(p, plan.NewStrategy(cfg.Strategy, cfg.Workers), plan.NewMetrics(tally.NoopScope))

		var bar *plan.ProgressBar
		if cfg.Progress {
			bar = plan.NewProgressBar(p)
			bar.Start()
			opt.SetObserver(bar.Observe)
		}
		st := opt.Run()
		if bar != nil {
			bar.Finish()
		}

		res := plan.Evaluate(p, st)

		if outputPath != "" {
			if err := plan.SavePlacement(outputPath, st); err != nil {
				logrus.Fatalf("Failed to write placement: %v", err)
			}
		} else {
			if err := plan.WritePlacement(os.Stdout, st); err != nil {
				logrus.Fatalf("Failed to write placement: %v", err)
			}
		}

		results := plan.NewResultsOutput(cfg.Strategy, p, st, res, startTime)
		if err := results.Save(resultsPath); err != nil {
			logrus.Fatalf("Failed to save results: %v", err)
		}
		logrus.Infof("Placement complete: score=%d", res.Score)
	},
}

// scoreCmd grades an existing placement file against a problem.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an existing placement file",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if inputPath == "" {
			logrus.Fatalf("--input is required")
		}
		if placementPath == "" {
			logrus.Fatalf("--placement is required")
		}

		p, err := plan.LoadProblem(inputPath)
		if err != nil {
			logrus.Fatalf("Failed to load problem: %v", err)
		}
		st, err := plan.LoadPlacement(placementPath, p)
		if err != nil {
			logrus.Fatalf("Failed to load placement: %v", err)
		}

		res := plan.Evaluate(p, st)
		fmt.Printf("Saved latency: %d\n", res.SavedLatency)
		fmt.Printf("Total requests: %d\n", res.TotalRequests)
		fmt.Printf("Score: %d\n", res.Score)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	planCmd.Flags().StringVar(&inputPath, "input", "", "Path to the problem description file")
	planCmd.Flags().StringVar(&outputPath, "output", "", "Path to write the placement to (default: stdout)")
	planCmd.Flags().StringVar(&strategy, "strategy", plan.StrategyRankOnce, "Placement strategy (best-first, rank-once)")
	planCmd.Flags().IntVar(&workers, "workers", 0, "Scoring worker count (0 = one per CPU)")
	planCmd.Flags().BoolVar(&progress, "progress", false, "Render a progress bar on stderr")
	planCmd.Flags().StringVar(&resultsPath, "results-path", "", "File to save the JSON results report to")
	planCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML planner configuration file")
	planCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	scoreCmd.Flags().StringVar(&inputPath, "input", "", "Path to the problem description file")
	scoreCmd.Flags().StringVar(&placementPath, "placement", "", "Path to the placement file to grade")
	scoreCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(scoreCmd)
}
