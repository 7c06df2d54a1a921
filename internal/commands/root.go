package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stepview/internal/aws"
	"stepview/internal/config"
	"stepview/internal/logging"
	"stepview/internal/period"
	"stepview/internal/report"
	"stepview/internal/tui"
)

var (
	version string
	commit  string
	date    string
	cfg     config.Config
)

var rootFlags struct {
	profiles string
	period   string
	tags     []string
	source   string
	format   string
	timeout  time.Duration
	verbose  bool
}

var rootCmd = &cobra.Command{
	Use:   "stepview",
	Short: "stepview — AWS Step Functions execution dashboard",
	Long: `stepview aggregates Step Functions execution status across multiple AWS
credential profiles and shows a per-state-machine summary table: executions
started, succeeded percentage, running, and failed/aborted/timed-out/
throttled counts over a lookback period.

Counts come from the six CloudWatch execution metrics by default; with
--source executions they are tallied from the paginated execution listing
instead (the two differ under eventual consistency).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(rootFlags.verbose)
		loaded, err := config.Load(".")
		if err != nil {
			slog.Warn("Failed to load config file", "error", err)
		} else {
			cfg = loaded
		}
	},
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootFlags.verbose, "verbose", false, "Enable verbose logging (includes SDK request logging)")
	rootCmd.Flags().StringVar(&rootFlags.profiles, "profile", "default", "Comma-separated AWS credential profile names")
	rootCmd.Flags().StringVar(&rootFlags.period, "period", "day", "Lookback period: minute, hour, today, day, week, month or year")
	rootCmd.Flags().StringSliceVar(&rootFlags.tags, "tags", nil, "Tag filters as key=value pairs (entries without '=' are ignored)")
	rootCmd.Flags().StringVar(&rootFlags.source, "source", "metrics", "Execution counts source: metrics or executions")
	rootCmd.Flags().StringVar(&rootFlags.format, "format", "tui", "Output format: tui or plain")
	rootCmd.Flags().DurationVar(&rootFlags.timeout, "timeout", 5*time.Minute, "Aggregation timeout")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Apply config file defaults where flags were not explicitly set
	applyConfigDefaults()

	if rootFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rootFlags.timeout)
		defer cancel()
	}

	// All input validation happens before any network call
	p, err := period.Parse(rootFlags.period)
	if err != nil {
		return err
	}
	source, err := aws.ParseSource(rootFlags.source)
	if err != nil {
		return err
	}
	if rootFlags.format != "tui" && rootFlags.format != "plain" {
		return fmt.Errorf("unsupported format: %s (use tui or plain)", rootFlags.format)
	}

	profiles := splitProfiles(rootFlags.profiles)
	if len(profiles) == 0 {
		return fmt.Errorf("no profiles specified")
	}
	filters := aws.BuildTagFilters(aws.ParseTagArgs(rootFlags.tags))

	// "now" is captured once here; every concurrent branch of the run sees
	// the identical window.
	window := p.Resolve(time.Now())
	slog.Info("Aggregating executions", "profiles", profiles, "period", p, "source", source)

	rows, err := aws.Run(ctx, aws.RunOptions{
		Profiles:   profiles,
		Window:     window,
		TagFilters: filters,
		Source:     source,
		Verbose:    rootFlags.verbose,
	})
	if err != nil {
		return enhanceError("aggregate state machines", err)
	}

	if rootFlags.format == "plain" {
		return report.TableReporter{Writer: os.Stdout}.Render(rows)
	}
	return tui.Show(fmt.Sprintf("STEPVIEW (period: %s)", p), rows)
}

func applyConfigDefaults() {
	if rootFlags.profiles == "default" && len(cfg.Profiles) > 0 {
		rootFlags.profiles = strings.Join(cfg.Profiles, ",")
	}
	if rootFlags.period == "day" && cfg.Period != "" {
		rootFlags.period = cfg.Period
	}
	if len(rootFlags.tags) == 0 && len(cfg.Tags) > 0 {
		rootFlags.tags = cfg.Tags
	}
	if rootFlags.source == "metrics" && cfg.Source != "" {
		rootFlags.source = cfg.Source
	}
	if rootFlags.format == "tui" && cfg.Format != "" {
		rootFlags.format = cfg.Format
	}
	if rootFlags.timeout == 5*time.Minute && cfg.TimeoutDuration() > 0 {
		rootFlags.timeout = cfg.TimeoutDuration()
	}
}
