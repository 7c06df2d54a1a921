package aws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	taggingtypes "github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi/types"
	"github.com/aws/smithy-go"
	"golang.org/x/sync/errgroup"

	"stepview/internal/period"
)

// Source selects where execution counts come from.
type Source string

const (
	// SourceMetrics sums the six CloudWatch execution metrics and derives
	// the running count by clamped subtraction.
	SourceMetrics Source = "metrics"
	// SourceExecutions counts execution statuses directly from the
	// paginated execution listing.
	SourceExecutions Source = "executions"
)

// ParseSource validates a source name.
func ParseSource(name string) (Source, error) {
	switch Source(name) {
	case SourceMetrics, SourceExecutions:
		return Source(name), nil
	}
	return "", fmt.Errorf("unknown source %q: choose from %s, %s", name, SourceMetrics, SourceExecutions)
}

// ProfileAggregator produces the sorted row set for one profile.
type ProfileAggregator struct {
	profile    string
	sfn        SFNAPI
	metrics    *MetricsFetcher
	discoverer *Discoverer
}

// NewProfileAggregator creates an aggregator over one profile's clients.
func NewProfileAggregator(client *Client) *ProfileAggregator {
	return newProfileAggregator(client.Profile(), client.sfn, client.cloudwatch, client.tagging)
}

func newProfileAggregator(profile string, sfnClient SFNAPI, cwClient CloudWatchAPI, taggingClient TaggingAPI) *ProfileAggregator {
	return &ProfileAggregator{
		profile:    profile,
		sfn:        sfnClient,
		metrics:    NewMetricsFetcher(cwClient),
		discoverer: NewDiscoverer(sfnClient, taggingClient, profile),
	}
}

// Aggregate discovers the profile's state machines and aggregates each with
// bounded concurrency. Zero discovered state machines is not an error: the
// profile simply contributes no rows.
func (a *ProfileAggregator) Aggregate(ctx context.Context, window period.Window, filters []taggingtypes.TagFilter, source Source) ([]Row, error) {
	arns, err := a.discoverer.Discover(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("discover state machines for profile %s: %w", a.profile, err)
	}
	if len(arns) == 0 {
		slog.Info("No state machines found", "profile", a.profile)
		return nil, nil
	}

	slog.Debug("Aggregating state machines", "profile", a.profile, "count", len(arns))

	// Rows land in discovery order so later duplicates deterministically win
	// during dedup. Plain errgroup without a shared context: one failed
	// aggregation must not cancel siblings, but the first failure still
	// fails the profile.
	rows := make([]Row, len(arns))
	g := new(errgroup.Group)
	g.SetLimit(maxPoolConnections)

	for i, arn := range arns {
		i, arn := i, arn
		g.Go(func() error {
			row, err := a.aggregateStateMachine(ctx, arn, window, source)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dedupSort(rows), nil
}

// aggregateStateMachine builds one row for one state machine.
func (a *ProfileAggregator) aggregateStateMachine(ctx context.Context, stateMachineARN string, window period.Window, source Source) (Row, error) {
	parsed, err := ParseARN(stateMachineARN)
	if err != nil {
		return Row{}, err
	}

	var counts MetricCounts
	switch source {
	case SourceExecutions:
		counts, err = CountExecutions(ctx, a.sfn, stateMachineARN, window)
	default:
		counts, err = a.fetchMetricCounts(ctx, stateMachineARN, window)
	}
	if err != nil {
		return Row{}, fmt.Errorf("aggregate %s: %w", parsed.Resource, err)
	}

	return Row{
		Name:      parsed.Resource,
		Profile:   a.profile,
		AccountID: parsed.AccountID,
		Region:    parsed.Region,
		Link:      ConsoleURL(stateMachineARN, parsed.Region),
		Counts:    counts,
	}, nil
}

// fetchMetricCounts issues the six metric queries concurrently and derives
// the running count once all six are in. If any one query fails the whole
// state machine fails; there are no partial-metric rows.
func (a *ProfileAggregator) fetchMetricCounts(ctx context.Context, stateMachineARN string, window period.Window) (MetricCounts, error) {
	var counts MetricCounts
	targets := []struct {
		metric string
		dest   *float64
	}{
		{MetricExecutionsStarted, &counts.Started},
		{MetricExecutionsSucceeded, &counts.Succeeded},
		{MetricExecutionsFailed, &counts.Failed},
		{MetricExecutionsAborted, &counts.Aborted},
		{MetricExecutionsTimedOut, &counts.TimedOut},
		{MetricExecutionThrottled, &counts.Throttled},
	}

	g := new(errgroup.Group)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			sum, err := a.metrics.Sum(ctx, target.metric, stateMachineARN, window)
			if err != nil {
				return err
			}
			*target.dest = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MetricCounts{}, err
	}

	counts.DeriveRunning()
	return counts, nil
}

// dedupSort keys rows by state machine name, later entries overwriting
// earlier ones sharing a name, and returns them sorted lexicographically.
func dedupSort(rows []Row) []Row {
	byName := make(map[string]Row, len(rows))
	for _, row := range rows {
		byName[row.Name] = row
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Row, 0, len(names))
	for _, name := range names {
		out = append(out, byName[name])
	}
	return out
}

// RunOptions parameterizes one dashboard run.
type RunOptions struct {
	Profiles   []string
	Window     period.Window
	TagFilters []taggingtypes.TagFilter
	Source     Source
	Verbose    bool

	// aggregate overrides the per-profile aggregation path; tests use it to
	// drive Run without real clients. Nil means build a client per profile.
	aggregate func(ctx context.Context, profile string) ([]Row, error)
}

// Run fans the profile aggregation out over all requested profiles (one task
// per profile; the profile count is operator-supplied and small) and
// flattens the per-profile row sets in profile order.
func Run(ctx context.Context, opts RunOptions) ([]Row, error) {
	aggregate := opts.aggregate
	if aggregate == nil {
		aggregate = func(ctx context.Context, profile string) ([]Row, error) {
			client, err := NewClient(ctx, profile, opts.Verbose)
			if err != nil {
				return nil, err
			}
			return NewProfileAggregator(client).Aggregate(ctx, opts.Window, opts.TagFilters, opts.Source)
		}
	}

	results := make([][]Row, len(opts.Profiles))
	g := new(errgroup.Group)

	for i, profile := range opts.Profiles {
		i, profile := i, profile
		g.Go(func() error {
			slog.Info("Aggregating profile", "profile", profile)
			rows, err := aggregate(ctx, profile)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if IsThrottling(err) {
			return nil, errors.New("throttled by AWS: reduce the number of profiles or filter on tags")
		}
		return nil, err
	}

	var rows []Row
	for _, profileRows := range results {
		rows = append(rows, profileRows...)
	}
	return rows, nil
}

// IsThrottling reports whether the error chain contains a rate-limit API error.
func IsThrottling(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ThrottlingException"
}
