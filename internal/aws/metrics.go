package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"stepview/internal/period"
)

const (
	// metricNamespace is the CloudWatch namespace for Step Functions metrics.
	metricNamespace = "AWS/States"
	// stateMachineDimension keys metrics to a single state machine.
	stateMachineDimension = "StateMachineArn"
)

// CloudWatchAPI is the minimal interface for the CloudWatch operations the
// metrics fetcher needs.
type CloudWatchAPI interface {
	GetMetricStatistics(ctx context.Context, input *cloudwatch.GetMetricStatisticsInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

// MetricsFetcher retrieves summed Step Functions execution metrics.
type MetricsFetcher struct {
	client CloudWatchAPI
}

// NewMetricsFetcher creates a fetcher using the given CloudWatch client.
func NewMetricsFetcher(client CloudWatchAPI) *MetricsFetcher {
	return &MetricsFetcher{client: client}
}

// Sum fetches one metric's Sum statistic for a state machine over the
// window, using the window width as the aggregation bucket, and adds up all
// returned datapoints. Returns 0 when the window holds no datapoints.
func (f *MetricsFetcher) Sum(ctx context.Context, metricName, stateMachineARN string, window period.Window) (float64, error) {
	out, err := f.client.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  awssdk.String(metricNamespace),
		MetricName: awssdk.String(metricName),
		Dimensions: []cwtypes.Dimension{
			{
				Name:  awssdk.String(stateMachineDimension),
				Value: awssdk.String(stateMachineARN),
			},
		},
		StartTime:  awssdk.Time(window.Start),
		EndTime:    awssdk.Time(window.End),
		Period:     awssdk.Int32(int32(window.DurationSeconds())),
		Statistics: []cwtypes.Statistic{cwtypes.StatisticSum},
	})
	if err != nil {
		return 0, fmt.Errorf("get %s statistics: %w", metricName, err)
	}

	var total float64
	for _, dp := range out.Datapoints {
		if dp.Sum != nil {
			total += *dp.Sum
		}
	}
	return total, nil
}
