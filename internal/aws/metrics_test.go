package aws

import (
	"context"
	"fmt"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"stepview/internal/period"
)

type mockCloudWatchClient struct {
	getMetricStatisticsFn func(ctx context.Context, input *cloudwatch.GetMetricStatisticsInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

func (m *mockCloudWatchClient) GetMetricStatistics(ctx context.Context, input *cloudwatch.GetMetricStatisticsInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	return m.getMetricStatisticsFn(ctx, input, opts...)
}

func testWindow(t *testing.T) period.Window {
	t.Helper()
	now := time.Date(2022, 5, 8, 12, 5, 5, 0, time.UTC)
	return period.Day.Resolve(now)
}

func TestMetricsFetcher_Sum(t *testing.T) {
	mock := &mockCloudWatchClient{
		getMetricStatisticsFn: func(_ context.Context, input *cloudwatch.GetMetricStatisticsInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
			if *input.Namespace != "AWS/States" {
				t.Fatalf("expected namespace AWS/States, got %q", *input.Namespace)
			}
			if *input.MetricName != MetricExecutionsSucceeded {
				t.Fatalf("expected metric %s, got %q", MetricExecutionsSucceeded, *input.MetricName)
			}
			if len(input.Dimensions) != 1 || *input.Dimensions[0].Name != "StateMachineArn" {
				t.Fatalf("expected StateMachineArn dimension, got %v", input.Dimensions)
			}
			if *input.Period != 86400 {
				t.Fatalf("expected period 86400, got %d", *input.Period)
			}
			return &cloudwatch.GetMetricStatisticsOutput{
				Datapoints: []cwtypes.Datapoint{
					{Sum: awssdk.Float64(3)},
					{Sum: awssdk.Float64(2)},
				},
			}, nil
		},
	}

	fetcher := NewMetricsFetcher(mock)
	sum, err := fetcher.Sum(context.Background(), MetricExecutionsSucceeded, "arn:aws:states:eu-west-1:123456789012:stateMachine:sm1", testWindow(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != 5 {
		t.Fatalf("expected sum 5, got %f", sum)
	}
}

func TestMetricsFetcher_NoDatapoints(t *testing.T) {
	mock := &mockCloudWatchClient{
		getMetricStatisticsFn: func(_ context.Context, _ *cloudwatch.GetMetricStatisticsInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
			return &cloudwatch.GetMetricStatisticsOutput{}, nil
		},
	}

	fetcher := NewMetricsFetcher(mock)
	sum, err := fetcher.Sum(context.Background(), MetricExecutionsStarted, "arn:aws:states:eu-west-1:123456789012:stateMachine:sm1", testWindow(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != 0 {
		t.Fatalf("expected sum 0 for empty window, got %f", sum)
	}
}

func TestMetricsFetcher_APIError(t *testing.T) {
	mock := &mockCloudWatchClient{
		getMetricStatisticsFn: func(_ context.Context, _ *cloudwatch.GetMetricStatisticsInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
			return nil, fmt.Errorf("connection reset")
		},
	}

	fetcher := NewMetricsFetcher(mock)
	_, err := fetcher.Sum(context.Background(), MetricExecutionsFailed, "arn:aws:states:eu-west-1:123456789012:stateMachine:sm1", testWindow(t))
	if err == nil {
		t.Fatal("expected error")
	}
}
