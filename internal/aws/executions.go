package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	sfntypes "github.com/aws/aws-sdk-go-v2/service/sfn/types"

	"stepview/internal/period"
)

// CountExecutions walks the execution list for one state machine, following
// continuation tokens, and tallies executions started inside the window by
// status. It is the alternate data source to the CloudWatch metrics: running
// executions are counted directly rather than derived by subtraction, and
// throttled executions do not appear (throttling is only a metric).
func CountExecutions(ctx context.Context, client SFNAPI, stateMachineARN string, window period.Window) (MetricCounts, error) {
	var counts MetricCounts
	var next *string

	for {
		out, err := client.ListExecutions(ctx, &sfn.ListExecutionsInput{
			StateMachineArn: awssdk.String(stateMachineARN),
			NextToken:       next,
		})
		if err != nil {
			return MetricCounts{}, fmt.Errorf("list executions: %w", err)
		}

		for _, ex := range out.Executions {
			if ex.StartDate == nil || !window.Contains(*ex.StartDate) {
				continue
			}
			counts.Started++
			switch ex.Status {
			case sfntypes.ExecutionStatusSucceeded:
				counts.Succeeded++
			case sfntypes.ExecutionStatusFailed:
				counts.Failed++
			case sfntypes.ExecutionStatusAborted:
				counts.Aborted++
			case sfntypes.ExecutionStatusTimedOut:
				counts.TimedOut++
			case sfntypes.ExecutionStatusRunning:
				counts.Running++
			}
		}

		if out.NextToken == nil {
			return counts, nil
		}
		next = out.NextToken
	}
}
