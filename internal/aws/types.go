package aws

import "fmt"

// Metric names Step Functions publishes to CloudWatch per execution status.
// https://docs.aws.amazon.com/step-functions/latest/dg/procedure-cw-metrics.html
const (
	MetricExecutionsStarted   = "ExecutionsStarted"
	MetricExecutionsSucceeded = "ExecutionsSucceeded"
	MetricExecutionsFailed    = "ExecutionsFailed"
	MetricExecutionsAborted   = "ExecutionsAborted"
	MetricExecutionsTimedOut  = "ExecutionsTimedOut"
	MetricExecutionThrottled  = "ExecutionThrottled"
)

// MetricCounts holds the summed execution counts for one state machine over a window.
type MetricCounts struct {
	Started   float64
	Succeeded float64
	Failed    float64
	Aborted   float64
	TimedOut  float64
	Throttled float64
	Running   float64
}

// DeriveRunning computes the in-flight count by subtracting the terminal
// statuses from Started, clamped at zero: the per-status metrics are
// eventually consistent and can transiently sum past Started.
func (m *MetricCounts) DeriveRunning() {
	running := m.Started - m.Succeeded - m.Failed - m.Aborted - m.TimedOut - m.Throttled
	if running < 0 {
		running = 0
	}
	m.Running = running
}

// SucceededPercent returns the success rate, or 0 when nothing started.
func (m MetricCounts) SucceededPercent() float64 {
	if m.Started <= 0 {
		return 0
	}
	return m.Succeeded / m.Started * 100
}

// Row is one dashboard line for a (profile, state machine) pair. It is
// immutable after construction; the renderers only read it.
type Row struct {
	Name      string
	Profile   string
	AccountID string
	Region    string
	Link      string
	Counts    MetricCounts
}

// Values formats the row's display columns in table order.
func (r Row) Values() []string {
	return []string{
		r.Name,
		r.Profile,
		r.AccountID,
		r.Region,
		fmt.Sprintf("%.0f", r.Counts.Started),
		fmt.Sprintf("%.2f", r.Counts.SucceededPercent()),
		fmt.Sprintf("%.0f", r.Counts.Running),
		fmt.Sprintf("%.0f/%.0f/%.0f/%.0f", r.Counts.Failed, r.Counts.Aborted, r.Counts.TimedOut, r.Counts.Throttled),
	}
}

// Columns returns the table headers matching Values.
func Columns() []string {
	return []string{"StateMachine", "Profile", "Account", "Region", "Started", "Succeed (%)", "Running", "Failed/Aborted/TimedOut/Throttled"}
}
