package aws

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedARN is returned when an identifier has fewer than 6 colon-delimited segments.
var ErrMalformedARN = errors.New("malformed ARN")

// ARN holds the decomposed pieces of an AWS resource identifier.
type ARN struct {
	Partition    string
	Service      string
	Region       string
	AccountID    string
	ResourceType string
	Resource     string
}

// ParseARN splits an identifier of the form
// arn:partition:service:region:account:resource into its pieces. The resource
// segment is further split once on "/" or ":" into type and name when either
// separator is present.
func ParseARN(s string) (ARN, error) {
	parts := strings.SplitN(s, ":", 6)
	if len(parts) < 6 {
		return ARN{}, fmt.Errorf("%w: %q has %d segments, want at least 6", ErrMalformedARN, s, len(parts))
	}

	a := ARN{
		Partition: parts[1],
		Service:   parts[2],
		Region:    parts[3],
		AccountID: parts[4],
		Resource:  parts[5],
	}

	if typ, name, ok := strings.Cut(a.Resource, "/"); ok {
		a.ResourceType, a.Resource = typ, name
	} else if typ, name, ok := strings.Cut(a.Resource, ":"); ok {
		a.ResourceType, a.Resource = typ, name
	}

	return a, nil
}

// ConsoleURL returns the AWS console link for a state machine.
func ConsoleURL(stateMachineARN, region string) string {
	return fmt.Sprintf("https://console.aws.amazon.com/states/home?region=%s#/statemachines/view/%s", region, stateMachineARN)
}
