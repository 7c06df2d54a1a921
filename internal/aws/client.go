package aws

import (
	"context"
	"fmt"
	"net/http"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
)

const (
	// maxPoolConnections caps simultaneous sockets per profile and bounds
	// the state-machine fan-out.
	maxPoolConnections = 10
	// maxRetryAttempts for the SDK standard-mode retryer.
	maxRetryAttempts = 10
)

// Client bundles the service clients for one credential profile. The clients
// are constructed once per profile and shared read-only across that
// profile's concurrent fan-out.
type Client struct {
	profile    string
	sfn        *sfn.Client
	cloudwatch *cloudwatch.Client
	tagging    *resourcegroupstaggingapi.Client
}

// NewClient loads the shared AWS config for a named credential profile and
// builds the Step Functions, CloudWatch, and resource tagging clients on top
// of a connection-pool-bounded transport.
func NewClient(ctx context.Context, profile string, verbose bool) (*Client, error) {
	httpClient := awshttp.NewBuildableClient().WithTransportOptions(func(t *http.Transport) {
		t.MaxConnsPerHost = maxPoolConnections
		t.MaxIdleConnsPerHost = maxPoolConnections
	})

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithSharedConfigProfile(profile),
		awsconfig.WithHTTPClient(httpClient),
		awsconfig.WithRetryer(func() awssdk.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				o.MaxAttempts = maxRetryAttempts
			})
		}),
	}
	if verbose {
		opts = append(opts, awsconfig.WithClientLogMode(awssdk.LogRetries|awssdk.LogRequest))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config for profile %s: %w", profile, err)
	}

	return &Client{
		profile:    profile,
		sfn:        sfn.NewFromConfig(cfg),
		cloudwatch: cloudwatch.NewFromConfig(cfg),
		tagging:    resourcegroupstaggingapi.NewFromConfig(cfg),
	}, nil
}

// Profile returns the credential profile name this client was built for.
func (c *Client) Profile() string {
	return c.profile
}
