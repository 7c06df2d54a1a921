package aws

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi"
	taggingtypes "github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi/types"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
)

// stateMachineResourceType restricts tag queries to Step Functions state machines.
const stateMachineResourceType = "states:stateMachine"

// SFNAPI is the minimal interface for the Step Functions operations used by
// discovery and execution counting.
type SFNAPI interface {
	ListStateMachines(ctx context.Context, input *sfn.ListStateMachinesInput, opts ...func(*sfn.Options)) (*sfn.ListStateMachinesOutput, error)
	ListExecutions(ctx context.Context, input *sfn.ListExecutionsInput, opts ...func(*sfn.Options)) (*sfn.ListExecutionsOutput, error)
}

// TaggingAPI is the minimal interface for the resource tagging API.
type TaggingAPI interface {
	GetResources(ctx context.Context, input *resourcegroupstaggingapi.GetResourcesInput, opts ...func(*resourcegroupstaggingapi.Options)) (*resourcegroupstaggingapi.GetResourcesOutput, error)
}

// Discoverer finds candidate state machine ARNs for one profile.
type Discoverer struct {
	sfn     SFNAPI
	tagging TaggingAPI
	profile string
}

// NewDiscoverer creates a discoverer over the given profile's clients.
func NewDiscoverer(sfnClient SFNAPI, taggingClient TaggingAPI, profile string) *Discoverer {
	return &Discoverer{sfn: sfnClient, tagging: taggingClient, profile: profile}
}

// Discover lists state machine ARNs for the profile, tag-filtered when
// filters are present, otherwise a full listing. Both paths follow
// pagination in arrival order.
func (d *Discoverer) Discover(ctx context.Context, filters []taggingtypes.TagFilter) ([]string, error) {
	if len(filters) == 0 {
		return d.listAll(ctx)
	}
	return d.listByTags(ctx, filters)
}

func (d *Discoverer) listAll(ctx context.Context) ([]string, error) {
	var arns []string
	paginator := sfn.NewListStateMachinesPaginator(d.sfn, &sfn.ListStateMachinesInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list state machines: %w", err)
		}
		for _, sm := range page.StateMachines {
			if sm.StateMachineArn != nil {
				arns = append(arns, *sm.StateMachineArn)
			}
		}
	}
	return arns, nil
}

func (d *Discoverer) listByTags(ctx context.Context, filters []taggingtypes.TagFilter) ([]string, error) {
	var arns []string
	paginator := resourcegroupstaggingapi.NewGetResourcesPaginator(d.tagging, &resourcegroupstaggingapi.GetResourcesInput{
		ResourceTypeFilters: []string{stateMachineResourceType},
		TagFilters:          filters,
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("get resources by tags: %w", err)
		}
		if len(page.ResourceTagMappingList) == 0 {
			slog.Info("No state machines matched tags on page", "profile", d.profile)
			continue
		}
		for _, mapping := range page.ResourceTagMappingList {
			if mapping.ResourceARN != nil {
				arns = append(arns, *mapping.ResourceARN)
			}
		}
	}
	return arns, nil
}
