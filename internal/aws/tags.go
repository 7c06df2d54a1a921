package aws

import (
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	taggingtypes "github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi/types"
)

// TagPair is one user-supplied key=value tag filter entry.
type TagPair struct {
	Key   string
	Value string
}

// ParseTagArgs splits "key=value" entries into pairs. Entries without "=" are ignored.
func ParseTagArgs(args []string) []TagPair {
	var pairs []TagPair
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			continue
		}
		pairs = append(pairs, TagPair{Key: key, Value: value})
	}
	return pairs
}

// BuildTagFilters groups tag pairs by key into filter clauses for the
// resource tagging API, preserving first-seen key order. An empty input
// yields an empty filter list, which discovery interprets as "list all".
func BuildTagFilters(pairs []TagPair) []taggingtypes.TagFilter {
	var order []string
	values := make(map[string][]string)

	for _, p := range pairs {
		if _, seen := values[p.Key]; !seen {
			order = append(order, p.Key)
		}
		values[p.Key] = append(values[p.Key], p.Value)
	}

	filters := make([]taggingtypes.TagFilter, 0, len(order))
	for _, key := range order {
		filters = append(filters, taggingtypes.TagFilter{
			Key:    awssdk.String(key),
			Values: values[key],
		})
	}
	return filters
}
