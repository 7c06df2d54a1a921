package commands

import (
	"fmt"
	"strings"
)

// splitProfiles parses the comma-separated --profile value, dropping empty entries.
func splitProfiles(s string) []string {
	var profiles []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			profiles = append(profiles, p)
		}
	}
	return profiles
}

// enhanceError wraps an error with context and suggestions for common AWS issues.
func enhanceError(action string, err error) error {
	msg := err.Error()

	var hint string
	switch {
	case strings.Contains(msg, "NoCredentialProviders") || strings.Contains(msg, "failed to get shared config profile"):
		hint = "Check the profile names in ~/.aws/credentials, or run 'aws configure --profile <name>'"
	case strings.Contains(msg, "ExpiredToken"):
		hint = "AWS session token expired. Refresh credentials or run 'aws sso login'"
	case strings.Contains(msg, "AccessDenied") || strings.Contains(msg, "UnauthorizedAccess"):
		hint = "Insufficient permissions. Apply the IAM policy from 'stepview init' to your role/user"
	case strings.Contains(msg, "throttled") || strings.Contains(msg, "Throttling"):
		hint = "AWS API rate limit hit. Reduce the number of profiles or filter on tags"
	}

	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}
