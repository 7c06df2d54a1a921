package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and IAM policy",
	Long:  `Creates a sample .stepview.yaml config file and an IAM policy JSON file with the read-only permissions stepview needs.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := ".stepview.yaml"
	policyPath := "stepview-policy.json"

	if err := writeIfNotExists(configPath, sampleConfig, initFlags.force); err != nil {
		return err
	}
	if err := writeIfNotExists(policyPath, sampleIAMPolicy, initFlags.force); err != nil {
		return err
	}

	fmt.Printf("Created %s and %s\n", configPath, policyPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit .stepview.yaml to set your profiles and period")
	fmt.Println("  2. Apply stepview-policy.json to your AWS IAM role/user")
	fmt.Println("  3. Run: stepview")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return nil
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleConfig = `# stepview configuration

# AWS credential profiles to aggregate (default: default)
# profiles:
#   - production
#   - staging

# Lookback period: minute, hour, today, day, week, month or year
period: day

# Tag filters restricting discovery to matching state machines
# tags:
#   - "team=data"
#   - "env=prod"

# Execution counts source: metrics or executions
source: metrics

# Output format: tui or plain
format: tui

# Aggregation timeout
timeout: 5m
`

const sampleIAMPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Sid": "StepviewReadOnly",
      "Effect": "Allow",
      "Action": [
        "states:ListStateMachines",
        "states:ListExecutions",
        "cloudwatch:GetMetricStatistics",
        "tag:GetResources"
      ],
      "Resource": "*"
    }
  ]
}
`
