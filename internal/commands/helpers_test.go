package commands

import (
	"errors"
	"strings"
	"testing"
)

func TestSplitProfiles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "default", []string{"default"}},
		{"multiple", "prod,staging,dev", []string{"prod", "staging", "dev"}},
		{"with spaces", " prod , staging ", []string{"prod", "staging"}},
		{"empty entries", "prod,,staging,", []string{"prod", "staging"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitProfiles(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestEnhanceError_ThrottlingHint(t *testing.T) {
	err := enhanceError("aggregate", errors.New("throttled by AWS: reduce the number of profiles or filter on tags"))
	if !strings.Contains(err.Error(), "hint:") {
		t.Fatalf("expected hint, got %q", err)
	}
	if !strings.Contains(err.Error(), "Reduce the number of profiles") {
		t.Fatalf("expected throttling advice, got %q", err)
	}
}

func TestEnhanceError_CredentialsHint(t *testing.T) {
	err := enhanceError("load client", errors.New("failed to get shared config profile, missing"))
	if !strings.Contains(err.Error(), "aws configure") {
		t.Fatalf("expected credentials hint, got %q", err)
	}
}

func TestEnhanceError_NoHint(t *testing.T) {
	err := enhanceError("aggregate", errors.New("something unrelated"))
	if strings.Contains(err.Error(), "hint:") {
		t.Fatalf("expected no hint, got %q", err)
	}
	if !strings.Contains(err.Error(), "aggregate: something unrelated") {
		t.Fatalf("expected wrapped message, got %q", err)
	}
}
