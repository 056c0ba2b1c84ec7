package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleSet_Contains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		rules     RuleSet
		candidate string
		want      bool
	}{
		{
			name:      "root include matches everything",
			rules:     RuleSet{"": nil},
			candidate: "any/deep/path.txt",
			want:      true,
		},
		{
			name:      "exact file match",
			rules:     RuleSet{"service1/hello.txt": nil},
			candidate: "service1/hello.txt",
			want:      true,
		},
		{
			name:      "directory prefix match",
			rules:     RuleSet{"service1": nil},
			candidate: "service1/hello.txt",
			want:      true,
		},
		{
			name:      "no partial segment prefix",
			rules:     RuleSet{"service1": nil},
			candidate: "service10/hello.txt",
			want:      false,
		},
		{
			name:      "sibling not matched",
			rules:     RuleSet{"service1": nil},
			candidate: "service2/hello.txt",
			want:      false,
		},
		{
			name:      "root exclude removes file and directory",
			rules:     RuleSet{"": {"doc"}},
			candidate: "doc",
			want:      false,
		},
		{
			name:      "root exclude removes contents",
			rules:     RuleSet{"": {"doc"}},
			candidate: "doc/README.txt",
			want:      false,
		},
		{
			name:      "exclude is not a partial segment prefix",
			rules:     RuleSet{"": {"doc"}},
			candidate: "docs/x",
			want:      true,
		},
		{
			name:      "exclude composes with include",
			rules:     RuleSet{"service1": {"doc"}},
			candidate: "service1/doc/README.txt",
			want:      false,
		},
		{
			name:      "exclude under one include does not affect another",
			rules:     RuleSet{"service1": {"doc"}, "": nil},
			candidate: "service1/doc/README.txt",
			want:      true,
		},
		{
			name:      "byte exact no case folding",
			rules:     RuleSet{"Service1": nil},
			candidate: "service1/hello.txt",
			want:      false,
		},
		{
			name:      "empty rule set accepts nothing",
			rules:     RuleSet{},
			candidate: "hello.txt",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.rules.Contains(tt.candidate))
		})
	}
}

// Exclude soundness: a candidate accepted by Contains never matches an
// exclude pattern of the pair that accepted it.
func TestRuleSet_Contains_ExcludeSoundness(t *testing.T) {
	t.Parallel()

	rules := RuleSet{
		"service1": {"doc", "generated"},
		"service2": nil,
	}

	accepted := []string{
		"service1/main.go",
		"service1/docs/extra.md",
		"service2/doc/README.txt",
	}
	rejected := []string{
		"service1/doc/README.txt",
		"service1/generated",
		"service1/generated/code.go",
	}

	for _, path := range accepted {
		assert.True(t, rules.Contains(path), "expected accept: %s", path)
	}
	for _, path := range rejected {
		assert.False(t, rules.Contains(path), "expected reject: %s", path)
	}
}
