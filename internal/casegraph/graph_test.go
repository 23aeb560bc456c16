package casegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindCycle(t *testing.T) {
	tests := []struct {
		name      string
		edges     map[string][]string
		wantCycle []string
	}{
		{
			name:      "empty graph",
			edges:     map[string][]string{},
			wantCycle: nil,
		},
		{
			name: "acyclic chain",
			edges: map[string][]string{
				"child":  {"parent"},
				"parent": {"grandparent"},
			},
			wantCycle: nil,
		},
		{
			name: "diamond is acyclic",
			edges: map[string][]string{
				"a": {"b", "c"},
				"b": {"d"},
				"c": {"d"},
			},
			wantCycle: nil,
		},
		{
			name: "self reference",
			edges: map[string][]string{
				"a": {"a"},
			},
			wantCycle: []string{"a"},
		},
		{
			name: "two node cycle",
			edges: map[string][]string{
				"a": {"b"},
				"b": {"a"},
			},
			wantCycle: []string{"a", "b"},
		},
		{
			name: "cycle behind a chain",
			edges: map[string][]string{
				"entry": {"a"},
				"a":     {"b"},
				"b":     {"c"},
				"c":     {"a"},
			},
			wantCycle: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindCycle(tt.edges)
			assert.Equal(t, tt.wantCycle, got)
		})
	}
}

func TestFindCycleDeterministic(t *testing.T) {
	edges := map[string][]string{
		"x": {"y"},
		"y": {"x"},
		"p": {"q"},
		"q": {"p"},
	}

	first := FindCycle(edges)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, FindCycle(edges))
	}
}
