package matching

import (
	"reflect"
	"testing"
)

func TestExtractSkillsWholeWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain words",
			text: "We need Python and Docker experience",
			want: []string{"python", "docker"},
		},
		{
			name: "java not matched inside javascript",
			text: "JavaScript developer",
			want: []string{"javascript"},
		},
		{
			name: "symbol skills",
			text: "Modern C++ and C# codebase",
			want: []string{"c++", "c#"},
		},
		{
			name: "dotted skill",
			text: "Node.js backend services",
			want: []string{"node.js"},
		},
		{
			name: "multiword skill",
			text: "Machine Learning pipelines on AWS",
			want: []string{"aws", "machine learning"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "go not matched inside django",
			text: "Django templates",
			want: []string{"django"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractSkills(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ExtractSkills(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestExtractSkillsDeterministicOrder(t *testing.T) {
	t.Parallel()

	text := "docker kubernetes python go"
	first := ExtractSkills(text)
	for i := 0; i < 10; i++ {
		if got := ExtractSkills(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("order changed between runs: %v vs %v", got, first)
		}
	}
}
