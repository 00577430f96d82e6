package llm

import (
	"reflect"
	"testing"

	"weekly-planner/internal/weekplan"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"NoFence", `{"a":1}`, `{"a":1}`},
		{"JSONFence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"UpperCaseTag", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"BareFence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"SpaceBeforeTag", "``` json\n{\"a\":1}\n```", `{"a":1}`},
		{"LeadingOnly", "```json\n{\"a\":1}", `{"a":1}`},
		{"TrailingOnly", "{\"a\":1}\n```", `{"a":1}`},
		{"SurroundingWhitespace", "  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
		{"InnerFenceKept", "```json\n{\"a\":\"```x```\"}\n```", "{\"a\":\"```x```\"}"},
		{"OnlyFence", "```", ""},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripCodeFence_ParseIdempotent(t *testing.T) {
	raw := `{"refinedGoal":"Write 3 remaining articles","schedule":[{"dayName":"Wednesday","tasks":["Draft article 3"],"contentIdeas":["Topic A"]}]}`

	plain, err := weekplan.Decode(StripCodeFence(raw))
	if err != nil {
		t.Fatalf("Failed to decode unfenced content: %v", err)
	}
	fenced, err := weekplan.Decode(StripCodeFence("```json\n" + raw + "\n```"))
	if err != nil {
		t.Fatalf("Failed to decode fenced content: %v", err)
	}
	if !reflect.DeepEqual(plain, fenced) {
		t.Errorf("Expected fenced and unfenced content to decode equally, got %+v and %+v", plain, fenced)
	}
}
