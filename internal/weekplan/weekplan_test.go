package weekplan

import (
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		raw := `{"refinedGoal":"Write 3 remaining articles","schedule":[{"dayName":"周三","tasks":["Draft article 3"],"contentIdeas":["Topic A"]}]}`

		plan, err := Decode(raw)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if plan.RefinedGoal != "Write 3 remaining articles" {
			t.Errorf("Expected refined goal, got '%s'", plan.RefinedGoal)
		}
		if len(plan.Schedule) != 1 {
			t.Fatalf("Expected 1 day, got %d", len(plan.Schedule))
		}
		if plan.Schedule[0].DayName != "周三" || plan.Schedule[0].Tasks[0] != "Draft article 3" {
			t.Errorf("Unexpected day: %+v", plan.Schedule[0])
		}
	})

	t.Run("NullListsBecomeEmpty", func(t *testing.T) {
		plan, err := Decode(`{"refinedGoal":"x","schedule":[{"dayName":"Friday","tasks":null}]}`)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if plan.Schedule[0].Tasks == nil || plan.Schedule[0].ContentIdeas == nil {
			t.Error("Expected nil lists to be replaced by empty slices")
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		if _, err := Decode(`{"refinedGoal":`); err == nil {
			t.Fatal("Expected an error for truncated JSON")
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		cases := []string{
			`{"schedule":[]}`,
			`{"refinedGoal":"x"}`,
			`{"refinedGoal":"x","schedule":[{"tasks":["a"]}]}`,
		}
		for _, raw := range cases {
			if _, err := Decode(raw); !errors.Is(err, ErrNonConformant) {
				t.Errorf("Decode(%s): expected ErrNonConformant, got %v", raw, err)
			}
		}
	})
}
