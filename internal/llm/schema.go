package llm

import "github.com/google/generative-ai-go/genai"

// PlanSchema describes WeeklyPlanResponse for Gemini's structured output mode.
func PlanSchema() *genai.Schema {
	stringList := func(desc string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeArray,
			Description: desc,
			Items:       &genai.Schema{Type: genai.TypeString},
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"refinedGoal": {
				Type:        genai.TypeString,
				Description: "The user's goal with already completed items removed.",
			},
			"schedule": {
				Type:        genai.TypeArray,
				Description: "One entry per remaining day, starting today.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"dayName":      {Type: genai.TypeString},
						"tasks":        stringList("Actionable tasks for the day."),
						"contentIdeas": stringList("Creative content ideas for the day."),
					},
					Required: []string{"dayName", "tasks", "contentIdeas"},
				},
			},
		},
		Required: []string{"refinedGoal", "schedule"},
	}
}
