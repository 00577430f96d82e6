package weekplan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DayPlan is the checklist and content ideas generated for one remaining day.
type DayPlan struct {
	DayName      string   `json:"dayName"`
	Tasks        []string `json:"tasks"`
	ContentIdeas []string `json:"contentIdeas"`
}

// WeeklyPlanResponse is the normalized output of every backend.
// It carries no identifiers or completion state.
type WeeklyPlanResponse struct {
	RefinedGoal string    `json:"refinedGoal"`
	Schedule    []DayPlan `json:"schedule"`
}

// ErrNonConformant is returned by Decode when the JSON parses but does not
// have the expected plan shape.
var ErrNonConformant = errors.New("plan does not match expected shape")

type rawPlan struct {
	RefinedGoal *string    `json:"refinedGoal"`
	Schedule    *[]DayPlan `json:"schedule"`
}

// Decode parses raw model output into a WeeklyPlanResponse.
// refinedGoal and schedule must be present and every day must be named.
func Decode(raw string) (*WeeklyPlanResponse, error) {
	var r rawPlan
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, err
	}
	if r.RefinedGoal == nil {
		return nil, fmt.Errorf("%w: missing refinedGoal", ErrNonConformant)
	}
	if r.Schedule == nil {
		return nil, fmt.Errorf("%w: missing schedule", ErrNonConformant)
	}

	schedule := make([]DayPlan, 0, len(*r.Schedule))
	for i, d := range *r.Schedule {
		if strings.TrimSpace(d.DayName) == "" {
			return nil, fmt.Errorf("%w: schedule[%d] has no dayName", ErrNonConformant, i)
		}
		if d.Tasks == nil {
			d.Tasks = []string{}
		}
		if d.ContentIdeas == nil {
			d.ContentIdeas = []string{}
		}
		schedule = append(schedule, d)
	}

	return &WeeklyPlanResponse{
		RefinedGoal: *r.RefinedGoal,
		Schedule:    schedule,
	}, nil
}
