package planner

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"weekly-planner/internal/llm"
)

const dateContextLayout = "Monday, January 2, 2006"

// DateContext formats now as a weekday and date in the given IANA zone,
// followed by the zone name, e.g. "Wednesday, October 14, 2026 (Asia/Shanghai)".
// An empty zone means UTC.
func DateContext(timezone string, now time.Time) (string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("%w: %q", llm.ErrInvalidTimezone, timezone)
	}
	return fmt.Sprintf("%s (%s)", now.In(loc).Format(dateContextLayout), loc.String()), nil
}
