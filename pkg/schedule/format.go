package schedule

import (
	"fmt"
	"time"
)

// FormatWindow renders a scheduling window for humans in the configured
// timezone, e.g. "Aug 18, 2025 at 9:00 AM - 11:00 AM".
func (s *Scheduler) FormatWindow(start, end time.Time) string {
	start = start.In(s.loc)
	end = end.In(s.loc)
	return fmt.Sprintf("%s at %s - %s",
		start.Format("Jan 2, 2006"),
		start.Format("3:04 PM"),
		end.Format("3:04 PM"))
}
