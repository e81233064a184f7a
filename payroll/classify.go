package payroll

// =============================================================================
// CLASSIFIER - Calendar attributes of a worked hour
// =============================================================================

// Classifier annotates hour units of one month. The result depends only on
// (year, month, day, hour) and the week strategy.
type Classifier struct {
	Month Month
	Weeks WeekGrouper
}

func NewClassifier(month Month, weeks WeekGrouper) Classifier {
	if weeks == nil {
		weeks = FixedBlockWeeks{}
	}
	return Classifier{Month: month, Weeks: weeks}
}

// Classify annotates a single hour. Night depends on the hour alone; holiday
// and week need a calendar date, so hours on spill-over days past the month
// end are left unflagged there.
func (c Classifier) Classify(u HourUnit) ClassifiedHour {
	h := ClassifiedHour{HourUnit: u, Night: IsNightHour(u.Hour)}
	date, ok := c.Month.Date(u.Day)
	if !ok {
		return h
	}
	h.Date = date
	h.InMonth = true
	h.Holiday = IsHoliday(date)
	h.Week = c.Weeks.WeekOf(date)
	return h
}

// ClassifyTimeline annotates every hour of t in chronological order.
func (c Classifier) ClassifyTimeline(t *Timeline) []ClassifiedHour {
	units := t.Units()
	out := make([]ClassifiedHour, len(units))
	for i, u := range units {
		out[i] = c.Classify(u)
	}
	return out
}
