package export

import "home-affordability/domain"

// SampleSchedule thins a schedule for charts: every month of the first
// year, then one month per year, always ending on the final month.
func SampleSchedule(schedule []domain.AmortizationEntry) []domain.AmortizationEntry {
	if len(schedule) == 0 {
		return nil
	}

	sampled := make([]domain.AmortizationEntry, 0, 12+len(schedule)/12)
	for _, e := range schedule {
		if e.Month <= 12 || e.Month%12 == 0 {
			sampled = append(sampled, e)
		}
	}

	last := schedule[len(schedule)-1]
	if sampled[len(sampled)-1].Month != last.Month {
		sampled = append(sampled, last)
	}
	return sampled
}
