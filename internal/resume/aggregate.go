package resume

import "time"

// YearsOfExperience sums the months of every entry with a parseable start date and
// returns the floor in years. Open or unparseable end dates count until now.
// Overlapping periods are added as they are.
func YearsOfExperience(entries []ExperienceEntry, now time.Time) (int, bool) {
	current := monthYearOf(now)

	total, counted := 0, 0
	for _, e := range entries {
		start, ok := ParseDate(e.StartDate)
		if !ok {
			continue
		}

		end := current
		if e.EndDate != "" && !IsPresent(e.EndDate) {
			if parsed, ok := ParseDate(e.EndDate); ok {
				end = parsed
			}
		}

		total += start.monthsUntil(end)
		counted++
	}

	if counted == 0 {
		return 0, false
	}

	return total / 12, true
}
