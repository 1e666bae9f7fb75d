package domain

import "time"

// HighRiskDelayDays is the average historical delay above which a developer is flagged.
const HighRiskDelayDays = 3

// DelayRisk is the schedule-risk projection for one developer.
type DelayRisk struct {
	DeveloperID             int64      `json:"developerId"`
	DeveloperName           string     `json:"developerName"`
	OpenTasksCount          int        `json:"openTasksCount"`
	AvgDelayDays            float64    `json:"avgDelayDays"`
	NearestDueDate          *time.Time `json:"nearestDueDate"`
	LatestDueDate           *time.Time `json:"latestDueDate"`
	PredictedCompletionDate *time.Time `json:"predictedCompletionDate"`
	HighRiskFlag            int        `json:"highRiskFlag"`
}

// EstimateDelayRisk projects when the developer's open work will be done from
// how late their completed tasks were. ok is false when there is no open work,
// in which case the developer is left out of the report.
func EstimateDelayRisk(h DeveloperTaskHistory) (risk DelayRisk, ok bool) {
	var (
		openCount     int
		nearest       time.Time
		latest        time.Time
		completed     int
		totalDelayDay int
	)

	for _, t := range h.Tasks {
		if t.Status.IsOpen() {
			if openCount == 0 || t.DueDate.Before(nearest) {
				nearest = t.DueDate
			}
			if openCount == 0 || t.DueDate.After(latest) {
				latest = t.DueDate
			}
			openCount++
			continue
		}
		if t.CompletionDate == nil {
			continue
		}
		completed++
		totalDelayDay += DelayDays(t.DueDate, *t.CompletionDate)
	}

	if openCount == 0 {
		return DelayRisk{}, false
	}

	var avg float64
	if completed > 0 {
		avg = float64(totalDelayDay) / float64(completed)
	}

	predicted := latest.Add(time.Duration(avg * float64(24*time.Hour)))

	flag := 0
	// Both clauses are kept as written: the first already holds for any positive average.
	if predicted.After(latest) || avg > HighRiskDelayDays {
		flag = 1
	}

	return DelayRisk{
		DeveloperID:             h.DeveloperID,
		DeveloperName:           h.DeveloperName,
		OpenTasksCount:          openCount,
		AvgDelayDays:            avg,
		NearestDueDate:          &nearest,
		LatestDueDate:           &latest,
		PredictedCompletionDate: &predicted,
		HighRiskFlag:            flag,
	}, true
}

// DelayDays counts whole UTC calendar days a completion ran past its due date.
// Early or same-day completions count as zero.
func DelayDays(due, completed time.Time) int {
	days := calendarDays(completed) - calendarDays(due)
	if days < 0 {
		return 0
	}
	return days
}

// calendarDays numbers the UTC date of t, independent of t's location.
func calendarDays(t time.Time) int {
	y, m, d := t.UTC().Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// EstimateDelayRisks runs EstimateDelayRisk over each history, dropping developers without open work.
func EstimateDelayRisks(histories []DeveloperTaskHistory) []DelayRisk {
	out := make([]DelayRisk, 0, len(histories))
	for _, h := range histories {
		if risk, ok := EstimateDelayRisk(h); ok {
			out = append(out, risk)
		}
	}
	return out
}
