package athlete

import "time"

// DailyFeedback is one day's subjective and physiological check-in.
// Zero-valued ratings mean "not reported" and are skipped by averages.
type DailyFeedback struct {
	Date           time.Time `json:"date"`
	Fatigue        int       `json:"fatigue"`    // 1-10
	Pain           int       `json:"pain"`       // 0-10
	PainNote       string    `json:"painNote,omitempty"`
	SleepQuality   int       `json:"sleepQuality"` // 1-5
	Motivation     int       `json:"motivation"`   // 1-5
	HRV            float64   `json:"hrv,omitempty"`
	InjuryReported bool      `json:"injuryReported"`
	Completed      *bool     `json:"completed,omitempty"` // nil: no session was planned
	Comment        string    `json:"comment,omitempty"`
}

// FeedbackSummary aggregates a rolling feedback window for the adaptive
// controller and the downstream explanation layer.
type FeedbackSummary struct {
	Days           int     `json:"days"`
	AvgFatigue     float64 `json:"avgFatigue"`
	AvgPain        float64 `json:"avgPain"`
	AvgSleep       float64 `json:"avgSleep"`
	AvgMotivation  float64 `json:"avgMotivation"`
	CompletionRate float64 `json:"completionRate"` // -1 when nothing was planned
	HRVBaseline    float64 `json:"hrvBaseline"`    // mean over all but the last 3 readings
	HRVRecent      float64 `json:"hrvRecent"`      // mean over the last 3 readings
}

// Summarize builds a FeedbackSummary over the window. Empty windows produce
// a zero summary with CompletionRate -1.
func Summarize(window []DailyFeedback) FeedbackSummary {
	s := FeedbackSummary{Days: len(window), CompletionRate: -1}
	if len(window) == 0 {
		return s
	}

	var fatigueSum, painSum, sleepSum, motivationSum float64
	var fatigueN, painN, sleepN, motivationN int
	var planned, completed int
	var hrv []float64

	for _, f := range window {
		if f.Fatigue > 0 {
			fatigueSum += float64(f.Fatigue)
			fatigueN++
		}
		// Pain 0 is a real report (no pain), count every day.
		painSum += float64(f.Pain)
		painN++
		if f.SleepQuality > 0 {
			sleepSum += float64(f.SleepQuality)
			sleepN++
		}
		if f.Motivation > 0 {
			motivationSum += float64(f.Motivation)
			motivationN++
		}
		if f.Completed != nil {
			planned++
			if *f.Completed {
				completed++
			}
		}
		if f.HRV > 0 {
			hrv = append(hrv, f.HRV)
		}
	}

	if fatigueN > 0 {
		s.AvgFatigue = fatigueSum / float64(fatigueN)
	}
	if painN > 0 {
		s.AvgPain = painSum / float64(painN)
	}
	if sleepN > 0 {
		s.AvgSleep = sleepSum / float64(sleepN)
	}
	if motivationN > 0 {
		s.AvgMotivation = motivationSum / float64(motivationN)
	}
	if planned > 0 {
		s.CompletionRate = float64(completed) / float64(planned)
	}

	// HRV baseline vs recent needs at least one reading on each side.
	if len(hrv) > 3 {
		split := len(hrv) - 3
		s.HRVBaseline = mean(hrv[:split])
		s.HRVRecent = mean(hrv[split:])
	}

	return s
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
