// Package adaptive turns athlete feedback into a coarse-grained plan
// decision and rewrites the current week accordingly. Signal extraction and
// the decision ladder are deterministic; the controller never raises — an
// empty feedback window simply yields the maintain decision.
package adaptive

import (
	"fmt"
	"strings"

	"github.com/briangreenhill/ultraplan/athlete"
)

// SignalType names a derived feedback signal.
type SignalType string

const (
	SignalChronicFatigue SignalType = "chronic_fatigue"
	SignalFatigueStreak  SignalType = "fatigue_streak"
	SignalPainAverage    SignalType = "pain_average"
	SignalPainMention    SignalType = "pain_mention"
	SignalInjuryReported SignalType = "injury_reported"
	SignalLowCompletion  SignalType = "low_completion"
	SignalPoorSleep      SignalType = "poor_sleep"
	SignalHRVDrop        SignalType = "hrv_drop"
	SignalLowMotivation  SignalType = "low_motivation"
)

// SignalSeverity ranks a signal for the decision ladder.
type SignalSeverity string

const (
	SeverityLow      SignalSeverity = "low"
	SeverityMedium   SignalSeverity = "medium"
	SeverityHigh     SignalSeverity = "high"
	SeverityCritical SignalSeverity = "critical"
)

// Signal is one weighted feedback observation with its own recommended
// action, used when it is the single deciding signal.
type Signal struct {
	Type        SignalType     `json:"type"`
	Severity    SignalSeverity `json:"severity"`
	Value       float64        `json:"value"`
	Recommended Action         `json:"recommended"`
	Reason      string         `json:"reason"`
}

// Extraction thresholds.
const (
	fatigueHighAvg      = 7.0
	fatigueMediumAvg    = 5.0
	fatigueStreakLevel  = 5 // medium-plus daily fatigue
	fatigueStreakLen    = 3
	painCriticalAvg     = 5.0
	completionHighBar   = 0.5
	completionMediumBar = 0.7
	sleepPoorAvg        = 3.0
	hrvDropPct          = 15.0
	motivationLowAvg    = 3.0
)

var painWords = []string{"pain", "hurt", "ache", "sore spot", "sharp", "stabbing"}

// ExtractSignals derives weighted signals from a rolling feedback window.
// Pure: the same window always yields the same signals, in a fixed order.
func ExtractSignals(window []athlete.DailyFeedback) []Signal {
	if len(window) == 0 {
		return nil
	}
	sum := athlete.Summarize(window)
	var out []Signal

	switch {
	case sum.AvgFatigue >= fatigueHighAvg:
		out = append(out, Signal{
			Type: SignalChronicFatigue, Severity: SeverityHigh, Value: sum.AvgFatigue,
			Recommended: ActionReduceIntensity,
			Reason:      fmt.Sprintf("average fatigue %.1f over %d days", sum.AvgFatigue, sum.Days),
		})
	case sum.AvgFatigue >= fatigueMediumAvg:
		out = append(out, Signal{
			Type: SignalChronicFatigue, Severity: SeverityMedium, Value: sum.AvgFatigue,
			Recommended: ActionReduceIntensity,
			Reason:      fmt.Sprintf("average fatigue %.1f over %d days", sum.AvgFatigue, sum.Days),
		})
	}

	if streak := longestFatigueStreak(window); streak >= fatigueStreakLen {
		out = append(out, Signal{
			Type: SignalFatigueStreak, Severity: SeverityHigh, Value: float64(streak),
			Recommended: ActionAddRestDay,
			Reason:      fmt.Sprintf("%d consecutive days at fatigue >= %d", streak, fatigueStreakLevel),
		})
	}

	if sum.AvgPain >= painCriticalAvg {
		out = append(out, Signal{
			Type: SignalPainAverage, Severity: SeverityCritical, Value: sum.AvgPain,
			Recommended: ActionMedicalAttention,
			Reason:      fmt.Sprintf("average pain %.1f over %d days, medical review recommended", sum.AvgPain, sum.Days),
		})
	} else if mentionsPain(window) {
		out = append(out, Signal{
			Type: SignalPainMention, Severity: SeverityHigh, Value: 1,
			Recommended: ActionSkipWorkout,
			Reason:      "pain mentioned in free-text feedback",
		})
	}

	if injuryReported(window) {
		out = append(out, Signal{
			Type: SignalInjuryReported, Severity: SeverityHigh, Value: 1,
			Recommended: ActionDeloadWeek,
			Reason:      "injury reported in feedback window",
		})
	}

	if sum.CompletionRate >= 0 {
		switch {
		case sum.CompletionRate < completionHighBar:
			out = append(out, Signal{
				Type: SignalLowCompletion, Severity: SeverityHigh, Value: sum.CompletionRate,
				Recommended: ActionReduceVolumeMinor,
				Reason:      fmt.Sprintf("completion rate %.0f%%", sum.CompletionRate*100),
			})
		case sum.CompletionRate < completionMediumBar:
			out = append(out, Signal{
				Type: SignalLowCompletion, Severity: SeverityMedium, Value: sum.CompletionRate,
				Recommended: ActionReduceVolumeMinor,
				Reason:      fmt.Sprintf("completion rate %.0f%%", sum.CompletionRate*100),
			})
		}
	}

	if sum.AvgSleep > 0 && sum.AvgSleep <= sleepPoorAvg {
		out = append(out, Signal{
			Type: SignalPoorSleep, Severity: SeverityMedium, Value: sum.AvgSleep,
			Recommended: ActionShiftLongRun,
			Reason:      fmt.Sprintf("average sleep quality %.1f/5", sum.AvgSleep),
		})
	}

	if sum.HRVBaseline > 0 && sum.HRVRecent > 0 {
		drop := (sum.HRVBaseline - sum.HRVRecent) / sum.HRVBaseline * 100
		if drop >= hrvDropPct {
			out = append(out, Signal{
				Type: SignalHRVDrop, Severity: SeverityHigh, Value: drop,
				Recommended: ActionAddRestDay,
				Reason:      fmt.Sprintf("HRV down %.0f%% from baseline %.1f", drop, sum.HRVBaseline),
			})
		}
	}

	if sum.AvgMotivation > 0 && sum.AvgMotivation <= motivationLowAvg {
		out = append(out, Signal{
			Type: SignalLowMotivation, Severity: SeverityLow, Value: sum.AvgMotivation,
			Recommended: ActionMaintain,
			Reason:      fmt.Sprintf("average motivation %.1f/5", sum.AvgMotivation),
		})
	}

	return out
}

func longestFatigueStreak(window []athlete.DailyFeedback) int {
	streak, max := 0, 0
	for _, f := range window {
		if f.Fatigue >= fatigueStreakLevel {
			streak++
			if streak > max {
				max = streak
			}
		} else {
			streak = 0
		}
	}
	return max
}

func mentionsPain(window []athlete.DailyFeedback) bool {
	for _, f := range window {
		text := strings.ToLower(f.PainNote + " " + f.Comment)
		for _, w := range painWords {
			if strings.Contains(text, w) {
				return true
			}
		}
	}
	return false
}

func injuryReported(window []athlete.DailyFeedback) bool {
	for _, f := range window {
		if f.InjuryReported {
			return true
		}
	}
	return false
}
