package adaptive

import "strings"

// Action is the coarse-grained plan mutation the controller applies.
type Action string

const (
	ActionMaintain          Action = "maintain"
	ActionReduceVolumeMinor Action = "reduce_volume_minor"
	ActionReduceIntensity   Action = "reduce_intensity"
	ActionAddRestDay        Action = "add_rest_day"
	ActionDeloadWeek        Action = "deload_week"
	ActionSkipWorkout       Action = "skip_workout"
	ActionShiftLongRun      Action = "shift_long_run"
	ActionMedicalAttention  Action = "medical_attention"
)

// Urgency grades how quickly the athlete should see the change.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Decision is the outcome of the priority ladder over extracted signals.
type Decision struct {
	Action           Action   `json:"action"`
	VolumeAdjustment float64  `json:"volumeAdjustment"` // e.g. -0.3 for a 30% cut
	Urgency          Urgency  `json:"urgency"`
	Reason           string   `json:"reason"`
	Signals          []Signal `json:"signals,omitempty"`
}

// Decide runs the deterministic priority ladder over the signals, top-down,
// first match wins. No signals means maintain.
func Decide(signals []Signal) Decision {
	var critical, high, medium []Signal
	for _, s := range signals {
		switch s.Severity {
		case SeverityCritical:
			critical = append(critical, s)
		case SeverityHigh:
			high = append(high, s)
		case SeverityMedium:
			medium = append(medium, s)
		}
	}
	injury := false
	for _, s := range high {
		if s.Type == SignalInjuryReported {
			injury = true
		}
	}

	switch {
	case len(critical) > 0:
		return Decision{
			Action:           ActionMedicalAttention,
			VolumeAdjustment: -0.5,
			Urgency:          UrgencyHigh,
			Reason:           joinReasons(critical),
			Signals:          signals,
		}
	case len(high) >= 2 || injury:
		return Decision{
			Action:           ActionDeloadWeek,
			VolumeAdjustment: -0.3,
			Urgency:          UrgencyHigh,
			Reason:           joinReasons(high),
			Signals:          signals,
		}
	case len(high) == 1:
		return Decision{
			Action:           high[0].Recommended,
			VolumeAdjustment: -0.2,
			Urgency:          UrgencyMedium,
			Reason:           high[0].Reason,
			Signals:          signals,
		}
	case len(medium) >= 2:
		return Decision{
			Action:           ActionReduceVolumeMinor,
			VolumeAdjustment: -0.1,
			Urgency:          UrgencyMedium,
			Reason:           joinReasons(medium),
			Signals:          signals,
		}
	case len(medium) == 1:
		return Decision{
			Action:           medium[0].Recommended,
			VolumeAdjustment: -0.1,
			Urgency:          UrgencyLow,
			Reason:           medium[0].Reason,
			Signals:          signals,
		}
	default:
		return Decision{
			Action:  ActionMaintain,
			Urgency: UrgencyLow,
			Reason:  "no adverse signals in feedback window",
			Signals: signals,
		}
	}
}

func joinReasons(signals []Signal) string {
	reasons := make([]string, len(signals))
	for i, s := range signals {
		reasons[i] = s.Reason
	}
	return strings.Join(reasons, "; ")
}
