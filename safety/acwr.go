package safety

// acwrMinHistory is the minimum number of recorded weeks before the
// acute:chronic workload ratio is meaningful; with less history the check is
// skipped, not failed.
const acwrMinHistory = 4

// ACWR computes the acute:chronic workload ratio for a candidate week.
// Chronic load is the mean of the last four recorded weekly mileages; acute
// load is the mean of the last three recorded weeks plus the candidate. The
// boolean is false when history is too short or chronic load is zero.
func ACWR(history []float64, candidateKm float64) (float64, bool) {
	if len(history) < acwrMinHistory {
		return 0, false
	}
	chronic := mean(history[len(history)-4:])
	if chronic <= 0 {
		return 0, false
	}
	acuteWindow := append([]float64{}, history[len(history)-3:]...)
	acuteWindow = append(acuteWindow, candidateKm)
	return mean(acuteWindow) / chronic, true
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
