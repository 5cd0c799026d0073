package check_snmp_ups

import "github.com/mackerelio/checkers"

// direction says which side of a bound is the worse one.
type direction int

const (
	lowerIsWorse direction = iota
	higherIsWorse
)

// classify places v into one of the three severity bands. Bounds are
// inclusive on the worse side: a value exactly at the warning bound is
// WARNING, a value exactly at the critical bound is CRITICAL.
func classify(v, warn, crit float64, dir direction) checkers.Status {
	switch dir {
	case lowerIsWorse:
		switch {
		case v <= crit:
			return checkers.CRITICAL
		case v <= warn:
			return checkers.WARNING
		}
	case higherIsWorse:
		switch {
		case v >= crit:
			return checkers.CRITICAL
		case v >= warn:
			return checkers.WARNING
		}
	}

	return checkers.OK
}

// classifyBand applies a two-sided corridor where both too low and too
// high are bad. Used for the mains voltage checks.
func classifyBand(v, lowWarn, lowCrit, highWarn, highCrit float64) checkers.Status {
	low := classify(v, lowWarn, lowCrit, lowerIsWorse)
	high := classify(v, highWarn, highCrit, higherIsWorse)

	return worst(low, high)
}

// severityRank orders statuses from harmless to terminal. UNKNOWN
// ranks last so it survives any merge.
func severityRank(s checkers.Status) int {
	switch s {
	case checkers.OK:
		return 0
	case checkers.WARNING:
		return 1
	case checkers.CRITICAL:
		return 2
	default:
		return 3
	}
}

// worst merges two findings, keeping the more severe one.
func worst(a, b checkers.Status) checkers.Status {
	if severityRank(b) > severityRank(a) {
		return b
	}

	return a
}
