package services

// Dispatch scenarios produced by the buffer calculator. The strings are shown
// to operators on the dispatch panel.
const (
	ScenarioLow    = "priority: speed"
	ScenarioMedium = "priority: grouping efficiency"
	ScenarioHigh   = "priority: freight efficiency"
)

// BufferSettings is the administrator-managed volume band configuration. It is
// read-only to this service; band ranges are assumed non-overlapping, which is
// validated by the settings writer.
type BufferSettings struct {
	Enabled bool

	LowMaxOrders    int
	LowTimerMinutes int

	MediumMaxOrders    int
	MediumTimerMinutes int

	HighTimerMinutes int

	// MaxBufferTimeMinutes is a safety ceiling that wins over every band.
	MaxBufferTimeMinutes int
}

// TimerDecision is the outcome of a buffer computation: how long newly ready
// orders should wait before grouping, and which scenario produced that number.
type TimerDecision struct {
	Minutes  int
	Scenario string
}

// BufferCalculator is a domain service that classifies the current active-order
// count into a volume band and returns the band's buffer timer.
//
// Business rules:
//   - band upper bounds are inclusive: a count exactly at LowMaxOrders is low
//   - the timer never exceeds MaxBufferTimeMinutes
//   - when the settings are disabled no decision is made; the caller falls
//     back to the static per-day timeout
type BufferCalculator struct{}

// NewBufferCalculator creates a new BufferCalculator instance.
func NewBufferCalculator() BufferCalculator {
	return BufferCalculator{}
}

// ComputeTimer maps activeOrderCount to a TimerDecision. The second return
// value is false when the settings are disabled and no override applies.
func (c BufferCalculator) ComputeTimer(activeOrderCount int, settings BufferSettings) (TimerDecision, bool) {
	if !settings.Enabled {
		return TimerDecision{}, false
	}

	var decision TimerDecision
	switch {
	case activeOrderCount <= settings.LowMaxOrders:
		decision = TimerDecision{Minutes: settings.LowTimerMinutes, Scenario: ScenarioLow}
	case activeOrderCount <= settings.MediumMaxOrders:
		decision = TimerDecision{Minutes: settings.MediumTimerMinutes, Scenario: ScenarioMedium}
	default:
		decision = TimerDecision{Minutes: settings.HighTimerMinutes, Scenario: ScenarioHigh}
	}

	if decision.Minutes > settings.MaxBufferTimeMinutes {
		decision.Minutes = settings.MaxBufferTimeMinutes
	}

	return decision, true
}
