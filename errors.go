package divsim

import "fmt"

// DataGapError reports that a requested window holds no usable price
// coverage at all for a ticker.
type DataGapError struct {
	Ticker string
	Window Range
}

func (e *DataGapError) Error() string {
	return fmt.Sprintf("%s: no price coverage in %s", e.Ticker, e.Window)
}

// InvalidSplitError reports a malformed split event, rejected before the
// simulation starts.
type InvalidSplitError struct {
	Ticker string
	Day    Date
	Ratio  float64
}

func (e *InvalidSplitError) Error() string {
	return fmt.Sprintf("%s: invalid split ratio %g on %s", e.Ticker, e.Ratio, e.Day)
}

// InvalidScheduleError reports malformed contribution schedule parameters,
// rejected before the simulation starts.
type InvalidScheduleError struct {
	Reason string
}

func (e *InvalidScheduleError) Error() string {
	return "invalid schedule: " + e.Reason
}

// InsufficientDataError reports that a required price lookup found no trading
// day on or before the requested date inside the window.
type InsufficientDataError struct {
	Ticker string
	Day    Date
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: no trading price on or before %s", e.Ticker, e.Day)
}
