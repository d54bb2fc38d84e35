package format

import (
	"strconv"
	"time"
)

// FormatExecutionDuration renders a solver duration with three significant
// digits in the largest unit below it: "850ns", "12.3µs", "4.56ms", "1.20s".
// Durations of a minute or more use time.Duration's own form, rounded to
// the second.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < 0:
		return "-" + FormatExecutionDuration(-d)
	case d < time.Microsecond:
		return strconv.FormatInt(int64(d), 10) + "ns"
	case d < time.Millisecond:
		return significant(float64(d)/float64(time.Microsecond)) + "µs"
	case d < time.Second:
		return significant(float64(d)/float64(time.Millisecond)) + "ms"
	case d < time.Minute:
		return significant(d.Seconds()) + "s"
	}
	return d.Round(time.Second).String()
}

// significant formats v, 1 <= v < 1000, with three significant digits.
func significant(v float64) string {
	prec := 2
	switch {
	case v >= 100:
		prec = 0
	case v >= 10:
		prec = 1
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
