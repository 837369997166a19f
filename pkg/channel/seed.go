package channel

import "time"

const seedModulus = 2147483647

const centisecondsPerDay = 8640000

var cumulativeDays = [12]int64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// dayNumber counts days from year 0 so that 1970-01-01 is 719529
func dayNumber(t time.Time) int64 {
	year := int64(t.Year())
	month := int(t.Month())

	d := 365*year + ceilDiv(year, 4) - ceilDiv(year, 100) + ceilDiv(year, 400) +
		cumulativeDays[month-1] + int64(t.Day())
	if month > 2 && isLeap(t.Year()) {
		d++
	}
	return d
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// SerialDate returns t as a serial day number counted from year 0, with the
// time of day, including fractional seconds, as the fractional part.
// 1970-01-01 maps to 719529.
func SerialDate(t time.Time) float64 {
	secs := float64(t.Hour())*3600 + float64(t.Minute())*60 + float64(t.Second()) +
		float64(t.Nanosecond())/1e9
	return float64(dayNumber(t)) + secs/86400.0
}

// TimeSeed derives a generator seed from wall-clock time: the serial date in
// whole hundredths of a second, reduced modulo 2^31-1. The count is kept in
// integers so calls 10 ms apart always differ.
func TimeSeed(t time.Time) uint32 {
	cs := dayNumber(t)*centisecondsPerDay +
		int64(t.Hour())*360000 + int64(t.Minute())*6000 + int64(t.Second())*100 +
		int64(t.Nanosecond())/1e7
	s := cs % seedModulus
	if s < 0 {
		s += seedModulus
	}
	return uint32(s)
}
