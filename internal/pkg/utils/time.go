package utils

import "time"

// CombineDateTime joins a "2006-01-02" date and a "15:04" clock into a
// single time.Time in the given location.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	combined, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, err
	}
	return combined, nil
}

func IsSameDate(t time.Time, date string) bool {
	return t.Format("2006-01-02") == date
}
