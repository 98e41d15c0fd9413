package jtac

// DayMonth converts a day of a month with no year, such as a birthday. Values
// are time.Time in the leap year 2004 so February 29 is legal.
type DayMonth struct {
	calendarEngine
}

var (
	_ TypeManager = (*DayMonth)(nil)
	_ Numeric     = (*DayMonth)(nil)
)

// NewDayMonth creates a DayMonth for culture. DateFormatShort derives its
// pattern from the culture's short date pattern ("M/d"); the other formats
// use the culture's day-month pattern.
func NewDayMonth(culture *CultureProfile, opts DateOptions) (*DayMonth, error) {
	m := &DayMonth{}
	if err := m.init("DayMonth", kindDayMonth, culture, opts); err != nil {
		return nil, err
	}
	return m, nil
}
