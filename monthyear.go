package jtac

// MonthYear converts a month of a year, held as time.Time on day 1 at
// midnight UTC.
type MonthYear struct {
	calendarEngine
}

var (
	_ TypeManager = (*MonthYear)(nil)
	_ Numeric     = (*MonthYear)(nil)
)

// NewMonthYear creates a MonthYear for culture. DateFormatShort derives its
// pattern from the culture's short date pattern ("M/yyyy"); the other
// formats use the culture's month-year pattern.
func NewMonthYear(culture *CultureProfile, opts DateOptions) (*MonthYear, error) {
	m := &MonthYear{}
	if err := m.init("MonthYear", kindMonthYear, culture, opts); err != nil {
		return nil, err
	}
	return m, nil
}
