package jtac

import (
	"testing"
	"time"
)

func clock(h, m, s int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

func TestTimeOfDayToValue(t *testing.T) {
	tests := []struct {
		name    string
		culture string
		opts    func(*TimeOptions)
		text    string
		want    time.Duration
		wantErr bool
	}{
		{name: "pm", culture: "en-US", text: "2:30 PM", want: clock(14, 30, 0)},
		{name: "am_lower", culture: "en-US", text: "9:05 am", want: clock(9, 5, 0)},
		{name: "dotted_designator", culture: "en-US", text: "9:05 p.m.", want: clock(21, 5, 0)},
		{name: "midnight", culture: "en-US", text: "12:00 AM", want: 0},
		{name: "noon", culture: "en-US", text: "12 PM", want: clock(12, 0, 0)},
		{name: "designator_glued", culture: "en-US", text: "2pm", want: clock(14, 0, 0)},
		{name: "twenty_four_hour", culture: "en-US", text: "14:30:15", want: clock(14, 30, 15)},
		{name: "compact", culture: "en-US", text: "1430", want: clock(14, 30, 0)},
		{name: "compact_seconds", culture: "en-US", text: "143015", want: clock(14, 30, 15)},
		{name: "period_separator", culture: "en-US", text: "14.30", want: clock(14, 30, 0)},
		{name: "hours_only", culture: "en-US", text: "7", want: clock(7, 0, 0)},
		{name: "full_day", culture: "en-US", text: "24:00:00", wantErr: true},
		{name: "late_hours", culture: "en-US", text: "25:00", wantErr: true},
		{name: "minutes_60", culture: "en-US", text: "10:60", wantErr: true},
		{name: "pm_above_12", culture: "en-US", text: "13:00 PM", wantErr: true},
		{name: "letters", culture: "en-US", text: "ten", wantErr: true},
		{name: "leading_separator", culture: "en-US", text: ":30", wantErr: true},
		{name: "german", culture: "de-DE", text: "14:30", want: clock(14, 30, 0)},
		{
			name:    "requires_minutes",
			culture: "en-US",
			opts:    func(o *TimeOptions) { o.ParseTimeRequires = RequireMinutes },
			text:    "2 PM",
			wantErr: true,
		},
		{
			name:    "requires_seconds",
			culture: "en-US",
			opts:    func(o *TimeOptions) { o.ParseTimeRequires = RequireSeconds },
			text:    "2:30 PM",
			wantErr: true,
		},
		{
			name:    "strict_period",
			culture: "en-US",
			opts:    func(o *TimeOptions) { o.ParseStrict = true },
			text:    "2.30 PM",
			wantErr: true,
		},
		{
			name:    "strict_designator_position",
			culture: "en-US",
			opts:    func(o *TimeOptions) { o.ParseStrict = true },
			text:    "PM 2:30",
			wantErr: true,
		},
		{
			name:    "strict_ok",
			culture: "en-US",
			opts:    func(o *TimeOptions) { o.ParseStrict = true },
			text:    "2:30 PM",
			want:    clock(14, 30, 0),
		},
		{
			name:    "strict_no_designator_in_pattern",
			culture: "de-DE",
			opts:    func(o *TimeOptions) { o.ParseStrict = true },
			text:    "2:30 PM",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultTimeOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			m, err := NewTimeOfDay(mustCulture(t, tt.culture), opts)
			if err != nil {
				t.Fatalf("NewTimeOfDay: %v", err)
			}
			got, err := m.ToValue(tt.text)
			if tt.wantErr {
				if !IsInputError(err) {
					t.Fatalf("ToValue(%q) = %v, %v, want input error", tt.text, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToValue(%q): %v", tt.text, err)
			}
			if got != tt.want {
				t.Fatalf("ToValue(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTimeOfDayToString(t *testing.T) {
	tests := []struct {
		culture string
		format  TimeFormat
		value   time.Duration
		want    string
	}{
		{culture: "en-US", format: TimeFormatShort, value: clock(14, 30, 15), want: "2:30 PM"},
		{culture: "en-US", format: TimeFormatShort, value: 0, want: "12:00 AM"},
		{culture: "en-US", format: TimeFormatLong, value: clock(14, 30, 15), want: "2:30:15 PM"},
		{culture: "de-DE", format: TimeFormatShort, value: clock(9, 5, 0), want: "09:05"},
		{culture: "de-DE", format: TimeFormatLong, value: clock(9, 5, 7), want: "09:05:07"},
	}
	for _, tt := range tests {
		m, err := NewTimeOfDay(mustCulture(t, tt.culture), TimeOptions{TimeFormat: tt.format})
		if err != nil {
			t.Fatalf("NewTimeOfDay: %v", err)
		}
		got, err := m.ToString(tt.value)
		if err != nil {
			t.Fatalf("ToString(%v): %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("%s ToString(%v) = %q, want %q", tt.culture, tt.value, got, tt.want)
		}
		assertValidChars(t, m, got)

		back, err := m.ToValue(got)
		if err != nil {
			t.Fatalf("ToValue(%q): %v", got, err)
		}
		wantBack := tt.value
		if tt.format == TimeFormatShort {
			wantBack = tt.value.Truncate(time.Minute)
		}
		if back != wantBack {
			t.Errorf("round trip of %q = %v, want %v", got, back, wantBack)
		}
	}
}

func TestTimeOfDayNeutral(t *testing.T) {
	m, err := NewTimeOfDay(mustCulture(t, "en-US"), DefaultTimeOptions())
	if err != nil {
		t.Fatalf("NewTimeOfDay: %v", err)
	}
	got, err := m.ToStringNeutral(clock(14, 30, 15))
	if err != nil || got != "14:30:15" {
		t.Fatalf("ToStringNeutral = %q, %v", got, err)
	}
	value, err := m.ToValueNeutral(got)
	if err != nil || value != clock(14, 30, 15) {
		t.Fatalf("ToValueNeutral(%q) = %v, %v", got, value, err)
	}

	at := time.Date(2024, time.May, 1, 8, 15, 30, 999, time.UTC)
	got, err = m.ToStringNeutral(at)
	if err != nil || got != "8:15:30" {
		t.Fatalf("ToStringNeutral(time.Time) = %q, %v", got, err)
	}
	if _, err := m.ToString(25 * time.Hour); !IsConfigurationError(err) {
		t.Fatalf("ToString(25h) error = %v, want configuration error", err)
	}
	seconds, err := m.ToNumber("2:30 PM")
	if err != nil || seconds != 52200 {
		t.Fatalf("ToNumber = %v, %v", seconds, err)
	}
}

func TestDuration(t *testing.T) {
	m, err := NewDuration(mustCulture(t, "en-US"), DefaultDurationOptions())
	if err != nil {
		t.Fatalf("NewDuration: %v", err)
	}

	parses := []struct {
		text    string
		want    time.Duration
		wantErr bool
	}{
		{text: "24:00:00", want: clock(24, 0, 0)},
		{text: "125:30", want: clock(125, 30, 0)},
		{text: "9999:00", want: clock(9999, 0, 0)},
		{text: "9999:01", wantErr: true},
		{text: "2:30 PM", wantErr: true},
		{text: "1:75", wantErr: true},
	}
	for _, tt := range parses {
		got, err := m.ToValue(tt.text)
		if tt.wantErr {
			if !IsInputError(err) {
				t.Errorf("ToValue(%q) = %v, %v, want input error", tt.text, got, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ToValue(%q) = %v, %v, want %v", tt.text, got, err, tt.want)
		}
	}

	got, err := m.ToString(clock(125, 30, 10))
	if err != nil || got != "125:30" {
		t.Fatalf("ToString = %q, %v", got, err)
	}
	neutral, err := m.ToStringNeutral(clock(25, 30, 10))
	if err != nil || neutral != "0025:30:10" {
		t.Fatalf("ToStringNeutral = %q, %v", neutral, err)
	}
	value, err := m.ToValueNeutral(neutral)
	if err != nil || value != clock(25, 30, 10) {
		t.Fatalf("ToValueNeutral(%q) = %v, %v", neutral, value, err)
	}

	if err := m.SetMaxHours(10); err != nil {
		t.Fatalf("SetMaxHours: %v", err)
	}
	if _, err := m.ToValue("11:00"); !IsInputError(err) {
		t.Fatalf("ToValue(11:00) with MaxHours 10 error = %v", err)
	}
	if err := m.SetMaxHours(0); !IsConfigurationError(err) {
		t.Fatalf("SetMaxHours(0) error = %v, want configuration error", err)
	}
	if _, err := m.ToString(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)); !IsConfigurationError(err) {
		t.Fatalf("ToString(time.Time) error = %v, want configuration error", err)
	}
}

func TestTimeOptionsValidate(t *testing.T) {
	if _, err := NewTimeOfDay(nil, TimeOptions{TimeFormat: TimeFormat(7)}); !IsConfigurationError(err) {
		t.Errorf("bad TimeFormat error = %v", err)
	}
	if _, err := NewTimeOfDay(nil, TimeOptions{Pattern: "mm:ss"}); !IsConfigurationError(err) {
		t.Errorf("pattern without hours error = %v", err)
	}
	m, err := NewTimeOfDay(nil, TimeOptions{Pattern: "HH'h'mm"})
	if err != nil {
		t.Fatalf("NewTimeOfDay: %v", err)
	}
	got, err := m.ToString(clock(7, 5, 0))
	if err != nil || got != "07h05" {
		t.Fatalf("ToString = %q, %v", got, err)
	}
}
