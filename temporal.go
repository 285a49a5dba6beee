package schematic

import "time"

// Layout lists are tried in order; the first match wins. ISO-8601/RFC3339
// variants come first, then locale-style slash and dot formats.
var datetimeLayouts = []string{
	time.RFC3339Nano,             // "2006-10-25T14:30:59.123456789Z", offsets too
	time.RFC3339,                 // "2006-10-25T14:30:59Z"
	"2006-01-02T15:04:05.999999", // "2006-10-25T14:30:59.123456"
	"2006-01-02T15:04:05",        // "2006-10-25T14:30:59"
	"2006-01-02 15:04:05",        // "2006-10-25 14:30:59"
	"2006-01-02 15:04",           // "2006-10-25 14:30"
	"01/02/2006 15:04:05",        // "10/25/2006 14:30:59"
	"01/02/2006 15:04",           // "10/25/2006 14:30"
	"01/02/06 15:04:05",          // "10/25/06 14:30:59"
	"01/02/06 15:04",             // "10/25/06 14:30"
	"02.01.2006 15:04:05",        // "25.10.2006 14:30:59"
	"02.01.2006 15:04",           // "25.10.2006 14:30"
}

var dateLayouts = []string{
	"2006-01-02", "01/02/2006", "01/02/06", // "2006-10-25", "10/25/2006", "10/25/06"
	"02.01.2006", "02.01.06", // "25.10.2006", "25.10.06"
}

var timeLayouts = []string{
	"15:04:05", // "14:30:59"
	"15:04",    // "14:30"
}

func parseLayouts(layouts []string, s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateTime accepts a time.Time as-is or text tried against the datetime
// layout list. With Aware, the result is normalized to UTC.
func DateTime(opts ...Option) *DateTimeSchema {
	return &DateTimeSchema{base: newBase(opts)}
}

// DateTimeSchema is the combined date-and-time variant.
type DateTimeSchema struct{ base }

func (s *DateTimeSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *DateTimeSchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *DateTimeSchema) convert(v any, p Path) (any, error) {
	switch tv := v.(type) {
	case time.Time:
		return s.stamp(tv), nil
	case string:
		if t, ok := parseLayouts(datetimeLayouts, tv); ok {
			return s.stamp(t), nil
		}
		return nil, invalidValueAt(p, CodeInvalidFormat, map[string]string{"kind": "date/time"}, v)
	}
	return nil, invalidValueAt(p, CodeInvalidType, map[string]string{"want": "datetime value"}, v)
}

func (s *DateTimeSchema) stamp(t time.Time) time.Time {
	if s.opt.aware {
		return t.UTC()
	}
	return t
}

// Date accepts a time.Time (extracting the date part) or text tried against
// the date layout list. Results are midnight UTC.
func Date(opts ...Option) *DateSchema {
	return &DateSchema{base: newBase(opts)}
}

// DateSchema is the date-only variant.
type DateSchema struct{ base }

func (s *DateSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *DateSchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *DateSchema) convert(v any, p Path) (any, error) {
	switch tv := v.(type) {
	case time.Time:
		return dateOf(tv), nil
	case string:
		if t, ok := parseLayouts(dateLayouts, tv); ok {
			return dateOf(t), nil
		}
		return nil, invalidValueAt(p, CodeInvalidFormat, map[string]string{"kind": "date"}, v)
	}
	return nil, invalidValueAt(p, CodeInvalidType, map[string]string{"want": "date value"}, v)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Time accepts a time.Time (extracting the clock part) or text tried against
// the time layout list. Results sit on the zero reference day in UTC.
func Time(opts ...Option) *TimeSchema {
	return &TimeSchema{base: newBase(opts)}
}

// TimeSchema is the time-of-day variant.
type TimeSchema struct{ base }

func (s *TimeSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *TimeSchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *TimeSchema) convert(v any, p Path) (any, error) {
	switch tv := v.(type) {
	case time.Time:
		return clockOf(tv), nil
	case string:
		if t, ok := parseLayouts(timeLayouts, tv); ok {
			return clockOf(t), nil
		}
		return nil, invalidValueAt(p, CodeInvalidFormat, map[string]string{"kind": "time"}, v)
	}
	return nil, invalidValueAt(p, CodeInvalidType, map[string]string{"want": "time value"}, v)
}

func clockOf(t time.Time) time.Time {
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
