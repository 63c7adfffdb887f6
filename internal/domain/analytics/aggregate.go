package analytics

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Unknown is the bucket for events that carry no device or field id.
const Unknown = "unknown"

var ErrInvalidPeriod = errors.New("period must be one of 7d, 30d, 90d, all")

// Period is the reporting window of a summary.
type Period string

const (
	Period7d  Period = "7d"
	Period30d Period = "30d"
	Period90d Period = "90d"
	PeriodAll Period = "all"

	DefaultPeriod = Period30d
)

// ParsePeriod accepts the query value of ?period=. Empty means the default.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultPeriod, nil
	case Period7d, Period30d, Period90d, PeriodAll:
		return p, nil
	}
	return "", ErrInvalidPeriod
}

// Since returns the start of the window ending at now, or the zero time for
// PeriodAll.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case Period7d:
		return now.AddDate(0, 0, -7)
	case Period30d:
		return now.AddDate(0, 0, -30)
	case Period90d:
		return now.AddDate(0, 0, -90)
	}
	return time.Time{}
}

// CompletionRate is submissions over views as a percentage; zero without
// views.
func CompletionRate(views, submissions int64) float64 {
	if views <= 0 {
		return 0
	}
	return float64(submissions) / float64(views) * 100
}

// DropOffPoints counts interactions per field id.
func DropOffPoints(interactions []Interaction) map[string]int {
	points := make(map[string]int)
	for _, in := range interactions {
		key := in.FieldID
		if key == "" {
			key = Unknown
		}
		points[key]++
	}
	return points
}

// DeviceBreakdown counts submissions per device.
func DeviceBreakdown(submissions []Submission) map[string]int {
	devices := make(map[string]int)
	for _, s := range submissions {
		key := s.Device
		if key == "" {
			key = Unknown
		}
		devices[key]++
	}
	return devices
}

// AverageCompletionTime is the rounded mean completion time in seconds.
// Submissions without a time count as zero.
func AverageCompletionTime(submissions []Submission) int64 {
	if len(submissions) == 0 {
		return 0
	}
	var total float64
	for _, s := range submissions {
		if s.CompletionTime != nil {
			total += *s.CompletionTime
		}
	}
	return int64(math.Round(total / float64(len(submissions))))
}

// Summarize builds the summary from the fetched rows.
func Summarize(formID string, period Period, views int64, interactions []Interaction, submissions []Submission) Summary {
	if interactions == nil {
		interactions = []Interaction{}
	}
	if submissions == nil {
		submissions = []Submission{}
	}
	total := int64(len(submissions))
	return Summary{
		FormID:                formID,
		Period:                period,
		TotalViews:            views,
		TotalSubmissions:      total,
		CompletionRate:        CompletionRate(views, total),
		DropOffPoints:         DropOffPoints(interactions),
		DeviceAnalytics:       DeviceBreakdown(submissions),
		AverageCompletionTime: AverageCompletionTime(submissions),
		Interactions:          interactions,
		Submissions:           submissions,
	}
}

// DetectDevice guesses a device class from a user agent when the client did
// not report one.
func DetectDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case ua == "":
		return Unknown
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		return "tablet"
	case strings.Contains(ua, "mobi") || strings.Contains(ua, "iphone") || strings.Contains(ua, "android"):
		return "mobile"
	}
	return "desktop"
}
