package stats

import (
	"strconv"
	"time"

	"github.com/focusfoundry/tempo/internal/domain"
)

// Bucket is one chart bar: created and completed counts for a window.
type Bucket struct {
	Label   string    `json:"label"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Created int       `json:"created"`
	Done    int       `json:"done"`
}

// CumulativeBucket extends Bucket with running prefix sums across the
// series in bucket order.
type CumulativeBucket struct {
	Bucket
	CreatedCum int `json:"created_cum"`
	DoneCum    int `json:"done_cum"`
}

func fillBucket(tasks []domain.Task, label string, start, end time.Time) Bucket {
	return Bucket{
		Label:   label,
		Start:   start,
		End:     end,
		Created: CountCreatedInRange(tasks, start, end),
		Done:    CountCompletedInRange(tasks, start, end),
	}
}

// DailyBuckets returns seven buckets, one per day of the Monday-start
// week containing anchor.
func DailyBuckets(tasks []domain.Task, anchor time.Time) []Bucket {
	start := WeekStart(anchor)
	buckets := make([]Bucket, 0, 7)
	for i := 0; i < 7; i++ {
		dayStart := start.AddDate(0, 0, i)
		dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
		buckets = append(buckets, fillBucket(tasks, dayStart.Format("Mon"), dayStart, dayEnd))
	}
	return buckets
}

// WeeklyBuckets returns one bucket per Monday-start week overlapping the
// month containing anchor, labelled W1..Wn.
func WeeklyBuckets(tasks []domain.Task, anchor time.Time) []Bucket {
	monthEnd := MonthEnd(anchor)
	cursor := WeekStart(MonthStart(anchor))

	var buckets []Bucket
	for idx := 1; !cursor.After(monthEnd); idx++ {
		end := WeekEnd(cursor)
		buckets = append(buckets, fillBucket(tasks, "W"+strconv.Itoa(idx), cursor, end))
		cursor = cursor.AddDate(0, 0, 7)
	}
	return buckets
}

// MonthlyBuckets returns six trailing month buckets ending at the month
// containing anchor, labelled with the short month name.
func MonthlyBuckets(tasks []domain.Task, anchor time.Time) []Bucket {
	buckets := make([]Bucket, 0, 6)
	for i := 5; i >= 0; i-- {
		m := MonthStart(anchor).AddDate(0, -i, 0)
		buckets = append(buckets, fillBucket(tasks, m.Format("Jan"), m, MonthEnd(m)))
	}
	return buckets
}

// Cumulative converts a bucket series into its running-prefix-sum
// variant, in bucket order.
func Cumulative(buckets []Bucket) []CumulativeBucket {
	out := make([]CumulativeBucket, 0, len(buckets))
	createdCum, doneCum := 0, 0
	for _, b := range buckets {
		createdCum += b.Created
		doneCum += b.Done
		out = append(out, CumulativeBucket{Bucket: b, CreatedCum: createdCum, DoneCum: doneCum})
	}
	return out
}

// FocusBucket is one focus-minutes chart bar.
type FocusBucket struct {
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

// FocusMinutes sums focus-session minutes per bucket window. Only focus
// sessions count; break sessions are ignored.
func FocusMinutes(sessions []domain.Session, buckets []Bucket) []FocusBucket {
	out := make([]FocusBucket, 0, len(buckets))
	for _, b := range buckets {
		seconds := 0
		for _, s := range sessions {
			if s.Mode != domain.ModeFocus {
				continue
			}
			if d, ok := ParseDateIn(s.Date, b.Start.Location()); ok && inRange(d, b.Start, b.End) {
				seconds += s.Seconds
			}
		}
		out = append(out, FocusBucket{Label: b.Label, Minutes: RoundMinutes(seconds)})
	}
	return out
}

// RoundMinutes converts seconds to minutes, rounding to nearest.
func RoundMinutes(seconds int) int {
	return (seconds + 30) / 60
}
