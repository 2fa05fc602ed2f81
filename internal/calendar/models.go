// Package calendar provides a Microsoft Graph calendar client used to read
// busy intervals and place focus block events.
package calendar

import (
	"time"

	"github.com/tasksync/tasksync/internal/schedule"
)

// workItemIDProperty tags focus block events with the work item they belong
// to, so stale blocks can be found and removed later.
const workItemIDProperty = "String {66f5a359-4659-4830-9070-00040ec6ac6e} Name WorkItemId"

// Event is a calendar event. ID is empty on events being created.
type Event struct {
	ID                 string             `json:"id,omitempty"`
	Subject            string             `json:"subject"`
	Start              DateTimeZone       `json:"start"`
	End                DateTimeZone       `json:"end"`
	Body               *ItemBody          `json:"body,omitempty"`
	Categories         []string           `json:"categories,omitempty"`
	ExtendedProperties []ExtendedProperty `json:"singleValueExtendedProperties,omitempty"`
}

// DateTimeZone is the Graph wire form of an event boundary: a naive
// timestamp plus the zone it should be read in.
type DateTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// NewDateTimeZone renders t as a naive timestamp in the given zone.
func NewDateTimeZone(t time.Time, zone *time.Location) DateTimeZone {
	return DateTimeZone{
		DateTime: t.In(zone).Format("2006-01-02T15:04:05"),
		TimeZone: zone.String(),
	}
}

// UTC resolves the naive timestamp against its zone field and returns the
// instant in UTC.
func (d DateTimeZone) UTC() (time.Time, error) {
	return schedule.ParseTimestamp(d.DateTime, d.TimeZone)
}

// ItemBody is an event description.
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// ExtendedProperty is a single-value extended property on an event.
type ExtendedProperty struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// eventsResponse is the Graph list envelope.
type eventsResponse struct {
	Value []Event `json:"value"`
}

// BusyIntervals converts events into schedule intervals, resolving each
// boundary's zone. Events with unparseable boundaries are skipped rather
// than failing the whole conversion; one broken meeting should not block
// scheduling.
func BusyIntervals(events []Event) []schedule.Interval {
	busy := make([]schedule.Interval, 0, len(events))
	for _, ev := range events {
		start, err := ev.Start.UTC()
		if err != nil {
			continue
		}
		end, err := ev.End.UTC()
		if err != nil {
			continue
		}
		iv, err := schedule.NewInterval(start, end)
		if err != nil {
			continue
		}
		busy = append(busy, iv)
	}
	return busy
}
