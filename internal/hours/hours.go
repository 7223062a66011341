// Package hours evaluates the restaurant's daily open/close window. The
// evaluator is pure; the watcher polls it and gates ordering downstream.
package hours

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window is a single daily open interval in local wall-clock time.
// Open must precede close within the same day; overnight windows are not
// supported.
type Window struct {
	OpenHour    int `json:"open_hour"`
	OpenMinute  int `json:"open_minute"`
	CloseHour   int `json:"close_hour"`
	CloseMinute int `json:"close_minute"`
}

// DefaultWindow is the restaurant's standard schedule: 1:30 AM to 11:30 PM.
var DefaultWindow = Window{OpenHour: 1, OpenMinute: 30, CloseHour: 23, CloseMinute: 30}

func (w Window) openMinutes() int  { return w.OpenHour*60 + w.OpenMinute }
func (w Window) closeMinutes() int { return w.CloseHour*60 + w.CloseMinute }

// Validate checks the window bounds and ordering.
func (w Window) Validate() error {
	if w.OpenHour < 0 || w.OpenHour > 23 || w.CloseHour < 0 || w.CloseHour > 23 {
		return fmt.Errorf("hour out of range")
	}
	if w.OpenMinute < 0 || w.OpenMinute > 59 || w.CloseMinute < 0 || w.CloseMinute > 59 {
		return fmt.Errorf("minute out of range")
	}
	if w.openMinutes() >= w.closeMinutes() {
		return fmt.Errorf("open time must precede close time within the same day")
	}
	return nil
}

// OpeningHours formats the window as a human interval, e.g.
// "1:30 AM - 11:30 PM".
func (w Window) OpeningHours() string {
	return fmt.Sprintf("%s - %s",
		format12h(w.OpenHour, w.OpenMinute),
		format12h(w.CloseHour, w.CloseMinute))
}

// ParseWindow builds a Window from "HH:MM" open and close values, as read
// from config.
func ParseWindow(openAt, closeAt string) (Window, error) {
	oh, om, err := parseClock(openAt)
	if err != nil {
		return Window{}, fmt.Errorf("invalid open time %q: %w", openAt, err)
	}
	ch, cm, err := parseClock(closeAt)
	if err != nil {
		return Window{}, fmt.Errorf("invalid close time %q: %w", closeAt, err)
	}
	w := Window{OpenHour: oh, OpenMinute: om, CloseHour: ch, CloseMinute: cm}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

func parseClock(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM")
	}
	return h, m, nil
}

// Status is the result of evaluating a window at an instant.
type Status struct {
	Open          bool      `json:"open"`
	NextOpen      time.Time `json:"next_open"`
	NextOpenLabel string    `json:"next_open_label"`
	OpeningHours  string    `json:"opening_hours"`
}

// Evaluate reports whether the restaurant is open at now and when it next
// opens. Open is inclusive of the open minute and exclusive of the close
// minute. When now is past closing, the next open is tomorrow; otherwise it
// is today's open time. Pure and side-effect-free.
func Evaluate(now time.Time, w Window) Status {
	nowMinutes := now.Hour()*60 + now.Minute()
	open := nowMinutes >= w.openMinutes() && nowMinutes < w.closeMinutes()

	nextOpen := time.Date(now.Year(), now.Month(), now.Day(),
		w.OpenHour, w.OpenMinute, 0, 0, now.Location())
	if nowMinutes >= w.closeMinutes() {
		nextOpen = nextOpen.AddDate(0, 0, 1)
	}

	return Status{
		Open:          open,
		NextOpen:      nextOpen,
		NextOpenLabel: format12h(w.OpenHour, w.OpenMinute),
		OpeningHours:  w.OpeningHours(),
	}
}

func format12h(hour, minute int) string {
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour
	if hour > 12 {
		display = hour - 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, ampm)
}
