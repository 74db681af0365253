/*
Copyright 2025 The AlaudaDevops Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package schedule parses schedule expressions and evaluates whether a
// point in time falls inside the allowed update window.
//
// The supported grammar is a deliberate subset:
//
//	at any time
//	before <N>am|pm
//	after <N>am|pm
//	on <weekday>[ and <weekday>]...
//	every weekend
//	every weekday
//
// Clauses inside one expression all have to hold ("before 6am on monday");
// expressions in a list are alternatives.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window is one parsed schedule expression
type Window struct {
	// Any marks the unrestricted "at any time" window
	Any bool
	// BeforeHour restricts to t.Hour() < BeforeHour when set
	BeforeHour *int
	// AfterHour restricts to t.Hour() >= AfterHour when set
	AfterHour *int
	// Days restricts to the listed weekdays when non-empty
	Days map[time.Weekday]bool
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Parse parses a single schedule expression
func Parse(expr string) (*Window, error) {
	normalized := strings.ToLower(strings.TrimSpace(expr))
	if normalized == "" {
		return nil, fmt.Errorf("empty schedule expression")
	}
	if normalized == "at any time" {
		return &Window{Any: true}, nil
	}

	window := &Window{}
	tokens := strings.Fields(normalized)

	for i := 0; i < len(tokens); {
		switch tokens[i] {
		case "before", "after":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("schedule %q: %q needs a time of day", expr, tokens[i])
			}
			hour, err := parseHour(tokens[i+1])
			if err != nil {
				return nil, fmt.Errorf("schedule %q: %w", expr, err)
			}
			if tokens[i] == "before" {
				window.BeforeHour = &hour
			} else {
				window.AfterHour = &hour
			}
			i += 2
		case "on":
			days, consumed, err := parseDayList(tokens[i+1:])
			if err != nil {
				return nil, fmt.Errorf("schedule %q: %w", expr, err)
			}
			window.Days = days
			i += 1 + consumed
		case "every":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("schedule %q: %q needs weekend or weekday", expr, tokens[i])
			}
			switch tokens[i+1] {
			case "weekend":
				window.Days = map[time.Weekday]bool{time.Saturday: true, time.Sunday: true}
			case "weekday":
				window.Days = map[time.Weekday]bool{
					time.Monday: true, time.Tuesday: true, time.Wednesday: true,
					time.Thursday: true, time.Friday: true,
				}
			default:
				return nil, fmt.Errorf("schedule %q: unknown period %q", expr, tokens[i+1])
			}
			i += 2
		default:
			return nil, fmt.Errorf("schedule %q: unknown clause starting at %q", expr, tokens[i])
		}
	}

	return window, nil
}

// parseHour parses "4am", "10pm" or "12am"/"12pm" into a 24h hour
func parseHour(token string) (int, error) {
	var suffix string
	switch {
	case strings.HasSuffix(token, "am"):
		suffix = "am"
	case strings.HasSuffix(token, "pm"):
		suffix = "pm"
	default:
		return 0, fmt.Errorf("time of day %q must end in am or pm", token)
	}

	hour, err := strconv.Atoi(strings.TrimSuffix(token, suffix))
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("invalid time of day %q", token)
	}

	if hour == 12 {
		hour = 0
	}
	if suffix == "pm" {
		hour += 12
	}
	return hour, nil
}

// parseDayList parses "monday and thursday" style lists, returning the
// number of tokens consumed
func parseDayList(tokens []string) (map[time.Weekday]bool, int, error) {
	if len(tokens) == 0 {
		return nil, 0, fmt.Errorf("\"on\" needs at least one weekday")
	}

	days := map[time.Weekday]bool{}
	consumed := 0
	expectDay := true
	for _, token := range tokens {
		if expectDay {
			day, ok := weekdays[token]
			if !ok {
				if consumed == 0 {
					return nil, 0, fmt.Errorf("unknown weekday %q", token)
				}
				break
			}
			days[day] = true
			consumed++
			expectDay = false
			continue
		}
		if token != "and" {
			break
		}
		consumed++
		expectDay = true
	}
	if expectDay && consumed > 0 {
		return nil, 0, fmt.Errorf("dangling \"and\" in weekday list")
	}
	return days, consumed, nil
}

// Contains reports whether t falls inside the window
func (w *Window) Contains(t time.Time) bool {
	if w.Any {
		return true
	}
	if w.BeforeHour != nil && t.Hour() >= *w.BeforeHour {
		return false
	}
	if w.AfterHour != nil && t.Hour() < *w.AfterHour {
		return false
	}
	if len(w.Days) > 0 && !w.Days[t.Weekday()] {
		return false
	}
	return true
}

// InWindow reports whether t (converted to the given timezone) falls inside
// any of the schedule expressions. An empty expression list allows any time.
func InWindow(t time.Time, exprs []string, timezone string) (bool, error) {
	if len(exprs) == 0 {
		return true, nil
	}

	loc := time.UTC
	if timezone != "" {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return false, fmt.Errorf("invalid timezone %q: %w", timezone, err)
		}
	}
	local := t.In(loc)

	for _, expr := range exprs {
		window, err := Parse(expr)
		if err != nil {
			return false, err
		}
		if window.Contains(local) {
			return true, nil
		}
	}
	return false, nil
}

// Validate checks every expression in the list and the timezone, returning
// the first problem found
func Validate(exprs []string, timezone string) error {
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", timezone, err)
		}
	}
	for _, expr := range exprs {
		if _, err := Parse(expr); err != nil {
			return err
		}
	}
	return nil
}
