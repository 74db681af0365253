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

package schedule

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{name: "any time", expr: "at any time"},
		{name: "before morning", expr: "before 6am"},
		{name: "after evening", expr: "after 10pm"},
		{name: "single weekday", expr: "on monday"},
		{name: "weekday list", expr: "on monday and thursday"},
		{name: "combined clauses", expr: "before 6am on monday"},
		{name: "weekend", expr: "every weekend"},
		{name: "weekdays", expr: "every weekday"},
		{name: "empty", expr: "", wantErr: true},
		{name: "unknown clause", expr: "fortnightly", wantErr: true},
		{name: "bad hour", expr: "before 13am", wantErr: true},
		{name: "missing weekday", expr: "on", wantErr: true},
		{name: "unknown weekday", expr: "on funday", wantErr: true},
		{name: "dangling and", expr: "on monday and", wantErr: true},
		{name: "unknown period", expr: "every fortnight", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.expr)
			if tt.wantErr && err == nil {
				t.Errorf("Parse(%q) expected error", tt.expr)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Parse(%q) unexpected error: %v", tt.expr, err)
			}
		})
	}
}

func TestInWindow(t *testing.T) {
	// Monday 2026-01-05, 03:30 UTC
	mondayNight := time.Date(2026, 1, 5, 3, 30, 0, 0, time.UTC)
	// Saturday 2026-01-10, 14:00 UTC
	saturdayAfternoon := time.Date(2026, 1, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		t        time.Time
		exprs    []string
		timezone string
		want     bool
		wantErr  bool
	}{
		{name: "no schedule allows any time", t: saturdayAfternoon, want: true},
		{name: "before hour inside", t: mondayNight, exprs: []string{"before 6am"}, want: true},
		{name: "before hour outside", t: saturdayAfternoon, exprs: []string{"before 6am"}, want: false},
		{name: "after hour outside", t: mondayNight, exprs: []string{"after 10pm"}, want: false},
		{name: "weekday match", t: mondayNight, exprs: []string{"on monday"}, want: true},
		{name: "weekend match", t: saturdayAfternoon, exprs: []string{"every weekend"}, want: true},
		{name: "weekend mismatch", t: mondayNight, exprs: []string{"every weekend"}, want: false},
		{name: "combined clauses", t: mondayNight, exprs: []string{"before 6am on monday"}, want: true},
		{name: "alternatives", t: saturdayAfternoon, exprs: []string{"before 6am", "every weekend"}, want: true},
		{
			name: "timezone shifts the window",
			// 03:30 UTC is already past 6am in Helsinki (UTC+2)
			t:        mondayNight,
			exprs:    []string{"before 5am"},
			timezone: "Europe/Helsinki",
			want:     false,
		},
		{name: "invalid timezone", t: mondayNight, exprs: []string{"before 6am"}, timezone: "Mars/Olympus", wantErr: true},
		{name: "invalid expression", t: mondayNight, exprs: []string{"nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InWindow(tt.t, tt.exprs, tt.timezone)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("InWindow() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestParseHourBoundaries(t *testing.T) {
	tests := []struct {
		token string
		want  int
	}{
		{token: "12am", want: 0},
		{token: "1am", want: 1},
		{token: "12pm", want: 12},
		{token: "10pm", want: 22},
	}
	for _, tt := range tests {
		got, err := parseHour(tt.token)
		if err != nil {
			t.Errorf("parseHour(%q) unexpected error: %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseHour(%q) = %d, want %d", tt.token, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate([]string{"before 6am", "every weekend"}, "Europe/Berlin"); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
	if err := Validate([]string{"before 6am"}, "Not/AZone"); err == nil {
		t.Error("Validate() expected timezone error")
	}
	if err := Validate([]string{"whenever"}, ""); err == nil {
		t.Error("Validate() expected expression error")
	}
}
