package helpers

import (
	"testing"
	"time"
)

func TestCombineDateTime(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		clock   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "minute precision",
			date:  "2026-09-14",
			clock: "09:00",
			want:  time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local),
		},
		{
			name:  "second precision",
			date:  "2026-09-14",
			clock: "09:15:30",
			want:  time.Date(2026, 9, 14, 9, 15, 30, 0, time.Local),
		},
		{
			name:    "bad date",
			date:    "14-09-2026",
			clock:   "09:00",
			wantErr: true,
		},
		{
			name:    "bad clock",
			date:    "2026-09-14",
			clock:   "9am",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CombineDateTime(tt.date, tt.clock)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("CombineDateTime: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("CombineDateTime = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDayBounds(t *testing.T) {
	in := time.Date(2026, 9, 14, 13, 45, 12, 0, time.Local)
	start, end := DayBounds(in)

	if want := time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if want := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
}

func TestParseDurationFallsBack(t *testing.T) {
	if got := ParseDuration("not-a-duration", 2*time.Hour); got != 2*time.Hour {
		t.Errorf("ParseDuration = %v, want 2h", got)
	}
	if got := ParseDuration("45m", 2*time.Hour); got != 45*time.Minute {
		t.Errorf("ParseDuration = %v, want 45m", got)
	}
}
