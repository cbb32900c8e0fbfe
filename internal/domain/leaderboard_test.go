package domain

import (
	"testing"
	"time"
)

func TestPeriodValid(t *testing.T) {
	for _, p := range []Period{PeriodAll, PeriodDay, PeriodWeek, PeriodMonth} {
		if !p.Valid() {
			t.Errorf("Period(%q).Valid() = false, want true", p)
		}
	}
	for _, p := range []Period{"", "year", "Day"} {
		if p.Valid() {
			t.Errorf("Period(%q).Valid() = true, want false", p)
		}
	}
}

func TestPeriodStart(t *testing.T) {
	// 2026-08-26 is a Wednesday
	now := time.Date(2026, 8, 26, 15, 30, 45, 0, time.UTC)

	tests := []struct {
		period Period
		want   time.Time
	}{
		{PeriodDay, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)},
		{PeriodWeek, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)},
		{PeriodMonth, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got, bounded := tt.period.Start(now)
			if !bounded {
				t.Fatalf("Start(%v) unbounded, want bounded", now)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Start(%v) = %v, want %v", now, got, tt.want)
			}
		})
	}
}

func TestPeriodStartAllUnbounded(t *testing.T) {
	if _, bounded := PeriodAll.Start(time.Now()); bounded {
		t.Error("PeriodAll.Start bounded, want unbounded")
	}
}

func TestPeriodStartWeekOnSunday(t *testing.T) {
	// A Sunday is its own week start
	sunday := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	got, bounded := PeriodWeek.Start(sunday)
	if !bounded {
		t.Fatal("PeriodWeek.Start unbounded")
	}
	want := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Start(%v) = %v, want %v", sunday, got, want)
	}
}

func TestPeriodStartMonthFirstDay(t *testing.T) {
	first := time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC)
	got, _ := PeriodMonth.Start(first)
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Start(%v) = %v, want %v", first, got, want)
	}
}
