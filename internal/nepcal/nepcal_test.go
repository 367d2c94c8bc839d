package nepcal

import (
	"testing"
	"time"
)

func TestConversionAnchors(t *testing.T) {
	anchors := []struct {
		bs string
		ad string
	}{
		{"2000-01-01", "1943-04-14"},
		{"2077-01-01", "2020-04-13"},
		{"2080-01-01", "2023-04-14"},
		{"2081-01-01", "2024-04-13"},
		{"2082-01-01", "2025-04-14"},
	}

	for _, a := range anchors {
		t.Run(a.bs, func(t *testing.T) {
			got, err := ToGregorian(a.bs)
			if err != nil {
				t.Fatalf("ToGregorian(%s) failed: %v", a.bs, err)
			}
			if got.Format("2006-01-02") != a.ad {
				t.Errorf("ToGregorian(%s) = %s, want %s", a.bs, got.Format("2006-01-02"), a.ad)
			}

			ad, err := time.Parse("2006-01-02", a.ad)
			if err != nil {
				t.Fatal(err)
			}
			back, err := FromGregorian(ad)
			if err != nil {
				t.Fatalf("FromGregorian(%s) failed: %v", a.ad, err)
			}
			if back != a.bs {
				t.Errorf("FromGregorian(%s) = %s, want %s", a.ad, back, a.bs)
			}
		})
	}
}

func TestAddDaysZeroIsIdentity(t *testing.T) {
	dates := []string{"2000-01-01", "2045-06-15", "2081-01-01", "2081-12-30", "2090-09-29"}
	for _, d := range dates {
		if got := AddDays(d, 0); got != d {
			t.Errorf("AddDays(%s, 0) = %q, want %q", d, got, d)
		}
	}
}

func TestDaysBetweenInverseOfAddDays(t *testing.T) {
	base := "2081-03-10"
	for _, n := range []int{0, 1, 7, 14, 28, 45, 365, -1, -45, -400} {
		shifted := AddDays(base, n)
		if shifted == "" {
			t.Fatalf("AddDays(%s, %d) returned sentinel", base, n)
		}
		want := n
		if want < 0 {
			want = -want
		}
		if got := DaysBetween(base, shifted); got != want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", base, shifted, got, want)
		}
	}
}

func TestMonthRollover(t *testing.T) {
	// Last day of Baisakh 2081 (31 days) rolls into Jestha.
	if got := AddDays("2081-01-31", 1); got != "2081-02-01" {
		t.Errorf("month rollover: got %s, want 2081-02-01", got)
	}

	// Last day of Chaitra rolls into the next year.
	days, err := DaysInMonth(2080, 12)
	if err != nil {
		t.Fatal(err)
	}
	last := Date{Year: 2080, Month: 12, Day: days}.String()
	if got := AddDays(last, 1); got != "2081-01-01" {
		t.Errorf("year rollover: AddDays(%s, 1) = %s, want 2081-01-01", last, got)
	}
}

func TestDaysInMonthVariableLengths(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2081, 1, 31},
		{2081, 3, 32},
		{2081, 9, 29},
		{2082, 1, 30},
		{2000, 1, 30},
	}
	for _, c := range cases {
		got, err := DaysInMonth(c.year, c.month)
		if err != nil {
			t.Fatalf("DaysInMonth(%d, %d) failed: %v", c.year, c.month, err)
		}
		if got != c.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", c.year, c.month, got, c.want)
		}
	}

	if _, err := DaysInMonth(1999, 1); err == nil {
		t.Error("expected out-of-range error for year 1999")
	}
	if _, err := DaysInMonth(2081, 13); err == nil {
		t.Error("expected out-of-range error for month 13")
	}
}

func TestFailsClosedOnBadInput(t *testing.T) {
	bad := []string{"", "not-a-date", "2081/01/01", "2081-13-01", "2081-01-32", "1999-01-01", "2091-01-01", "2081-1-1"}
	for _, s := range bad {
		if got := AddDays(s, 1); got != "" {
			t.Errorf("AddDays(%q, 1) = %q, want sentinel", s, got)
		}
		if got := DaysBetween(s, "2081-01-01"); got != 0 {
			t.Errorf("DaysBetween(%q, ...) = %d, want 0", s, got)
		}
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(0); got != "Baisakh" {
		t.Errorf("MonthName(0) = %q", got)
	}
	if got := MonthName(11); got != "Chaitra" {
		t.Errorf("MonthName(11) = %q", got)
	}
	if got := MonthName(12); got != "" {
		t.Errorf("MonthName(12) = %q, want empty", got)
	}
	if got := MonthName(-1); got != "" {
		t.Errorf("MonthName(-1) = %q, want empty", got)
	}
}

func TestWeekdayOf(t *testing.T) {
	// BS 2081-01-01 is AD 2024-04-13, a Saturday.
	wd, err := WeekdayOf(2081, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if wd != 6 {
		t.Errorf("WeekdayOf(2081,1,1) = %d, want 6 (Saturday)", wd)
	}

	// Consecutive days advance the weekday modulo 7.
	next, err := WeekdayOf(2081, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if next != (wd+1)%7 {
		t.Errorf("WeekdayOf(2081,1,2) = %d, want %d", next, (wd+1)%7)
	}
}

func TestTodayIsCanonical(t *testing.T) {
	today := Today()
	if today == "" {
		t.Fatal("Today returned sentinel")
	}
	if _, err := Parse(today); err != nil {
		t.Fatalf("Today returned non-canonical date %q: %v", today, err)
	}
}
