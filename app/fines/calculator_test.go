package fines

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestCalculateTable(t *testing.T) {
	due := date(2025, time.January, 10)
	longAgo := date(2024, time.December, 11)

	cases := []struct {
		name    string
		dueDate time.Time
		lastPay time.Time
		today   time.Time
		want    Result
	}{
		{
			name:    "already paid on due date",
			dueDate: due, lastPay: due, today: due.AddDate(0, 0, 40),
			want: Result{Fine: 0, DaysLate: 0, CycleDay: 0},
		},
		{
			name:    "already paid after due date",
			dueDate: due, lastPay: due.AddDate(0, 0, 5), today: due.AddDate(0, 0, 90),
			want: Result{Fine: 0, DaysLate: 0, CycleDay: 0},
		},
		{
			name:    "due date not reached",
			dueDate: due, lastPay: longAgo, today: due.AddDate(0, 0, -3),
			want: Result{Fine: 0, DaysLate: 0, CycleDay: 1},
		},
		{
			name:    "grace on the due date itself",
			dueDate: due, lastPay: longAgo, today: due,
			want: Result{Fine: 0, DaysLate: 0, CycleDay: 1},
		},
		{
			name:    "first overdue day",
			dueDate: due, lastPay: longAgo, today: due.AddDate(0, 0, 1),
			want: Result{Fine: 100, DaysLate: 1, CycleDay: 2},
		},
		{
			name:    "second overdue day doubles",
			dueDate: due, lastPay: longAgo, today: due.AddDate(0, 0, 2),
			want: Result{Fine: 200, DaysLate: 2, CycleDay: 3},
		},
		{
			name:    "dashboard scenario three days late",
			dueDate: due, lastPay: longAgo, today: date(2025, time.January, 13),
			want: Result{Fine: 400, DaysLate: 3, CycleDay: 4},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Calculate(tc.dueDate, tc.lastPay, tc.today)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculateIgnoresTimeOfDay(t *testing.T) {
	due := time.Date(2025, time.March, 5, 23, 59, 0, 0, time.Local)
	lastPay := time.Date(2025, time.February, 1, 8, 30, 0, 0, time.Local)
	today := time.Date(2025, time.March, 6, 0, 0, 1, 0, time.Local)

	got := Calculate(due, lastPay, today)
	assert.Equal(t, Result{Fine: 100, DaysLate: 1, CycleDay: 2}, got)
}

func TestCalculateDeterministic(t *testing.T) {
	due := date(2025, time.June, 1)
	lastPay := date(2025, time.April, 20)
	today := date(2025, time.June, 9)

	first := Calculate(due, lastPay, today)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Calculate(due, lastPay, today))
	}
}

func TestEscalationDoublesEveryDay(t *testing.T) {
	due := date(2025, time.January, 10)
	lastPay := date(2024, time.December, 11)

	prev := int64(0)
	for n := 1; n <= 30; n++ {
		got := Calculate(due, lastPay, due.AddDate(0, 0, n))
		require.Equal(t, n, got.DaysLate, "day %d", n)
		require.Equal(t, n+1, got.CycleDay, "day %d", n)
		require.Equal(t, BaseFine<<uint(n-1), got.Fine, "day %d", n)
		if n > 1 {
			require.Equal(t, prev*2, got.Fine, "day %d should double day %d", n, n-1)
		}
		prev = got.Fine
	}
}

func TestAlreadyPaidSuppressesAnyLateness(t *testing.T) {
	due := date(2025, time.January, 10)
	paid := date(2025, time.January, 12)

	for n := 0; n <= 365; n += 31 {
		got := Calculate(due, paid, due.AddDate(0, 0, n))
		assert.Zero(t, got.Fine)
		assert.Zero(t, got.DaysLate)
	}
}
