package target

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundroom/crm-api/internal/model"
)

func TestResolveRange_Month(t *testing.T) {
	from, to, err := ResolveRange("2026-02", "", "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", from.Format("2006-01-02"))
	assert.Equal(t, "2026-02-28", to.Format("2006-01-02"))
}

func TestResolveRange_LeapMonth(t *testing.T) {
	from, to, err := ResolveRange("2028-02", "", "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2028-02-01", from.Format("2006-01-02"))
	assert.Equal(t, "2028-02-29", to.Format("2006-01-02"))
}

func TestResolveRange_ExplicitDates(t *testing.T) {
	from, to, err := ResolveRange("", "2026-08-10", "2026-08-20", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2026-08-10", from.Format("2006-01-02"))
	assert.Equal(t, "2026-08-20", to.Format("2006-01-02"))
}

func TestResolveRange_MonthWinsOverDates(t *testing.T) {
	from, _, err := ResolveRange("2026-01", "2026-08-10", "2026-08-20", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", from.Format("2006-01-02"))
}

func TestResolveRange_DefaultsToCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	from, to, err := ResolveRange("", "", "", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", from.Format("2006-01-02"))
	assert.Equal(t, "2026-08-31", to.Format("2006-01-02"))
}

func TestResolveRange_Invalid(t *testing.T) {
	_, _, err := ResolveRange("August", "", "", time.Now())
	assert.Error(t, err)

	_, _, err = ResolveRange("", "2026-08-20", "2026-08-10", time.Now())
	assert.Error(t, err)

	_, _, err = ResolveRange("", "20/08/2026", "2026-08-21", time.Now())
	assert.Error(t, err)
}

func TestCalendar_InclusiveWithWeekdays(t *testing.T) {
	from := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	days := Calendar(from, to)
	require.Len(t, days, 3)
	assert.Equal(t, "2026-08-29", days[0].Date)
	assert.Equal(t, "Saturday", days[0].Day)
	assert.Equal(t, "Monday", days[2].Day)
	assert.Zero(t, days[0].C1Target)
}

func TestMerge_OverlaysStoredTargets(t *testing.T) {
	from := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)

	token := "focus week"
	stored := []model.DailyTarget{
		{TargetDate: "2026-08-02", C1Target: 5, SubscriptionTarget: 1, Token: &token},
	}

	days := Merge(Calendar(from, to), stored)
	require.Len(t, days, 3)

	assert.Zero(t, days[0].C1Target)
	assert.Equal(t, 5, days[1].C1Target)
	assert.Equal(t, 1, days[1].SubscriptionTarget)
	assert.Equal(t, &token, days[1].Token)
	assert.Zero(t, days[2].C1Target)
}

func TestSum(t *testing.T) {
	days := []Day{
		{C1Target: 5, C2Target: 2},
		{C1Target: 3, SubscriptionTarget: 1},
	}
	totals := Sum(days)
	assert.Equal(t, 8, totals.C1Target)
	assert.Equal(t, 2, totals.C2Target)
	assert.Equal(t, 1, totals.SubscriptionTarget)
}
