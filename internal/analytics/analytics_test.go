package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"caltrack/internal/model"
)

type fakeSource struct {
	logs []model.DailyLog
	err  error
}

func (f *fakeSource) FetchRange(_ context.Context, _ string, _ []string) ([]model.DailyLog, error) {
	return f.logs, f.err
}

func localDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return parsed
}

// weekOfCalories builds one log per day ending at end, oldest first. A zero
// calorie value produces a day with no items.
func weekOfCalories(end time.Time, calories []int) []model.DailyLog {
	dates := DateRange(end, len(calories))
	logs := make([]model.DailyLog, 0, len(calories))
	for i, date := range dates {
		items := []model.FoodItem{}
		if calories[i] > 0 {
			items = append(items, model.FoodItem{Name: "meal", Calories: calories[i], Protein: 10, Carbs: 20, Fat: 5, Quantity: 1})
		}
		logs = append(logs, model.DailyLog{UID: "u1", Date: date, Items: items})
	}
	return logs
}

func TestDateRangeEndsAtReferenceOldestFirst(t *testing.T) {
	t.Parallel()
	dates := DateRange(localDate(t, "2026-02-10"), 7)
	if len(dates) != 7 {
		t.Fatalf("expected 7 dates, got %d", len(dates))
	}
	if dates[0] != "2026-02-04" || dates[6] != "2026-02-10" {
		t.Fatalf("unexpected range %v", dates)
	}
}

func TestDateRangeCrossesDSTWithoutSkippingDays(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	// US DST starts 2026-03-08; a UTC-offset subtraction would repeat or
	// drop a calendar day here.
	end := time.Date(2026, 3, 11, 12, 0, 0, 0, loc)
	dates := DateRange(end, 7)
	want := []string{"2026-03-05", "2026-03-06", "2026-03-07", "2026-03-08", "2026-03-09", "2026-03-10", "2026-03-11"}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("date %d: expected %s, got %s (full range %v)", i, want[i], dates[i], dates)
		}
	}
}

func TestMergeLogsFillsGapsInRequestOrder(t *testing.T) {
	t.Parallel()
	dates := []string{"2026-02-01", "2026-02-02", "2026-02-03"}
	fetched := []model.DailyLog{
		{UID: "u1", Date: "2026-02-03", Items: []model.FoodItem{{Name: "toast", Calories: 150}}},
		{UID: "u1", Date: "2026-02-01", Items: []model.FoodItem{{Name: "soup", Calories: 300}}},
	}
	merged := MergeLogs("u1", dates, fetched)
	if len(merged) != 3 {
		t.Fatalf("expected 3 merged logs, got %d", len(merged))
	}
	if merged[0].Date != "2026-02-01" || len(merged[0].Items) != 1 {
		t.Fatalf("day 0 not aligned: %+v", merged[0])
	}
	if merged[1].Date != "2026-02-02" || len(merged[1].Items) != 0 {
		t.Fatalf("missing day should be empty, got %+v", merged[1])
	}
	if merged[2].Items[0].Name != "toast" {
		t.Fatalf("day 2 not aligned: %+v", merged[2])
	}
}

func TestReduceDayClampsNegativeFields(t *testing.T) {
	t.Parallel()
	totals := ReduceDay(model.DailyLog{Date: "2026-02-01", Items: []model.FoodItem{
		{Name: "oats", Calories: 350, Protein: 12, Carbs: 60, Fat: 6},
		{Name: "bad row", Calories: -200, Protein: -1, Carbs: -1, Fat: -1},
	}})
	if totals.Calories != 350 || totals.Protein != 12 || totals.Carbs != 60 || totals.Fat != 6 {
		t.Fatalf("negative fields must read as zero, got %+v", totals)
	}
}

func TestComputeWeeklyEmptyWeekIsAllZeros(t *testing.T) {
	t.Parallel()
	end := localDate(t, "2026-02-10")
	src := &fakeSource{logs: weekOfCalories(end, []int{0, 0, 0, 0, 0, 0, 0})}
	got, err := ComputeWeekly(context.Background(), src, "u1", end)
	if err != nil {
		t.Fatalf("compute weekly: %v", err)
	}
	if got.WeeklyAverage != 0 || got.TotalCalories != 0 || got.StreakDays != 0 {
		t.Fatalf("expected all-zero aggregate, got %+v", got)
	}
	if got.AverageProtein != 0 || got.AverageCarbs != 0 || got.AverageFat != 0 {
		t.Fatalf("macro averages must be zero without division fault, got %+v", got)
	}
}

func TestComputeWeeklyOnlyTodayLogged(t *testing.T) {
	t.Parallel()
	end := localDate(t, "2026-02-10")
	src := &fakeSource{logs: weekOfCalories(end, []int{0, 0, 0, 0, 0, 0, 1200})}
	got, err := ComputeWeekly(context.Background(), src, "u1", end)
	if err != nil {
		t.Fatalf("compute weekly: %v", err)
	}
	if got.StreakDays != 1 {
		t.Fatalf("expected streak 1, got %d", got.StreakDays)
	}
	// round(1200/7) = 171: the divisor stays 7 even for a sparse week.
	if got.WeeklyAverage != 171 {
		t.Fatalf("expected weekly average 171, got %d", got.WeeklyAverage)
	}
	if got.TotalCalories != 1200 {
		t.Fatalf("expected total 1200, got %d", got.TotalCalories)
	}
}

func TestComputeWeeklyStreakStopsAtFirstZeroDay(t *testing.T) {
	t.Parallel()
	end := localDate(t, "2026-02-10")
	src := &fakeSource{logs: weekOfCalories(end, []int{500, 600, 0, 700, 800, 0, 900})}
	got, err := ComputeWeekly(context.Background(), src, "u1", end)
	if err != nil {
		t.Fatalf("compute weekly: %v", err)
	}
	if got.StreakDays != 1 {
		t.Fatalf("expected streak 1, got %d", got.StreakDays)
	}
}

func TestComputeWeeklyStreakCountsTrailingRun(t *testing.T) {
	t.Parallel()
	end := localDate(t, "2026-02-10")
	src := &fakeSource{logs: weekOfCalories(end, []int{0, 500, 600, 700, 800, 900, 1000})}
	got, err := ComputeWeekly(context.Background(), src, "u1", end)
	if err != nil {
		t.Fatalf("compute weekly: %v", err)
	}
	if got.StreakDays != 6 {
		t.Fatalf("expected streak 6, got %d", got.StreakDays)
	}
}

func TestComputeWeeklyZeroTodayBreaksStreak(t *testing.T) {
	t.Parallel()
	end := localDate(t, "2026-02-10")
	src := &fakeSource{logs: weekOfCalories(end, []int{500, 600, 700, 800, 900, 1000, 0})}
	got, err := ComputeWeekly(context.Background(), src, "u1", end)
	if err != nil {
		t.Fatalf("compute weekly: %v", err)
	}
	if got.StreakDays != 0 {
		t.Fatalf("streak must not look back past an unlogged today, got %d", got.StreakDays)
	}
}

func TestComputeWeeklyMacroAveragesDivideByLoggedDays(t *testing.T) {
	t.Parallel()
	end := localDate(t, "2026-02-10")
	// Two logged days: protein 10 each -> average 10, not 20/7.
	src := &fakeSource{logs: weekOfCalories(end, []int{0, 0, 0, 0, 0, 800, 900})}
	got, err := ComputeWeekly(context.Background(), src, "u1", end)
	if err != nil {
		t.Fatalf("compute weekly: %v", err)
	}
	if got.AverageProtein != 10 || got.AverageCarbs != 20 || got.AverageFat != 5 {
		t.Fatalf("unexpected macro averages: %+v", got)
	}
}

func TestComputeWeeklyStoreFailureReturnsStoreUnavailable(t *testing.T) {
	t.Parallel()
	end := localDate(t, "2026-02-10")
	src := &fakeSource{err: model.ErrStoreUnavailable}
	_, err := ComputeWeekly(context.Background(), src, "u1", end)
	if !errors.Is(err, model.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestZeroWeekHasSevenZeroDays(t *testing.T) {
	t.Parallel()
	end := localDate(t, "2026-02-10")
	got := ZeroWeek(end)
	if len(got.WeeklyData) != 7 {
		t.Fatalf("expected 7 days, got %d", len(got.WeeklyData))
	}
	for _, d := range got.WeeklyData {
		if d.Calories != 0 {
			t.Fatalf("expected zero day, got %+v", d)
		}
	}
	if got.WeeklyData[6].Date != "2026-02-10" {
		t.Fatalf("expected window to end at reference date, got %s", got.WeeklyData[6].Date)
	}
}

func TestComputeMonthlyAveragesOverLoggedDays(t *testing.T) {
	t.Parallel()
	end := localDate(t, "2026-02-10")
	calories := make([]int, 30)
	calories[28] = 600
	calories[29] = 1000
	src := &fakeSource{logs: weekOfCalories(end, calories)}
	got, err := ComputeMonthly(context.Background(), src, "u1", end)
	if err != nil {
		t.Fatalf("compute monthly: %v", err)
	}
	if len(got.WeeklyData) != 30 {
		t.Fatalf("expected 30 days, got %d", len(got.WeeklyData))
	}
	// Monthly divides by days with data (2), not the window size.
	if got.WeeklyAverage != 800 {
		t.Fatalf("expected monthly average 800, got %d", got.WeeklyAverage)
	}
	if got.StreakDays != 2 {
		t.Fatalf("expected streak 2, got %d", got.StreakDays)
	}
}
