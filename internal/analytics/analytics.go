// Package analytics reduces daily food logs into weekly and monthly
// nutrition aggregates.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"caltrack/internal/model"
)

const (
	WeeklyWindowDays  = 7
	MonthlyWindowDays = 30
)

// LogSource is the read contract the aggregator needs from the food-log
// store: one bulk fetch per computation.
type LogSource interface {
	FetchRange(ctx context.Context, uid string, dates []string) ([]model.DailyLog, error)
}

// DateRange returns the trailing calendar-day strings ending at end, oldest
// first. Days are stepped one at a time in local time rather than by
// subtracting a UTC offset, so the range stays aligned across DST changes.
func DateRange(end time.Time, days int) []string {
	dates := make([]string, days)
	day := beginningOfDay(end)
	for i := days - 1; i >= 0; i-- {
		dates[i] = day.Format("2006-01-02")
		day = day.AddDate(0, 0, -1)
	}
	return dates
}

// MergeLogs aligns a fetched batch with the requested dates, substituting an
// empty log for any date the store did not return. Partial misses never
// fail; order follows dates.
func MergeLogs(uid string, dates []string, logs []model.DailyLog) []model.DailyLog {
	byDate := make(map[string]model.DailyLog, len(logs))
	for _, log := range logs {
		byDate[log.Date] = log
	}
	merged := make([]model.DailyLog, len(dates))
	for i, date := range dates {
		if log, ok := byDate[date]; ok {
			merged[i] = log
			continue
		}
		merged[i] = model.DailyLog{UID: uid, Date: date, Items: []model.FoodItem{}}
	}
	return merged
}

// ReduceDay sums a log's items into per-day totals. Negative fields read as
// zero so a corrupt item can never drive a total below zero.
func ReduceDay(log model.DailyLog) model.DayTotals {
	totals := model.DayTotals{Date: log.Date}
	for _, item := range log.Items {
		totals.Calories += clampNonNegative(item.Calories)
		totals.Protein += clampNonNegative(item.Protein)
		totals.Carbs += clampNonNegative(item.Carbs)
		totals.Fat += clampNonNegative(item.Fat)
	}
	return totals
}

// ComputeWeekly aggregates the 7 days ending at end. On a fetch failure it
// returns model.ErrStoreUnavailable; callers show ZeroWeek instead of
// propagating.
//
// The calorie average always divides by 7 so a sparse week reads low rather
// than inflated. Macro averages divide by the number of days with calories
// logged, floored at 1.
func ComputeWeekly(ctx context.Context, src LogSource, uid string, end time.Time) (model.WeeklyAnalytics, error) {
	return compute(ctx, src, uid, end, WeeklyWindowDays, false)
}

// ComputeMonthly aggregates the trailing 30 days. Unlike ComputeWeekly its
// calorie average divides by days with data, matching the long-standing
// monthly report behavior.
func ComputeMonthly(ctx context.Context, src LogSource, uid string, end time.Time) (model.WeeklyAnalytics, error) {
	return compute(ctx, src, uid, end, MonthlyWindowDays, true)
}

func compute(ctx context.Context, src LogSource, uid string, end time.Time, days int, averageOverLoggedDays bool) (model.WeeklyAnalytics, error) {
	dates := DateRange(end, days)

	logs, err := src.FetchRange(ctx, uid, dates)
	if err != nil {
		return model.WeeklyAnalytics{}, fmt.Errorf("fetch logs for %s: %w", uid, err)
	}
	merged := MergeLogs(uid, dates, logs)

	daily := make([]model.DayTotals, len(merged))
	for i, log := range merged {
		daily[i] = ReduceDay(log)
	}

	var totalCalories, totalProtein, totalCarbs, totalFat int
	daysWithData := 0
	for _, d := range daily {
		totalCalories += d.Calories
		totalProtein += d.Protein
		totalCarbs += d.Carbs
		totalFat += d.Fat
		if d.Calories > 0 {
			daysWithData++
		}
	}

	// Floor the macro divisor at 1: an unlogged window reports zeros, not
	// a division fault.
	macroDivisor := daysWithData
	if macroDivisor == 0 {
		macroDivisor = 1
	}
	calorieDivisor := days
	if averageOverLoggedDays {
		calorieDivisor = macroDivisor
	}

	return model.WeeklyAnalytics{
		WeeklyData:     daily,
		WeeklyAverage:  roundDiv(totalCalories, calorieDivisor),
		TotalCalories:  totalCalories,
		AverageProtein: roundDiv(totalProtein, macroDivisor),
		AverageCarbs:   roundDiv(totalCarbs, macroDivisor),
		AverageFat:     roundDiv(totalFat, macroDivisor),
		StreakDays:     streak(daily),
	}, nil
}

// streak counts consecutive logged days scanning backward from the most
// recent day. A zero-calorie reference day yields 0: the streak is anchored
// to "still going as of today".
func streak(daily []model.DayTotals) int {
	count := 0
	for i := len(daily) - 1; i >= 0; i-- {
		if daily[i].Calories == 0 {
			break
		}
		count++
	}
	return count
}

// ZeroWeek is the degraded 7-day result substituted when the store is
// unreachable.
func ZeroWeek(end time.Time) model.WeeklyAnalytics {
	dates := DateRange(end, WeeklyWindowDays)
	daily := make([]model.DayTotals, len(dates))
	for i, date := range dates {
		daily[i] = model.DayTotals{Date: date}
	}
	return model.WeeklyAnalytics{WeeklyData: daily}
}

func roundDiv(sum, divisor int) int {
	return int(math.Round(float64(sum) / float64(divisor)))
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func beginningOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
