package model

import (
	"fmt"
	"time"
)

// Goal is the user's weight goal.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// ParseGoal validates a goal string.
func ParseGoal(s string) (Goal, error) {
	switch Goal(s) {
	case GoalLose, GoalMaintain, GoalGain:
		return Goal(s), nil
	}
	return "", &ValidationError{Field: "goal", Reason: fmt.Sprintf("must be lose, maintain, or gain, got %q", s)}
}

// UserProfile is one profile document per user.
type UserProfile struct {
	UID            string    `json:"uid"`
	Goal           Goal      `json:"goal"`
	TargetCalories int       `json:"targetCalories"`
	Weight         float64   `json:"weight"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FoodItem is a single logged food within a DailyLog. The server assigns
// Timestamp at insertion; its epoch-ms value is the item's identity key for
// deletion within its day.
type FoodItem struct {
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	Protein   int       `json:"protein"`
	Carbs     int       `json:"carbs"`
	Fat       int       `json:"fat"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// DailyLog holds all food logged by one user on one calendar day.
// Date is a local-timezone YYYY-MM-DD string; at most one log exists per
// (uid, date). An absent log and an empty one both mean zero intake.
type DailyLog struct {
	UID   string     `json:"uid"`
	Date  string     `json:"date"`
	Items []FoodItem `json:"items"`
}

// DayTotals is the reduction of one day's items. Derived, never persisted.
type DayTotals struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
	Carbs    int    `json:"carbs"`
	Fat      int    `json:"fat"`
}

// WeeklyAnalytics is the aggregate over a trailing window ending at the
// reference date. WeeklyData is ordered oldest to newest.
type WeeklyAnalytics struct {
	WeeklyData     []DayTotals `json:"weeklyData"`
	WeeklyAverage  int         `json:"weeklyAverage"`
	TotalCalories  int         `json:"totalCalories"`
	AverageProtein int         `json:"averageProtein"`
	AverageCarbs   int         `json:"averageCarbs"`
	AverageFat     int         `json:"averageFat"`
	StreakDays     int         `json:"streakDays"`
}

// Reminder is a user-defined repeating reminder. Frequency is in minutes.
type Reminder struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid"`
	Label     string    `json:"label"`
	Frequency int       `json:"frequency"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}

// TimeOfDay is a wall-clock time with the date component ignored.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// MinutesSinceMidnight flattens the time for window comparisons.
func (t TimeOfDay) MinutesSinceMidnight() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, &ValidationError{Field: "time", Reason: fmt.Sprintf("invalid %q (expected HH:MM)", s)}
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// SleepWindow is the caller-supplied do-not-disturb window. Wake and Sleep
// are wall-clock times; the window may cross midnight.
type SleepWindow struct {
	Wake  TimeOfDay
	Sleep TimeOfDay
}
