package caltrack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"caltrack/internal/analytics"
	"caltrack/internal/apiclient"
	"caltrack/internal/model"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Weekly and monthly intake analytics",
}

var (
	analyticsDate string
	analyticsJSON bool
)

var analyticsWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Trailing 7-day analytics with streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		end, err := parseLocalDateOrToday(analyticsDate)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			result, err := analytics.ComputeWeekly(ctx, client, uid, end)
			if err != nil {
				// An unreachable backend degrades to an all-zero week
				// instead of failing the command.
				if errors.Is(err, model.ErrStoreUnavailable) {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: backend unreachable, showing empty week")
					result = analytics.ZeroWeek(end)
				} else {
					return err
				}
			}
			return printAnalytics(cmd, result, end)
		})
	},
}

var analyticsMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Trailing 30-day analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		end, err := parseLocalDateOrToday(analyticsDate)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			result, err := analytics.ComputeMonthly(ctx, client, uid, end)
			if err != nil {
				return err
			}
			return printAnalytics(cmd, result, end)
		})
	},
}

func printAnalytics(cmd *cobra.Command, result model.WeeklyAnalytics, end time.Time) error {
	if analyticsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Window: %d days ending %s\n", len(result.WeeklyData), end.Format("2006-01-02"))
	for _, day := range result.WeeklyData {
		marker := " "
		if day.Calories > 0 {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s  %d kcal  P %dg C %dg F %dg\n",
			marker, day.Date, day.Calories, day.Protein, day.Carbs, day.Fat)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Total: %d kcal\n", result.TotalCalories)
	fmt.Fprintf(cmd.OutOrStdout(), "Average: %d kcal/day\n", result.WeeklyAverage)
	fmt.Fprintf(cmd.OutOrStdout(), "Macros avg: P %dg | C %dg | F %dg\n", result.AverageProtein, result.AverageCarbs, result.AverageFat)
	fmt.Fprintf(cmd.OutOrStdout(), "Streak: %d day(s)\n", result.StreakDays)
	return nil
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.AddCommand(analyticsWeekCmd, analyticsMonthCmd)
	analyticsCmd.PersistentFlags().StringVar(&analyticsDate, "date", "", "Window end date YYYY-MM-DD (default today)")
	analyticsCmd.PersistentFlags().BoolVar(&analyticsJSON, "json", false, "Emit JSON instead of text")
}
