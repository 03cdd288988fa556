package caltrack

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"caltrack/internal/analytics"
	"caltrack/internal/apiclient"
	"caltrack/internal/model"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake and target progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseLocalDateOrToday(todayDate)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			date := day.Format("2006-01-02")
			log, err := client.DailyLog(ctx, uid, date)
			if err != nil {
				return err
			}
			totals := analytics.ReduceDay(log)

			fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", date)
			fmt.Fprintf(cmd.OutOrStdout(), "Intake: %d kcal\n", totals.Calories)
			fmt.Fprintf(cmd.OutOrStdout(), "Macros: P %dg | C %dg | F %dg\n", totals.Protein, totals.Carbs, totals.Fat)
			for _, item := range log.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s x%d  %d kcal  (ts %d)\n",
					item.Timestamp.Local().Format("15:04"), item.Name, item.Quantity,
					item.Calories, item.Timestamp.UnixMilli())
			}

			profile, err := client.Profile(ctx, uid)
			if err != nil {
				if errors.Is(err, model.ErrNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), "Target: no profile (run `caltrack profile create`)")
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Target: %d kcal (%s)\n", profile.TargetCalories, profile.Goal)
			fmt.Fprintf(cmd.OutOrStdout(), "Remaining: %d kcal\n", profile.TargetCalories-totals.Calories)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
