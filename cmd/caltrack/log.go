package caltrack

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"caltrack/internal/apiclient"
	"caltrack/internal/model"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Add and remove food entries",
}

var (
	logDate     string
	logName     string
	logCalories int
	logProtein  int
	logCarbs    int
	logFat      int
	logQuantity int
)

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food item",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseLocalDateOrToday(logDate)
		if err != nil {
			return err
		}
		if logCalories < 0 || logProtein < 0 || logCarbs < 0 || logFat < 0 {
			return fmt.Errorf("nutrient values must not be negative")
		}
		if logQuantity < 1 {
			return fmt.Errorf("--quantity must be > 0")
		}
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			date := day.Format("2006-01-02")
			err := client.LogFood(ctx, uid, date, model.FoodItem{
				Name:     logName,
				Calories: logCalories,
				Protein:  logProtein,
				Carbs:    logCarbs,
				Fat:      logFat,
				Quantity: logQuantity,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%d kcal) on %s\n", logName, logCalories, date)
			return nil
		})
	},
}

var logDeleteTimestamp int64

var logDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a food entry by its timestamp",
	Long:  "Deletes the entry whose timestamp (epoch milliseconds, shown by `caltrack today`) matches exactly.",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseLocalDateOrToday(logDate)
		if err != nil {
			return err
		}
		if logDeleteTimestamp <= 0 {
			return fmt.Errorf("--timestamp must be > 0")
		}
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			date := day.Format("2006-01-02")
			if err := client.DeleteFood(ctx, uid, date, logDeleteTimestamp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d from %s\n", logDeleteTimestamp, date)
			return nil
		})
	},
}

var logShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one day's entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseLocalDateOrToday(logDate)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			return printDay(cmd, client, uid, day)
		})
	},
}

func printDay(cmd *cobra.Command, client *apiclient.Client, uid string, day time.Time) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	date := day.Format("2006-01-02")
	log, err := client.DailyLog(ctx, uid, date)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", date)
	if len(log.Items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries")
		return nil
	}
	var totalCalories, totalProtein, totalCarbs, totalFat int
	for _, item := range log.Items {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s x%d  %d kcal  P %dg C %dg F %dg  (ts %d)\n",
			item.Timestamp.Local().Format("15:04"), item.Name, item.Quantity,
			item.Calories, item.Protein, item.Carbs, item.Fat, item.Timestamp.UnixMilli())
		totalCalories += item.Calories
		totalProtein += item.Protein
		totalCarbs += item.Carbs
		totalFat += item.Fat
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Total: %d kcal | P %dg C %dg F %dg\n", totalCalories, totalProtein, totalCarbs, totalFat)
	return nil
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd, logDeleteCmd, logShowCmd)

	logAddCmd.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")
	logAddCmd.Flags().StringVar(&logName, "name", "", "Food name")
	logAddCmd.Flags().IntVar(&logCalories, "calories", 0, "Calories")
	logAddCmd.Flags().IntVar(&logProtein, "protein", 0, "Protein grams")
	logAddCmd.Flags().IntVar(&logCarbs, "carbs", 0, "Carb grams")
	logAddCmd.Flags().IntVar(&logFat, "fat", 0, "Fat grams")
	logAddCmd.Flags().IntVar(&logQuantity, "quantity", 1, "Quantity")
	_ = logAddCmd.MarkFlagRequired("name")
	_ = logAddCmd.MarkFlagRequired("calories")

	logDeleteCmd.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")
	logDeleteCmd.Flags().Int64Var(&logDeleteTimestamp, "timestamp", 0, "Entry timestamp in epoch milliseconds")
	_ = logDeleteCmd.MarkFlagRequired("timestamp")

	logShowCmd.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")
}
