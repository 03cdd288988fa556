package caltrack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL  string
	uidFlag string
)

var rootCmd = &cobra.Command{
	Use:   "caltrack",
	Short: "caltrack logs food and tracks calories from your terminal",
	Long:  "caltrack is a calorie and macro diary backed by the caltrackd API, with weekly analytics, streaks, and repeating reminders.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the caltrackd API (default $CALTRACK_API_URL or http://localhost:3000)")
	rootCmd.PersistentFlags().StringVar(&uidFlag, "uid", "", "User id (default $CALTRACK_UID)")
}
