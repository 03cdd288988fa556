package caltrack

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"caltrack/internal/apiclient"
)

var reminderCmd = &cobra.Command{
	Use:   "reminder",
	Short: "Manage repeating logging reminders",
}

var (
	reminderLabel string
	reminderEvery int
)

var reminderAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a reminder",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reminderEvery < 1 {
			return fmt.Errorf("--every must be at least 1 minute")
		}
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			rem, err := client.CreateReminder(ctx, uid, reminderLabel, reminderEvery)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added reminder %s: %q every %d min\n", rem.ID, rem.Label, rem.Frequency)
			return nil
		})
	},
}

var reminderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			reminders, err := client.Reminders(ctx, uid)
			if err != nil {
				return err
			}
			if len(reminders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reminders")
				return nil
			}
			for _, rem := range reminders {
				state := "enabled"
				if !rem.Enabled {
					state = "disabled"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %q every %d min  [%s]\n", rem.ID, rem.Label, rem.Frequency, state)
			}
			return nil
		})
	},
}

var reminderUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a reminder's label or frequency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var updates apiclient.ReminderUpdate
		if cmd.Flags().Changed("label") {
			updates.Label = &reminderLabel
		}
		if cmd.Flags().Changed("every") {
			if reminderEvery < 1 {
				return fmt.Errorf("--every must be at least 1 minute")
			}
			updates.Frequency = &reminderEvery
		}
		if updates.Label == nil && updates.Frequency == nil {
			return fmt.Errorf("nothing to update: pass --label or --every")
		}
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			rem, err := client.UpdateReminder(ctx, args[0], updates)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated reminder %s: %q every %d min\n", rem.ID, rem.Label, rem.Frequency)
			return nil
		})
	},
}

func setEnabledCmd(use, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
				value := enabled
				rem, err := client.UpdateReminder(ctx, args[0], apiclient.ReminderUpdate{Enabled: &value})
				if err != nil {
					return err
				}
				state := "disabled"
				if rem.Enabled {
					state = "enabled"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reminder %s is now %s\n", rem.ID, state)
				return nil
			})
		},
	}
}

var reminderDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			if err := client.DeleteReminder(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted reminder %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reminderCmd)
	reminderCmd.AddCommand(
		reminderAddCmd,
		reminderListCmd,
		reminderUpdateCmd,
		setEnabledCmd("enable", "Enable a reminder", true),
		setEnabledCmd("disable", "Disable a reminder", false),
		reminderDeleteCmd,
	)

	reminderAddCmd.Flags().StringVar(&reminderLabel, "label", "", "What the reminder says")
	reminderAddCmd.Flags().IntVar(&reminderEvery, "every", 0, "Repeat interval in minutes")
	_ = reminderAddCmd.MarkFlagRequired("label")
	_ = reminderAddCmd.MarkFlagRequired("every")

	reminderUpdateCmd.Flags().StringVar(&reminderLabel, "label", "", "New label")
	reminderUpdateCmd.Flags().IntVar(&reminderEvery, "every", 0, "New interval in minutes")
}
