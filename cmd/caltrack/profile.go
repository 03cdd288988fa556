package caltrack

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"caltrack/internal/apiclient"
	"caltrack/internal/model"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create, view, and update your profile",
}

var (
	profileGoal   string
	profileTarget int
	profileWeight float64
)

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create your profile (one per user id)",
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, err := model.ParseGoal(profileGoal)
		if err != nil {
			return err
		}
		if profileTarget < 1 {
			return fmt.Errorf("--target must be > 0")
		}
		if profileWeight <= 0 {
			return fmt.Errorf("--weight must be > 0")
		}
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			err := client.CreateProfile(ctx, model.UserProfile{
				UID:            uid,
				Goal:           goal,
				TargetCalories: profileTarget,
				Weight:         profileWeight,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile created for %s: %s, %d kcal/day, %.1f kg\n", uid, goal, profileTarget, profileWeight)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			profile, err := client.Profile(ctx, uid)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User: %s\n", profile.UID)
			fmt.Fprintf(cmd.OutOrStdout(), "Goal: %s\n", profile.Goal)
			fmt.Fprintf(cmd.OutOrStdout(), "Target: %d kcal/day\n", profile.TargetCalories)
			fmt.Fprintf(cmd.OutOrStdout(), "Weight: %.1f kg\n", profile.Weight)
			fmt.Fprintf(cmd.OutOrStdout(), "Since: %s\n", profile.CreatedAt.Local().Format("2006-01-02"))
			return nil
		})
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update goal, target calories, or weight",
	RunE: func(cmd *cobra.Command, args []string) error {
		var updates apiclient.ProfileUpdate
		if cmd.Flags().Changed("goal") {
			goal, err := model.ParseGoal(profileGoal)
			if err != nil {
				return err
			}
			updates.Goal = &goal
		}
		if cmd.Flags().Changed("target") {
			if profileTarget < 1 {
				return fmt.Errorf("--target must be > 0")
			}
			updates.TargetCalories = &profileTarget
		}
		if cmd.Flags().Changed("weight") {
			if profileWeight <= 0 {
				return fmt.Errorf("--weight must be > 0")
			}
			updates.Weight = &profileWeight
		}
		if updates.Goal == nil && updates.TargetCalories == nil && updates.Weight == nil {
			return fmt.Errorf("nothing to update: pass --goal, --target, or --weight")
		}
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			if err := client.UpdateProfile(ctx, uid, updates); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileCreateCmd, profileShowCmd, profileUpdateCmd)

	for _, c := range []*cobra.Command{profileCreateCmd, profileUpdateCmd} {
		c.Flags().StringVar(&profileGoal, "goal", "", "Weight goal: lose, maintain, or gain")
		c.Flags().IntVar(&profileTarget, "target", 0, "Daily calorie target")
		c.Flags().Float64Var(&profileWeight, "weight", 0, "Body weight in kg")
	}
	_ = profileCreateCmd.MarkFlagRequired("goal")
	_ = profileCreateCmd.MarkFlagRequired("target")
	_ = profileCreateCmd.MarkFlagRequired("weight")
}
