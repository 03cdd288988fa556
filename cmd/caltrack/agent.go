package caltrack

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"caltrack/internal/apiclient"
	"caltrack/internal/app"
	"caltrack/internal/model"
	"caltrack/internal/platform/logger"
	"caltrack/internal/reminder"
)

var (
	agentWake         string
	agentSleep        string
	agentRespectSleep bool
	agentResyncSpec   string
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run the reminder agent in the foreground",
	Long:  "Arms desktop notifications for every enabled reminder, re-arms each one after it fires, and periodically re-syncs the reminder set from the backend. Fires that would land inside the sleep window are deferred to wake time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		win, err := parseSleepWindow(agentWake, agentSleep)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, client *apiclient.Client, uid string) error {
			statePath, err := app.PermissionStatePath()
			if err != nil {
				return err
			}
			if err := app.EnsureDir(statePath); err != nil {
				return err
			}

			log := logger.New("caltrack-agent", os.Getenv("CALTRACK_LOG_LEVEL"))
			gate := &reminder.PromptGate{StatePath: statePath, In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}

			agent := &reminderAgent{
				client:       client,
				uid:          uid,
				log:          log,
				respectSleep: agentRespectSleep,
				win:          win,
				known:        make(map[string]model.Reminder),
			}
			agent.scheduler = reminder.NewScheduler(reminder.NewTimerSink(agent.onFire), gate, log)
			return agent.run(ctx, cmd)
		})
	},
}

type reminderAgent struct {
	client       *apiclient.Client
	uid          string
	log          zerolog.Logger
	scheduler    *reminder.Scheduler
	respectSleep bool
	win          *model.SleepWindow

	mu    sync.Mutex
	known map[string]model.Reminder
}

func (a *reminderAgent) run(ctx context.Context, cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	armed, err := a.sync(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Agent running: %d reminder(s) armed\n", armed)

	c := cron.New()
	if _, err := c.AddFunc(agentResyncSpec, func() {
		if _, err := a.sync(ctx); err != nil {
			a.log.Warn().Err(err).Msg("reminder re-sync failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid --resync schedule: %w", err)
	}
	c.Start()

	<-ctx.Done()
	cronCtx := c.Stop()
	<-cronCtx.Done()
	return a.scheduler.CancelAll(context.Background())
}

// sync fetches the reminder set and re-arms only reminders that are new or
// changed, so an untouched reminder's pending timer keeps its remaining
// delay. Removed reminders are cancelled.
func (a *reminderAgent) sync(ctx context.Context) (int, error) {
	reminders, err := a.client.Reminders(ctx, a.uid)
	if err != nil {
		return 0, err
	}

	a.mu.Lock()
	fresh := make(map[string]model.Reminder, len(reminders))
	var toSchedule []model.Reminder
	var toCancel []string
	for _, rem := range reminders {
		fresh[rem.ID] = rem
		prev, seen := a.known[rem.ID]
		if seen && prev.Label == rem.Label && prev.Frequency == rem.Frequency && prev.Enabled == rem.Enabled {
			continue
		}
		if rem.Enabled {
			toSchedule = append(toSchedule, rem)
		} else {
			toCancel = append(toCancel, rem.ID)
		}
	}
	for id := range a.known {
		if _, ok := fresh[id]; !ok {
			toCancel = append(toCancel, id)
		}
	}
	a.known = fresh
	a.mu.Unlock()

	for _, id := range toCancel {
		if err := a.scheduler.Cancel(ctx, id); err != nil {
			a.log.Warn().Err(err).Str("reminder_id", id).Msg("cancel removed reminder")
		}
	}
	return a.scheduler.RescheduleAll(ctx, toSchedule, a.respectSleep, a.win), nil
}

// onFire delivers the notification and re-arms the reminder for its next
// cycle.
func (a *reminderAgent) onFire(n reminder.Notification) {
	notify(n.Title, n.Body)

	a.mu.Lock()
	rem, ok := a.known[n.ReminderID]
	a.mu.Unlock()
	if !ok || !rem.Enabled {
		return
	}
	if _, err := a.scheduler.ScheduleRepeating(context.Background(), rem, a.respectSleep, a.win); err != nil {
		a.log.Warn().Err(err).Str("reminder_id", rem.ID).Msg("re-arm after fire failed")
	}
}

// notify shells out to notify-send when present, else prints to stdout.
func notify(title, body string) {
	if path, err := exec.LookPath("notify-send"); err == nil {
		_ = exec.Command(path, title, body).Run()
		return
	}
	fmt.Printf("[%s] %s\n", title, body)
}

func parseSleepWindow(wake, sleep string) (*model.SleepWindow, error) {
	if wake == "" && sleep == "" {
		return nil, nil
	}
	if wake == "" || sleep == "" {
		return nil, fmt.Errorf("--wake and --sleep must be set together")
	}
	wakeAt, err := model.ParseTimeOfDay(wake)
	if err != nil {
		return nil, err
	}
	sleepAt, err := model.ParseTimeOfDay(sleep)
	if err != nil {
		return nil, err
	}
	return &model.SleepWindow{Wake: wakeAt, Sleep: sleepAt}, nil
}

func init() {
	rootCmd.AddCommand(agentCmd)
	agentCmd.Flags().StringVar(&agentWake, "wake", "", "Wake time HH:MM")
	agentCmd.Flags().StringVar(&agentSleep, "sleep", "", "Sleep time HH:MM")
	agentCmd.Flags().BoolVar(&agentRespectSleep, "respect-sleep", true, "Defer fires that land inside the sleep window")
	agentCmd.Flags().StringVar(&agentResyncSpec, "resync", "@every 5m", "Cron spec for re-syncing reminders from the backend")
}
