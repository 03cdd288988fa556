package caltrack

import (
	"context"
	"fmt"
	"strings"
	"time"

	"caltrack/internal/apiclient"
	"caltrack/internal/session"
)

func withClient(run func(ctx context.Context, client *apiclient.Client, uid string) error) error {
	uid, err := session.UID(uidFlag)
	if err != nil {
		return err
	}
	return run(context.Background(), apiclient.New(session.APIURL(apiURL)), uid)
}

func parseLocalDateOrToday(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}
