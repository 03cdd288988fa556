package tests

import (
	"bytes"
	"net/http/httptest"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"caltrack/internal/server"
	"caltrack/internal/storage/sqlite"
)

func buildCaltrackBinary(t *testing.T) string {
	t.Helper()
	repoRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}
	binPath := filepath.Join(t.TempDir(), "caltrack")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build caltrack binary: %v\n%s", err, string(out))
	}
	return binPath
}

func startBackend(t *testing.T) string {
	t.Helper()
	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "caltrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	srv := httptest.NewServer(server.New(store, zerolog.Nop()).Router())
	t.Cleanup(func() {
		srv.Close()
		store.Close()
	})
	return srv.URL
}

func runCaltrack(t *testing.T, binPath, apiURL string, args ...string) (string, string, int) {
	t.Helper()
	allArgs := append([]string{"--api-url", apiURL, "--uid", "e2e-user"}, args...)
	cmd := exec.Command(binPath, allArgs...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("run caltrack command: %v", err)
	}
	return stdout.String(), stderr.String(), exitErr.ExitCode()
}

func TestCLIProfileLifecycle(t *testing.T) {
	binPath := buildCaltrackBinary(t)
	apiURL := startBackend(t)

	out, stderr, exit := runCaltrack(t, binPath, apiURL, "profile", "create", "--goal", "lose", "--target", "1800", "--weight", "82.5")
	if exit != 0 {
		t.Fatalf("profile create failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(out, "Profile created") {
		t.Fatalf("unexpected output: %s", out)
	}

	_, stderr, exit = runCaltrack(t, binPath, apiURL, "profile", "create", "--goal", "gain", "--target", "2500", "--weight", "70")
	if exit == 0 {
		t.Fatalf("second profile create should fail, stderr=%s", stderr)
	}

	out, _, exit = runCaltrack(t, binPath, apiURL, "profile", "show")
	if exit != 0 {
		t.Fatalf("profile show failed")
	}
	if !strings.Contains(out, "Goal: lose") || !strings.Contains(out, "Target: 1800") {
		t.Fatalf("unexpected profile output: %s", out)
	}
}

func TestCLILogAndToday(t *testing.T) {
	binPath := buildCaltrackBinary(t)
	apiURL := startBackend(t)

	_, stderr, exit := runCaltrack(t, binPath, apiURL, "log", "add", "--name", "oatmeal", "--calories", "320", "--protein", "11", "--date", "2026-08-28")
	if exit != 0 {
		t.Fatalf("log add failed: exit=%d stderr=%s", exit, stderr)
	}

	out, _, exit := runCaltrack(t, binPath, apiURL, "today", "--date", "2026-08-28")
	if exit != 0 {
		t.Fatalf("today failed")
	}
	if !strings.Contains(out, "Intake: 320 kcal") {
		t.Fatalf("unexpected today output: %s", out)
	}
	if !strings.Contains(out, "oatmeal") {
		t.Fatalf("expected logged item in output: %s", out)
	}
}

func TestCLIRejectsNegativeCalories(t *testing.T) {
	binPath := buildCaltrackBinary(t)
	apiURL := startBackend(t)

	_, stderr, exit := runCaltrack(t, binPath, apiURL, "log", "add", "--name", "ghost", "--calories", "-5")
	if exit == 0 {
		t.Fatalf("negative calories should be rejected")
	}
	if !strings.Contains(stderr, "negative") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestCLIAnalyticsWeek(t *testing.T) {
	binPath := buildCaltrackBinary(t)
	apiURL := startBackend(t)

	for _, date := range []string{"2026-08-27", "2026-08-28"} {
		_, stderr, exit := runCaltrack(t, binPath, apiURL, "log", "add", "--name", "meal", "--calories", "700", "--date", date)
		if exit != 0 {
			t.Fatalf("log add failed: %s", stderr)
		}
	}

	out, _, exit := runCaltrack(t, binPath, apiURL, "analytics", "week", "--date", "2026-08-28")
	if exit != 0 {
		t.Fatalf("analytics week failed")
	}
	if !strings.Contains(out, "Total: 1400 kcal") {
		t.Fatalf("unexpected total: %s", out)
	}
	// 1400 over a fixed 7-day divisor.
	if !strings.Contains(out, "Average: 200 kcal/day") {
		t.Fatalf("unexpected average: %s", out)
	}
	if !strings.Contains(out, "Streak: 2 day(s)") {
		t.Fatalf("unexpected streak: %s", out)
	}
}

func TestCLIAnalyticsWeekDegradesWhenBackendDown(t *testing.T) {
	binPath := buildCaltrackBinary(t)

	out, stderr, exit := runCaltrack(t, binPath, "http://127.0.0.1:1", "analytics", "week", "--date", "2026-08-28")
	if exit != 0 {
		t.Fatalf("analytics week should degrade, not fail: stderr=%s", stderr)
	}
	if !strings.Contains(stderr, "backend unreachable") {
		t.Fatalf("expected degradation warning, stderr=%s", stderr)
	}
	if !strings.Contains(out, "Total: 0 kcal") || !strings.Contains(out, "Streak: 0 day(s)") {
		t.Fatalf("expected zeroed week: %s", out)
	}
}

func TestCLIReminderLifecycle(t *testing.T) {
	binPath := buildCaltrackBinary(t)
	apiURL := startBackend(t)

	out, stderr, exit := runCaltrack(t, binPath, apiURL, "reminder", "add", "--label", "log lunch", "--every", "180")
	if exit != 0 {
		t.Fatalf("reminder add failed: %s", stderr)
	}
	id := strings.Fields(strings.TrimPrefix(out, "Added reminder "))[0]

	_, _, exit = runCaltrack(t, binPath, apiURL, "reminder", "add", "--label", "too eager", "--every", "0")
	if exit == 0 {
		t.Fatalf("zero frequency should be rejected")
	}

	out, _, exit = runCaltrack(t, binPath, apiURL, "reminder", "list")
	if exit != 0 || !strings.Contains(out, "log lunch") {
		t.Fatalf("unexpected list output: %s", out)
	}

	out, _, exit = runCaltrack(t, binPath, apiURL, "reminder", "disable", id)
	if exit != 0 || !strings.Contains(out, "disabled") {
		t.Fatalf("disable failed: %s", out)
	}

	_, _, exit = runCaltrack(t, binPath, apiURL, "reminder", "delete", id)
	if exit != 0 {
		t.Fatalf("delete failed")
	}
	_, _, exit = runCaltrack(t, binPath, apiURL, "reminder", "delete", id)
	if exit == 0 {
		t.Fatalf("deleting a missing reminder should fail")
	}
}
