package doctor

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whisperwriter/whisperwriter/internal/config"
)

func TestReportOKAndString(t *testing.T) {
	report := Report{Checks: []Check{
		{Name: "one", Pass: true, Message: "good"},
		{Name: "two", Pass: false, Message: "bad"},
	}}

	require.False(t, report.OK())
	text := report.String()
	require.Contains(t, text, "[OK] one: good")
	require.Contains(t, text, "[FAIL] two: bad")
}

func TestReportOKAllPassing(t *testing.T) {
	report := Report{Checks: []Check{{Name: "one", Pass: true}, {Name: "two", Pass: true}}}
	require.True(t, report.OK())
}

func TestCheckEnv(t *testing.T) {
	t.Setenv("TEST_DOCTOR_ENV", "wayland")

	check := checkEnv(
		"TEST_DOCTOR_ENV",
		func(v string) bool { return strings.EqualFold(v, "wayland") },
		"looks good",
		"unexpected",
	)

	require.True(t, check.Pass)
	require.Equal(t, "looks good", check.Message)
}

func TestCheckCommandEmpty(t *testing.T) {
	check := checkCommand(nil, "clipboard_cmd")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "command is empty")
}

func TestCheckBinaryFound(t *testing.T) {
	check := checkBinary("sh", "shell available")
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "shell available")
}

func TestCheckBinaryMissing(t *testing.T) {
	check := checkBinary("definitely-not-a-real-binary", "unused")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "binary not found")
}

func TestCheckCommandUsesBinaryFromPath(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "fake-bin")
	require.NoError(t, os.WriteFile(scriptPath, []byte("#!/usr/bin/env bash\nexit 0\n"), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))

	check := checkCommand([]string{"fake-bin", "--arg"}, "clipboard_cmd")
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "clipboard_cmd command is available")
}

func TestCheckAPIKeyMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Model.API.APIKey = ""

	check := checkAPIKey(cfg)
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "no API key")
}

func TestCheckAPIKeyPresent(t *testing.T) {
	cfg := config.Default()
	cfg.Model.API.APIKey = "sk-test"

	check := checkAPIKey(cfg)
	require.True(t, check.Pass)
}

func TestCheckAPIReachableSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Model.API.BaseURL = server.URL

	check := checkAPIReachable(cfg)
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "HTTP 405")
}

func TestCheckAPIReachableConnectionFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Model.API.BaseURL = "http://127.0.0.1:1"

	check := checkAPIReachable(cfg)
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "request failed")
}

func TestCheckAudioSelectionFailureWithInvalidPulseServer(t *testing.T) {
	t.Setenv("PULSE_SERVER", "unix:/tmp/definitely-missing-pulse-server")

	check := checkAudioSelection(config.Default())
	require.False(t, check.Pass)
	require.Contains(t, check.Name, "audio.device")
}

func TestRunIncludesPlayerctlCheckWhenMediaPauseEnabled(t *testing.T) {
	t.Setenv("PULSE_SERVER", "unix:/tmp/definitely-missing-pulse-server")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Recording.PauseMedia = true
	cfg.Model.API.BaseURL = server.URL

	report := Run(config.Loaded{Path: "/tmp/config.yaml", Config: cfg})
	require.NotEmpty(t, report.Checks)

	var sawPlayerctl bool
	for _, check := range report.Checks {
		if check.Name == "playerctl" {
			sawPlayerctl = true
		}
	}
	require.True(t, sawPlayerctl)
}

func TestRunSkipsPlayerctlCheckWhenMediaPauseDisabled(t *testing.T) {
	t.Setenv("PULSE_SERVER", "unix:/tmp/definitely-missing-pulse-server")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Recording.PauseMedia = false
	cfg.Model.API.BaseURL = server.URL

	report := Run(config.Loaded{Path: "/tmp/config.yaml", Config: cfg})

	for _, check := range report.Checks {
		require.NotEqual(t, "playerctl", check.Name)
	}
}

func TestRunIncludesTypeCommandCheckWhenConfigured(t *testing.T) {
	t.Setenv("PULSE_SERVER", "unix:/tmp/definitely-missing-pulse-server")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	binDir := t.TempDir()
	fakeType := filepath.Join(binDir, "fake-type")
	require.NoError(t, os.WriteFile(fakeType, []byte("#!/usr/bin/env sh\nexit 0\n"), 0o755))
	t.Setenv("PATH", binDir+":"+os.Getenv("PATH"))

	cfg := config.Default()
	cfg.Recording.PauseMedia = false
	cfg.Model.API.BaseURL = server.URL
	cfg.Output.TypeCmd = config.CommandConfig{Raw: "fake-type", Argv: []string{"fake-type"}}

	report := Run(config.Loaded{Path: "/tmp/config.yaml", Config: cfg})

	var sawTypeCmd bool
	for _, check := range report.Checks {
		if strings.Contains(check.Message, "type_cmd command is available") {
			sawTypeCmd = true
		}
	}
	require.True(t, sawTypeCmd)
}

func TestRunReportsConfigWarnings(t *testing.T) {
	t.Setenv("PULSE_SERVER", "unix:/tmp/definitely-missing-pulse-server")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Recording.PauseMedia = false
	cfg.Model.API.BaseURL = server.URL

	loaded := config.Loaded{
		Path:     "/tmp/config.yaml",
		Config:   cfg,
		Warnings: []config.Warning{{Message: "one"}, {Message: "two"}},
	}

	report := Run(loaded)
	require.NotEmpty(t, report.Checks)
	require.Equal(t, "config", report.Checks[0].Name)
	require.Contains(t, report.Checks[0].Message, "2 warning(s)")
}
