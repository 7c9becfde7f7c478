package e2e

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// cliPath locates a prebuilt mindful binary: $MINDFUL_BIN_DIR or ../../bin.
func cliPath(t *testing.T) string {
	binDir := os.Getenv("MINDFUL_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	path := filepath.Join(binDir, "mindful")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it with 'go build -o bin/mindful ./cmd/mindful'.", path)
	}
	return path
}

// isolatedEnv points HOME and the data file at tempDir.
func isolatedEnv(tempDir, dataFile string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "MINDFUL_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", tempDir),
		fmt.Sprintf("MINDFUL_CONFIG=%s", filepath.Join(tempDir, "mindful", dataFile)),
	)
}

func TestEndToEndWorkflow(t *testing.T) {
	for _, dataFile := range []string{"mindful.db", "mindful.json"} {
		t.Run(dataFile, func(t *testing.T) {
			cli := cliPath(t)
			env := isolatedEnv(t.TempDir(), dataFile)

			runCmd(t, cli, env, "init")
			runCmd(t, cli, env, "user", "add", "sam")

			out := runCmd(t, cli, env, "session", "20")
			if !strings.Contains(out, "First Steps") {
				t.Errorf("expected first badge to unlock, got:\n%s", out)
			}

			out = runCmd(t, cli, env, "badges", "--unlocked")
			if !strings.Contains(out, "1/12") {
				t.Errorf("expected 1/12 badges, got:\n%s", out)
			}

			out = runCmd(t, cli, env, "progress", "hundred-minutes")
			if !strings.Contains(out, "20%") {
				t.Errorf("expected 20%% progress, got:\n%s", out)
			}

			runCmd(t, cli, env, "settings", "--daily-affirmation=true", "--time=08:00")
			out = runCmd(t, cli, env, "remind", "--dry-run", "--now")
			if !strings.Contains(out, "[DryRun] Daily affirmation") {
				t.Errorf("expected affirmation in dry run, got:\n%s", out)
			}

			if _, err := runCmdErr(cli, env, "session", "0"); err == nil {
				t.Error("expected zero-minute session to fail")
			}
		})
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	out, err := runCmdErr(path, env, args...)
	if err != nil {
		t.Fatalf("mindful %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func runCmdErr(path string, env []string, args ...string) (string, error) {
	cmd := exec.Command(path, args...)
	cmd.Env = env
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.String(), err
}
