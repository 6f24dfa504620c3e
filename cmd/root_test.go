package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const firstStage = `{"name": "First", "radius": 1, "mines": [[1, 0]]}`

func stageDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"001.json": firstStage,
		"002.json": `{"shape": "ring", "outer": 2}`,
		"003.yaml": "radius: 2\nmines: [[0, 0]]\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--color=false", "--log-level=error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPlayUnlocksNextStage(t *testing.T) {
	stages := stageDir(t)
	save := filepath.Join(t.TempDir(), "save.yaml")
	common := []string{"--stage-dir", stages, "--save-path", save, "--progress-backend", "file"}

	if _, err := execute(t, "", append([]string{"play", "2"}, common...)...); err == nil {
		t.Fatalf("stage 2 should start locked")
	}

	out, err := execute(t, "r -1 1\nf 1 0\n", append([]string{"play", "1"}, common...)...)
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if !strings.Contains(out, "Cleared First with 0 mistakes") {
		t.Fatalf("output:\n%s", out)
	}
	if !strings.Contains(out, "Next stage: "+filepath.Join(stages, "002.json")) {
		t.Fatalf("next stage not offered:\n%s", out)
	}

	out, err = execute(t, "", append([]string{"stages"}, common...)...)
	if err != nil {
		t.Fatalf("stages failed: %v", err)
	}
	for _, want := range []string{"  1  open    First", "  2  open    Stage 002", "  3  locked  Stage 003"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stages output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "", append([]string{"progress", "--reset"}, common...)...)
	if err != nil || !strings.Contains(out, "Stages unlocked: 1 of") {
		t.Fatalf("progress --reset = %q, %v", out, err)
	}
	resetProgress = false
}

func TestSolve(t *testing.T) {
	stages := stageDir(t)

	out, err := execute(t, "", "solve", "3", "--stage-dir", stages, "--director", "constraint", "--seed", "3")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !strings.Contains(out, "Stage 003: cleared by constraint") {
		t.Fatalf("output:\n%s", out)
	}

	if _, err := execute(t, "", "solve", "3", "--director", "genius"); err == nil {
		t.Fatalf("unknown directors should be rejected")
	}
}

func TestProgressWithSQLite(t *testing.T) {
	save := filepath.Join(t.TempDir(), "save.yaml")
	common := []string{"--save-path", save, "--progress-backend", "sqlite", "--total-stages", "5"}

	out, err := execute(t, "", append([]string{"progress"}, common...)...)
	if err != nil || !strings.Contains(out, "Stages unlocked: 1 of 5") {
		t.Fatalf("progress = %q, %v", out, err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(save), "save.sqlite")); err != nil {
		t.Fatalf("sqlite database not created: %v", err)
	}
}

func TestSQLitePath(t *testing.T) {
	cases := map[string]string{
		"saves/save.yaml": "saves/save.sqlite",
		"saves/save.JSON": "saves/save.sqlite",
		"progress.db":     "progress.db",
		"saves/save.yml":  "saves/save.sqlite",
	}
	for in, want := range cases {
		if got := sqlitePath(in); got != want {
			t.Fatalf("sqlitePath(%q) = %q, want %q", in, got, want)
		}
	}
}
