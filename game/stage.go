package game

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/they4kman/hexfield/grid"
	"github.com/they4kman/hexfield/hexmath"
	"gopkg.in/yaml.v2"
)

// Stage is a stage file: a name, a grid shape and the board layout. JSON
// stage files are read as YAML.
type Stage struct {
	Name string `yaml:"name,omitempty"`

	grid.Spec `yaml:",inline"`
	Layout    `yaml:",inline"`
}

func ParseStage(in []byte) (*Stage, error) {
	var stage Stage
	if err := yaml.Unmarshal(in, &stage); err != nil {
		return nil, fmt.Errorf("parse stage: %w", err)
	}
	return &stage, nil
}

func LoadStage(path string) (*Stage, error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stage, err := ParseStage(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stage, nil
}

// Build creates the stage's grid and a fresh board on it.
func (stage *Stage) Build(opts ...Option) (*Board, error) {
	g, err := grid.Build(stage.Spec)
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	return NewBoard(g, stage.Layout, opts...), nil
}

func (stage *Stage) Serialize() string {
	out, err := yaml.Marshal(stage)
	if err != nil {
		panic(err)
	}

	return string(out)
}

var (
	stageNumberPattern = regexp.MustCompile(`(\d+)\.(json|ya?ml)$`)
	stagePathPattern   = regexp.MustCompile(`^(.*?)(\d+)(\.(?:json|ya?ml))$`)
)

var stageExtensions = []string{".json", ".yaml", ".yml"}

// StagePath finds stage number n in dir, stored as NNN.json or NNN.yaml. The
// .json name is returned when neither exists.
func StagePath(dir string, n int) string {
	base := fmt.Sprintf("%03d", n)
	for _, ext := range stageExtensions {
		path := filepath.Join(dir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(dir, base+stageExtensions[0])
}

// StageNumber extracts the trailing stage number from a stage file name.
func StageNumber(path string) (int, bool) {
	m := stageNumberPattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// StageLabel names a stage for display: its own name, or "Stage NNN" from
// the file name, or the path itself.
func StageLabel(stage *Stage, path string) string {
	if stage != nil && stage.Name != "" {
		return stage.Name
	}
	if m := stageNumberPattern.FindStringSubmatch(filepath.Base(path)); m != nil {
		return "Stage " + m[1]
	}
	return path
}

// NextStagePath increments the stage number in path, keeping its zero
// padding. Paths without a number are returned unchanged.
func NextStagePath(path string) string {
	m := stagePathPattern.FindStringSubmatch(path)
	if m == nil {
		return path
	}
	prefix, num, suffix := m[1], m[2], m[3]
	n, err := strconv.Atoi(num)
	if err != nil {
		return path
	}
	return fmt.Sprintf("%s%0*d%s", prefix, len(num), n+1, suffix)
}

// ListStages returns the numbered stage files in dir, ordered by number.
func ListStages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	numbers := make(map[string]int)
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		n, ok := StageNumber(entry.Name())
		if !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		numbers[path] = n
		paths = append(paths, path)
	}

	sort.Slice(paths, func(i, j int) bool {
		if numbers[paths[i]] != numbers[paths[j]] {
			return numbers[paths[i]] < numbers[paths[j]]
		}
		return paths[i] < paths[j]
	})
	return paths, nil
}

// Coords is a convenience for writing layouts in code.
func Coords(pairs ...[2]int) []hexmath.Axial {
	out := make([]hexmath.Axial, len(pairs))
	for i, pair := range pairs {
		out[i] = hexmath.A(pair[0], pair[1])
	}
	return out
}
