package instance

import (
	"embed"
	"fmt"
	"math/rand"
	"path"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns fresh copies of the bundled worked examples, sorted by name.
// The embedded files are validated on every call; a broken file is a build
// defect and is reported as an error rather than a panic.
func Builtin() ([]*Instance, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("instance: list builtin: %w", err)
	}
	out := make([]*Instance, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("instance: read builtin %s: %w", e.Name(), err)
		}
		in, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", e.Name(), err)
		}
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

// ByName returns the builtin instance called name.
func ByName(name string) (*Instance, error) {
	all, err := Builtin()
	if err != nil {
		return nil, err
	}
	for _, in := range all {
		if in.Name == name {
			return in, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Random builds an n×m instance with integer costs in [0, maxCost], so sums
// stay exact in float64. The same rng state yields the same instance.
func Random(name string, n, m, maxCost int, rng *rand.Rand) *Instance {
	in := &Instance{
		Name:           name,
		ProcessingTime: randomRows(n, m, maxCost, rng),
		TransitionCost: randomRows(m, m, maxCost, rng),
	}

	return in
}

func randomRows(rows, cols, maxCost int, rng *rand.Rand) [][]float64 {
	out := make([][]float64, rows)
	var i, j int
	for i = 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j = 0; j < cols; j++ {
			out[i][j] = float64(rng.Intn(maxCost + 1))
		}
	}

	return out
}
