// Package instance loads, validates and fingerprints assignment problems:
// a named pair of processing-time and transition-cost matrices, optionally
// with the expected minimum cost.
//
// Instances are stored as YAML:
//
//	name: line-3x2
//	processing_time:
//	  - [5, 8]
//	  - [6, 3]
//	  - [4, 7]
//	transition_cost:
//	  - [0, 2]
//	  - [3, 0]
//	expected: 15
package instance

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/jobline/assign"
)

var (
	// ErrInvalid is returned when an instance cannot be solved as written.
	// It wraps the assign error describing the first violation.
	ErrInvalid = errors.New("instance: invalid instance")

	// ErrDecode is returned when a YAML document cannot be decoded.
	ErrDecode = errors.New("instance: decode failed")

	// ErrNotFound is returned by ByName for an unknown builtin.
	ErrNotFound = errors.New("instance: not found")
)

// Instance is one assignment problem.
type Instance struct {
	Name           string      `yaml:"name" json:"name"`
	ProcessingTime [][]float64 `yaml:"processing_time" json:"processingTime"`
	TransitionCost [][]float64 `yaml:"transition_cost" json:"transitionCost"`
	// Expected, when set, is the minimum cost the instance is known to have.
	Expected *float64 `yaml:"expected,omitempty" json:"expected,omitempty"`
}

// Jobs returns n, the number of processing-time rows.
func (in *Instance) Jobs() int { return len(in.ProcessingTime) }

// Machines returns m, the width of the first processing-time row (0 if none).
func (in *Instance) Machines() int {
	if len(in.ProcessingTime) == 0 {
		return 0
	}

	return len(in.ProcessingTime[0])
}

// Validate checks the instance with the engines' own input rules.
func (in *Instance) Validate() error {
	if err := assign.Validate(in.Jobs(), in.Machines(), in.ProcessingTime, in.TransitionCost); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalid, in.Name, err)
	}

	return nil
}

// Fingerprint hashes the cost data (not the name or expectation) with xxh3.
// Two instances with identical matrices share a fingerprint, which makes it
// usable as a result-cache key.
func (in *Instance) Fingerprint() uint64 {
	var (
		buf bytes.Buffer
		b8  [8]byte
	)
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(b8[:], uint64(v))
		buf.Write(b8[:])
	}
	writeRows := func(rows [][]float64) {
		writeInt(len(rows))
		for _, row := range rows {
			writeInt(len(row))
			for _, v := range row {
				binary.LittleEndian.PutUint64(b8[:], math.Float64bits(v))
				buf.Write(b8[:])
			}
		}
	}
	writeRows(in.ProcessingTime)
	writeRows(in.TransitionCost)

	return xxh3.Hash(buf.Bytes())
}

// Scale returns a copy with every cost (and Expected) multiplied by c.
func (in *Instance) Scale(c float64) *Instance {
	out := &Instance{
		Name:           fmt.Sprintf("%s×%g", in.Name, c),
		ProcessingTime: scaleRows(in.ProcessingTime, c),
		TransitionCost: scaleRows(in.TransitionCost, c),
	}
	if in.Expected != nil {
		e := *in.Expected * c
		out.Expected = &e
	}

	return out
}

func scaleRows(src [][]float64, c float64) [][]float64 {
	if src == nil {
		return nil
	}
	out := make([][]float64, len(src))
	for i, row := range src {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = v * c
		}
	}

	return out
}

// Parse decodes one YAML instance and validates it.
// Unknown fields are rejected so typos such as "transition_costs" surface early.
func Parse(data []byte) (*Instance, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var in Instance
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrDecode)
		}

		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	return &in, nil
}

// Load reads and parses a YAML instance file. A missing name defaults to
// the file name without extension.
func Load(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("instance: read %s: %w", path, err)
	}
	in, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if in.Name == "" {
		in.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return in, nil
}

// Marshal encodes the instance as YAML.
func (in *Instance) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(in); err != nil {
		return nil, fmt.Errorf("instance: encode %q: %w", in.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("instance: encode %q: %w", in.Name, err)
	}

	return buf.Bytes(), nil
}
