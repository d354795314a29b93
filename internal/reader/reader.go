// Package reader parses the line-based keyframe description format:
//
//	# comment
//	canvas X Y W H
//	shape NAME TYPE
//	motion NAME T1 X1 Y1 W1 H1 R1 G1 B1 T2 X2 Y2 W2 H2 R2 G2 B2
//
// Each recognised line is forwarded to a builder.Builder in file order.
package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ivlev/shapeanim/internal/builder"
	"github.com/ivlev/shapeanim/internal/model"
)

// ParseFile reads the file at path into a new scene.
func ParseFile(path string) (*model.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b := builder.New()
	if err := Parse(f, b); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b.Build()
}

// Parse feeds every command in r to b.
func Parse(r io.Reader, b *builder.Builder) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if err := apply(b, fields); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func apply(b *builder.Builder, fields []string) error {
	switch fields[0] {
	case "canvas":
		v, err := ints(fields[1:], 4)
		if err != nil {
			return fmt.Errorf("canvas: %w", err)
		}
		b.SetBounds(v[0], v[1], v[2], v[3])
	case "shape":
		if len(fields) != 3 {
			return fmt.Errorf("shape: expected NAME TYPE, got %d fields", len(fields)-1)
		}
		b.DeclareShape(fields[1], fields[2])
	case "motion":
		if len(fields) < 2 {
			return fmt.Errorf("motion: missing shape name")
		}
		v, err := ints(fields[2:], 16)
		if err != nil {
			return fmt.Errorf("motion %s: %w", fields[1], err)
		}
		return b.AddMotion(fields[1],
			v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7],
			v[8], v[9], v[10], v[11], v[12], v[13], v[14], v[15])
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return nil
}

func ints(fields []string, n int) ([]int, error) {
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d integers, got %d", n, len(fields))
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}
