package cls

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	ErrMalformed = errors.New("malformed .cls file")
)

// ParseFile reads the phenotype declared in a .cls file
func ParseFile(path string) (*Phenotype, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer file.Close()

	phenotype, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	phenotype.Path = path
	return phenotype, nil
}

// Parse reads a categorical .cls document:
//
//	<samples> <classes> 1
//	# <name> <name> ...
//	<label> <label> ...
//
// Numeric header counts are checked against the name and label lines.
func Parse(r io.Reader) (*Phenotype, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var lines []string
	for len(lines) < 3 && scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r\n"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: expected 3 lines, got %d", ErrMalformed, len(lines))
	}

	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "#") {
		return nil, fmt.Errorf("%w: line 2 must start with '#'", ErrMalformed)
	}
	names := strings.Fields(strings.TrimPrefix(strings.TrimSpace(lines[1]), "#"))
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no class names on line 2", ErrMalformed)
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate class name %q", ErrMalformed, name)
		}
		seen[name] = true
	}

	assignments := strings.Fields(lines[2])

	if err := checkHeader(lines[0], len(assignments), len(names)); err != nil {
		return nil, err
	}

	return &Phenotype{
		Names:       names,
		Assignments: assignments,
	}, nil
}

// checkHeader validates the sample and class counts on line 1 when present
func checkHeader(header string, samples, classes int) error {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return fmt.Errorf("%w: header must declare sample and class counts", ErrMalformed)
	}

	if n, err := strconv.Atoi(fields[0]); err == nil && n != samples {
		return fmt.Errorf("%w: header declares %d samples, found %d labels", ErrMalformed, n, samples)
	}
	if k, err := strconv.Atoi(fields[1]); err == nil && k != classes {
		return fmt.Errorf("%w: header declares %d classes, found %d names", ErrMalformed, k, classes)
	}
	return nil
}
