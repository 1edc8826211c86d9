// Package paramfile reads the line-oriented "key value" parameter file
// format the catchment model's original source consumes: one key/value
// pair per line, keys matched case-insensitively, blank lines and
// '#'-prefixed lines ignored.
package paramfile

import (
	"bufio"
	"os"
	"strings"

	"github.com/dvalters/catchmentfp/cerrors"
)

// File is a parsed parameter file: a case-insensitive key to raw-string
// value map. Typed accessors live in package config, which knows which
// keys are required and what they default to.
type File struct {
	values map[string]string
}

// Load reads and parses the parameter file at path. Malformed lines (no
// whitespace-separated value after the key) are skipped rather than
// rejected, matching the original's tolerant line scanner.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &cerrors.ConfigError{Path: path, Err: err}
	}
	defer f.Close()

	values := make(map[string]string)
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		key := strings.ToLower(fields[0])
		values[key] = strings.Join(fields[1:], " ")
	}
	if err := s.Err(); err != nil {
		return nil, &cerrors.ConfigError{Path: path, Err: err}
	}
	return &File{values: values}, nil
}

// Get returns the raw string value for key (case-insensitive) and whether
// it was present.
func (f *File) Get(key string) (string, bool) {
	v, ok := f.values[strings.ToLower(key)]
	return v, ok
}

// All returns a copy of every key/value pair read, keys already
// lower-cased.
func (f *File) All() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}
