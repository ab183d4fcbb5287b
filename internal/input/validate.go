package input

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNotFound indicates the CSV path does not exist.
	ErrNotFound = errors.New("csv file not found")
	// ErrNotReadable indicates the CSV path exists but cannot be read.
	ErrNotReadable = errors.New("cannot read csv file")
)

// Validate checks that a local CSV path exists and is readable. It runs once
// before any row is processed; either failure aborts the whole run.
// s3:// URIs are not validated here; open errors surface at fetch time.
func Validate(path string) error {
	if IsRemote(path) {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrNotReadable, path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotReadable, path)
	}
	_ = f.Close()
	return nil
}
