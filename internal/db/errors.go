package db

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("database configuration error")
	ErrConnection    = errors.New("database connection error")
	ErrStorage       = errors.New("database storage error")
	ErrUnknownTable  = errors.New("unknown table")
)

// ConfigurationError reports a setting that must be present for the
// selected mode but is not.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not set", e.Key)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ConnectionError wraps a driver failure while reaching the network store.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Target, e.Err)
}

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

func (e *ConnectionError) Unwrap() error { return e.Err }

// StorageError wraps a failure opening or creating the local database file.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to open database file %s: %v", e.Path, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func (e *StorageError) Unwrap() error { return e.Err }
