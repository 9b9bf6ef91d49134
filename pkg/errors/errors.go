// Package errors provides custom error types for evm-deployment-info.
// These errors enable programmatic error checking and consistent
// messages across the config extractor, the deployment store reader,
// the renderer sinks, and the update checker.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors.
var (
	// ErrConfigNotFound indicates the hardhat config file is absent
	ErrConfigNotFound = errors.New("config not found")

	// ErrConfigParse indicates the hardhat config could not be parsed
	ErrConfigParse = errors.New("config parse failed")

	// ErrStoreRead indicates a deployment store directory could not be read
	ErrStoreRead = errors.New("store read failed")

	// ErrStoreParse indicates a deployment record could not be parsed
	ErrStoreParse = errors.New("store parse failed")

	// ErrSinkWrite indicates rendered output could not be written to a file sink
	ErrSinkWrite = errors.New("sink write failed")

	// ErrUpdateCheck indicates the release update check failed
	ErrUpdateCheck = errors.New("update check failed")
)

// ConfigNotFoundError reports a missing hardhat configuration file.
type ConfigNotFoundError struct {
	Path string
}

// Error implements the error interface
func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("no hardhat.config.ts found at %s", e.Path)
}

// Is implements errors.Is support
func (e *ConfigNotFoundError) Is(target error) bool {
	return target == ErrConfigNotFound
}

// NewConfigNotFoundError creates a new ConfigNotFoundError
func NewConfigNotFoundError(path string) *ConfigNotFoundError {
	return &ConfigNotFoundError{Path: path}
}

// ConfigParseError reports a network block whose chainId token could
// not be parsed as an unsigned integer.
type ConfigParseError struct {
	Network  string
	RawValue string
}

// Error implements the error interface
func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("invalid chainId %q for network %s", e.RawValue, e.Network)
}

// Is implements errors.Is support
func (e *ConfigParseError) Is(target error) bool {
	return target == ErrConfigParse
}

// NewConfigParseError creates a new ConfigParseError
func NewConfigParseError(network, rawValue string) *ConfigParseError {
	return &ConfigParseError{Network: network, RawValue: rawValue}
}

// StoreReadError reports a deployment store location that could not be
// enumerated or read.
type StoreReadError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *StoreReadError) Error() string {
	return fmt.Sprintf("failed to read deployment store at %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StoreReadError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StoreReadError) Is(target error) bool {
	return target == ErrStoreRead
}

// NewStoreReadError creates a new StoreReadError
func NewStoreReadError(path string, err error) *StoreReadError {
	return &StoreReadError{Path: path, Err: err}
}

// StoreParseError reports a deployment record whose structure is
// unreadable (malformed chain id marker or artifact document).
type StoreParseError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *StoreParseError) Error() string {
	return fmt.Sprintf("failed to parse deployment record %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StoreParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StoreParseError) Is(target error) bool {
	return target == ErrStoreParse
}

// NewStoreParseError creates a new StoreParseError
func NewStoreParseError(path string, err error) *StoreParseError {
	return &StoreParseError{Path: path, Err: err}
}

// SinkWriteError reports a failure writing rendered output to a file sink.
type SinkWriteError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("failed to write output to %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SinkWriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SinkWriteError) Is(target error) bool {
	return target == ErrSinkWrite
}

// NewSinkWriteError creates a new SinkWriteError
func NewSinkWriteError(path string, err error) *SinkWriteError {
	return &SinkWriteError{Path: path, Err: err}
}

// UpdateCheckError reports a failed release update check.
type UpdateCheckError struct {
	Err error
}

// Error implements the error interface
func (e *UpdateCheckError) Error() string {
	return fmt.Sprintf("update check failed: %v", e.Err)
}

// Unwrap implements errors.Unwrap
func (e *UpdateCheckError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *UpdateCheckError) Is(target error) bool {
	return target == ErrUpdateCheck
}

// NewUpdateCheckError creates a new UpdateCheckError
func NewUpdateCheckError(err error) *UpdateCheckError {
	return &UpdateCheckError{Err: err}
}

// Helper functions for error checking

// IsConfigNotFound checks if an error indicates a missing config file
func IsConfigNotFound(err error) bool {
	return errors.Is(err, ErrConfigNotFound)
}

// IsConfigParse checks if an error is a config parse error
func IsConfigParse(err error) bool {
	return errors.Is(err, ErrConfigParse)
}

// IsStoreRead checks if an error is a store read error
func IsStoreRead(err error) bool {
	return errors.Is(err, ErrStoreRead)
}

// IsStoreParse checks if an error is a store parse error
func IsStoreParse(err error) bool {
	return errors.Is(err, ErrStoreParse)
}

// IsSinkWrite checks if an error is a sink write error
func IsSinkWrite(err error) bool {
	return errors.Is(err, ErrSinkWrite)
}

// IsUpdateCheck checks if an error is an update check error
func IsUpdateCheck(err error) bool {
	return errors.Is(err, ErrUpdateCheck)
}

// Helper wrapping functions for common patterns

// WrapStoreRead wraps an error as a StoreReadError
func WrapStoreRead(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewStoreReadError(path, err)
}

// WrapStoreParse wraps an error as a StoreParseError
func WrapStoreParse(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewStoreParseError(path, err)
}

// WrapSinkWrite wraps an error as a SinkWriteError
func WrapSinkWrite(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewSinkWriteError(path, err)
}
