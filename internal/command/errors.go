// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package command

import "fmt"

// InvalidFlagError occurs when a flag value cannot be understood.
type InvalidFlagError struct {
	Flag  string
	Cause error
}

func (e InvalidFlagError) Error() string {
	return fmt.Sprintf("invalid value for --%s: %s", e.Flag, e.Cause)
}

func (e InvalidFlagError) Unwrap() error {
	return e.Cause
}

// UnknownTypeError occurs when a setting is requested as an unsupported type.
type UnknownTypeError struct {
	Type string
}

func (e UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown setting type: %s", e.Type)
}

// CheckError is returned by the check command when any setting failed.
type CheckError struct {
	Failed []string
}

func (e CheckError) Error() string {
	return fmt.Sprintf("%d setting(s) failed: %v", len(e.Failed), e.Failed)
}
