/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package snoop

import (
	"errors"
	"fmt"

	"dirpx.dev/lookup/utils/safe"
)

var (
	// ErrNotSupported marks members the builder cannot evaluate.
	ErrNotSupported = errors.New("lookup(snoop): member not supported")
	// ErrRedirectLimit marks values whose redirection did not settle
	// within the configured number of steps.
	ErrRedirectLimit = errors.New("lookup(snoop): redirect limit reached")
)

// PanicError wraps a value recovered from a panicking member.
type PanicError = safe.PanicError

// NotSupportedError is the value of members shown without being evaluated.
type NotSupportedError struct {
	// Member is the member name.
	Member string
	// Reason explains why the member was not evaluated.
	Reason string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Member, e.Reason)
}

// Is reports ErrNotSupported as the sentinel for every NotSupportedError.
func (e *NotSupportedError) Is(target error) bool {
	return target == ErrNotSupported
}

// RedirectLimitError is the value of objects whose redirection chain
// exceeded Config.MaxRedirects.
type RedirectLimitError struct {
	// Steps is the number of redirections performed.
	Steps int
	// Last is the type name of the last value reached.
	Last string
}

func (e *RedirectLimitError) Error() string {
	return fmt.Sprintf("redirect limit reached after %d steps at %s", e.Steps, e.Last)
}

// Is reports ErrRedirectLimit as the sentinel for every RedirectLimitError.
func (e *RedirectLimitError) Is(target error) bool {
	return target == ErrRedirectLimit
}

// InvocationError is the value of members the builder could not reach,
// for example a field that cannot be read through reflection.
type InvocationError struct {
	// Member is the member name.
	Member string
	// Err is the underlying failure.
	Err error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Member, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }
