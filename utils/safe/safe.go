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

// Package safe runs host code that may fail in any way and turns every
// failure into an error value.
package safe

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"
)

// PanicError wraps a value recovered from a panicking call.
type PanicError struct {
	// Value is the recovered value.
	Value any
	// Stack is the goroutine stack at the point of recovery.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the recovered value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsPanic reports whether err came from a recovered panic.
func IsPanic(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// Result is the outcome of Call.
type Result struct {
	Value   any
	Err     error
	Elapsed time.Duration
}

// Call invokes fn, recovering panics into *PanicError and timing the call.
func Call(fn func() (any, error)) (res Result) {
	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		if r := recover(); r != nil {
			res.Value = nil
			res.Err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	v, err := fn()
	return Result{Value: v, Err: err}
}
