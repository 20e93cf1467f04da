// Copyright (c) 2026 Contributors to the Eclipse Foundation
//
// See the NOTICE file(s) distributed with this work for additional
// information regarding copyright ownership.
//
// This program and the accompanying materials are made available under the
// terms of the Eclipse Public License 2.0 which is available at
// https://www.eclipse.org/legal/epl-2.0, or the Apache License, Version 2.0
// which is available at https://www.apache.org/licenses/LICENSE-2.0.
//
// SPDX-License-Identifier: EPL-2.0 OR Apache-2.0

package autopilot

import "errors"

// Result is the outcome of a gateway operation: either a value or the reason it failed.
type Result[T any] struct {
	value T
	err   error
}

// Succeeded returns a successful Result holding the given value.
func Succeeded[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failed returns a failed Result holding the given reason.
func Failed[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool {
	return r.err == nil
}

// Value returns the value of a successful operation or the zero value.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure reason or nil.
func (r Result[T]) Err() error {
	return r.err
}

// Unwrap returns the value and the error of the Result.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Recoverable reports whether a failure was already handled locally, i.e. the store slot has been
// reset and a background notification was raised. A successful Result is recoverable.
func (r Result[T]) Recoverable() bool {
	if r.err == nil {
		return true
	}
	var opErr *OperationError
	if errors.As(r.err, &opErr) {
		return opErr.Recoverable()
	}
	return false
}
