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

import "fmt"

// Code identifies a failed operation for programmatic handling of notifications.
type Code string

// Notification codes of the gateway operations.
const (
	CodeSerialFetchFail              Code = "AUTOPILOT_SERIAL_FETCH_FAIL"
	CodeEndpointFetchFail            Code = "AUTOPILOT_ENDPOINT_FETCH_FAIL"
	CodeBoardsFetchFail              Code = "AUTOPILOT_BOARDS_FETCH_FAIL"
	CodeBoardFetchFail               Code = "AUTOPILOT_BOARD_FETCH_FAIL"
	CodeFirmwareInfoFetchFail        Code = "AUTOPILOT_FIRMWARE_INFO_FETCH_FAIL"
	CodeVehicleTypeFetchFail         Code = "AUTOPILOT_VEHICLE_TYPE_FETCH_FAIL"
	CodeFirmwareVehicleTypeFetchFail Code = "AUTOPILOT_FIRMWARE_VEHICLE_TYPE_FETCH_FAIL"
	CodeFirmwareAvailableFetchFail   Code = "AUTOPILOT_FIRMWARE_AVAILABLE_FETCH_FAIL"
	CodeFirmwareInstallFail          Code = "AUTOPILOT_FIRMWARE_INSTALL_FAIL"
)

// Policy defines how a failed operation is reported.
type Policy int

const (
	// PolicySilent resets the store slot and raises a background notification.
	PolicySilent Policy = iota
	// PolicyPropagate raises a foreground notification and hands the failure to the caller.
	PolicyPropagate
)

// OperationError describes a failed gateway operation.
type OperationError struct {
	Op     string
	Code   Code
	Param  string
	Policy Policy
	Err    error
}

func (e *OperationError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s [%s] failed: %v", e.Op, e.Param, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport or parse error.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// Recoverable reports whether the failure was handled by the silent policy.
func (e *OperationError) Recoverable() bool {
	return e.Policy == PolicySilent
}

// statusError is returned for responses outside the 2xx range.
type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status code is not in the 2xx range: %v", e.StatusCode)
	}
	return fmt.Sprintf("http status code is not in the 2xx range: %v - %s", e.StatusCode, e.Body)
}
