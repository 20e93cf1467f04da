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

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody limits how much of a failed response body ends up in an error message.
const maxErrorBody = 512

// operation describes one backend capability.
type operation struct {
	id      string
	name    string
	method  string
	path    string
	install bool
	code    Code
	policy  Policy
}

var (
	opSerials = &operation{id: "serials", name: "fetch serial configurations",
		method: http.MethodGet, path: "/serials", code: CodeSerialFetchFail}
	opEndpoints = &operation{id: "endpoints", name: "fetch available endpoints",
		method: http.MethodGet, path: "/endpoints", code: CodeEndpointFetchFail}
	opAvailableBoards = &operation{id: "available_boards", name: "fetch available boards",
		method: http.MethodGet, path: "/available_boards", code: CodeBoardsFetchFail}
	opCurrentBoard = &operation{id: "board", name: "fetch current board",
		method: http.MethodGet, path: "/board", code: CodeBoardFetchFail}
	opFirmwareInfo = &operation{id: "firmware_info", name: "fetch firmware info",
		method: http.MethodGet, path: "/firmware_info", code: CodeFirmwareInfoFetchFail}
	opVehicleType = &operation{id: "vehicle_type", name: "fetch vehicle type",
		method: http.MethodGet, path: "/vehicle_type", code: CodeVehicleTypeFetchFail}
	opFirmwareVehicleType = &operation{id: "firmware_vehicle_type", name: "fetch firmware vehicle type",
		method: http.MethodGet, path: "/firmware_vehicle_type", code: CodeFirmwareVehicleTypeFetchFail}
	opAvailableFirmwares = &operation{id: "available_firmwares", name: "fetch available firmwares for vehicle",
		method: http.MethodGet, path: "/available_firmwares", install: true,
		code: CodeFirmwareAvailableFetchFail, policy: PolicyPropagate}
	opInstallFirmwareFromURL = &operation{id: "install_firmware_from_url", name: "install firmware from url",
		method: http.MethodPost, path: "/install_firmware_from_url", install: true,
		code: CodeFirmwareInstallFail, policy: PolicyPropagate}
)

// call performs the operation request and decodes a successful JSON response into out, if not nil.
func (c *Client) call(ctx context.Context, op *operation, query url.Values, out interface{}) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.observe(op.id, started, err)
	}()

	timeout := c.readTimeout
	if op.install {
		timeout = c.installTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	link := c.baseURL + op.path
	if len(query) > 0 {
		link += "?" + query.Encode()
	}
	request, err := http.NewRequestWithContext(ctx, op.method, link, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")

	DEBUG.Printf("%s %s [timeout: %v]", op.method, link, timeout)
	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	// HTTP Status code is NOT in the 2xx range
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return &statusError{StatusCode: response.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if out == nil {
		_, err = io.Copy(io.Discard, response.Body)
		return err
	}
	return json.NewDecoder(response.Body).Decode(out)
}
