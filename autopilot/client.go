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
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client performs the autopilot manager requests of a control panel. Every operation issues exactly
// one HTTP request, writes its outcome into one Store slot and raises at most one notification.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          Store
	notifier       Notifier
	metrics        *Metrics
	readTimeout    time.Duration
	installTimeout time.Duration
}

// NewClient creates a Client with the provided configuration.
func NewClient(cfg *Configuration) (*Client, error) {
	if err := validateConfiguration(cfg); err != nil {
		return nil, err
	}
	client := &Client{
		baseURL:        strings.TrimSuffix(cfg.baseURL, "/"),
		httpClient:     cfg.httpClient,
		store:          cfg.store,
		notifier:       cfg.notifier,
		metrics:        cfg.metrics,
		readTimeout:    cfg.readTimeout,
		installTimeout: cfg.installTimeout,
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	if client.notifier == nil {
		client.notifier = nopNotifier{}
	}
	INFO.Printf("autopilot client created for %s", client.baseURL)
	return client, nil
}

// Serials fetches the serial configurations.
func (c *Client) Serials(ctx context.Context) Result[[]Serial] {
	return fetchList(ctx, c, opSerials, nil, "", c.store.SetSerials)
}

// Endpoints fetches the available MAVLink endpoints.
func (c *Client) Endpoints(ctx context.Context) Result[[]Endpoint] {
	return fetchList(ctx, c, opEndpoints, nil, "", c.store.SetEndpoints)
}

// AvailableBoards fetches the detected boards.
func (c *Client) AvailableBoards(ctx context.Context) Result[[]Board] {
	return fetchList(ctx, c, opAvailableBoards, nil, "", c.store.SetAvailableBoards)
}

// CurrentBoard fetches the board currently in use.
func (c *Client) CurrentBoard(ctx context.Context) Result[*Board] {
	return fetchOne(ctx, c, opCurrentBoard, c.store.SetCurrentBoard)
}

// FirmwareInfo fetches the running firmware version and type.
func (c *Client) FirmwareInfo(ctx context.Context) Result[*FirmwareInfo] {
	return fetchOne(ctx, c, opFirmwareInfo, c.store.SetFirmwareInfo)
}

// VehicleType fetches the detected vehicle type.
func (c *Client) VehicleType(ctx context.Context) Result[*VehicleType] {
	return fetchOne(ctx, c, opVehicleType, c.store.SetVehicleType)
}

// FirmwareVehicleType fetches the vehicle type the running firmware was built for.
func (c *Client) FirmwareVehicleType(ctx context.Context) Result[*VehicleType] {
	return fetchOne(ctx, c, opFirmwareVehicleType, c.store.SetFirmwareVehicleType)
}

// AvailableFirmwares fetches the firmware catalog for the given vehicle type.
// A failure is not recoverable: the caller is expected to report it.
func (c *Client) AvailableFirmwares(ctx context.Context, vehicle VehicleType) Result[[]Firmware] {
	query := url.Values{"vehicle": []string{string(vehicle)}}
	return fetchList(ctx, c, opAvailableFirmwares, query, string(vehicle), c.store.SetAvailableFirmwares)
}

// InstallOption customizes a firmware install request.
type InstallOption func(*installOptions)

type installOptions struct {
	makeDefault bool
}

// WithMakeDefault marks the installed firmware as the default one.
func WithMakeDefault(makeDefault bool) InstallOption {
	return func(o *installOptions) {
		o.makeDefault = makeDefault
	}
}

// InstallFirmwareFromURL asks the autopilot manager to install the firmware found at firmwareURL.
// The make_default parameter is always sent and defaults to false.
// A failure is not recoverable: the caller is expected to report it.
func (c *Client) InstallFirmwareFromURL(ctx context.Context, firmwareURL string, opts ...InstallOption) Result[struct{}] {
	options := &installOptions{}
	for _, opt := range opts {
		opt(options)
	}
	query := url.Values{
		"url":          []string{firmwareURL},
		"make_default": []string{strconv.FormatBool(options.makeDefault)},
	}
	if err := c.call(ctx, opInstallFirmwareFromURL, query, nil); err != nil {
		return Failed[struct{}](c.fail(opInstallFirmwareFromURL, firmwareURL, err))
	}
	INFO.Printf("firmware installed from %s [make_default: %v]", firmwareURL, options.makeDefault)
	return Succeeded(struct{}{})
}

func fetchList[E any](ctx context.Context, c *Client, op *operation, query url.Values, param string, set func([]E)) Result[[]E] {
	var list []E
	if err := c.call(ctx, op, query, &list); err != nil {
		set([]E{})
		return Failed[[]E](c.fail(op, param, err))
	}
	if list == nil {
		list = []E{}
	}
	set(list)
	return Succeeded(list)
}

func fetchOne[T any](ctx context.Context, c *Client, op *operation, set func(*T)) Result[*T] {
	var value *T
	if err := c.call(ctx, op, nil, &value); err != nil {
		set(nil)
		return Failed[*T](c.fail(op, "", err))
	}
	set(value)
	return Succeeded(value)
}

func (c *Client) fail(op *operation, param string, err error) error {
	opErr := &OperationError{Op: op.name, Code: op.code, Param: param, Policy: op.policy, Err: err}
	severity := SeverityBackground
	if op.policy == PolicyPropagate {
		severity = SeverityForeground
		ERROR.Println(opErr)
	} else {
		WARN.Println(opErr)
	}
	c.notifier.Notify(NewNotification(severity, op.code, opErr.Error()))
	return opErr
}
