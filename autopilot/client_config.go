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
	"errors"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultReadTimeout bounds informational fetches.
	DefaultReadTimeout = 10 * time.Second
	// DefaultInstallTimeout bounds firmware installs and firmware catalog listings.
	DefaultInstallTimeout = 30 * time.Second
)

// Configuration provides the Client's configuration.
type Configuration struct {
	baseURL        string
	httpClient     *http.Client
	store          Store
	notifier       Notifier
	metrics        *Metrics
	readTimeout    time.Duration
	installTimeout time.Duration
}

// NewConfiguration returns a Client Configuration with the default timeouts.
func NewConfiguration() *Configuration {
	return &Configuration{
		readTimeout:    DefaultReadTimeout,
		installTimeout: DefaultInstallTimeout,
	}
}

// WithBaseURL configures the autopilot manager API root, e.g. http://blueos.local/ardupilot-manager/v1.0.
func (cfg *Configuration) WithBaseURL(baseURL string) *Configuration {
	cfg.baseURL = baseURL
	return cfg
}

// WithHTTPClient configures the HTTP client used for all requests.
func (cfg *Configuration) WithHTTPClient(httpClient *http.Client) *Configuration {
	cfg.httpClient = httpClient
	return cfg
}

// WithStore configures the store receiving the fetched values.
func (cfg *Configuration) WithStore(store Store) *Configuration {
	cfg.store = store
	return cfg
}

// WithNotifier configures the notifier to be called when an operation fails.
func (cfg *Configuration) WithNotifier(notifier Notifier) *Configuration {
	cfg.notifier = notifier
	return cfg
}

// WithMetrics configures the collector of request metrics.
func (cfg *Configuration) WithMetrics(metrics *Metrics) *Configuration {
	cfg.metrics = metrics
	return cfg
}

// WithReadTimeout configures the timeout of informational fetches.
func (cfg *Configuration) WithReadTimeout(timeout time.Duration) *Configuration {
	cfg.readTimeout = timeout
	return cfg
}

// WithInstallTimeout configures the timeout of firmware installs and firmware catalog listings.
func (cfg *Configuration) WithInstallTimeout(timeout time.Duration) *Configuration {
	cfg.installTimeout = timeout
	return cfg
}

// validateConfiguration will return an error if provided configuration is not valid.
func validateConfiguration(cfg *Configuration) error {
	if cfg == nil {
		return errors.New("autopilot client configuration cannot be nil")
	}
	if cfg.baseURL == "" {
		return errors.New("base URL is mandatory for autopilot client")
	}
	if u, err := url.Parse(cfg.baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("base URL must be an absolute URL")
	}
	if cfg.store == nil {
		return errors.New("store is mandatory for autopilot client")
	}
	if cfg.readTimeout <= 0 || cfg.installTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}
