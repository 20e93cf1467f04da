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
	"time"

	"github.com/google/uuid"
)

// ServiceName is the service reported in every notification raised by the Client.
const ServiceName = "Autopilot Manager"

// Severity of a notification.
type Severity string

// Supported notification severities.
const (
	// SeverityBackground is used for non-fatal failures of informational fetches.
	SeverityBackground Severity = "background"
	// SeverityForeground is used for failures of user actions.
	SeverityForeground Severity = "foreground"
)

// Notification reports the outcome of an operation to the user or to a background log.
type Notification struct {
	ID       string    `json:"id"`
	Service  string    `json:"service"`
	Severity Severity  `json:"severity"`
	Code     Code      `json:"code"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// NewNotification returns a Notification with a fresh identifier and timestamp.
func NewNotification(severity Severity, code Code, message string) *Notification {
	return &Notification{
		ID:       uuid.New().String(),
		Service:  ServiceName,
		Severity: severity,
		Code:     code,
		Message:  message,
		Time:     time.Now(),
	}
}

// Notifier receives notifications. Implementations must not block for long.
type Notifier interface {
	Notify(n *Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n *Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n *Notification) {
	f(n)
}

// Notifiers fans a single notification out to several notifiers.
type Notifiers []Notifier

// Notify forwards n to every non-nil notifier in order.
func (ns Notifiers) Notify(n *Notification) {
	for _, notifier := range ns {
		if notifier != nil {
			notifier.Notify(n)
		}
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(*Notification) {}
