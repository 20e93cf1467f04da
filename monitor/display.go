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

package monitor

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// Option customizes a Display.
type Option func(*Display) error

// WithFilter sets the initial filter pattern.
func WithFilter(pattern string) Option {
	return func(d *Display) error {
		return d.SetFilter(pattern)
	}
}

// WithListener sets the function called with every new line matching the filter.
func WithListener(listener func(line string)) Option {
	return func(d *Display) error {
		d.listener = listener
		return nil
	}
}

// Display keeps the transcript of a telemetry channel. Adjacent duplicate lines are dropped,
// every other line is appended to the history and lines matching the filter are reported to the listener.
//
// The zero value is an unsubscribed Display whose Close is a no-op.
type Display struct {
	channel  string
	listener func(line string)

	// handling serializes message handling, so the listener sees lines in history order.
	handling sync.Mutex

	lock    sync.RWMutex
	filter  *regexp.Regexp
	history []string

	releaseOnce  sync.Once
	subscription Subscription
	releaseErr   error
}

// NewDisplay subscribes to the given channel and returns the subscribed Display.
// The subscription is held until Close is called.
func NewDisplay(subscriber Subscriber, channel string, opts ...Option) (*Display, error) {
	if subscriber == nil {
		return nil, errors.New("subscriber is mandatory for message display")
	}
	if channel == "" {
		return nil, errors.New("channel is mandatory for message display")
	}
	d := &Display{channel: channel}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	subscription, err := subscriber.Subscribe(channel)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %v", channel, err)
	}
	d.subscription = subscription
	subscription.OnMessage(d.handle)
	return d, nil
}

// SetFilter compiles the pattern and makes it the active filter. An empty pattern matches everything.
// If the pattern is invalid, the error is returned and the previous filter stays active.
func (d *Display) SetFilter(pattern string) error {
	var filter *regexp.Regexp
	if pattern != "" {
		var err error
		if filter, err = regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid filter pattern %q: %v", pattern, err)
		}
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	d.filter = filter
	return nil
}

// Filter returns the source of the active filter pattern.
func (d *Display) Filter() string {
	d.lock.RLock()
	defer d.lock.RUnlock()
	if d.filter == nil {
		return ""
	}
	return d.filter.String()
}

// History returns a copy of the received lines.
func (d *Display) History() []string {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return append([]string{}, d.history...)
}

// Channel returns the name of the subscribed channel.
func (d *Display) Channel() string {
	return d.channel
}

// Close releases the subscription. Only the first call releases it, later calls return the same result.
func (d *Display) Close() error {
	d.releaseOnce.Do(func() {
		if d.subscription != nil {
			d.releaseErr = d.subscription.Release()
		}
	})
	return d.releaseErr
}

func (d *Display) handle(message Message) {
	d.handling.Lock()
	defer d.handling.Unlock()

	text := message.Payload.Text
	d.lock.RLock()
	duplicate := len(d.history) > 0 && d.history[len(d.history)-1] == text
	matches := d.filter == nil || d.filter.MatchString(text)
	d.lock.RUnlock()

	if duplicate {
		return
	}
	if matches && d.listener != nil {
		d.listener(text)
	}

	d.lock.Lock()
	d.history = append(d.history, text)
	d.lock.Unlock()
}
