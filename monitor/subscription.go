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

// Payload is the content of a telemetry message.
type Payload struct {
	Text string `json:"text"`
}

// Message is a telemetry message delivered on a named channel.
type Message struct {
	Channel string
	Payload Payload
}

// MessageHandler is called for every message received on a subscription.
type MessageHandler func(message Message)

// Subscription is a handle to a channel subscription.
type Subscription interface {
	// OnMessage registers the handler to be called for each received message.
	// Messages arriving before a handler is registered are dropped.
	OnMessage(handler MessageHandler)
	// Release ends the subscription.
	Release() error
}

// Subscriber opens subscriptions to named message channels.
type Subscriber interface {
	Subscribe(channel string) (Subscription, error)
}
