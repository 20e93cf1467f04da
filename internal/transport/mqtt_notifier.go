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

package transport

import (
	"encoding/json"
	"time"

	"github.com/eclipse-kanto/autopilot-panel/autopilot"
	"github.com/eclipse-kanto/autopilot-panel/internal/logger"

	MQTT "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 5 * time.Second

// MQTTNotifier publishes notifications as JSON to an MQTT topic.
type MQTTNotifier struct {
	client MQTT.Client
	topic  string
}

// NewMQTTNotifier creates a notifier publishing to the given topic.
func NewMQTTNotifier(client MQTT.Client, topic string) *MQTTNotifier {
	return &MQTTNotifier{client: client, topic: topic}
}

// Notify publishes the notification. Failures are logged only.
func (n *MQTTNotifier) Notify(notification *autopilot.Notification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		logger.Errorf("cannot marshal notification %s: %v", notification.ID, err)
		return
	}
	token := n.client.Publish(n.topic, defaultQoS, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		logger.Warnf("timeout publishing notification %s to %s topic", notification.ID, n.topic)
		return
	}
	if err := token.Error(); err != nil {
		logger.Errorf("fail to publish notification %s to %s topic: %v", notification.ID, n.topic, err)
	}
}
