// Copyright (c) 2021 Contributors to the Eclipse Foundation
//
// See the NOTICE file(s) distributed with this work for additional
// information regarding copyright ownership.
//
// This program and the accompanying materials are made available under the
// terms of the Eclipse Public License 2.0 which is available at
// http://www.eclipse.org/legal/epl-2.0
//
// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/eclipse-kanto/autopilot-panel/internal/logger"
	"github.com/eclipse-kanto/autopilot-panel/internal/util/tls"
	"github.com/eclipse-kanto/autopilot-panel/monitor"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const (
	defaultKeepAlive         = 20 * time.Second
	defaultDisconnectQuiesce = 200
	defaultQoS               = 1
)

// MQTTConfig holds the MQTT broker connection settings.
type MQTTConfig struct {
	Broker   string
	Username string
	Password string
	CACert   string
	Cert     string
	Key      string
}

// NewMQTTClient connects a new MQTT client to the configured broker.
func NewMQTTClient(cfg *MQTTConfig) (MQTT.Client, error) {
	logger.Infof("connecting to MQTT broker: %s", cfg.Broker)
	opts := MQTT.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(uuid.New().String()).
		SetKeepAlive(defaultKeepAlive).
		SetCleanSession(true).
		SetAutoReconnect(true)
	if len(cfg.Username) > 0 {
		opts = opts.SetUsername(cfg.Username).SetPassword(cfg.Password)
	}
	if len(cfg.CACert) > 0 || len(cfg.Cert) > 0 {
		tlsConfig, err := tls.NewTLSConfig(cfg.CACert, cfg.Cert, cfg.Key)
		if err != nil {
			return nil, err
		}
		opts = opts.SetTLSConfig(tlsConfig)
	}

	client := MQTT.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return client, nil
}

// MQTTSubscriber subscribes to telemetry channels published as MQTT topics <prefix>/<channel>.
type MQTTSubscriber struct {
	client MQTT.Client
	prefix string
}

// NewMQTTSubscriber creates a subscriber on top of a connected MQTT client.
func NewMQTTSubscriber(client MQTT.Client, topicPrefix string) *MQTTSubscriber {
	return &MQTTSubscriber{client: client, prefix: strings.Trim(topicPrefix, "/")}
}

// Subscribe subscribes to the topic of the given channel.
func (s *MQTTSubscriber) Subscribe(channel string) (monitor.Subscription, error) {
	if channel == "" {
		return nil, errors.New("channel name cannot be empty")
	}
	topic := channel
	if s.prefix != "" {
		topic = s.prefix + "/" + channel
	}
	sub := &mqttSubscription{client: s.client, topic: topic, channel: channel}
	if token := s.client.Subscribe(topic, defaultQoS, sub.receive); token.Wait() && token.Error() != nil {
		logger.Errorf("fail to subscribe for %s topic: %v", topic, token.Error())
		return nil, token.Error()
	}
	logger.Infof("subscribed for %s topic", topic)
	return sub, nil
}

type mqttSubscription struct {
	client  MQTT.Client
	topic   string
	channel string

	lock     sync.Mutex
	handler  monitor.MessageHandler
	released bool
}

func (s *mqttSubscription) OnMessage(handler monitor.MessageHandler) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.handler = handler
}

func (s *mqttSubscription) receive(client MQTT.Client, message MQTT.Message) {
	s.lock.Lock()
	handler := s.handler
	released := s.released
	s.lock.Unlock()

	if released {
		return
	}
	if handler == nil {
		logger.Debugf("no handler for message on %s topic, drop it", message.Topic())
		return
	}
	handler(monitor.Message{Channel: s.channel, Payload: decodePayload(message.Payload())})
}

func (s *mqttSubscription) Release() error {
	s.lock.Lock()
	if s.released {
		s.lock.Unlock()
		return nil
	}
	s.released = true
	s.lock.Unlock()

	if token := s.client.Unsubscribe(s.topic); token.Wait() && token.Error() != nil {
		return fmt.Errorf("fail to unsubscribe from %s topic: %v", s.topic, token.Error())
	}
	logger.Infof("unsubscribed from %s topic", s.topic)
	return nil
}

// DisconnectMQTTClient closes the connection of the client.
func DisconnectMQTTClient(client MQTT.Client) {
	client.Disconnect(defaultDisconnectQuiesce)
	logger.Info("disconnected from MQTT broker")
}
