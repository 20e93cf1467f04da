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
	"sync"
	"time"

	MQTT "github.com/eclipse/paho.mqtt.golang"
)

// publication is a message published through the mocked client.
type publication struct {
	topic   string
	qos     byte
	payload []byte
}

// mockedClient represents mocked MQTT.Client interface used for testing.
type mockedClient struct {
	err     error
	timeout bool

	lock         sync.Mutex
	handlers     map[string]MQTT.MessageHandler
	unsubscribed []string
	publications []publication
	disconnected bool
}

// mockMqttClient create new mocked MQTT client.
func mockMqttClient(err error) *mockedClient {
	return &mockedClient{err: err, handlers: make(map[string]MQTT.MessageHandler)}
}

// deliver calls the handler of the topic, if subscribed.
func (client *mockedClient) deliver(topic string, payload string) bool {
	client.lock.Lock()
	handler, ok := client.handlers[topic]
	client.lock.Unlock()
	if ok {
		handler(client, &mockedMessage{topic: topic, payload: []byte(payload)})
	}
	return ok
}

// IsConnected returns true.
func (client *mockedClient) IsConnected() bool {
	return true
}

// IsConnectionOpen returns true.
func (client *mockedClient) IsConnectionOpen() bool {
	return true
}

// Connect returns finished token.
func (client *mockedClient) Connect() MQTT.Token {
	return &mockedToken{err: client.err}
}

// Disconnect marks the client as disconnected.
func (client *mockedClient) Disconnect(quiesce uint) {
	client.lock.Lock()
	defer client.lock.Unlock()
	client.disconnected = true
}

// Publish returns finished token and stores the publication.
func (client *mockedClient) Publish(topic string, qos byte, retained bool, payload interface{}) MQTT.Token {
	client.lock.Lock()
	defer client.lock.Unlock()
	if client.err == nil && !client.timeout {
		client.publications = append(client.publications, publication{topic: topic, qos: qos, payload: payload.([]byte)})
	}
	return &mockedToken{err: client.err, timeout: client.timeout}
}

// Subscribe returns finished token and stores the handler.
func (client *mockedClient) Subscribe(topic string, qos byte, callback MQTT.MessageHandler) MQTT.Token {
	client.lock.Lock()
	defer client.lock.Unlock()
	if client.err == nil {
		client.handlers[topic] = callback
	}
	return &mockedToken{err: client.err}
}

// SubscribeMultiple returns finished token.
func (client *mockedClient) SubscribeMultiple(filters map[string]byte, callback MQTT.MessageHandler) MQTT.Token {
	return &mockedToken{err: client.err}
}

// Unsubscribe returns finished token and removes the handlers.
func (client *mockedClient) Unsubscribe(topics ...string) MQTT.Token {
	client.lock.Lock()
	defer client.lock.Unlock()
	for _, topic := range topics {
		delete(client.handlers, topic)
		client.unsubscribed = append(client.unsubscribed, topic)
	}
	return &mockedToken{err: client.err}
}

// AddRoute do nothing.
func (client *mockedClient) AddRoute(topic string, callback MQTT.MessageHandler) {
	// Do nothing.
}

// OptionsReader returns an empty struct.
func (client *mockedClient) OptionsReader() MQTT.ClientOptionsReader {
	return MQTT.ClientOptionsReader{}
}

// mockedToken represents mocked MQTT.Token interface used for testing.
type mockedToken struct {
	err     error
	timeout bool
}

// Wait returns immediately with true.
func (token *mockedToken) Wait() bool {
	return true
}

// WaitTimeout returns immediately, false when a timeout is simulated.
func (token *mockedToken) WaitTimeout(time.Duration) bool {
	return !token.timeout
}

// Done returns immediately with nil channel.
func (token *mockedToken) Done() <-chan struct{} {
	return nil
}

// Error returns the error if set.
func (token *mockedToken) Error() error {
	return token.err
}

// mockedMessage represents mocked MQTT.Message interface used for testing.
type mockedMessage struct {
	topic   string
	payload []byte
}

func (m *mockedMessage) Duplicate() bool   { return false }
func (m *mockedMessage) Qos() byte         { return 1 }
func (m *mockedMessage) Retained() bool    { return false }
func (m *mockedMessage) Topic() string     { return m.topic }
func (m *mockedMessage) MessageID() uint16 { return 0 }
func (m *mockedMessage) Payload() []byte   { return m.payload }
func (m *mockedMessage) Ack()              {}
