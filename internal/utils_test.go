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

package panel

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/eclipse-kanto/autopilot-panel/internal/transport"
	"github.com/eclipse-kanto/autopilot-panel/monitor"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/mux"
)

// testBackend is a fake autopilot manager API.
type testBackend struct {
	server   *httptest.Server
	lock     sync.Mutex
	bodies   map[string]string
	statuses map[string]int
	queries  map[string]url.Values
	methods  map[string]string
}

func newTestBackend(t *testing.T) *testBackend {
	backend := &testBackend{
		bodies: map[string]string{
			"/serials":               `[{"port": "/dev/ttyS0", "endpoint": "udpin:0.0.0.0:6040"}]`,
			"/endpoints":             `[{"name": "GCS Link", "owner": "User", "connection_type": "udpout", "place": "192.168.2.1", "argument": 14550, "persistent": true, "protected": false, "enabled": true}]`,
			"/available_boards":      `[{"name": "Navigator", "manufacturer": "Blue Robotics", "mavlink_board_id": 0, "platform": "Navigator"}]`,
			"/board":                 `{"name": "Navigator", "manufacturer": "Blue Robotics", "mavlink_board_id": 0, "platform": "Navigator"}`,
			"/firmware_info":         `{"version": "4.1.0", "type": "OFFICIAL"}`,
			"/vehicle_type":          `"Sub"`,
			"/firmware_vehicle_type": `"Sub"`,
			"/available_firmwares":   `[{"name": "STABLE", "url": "https://firmware.ardupilot.org/Sub/stable/navigator/ardusub"}]`,
		},
		statuses: map[string]int{},
		queries:  map[string]url.Values{},
		methods:  map[string]string{},
	}

	router := mux.NewRouter()
	for path := range backend.bodies {
		router.HandleFunc(path, backend.handle).Methods(http.MethodGet)
	}
	router.HandleFunc("/install_firmware_from_url", backend.handle).Methods(http.MethodPost)

	backend.server = httptest.NewServer(router)
	t.Cleanup(backend.server.Close)
	return backend
}

func (b *testBackend) handle(writer http.ResponseWriter, request *http.Request) {
	b.lock.Lock()
	b.queries[request.URL.Path] = request.URL.Query()
	b.methods[request.URL.Path] = request.Method
	body := b.bodies[request.URL.Path]
	status, hasStatus := b.statuses[request.URL.Path]
	b.lock.Unlock()

	if hasStatus {
		writer.WriteHeader(status)
		writer.Write([]byte("backend failure"))
		return
	}
	writer.Header().Set("Content-Type", "application/json")
	writer.Write([]byte(body))
}

func (b *testBackend) setStatus(path string, status int) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.statuses[path] = status
}

func (b *testBackend) query(path string) url.Values {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.queries[path]
}

func (b *testBackend) method(path string) string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.methods[path]
}

// syncBuffer is the command output, safe for concurrent use.
type syncBuffer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.String()
}

// waitFor polls the condition for up to 5 seconds.
func waitFor(t *testing.T, msg string, condition func() bool) {
	deadline := time.Now().Add(5 * time.Second)
	for !condition() {
		if time.Now().After(deadline) {
			t.Fatal(msg)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// testConfig returns a valid configuration for the given backend and command.
func testConfig(backend *testBackend, command string) *PanelConfig {
	cfg := NewDefaultConfig().PanelConfig
	cfg.Backend = backend.server.URL
	cfg.Command = command
	return &cfg
}

// mockMQTT replaces the MQTT connection with a mocked client for the duration of the test.
func mockMQTT(t *testing.T) *mockedClient {
	client := &mockedClient{}
	old := newMQTTClient
	newMQTTClient = func(cfg *transport.MQTTConfig) (MQTT.Client, error) {
		client.broker = cfg.Broker
		return client, nil
	}
	t.Cleanup(func() {
		newMQTTClient = old
	})
	return client
}

// mockedClient represents mocked MQTT.Client interface used for testing.
type mockedClient struct {
	lock         sync.Mutex
	broker       string
	published    map[string][]string
	disconnected bool
}

func (client *mockedClient) payloads(topic string) []string {
	client.lock.Lock()
	defer client.lock.Unlock()
	return append([]string{}, client.published[topic]...)
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
	return &mockedToken{}
}

// Disconnect marks the client as disconnected.
func (client *mockedClient) Disconnect(quiesce uint) {
	client.lock.Lock()
	defer client.lock.Unlock()
	client.disconnected = true
}

// Publish returns finished token and stores the payload.
func (client *mockedClient) Publish(topic string, qos byte, retained bool, payload interface{}) MQTT.Token {
	client.lock.Lock()
	defer client.lock.Unlock()
	if client.published == nil {
		client.published = make(map[string][]string)
	}
	client.published[topic] = append(client.published[topic], string(payload.([]byte)))
	return &mockedToken{}
}

// Subscribe returns finished token.
func (client *mockedClient) Subscribe(topic string, qos byte, callback MQTT.MessageHandler) MQTT.Token {
	return &mockedToken{}
}

// SubscribeMultiple returns finished token.
func (client *mockedClient) SubscribeMultiple(filters map[string]byte, callback MQTT.MessageHandler) MQTT.Token {
	return &mockedToken{}
}

// Unsubscribe returns finished token.
func (client *mockedClient) Unsubscribe(topics ...string) MQTT.Token {
	return &mockedToken{}
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
	err error
}

// Wait returns immediately with true.
func (token *mockedToken) Wait() bool {
	return true
}

// WaitTimeout returns immediately with true.
func (token *mockedToken) WaitTimeout(time.Duration) bool {
	return true
}

// Done returns immediately with nil channel.
func (token *mockedToken) Done() <-chan struct{} {
	return nil
}

// Error returns the error if set.
func (token *mockedToken) Error() error {
	return token.err
}

// testSubscriber hands out a single in-memory subscription.
type testSubscriber struct {
	lock         sync.Mutex
	channel      string
	handler      monitor.MessageHandler
	released     bool
	subscription chan struct{}
}

func newTestSubscriber() *testSubscriber {
	return &testSubscriber{subscription: make(chan struct{})}
}

func (s *testSubscriber) Subscribe(channel string) (monitor.Subscription, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.channel = channel
	return s, nil
}

func (s *testSubscriber) OnMessage(handler monitor.MessageHandler) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.handler = handler
	close(s.subscription)
}

func (s *testSubscriber) Release() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.released = true
	return nil
}

func (s *testSubscriber) isReleased() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.released
}

// send delivers the lines once the display has registered its handler.
func (s *testSubscriber) send(t *testing.T, lines ...string) {
	select {
	case <-s.subscription:
	case <-time.After(5 * time.Second):
		t.Fatal("display did not subscribe")
	}
	s.lock.Lock()
	handler, channel := s.handler, s.channel
	s.lock.Unlock()
	for _, line := range lines {
		handler(monitor.Message{Channel: channel, Payload: monitor.Payload{Text: strings.TrimSpace(line)}})
	}
}
