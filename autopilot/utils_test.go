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
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

const (
	testSerials         = `[{"port": "/dev/ttyS0", "endpoint": "udp:0.0.0.0:14550"}]`
	testEndpoints       = `[{"name": "GCS Link", "owner": "Ardupilot Manager", "connection_type": "udpout", "place": "192.168.2.1", "argument": 14550, "persistent": true, "protected": false, "enabled": true}]`
	testAvailableBoards = `[{"name": "Navigator", "manufacturer": "Blue Robotics", "mavlink_board_id": 0, "platform": "Navigator"}]`
	testBoard           = `{"name": "Navigator", "manufacturer": "Blue Robotics", "mavlink_board_id": 0, "platform": "Navigator"}`
	testFirmwareInfo    = `{"version": "4.1.0", "type": "OFFICIAL"}`
	testVehicleType     = `"Sub"`
	testFirmwares       = `[{"name": "STABLE", "url": "https://firmware.ardupilot.org/Sub/stable/navigator/ardusub"}]`
)

// testBackend is a fake autopilot manager API.
type testBackend struct {
	server   *httptest.Server
	lock     sync.Mutex
	bodies   map[string]string
	statuses map[string]int
	queries  map[string]url.Values
	delay    time.Duration
}

func newTestBackend(t *testing.T) *testBackend {
	backend := &testBackend{
		bodies: map[string]string{
			"/serials":               testSerials,
			"/endpoints":             testEndpoints,
			"/available_boards":      testAvailableBoards,
			"/board":                 testBoard,
			"/firmware_info":         testFirmwareInfo,
			"/vehicle_type":          testVehicleType,
			"/firmware_vehicle_type": testVehicleType,
			"/available_firmwares":   testFirmwares,
		},
		statuses: map[string]int{},
		queries:  map[string]url.Values{},
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
	body := b.bodies[request.URL.Path]
	status, hasStatus := b.statuses[request.URL.Path]
	delay := b.delay
	b.lock.Unlock()

	if delay > 0 {
		select {
		case <-request.Context().Done():
			return
		case <-time.After(delay):
		}
	}
	if hasStatus {
		writer.WriteHeader(status)
		writer.Write([]byte("backend failure"))
		return
	}
	writer.Header().Set("Content-Type", "application/json")
	writer.Write([]byte(body))
}

func (b *testBackend) setBody(path string, body string) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.bodies[path] = body
}

func (b *testBackend) setStatus(path string, status int) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.statuses[path] = status
}

func (b *testBackend) setDelay(delay time.Duration) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.delay = delay
}

func (b *testBackend) query(path string) url.Values {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.queries[path]
}

// testNotifier collects the raised notifications.
type testNotifier struct {
	lock          sync.Mutex
	notifications []*Notification
}

func (n *testNotifier) Notify(notification *Notification) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.notifications = append(n.notifications, notification)
}

func (n *testNotifier) all() []*Notification {
	n.lock.Lock()
	defer n.lock.Unlock()
	return append([]*Notification{}, n.notifications...)
}

// newTestClient creates a Client for the given API root with a fresh store and notifier.
func newTestClient(t *testing.T, baseURL string, metrics *Metrics) (*Client, *MemoryStore, *testNotifier) {
	store := NewMemoryStore()
	notifier := &testNotifier{}
	client, err := NewClient(NewConfiguration().
		WithBaseURL(baseURL).
		WithStore(store).
		WithNotifier(notifier).
		WithMetrics(metrics))
	require.NoError(t, err)
	return client, store, notifier
}

// unreachableURL returns the address of an already closed HTTP server.
func unreachableURL() string {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	return server.URL
}
