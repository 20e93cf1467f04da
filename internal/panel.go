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

package panel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/eclipse-kanto/autopilot-panel/autopilot"
	"github.com/eclipse-kanto/autopilot-panel/internal/logger"
	"github.com/eclipse-kanto/autopilot-panel/internal/transport"
	"github.com/eclipse-kanto/autopilot-panel/internal/util/tls"
	"github.com/eclipse-kanto/autopilot-panel/monitor"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsShutdownTimeout = 5 * time.Second

// newMQTTClient connects to the MQTT broker, replaced in tests.
var newMQTTClient = transport.NewMQTTClient

// Panel runs the panel commands against the autopilot manager.
type Panel struct {
	cfg *PanelConfig

	store      *autopilot.MemoryStore
	client     *autopilot.Client
	subscriber monitor.Subscriber

	mqttClient    MQTT.Client
	metricsServer *http.Server

	outLock sync.Mutex
	out     io.Writer
}

// NewPanel creates the panel with its store, notifiers, metrics endpoint and message transport.
// The command output is written to out.
func NewPanel(cfg *PanelConfig, out io.Writer) (*Panel, error) {
	p := &Panel{cfg: cfg, store: autopilot.NewMemoryStore(), out: out}

	notifiers := autopilot.Notifiers{autopilot.NotifierFunc(p.logNotification)}
	if cfg.usesMQTT() {
		client, err := newMQTTClient(&transport.MQTTConfig{
			Broker:   cfg.Broker,
			Username: cfg.Username,
			Password: cfg.Password,
			CACert:   cfg.CACert,
			Cert:     cfg.Cert,
			Key:      cfg.Key,
		})
		if err != nil {
			return nil, fmt.Errorf("cannot connect to MQTT broker %s: %v", cfg.Broker, err)
		}
		p.mqttClient = client
		if cfg.NotificationTopic != "" {
			notifiers = append(notifiers, transport.NewMQTTNotifier(client, cfg.NotificationTopic))
		}
	}
	if cfg.Command == commandWatch {
		if cfg.Transport == transportNSQ {
			p.subscriber = transport.NewNSQSubscriber(cfg.NSQD, cfg.NSQLookupd)
		} else {
			p.subscriber = transport.NewMQTTSubscriber(p.mqttClient, cfg.TopicPrefix)
		}
	}

	config := autopilot.NewConfiguration().
		WithBaseURL(cfg.Backend).
		WithStore(p.store).
		WithNotifier(notifiers).
		WithReadTimeout(time.Duration(cfg.ReadTimeout)).
		WithInstallTimeout(time.Duration(cfg.InstallTimeout))

	if cfg.ServerCert != "" {
		tlsConfig, err := tls.NewTLSConfig(cfg.ServerCert, "", "")
		if err != nil {
			p.Close()
			return nil, err
		}
		config = config.WithHTTPClient(&http.Client{Transport: &http.Transport{TLSClientConfig: tlsConfig}})
	}

	if cfg.MetricsAddr != "" {
		metrics, err := p.serveMetrics(cfg.MetricsAddr)
		if err != nil {
			p.Close()
			return nil, err
		}
		config = config.WithMetrics(metrics)
	}

	client, err := autopilot.NewClient(config)
	if err != nil {
		p.Close()
		return nil, err
	}
	p.client = client
	return p, nil
}

func (p *Panel) serveMetrics(addr string) (*autopilot.Metrics, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := autopilot.NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("cannot serve metrics on %s: %v", addr, err)
	}
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	p.metricsServer = &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := p.metricsServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("metrics server stopped: %v", err)
		}
	}()
	logger.Infof("serving metrics on %s", listener.Addr())
	return metrics, nil
}

// logNotification logs every notification. Foreground ones are shown to the user as well.
func (p *Panel) logNotification(n *autopilot.Notification) {
	if n.Severity == autopilot.SeverityForeground {
		logger.Infof("notification %s [%s]: %s", n.ID, n.Code, n.Message)
		p.printf("[%s] %s: %s\n", n.Service, n.Code, n.Message)
		return
	}
	logger.Debugf("notification %s [%s]: %s", n.ID, n.Code, n.Message)
}

// Run executes the configured command. The watch command runs until ctx is done.
func (p *Panel) Run(ctx context.Context) error {
	logger.Infof("running %s command", p.cfg.Command)
	switch p.cfg.Command {
	case commandStatus:
		return p.status(ctx)
	case commandFirmwares:
		return p.firmwares(ctx)
	case commandInstall:
		return p.install(ctx)
	case commandWatch:
		return p.watch(ctx)
	default:
		return fmt.Errorf("unknown command %q", p.cfg.Command)
	}
}

// Store returns the store updated by the panel commands.
func (p *Panel) Store() *autopilot.MemoryStore {
	return p.store
}

// Close stops the metrics endpoint and disconnects from the MQTT broker.
func (p *Panel) Close() {
	if p.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := p.metricsServer.Shutdown(ctx); err != nil {
			logger.Warnf("failed to stop metrics server: %v", err)
		}
		p.metricsServer = nil
	}
	if p.mqttClient != nil {
		transport.DisconnectMQTTClient(p.mqttClient)
		p.mqttClient = nil
	}
}

func (p *Panel) printf(format string, a ...interface{}) {
	p.outLock.Lock()
	defer p.outLock.Unlock()
	fmt.Fprintf(p.out, format, a...)
}
