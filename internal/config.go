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
	"fmt"
	"net/url"

	"github.com/eclipse-kanto/autopilot-panel/autopilot"
	"github.com/eclipse-kanto/autopilot-panel/internal/logger"
)

// Supported commands.
const (
	commandStatus    = "status"
	commandFirmwares = "firmwares"
	commandInstall   = "install"
	commandWatch     = "watch"
)

// Supported message transports.
const (
	transportMQTT = "mqtt"
	transportNSQ  = "nsq"
)

// PanelConfig holds the autopilot panel configuration.
type PanelConfig struct {
	// autopilot manager API
	Backend        string   `json:"backend"`
	ServerCert     string   `json:"serverCert"`
	ReadTimeout    Duration `json:"readTimeout"`
	InstallTimeout Duration `json:"installTimeout"`

	Command     string `json:"command"`
	Vehicle     string `json:"vehicle"`
	URL         string `json:"url"`
	MakeDefault bool   `json:"makeDefault"`

	// message relay
	Transport   string   `json:"transport"`
	Broker      string   `json:"broker"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	CACert      string   `json:"caCert"`
	Cert        string   `json:"cert"`
	Key         string   `json:"key"`
	TopicPrefix string   `json:"topicPrefix"`
	NSQD        string   `json:"nsqd"`
	NSQLookupd  []string `json:"nsqLookupd"`

	Channel           string `json:"channel"`
	Filter            string `json:"filter"`
	FilterFile        string `json:"filterFile"`
	NotificationTopic string `json:"notificationTopic"`
	MetricsAddr       string `json:"metricsAddr"`
}

// BasicConfig combines the panel and log configurations.
type BasicConfig struct {
	logger.LogConfig
	PanelConfig
	ConfigFile string `json:"-"`
}

// NewDefaultConfig returns a configuration with the default values.
func NewDefaultConfig() *BasicConfig {
	return &BasicConfig{
		LogConfig: logger.LogConfig{
			LogLevel:      "INFO",
			LogFileSize:   2,
			LogFileCount:  5,
			LogFileMaxAge: 28,
		},
		PanelConfig: PanelConfig{
			Backend:        "http://blueos.local/ardupilot-manager/v1.0",
			ReadTimeout:    Duration(autopilot.DefaultReadTimeout),
			InstallTimeout: Duration(autopilot.DefaultInstallTimeout),
			Command:        commandStatus,
			Transport:      transportMQTT,
			Broker:         "tcp://localhost:1883",
			TopicPrefix:    "mavlink",
			NSQD:           "localhost:4150",
			Channel:        "STATUSTEXT",
		},
	}
}

// Validate checks the configuration values.
func (cfg *PanelConfig) Validate() error {
	if u, err := url.Parse(cfg.Backend); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid autopilot manager URL %q", cfg.Backend)
	}
	if cfg.ReadTimeout <= 0 || cfg.InstallTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive [read: %v, install: %v]", cfg.ReadTimeout, cfg.InstallTimeout)
	}
	switch cfg.Command {
	case commandStatus:
	case commandFirmwares:
		if cfg.Vehicle != "" {
			if _, err := autopilot.ParseVehicleType(cfg.Vehicle); err != nil {
				return err
			}
		}
	case commandInstall:
		if cfg.URL == "" {
			return fmt.Errorf("firmware URL is mandatory for the %s command", commandInstall)
		}
	case commandWatch:
		if cfg.Channel == "" {
			return fmt.Errorf("message channel is mandatory for the %s command", commandWatch)
		}
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
	if cfg.Transport != transportMQTT && cfg.Transport != transportNSQ {
		return fmt.Errorf("unknown message transport %q", cfg.Transport)
	}
	if cfg.usesMQTT() && cfg.Broker == "" {
		return fmt.Errorf("MQTT broker address is mandatory")
	}
	if cfg.Command == commandWatch && cfg.Transport == transportNSQ && cfg.NSQD == "" && len(cfg.NSQLookupd) == 0 {
		return fmt.Errorf("nsqd or nsqlookupd address is mandatory")
	}
	return nil
}

func (cfg *PanelConfig) usesMQTT() bool {
	return cfg.NotificationTopic != "" || (cfg.Command == commandWatch && cfg.Transport == transportMQTT)
}

func (cfg PanelConfig) String() string {
	return fmt.Sprintf("[Backend: %s, Command: %s, Transport: %s, Broker: %s, NSQD: %s, Channel: %s]",
		cfg.Backend, cfg.Command, cfg.Transport, cfg.Broker, cfg.NSQD, cfg.Channel)
}
