// Copyright (c) 2021 Contributors to the Eclipse Foundation
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
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eclipse-kanto/autopilot-panel/internal/logger"
)

const (
	flagConfigFile = "configFile"
	flagVersion    = "version"

	flagLogLevel      = "logLevel"
	flagLogFile       = "logFile"
	flagLogFileSize   = "logFileSize"
	flagLogFileCount  = "logFileCount"
	flagLogFileMaxAge = "logFileMaxAge"

	flagBackend        = "backend"
	flagServerCert     = "serverCert"
	flagReadTimeout    = "readTimeout"
	flagInstallTimeout = "installTimeout"
	flagCommand        = "command"
	flagVehicle        = "vehicle"
	flagURL            = "url"
	flagMakeDefault    = "makeDefault"

	flagTransport         = "transport"
	flagBroker            = "broker"
	flagUsername          = "username"
	flagPassword          = "password"
	flagCACert            = "caCert"
	flagCert              = "cert"
	flagKey               = "key"
	flagTopicPrefix       = "topicPrefix"
	flagNSQD              = "nsqd"
	flagNSQLookupd        = "nsqLookupd"
	flagChannel           = "channel"
	flagFilter            = "filter"
	flagFilterFile        = "filterFile"
	flagNotificationTopic = "notificationTopic"
	flagMetricsAddr       = "metricsAddr"
)

var (
	commandDescription = "Command to execute. Allowed values are:" +
		"\n  'status' - fetch serials, endpoints, boards, firmware info and vehicle types" +
		"\n  'firmwares' - list the firmwares available for the vehicle type" +
		"\n  'install' - install the firmware found at the given URL" +
		"\n  'watch' - print the messages of a telemetry channel until interrupted"
)

// InitFlags registers the panel and log configuration flags with the given flag set.
// The current configuration values are used as flag defaults.
func InitFlags(flagSet *flag.FlagSet, cfg *BasicConfig) {
	// init log flags
	flagSet.StringVar(&cfg.LogLevel, flagLogLevel, cfg.LogLevel, "Log levels are ERROR, WARN, INFO, DEBUG, TRACE")
	flagSet.StringVar(&cfg.LogFile, flagLogFile, cfg.LogFile, "Log file location")
	flagSet.IntVar(&cfg.LogFileSize, flagLogFileSize, cfg.LogFileSize, "Log file size in MB before it gets rotated")
	flagSet.IntVar(&cfg.LogFileCount, flagLogFileCount, cfg.LogFileCount, "Log file max rotations count")
	flagSet.IntVar(&cfg.LogFileMaxAge, flagLogFileMaxAge, cfg.LogFileMaxAge, "Log file rotations max age in days")

	// init autopilot manager flags
	flagSet.StringVar(&cfg.Backend, flagBackend, cfg.Backend, "Autopilot manager API address")
	flagSet.StringVar(&cfg.ServerCert, flagServerCert, cfg.ServerCert, "A PEM encoded certificate 'file' for secure autopilot manager connection")
	flagSet.Var(&cfg.ReadTimeout, flagReadTimeout, "Timeout of informational requests, such as '10s'")
	flagSet.Var(&cfg.InstallTimeout, flagInstallTimeout, "Timeout of firmware install and firmware catalog requests, such as '30s'")
	flagSet.StringVar(&cfg.Command, flagCommand, cfg.Command, commandDescription)
	flagSet.StringVar(&cfg.Vehicle, flagVehicle, cfg.Vehicle, "Vehicle type of the firmware catalog. Defaults to the vehicle type of the running firmware")
	flagSet.StringVar(&cfg.URL, flagURL, cfg.URL, "Firmware URL to install")
	flagSet.BoolVar(&cfg.MakeDefault, flagMakeDefault, cfg.MakeDefault, "Make the installed firmware the default one")

	// init message relay flags
	flagSet.StringVar(&cfg.Transport, flagTransport, cfg.Transport, "Telemetry message transport: mqtt or nsq")
	flagSet.StringVar(&cfg.Broker, flagBroker, cfg.Broker, "MQTT broker address")
	flagSet.StringVar(&cfg.Username, flagUsername, cfg.Username, "Username that is a part of the credentials")
	flagSet.StringVar(&cfg.Password, flagPassword, cfg.Password, "Password that is a part of the credentials")
	flagSet.StringVar(&cfg.CACert, flagCACert, cfg.CACert, "A PEM encoded CA certificates file for MQTT broker connection")
	flagSet.StringVar(&cfg.Cert, flagCert, cfg.Cert, "A PEM encoded certificate file to authenticate to the MQTT server/broker")
	flagSet.StringVar(&cfg.Key, flagKey, cfg.Key, "A PEM encoded unencrypted private key file to authenticate to the MQTT server/broker")
	flagSet.StringVar(&cfg.TopicPrefix, flagTopicPrefix, cfg.TopicPrefix, "MQTT topic prefix of the telemetry channels")
	flagSet.StringVar(&cfg.NSQD, flagNSQD, cfg.NSQD, "nsqd TCP address")
	flagSet.Var(NewStringSliceV(&cfg.NSQLookupd), flagNSQLookupd, "Comma or space separated nsqlookupd HTTP addresses, preferred over nsqd")
	flagSet.StringVar(&cfg.Channel, flagChannel, cfg.Channel, "Telemetry channel to watch")
	flagSet.StringVar(&cfg.Filter, flagFilter, cfg.Filter, "Regular expression of the lines to print. Empty matches everything")
	flagSet.StringVar(&cfg.FilterFile, flagFilterFile, cfg.FilterFile, "File holding the filter expression, reloaded on change. Empty content is ignored")
	flagSet.StringVar(&cfg.NotificationTopic, flagNotificationTopic, cfg.NotificationTopic, "MQTT topic to publish notifications to")
	flagSet.StringVar(&cfg.MetricsAddr, flagMetricsAddr, cfg.MetricsAddr, "Address to serve Prometheus metrics on, such as ':9100'")

	flagSet.StringVar(&cfg.ConfigFile, flagConfigFile, cfg.ConfigFile, "Defines the configuration file")
}

// ParseConfigFilePath returns the value for configuration file path if set.
func ParseConfigFilePath() string {
	var cfgFilePath string
	flagSet := flag.NewFlagSet("", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&cfgFilePath, flagConfigFile, "", "Defines the configuration file")
	if err := flagSet.Parse(getFlagArgs(flagConfigFile)); err != nil {
		logger.Errorf("Cannot parse the configFile flag: %v", err)
	}
	return cfgFilePath
}

func getFlagArgs(flag string) []string {
	args := os.Args[1:]
	flag1 := "-" + flag
	flag2 := "--" + flag
	for index, arg := range args {
		if strings.HasPrefix(arg, flag1+"=") || strings.HasPrefix(arg, flag2+"=") {
			return []string{arg}
		}
		if (arg == flag1 || arg == flag2) && index < len(args)-1 {
			return args[index : index+2]
		}
	}
	return []string{}
}

func parseFlags(cfg *BasicConfig, version string) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagSet := flag.CommandLine

	InitFlags(flagSet, cfg)

	fVersion := flagSet.Bool(flagVersion, false, "Prints current version and exits")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		logger.Errorf("Cannot parse command flags: %v", err)
	}

	if *fVersion {
		fmt.Println(version)
		os.Exit(0)
	}
}

// LoadConfigFromFile reads the file contents and unmarshal them into the given config structure.
func LoadConfigFromFile(filePath string, config interface{}) error {
	if !isFile(filePath) {
		return fmt.Errorf("incorrect config file %s", filePath)
	}
	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(file, config)
}

// LoadConfig loads a new configuration instance using flags and config file (if set).
func LoadConfig(version string) (*BasicConfig, error) {
	configFilePath := ParseConfigFilePath()
	config := NewDefaultConfig()
	if configFilePath != "" {
		if err := LoadConfigFromFile(configFilePath, config); err != nil {
			return nil, err
		}
	}
	parseFlags(config, version)
	return config, nil
}
