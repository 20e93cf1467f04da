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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	panel "github.com/eclipse-kanto/autopilot-panel/internal"
	"github.com/eclipse-kanto/autopilot-panel/internal/logger"
)

var version = "N/A"

func main() {
	// Initialize flags.
	cfg, err := panel.LoadConfig(version)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// Initialize logs.
	loggerOut := logger.SetupLogger(&cfg.LogConfig)
	defer loggerOut.Close()

	if err := cfg.Validate(); err != nil {
		logger.Errorf("failed to validate autopilot panel configuration: %v\n", err)
		loggerOut.Close()
		os.Exit(1)
	}
	logger.Infof("autopilot panel configuration: %v", cfg.PanelConfig)

	p, err := panel.NewPanel(&cfg.PanelConfig, os.Stdout)
	if err != nil {
		logger.Errorf("failed to create autopilot panel: %v", err)
		loggerOut.Close()
		os.Exit(1)
	}
	defer p.Close() // not nil

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx); err != nil {
		logger.Errorf("%s command failed: %v", cfg.Command, err)
		fmt.Fprintln(os.Stderr, err)
		p.Close()
		loggerOut.Close()
		os.Exit(1)
	}
}
