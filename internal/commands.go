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
	"encoding/json"
	"fmt"
	"sync"

	"github.com/eclipse-kanto/autopilot-panel/autopilot"
	"github.com/eclipse-kanto/autopilot-panel/internal/logger"
	"github.com/eclipse-kanto/autopilot-panel/monitor"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// status refreshes every informational slot of the store and prints the snapshot.
// Informational failures are recoverable, they are reported as notifications and leave their slot reset.
func (p *Panel) status(ctx context.Context) error {
	fetches := []func(context.Context) error{
		func(ctx context.Context) error { return p.client.Serials(ctx).Err() },
		func(ctx context.Context) error { return p.client.Endpoints(ctx).Err() },
		func(ctx context.Context) error { return p.client.AvailableBoards(ctx).Err() },
		func(ctx context.Context) error { return p.client.CurrentBoard(ctx).Err() },
		func(ctx context.Context) error { return p.client.FirmwareInfo(ctx).Err() },
		func(ctx context.Context) error { return p.client.VehicleType(ctx).Err() },
		func(ctx context.Context) error { return p.client.FirmwareVehicleType(ctx).Err() },
	}

	var (
		group    errgroup.Group
		lock     sync.Mutex
		failures *multierror.Error
	)
	for _, fetch := range fetches {
		fetch := fetch
		group.Go(func() error {
			if err := fetch(ctx); err != nil {
				lock.Lock()
				failures = multierror.Append(failures, err)
				lock.Unlock()
			}
			return nil
		})
	}
	_ = group.Wait()

	if failures.ErrorOrNil() != nil {
		logger.Warnf("%d of %d status requests failed: %v", failures.Len(), len(fetches), failures)
	}
	return p.printJSON(p.store.Snapshot())
}

// firmwares prints the firmware catalog of the configured vehicle type, or of the running firmware's one.
func (p *Panel) firmwares(ctx context.Context) error {
	var vehicle autopilot.VehicleType
	if p.cfg.Vehicle != "" {
		parsed, err := autopilot.ParseVehicleType(p.cfg.Vehicle)
		if err != nil {
			return err
		}
		vehicle = parsed
	} else {
		current, err := p.client.FirmwareVehicleType(ctx).Unwrap()
		if err != nil {
			return fmt.Errorf("cannot determine the vehicle type: %w", err)
		}
		if current == nil {
			return fmt.Errorf("cannot determine the vehicle type: no vehicle type reported")
		}
		vehicle = *current
	}

	firmwares, err := p.client.AvailableFirmwares(ctx, vehicle).Unwrap()
	if err != nil {
		return err
	}
	return p.printJSON(firmwares)
}

// install installs the firmware found at the configured URL.
func (p *Panel) install(ctx context.Context) error {
	result := p.client.InstallFirmwareFromURL(ctx, p.cfg.URL, autopilot.WithMakeDefault(p.cfg.MakeDefault))
	if !result.OK() {
		return result.Err()
	}
	p.printf("firmware installed from %s\n", p.cfg.URL)
	return nil
}

// watch prints the filtered lines of the configured channel until ctx is done.
func (p *Panel) watch(ctx context.Context) error {
	display, err := monitor.NewDisplay(p.subscriber, p.cfg.Channel,
		monitor.WithFilter(p.cfg.Filter),
		monitor.WithListener(func(line string) {
			p.printf("%s\n", line)
		}))
	if err != nil {
		return err
	}
	defer func() {
		if err := display.Close(); err != nil {
			logger.Warnf("failed to release %s channel: %v", p.cfg.Channel, err)
		}
		logger.Infof("%d lines received on %s channel", len(display.History()), p.cfg.Channel)
	}()

	if p.cfg.FilterFile != "" {
		done, err := watchFilter(p.cfg.FilterFile, display)
		if err != nil {
			return err
		}
		defer close(done)
	}

	logger.Infof("watching %s channel with filter %q", display.Channel(), display.Filter())
	<-ctx.Done()
	return nil
}

func (p *Panel) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	p.printf("%s\n", data)
	return nil
}
