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
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// VehicleType identifies the kind of craft an autopilot firmware targets.
type VehicleType string

// Known vehicle types.
const (
	VehicleSub     VehicleType = "Sub"
	VehicleRover   VehicleType = "Rover"
	VehiclePlane   VehicleType = "Plane"
	VehicleCopter  VehicleType = "Copter"
	VehicleHeli    VehicleType = "Heli"
	VehicleBoat    VehicleType = "Boat"
	VehicleUnknown VehicleType = "Unknown"
)

var knownVehicleTypes = []VehicleType{
	VehicleSub, VehicleRover, VehiclePlane, VehicleCopter, VehicleHeli, VehicleBoat, VehicleUnknown,
}

// ParseVehicleType returns the known vehicle type matching the given name.
func ParseVehicleType(name string) (VehicleType, error) {
	for _, vt := range knownVehicleTypes {
		if string(vt) == name {
			return vt, nil
		}
	}
	return "", fmt.Errorf("unknown vehicle type %q", name)
}

// Serial describes a serial port configuration of the autopilot manager.
type Serial struct {
	Port     string `json:"port"`
	Endpoint string `json:"endpoint"`
}

// Endpoint describes a MAVLink endpoint exposed by the autopilot manager.
type Endpoint struct {
	Name           string `json:"name"`
	Owner          string `json:"owner"`
	ConnectionType string `json:"connection_type"`
	Place          string `json:"place"`
	Argument       *int   `json:"argument,omitempty"`
	Persistent     bool   `json:"persistent"`
	Protected      bool   `json:"protected"`
	Enabled        bool   `json:"enabled"`
}

// Board describes a detected autopilot board.
type Board struct {
	Name           string `json:"name"`
	Manufacturer   string `json:"manufacturer"`
	MavlinkBoardID int    `json:"mavlink_board_id"`
	Path           string `json:"path,omitempty"`
	Platform       string `json:"platform"`
}

// Firmware is an entry of the firmware catalog.
type Firmware struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FirmwareInfo holds the version and build type of the running firmware.
// Version is never nil for a record held by a Store.
type FirmwareInfo struct {
	Version *semver.Version `json:"version"`
	Type    string          `json:"type"`
}

type firmwareInfoPayload struct {
	Version string `json:"version"`
	Type    string `json:"type"`
}

// UnmarshalJSON parses the version string into a semantic version.
func (fi *FirmwareInfo) UnmarshalJSON(b []byte) error {
	payload := &firmwareInfoPayload{}
	if err := json.Unmarshal(b, payload); err != nil {
		return err
	}
	version, err := semver.NewVersion(payload.Version)
	if err != nil {
		return fmt.Errorf("invalid firmware version %q: %v", payload.Version, err)
	}
	fi.Version = version
	fi.Type = payload.Type
	return nil
}

// MarshalJSON writes the version back in its string form.
func (fi FirmwareInfo) MarshalJSON() ([]byte, error) {
	payload := firmwareInfoPayload{Type: fi.Type}
	if fi.Version != nil {
		payload.Version = fi.Version.String()
	}
	return json.Marshal(payload)
}
