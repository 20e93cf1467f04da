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

import "sync"

// Store holds the latest value of every category fetched by the Client.
// Each setter replaces its slot wholesale. Empty slices and nil pointers are the reset sentinels.
type Store interface {
	SetSerials(serials []Serial)
	SetEndpoints(endpoints []Endpoint)
	SetAvailableBoards(boards []Board)
	SetCurrentBoard(board *Board)
	SetFirmwareInfo(info *FirmwareInfo)
	SetVehicleType(vehicleType *VehicleType)
	SetFirmwareVehicleType(vehicleType *VehicleType)
	SetAvailableFirmwares(firmwares []Firmware)
}

// Snapshot is a copy of the slots of a MemoryStore.
type Snapshot struct {
	Serials             []Serial      `json:"serials"`
	Endpoints           []Endpoint    `json:"endpoints"`
	AvailableBoards     []Board       `json:"availableBoards"`
	CurrentBoard        *Board        `json:"currentBoard"`
	FirmwareInfo        *FirmwareInfo `json:"firmwareInfo"`
	VehicleType         *VehicleType  `json:"vehicleType"`
	FirmwareVehicleType *VehicleType  `json:"firmwareVehicleType"`
	AvailableFirmwares  []Firmware    `json:"availableFirmwares"`
}

// MemoryStore is an in-memory Store safe for concurrent use.
type MemoryStore struct {
	lock  sync.RWMutex
	slots Snapshot
}

// NewMemoryStore returns a MemoryStore with every list slot empty and every single-value slot nil.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: Snapshot{
		Serials:            []Serial{},
		Endpoints:          []Endpoint{},
		AvailableBoards:    []Board{},
		AvailableFirmwares: []Firmware{},
	}}
}

// SetSerials replaces the serials slot.
func (s *MemoryStore) SetSerials(serials []Serial) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.slots.Serials = serials
}

// SetEndpoints replaces the endpoints slot.
func (s *MemoryStore) SetEndpoints(endpoints []Endpoint) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.slots.Endpoints = endpoints
}

// SetAvailableBoards replaces the available boards slot.
func (s *MemoryStore) SetAvailableBoards(boards []Board) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.slots.AvailableBoards = boards
}

// SetCurrentBoard replaces the current board slot.
func (s *MemoryStore) SetCurrentBoard(board *Board) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.slots.CurrentBoard = board
}

// SetFirmwareInfo replaces the firmware info slot.
func (s *MemoryStore) SetFirmwareInfo(info *FirmwareInfo) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.slots.FirmwareInfo = info
}

// SetVehicleType replaces the vehicle type slot.
func (s *MemoryStore) SetVehicleType(vehicleType *VehicleType) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.slots.VehicleType = vehicleType
}

// SetFirmwareVehicleType replaces the firmware vehicle type slot.
func (s *MemoryStore) SetFirmwareVehicleType(vehicleType *VehicleType) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.slots.FirmwareVehicleType = vehicleType
}

// SetAvailableFirmwares replaces the available firmwares slot.
func (s *MemoryStore) SetAvailableFirmwares(firmwares []Firmware) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.slots.AvailableFirmwares = firmwares
}

// Snapshot returns a copy of all slots.
func (s *MemoryStore) Snapshot() Snapshot {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return Snapshot{
		Serials:             append([]Serial{}, s.slots.Serials...),
		Endpoints:           append([]Endpoint{}, s.slots.Endpoints...),
		AvailableBoards:     append([]Board{}, s.slots.AvailableBoards...),
		CurrentBoard:        s.slots.CurrentBoard,
		FirmwareInfo:        s.slots.FirmwareInfo,
		VehicleType:         s.slots.VehicleType,
		FirmwareVehicleType: s.slots.FirmwareVehicleType,
		AvailableFirmwares:  append([]Firmware{}, s.slots.AvailableFirmwares...),
	}
}
