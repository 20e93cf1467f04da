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

package transport

import (
	"bytes"
	"encoding/json"

	"github.com/eclipse-kanto/autopilot-panel/monitor"
)

// decodePayload reads a {"text": "..."} JSON payload. Any other payload is taken as the text itself.
func decodePayload(data []byte) monitor.Payload {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		payload := &struct {
			Text *string `json:"text"`
		}{}
		if err := json.Unmarshal(trimmed, payload); err == nil && payload.Text != nil {
			return monitor.Payload{Text: *payload.Text}
		}
	}
	return monitor.Payload{Text: string(bytes.TrimRight(data, "\r\n"))}
}
