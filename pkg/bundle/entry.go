// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bundle

import (
	"encoding/base64"
	"encoding/json"
)

// EntryBody is the decoded form of Payload.Body: the proposed-entry envelope
// Rekor stores for an entry (rekord, hashedrekord, intoto, ...).
//
// Decoding the body is a convenience for inspection and display. The body
// stays opaque for signature purposes, and nothing here contributes to the
// trust decision.
type EntryBody struct {
	// APIVersion is the entry schema version, e.g. "0.0.1".
	APIVersion string `json:"apiVersion"`
	// Kind names the entry type, e.g. "rekord" or "hashedrekord".
	Kind string `json:"kind"`
	// Spec is the kind-specific entry content, left raw.
	Spec json.RawMessage `json:"spec"`
}

// DecodeBody decodes the payload's opaque body into its entry envelope.
// Returns an ErrTypeDecode error if the body is not base64 or the decoded
// record is not a well-formed entry.
func (p Payload) DecodeBody() (*EntryBody, error) {
	raw, err := base64.StdEncoding.DecodeString(p.Body)
	if err != nil {
		return nil, NewFieldError(ErrTypeDecode, "Payload.body", "body is not valid base64", err)
	}

	var wire struct {
		APIVersion *string         `json:"apiVersion"`
		Kind       *string         `json:"kind"`
		Spec       json.RawMessage `json:"spec"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, NewFieldError(ErrTypeDecode, "Payload.body", "body is not a JSON entry record", err)
	}
	if wire.APIVersion == nil {
		return nil, missingField("Payload.body.apiVersion")
	}
	if wire.Kind == nil {
		return nil, missingField("Payload.body.kind")
	}
	if len(wire.Spec) == 0 {
		return nil, missingField("Payload.body.spec")
	}

	return &EntryBody{
		APIVersion: *wire.APIVersion,
		Kind:       *wire.Kind,
		Spec:       wire.Spec,
	}, nil
}
