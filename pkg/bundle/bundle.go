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

// Package bundle defines the typed model of a Rekor transparency-log bundle
// and strict structural decoding of its JSON wire form.
//
// Decoding performs no cryptography and makes no trust determination: a
// decoded Bundle is untrusted data until it passes verification (see
// pkg/verify). Values are never mutated after construction.
package bundle

import (
	"encoding/base64"
	"encoding/json"

	"github.com/sigstore/rekor-bundle/pkg/canonical"
)

// Payload is the inner record covered by the log operator's signature.
//
// The wire keys are fixed by the Rekor API: lower-camel-case throughout,
// except logID which keeps the log operator's historical capitalization.
// Changing any of these tags breaks signature verification for every
// previously issued bundle.
type Payload struct {
	// Body is the base64-encoded entry record. It is opaque at this layer;
	// see DecodeBody for structural inspection.
	Body string `json:"body"`
	// IntegratedTime is the time the entry was added to the log, in seconds
	// since the Unix epoch.
	IntegratedTime int64 `json:"integratedTime"`
	// LogIndex is the entry's monotonically-assigned position in the log.
	LogIndex int64 `json:"logIndex"`
	// LogID identifies the log shard that issued the entry.
	LogID string `json:"logID"`
}

// Canonicalize returns the canonical JSON bytes of the payload, the exact
// message the log operator signed. An error indicates an internal defect,
// never a property of the input.
func (p Payload) Canonicalize() ([]byte, error) {
	out, err := canonical.Marshal(p)
	if err != nil {
		return nil, NewError(ErrTypeInternal, "cannot canonicalize payload", err)
	}
	return out, nil
}

// Bundle is a signed log entry: the log operator's signature over the
// canonical form of Payload. The two outer keys use fixed PascalCase, as
// emitted by the Rekor API.
type Bundle struct {
	// SignedEntryTimestamp is the base64-encoded signature over the
	// canonical serialization of Payload.
	SignedEntryTimestamp string `json:"SignedEntryTimestamp"`
	// Payload is the signed record.
	Payload Payload `json:"Payload"`
}

// SignatureBytes returns the decoded SignedEntryTimestamp signature.
func (b Bundle) SignatureBytes() ([]byte, error) {
	sig, err := base64.StdEncoding.DecodeString(b.SignedEntryTimestamp)
	if err != nil {
		return nil, NewFieldError(ErrTypeDecode, "SignedEntryTimestamp", "signature is not valid base64", err)
	}
	return sig, nil
}

// SignedArtifactBundle is the outer wrapper produced by cosign sign-blob:
// an artifact signature and certificate alongside the Rekor bundle proving
// log inclusion.
//
// Only the embedded RekorBundle is verified by this library. Checking
// Base64Signature against the artifact and validating Cert's chain are the
// caller's responsibility.
type SignedArtifactBundle struct {
	// Base64Signature is the signature over the artifact itself.
	Base64Signature string `json:"base64Signature"`
	// Cert is the signer's PEM certificate material, base64-encoded.
	Cert string `json:"cert"`
	// RekorBundle is the transparency-log entry for the artifact signature.
	RekorBundle Bundle `json:"rekorBundle"`
}

// Wire shapes use pointer fields so absent keys are distinguishable from
// zero values.
type payloadWire struct {
	Body           *string `json:"body"`
	IntegratedTime *int64  `json:"integratedTime"`
	LogIndex       *int64  `json:"logIndex"`
	LogID          *string `json:"logID"`
}

type bundleWire struct {
	SignedEntryTimestamp *string      `json:"SignedEntryTimestamp"`
	Payload              *payloadWire `json:"Payload"`
}

type artifactBundleWire struct {
	Base64Signature *string     `json:"base64Signature"`
	Cert            *string     `json:"cert"`
	RekorBundle     *bundleWire `json:"rekorBundle"`
}

// DecodeBundle parses a Rekor bundle from its JSON wire form.
//
// All fields are required and type-checked, and SignedEntryTimestamp must be
// valid base64. Any violation yields an ErrTypeDecode error. The returned
// bundle is structurally valid but NOT verified; obtain trust through
// verify.NewVerifiedLogEntry.
func DecodeBundle(raw []byte) (*Bundle, error) {
	var wire bundleWire
	if err := strictUnmarshal(raw, &wire); err != nil {
		return nil, err
	}
	return bundleFromWire(&wire)
}

// DecodeSignedArtifactBundle parses a signed artifact bundle from its JSON
// wire form, applying the same structural checks as DecodeBundle to the
// embedded rekorBundle.
func DecodeSignedArtifactBundle(raw []byte) (*SignedArtifactBundle, error) {
	var wire artifactBundleWire
	if err := strictUnmarshal(raw, &wire); err != nil {
		return nil, err
	}

	if wire.Base64Signature == nil {
		return nil, missingField("base64Signature")
	}
	if wire.Cert == nil {
		return nil, missingField("cert")
	}
	if wire.RekorBundle == nil {
		return nil, missingField("rekorBundle")
	}

	rekorBundle, err := bundleFromWire(wire.RekorBundle)
	if err != nil {
		return nil, err
	}

	return &SignedArtifactBundle{
		Base64Signature: *wire.Base64Signature,
		Cert:            *wire.Cert,
		RekorBundle:     *rekorBundle,
	}, nil
}

func bundleFromWire(wire *bundleWire) (*Bundle, error) {
	if wire.SignedEntryTimestamp == nil {
		return nil, missingField("SignedEntryTimestamp")
	}
	if wire.Payload == nil {
		return nil, missingField("Payload")
	}

	p := wire.Payload
	if p.Body == nil {
		return nil, missingField("Payload.body")
	}
	if p.IntegratedTime == nil {
		return nil, missingField("Payload.integratedTime")
	}
	if p.LogIndex == nil {
		return nil, missingField("Payload.logIndex")
	}
	if p.LogID == nil {
		return nil, missingField("Payload.logID")
	}

	b := &Bundle{
		SignedEntryTimestamp: *wire.SignedEntryTimestamp,
		Payload: Payload{
			Body:           *p.Body,
			IntegratedTime: *p.IntegratedTime,
			LogIndex:       *p.LogIndex,
			LogID:          *p.LogID,
		},
	}

	// Malformed signature encoding is a structural defect of the input, so
	// it is rejected here rather than at verification time.
	if _, err := b.SignatureBytes(); err != nil {
		return nil, err
	}
	return b, nil
}

func strictUnmarshal(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
			return NewFieldError(ErrTypeDecode, typeErr.Field, "wrong JSON type for field", err)
		}
		return NewError(ErrTypeDecode, "cannot parse bundle JSON", err)
	}
	return nil
}

func missingField(field string) *VerificationError {
	return NewFieldError(ErrTypeDecode, field, "required field is missing", nil)
}
