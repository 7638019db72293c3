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

// Package verify decides whether a decoded Rekor bundle is authentic.
//
// The only way to obtain a trusted bundle value is through
// NewVerifiedLogEntry or NewVerifiedArtifactBundle; a bare bundle.Bundle
// carries no proof of trust. All operations are pure computations over
// in-memory values and are safe to call concurrently.
package verify

import (
	"bytes"
	"crypto"

	"github.com/sigstore/rekor-bundle/pkg/bundle"
)

// VerifyLogEntry checks the bundle's SignedEntryTimestamp against the
// canonical serialization of its payload under the log operator's public key.
//
// Returns nil only if the signature validates. A mismatch yields an
// ErrTypeSignatureMismatch error; a canonicalization failure yields
// ErrTypeInternal; an unusable key yields ErrTypeConfiguration. Verification
// is a pure predicate: repeated calls on the same inputs return the same
// result, so retrying is never useful.
func VerifyLogEntry(b *bundle.Bundle, pubKey crypto.PublicKey) error {
	sig, err := b.SignatureBytes()
	if err != nil {
		return err
	}

	message, err := b.Payload.Canonicalize()
	if err != nil {
		return err
	}

	verifier, err := CreateSignatureVerifier(pubKey)
	if err != nil {
		return bundle.NewError(bundle.ErrTypeConfiguration, "cannot build verifier for public key", err)
	}

	if err := verifier.VerifySignature(bytes.NewReader(sig), bytes.NewReader(message)); err != nil {
		return bundle.NewError(bundle.ErrTypeSignatureMismatch,
			"signed entry timestamp does not match payload under the supplied key", err)
	}
	return nil
}

// VerifiedLogEntry is a log entry that passed signature verification.
//
// The zero value is useless: instances can only be produced by
// NewVerifiedLogEntry, so holding one is proof that verification succeeded
// at construction time. Copies made through other means carry no such proof.
type VerifiedLogEntry struct {
	b bundle.Bundle
}

// Bundle returns a copy of the verified bundle.
func (e *VerifiedLogEntry) Bundle() bundle.Bundle {
	return e.b
}

// Payload returns a copy of the verified payload.
func (e *VerifiedLogEntry) Payload() bundle.Payload {
	return e.b.Payload
}

// NewVerifiedLogEntry decodes a Rekor bundle from raw JSON and verifies it
// against the log operator's public key. This is the sole constructor of
// trusted log entries.
func NewVerifiedLogEntry(raw []byte, pubKey crypto.PublicKey) (*VerifiedLogEntry, error) {
	b, err := bundle.DecodeBundle(raw)
	if err != nil {
		return nil, err
	}
	if err := VerifyLogEntry(b, pubKey); err != nil {
		return nil, err
	}
	return &VerifiedLogEntry{b: *b}, nil
}

// VerifiedArtifactBundle is a signed artifact bundle whose embedded Rekor
// bundle passed signature verification.
//
// The artifact signature and certificate are passed through UNVERIFIED:
// checking them against the artifact and a trust root is the caller's
// responsibility.
type VerifiedArtifactBundle struct {
	sab bundle.SignedArtifactBundle
}

// ArtifactBundle returns a copy of the decoded artifact bundle.
func (a *VerifiedArtifactBundle) ArtifactBundle() bundle.SignedArtifactBundle {
	return a.sab
}

// RekorEntry returns the verified embedded log entry.
func (a *VerifiedArtifactBundle) RekorEntry() VerifiedLogEntry {
	return VerifiedLogEntry{b: a.sab.RekorBundle}
}

// NewVerifiedArtifactBundle decodes a signed artifact bundle from raw JSON
// and verifies its embedded rekorBundle against the log operator's public
// key. Construction succeeds only if that verification passes.
func NewVerifiedArtifactBundle(raw []byte, pubKey crypto.PublicKey) (*VerifiedArtifactBundle, error) {
	sab, err := bundle.DecodeSignedArtifactBundle(raw)
	if err != nil {
		return nil, err
	}
	if err := VerifyLogEntry(&sab.RekorBundle, pubKey); err != nil {
		return nil, err
	}
	return &VerifiedArtifactBundle{sab: *sab}, nil
}
