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

// Package verify implements the verify subcommands of the rekor-bundle CLI.
package verify

import (
	"crypto"
	"fmt"
	"os"

	"github.com/sigstore/rekor-bundle/cmd/rekor-bundle/cli/options"
	"github.com/sigstore/rekor-bundle/pkg/bundle"
	"github.com/sigstore/rekor-bundle/pkg/logging"
	"github.com/sigstore/rekor-bundle/pkg/verify"
	"github.com/spf13/cobra"
)

func NewEntry(ro *options.RootOptions) *cobra.Command {
	o := &options.VerifyFlags{}
	long := `Verify a Rekor log entry bundle.

Checks that the bundle's SignedEntryTimestamp is a valid signature by the
log operator over the canonical form of the bundle's payload. The public
key provided via --rekor-public-key must be the log operator's key; for
the public-good instance it is published at rekor.sigstore.dev.

The command exits non-zero on any decode or verification failure. A
signature mismatch means the bundle was not issued by the holder of the
supplied key, or was modified after issuance.`

	cmd := &cobra.Command{
		Use:   "entry [OPTIONS] BUNDLE_PATH",
		Short: "Verify a Rekor log entry bundle.",
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			logger := ro.NewLogger()

			raw, pubKey, err := loadInputs(logger, args[0], o.PublicKeyPath)
			if err != nil {
				return err
			}

			entry, err := verify.NewVerifiedLogEntry(raw, pubKey)
			if err != nil {
				return err
			}

			reportEntry(logger, entry.Payload(), o.ShowBody)
			fmt.Println("Verification succeeded")
			return nil
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func loadInputs(logger logging.Logger, bundlePath, keyPath string) ([]byte, crypto.PublicKey, error) {
	raw, err := os.ReadFile(bundlePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read bundle file: %w", err)
	}
	logger.Debug("read bundle %s (%d bytes)", bundlePath, len(raw))

	pubKey, err := verify.LoadPublicKeyFile(keyPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("loaded public key from %s", keyPath)

	return raw, pubKey, nil
}

func reportEntry(logger logging.Logger, payload bundle.Payload, showBody bool) {
	logger = logger.WithField("logIndex", payload.LogIndex).
		WithField("logID", payload.LogID)
	logger.Info("entry integrated at %d", payload.IntegratedTime)

	if !showBody {
		return
	}
	body, err := payload.DecodeBody()
	if err != nil {
		logger.Warn("cannot decode entry body: %v", err)
		return
	}
	logger.Info("entry kind %s (apiVersion %s)", body.Kind, body.APIVersion)
	logger.Debug("entry spec: %s", body.Spec)
}
