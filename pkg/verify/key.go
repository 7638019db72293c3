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

package verify

import (
	"crypto"
	"fmt"
	"os"

	"github.com/sigstore/sigstore/pkg/cryptoutils"
)

// LoadPublicKey parses a PEM-encoded public key, such as the log operator's
// published Rekor key.
func LoadPublicKey(pemBytes []byte) (crypto.PublicKey, error) {
	pubKey, err := cryptoutils.UnmarshalPEMToPublicKey(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PEM public key: %w", err)
	}
	return pubKey, nil
}

// LoadPublicKeyFile reads and parses a PEM-encoded public key from a file.
func LoadPublicKeyFile(path string) (crypto.PublicKey, error) {
	if path == "" {
		return nil, fmt.Errorf("public key path is required")
	}
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key file: %w", err)
	}
	return LoadPublicKey(pemBytes)
}
