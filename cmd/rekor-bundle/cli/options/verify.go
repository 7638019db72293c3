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

package options

import (
	"github.com/spf13/cobra"
)

// VerifyFlags contains flags shared by the entry and artifact verify
// commands.
type VerifyFlags struct {
	// PublicKeyPath is the path to the log operator's PEM public key.
	PublicKeyPath string
	// ShowBody controls whether the decoded entry body is printed after a
	// successful verification.
	ShowBody bool
}

var _ FlagAdder = (*VerifyFlags)(nil)

// AddFlags adds the shared verification flags to the cobra command.
func (o *VerifyFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.PublicKeyPath, "rekor-public-key", "",
		"Location of the log operator's PEM public key.")
	_ = cmd.MarkFlagRequired("rekor-public-key")
	_ = cmd.MarkFlagFilename("rekor-public-key", "pem", "pub")

	cmd.Flags().BoolVar(&o.ShowBody, "show-body", false,
		"Print the decoded entry body after successful verification.")
}
