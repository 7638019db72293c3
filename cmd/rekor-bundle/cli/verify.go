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

package cli

import (
	verifycmd "github.com/sigstore/rekor-bundle/cmd/rekor-bundle/cli/verify"
	"github.com/spf13/cobra"
)

func Verify() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a Rekor bundle against the log operator's public key.",
	}

	cmd.AddCommand(verifycmd.NewEntry(ro))
	cmd.AddCommand(verifycmd.NewArtifact(ro))
	return cmd
}
