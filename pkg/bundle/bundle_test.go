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
	"os"
	"testing"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}
	return raw
}

func TestDecodeBundle_Valid(t *testing.T) {
	raw := readFixture(t, "bundle.json")

	b, err := DecodeBundle(raw)
	if err != nil {
		t.Fatalf("DecodeBundle failed: %v", err)
	}

	if b.Payload.LogIndex != 783606 {
		t.Errorf("logIndex = %d, want 783606", b.Payload.LogIndex)
	}
	if b.Payload.IntegratedTime != 1634714179 {
		t.Errorf("integratedTime = %d, want 1634714179", b.Payload.IntegratedTime)
	}
	if b.Payload.LogID != "c0d23d6ad406973f9559f3ba2d1ca01f84147d8ffc5b8445c224f98b9591801d" {
		t.Errorf("unexpected logID %q", b.Payload.LogID)
	}
	if b.SignedEntryTimestamp == "" {
		t.Error("SignedEntryTimestamp is empty")
	}
	if _, err := b.SignatureBytes(); err != nil {
		t.Errorf("SignatureBytes failed: %v", err)
	}
}

func TestDecodeBundle_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "missing SignedEntryTimestamp",
			input: `{"Payload": {"body": "YQ==", "integratedTime": 1, "logIndex": 2, "logID": "abc"}}`,
		},
		{
			name:  "missing Payload",
			input: `{"SignedEntryTimestamp": "YQ=="}`,
		},
		{
			name:  "missing body",
			input: `{"SignedEntryTimestamp": "YQ==", "Payload": {"integratedTime": 1, "logIndex": 2, "logID": "abc"}}`,
		},
		{
			name:  "missing integratedTime",
			input: `{"SignedEntryTimestamp": "YQ==", "Payload": {"body": "YQ==", "logIndex": 2, "logID": "abc"}}`,
		},
		{
			name:  "missing logIndex",
			input: `{"SignedEntryTimestamp": "YQ==", "Payload": {"body": "YQ==", "integratedTime": 1, "logID": "abc"}}`,
		},
		{
			name:  "missing logID",
			input: `{"SignedEntryTimestamp": "YQ==", "Payload": {"body": "YQ==", "integratedTime": 1, "logIndex": 2}}`,
		},
		{
			name:  "empty object",
			input: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBundle([]byte(tt.input))
			if err == nil {
				t.Fatal("DecodeBundle succeeded, want decode error")
			}
			if !IsType(err, ErrTypeDecode) {
				t.Errorf("error type = %v, want ErrTypeDecode", err)
			}
		})
	}
}

func TestDecodeBundle_WrongFieldTypes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "logIndex as string",
			input: `{"SignedEntryTimestamp": "YQ==", "Payload": {"body": "YQ==", "integratedTime": 1, "logIndex": "2", "logID": "abc"}}`,
		},
		{
			name:  "Payload as array",
			input: `{"SignedEntryTimestamp": "YQ==", "Payload": []}`,
		},
		{
			name:  "SignedEntryTimestamp as number",
			input: `{"SignedEntryTimestamp": 42, "Payload": {"body": "YQ==", "integratedTime": 1, "logIndex": 2, "logID": "abc"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBundle([]byte(tt.input))
			if !IsType(err, ErrTypeDecode) {
				t.Errorf("error = %v, want ErrTypeDecode", err)
			}
		})
	}
}

func TestDecodeBundle_MalformedJSON(t *testing.T) {
	for _, input := range []string{``, `not json`, `{"SignedEntryTimestamp": `} {
		if _, err := DecodeBundle([]byte(input)); !IsType(err, ErrTypeDecode) {
			t.Errorf("DecodeBundle(%q) error = %v, want ErrTypeDecode", input, err)
		}
	}
}

func TestDecodeBundle_InvalidSignatureBase64(t *testing.T) {
	input := `{"SignedEntryTimestamp": "!!not-base64!!", "Payload": {"body": "YQ==", "integratedTime": 1, "logIndex": 2, "logID": "abc"}}`
	_, err := DecodeBundle([]byte(input))
	if !IsType(err, ErrTypeDecode) {
		t.Errorf("error = %v, want ErrTypeDecode", err)
	}
}

func TestDecodeSignedArtifactBundle_MissingFields(t *testing.T) {
	inner := `{"SignedEntryTimestamp": "YQ==", "Payload": {"body": "YQ==", "integratedTime": 1, "logIndex": 2, "logID": "abc"}}`

	tests := []struct {
		name  string
		input string
	}{
		{name: "missing base64Signature", input: `{"cert": "x", "rekorBundle": ` + inner + `}`},
		{name: "missing cert", input: `{"base64Signature": "x", "rekorBundle": ` + inner + `}`},
		{name: "missing rekorBundle", input: `{"base64Signature": "x", "cert": "y"}`},
		{name: "rekorBundle missing payload", input: `{"base64Signature": "x", "cert": "y", "rekorBundle": {"SignedEntryTimestamp": "YQ=="}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSignedArtifactBundle([]byte(tt.input))
			if !IsType(err, ErrTypeDecode) {
				t.Errorf("error = %v, want ErrTypeDecode", err)
			}
		})
	}
}

func TestDecodeSignedArtifactBundle_Valid(t *testing.T) {
	inner := `{"SignedEntryTimestamp": "YQ==", "Payload": {"body": "YQ==", "integratedTime": 1, "logIndex": 2, "logID": "abc"}}`
	input := `{"base64Signature": "c2ln", "cert": "Y2VydA==", "rekorBundle": ` + inner + `}`

	sab, err := DecodeSignedArtifactBundle([]byte(input))
	if err != nil {
		t.Fatalf("DecodeSignedArtifactBundle failed: %v", err)
	}
	if sab.Base64Signature != "c2ln" {
		t.Errorf("base64Signature = %q", sab.Base64Signature)
	}
	if sab.RekorBundle.Payload.LogIndex != 2 {
		t.Errorf("embedded logIndex = %d, want 2", sab.RekorBundle.Payload.LogIndex)
	}
}

func TestPayload_Canonicalize(t *testing.T) {
	p := Payload{
		Body:           "ZGF0YQ==",
		IntegratedTime: 1634714179,
		LogIndex:       783606,
		LogID:          "c0d23d6a",
	}

	got, err := p.Canonicalize()
	if err != nil {
		t.Fatalf("Canonicalize failed: %v", err)
	}

	want := `{"body":"ZGF0YQ==","integratedTime":1634714179,"logID":"c0d23d6a","logIndex":783606}`
	if string(got) != want {
		t.Errorf("Canonicalize = %s, want %s", got, want)
	}
}

func TestPayload_DecodeBody(t *testing.T) {
	raw := readFixture(t, "bundle.json")
	b, err := DecodeBundle(raw)
	if err != nil {
		t.Fatalf("DecodeBundle failed: %v", err)
	}

	entry, err := b.Payload.DecodeBody()
	if err != nil {
		t.Fatalf("DecodeBody failed: %v", err)
	}
	if entry.Kind != "rekord" {
		t.Errorf("kind = %q, want rekord", entry.Kind)
	}
	if entry.APIVersion != "0.0.1" {
		t.Errorf("apiVersion = %q, want 0.0.1", entry.APIVersion)
	}
	if len(entry.Spec) == 0 {
		t.Error("spec is empty")
	}
}

func TestPayload_DecodeBody_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not base64", body: "!!!"},
		// "not json"
		{name: "not JSON", body: "bm90IGpzb24="},
		// {"apiVersion":"0.0.1","spec":{}}
		{name: "missing kind", body: "eyJhcGlWZXJzaW9uIjoiMC4wLjEiLCJzcGVjIjp7fX0="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Payload{Body: tt.body, IntegratedTime: 1, LogIndex: 2, LogID: "abc"}
			if _, err := p.DecodeBody(); !IsType(err, ErrTypeDecode) {
				t.Errorf("error = %v, want ErrTypeDecode", err)
			}
		})
	}
}
