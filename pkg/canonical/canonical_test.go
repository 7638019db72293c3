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

package canonical

import (
	"testing"
)

func TestMarshal_SortsKeysAndStripsWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unsorted object",
			input: `{"z": 1, "a": 2, "m": 3}`,
			want:  `{"a":2,"m":3,"z":1}`,
		},
		{
			name:  "nested objects",
			input: `{"outer": {"b": true, "a": null}, "arr": [ {"y":1, "x":2} ]}`,
			want:  `{"arr":[{"x":2,"y":1}],"outer":{"a":null,"b":true}}`,
		},
		{
			name:  "key sort is byte order not case-insensitive",
			input: `{"logIndex": 1, "logID": "x", "integratedTime": 2, "body": "b"}`,
			want:  `{"body":"b","integratedTime":2,"logID":"x","logIndex":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transform([]byte(tt.input))
			if err != nil {
				t.Fatalf("Transform failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Transform = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	// Same logical content constructed in different insertion orders must
	// yield identical bytes.
	a := map[string]any{"body": "abc", "logIndex": int64(783606), "logID": "c0d2", "integratedTime": int64(1634714179)}
	b := map[string]any{"integratedTime": int64(1634714179), "logID": "c0d2", "logIndex": int64(783606), "body": "abc"}

	first, err := Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	second, err := Marshal(b)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("canonical output differs: %s vs %s", first, second)
	}

	// Repeated calls on the same value are stable.
	for i := 0; i < 10; i++ {
		again, err := Marshal(a)
		if err != nil {
			t.Fatalf("Marshal failed on iteration %d: %v", i, err)
		}
		if string(again) != string(first) {
			t.Errorf("iteration %d produced %s, want %s", i, again, first)
		}
	}
}

func TestMarshal_StructTags(t *testing.T) {
	type payload struct {
		Body           string `json:"body"`
		IntegratedTime int64  `json:"integratedTime"`
		LogIndex       int64  `json:"logIndex"`
		LogID          string `json:"logID"`
	}

	got, err := Marshal(payload{
		Body:           "ZGF0YQ==",
		IntegratedTime: 1634714179,
		LogIndex:       783606,
		LogID:          "c0d23d6a",
	})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"body":"ZGF0YQ==","integratedTime":1634714179,"logID":"c0d23d6a","logIndex":783606}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestMarshal_Int64Precision(t *testing.T) {
	// Values above 2^53 must not round-trip through float64.
	got, err := Transform([]byte(`{"n": 9223372036854775807}`))
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	want := `{"n":9223372036854775807}`
	if string(got) != want {
		t.Errorf("Transform = %s, want %s", got, want)
	}
}

func TestMarshal_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`0`, `0`},
		{`-0`, `0`},
		{`10`, `10`},
		{`-42`, `-42`},
		{`1.5`, `1.5`},
		{`0.001`, `0.001`},
		{`1e21`, `1e+21`},
		{`1e-7`, `1e-7`},
		{`333333333.33333329`, `333333333.3333333`},
	}

	for _, tt := range tests {
		got, err := Transform([]byte(tt.input))
		if err != nil {
			t.Errorf("Transform(%s) failed: %v", tt.input, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("Transform(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestMarshal_StringEscaping(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "quotes backslash and short escapes",
			input: "a\"b\\c\nd\te",
			want:  `{"s":"a\"b\\c\nd\te"}`,
		},
		{
			name:  "control characters use \\u escapes",
			input: "a\x01b\x1fc",
			want:  `{"s":"a\u0001b\u001fc"}`,
		},
		{
			name:  "non-ASCII passes through unescaped",
			input: "caf\u00e9",
			want:  "{\"s\":\"caf\u00e9\"}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(map[string]any{"s": tt.input})
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTransform_RejectsMalformedInput(t *testing.T) {
	for _, input := range []string{``, `{`, `{"a":}`, `{"a":1} trailing`, `[1,]`} {
		if _, err := Transform([]byte(input)); err == nil {
			t.Errorf("Transform(%q) succeeded, want error", input)
		}
	}
}

func TestMarshal_UnrepresentableValue(t *testing.T) {
	if _, err := Marshal(make(chan int)); err == nil {
		t.Error("Marshal(chan) succeeded, want error")
	}
}
