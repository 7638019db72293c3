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

// Package canonical produces deterministic JSON serializations suitable as
// signature inputs.
//
// Two logically equal values always canonicalize to byte-identical output:
// object keys are sorted, no insignificant whitespace is emitted, numbers use
// a single fixed textual form, and strings use a fixed minimal escaping rule.
// The encoding matches the canonical JSON form used by Rekor when signing
// entry timestamps, so bytes produced here can be checked directly against a
// log operator's signature.
package canonical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Marshal returns the canonical JSON encoding of v.
//
// The value is first flattened through encoding/json (honoring its struct
// tags), then re-serialized deterministically. An error here indicates a
// value that cannot be represented in JSON (NaN, cycles, unsupported types),
// never a property of untrusted input.
func Marshal(v any) ([]byte, error) {
	switch value := v.(type) {
	case json.RawMessage:
		return Transform([]byte(value))
	case []byte:
		return Transform(value)
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("value is not JSON-representable: %w", err)
		}
		return Transform(b)
	}
}

// Transform canonicalizes an existing JSON document.
// Returns an error if the input is not a single well-formed JSON value.
func Transform(input []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := encodeValue(&buf, value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func expectEOF(dec *json.Decoder) error {
	if dec.More() {
		return errors.New("invalid JSON: trailing data")
	}
	return nil
}

func encodeValue(buf *bytes.Buffer, value any) error {
	switch v := value.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		encodeString(buf, v)
	case json.Number:
		return encodeNumber(buf, v)
	case map[string]any:
		return encodeObject(buf, v)
	case []any:
		return encodeArray(buf, v)
	default:
		return fmt.Errorf("unsupported JSON type %T", value)
	}
	return nil
}

func encodeObject(buf *bytes.Buffer, obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodeString(buf, k)
		buf.WriteByte(':')
		if err := encodeValue(buf, obj[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, arr []any) error {
	buf.WriteByte('[')
	for i, item := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, item); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

var hexLower = []byte("0123456789abcdef")

func encodeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexLower[r>>4])
				buf.WriteByte(hexLower[r&0x0f])
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

// encodeNumber emits integers exactly as written and normalizes everything
// else through the fixed shortest-float form. Int64 values such as log
// indexes and timestamps must never take the float path, which would lose
// precision above 2^53.
func encodeNumber(buf *bytes.Buffer, n json.Number) error {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			buf.WriteString(normalizeInteger(s))
			return nil
		}
	}

	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("invalid JSON number %q: %w", s, err)
	}
	out, err := formatFloat(f)
	if err != nil {
		return err
	}
	buf.WriteString(out)
	return nil
}

func normalizeInteger(s string) string {
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}
	if neg {
		return "-" + digits
	}
	return digits
}

// formatFloat renders a float the way ECMAScript Number#toString does, the
// number form required by RFC 8785.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errors.New("NaN and Infinity are not representable in JSON")
	}
	if f == 0 {
		return "0", nil
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	mantissa, exp := splitShortest(f)
	digits := strings.ReplaceAll(mantissa, ".", "")

	if exp <= -7 || exp >= 21 {
		if len(digits) == 1 {
			return sign + digits + "e" + formatExponent(exp), nil
		}
		return sign + digits[:1] + "." + digits[1:] + "e" + formatExponent(exp), nil
	}

	point := exp + 1
	switch {
	case point >= len(digits):
		return sign + digits + strings.Repeat("0", point-len(digits)), nil
	case point <= 0:
		return sign + "0." + strings.Repeat("0", -point) + digits, nil
	default:
		return sign + digits[:point] + "." + digits[point:], nil
	}
}

func formatExponent(exp int) string {
	if exp >= 0 {
		return "+" + strconv.Itoa(exp)
	}
	return strconv.Itoa(exp)
}

func splitShortest(f float64) (string, int) {
	s := strconv.FormatFloat(f, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[i+1:])
	return s[:i], exp
}
