// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"strings"
	"testing"
)

// wireRoundTrip asserts encode(decode(raw)) == raw, the invariant that must
// hold for every well-formed frame except dict/set member ordering.
func wireRoundTrip(t *testing.T, raw string) {
	t.Helper()
	f, err := NewDecoder(strings.NewReader(raw)).Decode()
	if err != nil {
		t.Fatalf("decode(%q): %v", raw, err)
	}
	if got := string(EncodeBytes(f)); got != raw {
		t.Fatalf("wire round trip: decode(%q) re-encoded as %q", raw, got)
	}
}

func TestWireRoundTrip(t *testing.T) {
	cases := []string{
		"+OK\r\n",
		"-bad request\r\n",
		":42\r\n",
		":-7\r\n",
		":3.5\r\n",
		"$-1\r\n",
		"$5\r\nhello\r\n",
		"$0\r\n\r\n",
		"^-1\r\n",
		"^3\r\nabc\r\n",
		"@7\r\n{\"a\":1}\r\n",
		"*0\r\n",
		"*2\r\n:1\r\n:2\r\n",
		"*2\r\n:1\r\n*1\r\n+a\r\n",
		"%0\r\n",
		"%1\r\n+k\r\n:1\r\n",
		"&0\r\n",
		"&2\r\n:1\r\n:2\r\n",
	}
	for _, c := range cases {
		wireRoundTrip(t, c)
	}
}

// TestValueRoundTrip checks decode(encode(v)) against v: constructing a
// frame, encoding it, and decoding it back yields a frame that encodes to the
// same bytes.
func TestValueRoundTrip(t *testing.T) {
	values := []Frame{
		Simple("hello"),
		Err("oops"),
		Int(123),
		Float(1.25),
		Bulk([]byte{0, 1, 2, 255}),
		Text("unicode text"),
		Null(),
		JSONFrame([]byte(`[1,2,3]`)),
		Array(Int(1), Simple("x")),
		Dict(Pair{Key: Text("k"), Value: Int(9)}),
		SetFrame(Int(1), Int(2), Int(3)),
	}
	for _, v := range values {
		encoded := EncodeBytes(v)
		got, err := NewDecoder(strings.NewReader(string(encoded))).Decode()
		if err != nil {
			t.Fatalf("decode(encode(%+v)): %v", v, err)
		}
		if string(EncodeBytes(got)) != string(encoded) {
			t.Fatalf("value round trip mismatch for %+v: got %q want %q",
				v, EncodeBytes(got), encoded)
		}
	}
}

func TestSetRoundTripDedup(t *testing.T) {
	f := SetFrame(Int(1), Int(1), Int(2))
	encoded := EncodeBytes(f)
	decoded, err := NewDecoder(strings.NewReader(string(encoded))).Decode()
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Elems) != 2 {
		t.Fatalf("expected decode to dedupe the duplicate member, got %d elems", len(decoded.Elems))
	}
}
