// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func decodeString(t *testing.T, s string) Frame {
	t.Helper()
	f, err := NewDecoder(strings.NewReader(s)).Decode()
	if err != nil {
		t.Fatalf("Decode(%q): %v", s, err)
	}
	return f
}

func TestDecodeSimple(t *testing.T) {
	f := decodeString(t, "+OK\r\n")
	if f.Tag != TagSimple || f.Text != "OK" {
		t.Fatalf("got %+v", f)
	}
}

func TestDecodeInteger(t *testing.T) {
	f := decodeString(t, ":42\r\n")
	if f.Tag != TagNumber || f.IsFloat || f.IntVal != 42 {
		t.Fatalf("got %+v", f)
	}
}

func TestDecodeFloat(t *testing.T) {
	f := decodeString(t, ":3.5\r\n")
	if f.Tag != TagNumber || !f.IsFloat || f.FloatVal != 3.5 {
		t.Fatalf("got %+v", f)
	}
}

func TestDecodeBulkNull(t *testing.T) {
	f := decodeString(t, "$-1\r\n")
	if !f.IsNull() {
		t.Fatalf("expected null, got %+v", f)
	}
}

func TestDecodeBulk(t *testing.T) {
	f := decodeString(t, "$5\r\nhello\r\n")
	if string(f.Bytes) != "hello" {
		t.Fatalf("got %+v", f)
	}
}

func TestDecodeArrayNested(t *testing.T) {
	f := decodeString(t, "*2\r\n:1\r\n*1\r\n+a\r\n")
	if len(f.Elems) != 2 {
		t.Fatalf("got %+v", f)
	}
	if f.Elems[1].Elems[0].Text != "a" {
		t.Fatalf("got %+v", f)
	}
}

func TestDecodeDict(t *testing.T) {
	f := decodeString(t, "%1\r\n+k\r\n:1\r\n")
	if len(f.Pairs) != 1 || f.Pairs[0].Key.Text != "k" || f.Pairs[0].Value.IntVal != 1 {
		t.Fatalf("got %+v", f)
	}
}

func TestDecodeSetDedupes(t *testing.T) {
	f := decodeString(t, "&3\r\n:1\r\n:1\r\n:2\r\n")
	if len(f.Elems) != 2 {
		t.Fatalf("expected dedup to 2 elements, got %d: %+v", len(f.Elems), f)
	}
}

func TestDecodeUnknownTagRecovers(t *testing.T) {
	f := decodeString(t, "?garbage\r\n")
	if f.Tag != TagUnknown {
		t.Fatalf("got %+v", f)
	}
}

func TestDecodeCleanEOF(t *testing.T) {
	_, err := NewDecoder(bytes.NewReader(nil)).Decode()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestDecodeShortReadIsProtocolError(t *testing.T) {
	_, err := NewDecoder(strings.NewReader("$5\r\nhi")).Decode()
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProtocolError, got %v", err)
	}
}

func TestDecodeBadCountIsProtocolError(t *testing.T) {
	_, err := NewDecoder(strings.NewReader("*x\r\n")).Decode()
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProtocolError, got %v", err)
	}
}
