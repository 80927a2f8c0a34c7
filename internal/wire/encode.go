// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Encode writes f to w in wire form. Encoding never fails on a well-formed
// Frame; the returned error only surfaces an underlying write failure.
func Encode(w io.Writer, f Frame) error {
	switch f.Tag {
	case TagSimple:
		return writeLine(w, byte(TagSimple), f.Text)

	case TagError:
		return writeLine(w, byte(TagError), f.Text)

	case TagNumber:
		if f.IsFloat {
			body := strconv.FormatFloat(f.FloatVal, 'f', -1, 64)
			if !strings.Contains(body, ".") {
				body += ".0"
			}
			return writeLine(w, byte(TagNumber), body)
		}
		return writeLine(w, byte(TagNumber), strconv.FormatInt(f.IntVal, 10))

	case TagBulk, TagUnicode:
		if f.Null {
			return writeLine(w, byte(f.Tag), "-1")
		}
		if err := writeLine(w, byte(f.Tag), strconv.Itoa(len(f.Bytes))); err != nil {
			return err
		}
		if _, err := w.Write(f.Bytes); err != nil {
			return err
		}
		_, err := w.Write(crlf)
		return err

	case TagJSON:
		if err := writeLine(w, byte(TagJSON), strconv.Itoa(len(f.Bytes))); err != nil {
			return err
		}
		if _, err := w.Write(f.Bytes); err != nil {
			return err
		}
		_, err := w.Write(crlf)
		return err

	case TagArray:
		if err := writeLine(w, byte(TagArray), strconv.Itoa(len(f.Elems))); err != nil {
			return err
		}
		for _, el := range f.Elems {
			if err := Encode(w, el); err != nil {
				return err
			}
		}
		return nil

	case TagDict:
		if err := writeLine(w, byte(TagDict), strconv.Itoa(len(f.Pairs))); err != nil {
			return err
		}
		for _, p := range f.Pairs {
			if err := Encode(w, p.Key); err != nil {
				return err
			}
			if err := Encode(w, p.Value); err != nil {
				return err
			}
		}
		return nil

	case TagSet:
		if err := writeLine(w, byte(TagSet), strconv.Itoa(len(f.Elems))); err != nil {
			return err
		}
		for _, el := range f.Elems {
			if err := Encode(w, el); err != nil {
				return err
			}
		}
		return nil

	case TagUnknown:
		_, err := w.Write(f.Bytes)
		if err != nil {
			return err
		}
		_, err = w.Write(crlf)
		return err

	default:
		return fmt.Errorf("wire: encode: unhandled tag %q", byte(f.Tag))
	}
}

// EncodeBytes is a convenience wrapper returning the encoded form as bytes.
func EncodeBytes(f Frame) []byte {
	var b strings.Builder
	_ = Encode(&b, f)
	return []byte(b.String())
}

var crlf = []byte("\r\n")

func writeLine(w io.Writer, tag byte, body string) error {
	if _, err := w.Write([]byte{tag}); err != nil {
		return err
	}
	if _, err := io.WriteString(w, body); err != nil {
		return err
	}
	_, err := w.Write(crlf)
	return err
}
