// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "fmt"

// ProtocolError reports a malformed frame on the wire: a short read mid-frame,
// a non-numeric count where one was expected, or any other violation of the
// frame grammar. It is distinct from io.EOF, which signals a clean
// end-of-stream at a frame boundary.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("wire: protocol error: %s", e.Reason)
}

func protoErrf(format string, args ...any) error {
	return &ProtocolError{Reason: fmt.Sprintf(format, args...)}
}

// TagUnknown marks a best-effort recovery token produced when the decoder
// sees an unrecognized first byte: the tag byte plus the remainder of the
// line, with no further interpretation. The dispatcher treats this as
// UnknownCommand when it appears at the top level.
const TagUnknown Tag = 0
