/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// FrameHeader is the common 4-byte header that starts every ANCP frame:
// the 2-byte identifier and the 2-byte length of everything that
// follows.
type FrameHeader struct {
	Ident  uint16
	Length uint16
}

// ReadFrameHeader reads and validates the 4-byte common header from r.
// A mismatched identifier is a framing error and is fatal to the caller
// per §7: the connection should be abandoned.
func ReadFrameHeader(r io.Reader) (*FrameHeader, error) {
	var hb [4]byte
	if err := readFull(r, hb[:]); err != nil {
		return nil, err
	}
	h := &FrameHeader{
		Ident:  binary.BigEndian.Uint16(hb[0:2]),
		Length: binary.BigEndian.Uint16(hb[2:4]),
	}
	if h.Ident != FrameIdent {
		return nil, fmt.Errorf("bad frame identifier 0x%04x, want 0x%04x", h.Ident, FrameIdent)
	}
	return h, nil
}

// ReadFrameBody reads the body that follows the common header: exactly
// h.Length bytes.
func ReadFrameBody(r io.Reader, h *FrameHeader) ([]byte, error) {
	body := make([]byte, h.Length)
	if err := readFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

// PDUPrefix is the (version, message-type, variable-word) triple that
// follows the common frame header in every ANCP PDU body.
type PDUPrefix struct {
	Version     uint8
	MessageType MessageType
	Var         uint16
}

// DecodePDUPrefix unpacks the first 4 bytes of a PDU body: version,
// message type, and the 16-bit variable word whose meaning depends on
// the message type (timer/M/code for ADJACENCY, result/code for
// ADJACENCY_UPDATE).
func DecodePDUPrefix(body []byte) (*PDUPrefix, error) {
	if len(body) < 4 {
		return nil, fmt.Errorf("PDU body too short to hold prefix: %d bytes", len(body))
	}
	return &PDUPrefix{
		Version:     body[0],
		MessageType: MessageType(body[1]),
		Var:         binary.BigEndian.Uint16(body[2:4]),
	}, nil
}
