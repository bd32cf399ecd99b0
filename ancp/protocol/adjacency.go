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
)

// SenderName, ReceiverName are the 6-octet identifiers carried in an
// adjacency PDU.
type Name [6]byte

// String renders a Name the way the source's _tomac helper does:
// colon-separated lowercase hex octets.
func (n Name) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", n[0], n[1], n[2], n[3], n[4], n[5])
}

// Instance24 is a 24-bit instance number carried right-justified in a
// 32-bit wire field whose high octet is reserved.
type Instance24 uint32

const instance24Mask = 0x00FFFFFF

// AdjacencyPDU is everything needed to build or that was learned from an
// ADJACENCY frame on the wire.
type AdjacencyPDU struct {
	Version          uint8
	TimerTenths      uint8 // adjacency timer, tenths of a second
	M                bool
	Code             AdjacencyCode
	SenderName       Name
	ReceiverName     Name
	SenderPort       uint32
	ReceiverPort     uint32
	SenderInstance   Instance24
	ReceiverInstance Instance24
	Capabilities     []Capability
}

// EncodeAdjacency builds the wire bytes for an ADJACENCY PDU per §4.1:
// a 40-byte fixed header followed by 4 bytes per capability. The total
// length equals 40 + 4*len(Capabilities); the on-wire length field equals
// 36 + 4*len(Capabilities).
func EncodeAdjacency(p *AdjacencyPDU) []byte {
	capsLen := len(p.Capabilities) * 4
	b := make([]byte, 0, 40+capsLen)

	b = appendUint16(b, FrameIdent)
	b = appendUint16(b, uint16(36+capsLen))

	b = append(b, p.Version, uint8(MessageAdjacency), p.TimerTenths, mCodeByte(p.M, p.Code))

	b = append(b, p.SenderName[:]...)
	b = append(b, p.ReceiverName[:]...)

	b = appendUint32(b, p.SenderPort)
	b = appendUint32(b, p.ReceiverPort)
	b = appendUint32(b, uint32(p.SenderInstance)&instance24Mask)
	b = appendUint32(b, uint32(p.ReceiverInstance)&instance24Mask)

	b = append(b, 0) // partition ID, always zero (§9 open question)
	b = append(b, uint8(len(p.Capabilities)))
	b = appendUint16(b, uint16(capsLen))
	for _, c := range p.Capabilities {
		b = appendUint16(b, uint16(c))
		b = appendUint16(b, 0)
	}
	return b
}

func mCodeByte(m bool, code AdjacencyCode) uint8 {
	var mBit uint8
	if m {
		mBit = 1
	}
	return mBit<<7 | uint8(code)&0x7f
}

// AdjacencyHeader is the decoded common part of a received adjacency PDU,
// everything the reader needs before dispatching to the state machine.
type AdjacencyHeader struct {
	Timer            uint8 // tenths of a second
	M                bool
	Code             AdjacencyCode
	ReceiverName     Name
	ReceiverInstance Instance24
}

// DecodeAdjacencyHeader parses the fields of an ADJACENCY PDU the reader
// cares about out of the body bytes that follow the common 4-byte frame
// header (version, type, timer/M/code word already consumed by the
// caller via `varWord`).
//
// body is the PDU starting at offset 0 (i.e. including the 4 bytes the
// caller already decoded), matching the layout in §4.1.
func DecodeAdjacencyHeader(varWord uint16, body []byte) (*AdjacencyHeader, error) {
	if len(body) < 28 {
		return nil, fmt.Errorf("adjacency PDU too short: %d bytes", len(body))
	}
	timer := uint8(varWord >> 8)
	m := varWord&0x80 != 0
	code := AdjacencyCode(varWord & 0x7f)

	var recv Name
	copy(recv[:], body[4:10])

	recvInstance := binary.BigEndian.Uint32(body[24:28]) & instance24Mask

	return &AdjacencyHeader{
		Timer:            timer,
		M:                m,
		Code:             code,
		ReceiverName:     recv,
		ReceiverInstance: Instance24(recvInstance),
	}, nil
}
