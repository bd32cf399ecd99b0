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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeGeneralPDURoundTripLength(t *testing.T) {
	tlvs := EncodeTLVs([]*TLV{NewStringTLV(TLVACI, "0.0.0.0 eth 0")})
	p := &GeneralPDU{
		Version:       RFCVersion,
		MessageType:   MessagePortUp,
		TechType:      TechDSL,
		TransactionID: 1,
		TLVCount:      1,
		TLVPayload:    tlvs,
	}
	b := EncodeGeneralPDU(p)

	// property 5 from spec.md §8: uint16 at offset 2 equals the length of
	// the remaining bytes.
	length := binary.BigEndian.Uint16(b[2:4])
	require.Equal(t, len(b)-4, int(length))
}

func TestEncodeGeneralPDUPortBlock(t *testing.T) {
	tlvs := EncodeTLVs([]*TLV{NewInt32TLV(TLVUp, 1000)})
	p := &GeneralPDU{
		Version:       RFCVersion,
		MessageType:   MessagePortDown,
		TechType:      TechPON,
		TransactionID: 42,
		TLVCount:      1,
		TLVPayload:    tlvs,
	}
	b := EncodeGeneralPDU(p)

	require.Equal(t, uint16(FrameIdent), binary.BigEndian.Uint16(b[0:2]))
	require.Equal(t, RFCVersion, b[4])
	require.Equal(t, uint8(MessagePortDown), b[5])
	require.Equal(t, uint16(GeneralSubIdent), binary.BigEndian.Uint16(b[12:14]))

	transWord := binary.BigEndian.Uint32(b[8:12])
	require.Equal(t, uint32(42), transWord, "partition ID is always zero, low 24 bits carry the transaction ID")

	portBlock := b[16:44]
	require.Equal(t, uint8(MessagePortDown), portBlock[21])
	require.Equal(t, uint8(TechPON), portBlock[22])
	require.Equal(t, uint16(1), binary.BigEndian.Uint16(portBlock[24:26]), "TLV count")
	require.Equal(t, uint16(len(tlvs)), binary.BigEndian.Uint16(portBlock[26:28]), "TLV payload length")
}

func TestEncodeGeneralPDUForNSubscribersYieldsNDistinctFrames(t *testing.T) {
	var allBytes []byte
	n := 3
	for i := 0; i < n; i++ {
		tlvs := EncodeTLVs([]*TLV{NewStringTLV(TLVACI, "0.0.0.0 eth 0")})
		p := &GeneralPDU{
			Version:       RFCVersion,
			MessageType:   MessagePortUp,
			TechType:      TechDSL,
			TransactionID: uint32(i + 1),
			TLVCount:      1,
			TLVPayload:    tlvs,
		}
		allBytes = append(allBytes, EncodeGeneralPDU(p)...)
	}

	// parsing (tech_type, msg_type, tlv_count, payload_len) out of the
	// concatenated write yields n distinct frames, each PORT_UP.
	got := 0
	pos := 0
	for pos < len(allBytes) {
		length := binary.BigEndian.Uint16(allBytes[pos+2 : pos+4])
		frame := allBytes[pos : pos+4+int(length)]
		require.Equal(t, uint8(MessagePortUp), frame[5])
		portBlock := frame[16:44]
		require.Equal(t, uint8(MessagePortUp), portBlock[21])
		require.Equal(t, uint8(TechDSL), portBlock[22])
		pos += 4 + int(length)
		got++
	}
	require.Equal(t, n, got)
}
