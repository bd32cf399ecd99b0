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

func TestNameString(t *testing.T) {
	n := Name{1, 2, 3, 4, 5, 6}
	require.Equal(t, "01:02:03:04:05:06", n.String())
}

func TestEncodeAdjacencyLength(t *testing.T) {
	for _, caps := range [][]Capability{
		{},
		{CapTopology},
		{CapTopology, CapOAM},
	} {
		p := &AdjacencyPDU{
			Version:      RFCVersion,
			TimerTenths:  250,
			Capabilities: caps,
		}
		b := EncodeAdjacency(p)
		require.Len(t, b, 40+4*len(caps), "total byte length is 40 + 4*|caps|")
		require.Equal(t, uint16(36+4*len(caps)), binary.BigEndian.Uint16(b[2:4]), "length field is 36 + 4*|caps|")
	}
}

func TestEncodeAdjacencyLayout(t *testing.T) {
	p := &AdjacencyPDU{
		Version:          RFCVersion,
		TimerTenths:      250,
		M:                false,
		Code:             CodeSyn,
		SenderName:       Name{1, 2, 3, 4, 5, 6},
		ReceiverName:     Name{0, 0, 0, 0, 0, 0},
		SenderPort:       0,
		ReceiverPort:     0,
		SenderInstance:   0x1000001,
		ReceiverInstance: 0,
		Capabilities:     []Capability{CapTopology},
	}
	b := EncodeAdjacency(p)

	require.Equal(t, uint16(FrameIdent), binary.BigEndian.Uint16(b[0:2]))
	require.Equal(t, RFCVersion, b[4])
	require.Equal(t, uint8(MessageAdjacency), b[5])
	require.Equal(t, uint8(250), b[6])
	require.Equal(t, uint8(CodeSyn), b[7], "M=0, code=SYN")
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, b[8:14])
	// the high octet of the instance field is reserved: only the low 24
	// bits of 0x1000001 go on the wire.
	require.Equal(t, uint32(0x000001), binary.BigEndian.Uint32(b[28:32]))
	require.Equal(t, uint8(1), b[37], "capability count")
	require.Equal(t, uint16(4), binary.BigEndian.Uint16(b[38:40]), "capability byte length")
	require.Equal(t, uint16(CapTopology), binary.BigEndian.Uint16(b[40:42]))
}

func TestDecodeAdjacencyHeader(t *testing.T) {
	p := &AdjacencyPDU{
		Version:          RFCVersion,
		TimerTenths:      250,
		M:                true,
		Code:             CodeSynAck,
		SenderName:       Name{9, 9, 9, 9, 9, 9},
		ReceiverName:     Name{1, 2, 3, 4, 5, 6},
		SenderInstance:   0xABCDEF,
		Capabilities:     []Capability{CapTopology},
	}
	b := EncodeAdjacency(p)
	// body starts right after the 4-byte common frame header. The peer's
	// sender name and sender instance are what the decoder returns as this
	// side's receiver name and receiver instance.
	body := b[4:]
	prefix, err := DecodePDUPrefix(body)
	require.NoError(t, err)
	require.Equal(t, MessageAdjacency, prefix.MessageType)

	hdr, err := DecodeAdjacencyHeader(prefix.Var, body)
	require.NoError(t, err)
	require.Equal(t, uint8(250), hdr.Timer)
	require.True(t, hdr.M)
	require.Equal(t, CodeSynAck, hdr.Code)
	require.Equal(t, Name{9, 9, 9, 9, 9, 9}, hdr.ReceiverName)
	require.Equal(t, Instance24(0xABCDEF), hdr.ReceiverInstance)
}
