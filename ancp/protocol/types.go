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
	"strconv"

	"github.com/hashicorp/go-version"
)

// FrameIdent is the two-byte identifier that starts every ANCP frame on
// the wire.
const FrameIdent uint16 = 0x880C

// GeneralSubIdent is the sub-identifier of the port block inside a
// general (PORT-UP/PORT-DOWN) frame.
const GeneralSubIdent uint16 = 0x8001

// RFCVersion is the protocol version byte for the published RFC 6320.
const RFCVersion uint8 = 50

// MessageType identifies the kind of PDU carried by a frame.
type MessageType uint8

// Message types as per RFC 6320 section 5.1.
const (
	MessageAdjacency       MessageType = 10
	MessagePortManagement  MessageType = 32
	MessagePortUp          MessageType = 80
	MessagePortDown        MessageType = 81
	MessageAdjacencyUpdate MessageType = 85
)

// MessageTypeToString names message types for logging.
var MessageTypeToString = map[MessageType]string{
	MessageAdjacency:       "ADJACENCY",
	MessagePortManagement:  "PORT_MANAGEMENT",
	MessagePortUp:          "PORT_UP",
	MessagePortDown:        "PORT_DOWN",
	MessageAdjacencyUpdate: "ADJACENCY_UPDATE",
}

func (m MessageType) String() string {
	if s, ok := MessageTypeToString[m]; ok {
		return s
	}
	return "UNKNOWN"
}

// AdjacencyState is a state of the adjacency state machine.
type AdjacencyState uint8

// Adjacency states.
const (
	StateIdle AdjacencyState = iota + 1
	StateSynSent
	StateSynRcvd
	StateEstablished
)

var stateToString = map[AdjacencyState]string{
	StateIdle:         "IDLE",
	StateSynSent:      "SYNSENT",
	StateSynRcvd:      "SYNRCVD",
	StateEstablished: "ESTAB",
}

func (s AdjacencyState) String() string {
	if v, ok := stateToString[s]; ok {
		return v
	}
	return "UNKNOWN"
}

// AdjacencyCode is the 7-bit code carried alongside the M-bit in an
// adjacency PDU.
type AdjacencyCode uint8

// Adjacency message codes.
const (
	CodeSyn    AdjacencyCode = 1
	CodeSynAck AdjacencyCode = 2
	CodeAck    AdjacencyCode = 3
	CodeRstAck AdjacencyCode = 4
)

var codeToString = map[AdjacencyCode]string{
	CodeSyn:    "SYN",
	CodeSynAck: "SYNACK",
	CodeAck:    "ACK",
	CodeRstAck: "RSTACK",
}

func (c AdjacencyCode) String() string {
	if v, ok := codeToString[c]; ok {
		return v
	}
	return "UNKNOWN"
}

// TechType identifies the access technology of a line.
type TechType uint8

// Tech types.
const (
	TechAny TechType = 0
	TechPON TechType = 1
	TechDSL TechType = 5
)

func (t TechType) String() string {
	switch t {
	case TechAny:
		return "ANY"
	case TechPON:
		return "PON"
	case TechDSL:
		return "DSL"
	default:
		return "UNKNOWN"
	}
}

// Capability is a single adjacency capability code.
type Capability uint16

// Capabilities.
const (
	CapTopology Capability = 1
	CapOAM      Capability = 4
)

// Result and result-code words carried in a general PDU header.
const (
	ResultIgnore  uint8 = 0x00
	ResultNack    uint8 = 0x01
	ResultAckAll  uint8 = 0x02
	ResultSuccess uint8 = 0x03
	ResultFailure uint8 = 0x04

	ResultCodeNone uint16 = 0x000
)

// TLVType identifies the 16-bit type of a TLV node.
type TLVType uint16

// TLV types of interest to an Access Node client, per RFC 6320 and the
// PON/G.fast extension drafts.
const (
	TLVACI              TLVType = 0x0001
	TLVARI              TLVType = 0x0002
	TLVAACIASCII        TLVType = 0x0003
	TLVLine             TLVType = 0x0004
	TLVAACIBin          TLVType = 0x0006
	TLVPON              TLVType = 0x0012
	TLVUp               TLVType = 0x0081
	TLVDown             TLVType = 0x0082
	TLVMinUp            TLVType = 0x0083
	TLVMinDown          TLVType = 0x0084
	TLVAttUp            TLVType = 0x0085
	TLVAttDown          TLVType = 0x0086
	TLVMaxUp            TLVType = 0x0087
	TLVMaxDown          TLVType = 0x0088
	TLVState            TLVType = 0x008F
	TLVAccessLoopEnc    TLVType = 0x0090
	TLVType_            TLVType = 0x0091 // DSL/line type
	TLVPONType          TLVType = 0x0097
	TLVGfastUpRate      TLVType = 0x009B
	TLVGfastDownRate    TLVType = 0x009C
	TLVGfastMinUpRate   TLVType = 0x009D
	TLVGfastMinDownRate TLVType = 0x009E
	TLVGfastAttUpRate   TLVType = 0x009F
	TLVGfastAttDownRate TLVType = 0x00A0
	TLVGfastMaxUpRate   TLVType = 0x00A1
	TLVGfastMaxDownRate TLVType = 0x00A2
	TLVPONTreeUpRate    TLVType = 0x00B0
	TLVPONTreeDownRate  TLVType = 0x00B1
	TLVPONOntOnuUpRate  TLVType = 0x00B2
	TLVPONOntOnuDnRate  TLVType = 0x00B3
	TLVPONMaxUpRate     TLVType = 0x00B4
	TLVPONMaxDownRate   TLVType = 0x00B5
)

// MinSupportedVersion and MaxSupportedVersion bound the peer protocol
// version byte this client is willing to adjacent with. RFC 6320 shipped
// as version 50; the go-version comparison keeps the bound expressive in
// case of future revisions, same spirit as the version gating sptp does
// for its peers.
var (
	MinSupportedVersion = version.Must(version.NewVersion("50.0.0"))
	MaxSupportedVersion = version.Must(version.NewVersion("50.0.0"))
)

// SupportsVersion reports whether v (a raw wire protocol-version byte)
// falls within [MinSupportedVersion, MaxSupportedVersion].
func SupportsVersion(v uint8) bool {
	vv := version.Must(version.NewVersion(versionString(v)))
	return vv.GreaterThanOrEqual(MinSupportedVersion) && vv.LessThanOrEqual(MaxSupportedVersion)
}

func versionString(v uint8) string {
	return strconv.Itoa(int(v)) + ".0.0"
}
