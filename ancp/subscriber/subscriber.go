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

// Package subscriber models an ANCP subscriber's line attributes (DSL or
// PON) and projects them into the protocol package's TLV tree.
package subscriber

import (
	"fmt"

	"github.com/facebook/ancp/ancp/protocol"
)

// LineState is the subscriber line's operational state.
type LineState uint32

// Line states.
const (
	Showtime LineState = 1
	Idle     LineState = 2
	Silent   LineState = 3
)

// DSLType identifies the DSL variant in use on a line.
type DSLType uint32

// DSL types.
const (
	DSLOther     DSLType = 0
	DSLADSL      DSLType = 1
	DSLADSL2     DSLType = 2
	DSLADSL2Plus DSLType = 3
	DSLVDSL1     DSLType = 4
	DSLVDSL2     DSLType = 5
	DSLSDSL      DSLType = 6
	DSLGfast     DSLType = 7
)

// PONType identifies the PON access class, per the ANCP PON extension
// draft's class A/B/C split. The draft doesn't pin exact wire values the
// way RFC 6320 does for core fields, so this numbering is this client's
// own choice (recorded as an Open Question decision in DESIGN.md).
type PONType uint32

// PON types.
const (
	PONUnknown PONType = 0
	PONClassA  PONType = 1
	PONClassB  PONType = 2
	PONClassC  PONType = 3
)

// Attrs holds the optional attributes of a subscriber. Exactly one of
// DSL or PON attributes should be populated; PONType != 0 selects the
// PON profile, matching the "pon_type selects PON" rule in spec.md §6.
type Attrs struct {
	ARI       string   // optional Remote-ID; empty means unset
	AACIASCII string   // optional AACI as ASCII; mutually exclusive with AACIBin
	AACIBin   []uint32 // optional AACI as one or more 32-bit words

	// DSL line attributes.
	State    LineState
	Up       uint32
	Down     uint32
	MinUp    *uint32
	MinDown  *uint32
	AttUp    *uint32
	AttDown  *uint32
	MaxUp    *uint32
	MaxDown  *uint32
	DSLType  DSLType
	DataLink protocol.DataLink
	Encap1   protocol.Encap1
	Encap2   protocol.Encap2

	// G.fast extension rates, only emitted when set; independent of
	// DSLType so a caller can report G.fast rates alongside a DSLGfast
	// line type without this package second-guessing the type byte.
	GfastUp      *uint32
	GfastDown    *uint32
	GfastMinUp   *uint32
	GfastMinDown *uint32
	GfastAttUp   *uint32
	GfastAttDown *uint32
	GfastMaxUp   *uint32
	GfastMaxDown *uint32

	// PON line attributes. PONType != PONUnknown selects this profile.
	PONType     PONType
	OntOnuUp    *uint32
	OntOnuDown  *uint32
	PONTreeUp   *uint32
	PONTreeDown *uint32
	PONMaxUp    *uint32
	PONMaxDown  *uint32
}

// Subscriber is an immutable ANCP subscriber: a mandatory Access-Loop
// Circuit ID plus the optional attribute set captured in Attrs.
type Subscriber struct {
	aci   string
	attrs Attrs
}

// New constructs a Subscriber. aci must be non-empty. attrs.AACIBin must
// have 0, 1 (single integer) or more (tuple) elements; AACIASCII and
// AACIBin are mutually exclusive.
func New(aci string, attrs Attrs) (*Subscriber, error) {
	if aci == "" {
		return nil, fmt.Errorf("aci must not be empty")
	}
	if attrs.AACIASCII != "" && len(attrs.AACIBin) > 0 {
		return nil, fmt.Errorf("aaci_ascii and aaci_bin are mutually exclusive")
	}
	if attrs.State == 0 {
		attrs.State = Showtime
	}
	if attrs.DataLink == 0 && attrs.Encap1 == 0 && attrs.Encap2 == 0 {
		attrs.DataLink = protocol.DataLinkEthernet
		attrs.Encap1 = protocol.Encap1DoubleTaggedEthernet
		attrs.Encap2 = protocol.Encap2EoAAL5LLC
	}
	return &Subscriber{aci: aci, attrs: attrs}, nil
}

// ACI returns the subscriber's Access-Loop Circuit ID.
func (s *Subscriber) ACI() string { return s.aci }

// IsPON reports whether this subscriber carries PON attributes rather
// than DSL attributes.
func (s *Subscriber) IsPON() bool { return s.attrs.PONType != PONUnknown }

// ParseAACIBin validates an untyped AACI-binary value the way a
// dynamically-typed config source (e.g. a YAML subscriber batch file)
// would hand it to this package: it must be a single integer, or a
// statically-typed Go slice of integers standing in for the source's
// tuple ([]uint32/[]int, built up in code or decoded straight off a
// dedicated typed field). A loosely-typed sequence decoded into `any`
// (the shape a plain YAML/JSON list produces for an `any`-typed field,
// e.g. []any{128, 7}) is the list form and is rejected, matching the
// source's list-vs-tuple distinction: see the "aaci_bin list vs tuple"
// decision in DESIGN.md. A string is rejected regardless.
func ParseAACIBin(raw any) ([]uint32, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case int:
		return []uint32{uint32(v)}, nil
	case int64:
		return []uint32{uint32(v)}, nil
	case uint32:
		return []uint32{v}, nil
	case []uint32:
		return v, nil
	case []int:
		out := make([]uint32, len(v))
		for i, n := range v {
			out[i] = uint32(n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("aaci_bin must be an integer or a tuple of integers, got %T", raw)
	}
}
