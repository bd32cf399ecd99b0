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

package subscriber

import "github.com/facebook/ancp/ancp/protocol"

// TLVs projects the subscriber into a fresh TLV tree and returns both
// the number of top-level TLVs and their encoded bytes, matching the
// (tlv_count, encoded_bytes) contract of spec.md §3.
func (s *Subscriber) TLVs() (int, []byte) {
	tlvs := []*protocol.TLV{protocol.NewStringTLV(protocol.TLVACI, s.aci)}

	if s.attrs.ARI != "" {
		tlvs = append(tlvs, protocol.NewStringTLV(protocol.TLVARI, s.attrs.ARI))
	}

	if s.attrs.AACIASCII != "" {
		tlvs = append(tlvs, protocol.NewStringTLV(protocol.TLVAACIASCII, s.attrs.AACIASCII))
	} else if len(s.attrs.AACIBin) == 1 {
		tlvs = append(tlvs, protocol.NewInt32TLV(protocol.TLVAACIBin, s.attrs.AACIBin[0]))
	} else if len(s.attrs.AACIBin) > 1 {
		tlvs = append(tlvs, protocol.NewU32ArrayTLV(protocol.TLVAACIBin, s.attrs.AACIBin))
	}

	if s.IsPON() {
		tlvs = append(tlvs, protocol.NewCompositeTLV(protocol.TLVPON, s.ponLineTLVs()))
	} else {
		tlvs = append(tlvs, protocol.NewCompositeTLV(protocol.TLVLine, s.dslLineTLVs()))
	}

	return len(tlvs), protocol.EncodeTLVs(tlvs)
}

func (s *Subscriber) dslLineTLVs() []*protocol.TLV {
	a := s.attrs
	line := []*protocol.TLV{
		protocol.NewInt32TLV(protocol.TLVType_, uint32(a.DSLType)),
		protocol.NewInt32TLV(protocol.TLVState, uint32(a.State)),
		protocol.NewInt32TLV(protocol.TLVUp, a.Up),
		protocol.NewInt32TLV(protocol.TLVDown, a.Down),
	}
	line = appendOptional(line, protocol.TLVMinUp, a.MinUp)
	line = appendOptional(line, protocol.TLVMinDown, a.MinDown)
	line = appendOptional(line, protocol.TLVAttUp, a.AttUp)
	line = appendOptional(line, protocol.TLVAttDown, a.AttDown)
	line = appendOptional(line, protocol.TLVMaxUp, a.MaxUp)
	line = appendOptional(line, protocol.TLVMaxDown, a.MaxDown)
	line = append(line, protocol.NewAccessLoopEncTLV(a.DataLink, a.Encap1, a.Encap2))

	line = appendOptional(line, protocol.TLVGfastUpRate, a.GfastUp)
	line = appendOptional(line, protocol.TLVGfastDownRate, a.GfastDown)
	line = appendOptional(line, protocol.TLVGfastMinUpRate, a.GfastMinUp)
	line = appendOptional(line, protocol.TLVGfastMinDownRate, a.GfastMinDown)
	line = appendOptional(line, protocol.TLVGfastAttUpRate, a.GfastAttUp)
	line = appendOptional(line, protocol.TLVGfastAttDownRate, a.GfastAttDown)
	line = appendOptional(line, protocol.TLVGfastMaxUpRate, a.GfastMaxUp)
	line = appendOptional(line, protocol.TLVGfastMaxDownRate, a.GfastMaxDown)

	return line
}

func (s *Subscriber) ponLineTLVs() []*protocol.TLV {
	a := s.attrs
	pon := []*protocol.TLV{
		protocol.NewInt32TLV(protocol.TLVPONType, uint32(a.PONType)),
	}
	pon = appendOptional(pon, protocol.TLVPONOntOnuUpRate, a.OntOnuUp)
	pon = appendOptional(pon, protocol.TLVPONOntOnuDnRate, a.OntOnuDown)
	pon = appendOptional(pon, protocol.TLVPONTreeUpRate, a.PONTreeUp)
	pon = appendOptional(pon, protocol.TLVPONTreeDownRate, a.PONTreeDown)
	pon = appendOptional(pon, protocol.TLVPONMaxUpRate, a.PONMaxUp)
	pon = appendOptional(pon, protocol.TLVPONMaxDownRate, a.PONMaxDown)
	return pon
}

func appendOptional(tlvs []*protocol.TLV, t protocol.TLVType, v *uint32) []*protocol.TLV {
	if v == nil {
		return tlvs
	}
	return append(tlvs, protocol.NewInt32TLV(t, *v))
}
