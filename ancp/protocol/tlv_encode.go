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

// EncodeTLVs serializes an ordered list of TLV nodes into a contiguous
// buffer sized to the sum of each node's (4-byte header + Off()), with
// padding always emitted between a TLV's header and the next sibling.
func EncodeTLVs(tlvs []*TLV) []byte {
	total := 0
	for _, t := range tlvs {
		total += 4 + t.off
	}
	b := make([]byte, 0, total)
	for _, t := range tlvs {
		b = encodeTLV(b, t)
	}
	return b
}

func encodeTLV(b []byte, t *TLV) []byte {
	switch t.kind {
	case kindInt32:
		b = appendUint16(b, uint16(t.Type))
		b = appendUint16(b, uint16(t.len))
		b = appendUint32(b, t.intVal)

	case kindAccessLoopEnc:
		// header advertises len=3, but the value word is a full 32 bits;
		// the low octet is left as padding.
		b = appendUint16(b, uint16(t.Type))
		b = appendUint16(b, uint16(t.len))
		b = appendUint32(b, t.intVal)

	case kindBytes:
		b = appendUint16(b, uint16(t.Type))
		b = appendUint16(b, uint16(t.len))
		b = append(b, t.bytesVal...)
		b = append(b, make([]byte, t.off-t.len)...)

	case kindU32Array:
		b = appendUint16(b, uint16(t.Type))
		b = appendUint16(b, uint16(t.len))
		for _, v := range t.u32s {
			b = appendUint32(b, v)
		}

	case kindChildren:
		// the composite's header advertises the padded aggregate length
		// of its children (off), not their raw length.
		b = appendUint16(b, uint16(t.Type))
		b = appendUint16(b, uint16(t.off))
		for _, c := range t.children {
			b = encodeTLV(b, c)
		}
	}
	return b
}
