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

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/facebook/ancp/ancp/protocol"
)

func TestNewRejectsEmptyACI(t *testing.T) {
	_, err := New("", Attrs{})
	require.Error(t, err)
}

func TestACITLVEncoding(t *testing.T) {
	s, err := New("0.0.0.0 eth 0", Attrs{})
	require.NoError(t, err)

	_, b := s.TLVs()
	require.Equal(t, uint16(0x0001), binary.BigEndian.Uint16(b[0:2]))
	require.Equal(t, uint16(13), binary.BigEndian.Uint16(b[2:4]))
	require.Equal(t, []byte("0.0.0.0 eth 0"), b[4:17])
}

func TestAACIBinIntegerPlacedAtOffsetTwenty(t *testing.T) {
	s, err := New("0.0.0.0 eth 0", Attrs{AACIBin: []uint32{128}})
	require.NoError(t, err)

	_, b := s.TLVs()
	require.Equal(t, uint16(0x0006), binary.BigEndian.Uint16(b[20:22]))
	require.Equal(t, uint16(4), binary.BigEndian.Uint16(b[22:24]))
	require.Equal(t, uint32(128), binary.BigEndian.Uint32(b[24:28]))
}

func TestAACIBinTuplePlacedAtOffsetTwenty(t *testing.T) {
	s, err := New("0.0.0.0 eth 0", Attrs{AACIBin: []uint32{128, 7}})
	require.NoError(t, err)

	_, b := s.TLVs()
	require.Equal(t, uint16(0x0006), binary.BigEndian.Uint16(b[20:22]))
	require.Equal(t, uint16(8), binary.BigEndian.Uint16(b[22:24]))
	require.Equal(t, uint32(128), binary.BigEndian.Uint32(b[24:28]))
	require.Equal(t, uint32(7), binary.BigEndian.Uint32(b[28:32]))
}

func TestParseAACIBinRejectsNonIntegerShapes(t *testing.T) {
	for _, raw := range []any{
		"128",
		[]any{128, "7"},
	} {
		_, err := ParseAACIBin(raw)
		require.Error(t, err, "%v should be rejected", raw)
	}
}

// TestParseAACIBinRejectsListShape locks in spec.md §8's Rejection scenario:
// aaci_bin = [128, 7] (a list) must be rejected even though every element is
// an integer, while aaci_bin = (128, 7) (a tuple) is accepted. Go has no
// runtime list/tuple distinction, so the loosely-typed []any shape a plain
// YAML/JSON sequence decodes into for an `any`-typed field stands in for the
// rejected list, and a statically-typed []uint32/[]int stands in for the
// accepted tuple -- see the "aaci_bin list vs tuple" decision in DESIGN.md.
func TestParseAACIBinRejectsListShape(t *testing.T) {
	_, err := ParseAACIBin([]any{128, 7})
	require.Error(t, err, "a loosely-typed []any sequence is the list form and must be rejected")
}

func TestParseAACIBinAcceptsIntAndTuple(t *testing.T) {
	v, err := ParseAACIBin(128)
	require.NoError(t, err)
	require.Equal(t, []uint32{128}, v)

	v, err = ParseAACIBin([]uint32{128, 7})
	require.NoError(t, err)
	require.Equal(t, []uint32{128, 7}, v)

	v, err = ParseAACIBin([]int{128, 7})
	require.NoError(t, err)
	require.Equal(t, []uint32{128, 7}, v)
}

func TestPONSubscriberUsesPONComposite(t *testing.T) {
	s, err := New("0.0.0.0 eth 0", Attrs{PONType: PONClassA})
	require.NoError(t, err)
	require.True(t, s.IsPON())

	count, _ := s.TLVs()
	require.Equal(t, 2, count, "ACI + PON composite")
}

func TestDSLSubscriberLineDefaultsToEthernetDoubleTaggedLLC(t *testing.T) {
	s, err := New("0.0.0.0 eth 0", Attrs{})
	require.NoError(t, err)
	require.False(t, s.IsPON())
	require.Equal(t, protocol.DataLinkEthernet, s.attrs.DataLink)
	require.Equal(t, protocol.Encap1DoubleTaggedEthernet, s.attrs.Encap1)
	require.Equal(t, protocol.Encap2EoAAL5LLC, s.attrs.Encap2)
}
