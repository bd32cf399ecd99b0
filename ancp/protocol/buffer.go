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

// Package protocol implements the ANCP (RFC 6320) wire format: the
// adjacency and general PDU layouts and the TLV tree that carries
// per-subscriber line attributes.
package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// padLen returns the number of zero padding bytes needed to round n up
// to the next multiple of 4.
func padLen(n int) int {
	if r := n % 4; r != 0 {
		return 4 - r
	}
	return 0
}

// padTo4 rounds n up to the next multiple of 4.
func padTo4(n int) int {
	return n + padLen(n)
}

// appendUint16 appends v to b in big-endian order.
func appendUint16(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

// appendUint32 appends v to b in big-endian order.
func appendUint32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

// readFull reads exactly len(buf) bytes from r, the way the Python
// client's _recvall does with socket.recv_into: a short read that isn't
// EOF keeps looping, and a zero-byte read means the peer is gone.
func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	if err != nil {
		return fmt.Errorf("reading %d bytes: %w", len(buf), err)
	}
	return nil
}
