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

// Package client implements the ANCP Access Node client: the adjacency
// state machine and the driver that owns the TCP connection to the NAS.
package client

import "errors"

// Sentinel errors. ErrNotEstablished, ErrEmptySubscribers and
// ErrAlreadyConnected are caller contract errors, per spec.md §7: surfaced
// synchronously, no PDU is written. ErrWrongRole and ErrUnsupportedVersion
// end the reader when a peer's adjacency PDU is rejected.
var (
	// ErrNotEstablished is returned by PortUp/PortDown when called before
	// the adjacency has been established.
	ErrNotEstablished = errors.New("ancp: session not established")
	// ErrEmptySubscribers is returned by PortUp/PortDown when given no
	// subscribers.
	ErrEmptySubscribers = errors.New("ancp: empty subscriber list")
	// ErrWrongRole is returned when the peer's M-bit indicates it is not
	// acting as the NAS half of the handshake.
	ErrWrongRole = errors.New("ancp: peer adjacency PDU has M=0, expected NAS (M=1)")
	// ErrAlreadyConnected is returned by Connect if called more than once.
	ErrAlreadyConnected = errors.New("ancp: client is single-use, already connected")
	// ErrUnsupportedVersion is returned when a peer's adjacency PDU
	// carries a protocol version outside this client's supported window.
	ErrUnsupportedVersion = errors.New("ancp: peer adjacency version unsupported")
)
