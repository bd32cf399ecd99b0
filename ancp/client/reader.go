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

package client

import (
	"errors"
	"net"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/facebook/ancp/ancp/protocol"
)

// runReader is the background RX loop: exactly one goroutine ever
// issues reads on the socket, per spec.md §5. It parses frame headers,
// dispatches to the adjacency state machine, and reacts to read
// timeouts as the sole keep-alive clock.
func (c *Client) runReader() error {
	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(defaultReadTimeout)); err != nil {
			return err
		}

		header, err := protocol.ReadFrameHeader(c.conn)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				if err := c.handleTimeout(); err != nil {
					return err
				}
				continue
			}
			return err
		}

		body, err := protocol.ReadFrameBody(c.conn, header)
		if err != nil {
			return err
		}

		terminal, err := c.dispatchFrame(body)
		if err != nil {
			return err
		}
		if terminal {
			// the peer reset the adjacency: drop the latch and the socket.
			c.clearEstablished()
			return c.conn.Close()
		}
	}
}

// dispatchFrame demuxes one PDU body by message type, per spec.md §4.4.
func (c *Client) dispatchFrame(body []byte) (terminal bool, err error) {
	prefix, err := protocol.DecodePDUPrefix(body)
	if err != nil {
		return false, err
	}

	switch prefix.MessageType {
	case protocol.MessageAdjacency:
		return c.handleAdjacencyFrame(prefix, body)
	case protocol.MessageAdjacencyUpdate:
		result, code := prefix.Var>>12, prefix.Var&0x0fff
		log.Debugf("received adjacency update: result=%d code=%d, no action required", result, code)
		return false, nil
	case protocol.MessagePortUp, protocol.MessagePortDown:
		log.Debugf("received %s, ignoring: AN role does not decode inbound general messages", prefix.MessageType)
		return false, nil
	default:
		log.Debugf("received unsupported message type %d, ignoring", prefix.MessageType)
		return false, nil
	}
}

func (c *Client) handleAdjacencyFrame(prefix *protocol.PDUPrefix, body []byte) (terminal bool, err error) {
	if !protocol.SupportsVersion(prefix.Version) {
		log.Errorf("peer adjacency version %d outside supported window [%s, %s]",
			prefix.Version, protocol.MinSupportedVersion, protocol.MaxSupportedVersion)
		return false, ErrUnsupportedVersion
	}

	hdr, err := protocol.DecodeAdjacencyHeader(prefix.Var, body)
	if err != nil {
		return false, err
	}
	if !hdr.M {
		log.Errorf("peer adjacency PDU has M=0, expected NAS (M=1)")
		return false, ErrWrongRole
	}

	c.receiverName = hdr.ReceiverName
	c.receiverInstance = hdr.ReceiverInstance

	switch hdr.Code {
	case protocol.CodeSyn:
		return false, c.handleSyn()
	case protocol.CodeSynAck:
		return false, c.handleSynAck()
	case protocol.CodeAck:
		return false, c.handleAck()
	case protocol.CodeRstAck:
		return c.handleRstAck()
	default:
		log.Warningf("unknown adjacency code %d, ignoring", hdr.Code)
		return false, nil
	}
}
