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
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/facebook/ancp/ancp/protocol"
)

// sendAdjacency builds and writes one ADJACENCY PDU under the TX mutex.
func (c *Client) sendAdjacency(m bool, code protocol.AdjacencyCode) error {
	p := &protocol.AdjacencyPDU{
		Version:          c.cfg.Version,
		TimerTenths:      c.timerTenths(),
		M:                m,
		Code:             code,
		SenderName:       c.senderName,
		ReceiverName:     c.receiverName,
		SenderPort:       c.senderPort,
		ReceiverPort:     c.receiverPort,
		SenderInstance:   c.senderInstance,
		ReceiverInstance: c.receiverInstance,
		Capabilities:     c.cfg.Capabilities,
	}
	b := protocol.EncodeAdjacency(p)

	c.txMu.Lock()
	defer c.txMu.Unlock()
	_, err := c.conn.Write(b)
	if err == nil && c.cfg.Metrics != nil {
		c.cfg.Metrics.adjacencySent.WithLabelValues(code.String()).Inc()
	}
	return err
}

func (c *Client) sendSyn() error {
	if err := c.sendAdjacency(false, protocol.CodeSyn); err != nil {
		return err
	}
	c.state = protocol.StateSynSent
	c.lastSynTime = time.Now()
	c.logSent(protocol.CodeSyn, "state now %s", c.state)
	return nil
}

func (c *Client) sendAck() error {
	err := c.sendAdjacency(false, protocol.CodeAck)
	c.logSent(protocol.CodeAck, "state %s", c.state)
	return err
}

func (c *Client) sendSynAck() error {
	if err := c.sendAdjacency(false, protocol.CodeSynAck); err != nil {
		return err
	}
	c.state = protocol.StateSynRcvd
	c.logSent(protocol.CodeSynAck, "state now %s", c.state)
	return nil
}

func (c *Client) sendRstAck() error {
	return c.sendAdjacency(false, protocol.CodeRstAck)
}

// enterEstablished transitions into ESTAB, latching the established
// signal exactly once, per spec.md §4.4.
func (c *Client) enterEstablished() {
	wasEstablished := c.state == protocol.StateEstablished
	c.state = protocol.StateEstablished
	if !wasEstablished {
		c.latchEstablished()
		log.Infof("adjacency established with %s", c.receiverName)
	}
}

// handleConnect is the initial event: emit SYN and enter SYNSENT.
func (c *Client) handleConnect() error {
	return c.sendSyn()
}

// handleTimeout reacts to the receive loop's read deadline expiring, the
// engine's only time source for keep-alives, per spec.md §4.4/§9.
func (c *Client) handleTimeout() error {
	if c.cfg.Metrics != nil {
		c.cfg.Metrics.readerTimeouts.Inc()
	}
	switch c.state {
	case protocol.StateSynSent:
		return c.sendSyn()
	case protocol.StateEstablished:
		if time.Since(c.lastSynTime) >= time.Duration(c.cfg.Timer*float64(time.Second)) {
			if err := c.sendAdjacency(false, protocol.CodeSyn); err != nil {
				return err
			}
			c.lastSynTime = time.Now()
			if c.cfg.Metrics != nil {
				c.cfg.Metrics.keepAlives.Inc()
			}
		}
	}
	return nil
}

// handleSyn reacts to a received SYN, per the "SYN rx" column of
// spec.md §4.4.
func (c *Client) handleSyn() error {
	c.logReceived(protocol.CodeSyn, "state %s", c.state)
	switch c.state {
	case protocol.StateIdle:
		return c.sendSyn()
	case protocol.StateSynSent:
		return c.sendSynAck()
	case protocol.StateSynRcvd:
		return c.sendSynAck()
	case protocol.StateEstablished:
		return c.sendAck()
	default:
		log.Warningf("SYN received in unmappable state %s, ignoring", c.state)
		return nil
	}
}

// handleSynAck reacts to a received SYNACK.
func (c *Client) handleSynAck() error {
	c.logReceived(protocol.CodeSynAck, "state %s", c.state)
	switch c.state {
	case protocol.StateSynSent:
		if err := c.sendAck(); err != nil {
			return err
		}
		c.enterEstablished()
		return nil
	case protocol.StateSynRcvd:
		return c.sendAck()
	case protocol.StateEstablished:
		return c.sendAck()
	default:
		log.Warningf("SYNACK received in unmappable state %s, ignoring", c.state)
		return nil
	}
}

// handleAck reacts to a received ACK.
func (c *Client) handleAck() error {
	c.logReceived(protocol.CodeAck, "state %s", c.state)
	switch c.state {
	case protocol.StateSynSent:
		if err := c.sendRstAck(); err != nil {
			return err
		}
		log.Warningf("stale ACK received in SYNSENT")
		return nil
	case protocol.StateSynRcvd:
		if err := c.sendAck(); err != nil {
			return err
		}
		c.enterEstablished()
		return nil
	case protocol.StateEstablished:
		return nil
	default:
		log.Warningf("ACK received in unmappable state %s, ignoring", c.state)
		return nil
	}
}

// handleRstAck reacts to a received RSTACK: a reset request from the
// peer. SYNSENT ignores it; SYNRCVD and ESTAB report it as terminal, upon
// which runReader clears the established latch, closes the socket and exits
// (ESTAB sends a final ACK first, matching spec.md §8's "Disconnect on
// RSTACK" scenario).
func (c *Client) handleRstAck() (terminal bool, err error) {
	c.logReceived(protocol.CodeRstAck, "state %s", c.state)
	switch c.state {
	case protocol.StateSynSent:
		return false, nil
	case protocol.StateSynRcvd:
		return true, nil
	case protocol.StateEstablished:
		if err := c.sendAck(); err != nil {
			return true, err
		}
		return true, nil
	default:
		log.Warningf("RSTACK received in unmappable state %s, ignoring", c.state)
		return false, nil
	}
}
