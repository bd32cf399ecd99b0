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
	"fmt"
	"net"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/facebook/ancp/ancp/protocol"
)

// Connect dials the NAS, sends the initial SYN, and spawns the reader
// goroutine that owns the socket thereafter. It blocks for up to
// connectWaitTicks*defaultReadTimeout waiting for the adjacency to reach
// ESTAB, and returns whether it did. Connect may be called only once per
// Client.
func (c *Client) Connect() (bool, error) {
	if c.conn != nil {
		return false, ErrAlreadyConnected
	}

	address := net.JoinHostPort(c.cfg.Address, fmt.Sprintf("%d", c.cfg.Port))
	conn, err := dialConn(address, c.cfg.SourceAddress)
	if err != nil {
		return false, fmt.Errorf("dial %s: %w", address, err)
	}
	c.conn = conn

	var eg errgroup.Group
	c.eg = &eg
	eg.Go(func() error {
		err := c.runReader()
		c.readerErr <- err
		return err
	})

	if err := c.handleConnect(); err != nil {
		return false, fmt.Errorf("send initial SYN: %w", err)
	}

	select {
	case <-c.establishedCh:
		return true, nil
	case err := <-c.readerErr:
		return false, err
	case <-time.After(connectWaitTicks * defaultReadTimeout):
		log.Warnf("adjacency not established within %v", connectWaitTicks*defaultReadTimeout)
		return false, nil
	}
}

// Disconnect tears the adjacency down: it sends a final ACK (sendAck
// true) or resets with RSTACK (sendAck false) if still established, then
// closes the socket to unblock the reader goroutine and joins it. It
// clears the established latch unconditionally.
func (c *Client) Disconnect(sendAck bool) error {
	defer c.clearEstablished()

	var sendErr error
	if c.Established() {
		if sendAck {
			sendErr = c.sendAdjacency(false, protocol.CodeAck)
		} else {
			sendErr = c.sendRstAck()
		}
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil && sendErr == nil {
			sendErr = err
		}
	}

	if c.eg != nil {
		done := make(chan struct{})
		go func() {
			_ = c.eg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(disconnectJoinTimeout):
			log.Warnf("reader goroutine did not exit within %v", disconnectJoinTimeout)
		}
	}

	return sendErr
}
