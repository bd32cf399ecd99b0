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
	log "github.com/sirupsen/logrus"

	"github.com/facebook/ancp/ancp/protocol"
	"github.com/facebook/ancp/ancp/subscriber"
)

// PortUp announces one or more subscribers as coming into service.
// Per spec.md §4.5, every subscriber in the batch is encoded as its own
// GeneralPDU, and the whole batch is written to the socket in a single
// write under the TX mutex.
func (c *Client) PortUp(subs ...*subscriber.Subscriber) error {
	return c.sendGeneral(protocol.MessagePortUp, subs)
}

// PortDown announces one or more subscribers as going out of service.
func (c *Client) PortDown(subs ...*subscriber.Subscriber) error {
	return c.sendGeneral(protocol.MessagePortDown, subs)
}

func (c *Client) sendGeneral(mtype protocol.MessageType, subs []*subscriber.Subscriber) error {
	if len(subs) == 0 {
		return ErrEmptySubscribers
	}
	if !c.Established() {
		return ErrNotEstablished
	}

	c.txMu.Lock()
	defer c.txMu.Unlock()

	var batch []byte
	for _, s := range subs {
		tlvCount, tlvPayload := s.TLVs()
		pdu := &protocol.GeneralPDU{
			Version:       c.cfg.Version,
			MessageType:   mtype,
			TechType:      c.cfg.TechType,
			TransactionID: c.transactionID,
			TLVCount:      tlvCount,
			TLVPayload:    tlvPayload,
		}
		c.transactionID++
		batch = append(batch, protocol.EncodeGeneralPDU(pdu)...)
	}

	if _, err := c.conn.Write(batch); err != nil {
		return err
	}
	if c.cfg.Metrics != nil {
		c.cfg.Metrics.generalSent.WithLabelValues(mtype.String()).Add(float64(len(subs)))
	}
	log.Infof("sent %s for %d subscriber(s) in one batch", mtype, len(subs))
	return nil
}
