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
	"sync"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/facebook/ancp/ancp/protocol"
)

// DefaultPort is the well-known TCP port an ANCP NAS listens on.
const DefaultPort = 6068

// defaultReadTimeout is the socket-level read deadline that doubles as
// this client's only clock source for keep-alives, per spec.md §5.
const defaultReadTimeout = time.Second

// connectWaitTicks bounds how long Connect waits for the established
// latch: 6 ticks of defaultReadTimeout, per spec.md §5.
const connectWaitTicks = 6

// disconnectJoinTimeout bounds how long Disconnect waits for the reader
// goroutine to exit.
const disconnectJoinTimeout = time.Second

// Config configures a new Client.
type Config struct {
	Address       string
	Port          int // defaults to DefaultPort
	SourceAddress string

	Version  uint8 // defaults to protocol.RFCVersion
	TechType protocol.TechType
	// Timer is the adjacency timer in seconds; defaults to 25.
	Timer float64

	Capabilities []protocol.Capability // defaults to [TOPO]

	// Metrics, when non-nil, receives counters for this client's
	// activity. See NewMetrics.
	Metrics *Metrics
}

// Client impersonates an Access Node: it maintains one ANCP adjacency
// with a NAS and publishes subscriber Port-Up/Port-Down events over it.
// A Client is single-use: construct one, call Connect once, submit
// subscribers while established, then Disconnect.
type Client struct {
	cfg Config

	conn Conn

	// txMu serializes every send on the socket: adjacency PDUs from the
	// engine and Port-Up/Port-Down batches from callers, per spec.md §5.
	txMu sync.Mutex

	// state is mutated only by the reader goroutine.
	state protocol.AdjacencyState

	senderName     protocol.Name
	senderInstance protocol.Instance24
	senderPort     uint32

	receiverName     protocol.Name
	receiverInstance protocol.Instance24
	receiverPort     uint32

	lastSynTime time.Time

	// transactionID is mutated only by caller threads under txMu.
	transactionID uint32

	// establishedMu guards establishedFlag; establishedCh is closed
	// exactly once, the first time the engine reaches ESTAB, so Connect
	// can block on it with a bounded wait.
	establishedMu   sync.Mutex
	establishedFlag bool
	establishedOnce sync.Once
	establishedCh   chan struct{}

	readerErr chan error
	eg        *errgroup.Group
}

// New constructs a Client from cfg. It does not open any connection;
// call Connect to do that.
func New(cfg Config) *Client {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Version == 0 {
		cfg.Version = protocol.RFCVersion
	}
	if cfg.Timer == 0 {
		cfg.Timer = 25.0
	}
	if len(cfg.Capabilities) == 0 {
		cfg.Capabilities = []protocol.Capability{protocol.CapTopology}
	}

	senderName := protocol.Name{1, 2, 3, 4, 5, 6}
	if cfg.SourceAddress != "" {
		if ip := net.ParseIP(cfg.SourceAddress).To4(); ip != nil {
			senderName = protocol.Name{ip[0], ip[1], ip[2], ip[3], 0, 0}
		}
	}

	return &Client{
		cfg:            cfg,
		state:          protocol.StateIdle,
		senderName:     senderName,
		senderInstance: 0x1000001,
		transactionID:  1,
		establishedCh:  make(chan struct{}),
		readerErr:      make(chan error, 1),
	}
}

// Established reports whether the adjacency has latched established and
// has not since been cleared by Disconnect or by a peer RSTACK.
func (c *Client) Established() bool {
	c.establishedMu.Lock()
	defer c.establishedMu.Unlock()
	return c.establishedFlag
}

// latchEstablished sets the established flag and, the first time it is
// called, closes establishedCh so Connect's bounded wait unblocks.
func (c *Client) latchEstablished() {
	c.establishedMu.Lock()
	c.establishedFlag = true
	c.establishedMu.Unlock()
	c.establishedOnce.Do(func() { close(c.establishedCh) })
}

// clearEstablished resets the established latch on disconnect.
func (c *Client) clearEstablished() {
	c.establishedMu.Lock()
	c.establishedFlag = false
	c.establishedMu.Unlock()
}

// State returns the adjacency engine's current state. Callers may
// observe it without synchronization only transiently; Established is
// the authoritative cross-thread signal, per spec.md §5.
func (c *Client) State() protocol.AdjacencyState {
	return c.state
}

func (c *Client) timerTenths() uint8 {
	v := c.cfg.Timer * 10
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func (c *Client) logSent(code protocol.AdjacencyCode, msg string, args ...any) {
	log.Infof(color.GreenString("client -> %s (%s)", code, fmt.Sprintf(msg, args...)))
}

func (c *Client) logReceived(code protocol.AdjacencyCode, msg string, args ...any) {
	log.Infof(color.BlueString("server -> %s (%s)", code, fmt.Sprintf(msg, args...)))
}
