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
	"bytes"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/facebook/ancp/ancp/protocol"
)

// LayerANCP wraps one decoded ANCP frame for gopacket, the TCP-port
// analogue of a per-protocol gopacket layer.
type LayerANCP struct {
	layers.BaseLayer

	MessageType protocol.MessageType
}

// LayerTypeANCP is registered as a gopacket layer type.
var LayerTypeANCP = gopacket.RegisterLayerType(
	8806, // arbitrary unique ID, chosen the way pshark picks one for PTP
	gopacket.LayerTypeMetadata{
		Name:    "ANCP",
		Decoder: gopacket.DecodeFunc(decodeANCP),
	},
)

// LayerType returns the type this layer implements.
func (l *LayerANCP) LayerType() gopacket.LayerType { return LayerTypeANCP }

// Payload is empty; ANCP is the innermost layer this tool decodes.
func (l *LayerANCP) Payload() []byte { return nil }

func decodeANCP(data []byte, p gopacket.PacketBuilder) error {
	r := bytes.NewReader(data)
	header, err := protocol.ReadFrameHeader(r)
	if err != nil {
		return fmt.Errorf("decoding ANCP frame: %w", err)
	}
	body, err := protocol.ReadFrameBody(r, header)
	if err != nil {
		return fmt.Errorf("decoding ANCP frame body: %w", err)
	}
	prefix, err := protocol.DecodePDUPrefix(body)
	if err != nil {
		return fmt.Errorf("decoding ANCP PDU prefix: %w", err)
	}
	l := &LayerANCP{MessageType: prefix.MessageType}
	l.BaseLayer = layers.BaseLayer{Contents: data}
	p.AddLayer(l)
	p.SetApplicationLayer(l)
	return nil
}

type packetHandle interface {
	gopacket.PacketDataSource
	LinkType() layers.LinkType
}

// DumpCapture is an offline debug aid: it decodes ANCP frames out of a
// .pcap/.pcapng capture of traffic to/from port and dumps them to
// stdout. It never touches a live socket, so it does not reintroduce the
// inbound general-message decoding this client otherwise skips.
func DumpCapture(input string, port int) error {
	layers.RegisterTCPPortLayerType(layers.TCPPort(port), LayerTypeANCP)

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	var handle packetHandle
	handle, err = pcapgo.NewNgReader(f, pcapgo.DefaultNgReaderOptions)
	if err != nil {
		if _, serr := f.Seek(0, 0); serr != nil {
			return fmt.Errorf("seeking in %s: %w", input, serr)
		}
		handle, err = pcapgo.NewReader(f)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", input, err)
		}
	}

	packetSource := gopacket.NewPacketSource(handle, handle.LinkType())
	for packet := range packetSource.Packets() {
		ancpLayer := packet.Layer(LayerTypeANCP)
		if ancpLayer == nil {
			continue
		}
		frame, _ := ancpLayer.(*LayerANCP)

		var srcIP, dstIP net.IP
		var srcPort, dstPort layers.TCPPort
		if ip4 := packet.Layer(layers.LayerTypeIPv4); ip4 != nil {
			ip, _ := ip4.(*layers.IPv4)
			srcIP, dstIP = ip.SrcIP, ip.DstIP
		} else if ip6 := packet.Layer(layers.LayerTypeIPv6); ip6 != nil {
			ip, _ := ip6.(*layers.IPv6)
			srcIP, dstIP = ip.SrcIP, ip.DstIP
		}
		if tcp := packet.Layer(layers.LayerTypeTCP); tcp != nil {
			t, _ := tcp.(*layers.TCP)
			srcPort, dstPort = t.SrcPort, t.DstPort
		}

		spew.Printf("%s -> %s  %s\n",
			net.JoinHostPort(srcIP.String(), strconv.Itoa(int(srcPort))),
			net.JoinHostPort(dstIP.String(), strconv.Itoa(int(dstPort))),
			frame.MessageType)

		if err := packet.ErrorLayer(); err != nil {
			return fmt.Errorf("failed to decode packet: %w", err.Error())
		}
	}
	return nil
}
