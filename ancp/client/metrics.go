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
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Metrics holds the Prometheus collectors a Client reports into. A nil
// *Metrics disables instrumentation entirely; Client checks for that
// before every increment.
type Metrics struct {
	registry *prometheus.Registry

	adjacencySent  *prometheus.CounterVec
	generalSent    *prometheus.CounterVec
	readerTimeouts prometheus.Counter
	keepAlives     prometheus.Counter
}

// NewMetrics builds a Metrics registered against a fresh registry, ready
// to be served over HTTP via Serve.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		adjacencySent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ancp_adjacency_pdus_sent_total",
			Help: "Adjacency PDUs sent, by code (SYN/SYNACK/ACK/RSTACK).",
		}, []string{"code"}),
		generalSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ancp_general_pdus_sent_total",
			Help: "PORT-UP/PORT-DOWN PDUs sent, by message type.",
		}, []string{"type"}),
		readerTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ancp_reader_timeouts_total",
			Help: "Number of times the socket read deadline expired.",
		}),
		keepAlives: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ancp_keepalive_syn_sent_total",
			Help: "Keep-alive SYNs sent while the adjacency was established.",
		}),
	}
	m.registry.MustRegister(m.adjacencySent, m.generalSent, m.readerTimeouts, m.keepAlives)
	return m
}

// Serve blocks, exposing the metrics at /metrics on port, matching the
// registry-plus-promhttp pattern the ptp4u/sptp commands use for their
// own exporters.
func (m *Metrics) Serve(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	log.Infof("serving ancp client metrics on :%d/metrics", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
