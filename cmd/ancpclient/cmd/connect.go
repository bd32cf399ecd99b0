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

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/ancp/ancp/client"
	"github.com/facebook/ancp/ancp/protocol"
)

var (
	connectAddress  string
	connectPort     int
	connectSource   string
	connectMetrics  int
	connectTechType string
	connectTimer    float64
)

// techTypeByName maps the --tech-type flag's value to the wire tech type,
// the same name-to-constant lookup style batch.go uses for dsl_type/pon_type.
var techTypeByName = map[string]protocol.TechType{
	"any": protocol.TechAny,
	"pon": protocol.TechPON,
	"dsl": protocol.TechDSL,
}

func init() {
	RootCmd.AddCommand(connectCmd)
	connectCmd.Flags().StringVar(&connectAddress, "address", "", "address of the NAS to connect to")
	connectCmd.Flags().IntVar(&connectPort, "port", client.DefaultPort, "TCP port the NAS listens on")
	connectCmd.Flags().StringVar(&connectSource, "source", "", "local source address to bind to, empty means any")
	connectCmd.Flags().IntVar(&connectMetrics, "metrics-port", 0, "port to serve Prometheus metrics on, 0 disables it")
	connectCmd.Flags().StringVar(&connectTechType, "tech-type", "any", "access technology of the line: any, pon, or dsl")
	connectCmd.Flags().Float64Var(&connectTimer, "timer", 25.0, "adjacency timer in seconds")
	_ = connectCmd.MarkFlagRequired("address")
}

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Open an ANCP adjacency with a NAS and hold it open",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()

		techType, ok := techTypeByName[connectTechType]
		if !ok {
			log.Fatal(fmt.Errorf("unknown tech-type %q", connectTechType))
		}

		var metrics *client.Metrics
		if connectMetrics != 0 {
			metrics = client.NewMetrics()
			go func() {
				if err := metrics.Serve(connectMetrics); err != nil {
					log.Errorf("metrics server stopped: %v", err)
				}
			}()
		}

		c := client.New(client.Config{
			Address:       connectAddress,
			Port:          connectPort,
			SourceAddress: connectSource,
			TechType:      techType,
			Timer:         connectTimer,
			Metrics:       metrics,
		})

		established, err := c.Connect()
		if err != nil {
			log.Fatal(err)
		}
		if !established {
			log.Fatal(fmt.Errorf("adjacency did not reach ESTAB"))
		}
		log.Infof("adjacency established with %s", connectAddress)

		sigStop := make(chan os.Signal, 1)
		signal.Notify(sigStop, syscall.SIGINT, syscall.SIGTERM)
		<-sigStop

		log.Info("shutting down, sending final ACK")
		if err := c.Disconnect(true); err != nil {
			log.Errorf("disconnect: %v", err)
		}
	},
}
