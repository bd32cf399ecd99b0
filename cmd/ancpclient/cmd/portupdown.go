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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/ancp/ancp/client"
	"github.com/facebook/ancp/ancp/subscriber"
)

var (
	batchAddress string
	batchPort    int
	batchFile    string
)

func init() {
	RootCmd.AddCommand(portUpCmd, portDownCmd)
	for _, c := range []*cobra.Command{portUpCmd, portDownCmd} {
		c.Flags().StringVar(&batchAddress, "address", "", "address of the NAS to connect to")
		c.Flags().IntVar(&batchPort, "port", client.DefaultPort, "TCP port the NAS listens on")
		c.Flags().StringVar(&batchFile, "file", "", "path to a YAML subscriber batch file")
		_ = c.MarkFlagRequired("address")
		_ = c.MarkFlagRequired("file")
	}
}

func runBatch(direction string, sendBatch func(*client.Client, ...*subscriber.Subscriber) error) {
	ConfigureVerbosity()

	subs, err := readBatch(batchFile)
	if err != nil {
		log.Fatal(err)
	}

	c := client.New(client.Config{Address: batchAddress, Port: batchPort})
	established, err := c.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if !established {
		log.Fatal(fmt.Errorf("adjacency did not reach ESTAB"))
	}
	defer func() { _ = c.Disconnect(true) }()

	if err := sendBatch(c, subs...); err != nil {
		log.Fatal(err)
	}
	log.Infof("sent %s for %d subscriber(s)", direction, len(subs))
}

var portUpCmd = &cobra.Command{
	Use:   "portup",
	Short: "Announce subscribers from a batch file as coming into service",
	Run: func(_ *cobra.Command, _ []string) {
		runBatch("PORT_UP", (*client.Client).PortUp)
	},
}

var portDownCmd = &cobra.Command{
	Use:   "portdown",
	Short: "Announce subscribers from a batch file as going out of service",
	Run: func(_ *cobra.Command, _ []string) {
		runBatch("PORT_DOWN", (*client.Client).PortDown)
	},
}
