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
	"time"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/ancp/ancp/client"
)

var (
	statusAddress string
	statusPort    int
	statusWait    time.Duration
)

func init() {
	RootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusAddress, "address", "", "address of the NAS to connect to")
	statusCmd.Flags().IntVar(&statusPort, "port", client.DefaultPort, "TCP port the NAS listens on")
	statusCmd.Flags().DurationVar(&statusWait, "hold", 3*time.Second, "how long to hold the adjacency open before reporting")
	_ = statusCmd.MarkFlagRequired("address")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Open an adjacency briefly and report its final state",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()

		c := client.New(client.Config{Address: statusAddress, Port: statusPort})
		established, err := c.Connect()
		if err != nil {
			log.Fatal(err)
		}
		time.Sleep(statusWait)
		_ = c.Disconnect(true)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetColWidth(20)
		table.SetHeader([]string{"address", "port", "established", "final state"})
		table.Append([]string{
			statusAddress,
			fmt.Sprintf("%d", statusPort),
			fmt.Sprintf("%v", established),
			c.State().String(),
		})
		table.Render()
	},
}
