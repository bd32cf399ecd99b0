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
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/ancp/ancp/client"
)

var capturePort int

func init() {
	RootCmd.AddCommand(captureCmd)
	captureCmd.Flags().IntVar(&capturePort, "port", client.DefaultPort, "TCP port ANCP traffic was captured on")
}

var captureCmd = &cobra.Command{
	Use:   "debug-capture [file]",
	Short: "Decode ANCP frames from a .pcap/.pcapng capture file and dump them to stdout",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ConfigureVerbosity()
		if err := client.DumpCapture(args[0], capturePort); err != nil {
			log.Fatal(err)
		}
	},
}
