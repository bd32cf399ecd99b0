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

	yaml "gopkg.in/yaml.v2"

	"github.com/facebook/ancp/ancp/subscriber"
)

// subscriberEntry is the YAML shape of one subscriber in a batch file
// handed to the portup/portdown subcommands.
type subscriberEntry struct {
	ACI       string `yaml:"aci"`
	ARI       string `yaml:"ari"`
	AACIASCII string `yaml:"aaci_ascii"`
	// AACIBin takes a single integer (`aaci_bin: 128`). A plain YAML
	// sequence here decodes into the loosely-typed []any shape and is
	// rejected by ParseAACIBin as a list, per spec.md §8's Rejection
	// scenario; a multi-word AACI-binary value must use AACIBinTuple
	// instead, see the "aaci_bin list vs tuple" decision in DESIGN.md.
	AACIBin any `yaml:"aaci_bin"`
	// AACIBinTuple is the dedicated, statically-typed field for a
	// multi-word AACI-binary value (`aaci_bin_tuple: [128, 7]`): being
	// declared []uint32 rather than `any`, the YAML decoder itself
	// type-checks every element, so this is always the tuple-equivalent
	// shape and is never rejected the way a plain AACIBin sequence is.
	AACIBinTuple []uint32 `yaml:"aaci_bin_tuple"`

	State string `yaml:"state"`
	Up    uint32 `yaml:"up"`
	Down  uint32 `yaml:"down"`

	DSLType string `yaml:"dsl_type"`

	PONType    string  `yaml:"pon_type"`
	OntOnuUp   *uint32 `yaml:"pon_ont_onu_up"`
	OntOnuDown *uint32 `yaml:"pon_ont_onu_down"`
}

type subscriberBatch struct {
	Subscribers []subscriberEntry `yaml:"subscribers"`
}

var lineStateByName = map[string]subscriber.LineState{
	"showtime": subscriber.Showtime,
	"idle":     subscriber.Idle,
	"silent":   subscriber.Silent,
}

var dslTypeByName = map[string]subscriber.DSLType{
	"other":     subscriber.DSLOther,
	"adsl":      subscriber.DSLADSL,
	"adsl2":     subscriber.DSLADSL2,
	"adsl2plus": subscriber.DSLADSL2Plus,
	"vdsl1":     subscriber.DSLVDSL1,
	"vdsl2":     subscriber.DSLVDSL2,
	"sdsl":      subscriber.DSLSDSL,
	"gfast":     subscriber.DSLGfast,
}

var ponTypeByName = map[string]subscriber.PONType{
	"":       subscriber.PONUnknown,
	"classa": subscriber.PONClassA,
	"classb": subscriber.PONClassB,
	"classc": subscriber.PONClassC,
}

// readBatch loads and validates a YAML subscriber batch file.
func readBatch(path string) ([]*subscriber.Subscriber, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var batch subscriberBatch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(batch.Subscribers) == 0 {
		return nil, fmt.Errorf("%s declares no subscribers", path)
	}

	subs := make([]*subscriber.Subscriber, 0, len(batch.Subscribers))
	for i, e := range batch.Subscribers {
		s, err := e.toSubscriber()
		if err != nil {
			return nil, fmt.Errorf("subscriber #%d (%q): %w", i, e.ACI, err)
		}
		subs = append(subs, s)
	}
	return subs, nil
}

func (e subscriberEntry) toSubscriber() (*subscriber.Subscriber, error) {
	if e.AACIBin != nil && len(e.AACIBinTuple) > 0 {
		return nil, fmt.Errorf("aaci_bin and aaci_bin_tuple are mutually exclusive")
	}
	var aaciBin []uint32
	var err error
	if len(e.AACIBinTuple) > 0 {
		aaciBin, err = subscriber.ParseAACIBin(e.AACIBinTuple)
	} else {
		aaciBin, err = subscriber.ParseAACIBin(e.AACIBin)
	}
	if err != nil {
		return nil, err
	}

	state := subscriber.Showtime
	if e.State != "" {
		var ok bool
		state, ok = lineStateByName[e.State]
		if !ok {
			return nil, fmt.Errorf("unknown state %q", e.State)
		}
	}

	dslType, ok := dslTypeByName[e.DSLType]
	if e.DSLType != "" && !ok {
		return nil, fmt.Errorf("unknown dsl_type %q", e.DSLType)
	}

	ponType, ok := ponTypeByName[e.PONType]
	if !ok {
		return nil, fmt.Errorf("unknown pon_type %q", e.PONType)
	}

	return subscriber.New(e.ACI, subscriber.Attrs{
		ARI:        e.ARI,
		AACIASCII:  e.AACIASCII,
		AACIBin:    aaciBin,
		State:      state,
		Up:         e.Up,
		Down:       e.Down,
		DSLType:    dslType,
		PONType:    ponType,
		OntOnuUp:   e.OntOnuUp,
		OntOnuDown: e.OntOnuDown,
	})
}
