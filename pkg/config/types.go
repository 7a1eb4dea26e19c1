package config

import (
	"fmt"
	"net"

	"gopkg.in/yaml.v3"
)

// TestTopology is the traffic pattern between test ports.
type TestTopology string

const (
	TopologyMesh   TestTopology = "mesh"
	TopologyPairs  TestTopology = "pairs"
	TopologyBlocks TestTopology = "blocks"
)

func (t TestTopology) IsMeshTopology() bool { return t == TopologyMesh }

// IsPairTopology reports whether the topology routes traffic over explicit
// 1:1 peer links.
func (t TestTopology) IsPairTopology() bool { return t == TopologyPairs }

// TrafficDirection is the direction of offered load between port groups.
type TrafficDirection string

const (
	DirectionEastToWest TrafficDirection = "east_to_west"
	DirectionWestToEast TrafficDirection = "west_to_east"
	DirectionBidir      TrafficDirection = "bidir"
)

// FlowCreationType selects how per-destination flows are produced: distinct
// streams, or a single stream swept by hardware address modifiers.
type FlowCreationType string

const (
	FlowCreationStreamBased   FlowCreationType = "stream_based"
	FlowCreationModifierBased FlowCreationType = "modifier_based"
)

func (f FlowCreationType) IsStreamBased() bool { return f == FlowCreationStreamBased }

// PortGroup classifies a test port for directional traffic.
type PortGroup string

const (
	PortGroupEast      PortGroup = "east"
	PortGroupWest      PortGroup = "west"
	PortGroupUndefined PortGroup = "undefined"
)

func (g PortGroup) IsEast() bool { return g == PortGroupEast }
func (g PortGroup) IsWest() bool { return g == PortGroupWest }

// RateResultScopeType scopes throughput results to the whole run or to each
// source port.
type RateResultScopeType string

const (
	RateScopeCommon        RateResultScopeType = "common_result"
	RateScopePerSourcePort RateResultScopeType = "per_source_port_result"
)

// Physical port settings. These are passed through to the hardware-control
// collaborator; only their presence matters to validation.
type (
	PortSpeedMode      string
	MdiMdixMode        string
	BRRMode            string
	FECMode            string
	PortRateCapProfile string
	PortRateCapUnit    string
)

const (
	PortSpeedAuto PortSpeedMode = "auto"

	MdiMdixAuto MdiMdixMode = "auto"
	MdiMdixMdi  MdiMdixMode = "mdi"
	MdiMdixMdix MdiMdixMode = "mdix"

	BRRModeSlave  BRRMode = "slave"
	BRRModeMaster BRRMode = "master"

	FECModeOn  FECMode = "on"
	FECModeOff FECMode = "off"

	RateCapPhysical PortRateCapProfile = "physical_port_rate"
	RateCapCustom   PortRateCapProfile = "custom_rate_cap"

	RateCapUnitGbps PortRateCapUnit = "1e9_bps"
	RateCapUnitMbps PortRateCapUnit = "1e6_bps"
	RateCapUnitKbps PortRateCapUnit = "1e3_bps"
	RateCapUnitBps  PortRateCapUnit = "bps"
)

func (p PortRateCapProfile) IsCustom() bool { return p == RateCapCustom }

// Scale converts the unit into bits per second.
func (u PortRateCapUnit) Scale() float64 {
	switch u {
	case RateCapUnitGbps:
		return 1e9
	case RateCapUnitMbps:
		return 1e6
	case RateCapUnitKbps:
		return 1e3
	default:
		return 1
	}
}

// MacAddress is a 48-bit hardware address parsed from its usual textual
// form. The zero value means "not configured".
type MacAddress [6]byte

func (m *MacAddress) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*m = MacAddress{}
		return nil
	}
	hw, err := net.ParseMAC(s)
	if err != nil {
		return fmt.Errorf("invalid mac address %q: %w", s, err)
	}
	if len(hw) != 6 {
		return fmt.Errorf("mac address %q is not 48 bits", s)
	}
	copy(m[:], hw)
	return nil
}

func (m MacAddress) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m MacAddress) String() string {
	return net.HardwareAddr(m[:]).String()
}

func (m MacAddress) IsEmpty() bool {
	return m == MacAddress{}
}
