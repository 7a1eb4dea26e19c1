package config

import (
	"fmt"
	"sort"

	"github.com/open2544/open2544/pkg/segment"
)

// Model is the aggregate test configuration: test-level settings, protocol
// segment profiles by id, port configurations by slot, and the test type
// switches. Validate must run once before anything reads the derived port
// state; after a successful run the model is treated as immutable.
type Model struct {
	TestConfiguration      TestConfiguration
	ProtocolSegments       map[string]*segment.ProtocolSegmentProfileConfig
	PortsConfiguration     map[string]*PortConfiguration
	TestTypesConfiguration TestTypesConfiguration

	// Derived, computed once validation succeeds.
	InSameIPNetwork bool
	WithSameGateway bool
	HasL3           bool
}

// SortedSlots returns the port slots in lexical order. Validation iterates
// in this order so the first violation reported is deterministic.
func (m *Model) SortedSlots() []string {
	slots := make([]string, 0, len(m.PortsConfiguration))
	for slot := range m.PortsConfiguration {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	return slots
}

// Validate runs the cross-field validation pipeline: an ordered sequence of
// checks where later checks read state the earlier ones populate. It stops
// at the first violated invariant and never returns a partially valid
// configuration.
func (m *Model) Validate() error {
	m.assignPortRoles()
	if err := m.resolveProfiles(); err != nil {
		return err
	}
	if err := m.checkPortCount(); err != nil {
		return err
	}
	if err := m.checkGroupsAndPeers(); err != nil {
		return err
	}
	if err := m.checkGroupAssignment(); err != nil {
		return err
	}
	if err := m.checkModifierModeL3(); err != nil {
		return err
	}
	if err := m.checkTestTypesEnabled(); err != nil {
		return err
	}
	if err := m.checkResultScope(); err != nil {
		return err
	}
	m.computeDerived()
	return nil
}

// assignPortRoles seeds every port as both tx and rx, then disables one
// role per directional traffic. A looped port keeps both roles, and mesh
// topology never alters roles.
func (m *Model) assignPortRoles() {
	direction := m.TestConfiguration.Direction
	mesh := m.TestConfiguration.Topology.IsMeshTopology()
	for slot, port := range m.PortsConfiguration {
		port.slot = slot
		port.isTx, port.isRx = true, true
		if mesh || port.IsLoop() {
			continue
		}
		switch direction {
		case DirectionEastToWest:
			if port.PortGroup.IsEast() {
				port.isRx = false
			} else if port.PortGroup.IsWest() {
				port.isTx = false
			}
		case DirectionWestToEast:
			if port.PortGroup.IsEast() {
				port.isTx = false
			} else if port.PortGroup.IsWest() {
				port.isRx = false
			}
		}
	}
}

// resolveProfiles binds each port to its profile and selects the address
// family the profile's protocol version calls for. IPv4 properties are the
// fallback for Ethernet-only profiles so address-derived aggregates stay
// well defined.
func (m *Model) resolveProfiles() error {
	for _, slot := range m.SortedSlots() {
		port := m.PortsConfiguration[slot]
		profile, ok := m.ProtocolSegments[port.ProfileID]
		if !ok {
			return fmt.Errorf("port %s references unknown profile %q", slot, port.ProfileID)
		}
		port.profile = profile
		version := profile.ProtocolVersion()
		if version.IsIPv6() {
			port.ipProperties = &port.IPv6Properties
		} else {
			port.ipProperties = &port.IPv4Properties
		}
		if version.IsL3() && port.ipProperties.Address.IsEmpty() {
			return &IPAddressMissingError{Slot: slot}
		}
	}
	return nil
}

// checkPortCount enforces the topology's port floor: pair topologies work
// from a single looped port, everything else needs two.
func (m *Model) checkPortCount() error {
	required := 2
	if m.TestConfiguration.Topology.IsPairTopology() {
		required = 1
	}
	if len(m.PortsConfiguration) < required {
		return &PortConfigNotEnoughError{Required: required}
	}
	return nil
}

// checkGroupsAndPeers tallies ports per group and, for pairing topologies,
// demands that every peer reference is present and symmetric. Group tallies
// are skipped for mesh; a looped port counts in both groups when pairing is
// in use.
func (m *Model) checkGroupsAndPeers() error {
	topology := m.TestConfiguration.Topology
	usesPortPeer := topology.IsPairTopology()
	portsInEast, portsInWest := 0, 0
	for _, slot := range m.SortedSlots() {
		port := m.PortsConfiguration[slot]
		if !topology.IsMeshTopology() {
			if port.PortGroup.IsEast() {
				portsInEast++
				if usesPortPeer && port.IsLoop() {
					portsInWest++
				}
			} else if port.PortGroup.IsWest() {
				portsInWest++
				if usesPortPeer && port.IsLoop() {
					portsInEast++
				}
			}
		}
		if usesPortPeer {
			if err := m.checkPortPeer(port); err != nil {
				return err
			}
		}
	}
	if !topology.IsMeshTopology() {
		if portsInEast == 0 {
			return &PortGroupError{Group: "East"}
		}
		if portsInWest == 0 {
			return &PortGroupError{Group: "West"}
		}
	}
	return nil
}

func (m *Model) checkPortPeer(port *PortConfiguration) error {
	peerSlot := port.PeerConfigSlot
	if peerSlot == "" {
		return &PortPeerNeededError{Slot: port.slot}
	}
	peer, ok := m.PortsConfiguration[peerSlot]
	if !ok || !port.IsPair(peer) {
		return &PortPeerInconsistentError{Slot: port.slot, PeerSlot: peerSlot}
	}
	return nil
}

// checkGroupAssignment demands a defined group on every port outside mesh.
func (m *Model) checkGroupAssignment() error {
	if m.TestConfiguration.Topology.IsMeshTopology() {
		return nil
	}
	for _, slot := range m.SortedSlots() {
		if m.PortsConfiguration[slot].PortGroup == PortGroupUndefined {
			return &PortGroupNeededError{Slot: slot}
		}
	}
	return nil
}

// checkModifierModeL3 rejects IP-layer profiles under modifier-based flow
// creation; hardware modifiers rewrite addresses the L3 stack owns.
func (m *Model) checkModifierModeL3() error {
	if m.TestConfiguration.FlowCreationType.IsStreamBased() {
		return nil
	}
	for _, slot := range m.SortedSlots() {
		port := m.PortsConfiguration[slot]
		if port.profile.ProtocolVersion().IsL3() {
			return &ModifierBasedNotSupportL3Error{Slot: slot}
		}
	}
	return nil
}

func (m *Model) checkTestTypesEnabled() error {
	if !m.TestTypesConfiguration.AnyEnabled() {
		return &TestTypesError{}
	}
	return nil
}

func (m *Model) checkResultScope() error {
	throughput := m.TestTypesConfiguration.ThroughputTest
	if throughput.Enabled &&
		throughput.RateIterationOptions.ResultScope == RateScopePerSourcePort &&
		!m.TestConfiguration.FlowCreationType.IsStreamBased() {
		return &ModifierBasedNotSupportPerPortResultError{}
	}
	return nil
}

// computeDerived fills the aggregate booleans once all checks passed.
func (m *Model) computeDerived() {
	networks := make(map[string]struct{})
	gateways := make(map[string]struct{})
	hasL3 := false
	for _, port := range m.PortsConfiguration {
		networks[port.ipProperties.Network().String()] = struct{}{}
		gateways[port.ipProperties.Gateway.String()] = struct{}{}
		if port.profile.ProtocolVersion().IsL3() {
			hasL3 = true
		}
	}
	m.InSameIPNetwork = len(networks) == 1
	m.WithSameGateway = len(gateways) == 1
	m.HasL3 = hasL3
}
