package stream

import (
	"github.com/open2544/open2544/pkg/config"
	"github.com/open2544/open2544/pkg/topology"
)

// PortTable is the central port table the peer resolver builds: one
// Properties aggregate per slot, with test port indices assigned in lexical
// slot order.
type PortTable struct {
	Slots      []string
	Indices    map[string]int
	Properties map[string]*topology.Properties
}

// ResolvePeers runs the peer-registration pass over a validated model. It
// must run as one uninterrupted sequence after validation and before any
// header construction; header construction reads the modifier ranges this
// pass produces.
func ResolvePeers(m *config.Model) *PortTable {
	slots := m.SortedSlots()
	table := &PortTable{
		Slots:      slots,
		Indices:    make(map[string]int, len(slots)),
		Properties: make(map[string]*topology.Properties, len(slots)),
	}
	for i, slot := range slots {
		table.Indices[slot] = i
		table.Properties[slot] = topology.NewProperties(i)
	}

	for _, slot := range slots {
		port := m.PortsConfiguration[slot]
		if !port.IsTxPort() {
			continue
		}
		props := table.Properties[slot]
		for _, peerSlot := range rxPeersOf(m, port) {
			props.RegisterPeer(table.Indices[peerSlot])
		}
	}
	return table
}

// rxPeersOf lists the slots a transmitting port sends to: itself when
// looped, its configured peer under pairing, every other receiving port
// under mesh, and the receiving ports of the opposite group under blocks.
func rxPeersOf(m *config.Model, port *config.PortConfiguration) []string {
	if port.IsLoop() {
		return []string{port.SlotName()}
	}
	topo := m.TestConfiguration.Topology
	if topo.IsPairTopology() {
		return []string{port.PeerConfigSlot}
	}
	var peers []string
	for _, slot := range m.SortedSlots() {
		candidate := m.PortsConfiguration[slot]
		if slot == port.SlotName() || !candidate.IsRxPort() {
			continue
		}
		if topo.IsMeshTopology() || candidate.PortGroup != port.PortGroup {
			peers = append(peers, slot)
		}
	}
	return peers
}
