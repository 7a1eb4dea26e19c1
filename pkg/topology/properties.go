// Package topology resolves the peer relationships each test port needs to
// know which destination-port index range its address-modifying fields must
// sweep.
package topology

import "slices"

// Properties is the per-port runtime aggregate built by registering peer
// ports. Peers are kept as indices into the central port table; the
// aggregate never owns them. Built by one sequential registration pass after
// all ports are parsed, read-only afterwards.
type Properties struct {
	TestPortIndex        int
	NumModifiersL2       int
	DestPortCount        int
	HighDestPortCount    int
	LowDestPortCount     int
	LowestDestPortIndex  int
	HighestDestPortIndex int

	peers []int
}

// NewProperties creates the aggregate for the port at the given index.
func NewProperties(index int) *Properties {
	return &Properties{
		TestPortIndex:        index,
		NumModifiersL2:       1,
		LowestDestPortIndex:  -1,
		HighestDestPortIndex: -1,
	}
}

// Peers returns the registered peer indices in registration order. Callers
// must not rely on that order; the numeric aggregates are order-independent.
func (p *Properties) Peers() []int {
	return p.peers
}

// RegisterPeer records a destination port. Duplicate registrations are a
// no-op. A self-reference is recorded but carries no directional
// information, so the distance aggregates stay untouched.
func (p *Properties) RegisterPeer(peerIndex int) {
	if slices.Contains(p.peers, peerIndex) {
		return
	}
	p.peers = append(p.peers, peerIndex)
	if peerIndex == p.TestPortIndex {
		return
	}
	p.DestPortCount++
	if peerIndex < p.TestPortIndex {
		p.LowDestPortCount++
	} else {
		p.HighDestPortCount++
	}
	if p.LowDestPortCount > 0 && p.HighDestPortCount > 0 {
		p.NumModifiersL2 = 2
	} else {
		p.NumModifiersL2 = 1
	}
	if p.LowestDestPortIndex == -1 || peerIndex < p.LowestDestPortIndex {
		p.LowestDestPortIndex = peerIndex
	}
	if p.HighestDestPortIndex == -1 || peerIndex > p.HighestDestPortIndex {
		p.HighestDestPortIndex = peerIndex
	}
}

// GetModifierRange returns the inclusive destination-index interval a
// stream's address modifier must cover. Stream 0 sweeps the low side when
// the port needs two modifiers, the whole peer span when it needs one, and
// degenerates to the port's own index without peers. Later streams sweep
// the high side.
func (p *Properties) GetModifierRange(streamID int) (int, int) {
	if streamID == 0 {
		switch {
		case p.NumModifiersL2 == 2:
			return p.LowestDestPortIndex, p.TestPortIndex - 1
		case p.DestPortCount > 0:
			return p.LowestDestPortIndex, p.HighestDestPortIndex
		default:
			return p.TestPortIndex, p.TestPortIndex
		}
	}
	return p.TestPortIndex + 1, p.HighestDestPortIndex
}
