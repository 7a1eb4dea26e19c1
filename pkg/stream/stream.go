// Package stream turns a validated configuration into per-stream wire
// headers and the modifier parameters the transport layer needs.
package stream

import (
	"github.com/open2544/open2544/pkg/config"
	"github.com/open2544/open2544/pkg/segment"
	"github.com/open2544/open2544/pkg/topology"
)

// ModifierParams is one hardware modifier's setup for a stream: the opaque
// descriptor from the profile plus the inclusive destination-index range it
// must sweep. Handed to the transport layer unchanged.
type ModifierParams struct {
	Modifier *segment.HWModifier
	MinIndex int
	MaxIndex int
}

// StreamStruct builds the traffic for one (tx port, stream id) pair. The
// owning port's profile instances must be driven by exactly one sequential
// caller; nothing here is safe for concurrent use on shared profiles.
type StreamStruct struct {
	TxPort     *config.PortConfiguration
	Properties *topology.Properties
	StreamID   int
	Addresses  AddressCollection
}

// ResetValueRangesForPort rewinds every value range flagged to restart for
// each port. Call once before a port's stream configuration pass.
func ResetValueRangesForPort(profile *segment.ProtocolSegmentProfileConfig) {
	for _, vr := range profile.ValueRanges() {
		if vr.RestartForEachPort {
			vr.Reset()
		}
	}
}

// ConfigureHeader fills the blank address fields of the port's profile from
// the stream's address collection and serializes the full wire header.
func (s *StreamStruct) ConfigureHeader() ([]byte, error) {
	profile := s.TxPort.Profile()
	for _, seg := range profile.HeaderSegments {
		var err error
		switch {
		case seg.SegmentType.IsEthernet():
			err = segment.SetupSegmentEthernet(seg,
				MacToBinary(s.Addresses.SrcMac),
				MacToBinary(s.Addresses.DstMac),
				MacToBinary(s.Addresses.ArpMac))
		case seg.SegmentType.IsIPv4():
			err = segment.SetupSegmentIPv4(seg,
				IPToBinary(s.Addresses.SrcIP),
				IPToBinary(s.Addresses.DstIP))
		case seg.SegmentType.IsIPv6():
			err = segment.SetupSegmentIPv6(seg,
				IPToBinary(s.Addresses.SrcIP),
				IPToBinary(s.Addresses.DstIP))
		}
		if err != nil {
			return nil, err
		}
	}
	return profile.Prepare()
}

// ModifierRange is the destination-index interval this stream's address
// modifiers must cover.
func (s *StreamStruct) ModifierRange() (int, int) {
	return s.Properties.GetModifierRange(s.StreamID)
}

// ModifierSetup pairs every hardware modifier in the profile with this
// stream's index range.
func (s *StreamStruct) ModifierSetup() []ModifierParams {
	low, high := s.ModifierRange()
	modifiers := s.TxPort.Profile().HWModifiers()
	out := make([]ModifierParams, 0, len(modifiers))
	for _, mod := range modifiers {
		out = append(out, ModifierParams{Modifier: mod, MinIndex: low, MaxIndex: high})
	}
	return out
}
