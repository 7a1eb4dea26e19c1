package segment

import "fmt"

// PortProtocolVersion is the address family a header stack resolves to.
type PortProtocolVersion int

const (
	ProtocolVersionEthernet PortProtocolVersion = 0
	ProtocolVersionIPv4     PortProtocolVersion = 4
	ProtocolVersionIPv6     PortProtocolVersion = 6
)

func (v PortProtocolVersion) IsIPv4() bool { return v == ProtocolVersionIPv4 }
func (v PortProtocolVersion) IsIPv6() bool { return v == ProtocolVersionIPv6 }
func (v PortProtocolVersion) IsL3() bool   { return v != ProtocolVersionEthernet }

func (v PortProtocolVersion) String() string {
	switch v {
	case ProtocolVersionIPv4:
		return "ipv4"
	case ProtocolVersionIPv6:
		return "ipv6"
	default:
		return "ethernet"
	}
}

// ProtocolSegmentProfileConfig is a full header stack for a port or stream:
// an ordered list of segments whose concatenation is the on-wire layout.
type ProtocolSegmentProfileConfig struct {
	HeaderSegments []*Segment
}

// SegmentsByType returns all segments of the given type, possibly none.
func (p *ProtocolSegmentProfileConfig) SegmentsByType(typ SegmentType) []*Segment {
	var out []*Segment
	for _, s := range p.HeaderSegments {
		if s.SegmentType == typ {
			out = append(out, s)
		}
	}
	return out
}

// GetSegment returns the index-th segment of the given type.
func (p *ProtocolSegmentProfileConfig) GetSegment(typ SegmentType, index int) (*Segment, error) {
	segments := p.SegmentsByType(typ)
	if index >= len(segments) {
		return nil, fmt.Errorf("profile has %d %s segments, want index %d", len(segments), typ, index)
	}
	return segments[index], nil
}

// Prepare serializes the whole header stack in declared order.
func (p *ProtocolSegmentProfileConfig) Prepare() ([]byte, error) {
	var out []byte
	for _, s := range p.HeaderSegments {
		buf, err := s.Prepare()
		if err != nil {
			return nil, err
		}
		out = append(out, buf...)
	}
	return out, nil
}

// ProtocolVersion derives the address family: the first IPv6 or IPv4
// segment in declared order wins, otherwise the stack is Ethernet-only.
// Declared order mirrors real packet layering, so first match is the outer
// protocol.
func (p *ProtocolSegmentProfileConfig) ProtocolVersion() PortProtocolVersion {
	for _, s := range p.HeaderSegments {
		if s.SegmentType.IsIPv6() {
			return ProtocolVersionIPv6
		}
		if s.SegmentType.IsIPv4() {
			return ProtocolVersionIPv4
		}
	}
	return ProtocolVersionEthernet
}

// BitLength is the header length in bits.
func (p *ProtocolSegmentProfileConfig) BitLength() int {
	total := 0
	for _, s := range p.HeaderSegments {
		total += s.BitLength()
	}
	return total
}

// PacketHeaderLength is the header length in bytes.
func (p *ProtocolSegmentProfileConfig) PacketHeaderLength() int {
	return p.BitLength() / 8
}

// ModifierCount is the total number of hardware modifiers across the stack.
func (p *ProtocolSegmentProfileConfig) ModifierCount() int {
	count := 0
	for _, s := range p.HeaderSegments {
		count += s.ModifierCount()
	}
	return count
}

// HWModifiers lists every hardware modifier descriptor in the stack.
func (p *ProtocolSegmentProfileConfig) HWModifiers() []*HWModifier {
	var out []*HWModifier
	for _, s := range p.HeaderSegments {
		out = append(out, s.HWModifiers()...)
	}
	return out
}

// ValueRanges lists every value range in the stack.
func (p *ProtocolSegmentProfileConfig) ValueRanges() []*ValueRange {
	var out []*ValueRange
	for _, s := range p.HeaderSegments {
		out = append(out, s.ValueRanges()...)
	}
	return out
}
