package segment

// Canonical segment layouts with standard field names and widths. Templates
// leave address fields all-zero so the auto-fill helpers may derive them per
// stream; everything else carries sane defaults.

import (
	"github.com/google/gopacket/layers"
)

type fieldSpec struct {
	name  string
	bits  int
	value BinaryString
}

// buildFields assigns cumulative bit positions in declared order. A spec
// without a value gets an all-zero bit string of its width.
func buildFields(specs []fieldSpec) []*SegmentField {
	fields := make([]*SegmentField, 0, len(specs))
	pos := 0
	for _, spec := range specs {
		value := spec.value
		if len(value) == 0 {
			value = ZeroBinaryString(spec.bits)
		}
		fields = append(fields, &SegmentField{
			Name:               spec.name,
			Value:              value,
			BitLength:          spec.bits,
			BitSegmentPosition: pos,
		})
		pos += spec.bits
	}
	return fields
}

// EthernetSegment is a plain Ethernet II header carrying IPv4.
func EthernetSegment() *Segment {
	return EthernetSegmentWithType(layers.EthernetTypeIPv4)
}

// EthernetSegmentWithType is an Ethernet II header with the given ethertype.
func EthernetSegmentWithType(etherType layers.EthernetType) *Segment {
	return NewSegment(SegmentTypeEthernet, buildFields([]fieldSpec{
		{name: FieldDstMAC, bits: 48},
		{name: FieldSrcMAC, bits: 48},
		{name: "EtherType", bits: 16, value: BinaryStringFromUint(uint64(etherType), 16)},
	}), nil)
}

// VLANSegment is an 802.1Q tag followed by the inner ethertype.
func VLANSegment(vlanID uint16, etherType layers.EthernetType) *Segment {
	return NewSegment(SegmentTypeVLAN, buildFields([]fieldSpec{
		{name: "PCP", bits: 3},
		{name: "DEI", bits: 1},
		{name: "VLAN ID", bits: 12, value: BinaryStringFromUint(uint64(vlanID), 12)},
		{name: "EtherType", bits: 16, value: BinaryStringFromUint(uint64(etherType), 16)},
	}), nil)
}

// IPv4Segment is a 20-byte IPv4 header with its checksum fix-up at byte 10.
// Total Length covers the header plus payloadLen.
func IPv4Segment(protocol layers.IPProtocol, payloadLen int) *Segment {
	checksumOffset := 10
	return NewSegment(SegmentTypeIPv4, buildFields([]fieldSpec{
		{name: "Version", bits: 4, value: BinaryStringFromUint(4, 4)},
		{name: "Header Length", bits: 4, value: BinaryStringFromUint(5, 4)},
		{name: "DSCP", bits: 6},
		{name: "ECN", bits: 2},
		{name: "Total Length", bits: 16, value: BinaryStringFromUint(uint64(20+payloadLen), 16)},
		{name: "Identification", bits: 16},
		{name: "Flags", bits: 3},
		{name: "Fragment Offset", bits: 13},
		{name: "TTL", bits: 8, value: BinaryStringFromUint(64, 8)},
		{name: "Protocol", bits: 8, value: BinaryStringFromUint(uint64(protocol), 8)},
		{name: "Header Checksum", bits: 16},
		{name: FieldSrcIPv4, bits: 32},
		{name: FieldDstIPv4, bits: 32},
	}), &checksumOffset)
}

// IPv6Segment is a 40-byte IPv6 header. Payload Length covers payloadLen.
func IPv6Segment(nextHeader layers.IPProtocol, payloadLen int) *Segment {
	return NewSegment(SegmentTypeIPv6, buildFields([]fieldSpec{
		{name: "Version", bits: 4, value: BinaryStringFromUint(6, 4)},
		{name: "Traffic Class", bits: 8},
		{name: "Flow Label", bits: 20},
		{name: "Payload Length", bits: 16, value: BinaryStringFromUint(uint64(payloadLen), 16)},
		{name: "Next Header", bits: 8, value: BinaryStringFromUint(uint64(nextHeader), 8)},
		{name: "Hop Limit", bits: 8, value: BinaryStringFromUint(64, 8)},
		{name: FieldSrcIPv6, bits: 128},
		{name: FieldDstIPv6, bits: 128},
	}), nil)
}

// UDPSegment is an 8-byte UDP header. Length covers the header plus
// payloadLen. The checksum stays zero; hardware fills it when requested via
// the udpcheck segment type.
func UDPSegment(srcPort, dstPort uint16, payloadLen int) *Segment {
	return NewSegment(SegmentTypeUDP, buildFields([]fieldSpec{
		{name: "Src Port", bits: 16, value: BinaryStringFromUint(uint64(srcPort), 16)},
		{name: "Dest Port", bits: 16, value: BinaryStringFromUint(uint64(dstPort), 16)},
		{name: "Length", bits: 16, value: BinaryStringFromUint(uint64(8+payloadLen), 16)},
		{name: "Checksum", bits: 16},
	}), nil)
}

// TCPSegment is a 20-byte TCP header with no options.
func TCPSegment(srcPort, dstPort uint16) *Segment {
	return NewSegment(SegmentTypeTCP, buildFields([]fieldSpec{
		{name: "Src Port", bits: 16, value: BinaryStringFromUint(uint64(srcPort), 16)},
		{name: "Dest Port", bits: 16, value: BinaryStringFromUint(uint64(dstPort), 16)},
		{name: "Sequence Number", bits: 32},
		{name: "Ack Number", bits: 32},
		{name: "Data Offset", bits: 4, value: BinaryStringFromUint(5, 4)},
		{name: "Flags", bits: 12},
		{name: "Window", bits: 16},
		{name: "Checksum", bits: 16},
		{name: "Urgent Pointer", bits: 16},
	}), nil)
}

// RawSegment is a filler layer of n zero bytes, n in 1..64.
func RawSegment(n int) *Segment {
	return NewSegment(RawSegmentType(n), buildFields([]fieldSpec{
		{name: "Data", bits: n * 8},
	}), nil)
}
