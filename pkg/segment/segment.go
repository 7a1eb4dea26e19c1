package segment

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentType tags one protocol layer. Raw filler layers are a single
// parameterized case ("raw_<n>", n in bytes) rather than one value per
// length.
type SegmentType string

const (
	SegmentTypeEthernet   SegmentType = "ethernet"
	SegmentTypeVLAN       SegmentType = "vlan"
	SegmentTypeARP        SegmentType = "arp"
	SegmentTypeIPv4       SegmentType = "ipv4"
	SegmentTypeIPv6       SegmentType = "ipv6"
	SegmentTypeUDP        SegmentType = "udp"
	SegmentTypeTCP        SegmentType = "tcp"
	SegmentTypeLLC        SegmentType = "llc"
	SegmentTypeSNAP       SegmentType = "snap"
	SegmentTypeGTP        SegmentType = "gtp"
	SegmentTypeICMP       SegmentType = "icmp"
	SegmentTypeRTP        SegmentType = "rtp"
	SegmentTypeRTCP       SegmentType = "rtcp"
	SegmentTypeSTP        SegmentType = "stp"
	SegmentTypeSCTP       SegmentType = "sctp"
	SegmentTypeMACCtrl    SegmentType = "macctrl"
	SegmentTypeMPLS       SegmentType = "mpls"
	SegmentTypePBBTag     SegmentType = "pbbtag"
	SegmentTypeFCoE       SegmentType = "fcoe"
	SegmentTypeFC         SegmentType = "fc"
	SegmentTypeFCoETail   SegmentType = "fcoetail"
	SegmentTypeIGMPv3L0   SegmentType = "igmpv3l0"
	SegmentTypeIGMPv3L1   SegmentType = "igmpv3l1"
	SegmentTypeUDPCheck   SegmentType = "udpcheck"
	SegmentTypeIGMPv2     SegmentType = "igmpv2"
	SegmentTypeGRENoCheck SegmentType = "gre_nocheck"
	SegmentTypeGRECheck   SegmentType = "gre_check"
	SegmentTypeTCPCheck   SegmentType = "tcp_check"
	SegmentTypeIGMPv1     SegmentType = "igmpv1"
	SegmentTypeVXLAN      SegmentType = "vxlan"
	SegmentTypeNVGRE      SegmentType = "nvgre"
)

// RawSegmentType returns the raw segment tag for a filler layer of n bytes,
// n in 1..64.
func RawSegmentType(n int) SegmentType {
	return SegmentType(fmt.Sprintf("raw_%d", n))
}

// IsRaw reports whether the tag is one of the generic raw variants.
func (t SegmentType) IsRaw() bool {
	return strings.HasPrefix(string(t), "raw")
}

// RawLength returns the byte length carried by a raw tag, or 0 for
// non-raw tags.
func (t SegmentType) RawLength() int {
	if !t.IsRaw() {
		return 0
	}
	idx := strings.LastIndex(string(t), "_")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(string(t)[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

func (t SegmentType) IsEthernet() bool { return t == SegmentTypeEthernet }
func (t SegmentType) IsIPv4() bool     { return t == SegmentTypeIPv4 }
func (t SegmentType) IsIPv6() bool     { return t == SegmentTypeIPv6 }

// Well-known field names shared by the templates, the auto-fill helpers and
// the zero-value bookkeeping below.
const (
	FieldDstMAC  = "Dst MAC addr"
	FieldSrcMAC  = "Src MAC addr"
	FieldSrcIPv4 = "Src IP Addr"
	FieldDstIPv4 = "Dest IP Addr"
	FieldSrcIPv6 = "Src IPv6 Addr"
	FieldDstIPv6 = "Dest IPv6 Addr"
)

// Segment is one protocol layer's header: an ordered list of fields plus an
// optional checksum fix-up position. Whether the src/dst address fields were
// all-zero in the template is recorded once at construction time and decides
// later whether auto-fill may overwrite them.
type Segment struct {
	SegmentType    SegmentType
	Fields         []*SegmentField
	ChecksumOffset *int // byte offset of a 2-byte checksum span, nil when absent

	srcValueAllZero bool
	dstValueAllZero bool
}

// NewSegment builds a segment and records the original all-zero state of its
// address fields.
func NewSegment(typ SegmentType, fields []*SegmentField, checksumOffset *int) *Segment {
	s := &Segment{
		SegmentType:    typ,
		Fields:         fields,
		ChecksumOffset: checksumOffset,
	}
	var srcName, dstName string
	switch {
	case typ.IsEthernet():
		srcName, dstName = FieldSrcMAC, FieldDstMAC
	case typ.IsIPv4():
		srcName, dstName = FieldSrcIPv4, FieldDstIPv4
	case typ.IsIPv6():
		srcName, dstName = FieldSrcIPv6, FieldDstIPv6
	default:
		return s
	}
	if f, err := s.Field(srcName); err == nil {
		s.srcValueAllZero = f.IsValueAllZero()
	}
	if f, err := s.Field(dstName); err == nil {
		s.dstValueAllZero = f.IsValueAllZero()
	}
	return s
}

// Field looks a field up by name.
func (s *Segment) Field(name string) (*SegmentField, error) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, &FieldNotFoundError{Field: name}
}

// SetFieldValue replaces the named field's bit string.
func (s *Segment) SetFieldValue(name string, value BinaryString) error {
	f, err := s.Field(name)
	if err != nil {
		return err
	}
	return f.SetFieldValue(value)
}

// BitLength is the segment length in bits, the sum of all field widths.
func (s *Segment) BitLength() int {
	total := 0
	for _, f := range s.Fields {
		total += f.BitLength
	}
	return total
}

// Prepare serializes the segment: every field's bits in declared order,
// packed into bytes, then the checksum fix-up if one is configured.
func (s *Segment) Prepare() ([]byte, error) {
	var sb strings.Builder
	sb.Grow(s.BitLength())
	for _, f := range s.Fields {
		sb.WriteString(string(f.Prepare()))
	}
	buf, err := BinaryString(sb.String()).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s segment: %w", s.SegmentType, err)
	}
	if s.ChecksumOffset != nil {
		wrapAdd16(buf, *s.ChecksumOffset)
	}
	return buf, nil
}

// HWModifiers lists the hardware modifier descriptors bound to this
// segment's fields.
func (s *Segment) HWModifiers() []*HWModifier {
	var out []*HWModifier
	for _, f := range s.Fields {
		if f.HWModifier != nil {
			out = append(out, f.HWModifier)
		}
	}
	return out
}

// ValueRanges lists the value ranges bound to this segment's fields.
func (s *Segment) ValueRanges() []*ValueRange {
	var out []*ValueRange
	for _, f := range s.Fields {
		if f.ValueRange != nil {
			out = append(out, f.ValueRange)
		}
	}
	return out
}

// ModifierCount is the number of hardware modifiers on this segment.
func (s *Segment) ModifierCount() int {
	count := 0
	for _, f := range s.Fields {
		if f.HWModifier != nil {
			count++
		}
	}
	return count
}

// wrapAdd16 writes the 16-bit Internet checksum of buf into the two bytes at
// offset: the span is zeroed, 16-bit big-endian words are summed with any
// carry folded back into the low 16 bits, and the one's complement is
// written back big-endian.
func wrapAdd16(buf []byte, offset int) {
	buf[offset] = 0
	buf[offset+1] = 0
	sum := uint32(0)
	for i := 0; i+1 < len(buf); i += 2 {
		sum += uint32(buf[i])<<8 | uint32(buf[i+1])
	}
	if len(buf)%2 != 0 {
		sum += uint32(buf[len(buf)-1]) << 8
	}
	for sum > 0xFFFF {
		sum = (sum & 0xFFFF) + (sum >> 16)
	}
	checksum := ^uint16(sum)
	buf[offset] = byte(checksum >> 8)
	buf[offset+1] = byte(checksum)
}

// SetupSegmentEthernet fills the MAC address fields of an Ethernet segment
// for a stream. A field is only overwritten when its template value was
// all-zero and the computed address is not, so operator-specified literals
// survive. An ARP-resolved destination MAC, when present and non-zero,
// takes precedence over the plain destination MAC.
func SetupSegmentEthernet(s *Segment, srcMAC, dstMAC, arpMAC BinaryString) error {
	dst := dstMAC
	if len(arpMAC) > 0 && !arpMAC.IsAllZero() {
		dst = arpMAC
	}
	if !dst.IsAllZero() && s.dstValueAllZero {
		if err := s.SetFieldValue(FieldDstMAC, dst); err != nil {
			return err
		}
	}
	if !srcMAC.IsAllZero() && s.srcValueAllZero {
		if err := s.SetFieldValue(FieldSrcMAC, srcMAC); err != nil {
			return err
		}
	}
	return nil
}

// SetupSegmentIPv4 fills the IPv4 address fields, with the same
// only-overwrite-blank rule as SetupSegmentEthernet.
func SetupSegmentIPv4(s *Segment, srcIP, dstIP BinaryString) error {
	if !srcIP.IsAllZero() && s.srcValueAllZero {
		if err := s.SetFieldValue(FieldSrcIPv4, srcIP); err != nil {
			return err
		}
	}
	if !dstIP.IsAllZero() && s.dstValueAllZero {
		if err := s.SetFieldValue(FieldDstIPv4, dstIP); err != nil {
			return err
		}
	}
	return nil
}

// SetupSegmentIPv6 fills the IPv6 address fields, with the same
// only-overwrite-blank rule as SetupSegmentEthernet.
func SetupSegmentIPv6(s *Segment, srcIP, dstIP BinaryString) error {
	if !srcIP.IsAllZero() && s.srcValueAllZero {
		if err := s.SetFieldValue(FieldSrcIPv6, srcIP); err != nil {
			return err
		}
	}
	if !dstIP.IsAllZero() && s.dstValueAllZero {
		if err := s.SetFieldValue(FieldDstIPv6, dstIP); err != nil {
			return err
		}
	}
	return nil
}
