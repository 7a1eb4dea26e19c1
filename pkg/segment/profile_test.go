package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileProtocolVersionFirstMatchWins(t *testing.T) {
	ethernetOnly := &ProtocolSegmentProfileConfig{HeaderSegments: []*Segment{EthernetSegment()}}
	assert.Equal(t, ProtocolVersionEthernet, ethernetOnly.ProtocolVersion())
	assert.False(t, ethernetOnly.ProtocolVersion().IsL3())

	v4 := &ProtocolSegmentProfileConfig{HeaderSegments: []*Segment{
		EthernetSegment(), IPv4Segment(17, 8), UDPSegment(7000, 7001, 0),
	}}
	assert.Equal(t, ProtocolVersionIPv4, v4.ProtocolVersion())

	// declared order is the packet layering, so the outer v6 wins over the
	// tunneled v4
	tunneled := &ProtocolSegmentProfileConfig{HeaderSegments: []*Segment{
		EthernetSegment(), IPv6Segment(4, 20), IPv4Segment(17, 8),
	}}
	assert.Equal(t, ProtocolVersionIPv6, tunneled.ProtocolVersion())

	v4Outer := &ProtocolSegmentProfileConfig{HeaderSegments: []*Segment{
		EthernetSegment(), IPv4Segment(41, 40), IPv6Segment(17, 8),
	}}
	assert.Equal(t, ProtocolVersionIPv4, v4Outer.ProtocolVersion())
}

func TestProfileSegmentsByTypeNeverFails(t *testing.T) {
	profile := &ProtocolSegmentProfileConfig{HeaderSegments: []*Segment{
		EthernetSegment(), VLANSegment(10, 0x8100), VLANSegment(20, 0x0800),
	}}

	assert.Len(t, profile.SegmentsByType(SegmentTypeVLAN), 2)
	assert.Len(t, profile.SegmentsByType(SegmentTypeEthernet), 1)
	assert.Empty(t, profile.SegmentsByType(SegmentTypeIPv6))

	seg, err := profile.GetSegment(SegmentTypeVLAN, 1)
	require.NoError(t, err)
	assert.Equal(t, SegmentTypeVLAN, seg.SegmentType)

	_, err = profile.GetSegment(SegmentTypeIPv6, 0)
	require.Error(t, err)
}

func TestProfilePrepareConcatenatesInOrder(t *testing.T) {
	profile := &ProtocolSegmentProfileConfig{HeaderSegments: []*Segment{
		EthernetSegment(), IPv4Segment(17, 8), UDPSegment(7000, 7001, 0),
	}}

	buf, err := profile.Prepare()
	require.NoError(t, err)
	assert.Len(t, buf, 14+20+8)
	assert.Equal(t, profile.PacketHeaderLength(), len(buf))
	assert.Equal(t, profile.BitLength(), len(buf)*8)

	// ethertype sits right where the ethernet segment ends
	assert.Equal(t, []byte{0x08, 0x00}, buf[12:14])
}

func TestProfileModifierAccounting(t *testing.T) {
	eth := EthernetSegment()
	dst, err := eth.Field(FieldDstMAC)
	require.NoError(t, err)
	dst.HWModifier = &HWModifier{StartValue: 0, StepValue: 1, StopValue: 10, Repeat: 1, Action: ActionIncrement, Position: 2, Mask: "//8="}

	ip := IPv4Segment(17, 0)
	src, err := ip.Field(FieldSrcIPv4)
	require.NoError(t, err)
	src.ValueRange = &ValueRange{StartValue: 0, StepValue: 1, StopValue: 255, Action: ActionIncrement, RestartForEachPort: true}

	profile := &ProtocolSegmentProfileConfig{HeaderSegments: []*Segment{eth, ip}}
	assert.Equal(t, 1, profile.ModifierCount())
	assert.Len(t, profile.HWModifiers(), 1)
	assert.Len(t, profile.ValueRanges(), 1)
	assert.True(t, profile.ValueRanges()[0].RestartForEachPort)
}
