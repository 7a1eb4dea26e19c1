package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFieldValueLengthMismatch(t *testing.T) {
	seg := EthernetSegment()
	f, err := seg.Field(FieldDstMAC)
	require.NoError(t, err)
	original := f.Value

	err = f.SetFieldValue(BinaryString("1010"))
	var mismatch *FieldLengthMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, FieldDstMAC, mismatch.Field)
	assert.Equal(t, 48, mismatch.Expected)
	assert.Equal(t, 4, mismatch.Actual)
	assert.Equal(t, original, f.Value, "stored value must stay unchanged on mismatch")

	require.NoError(t, f.SetFieldValue(BinaryStringFromUint(0xBC6348B035E7, 48)))
	assert.Equal(t, BinaryStringFromUint(0xBC6348B035E7, 48), f.Value)
}

func TestFieldLookupNotFound(t *testing.T) {
	seg := EthernetSegment()
	_, err := seg.Field("No Such Field")
	var notFound *FieldNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "No Such Field", notFound.Field)
}

func TestSegmentPrepareLengths(t *testing.T) {
	for _, seg := range []*Segment{
		EthernetSegment(),
		VLANSegment(100, 0x0800),
		IPv4Segment(17, 8),
		IPv6Segment(17, 8),
		UDPSegment(7000, 7001, 0),
		TCPSegment(80, 8080),
		RawSegment(13),
	} {
		buf, err := seg.Prepare()
		require.NoError(t, err, "segment %s", seg.SegmentType)
		assert.Equal(t, seg.BitLength(), len(buf)*8, "segment %s", seg.SegmentType)
		assert.Zero(t, seg.BitLength()%8, "segment %s must be byte aligned", seg.SegmentType)
	}
}

// internetChecksum folds the buffer into the standard 16-bit one's
// complement sum. A buffer with a correct embedded checksum folds to 0.
func internetChecksum(buf []byte) uint16 {
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
	return ^uint16(sum)
}

func TestSegmentPrepareChecksumSelfVerifies(t *testing.T) {
	seg := IPv4Segment(17, 8)
	require.NoError(t, seg.SetFieldValue(FieldSrcIPv4, BinaryStringFromUint(0xC0A80101, 32)))
	require.NoError(t, seg.SetFieldValue(FieldDstIPv4, BinaryStringFromUint(0xC0A80102, 32)))

	buf, err := seg.Prepare()
	require.NoError(t, err)
	require.Len(t, buf, 20)
	assert.NotZero(t, buf[10]|buf[11], "checksum must be written")
	assert.Zero(t, internetChecksum(buf), "recomputed checksum over the finished buffer must be zero")
}

func TestSegmentPrepareAppliesValueRange(t *testing.T) {
	seg := RawSegment(2)
	f, err := seg.Field("Data")
	require.NoError(t, err)
	f.ValueRange = &ValueRange{StartValue: 1, StepValue: 1, StopValue: 2, Action: ActionIncrement}

	buf, err := seg.Prepare()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01}, buf)

	buf, err = seg.Prepare()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x02}, buf)

	buf, err = seg.Prepare()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01}, buf, "generator wraps back to start")
}

func TestRawSegmentType(t *testing.T) {
	typ := RawSegmentType(22)
	assert.True(t, typ.IsRaw())
	assert.Equal(t, 22, typ.RawLength())
	assert.Equal(t, 0, SegmentTypeEthernet.RawLength())
	assert.False(t, SegmentTypeUDP.IsRaw())
}

func TestSetupSegmentEthernet(t *testing.T) {
	src := BinaryStringFromUint(0x04F4BC000001, 48)
	dst := BinaryStringFromUint(0x04F4BC000002, 48)
	arp := BinaryStringFromUint(0x04F4BC0000AA, 48)
	zero := ZeroBinaryString(48)

	t.Run("fills blank template fields", func(t *testing.T) {
		seg := EthernetSegment()
		require.NoError(t, SetupSegmentEthernet(seg, src, dst, zero))
		srcField, _ := seg.Field(FieldSrcMAC)
		dstField, _ := seg.Field(FieldDstMAC)
		assert.Equal(t, src, srcField.Value)
		assert.Equal(t, dst, dstField.Value)
	})

	t.Run("arp resolved mac wins over plain destination", func(t *testing.T) {
		seg := EthernetSegment()
		require.NoError(t, SetupSegmentEthernet(seg, src, dst, arp))
		dstField, _ := seg.Field(FieldDstMAC)
		assert.Equal(t, arp, dstField.Value)
	})

	t.Run("operator-specified literal survives", func(t *testing.T) {
		seg := EthernetSegment()
		literal := BinaryStringFromUint(0xBC6348B035E7, 48)
		require.NoError(t, seg.SetFieldValue(FieldDstMAC, literal))
		// zero-ness is recorded at construction, so a fresh segment with a
		// non-zero template is what actually protects the literal
		seg2 := NewSegment(SegmentTypeEthernet, seg.Fields, nil)
		require.NoError(t, SetupSegmentEthernet(seg2, src, dst, zero))
		dstField, _ := seg2.Field(FieldDstMAC)
		assert.Equal(t, literal, dstField.Value)
	})

	t.Run("all-zero candidate never overwrites", func(t *testing.T) {
		seg := EthernetSegment()
		require.NoError(t, SetupSegmentEthernet(seg, zero, zero, zero))
		dstField, _ := seg.Field(FieldDstMAC)
		assert.True(t, dstField.Value.IsAllZero())
	})
}

func TestSetupSegmentIPv4(t *testing.T) {
	src := BinaryStringFromUint(0x0A000001, 32)
	dst := BinaryStringFromUint(0x0A000002, 32)

	seg := IPv4Segment(17, 0)
	require.NoError(t, SetupSegmentIPv4(seg, src, dst))
	srcField, _ := seg.Field(FieldSrcIPv4)
	dstField, _ := seg.Field(FieldDstIPv4)
	assert.Equal(t, src, srcField.Value)
	assert.Equal(t, dst, dstField.Value)
}

func TestSetupSegmentIPv6(t *testing.T) {
	src := BinaryStringFromBytes([]byte{0xFD, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1})
	dst := BinaryStringFromBytes([]byte{0xFD, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2})

	seg := IPv6Segment(17, 0)
	require.NoError(t, SetupSegmentIPv6(seg, src, dst))
	srcField, _ := seg.Field(FieldSrcIPv6)
	dstField, _ := seg.Field(FieldDstIPv6)
	assert.Equal(t, src, srcField.Value)
	assert.Equal(t, dst, dstField.Value)
}
