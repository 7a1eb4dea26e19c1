package stream

import (
	"encoding/binary"
	"net/netip"

	"github.com/open2544/open2544/pkg/config"
	"github.com/open2544/open2544/pkg/segment"
)

// AddressCollection is the per-stream address material the auto-fill
// helpers consume. ArpMac, when resolved, wins over DstMac for the Ethernet
// destination.
type AddressCollection struct {
	SrcMac config.MacAddress
	DstMac config.MacAddress
	ArpMac config.MacAddress
	SrcIP  netip.Addr
	DstIP  netip.Addr
}

// GenMacAddress derives a port's MAC from the test-wide base address by
// adding the port index to the 48-bit value.
func GenMacAddress(base config.MacAddress, index int) config.MacAddress {
	var buf [8]byte
	copy(buf[2:], base[:])
	value := binary.BigEndian.Uint64(buf[:]) + uint64(index)
	binary.BigEndian.PutUint64(buf[:], value)
	var out config.MacAddress
	copy(out[:], buf[2:])
	return out
}

// MacToBinary renders a MAC as a 48-bit string.
func MacToBinary(mac config.MacAddress) segment.BinaryString {
	return segment.BinaryStringFromBytes(mac[:])
}

// IPToBinary renders an address as a 32- or 128-bit string. The unset
// address renders as 32 zero bits so the auto-fill helpers treat it as
// blank.
func IPToBinary(addr netip.Addr) segment.BinaryString {
	if !addr.IsValid() {
		return segment.ZeroBinaryString(32)
	}
	raw := addr.As16()
	if addr.Is4() || addr.Is4In6() {
		v4 := addr.As4()
		return segment.BinaryStringFromBytes(v4[:])
	}
	return segment.BinaryStringFromBytes(raw[:])
}
