package config

import (
	"fmt"
	"net/netip"

	"gopkg.in/yaml.v3"

	"github.com/open2544/open2544/pkg/segment"
)

// IPAddress wraps netip.Addr with YAML parsing. An empty string or missing
// key stays the unset address.
type IPAddress struct {
	netip.Addr
}

func (a *IPAddress) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		a.Addr = netip.Addr{}
		return nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return fmt.Errorf("invalid ip address %q: %w", s, err)
	}
	a.Addr = addr
	return nil
}

func (a IPAddress) MarshalYAML() (any, error) {
	if !a.IsValid() {
		return "", nil
	}
	return a.String(), nil
}

// IsEmpty reports whether the address is unset or all-zero.
func (a IPAddress) IsEmpty() bool {
	return !a.IsValid() || a.IsUnspecified()
}

// IPAddressProperties is one address family's settings for a port. The same
// shape serves IPv4 and IPv6; the routing prefix default differs per use.
type IPAddressProperties struct {
	Address             IPAddress `yaml:"address"`
	RoutingPrefix       int       `yaml:"routing_prefix" default:"24"`
	PublicAddress       IPAddress `yaml:"public_address"`
	PublicRoutingPrefix int       `yaml:"public_routing_prefix" default:"24"`
	Gateway             IPAddress `yaml:"gateway"`
	RemoteLoopAddress   IPAddress `yaml:"remote_loop_address"`
}

// Network is the masked prefix the address lives in.
func (p *IPAddressProperties) Network() netip.Prefix {
	prefix, err := p.Address.Prefix(p.RoutingPrefix)
	if err != nil {
		return netip.Prefix{}
	}
	return prefix
}

// DstAddr is the address peers should target: the public address when one is
// configured, the plain address otherwise.
func (p *IPAddressProperties) DstAddr() IPAddress {
	if !p.PublicAddress.IsEmpty() {
		return p.PublicAddress
	}
	return p.Address
}

// PortConfiguration is one test port's static settings plus the derived
// role state the validation pipeline fills in. The derived fields are set
// exactly once during Model.Validate and read-only afterwards.
type PortConfiguration struct {
	PortSlot       string    `yaml:"port_slot"`
	PeerConfigSlot string    `yaml:"peer_config_slot"`
	PortGroup      PortGroup `yaml:"port_group" default:"undefined"`

	PortSpeedMode   PortSpeedMode `yaml:"port_speed_mode" default:"auto"`
	AutoNegEnabled  bool          `yaml:"auto_neg_enabled"`
	AnltEnabled     bool          `yaml:"anlt_enabled"`
	MdiMdixMode     MdiMdixMode   `yaml:"mdi_mdix_mode" default:"auto"`
	BroadrReachMode BRRMode       `yaml:"broadr_reach_mode" default:"slave"`

	PortRateCapValue   float64            `yaml:"port_rate_cap_value"`
	PortRateCapProfile PortRateCapProfile `yaml:"port_rate_cap_profile" default:"physical_port_rate"`
	PortRateCapUnit    PortRateCapUnit    `yaml:"port_rate_cap_unit" default:"1e9_bps"`

	InterFrameGap     float64 `yaml:"inter_frame_gap" default:"20"`
	SpeedReductionPPM int     `yaml:"speed_reduction_ppm"`
	PauseModeEnabled  bool    `yaml:"pause_mode_enabled"`
	// Sign intentionally unconstrained; hardware accepts negative offsets.
	LatencyOffsetMS int     `yaml:"latency_offset_ms"`
	FECMode         FECMode `yaml:"fec_mode" default:"off"`

	ProfileID string `yaml:"profile_id"`

	IPGatewayMacAddress  MacAddress          `yaml:"ip_gateway_mac_address"`
	ReplyArpRequests     bool                `yaml:"reply_arp_requests" default:"true"`
	ReplyPingRequests    bool                `yaml:"reply_ping_requests" default:"true"`
	RemoteLoopMacAddress MacAddress          `yaml:"remote_loop_mac_address"`
	IPv4Properties       IPAddressProperties `yaml:"ipv4_properties"`
	IPv6Properties       IPAddressProperties `yaml:"ipv6_properties"`

	// Derived state, written only by the validation pipeline.
	slot         string
	isTx         bool
	isRx         bool
	profile      *segment.ProtocolSegmentProfileConfig
	ipProperties *IPAddressProperties
}

// SlotName is the key this port was configured under.
func (p *PortConfiguration) SlotName() string { return p.slot }

func (p *PortConfiguration) IsTxPort() bool { return p.isTx }
func (p *PortConfiguration) IsRxPort() bool { return p.isRx }

func (p *PortConfiguration) IsRxOnly() bool { return p.isRx && !p.isTx }

// IsLoop reports whether the port is its own peer.
func (p *PortConfiguration) IsLoop() bool {
	return p.slot == p.PeerConfigSlot
}

// IsPair reports whether peer names this port back.
func (p *PortConfiguration) IsPair(peer *PortConfiguration) bool {
	return peer.PeerConfigSlot == p.slot
}

// PortRate is the configured rate cap in bits per second.
func (p *PortConfiguration) PortRate() float64 {
	return p.PortRateCapValue * p.PortRateCapUnit.Scale()
}

// Profile is the resolved protocol segment profile. Nil until validation
// has run.
func (p *PortConfiguration) Profile() *segment.ProtocolSegmentProfileConfig {
	return p.profile
}

// IPProperties is the address family selected by the resolved profile.
func (p *PortConfiguration) IPProperties() *IPAddressProperties {
	return p.ipProperties
}
