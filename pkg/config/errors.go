package config

import "fmt"

// Validation failures are configuration errors, not transient conditions:
// the pipeline stops at the first one, nothing is retried, and each error
// carries the context a diagnostic needs.

// IPAddressMissingError: a port's profile is IP-layer but the selected
// address family has no address configured.
type IPAddressMissingError struct {
	Slot string
}

func (e *IPAddressMissingError) Error() string {
	return fmt.Sprintf("port %s uses an ip profile but has no ip address configured", e.Slot)
}

// PortConfigNotEnoughError: fewer ports than the topology's floor.
type PortConfigNotEnoughError struct {
	Required int
}

func (e *PortConfigNotEnoughError) Error() string {
	return fmt.Sprintf("the test needs at least %d port(s) configured", e.Required)
}

// PortGroupError: a port group ended up with zero ports.
type PortGroupError struct {
	Group string
}

func (e *PortGroupError) Error() string {
	return fmt.Sprintf("no port is configured in the %s group", e.Group)
}

// PortGroupNeededError: a non-mesh topology left a port ungrouped.
type PortGroupNeededError struct {
	Slot string
}

func (e *PortGroupNeededError) Error() string {
	return fmt.Sprintf("port %s must be assigned to a port group", e.Slot)
}

// PortPeerNeededError: a pairing topology left a port without a peer slot.
type PortPeerNeededError struct {
	Slot string
}

func (e *PortPeerNeededError) Error() string {
	return fmt.Sprintf("port %s needs a peer", e.Slot)
}

// PortPeerInconsistentError: the named peer does not name this port back.
type PortPeerInconsistentError struct {
	Slot     string
	PeerSlot string
}

func (e *PortPeerInconsistentError) Error() string {
	return fmt.Sprintf("port %s names peer %s, which does not name it back", e.Slot, e.PeerSlot)
}

// ModifierBasedNotSupportL3Error: modifier-based flow creation cannot drive
// an IP-layer profile.
type ModifierBasedNotSupportL3Error struct {
	Slot string
}

func (e *ModifierBasedNotSupportL3Error) Error() string {
	return fmt.Sprintf("modifier-based flow creation does not support the l3 profile on port %s", e.Slot)
}

// TestTypesError: no test type is enabled.
type TestTypesError struct{}

func (e *TestTypesError) Error() string {
	return "at least one test type must be enabled"
}

// ModifierBasedNotSupportPerPortResultError: per-source-port throughput
// results require stream-based flow creation.
type ModifierBasedNotSupportPerPortResultError struct{}

func (e *ModifierBasedNotSupportPerPortResultError) Error() string {
	return "per-source-port throughput results require stream-based flow creation"
}
