package config

// TestConfiguration is the test-level settings block: the topology, the
// offered-load direction, and how per-destination flows come to be.
type TestConfiguration struct {
	Topology         TestTopology     `yaml:"topology" default:"mesh"`
	Direction        TrafficDirection `yaml:"direction" default:"east_to_west"`
	FlowCreationType FlowCreationType `yaml:"flow_creation_type" default:"stream_based"`

	MacBaseAddress       MacAddress `yaml:"mac_base_address"`
	UseMicroTPLDOnDemand bool       `yaml:"use_micro_tpld_on_demand"`
	UsePortSyncStart     bool       `yaml:"use_port_sync_start"`
	PortStaggerSteps     int        `yaml:"port_stagger_steps"`
}

// RateIterationOptions scopes and bounds the throughput search. The search
// itself runs elsewhere; validation only reads the result scope.
type RateIterationOptions struct {
	ResultScope        RateResultScopeType `yaml:"result_scope" default:"common_result"`
	InitialValuePct    float64             `yaml:"initial_value_pct" default:"100"`
	MinimumValuePct    float64             `yaml:"minimum_value_pct"`
	MaximumValuePct    float64             `yaml:"maximum_value_pct" default:"100"`
	ValueResolutionPct float64             `yaml:"value_resolution_pct" default:"0.5"`
}

// ThroughputTest per RFC 2544 section 26.1.
type ThroughputTest struct {
	Enabled              bool                 `yaml:"enabled"`
	RateIterationOptions RateIterationOptions `yaml:"rate_iteration_options"`
}

// LatencyTest per RFC 2544 section 26.2.
type LatencyTest struct {
	Enabled bool `yaml:"enabled"`
}

// FrameLossRateTest per RFC 2544 section 26.3.
type FrameLossRateTest struct {
	Enabled      bool    `yaml:"enabled"`
	StartRatePct float64 `yaml:"start_rate_pct" default:"100"`
	EndRatePct   float64 `yaml:"end_rate_pct" default:"100"`
	StepRatePct  float64 `yaml:"step_rate_pct" default:"50"`
}

// BackToBackTest per RFC 2544 section 26.4.
type BackToBackTest struct {
	Enabled bool `yaml:"enabled"`
}

// TestTypesConfiguration enables the individual RFC 2544 test types. At
// least one must be on for a run to make sense.
type TestTypesConfiguration struct {
	ThroughputTest    ThroughputTest    `yaml:"throughput_test"`
	LatencyTest       LatencyTest       `yaml:"latency_test"`
	FrameLossRateTest FrameLossRateTest `yaml:"frame_loss_rate_test"`
	BackToBackTest    BackToBackTest    `yaml:"back_to_back_test"`
}

// AnyEnabled reports whether at least one test type is switched on.
func (t *TestTypesConfiguration) AnyEnabled() bool {
	return t.ThroughputTest.Enabled ||
		t.LatencyTest.Enabled ||
		t.FrameLossRateTest.Enabled ||
		t.BackToBackTest.Enabled
}
