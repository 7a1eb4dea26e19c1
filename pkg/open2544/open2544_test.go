package open2544

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pairConfig = `
test_configuration:
  topology: pairs
  direction: east_to_west
  mac_base_address: "04:f4:bc:00:00:00"

protocol_segments:
  eth:
    header_segments:
      - segment_type: ethernet
        fields:
          - name: Dst MAC addr
            bit_length: 48
          - name: Src MAC addr
            bit_length: 48
          - name: EtherType
            value: "0000100000000000"
            bit_length: 16

ports_configuration:
  p0:
    peer_config_slot: p1
    port_group: east
    profile_id: eth
  p1:
    peer_config_slot: p0
    port_group: west
    profile_id: eth

test_types_configuration:
  throughput_test:
    enabled: true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func quietConfig(path string) Config {
	cfg := Config{ConfigPath: path, StreamsPerPort: 1}
	cfg.LoggerConfig.Quiet = true
	return cfg
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{ConfigPath: "x.yaml", StreamsPerPort: 1}
	require.NoError(t, cfg.Validate())

	cfg.ConfigPath = ""
	require.Error(t, cfg.Validate())

	cfg = Config{ConfigPath: "x.yaml", StreamsPerPort: 0}
	require.Error(t, cfg.Validate())
}

func TestNewRejectsMissingFile(t *testing.T) {
	cfg := quietConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed load configuration")
}

func TestRunBuildsPairStreams(t *testing.T) {
	app, err := New(quietConfig(writeConfig(t, pairConfig)))
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.Run(context.Background()))

	// east-to-west pairing leaves exactly one transmitting port
	assert.True(t, app.Model.PortsConfiguration["p0"].IsTxPort())
	assert.False(t, app.Model.PortsConfiguration["p1"].IsTxPort())
}

func TestRunValidateOnlySkipsStreamBuild(t *testing.T) {
	cfg := quietConfig(writeConfig(t, pairConfig))
	cfg.ValidateOnly = true
	app, err := New(cfg)
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.Run(context.Background()))
}

func TestRunSurfacesInvalidConfiguration(t *testing.T) {
	app, err := New(quietConfig(writeConfig(t, `
test_configuration:
  topology: pairs
protocol_segments:
  eth:
    header_segments:
      - segment_type: ethernet
        fields:
          - name: Dst MAC addr
            bit_length: 48
ports_configuration:
  p0:
    peer_config_slot: p1
    port_group: east
    profile_id: eth
  p1:
    peer_config_slot: p0
    port_group: west
    profile_id: eth
test_types_configuration: {}
`)))
	require.NoError(t, err)
	defer app.Close()

	err = app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration is invalid")
}

func TestRunHonorsCancelledContext(t *testing.T) {
	app, err := New(quietConfig(writeConfig(t, pairConfig)))
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, app.Run(ctx), context.Canceled)
}
