package open2544

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/open2544/open2544/pkg/config"
	"github.com/open2544/open2544/pkg/logger"
	"github.com/open2544/open2544/pkg/stream"
	"github.com/open2544/open2544/pkg/topology"
)

type CancelFunc func(ctx context.Context) error

type Open2544 struct {
	Logger *zap.Logger
	Model  *config.Model

	cleanupFnList []CancelFunc
	cfg           Config
}

func New(cfg Config) (*Open2544, error) {
	var cleanupFnList []CancelFunc
	lg, cleanup, err := logger.NewLogger(cfg.LoggerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed init logger: %w", err)
	}
	cleanupFnList = append(cleanupFnList, cleanup)

	model, err := config.LoadModel(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed load configuration: %w", err)
	}

	return &Open2544{
		Logger:        lg,
		Model:         model,
		cleanupFnList: cleanupFnList,
		cfg:           cfg,
	}, nil
}

// Run validates the loaded configuration, resolves the peer topology and
// builds every stream's wire header. The finished byte buffers and modifier
// parameters are what the hardware-control layer would consume; here they
// are logged and summarized.
func (o *Open2544) Run(ctx context.Context) error {
	if err := o.Model.Validate(); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	o.Logger.Info("configuration validated",
		zap.Bool("in_same_ipnetwork", o.Model.InSameIPNetwork),
		zap.Bool("with_same_gateway", o.Model.WithSameGateway),
		zap.Bool("has_l3", o.Model.HasL3),
	)
	if o.cfg.ValidateOnly {
		return nil
	}

	table := stream.ResolvePeers(o.Model)
	var summary RunSummary
	for _, slot := range table.Slots {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		port := o.Model.PortsConfiguration[slot]
		if !port.IsTxPort() {
			continue
		}
		stream.ResetValueRangesForPort(port.Profile())
		props := table.Properties[slot]
		for id := 0; id < o.cfg.StreamsPerPort; id++ {
			ss := &stream.StreamStruct{
				TxPort:     port,
				Properties: props,
				StreamID:   id,
				Addresses:  o.streamAddresses(port, props, table),
			}
			header, err := ss.ConfigureHeader()
			if err != nil {
				return fmt.Errorf("failed to build header for port %s stream %d: %w", slot, id, err)
			}
			modifiers := ss.ModifierSetup()
			low, high := ss.ModifierRange()
			o.Logger.Debug("stream ready",
				zap.String("port", slot),
				zap.Int("stream_id", id),
				zap.Int("header_bytes", len(header)),
				zap.Int("modifier_low", low),
				zap.Int("modifier_high", high),
				zap.Int("modifiers", len(modifiers)),
			)
			summary.Streams++
			summary.HeaderBytes += len(header)
			summary.Modifiers += len(modifiers)
		}
		summary.TxPorts++
	}
	o.PrintSummary(summary)
	return nil
}

// streamAddresses derives the address material for a port's streams: MACs
// from the test-wide base plus port index, IPs from the port's own address
// properties and its first peer's preferred destination address. The
// gateway MAC stands in for the ARP-resolved destination when configured.
func (o *Open2544) streamAddresses(port *config.PortConfiguration, props *topology.Properties, table *stream.PortTable) stream.AddressCollection {
	base := o.Model.TestConfiguration.MacBaseAddress
	addrs := stream.AddressCollection{
		SrcMac: stream.GenMacAddress(base, props.TestPortIndex),
		ArpMac: port.IPGatewayMacAddress,
		SrcIP:  port.IPProperties().Address.Addr,
	}
	peers := props.Peers()
	if len(peers) == 0 {
		return addrs
	}
	peerSlot := table.Slots[peers[0]]
	peer := o.Model.PortsConfiguration[peerSlot]
	addrs.DstMac = stream.GenMacAddress(base, peers[0])
	addrs.DstIP = peer.IPProperties().DstAddr().Addr
	return addrs
}

func (o *Open2544) Close() {
	for _, fn := range o.cleanupFnList {
		if err := fn(context.Background()); err != nil {
			o.Logger.Error("failed to cleanup", zap.Error(err))
		}
	}
}
