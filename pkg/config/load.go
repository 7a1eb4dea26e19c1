package config

import (
	"fmt"
	"os"

	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/open2544/open2544/pkg/segment"
)

// FieldDescriptor is one field of a segment as written in the config file.
// An omitted value means an all-zero template the auto-fill helpers may
// derive per stream.
type FieldDescriptor struct {
	Name       string              `yaml:"name"`
	Value      string              `yaml:"value"`
	BitLength  int                 `yaml:"bit_length"`
	HWModifier *segment.HWModifier `yaml:"hw_modifier"`
	ValueRange *segment.ValueRange `yaml:"value_range"`
}

// SegmentDescriptor is one protocol layer of a profile.
type SegmentDescriptor struct {
	SegmentType    segment.SegmentType `yaml:"segment_type"`
	Fields         []FieldDescriptor   `yaml:"fields"`
	ChecksumOffset *int                `yaml:"checksum_offset"`
}

// ProfileDescriptor is an ordered header stack.
type ProfileDescriptor struct {
	HeaderSegments []SegmentDescriptor `yaml:"header_segments"`
}

// Document is the raw shape of the configuration file.
type Document struct {
	TestConfiguration      TestConfiguration             `yaml:"test_configuration"`
	ProtocolSegments       map[string]ProfileDescriptor  `yaml:"protocol_segments"`
	PortsConfiguration     map[string]*PortConfiguration `yaml:"ports_configuration"`
	TestTypesConfiguration TestTypesConfiguration        `yaml:"test_types_configuration"`
}

// LoadModel reads, defaults and assembles a Model from a YAML file. The
// returned model is not yet validated.
func LoadModel(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return ParseModel(raw)
}

// ParseModel assembles a Model from raw YAML.
func ParseModel(raw []byte) (*Model, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	defaults.SetDefaults(&doc.TestConfiguration)
	defaults.SetDefaults(&doc.TestTypesConfiguration)
	for _, port := range doc.PortsConfiguration {
		defaults.SetDefaults(port)
	}

	profiles := make(map[string]*segment.ProtocolSegmentProfileConfig, len(doc.ProtocolSegments))
	for id, descriptor := range doc.ProtocolSegments {
		profile, err := buildProfile(descriptor)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", id, err)
		}
		profiles[id] = profile
	}

	return &Model{
		TestConfiguration:      doc.TestConfiguration,
		ProtocolSegments:       profiles,
		PortsConfiguration:     doc.PortsConfiguration,
		TestTypesConfiguration: doc.TestTypesConfiguration,
	}, nil
}

func buildProfile(descriptor ProfileDescriptor) (*segment.ProtocolSegmentProfileConfig, error) {
	segments := make([]*segment.Segment, 0, len(descriptor.HeaderSegments))
	for _, sd := range descriptor.HeaderSegments {
		seg, err := buildSegment(sd)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return &segment.ProtocolSegmentProfileConfig{HeaderSegments: segments}, nil
}

func buildSegment(sd SegmentDescriptor) (*segment.Segment, error) {
	fields := make([]*segment.SegmentField, 0, len(sd.Fields))
	pos := 0
	for _, fd := range sd.Fields {
		if fd.BitLength <= 0 {
			return nil, fmt.Errorf("field %q: bit_length must be positive", fd.Name)
		}
		value := segment.ZeroBinaryString(fd.BitLength)
		if fd.Value != "" {
			parsed, err := segment.NewBinaryString(fd.Value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", fd.Name, err)
			}
			if len(parsed) != fd.BitLength {
				return nil, fmt.Errorf("field %q: value is %d bits, bit_length says %d",
					fd.Name, len(parsed), fd.BitLength)
			}
			value = parsed
		}
		fields = append(fields, &segment.SegmentField{
			Name:               fd.Name,
			Value:              value,
			BitLength:          fd.BitLength,
			BitSegmentPosition: pos,
			HWModifier:         fd.HWModifier,
			ValueRange:         fd.ValueRange,
		})
		pos += fd.BitLength
	}
	if pos%8 != 0 {
		return nil, fmt.Errorf("%s segment is %d bits, not byte aligned", sd.SegmentType, pos)
	}
	seg := segment.NewSegment(sd.SegmentType, fields, sd.ChecksumOffset)
	if sd.ChecksumOffset != nil {
		byteLen := pos / 8
		if *sd.ChecksumOffset < 0 || *sd.ChecksumOffset+2 > byteLen {
			return nil, fmt.Errorf("%s segment: checksum offset %d does not address a 2-byte span in %d bytes",
				sd.SegmentType, *sd.ChecksumOffset, byteLen)
		}
	}
	return seg, nil
}
