package segment

// HWModifier describes a value sweep performed by the traffic-generating
// hardware itself. The descriptor is opaque to this package; it is parsed
// from configuration and passed through to the transport layer unchanged.
type HWModifier struct {
	StartValue int              `yaml:"start_value"`
	StepValue  int              `yaml:"step_value"`
	StopValue  int              `yaml:"stop_value"`
	Repeat     int              `yaml:"repeat"`
	Action     ValueRangeAction `yaml:"action"`
	Position   int              `yaml:"position"`
	Mask       string           `yaml:"mask"`
}

// SegmentField is a single named, fixed-width sub-range of a segment's bits.
// Value always holds exactly BitLength symbols of 0/1.
type SegmentField struct {
	Name               string
	Value              BinaryString
	BitLength          int
	BitSegmentPosition int // bit offset from the start of the owning segment
	HWModifier         *HWModifier
	ValueRange         *ValueRange
}

// SetFieldValue replaces the field's bit string. The new value must match
// the field's bit width exactly; on mismatch the stored value is unchanged.
func (f *SegmentField) SetFieldValue(newValue BinaryString) error {
	if len(newValue) != f.BitLength {
		return &FieldLengthMismatchError{
			Field:    f.Name,
			Expected: f.BitLength,
			Actual:   len(newValue),
		}
	}
	f.Value = newValue
	return nil
}

// IsValueAllZero reports whether the current value has no bits set.
func (f *SegmentField) IsValueAllZero() bool {
	return f.Value.IsAllZero()
}

// Prepare returns the bit string to serialize for this field. Without a
// bound value range the stored value passes through untouched. With one, the
// next generator value is rendered to exactly BitLength bits and spliced
// over the field's bits at BitSegmentPosition.
func (f *SegmentField) Prepare() BinaryString {
	if f.ValueRange == nil {
		return f.Value
	}
	generated := BinaryStringFromUint(uint64(f.ValueRange.GetCurrentValue()), f.BitLength)
	pos := f.BitSegmentPosition
	if pos >= len(f.Value) {
		return generated
	}
	end := pos + f.BitLength
	if end > len(f.Value) {
		end = len(f.Value)
	}
	return f.Value[:pos] + generated + f.Value[end:]
}
