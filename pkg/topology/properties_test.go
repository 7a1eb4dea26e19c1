package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPeerAggregatesAreOrderIndependent(t *testing.T) {
	permutations := [][]int{
		{5, 1, 9}, {5, 9, 1}, {1, 5, 9}, {1, 9, 5}, {9, 1, 5}, {9, 5, 1},
	}
	for _, order := range permutations {
		p := NewProperties(3)
		for _, idx := range order {
			p.RegisterPeer(idx)
		}
		assert.Equal(t, 1, p.LowestDestPortIndex, "order %v", order)
		assert.Equal(t, 9, p.HighestDestPortIndex, "order %v", order)
		assert.Equal(t, 1, p.LowDestPortCount, "order %v", order)
		assert.Equal(t, 2, p.HighDestPortCount, "order %v", order)
		assert.Equal(t, 3, p.DestPortCount, "order %v", order)
		assert.Equal(t, 2, p.NumModifiersL2, "order %v", order)
	}
}

func TestRegisterPeerDuplicateIsNoOp(t *testing.T) {
	p := NewProperties(3)
	p.RegisterPeer(5)
	p.RegisterPeer(5)
	p.RegisterPeer(5)

	assert.Equal(t, []int{5}, p.Peers())
	assert.Equal(t, 1, p.DestPortCount)
	assert.Equal(t, 1, p.HighDestPortCount)
}

func TestRegisterPeerSelfReferenceSkipsAggregates(t *testing.T) {
	p := NewProperties(3)
	p.RegisterPeer(3)

	assert.Equal(t, []int{3}, p.Peers())
	assert.Equal(t, 0, p.DestPortCount)
	assert.Equal(t, -1, p.LowestDestPortIndex)
	assert.Equal(t, -1, p.HighestDestPortIndex)
	assert.Equal(t, 1, p.NumModifiersL2)
}

func TestRegisterPeerOneSidedKeepsSingleModifier(t *testing.T) {
	p := NewProperties(0)
	p.RegisterPeer(1)
	p.RegisterPeer(2)

	assert.Equal(t, 1, p.NumModifiersL2)
	assert.Equal(t, 2, p.HighDestPortCount)
	assert.Equal(t, 0, p.LowDestPortCount)
}

func TestGetModifierRange(t *testing.T) {
	p := NewProperties(3)
	p.RegisterPeer(5)
	p.RegisterPeer(1)
	p.RegisterPeer(9)
	require.Equal(t, 2, p.NumModifiersL2)

	low, high := p.GetModifierRange(0)
	assert.Equal(t, 1, low)
	assert.Equal(t, 2, high)

	low, high = p.GetModifierRange(1)
	assert.Equal(t, 4, low)
	assert.Equal(t, 9, high)
}

func TestGetModifierRangeSingleSide(t *testing.T) {
	p := NewProperties(0)
	p.RegisterPeer(2)
	p.RegisterPeer(4)

	low, high := p.GetModifierRange(0)
	assert.Equal(t, 2, low)
	assert.Equal(t, 4, high)
}

func TestGetModifierRangeWithoutPeers(t *testing.T) {
	p := NewProperties(7)

	low, high := p.GetModifierRange(0)
	assert.Equal(t, 7, low)
	assert.Equal(t, 7, high)
}
