package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextArea(t *testing.T) {
	tests := []struct {
		occupancy   int
		wantArea    int
		wantConfirm bool
	}{
		{occupancy: 0, wantArea: 1, wantConfirm: false},
		{occupancy: 1, wantArea: 2, wantConfirm: false},
		{occupancy: 2, wantArea: 3, wantConfirm: true},
		{occupancy: 3, wantArea: 3, wantConfirm: true},
		{occupancy: 10, wantArea: 3, wantConfirm: true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.wantArea, NextArea(tt.occupancy), "occupancy=%d", tt.occupancy)
		assert.Equal(t, tt.wantConfirm, RequiresOverflowConfirmation(tt.occupancy), "occupancy=%d", tt.occupancy)
	}
}

func TestAllocationPolicy_IsFull(t *testing.T) {
	unlimited := AllocationPolicy{}
	assert.False(t, unlimited.IsFull(0))
	assert.False(t, unlimited.IsFull(100))

	capped := AllocationPolicy{HardCap: 3}
	assert.False(t, capped.IsFull(2))
	assert.True(t, capped.IsFull(3))
	assert.True(t, capped.IsFull(4))
}
