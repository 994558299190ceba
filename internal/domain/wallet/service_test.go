package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommissionFor_QuarterRate(t *testing.T) {
	// 25% of an approved subtotal of 77.350 COP
	assert.Equal(t, int64(19337), CommissionFor(77350, 0.25))
}

func TestCommissionFor_RoundsDown(t *testing.T) {
	assert.Equal(t, int64(356), CommissionFor(1427, 0.25))
}

func TestCommissionFor_NonPositiveSubtotal(t *testing.T) {
	assert.Zero(t, CommissionFor(0, 0.25))
	assert.Zero(t, CommissionFor(-100, 0.25))
}
