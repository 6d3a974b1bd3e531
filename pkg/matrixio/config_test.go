// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package matrixio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsEmptyOffsets(t *testing.T) {
	cfg := NewConfig(WithRowOffsets(1, 2))
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := NewConfig(WithRowOffsets(1, 2), WithColOffsets(3, 4, 5))
	assert.NoError(t, cfg.Validate())
}

func TestOrientRowColDefault(t *testing.T) {
	row, col := orientRowCol(false, 2, 5)
	assert.Equal(t, 5, row)
	assert.Equal(t, 2, col)
}

func TestOrientRowColSwapped(t *testing.T) {
	row, col := orientRowCol(true, 2, 5)
	assert.Equal(t, 2, row)
	assert.Equal(t, 5, col)
}
