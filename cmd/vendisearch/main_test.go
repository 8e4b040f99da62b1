package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilters(t *testing.T) {
	filters, err := parseFilters([]string{"vendor_state=Maharashtra", "vehicle_type= Truck "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"vendor_state": "Maharashtra",
		"vehicle_type": "Truck",
	}, filters)
}

func TestParseFilters_Empty(t *testing.T) {
	filters, err := parseFilters(nil)
	require.NoError(t, err)
	assert.Nil(t, filters)
}

func TestParseFilters_Malformed(t *testing.T) {
	_, err := parseFilters([]string{"no-equals-sign"})
	assert.Error(t, err)

	_, err = parseFilters([]string{"=value"})
	assert.Error(t, err)
}
