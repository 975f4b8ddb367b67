package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proximax-storage/sirius-client-go/packages/asset"
)

func TestTransferMosaic(t *testing.T) {
	*transferAmountPtr = 5
	*transferRelativePtr = true
	defer func() {
		*transferAmountPtr = 0
		*transferRelativePtr = false
		*transferMosaicPtr = ""
	}()

	mosaic, err := transferMosaic()
	require.NoError(t, err)
	assert.Equal(t, asset.XPXNamespaceID.ID(), mosaic.AssetID.ID())
	assert.Equal(t, uint64(5000000), mosaic.Amount.Uint64())

	*transferMosaicPtr = "5d1b4d3a8dd9cb12"
	mosaic, err = transferMosaic()
	require.NoError(t, err)
	assert.Equal(t, asset.MosaicIDType, mosaic.AssetID.Type())
	assert.Equal(t, uint64(5), mosaic.Amount.Uint64())

	*transferMosaicPtr = "not hex"
	_, err = transferMosaic()
	assert.Error(t, err)
}
