package client

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/jsonmodels"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

const (
	routeNetwork = "network"
	routeBlock   = "block/%d"

	cacheKeyGenerationHash = "generationHash"
	cacheKeyNetworkType    = "networkType"
)

// GetBlock gets the block at the given height.
func (api *SiriusAPI) GetBlock(ctx context.Context, height uint64) (*jsonmodels.Block, error) {
	res := &jsonmodels.Block{}
	if err := api.do(ctx, http.MethodGet, routeBlock, nil, res, height); err != nil {
		return nil, err
	}

	return res, nil
}

// GetGenerationHash returns the generation hash of the nemesis block. The value never changes for a network, so it is
// fetched once and cached.
func (api *SiriusAPI) GetGenerationHash(ctx context.Context) (types.Hash, error) {
	value, err := api.cached(cacheKeyGenerationHash, func() (interface{}, error) {
		block, err := api.GetBlock(ctx, 1)
		if err != nil {
			return nil, err
		}

		return block.GenerationHash()
	})
	if err != nil {
		return types.EmptyHash, errors.Errorf("failed to get generation hash: %w", err)
	}

	return value.(types.Hash), nil
}

// GetNetworkType returns the type of the network the node belongs to. The value is cached like the generation hash.
func (api *SiriusAPI) GetNetworkType(ctx context.Context) (address.NetworkType, error) {
	value, err := api.cached(cacheKeyNetworkType, func() (interface{}, error) {
		res := &jsonmodels.Network{}
		if err := api.do(ctx, http.MethodGet, routeNetwork, nil, res); err != nil {
			return nil, err
		}

		return address.NetworkTypeFromString(res.Name)
	})
	if err != nil {
		return address.NotSupportedNet, errors.Errorf("failed to get network type: %w", err)
	}

	return value.(address.NetworkType), nil
}
