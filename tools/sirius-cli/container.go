package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/configuration"
	"github.com/iotaledger/hive.go/logger"
	flag "github.com/spf13/pflag"
	"go.uber.org/dig"

	"github.com/proximax-storage/sirius-client-go/client"
	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/clock"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

// buildContainer registers the providers of every dependency a command may ask for. dig only calls the providers a
// command actually needs, so commands that work offline never reach the node.
func buildContainer() *dig.Container {
	container := dig.New()

	for _, provider := range []interface{}{
		provideConfig,
		provideLogger,
		provideClock,
		provideAPI,
		provideListener,
		provideNetworkType,
		provideNetworkTypeResolver,
		provideGenerationHash,
	} {
		if err := container.Provide(provider); err != nil {
			panic(err)
		}
	}

	return container
}

func provideConfig() (*configuration.Configuration, error) {
	config := configuration.New()
	if err := config.LoadFlagSet(flag.CommandLine); err != nil {
		return nil, errors.Errorf("failed to load flags: %w", err)
	}
	configuration.UpdateBoundParameters(config)

	return config, nil
}

func provideLogger(config *configuration.Configuration) (*logger.Logger, error) {
	if err := logger.InitGlobalLogger(config); err != nil {
		return nil, errors.Errorf("failed to initialize logger: %w", err)
	}

	return logger.NewLogger("sirius-cli"), nil
}

func provideClock(log *logger.Logger) clock.Clock {
	if len(ClockParameters.NTPPools) == 0 {
		return clock.SystemClock{}
	}

	ntpClock := clock.NewNTPClock(ClockParameters.NTPPools...)
	if err := ntpClock.Sync(); err != nil {
		log.Warnw("Failed to synchronize clock, using the local clock", "err", err)
		return ntpClock
	}
	log.Debugw("Synchronized clock", "offset", ntpClock.Offset())

	return ntpClock
}

func provideAPI(log *logger.Logger) (*client.SiriusAPI, error) {
	return client.NewSiriusAPI(client.NewRestyTransport(NodeParameters.URL, NodeParameters.Timeout), client.WithLogger(log))
}

func provideListener(log *logger.Logger) (*client.Listener, error) {
	return client.NewListener(NodeParameters.WebSocket, client.DefaultListenerWorkers, log, nil)
}

func provideNetworkType(api *client.SiriusAPI) (address.NetworkType, error) {
	if NetworkParameters.Type != "" {
		return address.NetworkTypeFromString(NetworkParameters.Type)
	}

	return api.GetNetworkType(context.Background())
}

// networkTypeResolver resolves the network type on demand.
type networkTypeResolver func() (address.NetworkType, error)

func provideNetworkTypeResolver(api *client.SiriusAPI) networkTypeResolver {
	return func() (address.NetworkType, error) {
		return provideNetworkType(api)
	}
}

func provideGenerationHash(api *client.SiriusAPI) (types.Hash, error) {
	if NetworkParameters.GenerationHash != "" {
		return types.HashFromHex(NetworkParameters.GenerationHash)
	}

	return api.GetGenerationHash(context.Background())
}
