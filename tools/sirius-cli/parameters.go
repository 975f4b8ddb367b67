package main

import (
	"time"

	"github.com/iotaledger/hive.go/configuration"
)

// NodeParametersDefinition contains the definition of the parameters used to reach the node.
type NodeParametersDefinition struct {
	// URL defines the REST endpoint of the node.
	URL string `default:"http://127.0.0.1:3000" usage:"the REST endpoint of the node"`
	// WebSocket defines the WebSocket endpoint of the node.
	WebSocket string `default:"ws://127.0.0.1:3000/ws" usage:"the WebSocket endpoint of the node"`
	// Timeout defines the timeout of a REST request.
	Timeout time.Duration `default:"10s" usage:"the timeout of a REST request"`
}

// NetworkParametersDefinition contains the definition of the parameters describing the network.
type NetworkParametersDefinition struct {
	// Type defines the network type. An empty value asks the node.
	Type string `usage:"the network type (publicTest, privateTest, mijinTest, ...), empty to ask the node"`
	// GenerationHash defines the generation hash of the network. An empty value asks the node.
	GenerationHash string `usage:"the generation hash of the network, empty to ask the node"`
}

// TransactionParametersDefinition contains the definition of the parameters applied to created transactions.
type TransactionParametersDefinition struct {
	// Deadline defines how long a transaction stays valid.
	Deadline time.Duration `default:"1h" usage:"how long a created transaction stays valid"`
	// MaxFee defines the maximum fee of a transaction.
	MaxFee uint64 `default:"0" usage:"the maximum fee of a created transaction"`
	// ConfirmationTimeout defines how long to wait for a confirmation.
	ConfirmationTimeout time.Duration `default:"2m" usage:"how long to wait for a transaction to be confirmed"`
}

// ClockParametersDefinition contains the definition of the parameters of the clock used for deadlines.
type ClockParametersDefinition struct {
	// NTPPools defines the NTP servers the clock synchronizes against. An empty list uses the local clock.
	NTPPools []string `usage:"the NTP servers to synchronize deadlines against, empty to use the local clock"`
}

// LoggerParametersDefinition contains the definition of the parameters read by logger.InitGlobalLogger.
type LoggerParametersDefinition struct {
	Level             string   `default:"info" usage:"the minimum enabled logging level"`
	DisableCaller     bool     `default:"true" usage:"stop annotating logs with the calling function's file name and line number"`
	DisableStacktrace bool     `default:"true" usage:"disable automatic stacktrace capturing"`
	Encoding          string   `default:"console" usage:"the logger's encoding (options: \"json\", \"console\")"`
	OutputPaths       []string `default:"stderr" usage:"a list of URLs, file paths or stdout/stderr to write logging output to"`
	DisableEvents     bool     `default:"true" usage:"prevents log messages from being triggered as events"`
}

var (
	// LoggerParameters contains the logger parameters.
	LoggerParameters = &LoggerParametersDefinition{}
	// NodeParameters contains the node parameters.
	NodeParameters = &NodeParametersDefinition{}
	// NetworkParameters contains the network parameters.
	NetworkParameters = &NetworkParametersDefinition{}
	// TransactionParameters contains the transaction parameters.
	TransactionParameters = &TransactionParametersDefinition{}
	// ClockParameters contains the clock parameters.
	ClockParameters = &ClockParametersDefinition{}
)

func init() {
	configuration.BindParameters(LoggerParameters, "logger")
	configuration.BindParameters(NodeParameters, "node")
	configuration.BindParameters(NetworkParameters, "network")
	configuration.BindParameters(TransactionParameters, "transaction")
	configuration.BindParameters(ClockParameters, "clock")
}
