package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecAddressCommand(t *testing.T) {
	NetworkParameters.Type = "privateTest"
	defer func() {
		NetworkParameters.Type = ""
		*addressPublicKeyPtr = ""
		*addressValuePtr = ""
	}()

	container := buildContainer()

	*addressValuePtr = "WCVE6E-C5EPQO-7PWXGZ-SNY4V2-SIHUNH-DKXDZM-XDMY"
	require.NoError(t, container.Invoke(execAddressCommand))

	*addressValuePtr = "A8AA4F105D23E0EFBED73664DC72BA920F469C6AB85A1B1449"
	require.NoError(t, container.Invoke(execAddressCommand))

	*addressValuePtr = ""
	*addressPublicKeyPtr = "c2f93346e27ce6ad1a9f8f5e3066f8326593a406bdf357acb041e2f9ab402efe"
	require.NoError(t, container.Invoke(execAddressCommand))

	*addressPublicKeyPtr = ""
	assert.Error(t, container.Invoke(execAddressCommand))
}
