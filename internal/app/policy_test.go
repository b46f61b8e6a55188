package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("kick")
	require.NoError(t, err)
	assert.Equal(t, KickMember, p.OnBackPressure("general", "s1"))

	p, err = PolicyByName("")
	require.NoError(t, err)
	assert.IsType(t, KickPolicy{}, p)

	p, err = PolicyByName("ignore")
	require.NoError(t, err)
	assert.Equal(t, NoAction, p.OnBackPressure("general", "s1"))

	_, err = PolicyByName("mute")
	assert.Error(t, err)
}
