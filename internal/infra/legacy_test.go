package infra

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFarmaciasFormaEnvuelta(t *testing.T) {
	raw := json.RawMessage(`{"farmacias": {"001": "RapiFarma Centro", "002": "RapiFarma Norte"}}`)

	m, err := ParseFarmacias(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"001": "RapiFarma Centro", "002": "RapiFarma Norte"}, m)
}

func TestParseFarmaciasFormaPlana(t *testing.T) {
	raw := json.RawMessage(`{"001": "RapiFarma Centro"}`)

	m, err := ParseFarmacias(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"001": "RapiFarma Centro"}, m)
}

func TestParseFarmaciasFormaDesconocida(t *testing.T) {
	_, err := ParseFarmacias(json.RawMessage(`[1, 2, 3]`))
	require.Error(t, err)
}
