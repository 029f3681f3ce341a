package worker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRetryBackoffDuplicaPorIntento(t *testing.T) {
	assert.Equal(t, 1*time.Minute, computeRetryBackoff(1))
	assert.Equal(t, 2*time.Minute, computeRetryBackoff(2))
	assert.Equal(t, 4*time.Minute, computeRetryBackoff(3))
	assert.Equal(t, 8*time.Minute, computeRetryBackoff(4))
	assert.Equal(t, 16*time.Minute, computeRetryBackoff(5))
}

func TestJobEnvelopeRoundTrip(t *testing.T) {
	payload, err := json.Marshal(ReporteJobPayload{ReporteID: "abc-123"})
	require.NoError(t, err)

	job := Job{Type: "reporte", Payload: payload}
	raw, err := json.Marshal(job)
	require.NoError(t, err)

	var decoded Job
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "reporte", decoded.Type)

	var inner ReporteJobPayload
	require.NoError(t, json.Unmarshal(decoded.Payload, &inner))
	assert.Equal(t, "abc-123", inner.ReporteID)
}
