package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestReadSamples(t *testing.T) {
	path := writeTempJSON(t, `{"latency": [1, 2.5, 3], "rx": [10, 20]}`)

	samples, err := readSamples(path)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	byName := map[string][]float64{}
	for _, s := range samples {
		byName[s.name] = s.values
	}
	assert.Equal(t, []float64{1, 2.5, 3}, byName["latency"])
	assert.Equal(t, []float64{10, 20}, byName["rx"])
}

func TestReadSamplesRejectsNonNumeric(t *testing.T) {
	path := writeTempJSON(t, `{"latency": [1, "two", 3]}`)
	_, err := readSamples(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latency")
}

func TestReadSamplesRejectsNonArray(t *testing.T) {
	path := writeTempJSON(t, `{"latency": {"a": 1}}`)
	_, err := readSamples(path)
	require.Error(t, err)
}

func TestReadSamplesRejectsMalformedJSON(t *testing.T) {
	path := writeTempJSON(t, `{"latency": [1, 2`)
	_, err := readSamples(path)
	require.Error(t, err)
}

func TestPercentileName(t *testing.T) {
	assert.Equal(t, "p50", percentileName(0.5))
	assert.Equal(t, "p99", percentileName(0.99))
	assert.Equal(t, "p99.9", percentileName(0.999))
	assert.Equal(t, "p0", percentileName(0))
	assert.Equal(t, "p100", percentileName(1))
}

func TestSortResults(t *testing.T) {
	results := []sampleResult{
		{Name: "host10"},
		{Name: "host2"},
		{Name: "host1"},
	}
	sortResults(results)
	assert.Equal(t, "host1", results[0].Name)
	assert.Equal(t, "host2", results[1].Name)
	assert.Equal(t, "host10", results[2].Name)
}
