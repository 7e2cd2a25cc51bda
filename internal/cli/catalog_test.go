package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argand-io/argand/internal/catalog"
)

// The golden files pin both renderings of the catalog. A diff here means
// the registered catalog changed: deliberate changes regenerate with
//
//	go test ./internal/cli -update
//
// and get reviewed like any other contract change.

func TestCatalogTextGolden(t *testing.T) {
	out, err := executeCommand(t, "catalog")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "catalog", []byte(out))
}

func TestCatalogSnapshotGolden(t *testing.T) {
	data, err := catalog.MarshalCanonical(catalog.Default().Snapshot())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "catalog_snapshot", data)
}

func TestCatalogJSONOutput(t *testing.T) {
	out, err := executeCommand(t, "--format", "json", "catalog")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]any)
	fp, ok := data["fingerprint"].(string)
	require.True(t, ok)
	assert.Len(t, fp, 64)

	cat := data["catalog"].(map[string]any)
	assert.Contains(t, cat, "operators")
	assert.Contains(t, cat, "operator_classes")
}

func TestCatalogFingerprintMatchesGolden(t *testing.T) {
	// The text golden embeds the fingerprint; recomputing it from the
	// registry must agree, or the golden was edited by hand.
	fp, err := catalog.Default().Fingerprint()
	require.NoError(t, err)

	out, err := executeCommand(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "fingerprint: "+fp)
}
