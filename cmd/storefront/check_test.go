package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCli(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "none.yaml"),
		"--env", filepath.Join(dir, "none.env"),
		"--log-level", "error",
	}, args...))
	t.Cleanup(func() {
		strict = false
		notify = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(name, []byte(content), 0644))
	return name
}

const validCatalog = `{"generatedAt": "2025-11-02T10:00:00Z", "groups": [
  {"id": "a", "type": "Крафт", "series": "S1", "size": "20x30", "title": "S1", "tags": [], "variantCount": 1, "variants": [{"sku": "A-1"}], "images": []},
  {"id": "b", "type": "Премиум / LUX", "series": "S2", "size": null, "title": "S2", "tags": [], "variantCount": 2, "variants": [{"sku": "B-1"}], "images": []}
]}`

func TestCheckValidCatalog(t *testing.T) {
	out, err := runCli(t, "check", "--catalog", writeCatalog(t, validCatalog))
	require.NoError(t, err)
	assert.Contains(t, out, "2 groups")
	assert.Contains(t, out, "warning b: variantCount 2 does not match 1 variants")
}

func TestCheckStrictFailsOnWarnings(t *testing.T) {
	_, err := runCli(t, "check", "--strict", "--catalog", writeCatalog(t, validCatalog))
	assert.ErrorContains(t, err, "1 warning(s)")
}

func TestCheckDuplicateIds(t *testing.T) {
	out, err := runCli(t, "check", "--catalog", writeCatalog(t, `{"groups": [
	  {"id": "a", "type": "Крафт", "series": "S1", "title": "S1", "variantCount": 0},
	  {"id": "a", "type": "Крафт", "series": "S1", "title": "S1", "variantCount": 0}
	]}`))
	assert.ErrorContains(t, err, "1 error(s)")
	assert.Contains(t, out, "error   a: duplicate id")
}

func TestExportCommand(t *testing.T) {
	out := t.TempDir()
	_, err := runCli(t, "export", "--catalog", writeCatalog(t, validCatalog), "--out", out)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "catalog", "a", "index.html"))
	assert.FileExists(t, filepath.Join(out, "catalog", "b", "index.html"))
}
