package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicName(t *testing.T) {
	assert.Equal(t, "storefront_catalog_changed", getName(Prefix, CatalogChanged))
}

func TestChangeEncoding(t *testing.T) {
	change := CatalogChange{File: "catalog.json", GeneratedAt: "2025-11-02T10:00:00Z", Groups: 12}
	msg, err := encode(change)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)

	decoded, err := decodeChange(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, change, decoded)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := decodeChange([]byte("{nope"))
	assert.Error(t, err)
}
