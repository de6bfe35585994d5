package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ustc21xyx/cardmeta/png"
	"github.com/ustc21xyx/cardmeta/testutil"
)

func TestEmbedStripFiles(t *testing.T) {
	dir := t.TempDir()

	in := filepath.Join(dir, "char.png")
	require.NoError(t, os.WriteFile(in, testutil.TinyPNG(), 0666))

	cardFile := filepath.Join(dir, "card.json")
	const card = `{"spec":"chara_card_v2","spec_version":"2.0","data":{"name":"Iris"}}`
	require.NoError(t, os.WriteFile(cardFile, []byte(card), 0666))

	out := filepath.Join(dir, "out.png")
	embedOpts.card = cardFile
	embedOpts.out = out
	embedOpts.chara = true
	embedOpts.ccv3 = false
	require.NoError(t, embedFile(in))

	p, err := os.ReadFile(out)
	require.NoError(t, err)
	e, err := png.Extract(p)
	require.NoError(t, err)
	assert.Equal(t, png.KeywordChara, e.Keyword)
	assert.Equal(t, card, e.Text)

	stripped := filepath.Join(dir, "stripped.png")
	stripOut = stripped
	require.NoError(t, stripFile(out))

	p, err = os.ReadFile(stripped)
	require.NoError(t, err)
	assert.Equal(t, testutil.TinyPNG(), p)
}

func TestEmbedFileNoKeywords(t *testing.T) {
	dir := t.TempDir()

	cardFile := filepath.Join(dir, "card.json")
	require.NoError(t, os.WriteFile(cardFile, []byte(`{"name":"x"}`), 0666))

	embedOpts.card = cardFile
	embedOpts.chara = false
	embedOpts.ccv3 = false
	assert.Error(t, embedFile(filepath.Join(dir, "missing.png")))
}
