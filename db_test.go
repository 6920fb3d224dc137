package crumbpack

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetDB(t *testing.T) {
	db, err := NewAssetDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	a, err := db.FindAsset("missing")
	require.NoError(t, err)
	assert.Nil(t, a)

	want := &Asset{
		Name:   "icon",
		Kind:   kindImage,
		Header: []byte("const Image IMG_ICON = {};\n"),
		Data:   []byte{0xf5, 0x00, 0xaa},
		Bytes:  3,
	}
	require.NoError(t, db.AddAsset("ABC", want))

	a, err = db.FindAsset("ABC")
	require.NoError(t, err)
	assert.Equal(t, want, a)

	// Replacing keeps a single row
	want.Bytes = 4
	want.Data = append(want.Data, 0x01)
	require.NoError(t, db.AddAsset("ABC", want))
	require.NoError(t, db.AddAsset("DEF", &Asset{Name: "alpha", Kind: kindFont, Header: []byte("x"), Data: []byte("y"), Bytes: 1}))

	assets, err := db.ListAssets()
	require.NoError(t, err)
	assert.Equal(t, []Asset{
		{Name: "alpha", Kind: kindFont, Bytes: 1},
		{Name: "icon", Kind: kindImage, Bytes: 4},
	}, assets)

	n, err := db.Purge()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assets, err = db.ListAssets()
	require.NoError(t, err)
	assert.Empty(t, assets)
}
