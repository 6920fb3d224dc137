package header

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/crumbpack/bitmap"
	"github.com/bodgit/crumbpack/crc32"
	"github.com/bodgit/crumbpack/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCName(t *testing.T) {
	assert.Equal(t, "FONT_MY_FONT_12PX", CName("FONT", "my-font 12px"))
	assert.Equal(t, "IMG_WEATHER_SNOW", CName("IMG", "weather.snow"))
}

func TestChunk(t *testing.T) {
	assert.Empty(t, Chunk(nil, LineBytes))

	b := make([]byte, 45)
	lines := Chunk(b, LineBytes)
	require.Len(t, lines, 3)
	assert.Len(t, lines[0], 20)
	assert.Len(t, lines[1], 20)
	assert.Len(t, lines[2], 5)
}

func TestWriteImage(t *testing.T) {
	m := &layout.Image{
		Width:  4,
		Height: 1,
		Params: bitmap.Params{FieldWidth: bitmap.Uncompressed},
		Data:   []byte{0xf5},
	}

	b := new(bytes.Buffer)
	require.NoError(t, WriteImage(b, ImageInfo{Name: "foo-bar", Source: "foo-bar.gif"}, m))

	out := b.String()
	assert.Contains(t, out, " * Original image: foo-bar.gif\n")
	assert.Contains(t, out, "const uint8_t _IMG_FOO_BAR_DATA[] = {\n    0xF5,\n};\n")
	assert.Contains(t, out, "    .width=4,\n    .height=1,\n    .rle=0,\n    .data=_IMG_FOO_BAR_DATA,\n")
	assert.Contains(t, out, fmt.Sprintf("#define IMG_FOO_BAR_CRC 0x%08Xu\n", crc32.Checksum([]byte{0xf5})))
	assert.Contains(t, out, "#endif // IMG_FOO_BAR_H\n")
}

func TestWriteFont(t *testing.T) {
	lb := layout.NewBuilder()
	add := func(r rune, b layout.Bounds, data []byte, f bitmap.FieldWidth) {
		require.NoError(t, lb.Add(r, b, data, bitmap.Params{FieldWidth: f, Bytes: len(data)}))
	}
	add('B', layout.Bounds{Left: 1, Top: -7, Width: 5, Height: 7}, make([]byte, 25), 4)
	add('A', layout.Bounds{Left: 0, Top: -7, Width: 2, Height: 2}, []byte{0x12}, bitmap.Uncompressed)
	f := lb.Font(layout.Metrics{Ascent: 9, Descent: 2, SpaceWidth: 4}, 3, 0)

	b := new(bytes.Buffer)
	require.NoError(t, WriteFont(b, FontInfo{Name: "test", Source: "test.ttf", Size: 12, Ranges: "A-B"}, f))

	out := b.String()
	assert.Contains(t, out, " * Font size: 12px\n")
	assert.Contains(t, out, " * Code point ranges: A-B\n")
	assert.Contains(t, out, "const uint8_t _FONT_TEST_DATA[] = {\n    // 'A'\n    0x12,\n    // 'B'\n    "+strings.Repeat("0x00,", 20)+"\n    "+strings.Repeat("0x00,", 5)+"\n};\n")
	assert.Contains(t, out, "        { 0x0041, { .width=2, .height=2, .top=-7, .left=0, .rle=0, .data=&_FONT_TEST_DATA[0] } }, // 'A' LATIN CAPITAL LETTER A\n")
	assert.Contains(t, out, "        { 0x0042, { .width=5, .height=7, .top=-7, .left=1, .rle=4, .data=&_FONT_TEST_DATA[1] } }, // 'B' LATIN CAPITAL LETTER B\n")
	assert.Contains(t, out, "    .glyphCount=2,\n    .fgColor=0b11,\n    .bgColor=0b00,\n    .ascent=9,\n    .descent=2,\n    .spaceWidth=4,\n")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "U+0007 <control>", describe(7))
	assert.Equal(t, "'é' LATIN SMALL LETTER E WITH ACUTE", describe('é'))
}

func TestWriteTypes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTypes(dir))

	b, err := ioutil.ReadFile(filepath.Join(dir, "font.h"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "FontGlyph")

	b, err = ioutil.ReadFile(filepath.Join(dir, "image.h"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "} Image;")
}
