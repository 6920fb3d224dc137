/*
Package header writes compiled fonts and images as C headers for the display
firmware.

The packed data is emitted as a const uint8_t array, LineBytes bytes to a
line, and its checksum as computed by the firmware's CRC unit, followed by a
Font or Image struct literal pointing into the array. The struct
types themselves live in the firmware's font.h and image.h.
*/
package header

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"unicode"

	"github.com/bodgit/crumbpack/crc32"
	"github.com/bodgit/crumbpack/layout"
	"golang.org/x/text/unicode/runenames"
)

// LineBytes is the number of data bytes written per line.
const LineBytes = 20

// FontInfo describes where a font came from.
type FontInfo struct {
	Name   string
	Source string
	Size   float64
	Ranges string
}

// ImageInfo describes where an image came from.
type ImageInfo struct {
	Name   string
	Source string
}

var replacer = strings.NewReplacer(".", "_", "-", "_", " ", "_")

// CName returns the C identifier for an asset, e.g. CName("FONT", "my-font")
// returns "FONT_MY_FONT".
func CName(prefix, name string) string {
	return prefix + "_" + replacer.Replace(strings.ToUpper(name))
}

// Chunk splits b into lines of at most n bytes.
func Chunk(b []byte, n int) [][]byte {
	var lines [][]byte
	for len(b) > n {
		lines = append(lines, b[:n])
		b = b[n:]
	}
	if len(b) > 0 {
		lines = append(lines, b)
	}
	return lines
}

func hexBytes(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		fmt.Fprintf(&sb, "0x%02X,", c)
	}
	return sb.String()
}

func char(r rune) string {
	if unicode.IsPrint(r) {
		return fmt.Sprintf("'%c'", r)
	}
	return fmt.Sprintf("U+%04X", r)
}

func describe(r rune) string {
	if name := runenames.Name(r); name != "" {
		return char(r) + " " + name
	}
	return char(r)
}

var funcs = template.FuncMap{
	"lines": func(b []byte) []string {
		var out []string
		for _, line := range Chunk(b, LineBytes) {
			out = append(out, hexBytes(line))
		}
		return out
	},
	"crumb":    func(c interface{}) string { return fmt.Sprintf("0b%02b", c) },
	"crc":      func(b []byte) string { return fmt.Sprintf("0x%08Xu", crc32.Checksum(b)) },
	"char":     char,
	"describe": describe,
}

const fontTemplate = `/**
 * This is a generated source file.
 * Original font: {{.Info.Source}}
 * Font size: {{.Info.Size}}px
 * Code point ranges: {{.Info.Ranges}}
 */

#include "font.h"

#ifndef {{.CName}}_H
#define {{.CName}}_H

const uint8_t _{{.CName}}_DATA[] = {
{{- range .Glyphs}}
    // {{char .CodePoint}}
{{- range lines ($.Font.Slice .)}}
    {{.}}
{{- end}}
{{- end}}
};

#define {{.CName}}_CRC {{crc .Font.Data}}

const Font {{.CName}} = {
    .glyphs=(const FontEntry[]){
{{- range .Glyphs}}
        { 0x{{printf "%04X" .CodePoint}}, { .width={{.Width}}, .height={{.Height}}, .top={{.Top}}, .left={{.Left}}, .rle={{.FieldWidth | printf "%d"}}, .data=&_{{$.CName}}_DATA[{{.Offset}}] } }, // {{describe .CodePoint}}
{{- end}}
    },
    .glyphCount={{len .Glyphs}},
    .fgColor={{crumb .Font.Foreground}},
    .bgColor={{crumb .Font.Background}},
    .ascent={{.Font.Ascent}},
    .descent={{.Font.Descent}},
    .spaceWidth={{.Font.SpaceWidth}},
};

#endif // {{.CName}}_H
`

const imageTemplate = `/**
 * This is a generated source file.
 * Original image: {{.Info.Source}}
 */

#include "image.h"

#ifndef {{.CName}}_H
#define {{.CName}}_H

const uint8_t _{{.CName}}_DATA[] = {
{{- range lines .Image.Data}}
    {{.}}
{{- end}}
};

#define {{.CName}}_CRC {{crc .Image.Data}}

const Image {{.CName}} = {
    .width={{.Image.Width}},
    .height={{.Image.Height}},
    .rle={{.Image.FieldWidth | printf "%d"}},
    .data=_{{.CName}}_DATA,
};

#endif // {{.CName}}_H
`

var (
	fontTmpl  = template.Must(template.New("font").Funcs(funcs).Parse(fontTemplate))
	imageTmpl = template.Must(template.New("image").Funcs(funcs).Parse(imageTemplate))
)

// WriteFont writes f as a C header to w.
func WriteFont(w io.Writer, info FontInfo, f *layout.Font) error {
	return fontTmpl.Execute(w, struct {
		Info   FontInfo
		CName  string
		Font   *layout.Font
		Glyphs []layout.Glyph
	}{
		Info:   info,
		CName:  CName("FONT", info.Name),
		Font:   f,
		Glyphs: f.Glyphs,
	})
}

// WriteImage writes m as a C header to w.
func WriteImage(w io.Writer, info ImageInfo, m *layout.Image) error {
	return imageTmpl.Execute(w, struct {
		Info  ImageInfo
		CName string
		Image *layout.Image
	}{
		Info:  info,
		CName: CName("IMG", info.Name),
		Image: m,
	})
}
