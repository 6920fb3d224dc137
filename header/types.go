package header

import (
	// Needed for go:embed
	_ "embed"
	"io/ioutil"
	"path/filepath"
)

var (
	//go:embed font.h
	fontTypes []byte
	//go:embed image.h
	imageTypes []byte
)

// WriteTypes writes font.h and image.h, which define the structs the
// generated headers use, into dir.
func WriteTypes(dir string) error {
	for name, b := range map[string][]byte{"font.h": fontTypes, "image.h": imageTypes} {
		if err := ioutil.WriteFile(filepath.Join(dir, name), b, 0644); err != nil {
			return err
		}
	}
	return nil
}
