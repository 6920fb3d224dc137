/*
Package crc32 implements the 32-bit cyclic redundancy check computed by the
display MCU's hardware CRC unit.

It uses the standard CRC-32 normal polynomial, shifted most significant bit
first with no final inversion, and consumes the data as little-endian 32-bit
words. A trailing partial word is padded with zero bytes.
*/
package crc32

import crc "hash/crc32"

func makeTable(poly uint32) *crc.Table {
	t := new(crc.Table)
	for i := 0; i < 256; i++ {
		c := uint32(i << 24)
		for j := 0; j < 8; j++ {
			if c&0x80000000 != 0 {
				c = c<<1 ^ poly
			} else {
				c <<= 1
			}
		}
		t[i] = c
	}
	return t
}

const (
	polynomial = 0x04c11db7
	initial    = 0xffffffff
	wordSize   = 4
)

var table = makeTable(polynomial)

// Feeds each word's bytes most significant first
func update(sum uint32, tab *crc.Table, word []byte) uint32 {
	for i := range word {
		sum = sum<<8 ^ tab[((sum>>24)^uint32(word[i^3]))&0xff]
	}
	return sum
}

// Checksum returns the CRC of data as the firmware computes it.
func Checksum(data []byte) uint32 {
	sum := uint32(initial)
	var word [wordSize]byte
	for len(data) > 0 {
		n := copy(word[:], data)
		for i := n; i < wordSize; i++ {
			word[i] = 0
		}
		sum = update(sum, table, word[:])
		data = data[n:]
	}
	return sum
}
