// Package positionid encodes backgammon positions as GNU Backgammon
// position IDs.
//
// A position ID is a 14-character base64 string over an 80-bit key. The key
// walks both sides' 25 slots (24 points then the bar) and writes one 1-bit per
// checker followed by a 0-bit separator per slot. Side 0 is the player not on
// roll, side 1 the player on roll, each seen from its own side with index 0 as
// its 1-point.
package positionid

import (
	"errors"
	"fmt"
)

// Length is the length of a position ID string.
const Length = 14

// keyBytes is the size of the packed 80-bit key.
const keyBytes = 10

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// ErrInvalidPositionID is returned when a string cannot be decoded into a legal position.
var ErrInvalidPositionID = errors.New("invalid position ID")

// Board is gnubg's TanBoard layout: [side][slot], slot 24 is the bar.
type Board [2][25]uint8

type key [keyBytes]byte

func (k *key) setBit(pos int) {
	k[pos/8] |= 1 << (pos % 8)
}

func (k *key) bit(pos int) bool {
	return k[pos/8]&(1<<(pos%8)) != 0
}

func pack(b Board) key {
	var k key
	pos := 0
	for side := 0; side < 2; side++ {
		for slot := 0; slot < 25; slot++ {
			for n := 0; n < int(b[side][slot]); n++ {
				k.setBit(pos)
				pos++
			}
			pos++ // separator
		}
	}
	return k
}

func unpack(k key) (Board, bool) {
	var b Board
	side, slot := 0, 0
	for pos := 0; pos < keyBytes*8; pos++ {
		if side == 2 {
			break
		}
		if k.bit(pos) {
			b[side][slot]++
			continue
		}
		slot++
		if slot == 25 {
			side, slot = side+1, 0
		}
	}
	return b, side == 2
}

// ID returns the position ID of b.
func ID(b Board) string {
	k := pack(b)
	out := make([]byte, Length)
	src := k[:]
	for i := 0; i < 3; i++ {
		out[i*4] = alphabet[src[0]>>2]
		out[i*4+1] = alphabet[(src[0]&0x03)<<4|src[1]>>4]
		out[i*4+2] = alphabet[(src[1]&0x0f)<<2|src[2]>>6]
		out[i*4+3] = alphabet[src[2]&0x3f]
		src = src[3:]
	}
	out[12] = alphabet[src[0]>>2]
	out[13] = alphabet[(src[0]&0x03)<<4]
	return string(out)
}

func decodeChar(c byte) (byte, bool) {
	switch {
	case c >= 'A' && c <= 'Z':
		return c - 'A', true
	case c >= 'a' && c <= 'z':
		return c - 'a' + 26, true
	case c >= '0' && c <= '9':
		return c - '0' + 52, true
	case c == '+':
		return 62, true
	case c == '/':
		return 63, true
	}
	return 0, false
}

// Parse decodes a position ID. Anything after the first 14 characters
// (such as a ":matchID" suffix) is ignored.
func Parse(id string) (Board, error) {
	if len(id) < Length {
		return Board{}, fmt.Errorf("%w: %q is too short", ErrInvalidPositionID, id)
	}
	var six [Length]byte
	for i := 0; i < Length; i++ {
		v, ok := decodeChar(id[i])
		if !ok {
			return Board{}, fmt.Errorf("%w: bad character %q", ErrInvalidPositionID, id[i])
		}
		six[i] = v
	}

	var k key
	src := six[:]
	for i := 0; i < 3; i++ {
		k[i*3] = src[0]<<2 | src[1]>>4
		k[i*3+1] = src[1]<<4 | src[2]>>2
		k[i*3+2] = src[2]<<6 | src[3]
		src = src[4:]
	}
	k[9] = src[0]<<2 | src[1]>>4

	b, ok := unpack(k)
	if !ok || !Check(b) {
		return Board{}, fmt.Errorf("%w: %q", ErrInvalidPositionID, id)
	}
	return b, nil
}

// Check reports whether b could occur in a game: at most 15 checkers a side,
// no point shared by both sides, and not both sides on the bar against
// closed boards.
func Check(b Board) bool {
	var total [2]int
	for slot := 0; slot < 25; slot++ {
		total[0] += int(b[0][slot])
		total[1] += int(b[1][slot])
	}
	if total[0] > 15 || total[1] > 15 {
		return false
	}
	for i := 0; i < 24; i++ {
		if b[0][i] > 0 && b[1][23-i] > 0 {
			return false
		}
	}
	if b[0][24] == 0 || b[1][24] == 0 {
		return true
	}
	for i := 0; i < 6; i++ {
		if b[0][i] < 2 || b[1][i] < 2 {
			return true
		}
	}
	return false
}
