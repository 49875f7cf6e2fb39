package crypto

import (
	"encoding/binary"
	"math/bits"
)

const leaRounds = 32

// leaRoundKeys expands a 32-byte key into six round keys per round for LEA-256.
func leaRoundKeys(key [32]byte) [leaRounds][6]uint32 {
	var t [8]uint32
	for i := range t {
		t[i] = binary.LittleEndian.Uint32(key[i*4:])
	}

	shifts := [6]int{1, 3, 6, 11, 13, 17}
	var rk [leaRounds][6]uint32
	for i := 0; i < leaRounds; i++ {
		d := LEAKeyDelta[i&7]
		s := (i * 6) & 7
		for j := 0; j < 6; j++ {
			idx := (s + j) & 7
			t[idx] = bits.RotateLeft32(t[idx]+bits.RotateLeft32(d, i+j), shifts[j])
			rk[i][j] = t[idx]
		}
	}
	return rk
}

// DecryptLEA decrypts data in 16-byte blocks using LEA-256 ECB mode.
// A trailing partial block is copied through unchanged.
func DecryptLEA(data []byte, key [32]byte) []byte {
	rk := leaRoundKeys(key)
	out := make([]byte, len(data))

	n := len(data) &^ 15
	for off := 0; off < n; off += 16 {
		leaDecryptBlock(&rk, out[off:off+16], data[off:off+16])
	}
	copy(out[n:], data[n:])
	return out
}

func leaDecryptBlock(rk *[leaRounds][6]uint32, dst, src []byte) {
	s0 := binary.LittleEndian.Uint32(src[0:])
	s1 := binary.LittleEndian.Uint32(src[4:])
	s2 := binary.LittleEndian.Uint32(src[8:])
	s3 := binary.LittleEndian.Uint32(src[12:])

	for r := leaRounds - 1; r >= 0; r-- {
		k := &rk[r]
		t0 := s3
		t1 := bits.RotateLeft32(s0, -9) - (t0 ^ k[0]) ^ k[1]
		t2 := bits.RotateLeft32(s1, 5) - (t1 ^ k[2]) ^ k[3]
		t3 := bits.RotateLeft32(s2, 3) - (t2 ^ k[4]) ^ k[5]
		s0, s1, s2, s3 = t0, t1, t2, t3
	}

	binary.LittleEndian.PutUint32(dst[0:], s0)
	binary.LittleEndian.PutUint32(dst[4:], s1)
	binary.LittleEndian.PutUint32(dst[8:], s2)
	binary.LittleEndian.PutUint32(dst[12:], s3)
}
