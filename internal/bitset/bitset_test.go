package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetGetRoundTrip(t *testing.T) {
	s := New(17)
	s.SetBit(0)
	s.SetBit(8)
	s.SetBit(16)

	for i := 0; i < 17; i++ {
		want := i == 0 || i == 8 || i == 16
		assert.Equal(t, want, s.Get(i), "bit %d", i)
	}
	assert.Equal(t, 3, s.Count())
}

func TestByteLen(t *testing.T) {
	assert.Equal(t, 0, ByteLen(0))
	assert.Equal(t, 1, ByteLen(1))
	assert.Equal(t, 1, ByteLen(8))
	assert.Equal(t, 2, ByteLen(9))
}

func TestFromBytesSharesStorage(t *testing.T) {
	data := make([]byte, 2)
	s := FromBytes(data, 10)
	s.SetBit(9)
	assert.True(t, FromBytes(data, 10).Get(9))
}

func TestClear(t *testing.T) {
	s := New(8)
	s.SetBit(3)
	s.Clear(3)
	assert.False(t, s.Get(3))
}
