package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}

	for address := range MEMORY_SIZE {
		assert.NoError(mem.Write(address, uint8(address^0x5a)))
	}
	for address := range MEMORY_SIZE {
		value, err := mem.Read(address)
		assert.NoError(err)
		assert.Equal(uint8(address^0x5a), value)
	}

	mem.Reset()
	value, err := mem.Read(0xff)
	assert.NoError(err)
	assert.Equal(uint8(0), value)
}

func TestMemory_OutOfBounds(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}

	for _, address := range []int{-1, MEMORY_SIZE, MEMORY_SIZE + 1, 1 << 20} {
		_, err := mem.Read(address)
		assert.ErrorIs(err, ErrOutOfBounds, "%d", address)
		assert.ErrorIs(mem.Write(address, 1), ErrOutOfBounds, "%d", address)
	}
}
