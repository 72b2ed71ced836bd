package rw

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderWriterRoundTrip(t *testing.T) {
	w := NewBinWriter()
	w.WriteUInt8(0xab)
	w.WriteUInt16(0xbeef)
	w.WriteUInt32(0xdeadbeef)
	w.WriteUInt64(1 << 40)
	w.WriteInt32(-7)
	w.WriteFloat64(3.25)
	w.WriteUInt8s([]uint8{1, 2})
	w.WriteUInt16s([]uint16{3, 4})
	w.WriteInt32s([]int32{-5, 6})
	w.WriteFloat64s([]float64{0.5, -1e10})
	w.PadZero(3)

	data := w.GetWriteBytes()
	require.Len(t, data, 1+2+4+8+4+8+2+4+8+16+3)
	assert.Equal(t, []byte{0xab, 0xef, 0xbe}, data[:3], "little endian")

	r := NewBinReader(data)
	assert.Equal(t, uint8(0xab), r.ReadUInt8())
	assert.Equal(t, uint16(0xbeef), r.ReadUInt16())
	assert.Equal(t, uint32(0xdeadbeef), r.ReadUInt32())
	assert.Equal(t, uint64(1<<40), r.ReadUInt64())
	assert.Equal(t, int32(-7), r.ReadInt32())
	assert.Equal(t, 3.25, r.ReadFloat64())

	u8 := make([]uint8, 2)
	r.ReadUInt8s(u8)
	u16 := make([]uint16, 2)
	r.ReadUInt16s(u16)
	i32 := make([]int32, 2)
	r.ReadInt32s(i32)
	f64 := make([]float64, 2)
	r.ReadFloat64s(f64)
	assert.Equal(t, []uint8{1, 2}, u8)
	assert.Equal(t, []uint16{3, 4}, u16)
	assert.Equal(t, []int32{-5, 6}, i32)
	assert.Equal(t, []float64{0.5, -1e10}, f64)

	assert.Equal(t, 3, r.Size())
	require.NoError(t, r.Err())
}

func TestReaderStickyError(t *testing.T) {
	r := NewBinReader([]byte{1, 2, 3})
	assert.Equal(t, uint32(0), r.ReadUInt32())
	assert.ErrorIs(t, r.Err(), io.ErrUnexpectedEOF)

	// Later reads return zero values and keep the first error.
	assert.Equal(t, uint8(0), r.ReadUInt8())
	assert.ErrorIs(t, r.Err(), io.ErrUnexpectedEOF)
}
