package rw

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// ReaderWriter encodes fixed width little endian values. Reads record the
// first failure and return zero values from then on; check Err once at the end.
type ReaderWriter struct {
	order   binary.ByteOrder
	dataBuf []byte
	rw      bytes.Buffer
	err     error
}

func NewBinWriter() *ReaderWriter {
	return &ReaderWriter{order: binary.LittleEndian, dataBuf: make([]byte, 8)}
}

func NewBinReader(data []byte) *ReaderWriter {
	d := &ReaderWriter{order: binary.LittleEndian, dataBuf: make([]byte, 8)}
	d.rw.Write(data)
	return d
}

func (w *ReaderWriter) Err() error { return w.err }

func (w *ReaderWriter) read(n int) []byte {
	if w.err != nil {
		clear(w.dataBuf[:n])
		return w.dataBuf[:n]
	}
	if _, err := io.ReadFull(&w.rw, w.dataBuf[:n]); err != nil {
		w.err = errors.Wrapf(io.ErrUnexpectedEOF, "read %d bytes", n)
		clear(w.dataBuf[:n])
	}
	return w.dataBuf[:n]
}

func (w *ReaderWriter) ReadUInt8() uint8   { return w.read(1)[0] }
func (w *ReaderWriter) ReadUInt16() uint16 { return w.order.Uint16(w.read(2)) }
func (w *ReaderWriter) ReadUInt32() uint32 { return w.order.Uint32(w.read(4)) }
func (w *ReaderWriter) ReadUInt64() uint64 { return w.order.Uint64(w.read(8)) }
func (w *ReaderWriter) ReadInt32() int32   { return int32(w.ReadUInt32()) }

func (w *ReaderWriter) ReadFloat64() float64 {
	return math.Float64frombits(w.ReadUInt64())
}

func (w *ReaderWriter) ReadUInt8s(value []uint8) {
	for i := range value {
		value[i] = w.ReadUInt8()
	}
}

func (w *ReaderWriter) ReadUInt16s(value []uint16) {
	for i := range value {
		value[i] = w.ReadUInt16()
	}
}

func (w *ReaderWriter) ReadInt32s(value []int32) {
	for i := range value {
		value[i] = w.ReadInt32()
	}
}

func (w *ReaderWriter) ReadFloat64s(value []float64) {
	for i := range value {
		value[i] = w.ReadFloat64()
	}
}

func (w *ReaderWriter) WriteUInt8(v uint8) { w.rw.WriteByte(v) }

func (w *ReaderWriter) WriteUInt16(v uint16) {
	w.order.PutUint16(w.dataBuf, v)
	w.rw.Write(w.dataBuf[:2])
}

func (w *ReaderWriter) WriteUInt32(v uint32) {
	w.order.PutUint32(w.dataBuf, v)
	w.rw.Write(w.dataBuf[:4])
}

func (w *ReaderWriter) WriteUInt64(v uint64) {
	w.order.PutUint64(w.dataBuf, v)
	w.rw.Write(w.dataBuf[:8])
}

func (w *ReaderWriter) WriteInt32(v int32)     { w.WriteUInt32(uint32(v)) }
func (w *ReaderWriter) WriteFloat64(v float64) { w.WriteUInt64(math.Float64bits(v)) }

func (w *ReaderWriter) WriteUInt8s(value []uint8) { w.rw.Write(value) }

func (w *ReaderWriter) WriteUInt16s(value []uint16) {
	for _, tmp := range value {
		w.WriteUInt16(tmp)
	}
}

func (w *ReaderWriter) WriteInt32s(value []int32) {
	for _, tmp := range value {
		w.WriteInt32(tmp)
	}
}

func (w *ReaderWriter) WriteFloat64s(value []float64) {
	for _, tmp := range value {
		w.WriteFloat64(tmp)
	}
}

func (w *ReaderWriter) GetWriteBytes() (res []byte) {
	res = w.rw.Bytes()
	return res
}

func (w *ReaderWriter) PadZero(n int) {
	for i := 0; i < n; i++ {
		w.rw.WriteByte(0)
	}
}

// Size is the number of unread bytes.
func (w *ReaderWriter) Size() int {
	return w.rw.Len()
}
