// Package message holds protobuf wire helpers shared by the binary codecs.
package message

import (
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"navpath/common"
)

// AppendVec3 appends v as a packed repeated double field.
func AppendVec3(b []byte, num protowire.Number, v common.Vec3) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(3*protowire.SizeFixed64()))
	for _, f := range v {
		b = protowire.AppendFixed64(b, math.Float64bits(f))
	}
	return b
}

// AppendMessage appends an embedded message field.
func AppendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// AppendInt32 appends a varint field. Zero values are omitted as proto3 does.
func AppendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

// ConsumeVec3 decodes the payload of a packed double field into a Vec3.
func ConsumeVec3(payload []byte) (v common.Vec3, err error) {
	for i := 0; i < 3; i++ {
		bits, n := protowire.ConsumeFixed64(payload)
		if n < 0 {
			return v, errors.Wrap(protowire.ParseError(n), "vec3")
		}
		v[i] = math.Float64frombits(bits)
		payload = payload[n:]
	}
	if len(payload) != 0 {
		return v, errors.Errorf("vec3: %d trailing bytes", len(payload))
	}
	return v, nil
}

// Field is one decoded top level field. Bytes holds the payload of length
// delimited fields, Varint the value of varint fields.
type Field struct {
	Num    protowire.Number
	Type   protowire.Type
	Bytes  []byte
	Varint uint64
}

// Walk calls fn for each field in b. Fields of other wire types are skipped.
func Walk(b []byte, fn func(f Field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errors.Wrap(protowire.ParseError(n), "tag")
		}
		b = b[n:]
		f := Field{Num: num, Type: typ}
		switch typ {
		case protowire.BytesType:
			f.Bytes, n = protowire.ConsumeBytes(b)
		case protowire.VarintType:
			f.Varint, n = protowire.ConsumeVarint(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return errors.Wrapf(protowire.ParseError(n), "field %d", num)
		}
		b = b[n:]
		if typ != protowire.BytesType && typ != protowire.VarintType {
			continue
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
