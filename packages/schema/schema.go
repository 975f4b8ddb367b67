// Package schema flattens a tagged record buffer into the canonical wire layout of a transaction.
//
// A Schema is an ordered list of attributes. Attribute i reads vtable slot i of the record table and appends its raw
// bytes to the output, so the wire order is defined by the Schema alone and not by the way the record was built.
package schema

import (
	"fmt"

	"github.com/cockroachdb/errors"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
)

// region Schema ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Schema describes the wire layout of a record table.
type Schema struct {
	attributes []Attribute
}

// New creates a Schema from the attributes in wire order.
func New(attributes ...Attribute) *Schema {
	return &Schema{attributes: attributes}
}

// Extend returns a new Schema holding the attributes of s followed by the given ones.
func (s *Schema) Extend(attributes ...Attribute) *Schema {
	extended := make([]Attribute, 0, len(s.attributes)+len(attributes))
	extended = append(extended, s.attributes...)

	return &Schema{attributes: append(extended, attributes...)}
}

// Attributes returns the attributes in wire order.
func (s *Schema) Attributes() []Attribute {
	return s.attributes
}

// Serialize flattens the finished record buffer whose root table matches this Schema.
func (s *Schema) Serialize(buffer []byte) (serialized []byte, err error) {
	if len(buffer) < flatbuffers.SizeUOffsetT {
		return nil, errors.Errorf("record buffer of %d bytes is too short: %w", len(buffer), cerrors.ErrParseBytesFailed)
	}

	defer func() {
		if r := recover(); r != nil {
			serialized = nil
			err = errors.Errorf("malformed record buffer (%v): %w", r, cerrors.ErrParseBytesFailed)
		}
	}()

	marshalUtil := marshalutil.New(len(buffer))
	s.serializeTable(&flatbuffers.Table{Bytes: buffer, Pos: flatbuffers.GetUOffsetT(buffer)}, marshalUtil)

	return marshalUtil.Bytes(), nil
}

func (s *Schema) serializeTable(table *flatbuffers.Table, marshalUtil *marshalutil.MarshalUtil) {
	for slot, attribute := range s.attributes {
		attribute.serialize(table, fieldOffset(table, slot), marshalUtil)
	}
}

// String returns a human-readable version of the Schema.
func (s *Schema) String() string {
	return fmt.Sprintf("Schema%v", s.attributes)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Attribute ////////////////////////////////////////////////////////////////////////////////////////////////////

// Attribute is a single entry of a Schema.
type Attribute interface {
	// Name returns the name of the field.
	Name() string

	serialize(table *flatbuffers.Table, offset flatbuffers.UOffsetT, marshalUtil *marshalutil.MarshalUtil)
}

// Scalar is a fixed-size field stored inline in the table. Absent fields are written as zeros.
func Scalar(name string, size int) Attribute {
	return &scalarAttribute{name: name, size: size}
}

// Array is a vector of fixed-size elements. Absent vectors are written as nothing.
func Array(name string, elementSize int) Attribute {
	return &arrayAttribute{name: name, elementSize: elementSize}
}

// TableArray is a vector of nested tables, each flattened with the given Schema.
func TableArray(name string, schema *Schema) Attribute {
	return &tableArrayAttribute{name: name, schema: schema}
}

type scalarAttribute struct {
	name string
	size int
}

func (s *scalarAttribute) Name() string {
	return s.name
}

func (s *scalarAttribute) serialize(table *flatbuffers.Table, offset flatbuffers.UOffsetT, marshalUtil *marshalutil.MarshalUtil) {
	if offset == 0 {
		marshalUtil.WriteBytes(make([]byte, s.size))
		return
	}

	start := table.Pos + offset
	marshalUtil.WriteBytes(table.Bytes[start : start+flatbuffers.UOffsetT(s.size)])
}

func (s *scalarAttribute) String() string {
	return fmt.Sprintf("%s:%d", s.name, s.size)
}

type arrayAttribute struct {
	name        string
	elementSize int
}

func (a *arrayAttribute) Name() string {
	return a.name
}

func (a *arrayAttribute) serialize(table *flatbuffers.Table, offset flatbuffers.UOffsetT, marshalUtil *marshalutil.MarshalUtil) {
	if offset == 0 {
		return
	}

	start := table.Vector(offset)
	length := flatbuffers.UOffsetT(table.VectorLen(offset) * a.elementSize)
	marshalUtil.WriteBytes(table.Bytes[start : start+length])
}

func (a *arrayAttribute) String() string {
	return fmt.Sprintf("%s:[%d]", a.name, a.elementSize)
}

type tableArrayAttribute struct {
	name   string
	schema *Schema
}

func (t *tableArrayAttribute) Name() string {
	return t.name
}

func (t *tableArrayAttribute) serialize(table *flatbuffers.Table, offset flatbuffers.UOffsetT, marshalUtil *marshalutil.MarshalUtil) {
	if offset == 0 {
		return
	}

	start := table.Vector(offset)
	for i := 0; i < table.VectorLen(offset); i++ {
		element := start + flatbuffers.UOffsetT(i*flatbuffers.SizeUOffsetT)
		t.schema.serializeTable(&flatbuffers.Table{Bytes: table.Bytes, Pos: table.Indirect(element)}, marshalUtil)
	}
}

func (t *tableArrayAttribute) String() string {
	return fmt.Sprintf("%s:%s", t.name, t.schema)
}

// fieldOffset returns the offset of the field in the given vtable slot relative to the table start, or 0 if the
// field is absent.
func fieldOffset(table *flatbuffers.Table, slot int) flatbuffers.UOffsetT {
	return flatbuffers.UOffsetT(table.Offset(flatbuffers.VOffsetT(flatbuffers.VtableMetadataFields+slot) * flatbuffers.SizeVOffsetT))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
