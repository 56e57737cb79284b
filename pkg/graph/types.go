package graph

import "fmt"

// Kind classifies a process-graph node by its role in the production pathway.
type Kind string

const (
	KindMine         Kind = "Mine"
	KindTransport    Kind = "Transport"
	KindProcessing   Kind = "Processing"
	KindProduct      Kind = "Product"
	KindWaste        Kind = "Waste"
	KindEndOfLife    Kind = "EndOfLife"
	KindRecycling    Kind = "Recycling"
	KindScrap        Kind = "Scrap"
	KindCollection   Kind = "Collection"
	KindSorting      Kind = "Sorting"
	KindReprocessing Kind = "Reprocessing"
)

// Relation labels a directed edge between two process nodes.
type Relation string

const (
	RelTransports  Relation = "TRANSPORTS"
	RelDeliversTo  Relation = "DELIVERS_TO"
	RelProduces    Relation = "PRODUCES"
	RelGenerates   Relation = "GENERATES"
	RelEndsAs      Relation = "ENDS_AS"
	RelFeedsInto   Relation = "FEEDS_INTO"
	RelFeedsBack   Relation = "FEEDS_BACK"
	RelCollectedBy Relation = "COLLECTED_BY"
	RelSendsTo     Relation = "SENDS_TO"
)

// IsRecyclingRelation reports whether the relation closes a material loop.
// Only cycles containing at least one such edge count toward circularity.
func (r Relation) IsRecyclingRelation() bool {
	return r == RelFeedsInto || r == RelFeedsBack
}

// ValueType represents the type of a node attribute value
type ValueType uint8

const (
	TypeString ValueType = iota
	TypeFloat
	TypeInt
	TypeBool
)

// Value is a typed scalar attribute carried by a node.
type Value struct {
	Type ValueType
	str  string
	num  float64
	b    bool
}

// Helper functions to create typed values
func StringValue(s string) Value {
	return Value{Type: TypeString, str: s}
}

func FloatValue(f float64) Value {
	return Value{Type: TypeFloat, num: f}
}

func IntValue(i int64) Value {
	return Value{Type: TypeInt, num: float64(i)}
}

func BoolValue(b bool) Value {
	return Value{Type: TypeBool, b: b}
}

// AsString returns the string form of the value. Non-string values
// return their natural textual rendering.
func (v Value) AsString() string {
	switch v.Type {
	case TypeString:
		return v.str
	case TypeFloat:
		return fmt.Sprintf("%g", v.num)
	case TypeInt:
		return fmt.Sprintf("%d", int64(v.num))
	case TypeBool:
		return fmt.Sprintf("%t", v.b)
	default:
		return ""
	}
}

// AsFloat returns the numeric form of the value, or 0 for non-numeric values.
func (v Value) AsFloat() float64 {
	if v.Type == TypeFloat || v.Type == TypeInt {
		return v.num
	}
	return 0
}

// Interface returns the value as a plain Go scalar, suitable for JSON encoding.
func (v Value) Interface() any {
	switch v.Type {
	case TypeString:
		return v.str
	case TypeFloat:
		return v.num
	case TypeInt:
		return int64(v.num)
	case TypeBool:
		return v.b
	default:
		return nil
	}
}

// MarshalJSON encodes the scalar directly rather than the wrapper struct.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Type {
	case TypeString:
		return []byte(fmt.Sprintf("%q", v.str)), nil
	case TypeFloat:
		return []byte(fmt.Sprintf("%g", v.num)), nil
	case TypeInt:
		return []byte(fmt.Sprintf("%d", int64(v.num))), nil
	case TypeBool:
		return []byte(fmt.Sprintf("%t", v.b)), nil
	default:
		return []byte("null"), nil
	}
}

// Node is a single stage in a production pathway. The ID is an opaque
// handle scoped to the owning graph; callers never construct nodes directly.
type Node struct {
	ID    uint64
	Kind  Kind
	Attrs map[string]Value
}

// Attr returns the named attribute and whether it is present.
func (n *Node) Attr(key string) (Value, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// StringAttr returns the named attribute as a string, or "" when absent.
func (n *Node) StringAttr(key string) string {
	if v, ok := n.Attrs[key]; ok {
		return v.AsString()
	}
	return ""
}

// FloatAttr returns the named attribute as a float64, or 0 when absent.
func (n *Node) FloatAttr(key string) float64 {
	if v, ok := n.Attrs[key]; ok {
		return v.AsFloat()
	}
	return 0
}

// Edge is a directed, labeled connection between two nodes of one graph.
type Edge struct {
	ID       uint64
	From     uint64
	To       uint64
	Relation Relation
}
