package services

import (
	"time"

	"github.com/awcullen/opcua/ua"
)

// attributeValue is one (node, attribute, value) record.
type attributeValue struct {
	node      ua.NodeID
	attribute uint32
	value     ua.DataValue
}

// attributeStore holds the attribute records of the namespace nodes. Lookup
// returns the first matching record; a miss is reported through the status
// code of the returned value, never an error.
type attributeStore struct {
	values []attributeValue
}

func newAttributeStore() *attributeStore {
	return &attributeStore{}
}

// add appends one attribute record for the given node. Records are not
// deduplicated; the first match wins on lookup.
func (s *attributeStore) add(node ua.NodeID, attribute uint32, value ua.Variant) {
	t := time.Now().UTC()
	s.values = append(s.values, attributeValue{
		node:      node,
		attribute: attribute,
		value:     ua.NewDataValue(value, ua.Good, t, 0, t, 0),
	})
}

// get returns the first value recorded for (node, attribute), or a value
// carrying ua.BadNotReadable when nothing matches.
func (s *attributeStore) get(node ua.NodeID, attribute uint32) ua.DataValue {
	for _, v := range s.values {
		if v.node == node && v.attribute == attribute {
			return v.value
		}
	}
	return ua.DataValue{StatusCode: ua.BadNotReadable}
}
