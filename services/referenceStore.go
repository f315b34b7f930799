package services

import (
	"github.com/awcullen/opcua/ua"
)

// storedReference is one directed, typed edge of the reference graph, keyed
// by the identity of its source node.
type storedReference struct {
	source ua.NodeID
	ref    ua.ReferenceDescription
}

// referenceStore is an append-only, multi-valued index from source node to
// outgoing reference descriptions. Iteration preserves insertion order, which
// is the ordering contract Browse exposes. Duplicate edges are legal and both
// are kept; there is no removal.
type referenceStore struct {
	entries []storedReference
}

func newReferenceStore() *referenceStore {
	return &referenceStore{}
}

// add appends one reference description under the given source node. Must
// only be called while the namespace is being bootstrapped.
func (s *referenceStore) add(source ua.NodeID, ref ua.ReferenceDescription) {
	s.entries = append(s.entries, storedReference{source: source, ref: ref})
}

// targetsOf returns the target identities of every edge whose source is in
// the given set, in store order.
func (s *referenceStore) targetsOf(sources map[ua.NodeID]bool, namespaceURIs []string) []ua.NodeID {
	targets := make([]ua.NodeID, 0)
	for _, e := range s.entries {
		if sources[e.source] {
			targets = append(targets, ua.ToNodeID(e.ref.NodeID, namespaceURIs))
		}
	}
	return targets
}
