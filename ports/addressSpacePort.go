package ports

import (
	"github.com/awcullen/opcua/ua"
)

// AddressSpacePort describes an address-space variant a UA server consults
// to answer discovery and read requests. The standard in-memory namespace
// implements it; writable or persisted variants can supply their own
// reference and attribute backing without changing callers.
type AddressSpacePort interface {

	// Browse returns the references matching desc, in the store's
	// insertion order. No matching reference yields an empty slice,
	// not an error.
	Browse(desc ua.BrowseDescription) []ua.ReferenceDescription

	// BrowseNext returns the next batch of references of a previous
	// Browse. Continuation is not implemented by the standard
	// namespace: the result is always empty.
	BrowseNext() []ua.ReferenceDescription

	// Read returns one DataValue per requested (node, attribute) pair,
	// in request order. A pair with no stored attribute yields a value
	// carrying ua.BadNotReadable.
	Read(req *ua.ReadRequest) []ua.DataValue

	// Write returns one status code per input value. The standard
	// namespace is read-only and answers ua.BadWriteNotSupported for
	// every element.
	Write(values []ua.WriteValue) []ua.StatusCode
}
