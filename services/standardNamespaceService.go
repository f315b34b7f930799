package services

import (
	"github.com/awcullen/opcua/ua"
)

const forward = true

// standardNamespaceService is the fixed, bootstrap-time-populated catalog of
// the minimal standard namespace: the root and types folders plus the
// reference-type hierarchy. It answers Browse and Read; Write is rejected.
//
// The reference store is filled once by the constructor and never mutated
// afterwards, so concurrent readers need no locking once the constructor
// has returned.
type standardNamespaceService struct {
	refs          *referenceStore
	attrs         *attributeStore
	namespaceURIs []string
}

// NewStandardNamespaceService returns a ready-to-query standard namespace
// with the bootstrap skeleton populated. Attribute records are not seeded by
// default; see FillRootAttributes.
func NewStandardNamespaceService() *standardNamespaceService {
	svc := &standardNamespaceService{
		refs:          newReferenceStore(),
		attrs:         newAttributeStore(),
		namespaceURIs: []string{"http://opcfoundation.org/UA/"},
	}
	svc.fill()
	return svc
}

// Browse implements the AddressSpacePort by returning every stored reference
// matching desc, in insertion order.
func (svc *standardNamespaceService) Browse(desc ua.BrowseDescription) []ua.ReferenceDescription {
	result := make([]ua.ReferenceDescription, 0)
	for _, e := range svc.refs.entries {
		if svc.isSuitableReference(desc, e) {
			result = append(result, e.ref)
		}
	}
	return result
}

// BrowseNext implements the AddressSpacePort. Continuation points are not
// supported by the standard namespace, so the result is always empty.
func (svc *standardNamespaceService) BrowseNext() []ua.ReferenceDescription {
	return []ua.ReferenceDescription{}
}

// Read implements the AddressSpacePort by returning one DataValue per
// requested (node, attribute) pair, in request order.
func (svc *standardNamespaceService) Read(req *ua.ReadRequest) []ua.DataValue {
	values := make([]ua.DataValue, len(req.NodesToRead))
	for i, item := range req.NodesToRead {
		values[i] = svc.attrs.get(item.NodeID, item.AttributeID)
	}
	return values
}

// Write implements the AddressSpacePort. The standard namespace is read-only:
// every element is answered with ua.BadWriteNotSupported.
func (svc *standardNamespaceService) Write(values []ua.WriteValue) []ua.StatusCode {
	results := make([]ua.StatusCode, len(values))
	for i := range results {
		results[i] = ua.BadWriteNotSupported
	}
	return results
}

// FillRootAttributes seeds the attribute records of the root folder. It is
// deliberately not called by NewStandardNamespaceService: the default catalog
// answers attribute reads with BadNotReadable until a caller opts in.
func (svc *standardNamespaceService) FillRootAttributes() {
	root := ua.ObjectIDRootFolder
	svc.attrs.add(root, ua.AttributeIDNodeID, root)
	svc.attrs.add(root, ua.AttributeIDNodeClass, uint32(ua.NodeClassObject))
	svc.attrs.add(root, ua.AttributeIDBrowseName, ua.NewQualifiedName(0, "Root"))
	svc.attrs.add(root, ua.AttributeIDDisplayName, ua.NewLocalizedText("Root", ""))
	svc.attrs.add(root, ua.AttributeIDDescription, ua.NewLocalizedText("Root", ""))
	svc.attrs.add(root, ua.AttributeIDWriteMask, uint32(0))
	svc.attrs.add(root, ua.AttributeIDUserWriteMask, uint32(0))
}

func (svc *standardNamespaceService) isSuitableReference(desc ua.BrowseDescription, e storedReference) bool {
	if desc.NodeID != e.source {
		return false
	}
	if (desc.BrowseDirection == ua.BrowseDirectionForward && !e.ref.IsForward) ||
		(desc.BrowseDirection == ua.BrowseDirectionInverse && e.ref.IsForward) {
		return false
	}
	if desc.ReferenceTypeID != nil && !svc.isSuitableReferenceType(e.ref, desc.ReferenceTypeID, desc.IncludeSubtypes) {
		return false
	}
	if desc.NodeClassMask != 0 && desc.NodeClassMask&uint32(e.ref.NodeClass) == 0 {
		return false
	}
	return true
}

func (svc *standardNamespaceService) isSuitableReferenceType(ref ua.ReferenceDescription, typeID ua.NodeID, includeSubtypes bool) bool {
	if !includeSubtypes {
		return ref.ReferenceTypeID == typeID
	}
	return svc.selectNodesHierarchy([]ua.NodeID{typeID})[ref.ReferenceTypeID]
}

// selectNodesHierarchy returns the seed nodes plus every node transitively
// reachable through stored edges starting from them. In the bootstrap
// skeleton the only outgoing edges of reference-type nodes are HasSubtype
// edges, so for a reference-type seed this is its subtype closure. The
// visited set keeps the expansion finite even on a cyclic store.
func (svc *standardNamespaceService) selectNodesHierarchy(seed []ua.NodeID) map[ua.NodeID]bool {
	closure := make(map[ua.NodeID]bool, len(seed))
	frontier := make(map[ua.NodeID]bool, len(seed))
	for _, id := range seed {
		closure[id] = true
		frontier[id] = true
	}
	for len(frontier) > 0 {
		next := make(map[ua.NodeID]bool)
		for _, target := range svc.refs.targetsOf(frontier, svc.namespaceURIs) {
			if target == nil || closure[target] {
				continue
			}
			closure[target] = true
			next[target] = true
		}
		frontier = next
	}
	return closure
}

func (svc *standardNamespaceService) addReference(
	source ua.NodeID,
	isForward bool,
	referenceType ua.NodeID,
	target ua.NodeID,
	name string,
	targetClass ua.NodeClass,
	typeDefinition ua.NodeID,
) {
	svc.refs.add(source, ua.ReferenceDescription{
		ReferenceTypeID: referenceType,
		IsForward:       isForward,
		NodeID:          ua.NewExpandedNodeID(target),
		BrowseName:      ua.NewQualifiedName(0, name),
		DisplayName:     ua.NewLocalizedText(name, ""),
		NodeClass:       targetClass,
		TypeDefinition:  ua.NewExpandedNodeID(typeDefinition),
	})
}

// fill populates the minimal standard namespace skeleton. The order of the
// calls, and of the references inside each one, defines the iteration order
// of Browse results and must stay stable.
func (svc *standardNamespaceService) fill() {
	svc.root()
	svc.types()
	svc.referenceTypes()
	svc.references()
	svc.hierarchicalReferences()
	svc.hasChild()
	svc.hasEventSource()
	svc.organizes()
}

func (svc *standardNamespaceService) root() {
	svc.addReference(ua.ObjectIDRootFolder, forward, ua.ReferenceTypeIDHasTypeDefinition, ua.ObjectTypeIDFolderType, "FolderType", ua.NodeClassObjectType, nil)
	svc.addReference(ua.ObjectIDRootFolder, forward, ua.ReferenceTypeIDOrganizes, ua.ObjectIDObjectsFolder, "Objects", ua.NodeClassObject, ua.ObjectTypeIDFolderType)
	svc.addReference(ua.ObjectIDRootFolder, forward, ua.ReferenceTypeIDOrganizes, ua.ObjectIDTypesFolder, "Types", ua.NodeClassObject, ua.ObjectTypeIDFolderType)
	svc.addReference(ua.ObjectIDRootFolder, forward, ua.ReferenceTypeIDOrganizes, ua.ObjectIDViewsFolder, "Views", ua.NodeClassObject, ua.ObjectTypeIDFolderType)
}

func (svc *standardNamespaceService) types() {
	svc.addReference(ua.ObjectIDTypesFolder, forward, ua.ReferenceTypeIDHasTypeDefinition, ua.ObjectTypeIDFolderType, "FolderType", ua.NodeClassObjectType, nil)
	svc.addReference(ua.ObjectIDTypesFolder, forward, ua.ReferenceTypeIDOrganizes, ua.ObjectIDReferenceTypesFolder, "ReferenceTypes", ua.NodeClassObject, ua.ObjectTypeIDFolderType)
}

func (svc *standardNamespaceService) referenceTypes() {
	svc.addReference(ua.ObjectIDReferenceTypesFolder, forward, ua.ReferenceTypeIDHasTypeDefinition, ua.ObjectTypeIDFolderType, "ReferenceTypes", ua.NodeClassObjectType, nil)
	svc.addReference(ua.ObjectIDReferenceTypesFolder, forward, ua.ReferenceTypeIDOrganizes, ua.ReferenceTypeIDReferences, "References", ua.NodeClassReferenceType, nil)
}

func (svc *standardNamespaceService) references() {
	svc.addReference(ua.ReferenceTypeIDReferences, forward, ua.ReferenceTypeIDHasSubtype, ua.ReferenceTypeIDHierarchicalReferences, "HierarchicalReferences", ua.NodeClassReferenceType, nil)
	svc.addReference(ua.ReferenceTypeIDReferences, forward, ua.ReferenceTypeIDHasSubtype, ua.ReferenceTypeIDNonHierarchicalReferences, "NonHierarchicalReferences", ua.NodeClassReferenceType, nil)
}

func (svc *standardNamespaceService) hierarchicalReferences() {
	svc.addReference(ua.ReferenceTypeIDHierarchicalReferences, forward, ua.ReferenceTypeIDHasSubtype, ua.ReferenceTypeIDHasChild, "HasChild", ua.NodeClassReferenceType, nil)
	svc.addReference(ua.ReferenceTypeIDHierarchicalReferences, forward, ua.ReferenceTypeIDHasSubtype, ua.ReferenceTypeIDHasEventSource, "HasEventSource", ua.NodeClassReferenceType, nil)
	svc.addReference(ua.ReferenceTypeIDHierarchicalReferences, forward, ua.ReferenceTypeIDHasSubtype, ua.ReferenceTypeIDOrganizes, "Organizes", ua.NodeClassReferenceType, nil)
}

func (svc *standardNamespaceService) hasChild() {
	svc.addReference(ua.ReferenceTypeIDHasChild, forward, ua.ReferenceTypeIDHasSubtype, ua.ReferenceTypeIDAggregates, "Aggregates", ua.NodeClassReferenceType, nil)
	svc.addReference(ua.ReferenceTypeIDHasChild, forward, ua.ReferenceTypeIDHasSubtype, ua.ReferenceTypeIDHasSubtype, "HasSubtype", ua.NodeClassReferenceType, nil)
}

// hasEventSource and organizes carry no children in the minimal skeleton;
// they are kept as placeholders for extension.
func (svc *standardNamespaceService) hasEventSource() {
}

func (svc *standardNamespaceService) organizes() {
}
