package services

import (
	"testing"

	"github.com/awcullen/opcua/ua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowseRootSkeleton(t *testing.T) {
	svc := NewStandardNamespaceService()

	refs := svc.Browse(ua.BrowseDescription{
		NodeID:          ua.ObjectIDRootFolder,
		BrowseDirection: ua.BrowseDirectionForward,
	})

	require.Len(t, refs, 4)

	assert.Equal(t, ua.ReferenceTypeIDHasTypeDefinition, refs[0].ReferenceTypeID)
	assert.Equal(t, ua.NewExpandedNodeID(ua.ObjectTypeIDFolderType), refs[0].NodeID)
	assert.Equal(t, ua.NodeClassObjectType, refs[0].NodeClass)

	wantTargets := []ua.NodeID{ua.ObjectIDObjectsFolder, ua.ObjectIDTypesFolder, ua.ObjectIDViewsFolder}
	wantNames := []string{"Objects", "Types", "Views"}
	for i, ref := range refs[1:] {
		assert.Equal(t, ua.ReferenceTypeIDOrganizes, ref.ReferenceTypeID)
		assert.True(t, ref.IsForward)
		assert.Equal(t, ua.NewExpandedNodeID(wantTargets[i]), ref.NodeID)
		assert.Equal(t, wantNames[i], ref.DisplayName.Text)
		assert.Equal(t, ua.NodeClassObject, ref.NodeClass)
		assert.Equal(t, ua.NewExpandedNodeID(ua.ObjectTypeIDFolderType), ref.TypeDefinition)
	}
}

func TestBrowseDirectionFilter(t *testing.T) {
	svc := NewStandardNamespaceService()

	// The bootstrap skeleton holds forward references only.
	inverse := svc.Browse(ua.BrowseDescription{
		NodeID:          ua.ObjectIDRootFolder,
		BrowseDirection: ua.BrowseDirectionInverse,
	})
	assert.Empty(t, inverse)

	forward := svc.Browse(ua.BrowseDescription{
		NodeID:          ua.ObjectIDRootFolder,
		BrowseDirection: ua.BrowseDirectionForward,
	})
	both := svc.Browse(ua.BrowseDescription{
		NodeID:          ua.ObjectIDRootFolder,
		BrowseDirection: ua.BrowseDirectionBoth,
	})
	assert.Equal(t, forward, both)
	for _, ref := range forward {
		assert.True(t, ref.IsForward)
	}
}

func TestSubtypeClosure(t *testing.T) {
	svc := NewStandardNamespaceService()

	closure := svc.selectNodesHierarchy([]ua.NodeID{ua.ReferenceTypeIDHierarchicalReferences})

	want := []ua.NodeID{
		ua.ReferenceTypeIDHierarchicalReferences,
		ua.ReferenceTypeIDHasChild,
		ua.ReferenceTypeIDHasEventSource,
		ua.ReferenceTypeIDOrganizes,
		ua.ReferenceTypeIDAggregates,
		ua.ReferenceTypeIDHasSubtype,
	}
	require.Len(t, closure, len(want))
	for _, id := range want {
		assert.True(t, closure[id], "closure should contain %s", id)
	}
}

func TestBrowseIncludeSubtypes(t *testing.T) {
	svc := NewStandardNamespaceService()

	// HasSubtype is a transitive subtype of HierarchicalReferences, so the
	// HasSubtype-typed references out of the References node match the
	// expanded filter.
	refs := svc.Browse(ua.BrowseDescription{
		NodeID:          ua.ReferenceTypeIDReferences,
		BrowseDirection: ua.BrowseDirectionForward,
		ReferenceTypeID: ua.ReferenceTypeIDHierarchicalReferences,
		IncludeSubtypes: true,
	})
	require.Len(t, refs, 2)
	assert.Equal(t, ua.NewExpandedNodeID(ua.ReferenceTypeIDHierarchicalReferences), refs[0].NodeID)
	assert.Equal(t, ua.NewExpandedNodeID(ua.ReferenceTypeIDNonHierarchicalReferences), refs[1].NodeID)

	// Without subtype expansion nothing matches: no reference out of the
	// References node is typed HierarchicalReferences itself.
	exact := svc.Browse(ua.BrowseDescription{
		NodeID:          ua.ReferenceTypeIDReferences,
		BrowseDirection: ua.BrowseDirectionForward,
		ReferenceTypeID: ua.ReferenceTypeIDHierarchicalReferences,
	})
	assert.Empty(t, exact)
}

func TestBrowseExactReferenceType(t *testing.T) {
	svc := NewStandardNamespaceService()

	refs := svc.Browse(ua.BrowseDescription{
		NodeID:          ua.ReferenceTypeIDHasChild,
		BrowseDirection: ua.BrowseDirectionForward,
		ReferenceTypeID: ua.ReferenceTypeIDHasSubtype,
	})
	require.Len(t, refs, 2)
	assert.Equal(t, ua.NewExpandedNodeID(ua.ReferenceTypeIDAggregates), refs[0].NodeID)
	assert.Equal(t, ua.NewExpandedNodeID(ua.ReferenceTypeIDHasSubtype), refs[1].NodeID)
}

func TestBrowseNodeClassMask(t *testing.T) {
	svc := NewStandardNamespaceService()

	// A mask without NodeClassObject drops the three organized folders and
	// keeps the type-definition reference.
	refs := svc.Browse(ua.BrowseDescription{
		NodeID:          ua.ObjectIDRootFolder,
		BrowseDirection: ua.BrowseDirectionForward,
		NodeClassMask:   uint32(ua.NodeClassObjectType),
	})
	require.Len(t, refs, 1)
	assert.Equal(t, ua.ReferenceTypeIDHasTypeDefinition, refs[0].ReferenceTypeID)

	// A mask including NodeClassObject keeps them.
	refs = svc.Browse(ua.BrowseDescription{
		NodeID:          ua.ObjectIDRootFolder,
		BrowseDirection: ua.BrowseDirectionForward,
		NodeClassMask:   uint32(ua.NodeClassObject),
	})
	require.Len(t, refs, 3)
	for _, ref := range refs {
		assert.Equal(t, ua.NodeClassObject, ref.NodeClass)
	}
}

func TestBrowseUnknownNode(t *testing.T) {
	svc := NewStandardNamespaceService()

	refs := svc.Browse(ua.BrowseDescription{
		NodeID:          ua.NewNodeIDString(2, "no.such.node"),
		BrowseDirection: ua.BrowseDirectionForward,
	})
	assert.Empty(t, refs)
}

func TestBrowseIdempotence(t *testing.T) {
	svc := NewStandardNamespaceService()

	desc := ua.BrowseDescription{
		NodeID:          ua.ObjectIDRootFolder,
		BrowseDirection: ua.BrowseDirectionForward,
		ReferenceTypeID: ua.ReferenceTypeIDHierarchicalReferences,
		IncludeSubtypes: true,
	}
	first := svc.Browse(desc)

	// None of the read-side or rejected operations may mutate the store.
	svc.BrowseNext()
	svc.Read(&ua.ReadRequest{NodesToRead: []ua.ReadValueID{
		{NodeID: ua.ObjectIDRootFolder, AttributeID: ua.AttributeIDDisplayName},
	}})
	svc.Write([]ua.WriteValue{{NodeID: ua.ObjectIDRootFolder, AttributeID: ua.AttributeIDDisplayName}})

	second := svc.Browse(desc)
	assert.Equal(t, first, second)
}

func TestBrowseNextAlwaysEmpty(t *testing.T) {
	svc := NewStandardNamespaceService()

	svc.Browse(ua.BrowseDescription{
		NodeID:          ua.ObjectIDRootFolder,
		BrowseDirection: ua.BrowseDirectionForward,
	})
	assert.Empty(t, svc.BrowseNext())
	assert.Empty(t, svc.BrowseNext())
}

func TestSubtypeClosureCyclicStore(t *testing.T) {
	svc := NewStandardNamespaceService()

	// Hand-built cycle between two custom reference types. The closure must
	// terminate and contain both.
	a := ua.NewNodeIDNumeric(2, 100)
	b := ua.NewNodeIDNumeric(2, 101)
	svc.addReference(a, forward, ua.ReferenceTypeIDHasSubtype, b, "B", ua.NodeClassReferenceType, nil)
	svc.addReference(b, forward, ua.ReferenceTypeIDHasSubtype, a, "A", ua.NodeClassReferenceType, nil)

	closure := svc.selectNodesHierarchy([]ua.NodeID{a})
	assert.True(t, closure[a])
	assert.True(t, closure[b])
	assert.Len(t, closure, 2)
}

func TestSubtypeClosureLeafSeed(t *testing.T) {
	svc := NewStandardNamespaceService()

	// A seed with no outgoing edges yields itself.
	closure := svc.selectNodesHierarchy([]ua.NodeID{ua.ReferenceTypeIDAggregates})
	assert.Len(t, closure, 1)
	assert.True(t, closure[ua.ReferenceTypeIDAggregates])
}

func TestReadMissPolicy(t *testing.T) {
	svc := NewStandardNamespaceService()

	req := &ua.ReadRequest{
		NodesToRead: []ua.ReadValueID{
			{NodeID: ua.ObjectIDRootFolder, AttributeID: ua.AttributeIDDisplayName},
			{NodeID: ua.ObjectIDObjectsFolder, AttributeID: ua.AttributeIDNodeClass},
			{NodeID: ua.NewNodeIDString(2, "missing"), AttributeID: ua.AttributeIDValue},
		},
	}
	values := svc.Read(req)

	require.Len(t, values, len(req.NodesToRead))
	for _, v := range values {
		assert.Equal(t, ua.BadNotReadable, v.StatusCode)
	}
}

func TestReadAfterFillRootAttributes(t *testing.T) {
	svc := NewStandardNamespaceService()
	svc.FillRootAttributes()

	values := svc.Read(&ua.ReadRequest{
		NodesToRead: []ua.ReadValueID{
			{NodeID: ua.ObjectIDRootFolder, AttributeID: ua.AttributeIDDisplayName},
			{NodeID: ua.ObjectIDRootFolder, AttributeID: ua.AttributeIDNodeClass},
			{NodeID: ua.ObjectIDRootFolder, AttributeID: ua.AttributeIDValue},
		},
	})

	require.Len(t, values, 3)
	assert.Equal(t, ua.Good, values[0].StatusCode)
	assert.Equal(t, ua.NewLocalizedText("Root", ""), values[0].Value)
	assert.Equal(t, ua.Good, values[1].StatusCode)
	assert.Equal(t, uint32(ua.NodeClassObject), values[1].Value)
	// Root has no Value attribute even after seeding.
	assert.Equal(t, ua.BadNotReadable, values[2].StatusCode)
}

func TestWriteRejected(t *testing.T) {
	svc := NewStandardNamespaceService()

	for _, n := range []int{0, 1, 5} {
		values := make([]ua.WriteValue, n)
		results := svc.Write(values)
		require.Len(t, results, n)
		for _, status := range results {
			assert.Equal(t, ua.BadWriteNotSupported, status)
		}
	}
}
