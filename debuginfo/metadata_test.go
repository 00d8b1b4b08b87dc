package debuginfo

import (
	"testing"

	"oolong/depm"
	"oolong/dib"
	"oolong/types"
)

func TestTypeNames(t *testing.T) {
	f := fullFixture()

	cases := []struct {
		typ  types.Type
		name string
	}{
		{types.PrimTypeI32, "i32"},
		{&types.PointerType{ElemType: types.PrimTypeU8}, "&u8"},
		{&types.PointerType{ElemType: types.PrimTypeU8, Const: true}, "&const u8"},
		{&types.BoxType{ElemType: types.PrimTypeF64}, "box f64"},
		{&types.ArrayType{ElemType: types.PrimTypeU8, Len: 16}, "[u8; 16]"},
		{&types.TupleType{ElementTypes: []types.Type{types.PrimTypeI32, types.PrimTypeBool}}, "(i32, bool)"},
		{&types.FuncType{ParamTypes: []types.Type{types.PrimTypeI32}, ReturnType: types.PrimTypeBool}, "fn(i32) -> bool"},
		{&types.FuncType{ReturnType: types.PrimTypeUnit}, "fn()"},
		{
			&types.FuncType{
				ParamTypes: []types.Type{
					types.PrimTypeI32,
					&types.TupleType{ElementTypes: []types.Type{types.PrimTypeF64, types.PrimTypeBool}},
				},
				ReturnType: types.PrimTypeUnit,
				Spread:     true,
			},
			"fn(i32, ...(f64, bool))",
		},
	}

	for _, c := range cases {
		if got := f.uc.TypeName(c.typ, false); got != c.name {
			t.Errorf("expected type name `%s`; got `%s`", c.name, got)
		}
	}
}

func TestQualifiedTypeNames(t *testing.T) {
	f := fullFixture()

	geometry := f.addDef(f.unit.RootDef, depm.ModuleDef, "geometry", spanAt(0, 0))
	vecDef := f.addDef(geometry, depm.StructDef, "Vec2", spanAt(1, 0))
	vec := &types.StructType{NamedTypeBase: types.NewNamedTypeBase("Vec2", f.unit.ID, vecDef.ID, nil)}

	if got := f.uc.TypeName(vec, false); got != "Vec2" {
		t.Errorf("expected the unqualified name Vec2; got `%s`", got)
	}

	if got := f.uc.TypeName(vec, true); got != "main.geometry.Vec2" {
		t.Errorf("expected the qualified name main.geometry.Vec2; got `%s`", got)
	}

	// Generic instances append their arguments, and arguments are rendered
	// qualified regardless of how the outer name is rendered.
	itemDef := f.addDef(f.unit.RootDef, depm.StructDef, "Item", spanAt(3, 0))
	item := &types.StructType{NamedTypeBase: types.NewNamedTypeBase("Item", f.unit.ID, itemDef.ID, nil)}

	listDef := f.addDef(f.unit.RootDef, depm.StructDef, "List", spanAt(4, 0))
	list := &types.StructType{NamedTypeBase: types.NewNamedTypeBase("List", f.unit.ID, listDef.ID, []types.Type{item})}

	if got := f.uc.TypeName(list, false); got != "List<main.Item>" {
		t.Errorf("expected List<main.Item>; got `%s`", got)
	}

	if got := f.uc.TypeName(list, true); got != "main.List<main.Item>" {
		t.Errorf("expected main.List<main.Item>; got `%s`", got)
	}

	// Multiple arguments join on a bare comma, matching mangled names.
	mapDef := f.addDef(f.unit.RootDef, depm.StructDef, "Map", spanAt(5, 0))
	pairs := &types.StructType{
		NamedTypeBase: types.NewNamedTypeBase("Map", f.unit.ID, mapDef.ID, []types.Type{types.PrimTypeI32, item}),
	}

	if got := f.uc.TypeName(pairs, false); got != "Map<i32,main.Item>" {
		t.Errorf("expected Map<i32,main.Item>; got `%s`", got)
	}

	// A named type whose definition is missing from the table is an ICE.
	ghost := &types.StructType{NamedTypeBase: types.NewNamedTypeBase("Ghost", f.unit.ID, 424242, nil)}
	expectICE(t, "missing definition", func() {
		f.uc.TypeName(ghost, true)
	})
}

func TestUniqueTypeKeys(t *testing.T) {
	// Equal names in different units must not collide.
	vecA := &types.StructType{NamedTypeBase: types.NewNamedTypeBase("Vec", 1, 10, nil)}
	vecB := &types.StructType{NamedTypeBase: types.NewNamedTypeBase("Vec", 2, 20, nil)}

	if uniqueTypeKey(vecA) == uniqueTypeKey(vecB) {
		t.Error("expected same-named types from different units to have distinct keys")
	}

	// Equal instantiations share a key; distinct instantiations do not.
	intVec := &types.StructType{NamedTypeBase: types.NewNamedTypeBase("Vec", 1, 10, []types.Type{types.PrimTypeI32})}
	intVec2 := &types.StructType{NamedTypeBase: types.NewNamedTypeBase("Vec", 1, 10, []types.Type{types.PrimTypeI32})}
	boolVec := &types.StructType{NamedTypeBase: types.NewNamedTypeBase("Vec", 1, 10, []types.Type{types.PrimTypeBool})}

	if uniqueTypeKey(intVec) != uniqueTypeKey(intVec2) {
		t.Error("expected equal instantiations to share a key")
	}

	if uniqueTypeKey(intVec) == uniqueTypeKey(boolVec) {
		t.Error("expected distinct instantiations to have distinct keys")
	}

	// The spread convention is part of a function type's identity.
	plain := &types.FuncType{
		ParamTypes: []types.Type{&types.TupleType{ElementTypes: []types.Type{types.PrimTypeI32}}},
		ReturnType: types.PrimTypeUnit,
	}
	spread := &types.FuncType{
		ParamTypes: plain.ParamTypes,
		ReturnType: types.PrimTypeUnit,
		Spread:     true,
	}

	if uniqueTypeKey(plain) == uniqueTypeKey(spread) {
		t.Error("expected the spread convention to be part of the key")
	}
}

func TestTypeMetadataCaching(t *testing.T) {
	f := fullFixture()
	b := f.uc.Builder()

	first := f.uc.typeMetadata(types.PrimTypeI32, nil)
	before := b.NumNodes()

	if second := f.uc.typeMetadata(types.PrimTypeI32, nil); second != first {
		t.Error("expected repeat lookups to return the cached node")
	}

	if b.NumNodes() != before {
		t.Error("expected repeat lookups to create no nodes")
	}

	// Structurally similar but distinct types get distinct nodes.
	mut := f.uc.typeMetadata(&types.PointerType{ElemType: types.PrimTypeI32}, nil)
	con := f.uc.typeMetadata(&types.PointerType{ElemType: types.PrimTypeI32, Const: true}, nil)
	box := f.uc.typeMetadata(&types.BoxType{ElemType: types.PrimTypeI32}, nil)

	if mut == con || con == box || mut == box {
		t.Error("expected &i32, &const i32, and box i32 to have distinct nodes")
	}

	if again := f.uc.typeMetadata(&types.PointerType{ElemType: types.PrimTypeI32}, nil); again != mut {
		t.Error("expected an equal pointer type to share its node")
	}

	// Resolved projections normalize to their resolution before lookup.
	resolved := f.uc.typeMetadata(&types.Projection{
		Root:     &types.TypeParam{Idx: 0, Name: "T"},
		Name:     "Item",
		Resolved: types.PrimTypeI32,
	}, nil)

	if resolved != first {
		t.Error("expected a resolved projection to share its resolution's node")
	}
}

func TestBasicTypeEncodings(t *testing.T) {
	f := fullFixture()
	b := f.uc.Builder()

	cases := []struct {
		prim     types.PrimitiveType
		bitSize  int
		encoding dib.DWARFTypeEncoding
	}{
		{types.PrimTypeI32, 32, dib.SignedTypeEncoding},
		{types.PrimTypeU16, 16, dib.UnsignedTypeEncoding},
		{types.PrimTypeBool, 8, dib.BooleanTypeEncoding},
		{types.PrimTypeF64, 64, dib.FloatTypeEncoding},
		{types.PrimTypeUnit, 0, dib.UnsignedTypeEncoding},
	}

	for _, c := range cases {
		node := b.Node(f.uc.typeMetadata(c.prim, nil).Ref())
		if node.Kind != dib.NKBasicType || node.Name != c.prim.Repr() {
			t.Errorf("%s: basic type node stored incorrectly: %+v", c.prim.Repr(), node)
		}

		if node.BitSize != c.bitSize || node.Encoding != c.encoding {
			t.Errorf("%s: expected %d bits with encoding %d; got %d and %d",
				c.prim.Repr(), c.bitSize, c.encoding, node.BitSize, node.Encoding)
		}
	}
}

func TestStructMetadata(t *testing.T) {
	f := fullFixture()
	b := f.uc.Builder()

	point := f.structFor("Point", spanAt(4, 0),
		types.StructField{Name: "flag", Type: types.PrimTypeBool},
		types.StructField{Name: "value", Type: types.PrimTypeI64},
	)

	ref := f.uc.typeMetadata(point, nil)
	node := b.Node(ref.Ref())

	if node.Kind != dib.NKCompositeType || node.CompositeClass != dib.StructClass {
		t.Fatalf("expected a struct composite; got %+v", node)
	}

	if node.FwdDecl {
		t.Error("expected the composite to be completed")
	}

	if node.Name != "Point" || node.Line != 5 || node.BitSize != 128 || node.BitAlign != 64 {
		t.Errorf("struct node stored incorrectly: %+v", node)
	}

	fileNode := b.Node(node.File)
	if fileNode.Name != "main.oo" || fileNode.Dir != "main" {
		t.Errorf("struct file attribution incorrect: %+v", fileNode)
	}

	if b.Node(node.Scope).Kind != dib.NKNamespace {
		t.Error("expected the struct to be scoped under its namespace")
	}

	if len(node.Members) != 2 {
		t.Fatalf("expected 2 members; got %d", len(node.Members))
	}

	flag := b.Node(node.Members[0])
	if flag.Kind != dib.NKMemberType || flag.Name != "flag" || flag.BitOffset != 0 {
		t.Errorf("first member stored incorrectly: %+v", flag)
	}

	if flag.Scope != ref.Ref() {
		t.Error("expected members to be scoped under the composite itself")
	}

	value := b.Node(node.Members[1])
	if value.Name != "value" || value.BitOffset != 64 || b.Node(value.Elem).Name != "i64" {
		t.Errorf("second member stored incorrectly: %+v", value)
	}
}

func TestRecursiveStructMetadata(t *testing.T) {
	f := fullFixture()
	b := f.uc.Builder()

	listDef := f.addDef(f.unit.RootDef, depm.StructDef, "List", spanAt(1, 0))
	list := &types.StructType{NamedTypeBase: types.NewNamedTypeBase("List", f.unit.ID, listDef.ID, nil)}
	list.Fields = []types.StructField{
		{Name: "value", Type: types.PrimTypeI32},
		{Name: "next", Type: &types.PointerType{ElemType: list}},
	}

	ref := f.uc.typeMetadata(list, nil)
	node := b.Node(ref.Ref())

	if node.FwdDecl {
		t.Fatal("expected the recursive composite to be completed")
	}

	next := b.Node(node.Members[1])
	ptr := b.Node(next.Elem)
	if ptr.Kind != dib.NKPointerType || ptr.Elem != ref.Ref() {
		t.Errorf("expected the next pointer to refer back to the composite; got %+v", ptr)
	}
}

func TestCompositePopulatedTwiceIsICE(t *testing.T) {
	f := fullFixture()

	ph := f.uc.builder().NewCompositePlaceholder(
		dib.StructClass, dib.ScopeNode{}, "Once", "u7.once",
		f.uc.unknownFileMetadata(), 0, 0, 8, dib.DIFlagZero,
	)

	f.uc.completeComposite(ph, nil)

	expectICE(t, "populated twice", func() {
		f.uc.completeComposite(ph, nil)
	})
}

func TestTupleMetadata(t *testing.T) {
	f := fullFixture()
	b := f.uc.Builder()

	tuple := &types.TupleType{ElementTypes: []types.Type{types.PrimTypeBool, types.PrimTypeI64}}
	node := b.Node(f.uc.typeMetadata(tuple, nil).Ref())

	if node.Kind != dib.NKCompositeType || node.CompositeClass != dib.StructClass {
		t.Fatalf("expected tuples to be struct composites; got %+v", node)
	}

	if node.Name != "(bool, i64)" || node.Scope != 0 {
		t.Errorf("tuple node stored incorrectly: %+v", node)
	}

	if b.Node(node.File).Name != unknownFileName {
		t.Error("expected tuples to have no file attribution")
	}

	if len(node.Members) != 2 {
		t.Fatalf("expected 2 members; got %d", len(node.Members))
	}

	first := b.Node(node.Members[0])
	second := b.Node(node.Members[1])
	if first.Name != "__0" || second.Name != "__1" {
		t.Errorf("expected positional member names __0 and __1; got %s and %s", first.Name, second.Name)
	}

	if first.BitOffset != 0 || second.BitOffset != 64 {
		t.Errorf("tuple member offsets incorrect: %d and %d", first.BitOffset, second.BitOffset)
	}
}

func TestUnionMetadata(t *testing.T) {
	f := fullFixture()
	b := f.uc.Builder()

	unionDef := f.addDef(f.unit.RootDef, depm.UnionDef, "Word", spanAt(6, 0))
	word := &types.UnionType{
		NamedTypeBase: types.NewNamedTypeBase("Word", f.unit.ID, unionDef.ID, nil),
		Fields: []types.StructField{
			{Name: "bits", Type: types.PrimTypeU64},
			{Name: "float", Type: types.PrimTypeF64},
		},
	}

	node := b.Node(f.uc.typeMetadata(word, nil).Ref())

	if node.CompositeClass != dib.UnionClass || node.BitSize != 64 {
		t.Fatalf("union node stored incorrectly: %+v", node)
	}

	for i, ref := range node.Members {
		if member := b.Node(ref); member.BitOffset != 0 {
			t.Errorf("member %d: expected all union members at offset 0; got %d", i, member.BitOffset)
		}
	}
}

func TestEnumMetadata(t *testing.T) {
	f := fullFixture()
	b := f.uc.Builder()

	enumDef := f.addDef(f.unit.RootDef, depm.EnumDef, "Shape", spanAt(7, 0))
	shape := &types.EnumType{
		NamedTypeBase: types.NewNamedTypeBase("Shape", f.unit.ID, enumDef.ID, nil),
		Variants: []types.EnumVariant{
			{Name: "Point"},
			{Name: "Circle", Payload: []types.Type{types.PrimTypeF64}},
			{Name: "Rect", Payload: []types.Type{types.PrimTypeF64, types.PrimTypeF64}},
		},
		DiscrType: types.PrimTypeU8,
	}

	node := b.Node(f.uc.typeMetadata(shape, nil).Ref())

	if node.CompositeClass != dib.VariantClass || node.BitSize != 192 {
		t.Fatalf("enum node stored incorrectly: %+v", node)
	}

	// The discriminant member plus one member per payload-carrying variant.
	if len(node.Members) != 3 {
		t.Fatalf("expected 3 members; got %d", len(node.Members))
	}

	discr := b.Node(node.Members[0])
	if discr.Name != "OOLONG$ENUM$DISR" || discr.BitOffset != 0 || discr.Flags != dib.DIFlagArtificial {
		t.Errorf("discriminant member stored incorrectly: %+v", discr)
	}

	discrType := b.Node(discr.Elem)
	if discrType.Kind != dib.NKEnumerationType || len(discrType.Enumerators) != 3 {
		t.Fatalf("expected an enumeration node with 3 enumerators; got %+v", discrType)
	}

	if e := discrType.Enumerators[1]; e.Name != "Circle" || e.Value != 1 {
		t.Errorf("expected ordinal enumerator values; got %+v", discrType.Enumerators)
	}

	if b.Node(discrType.Elem).Name != "u8" {
		t.Error("expected the enumeration to record its underlying primitive")
	}

	circle := b.Node(node.Members[1])
	if circle.Name != "Circle" || circle.BitOffset != 64 {
		t.Errorf("payload member stored incorrectly: %+v", circle)
	}

	if payload := b.Node(circle.Elem); payload.Kind != dib.NKCompositeType || payload.Name != "(f64)" {
		t.Errorf("expected the payload described as a tuple; got %+v", payload)
	}

	if rect := b.Node(node.Members[2]); rect.Name != "Rect" || rect.BitOffset != 64 {
		t.Errorf("expected every payload at the shared payload offset; got %+v", rect)
	}

	// Every instantiation of the enum shares one discriminant node.
	generic := &types.EnumType{
		NamedTypeBase: types.NewNamedTypeBase("Shape", f.unit.ID, enumDef.ID, []types.Type{types.PrimTypeI32}),
		Variants:      shape.Variants,
		DiscrType:     types.PrimTypeU8,
	}

	gnode := b.Node(f.uc.typeMetadata(generic, nil).Ref())
	if gnode.Name != "Shape<i32>" {
		t.Errorf("expected the instantiation named Shape<i32>; got %s", gnode.Name)
	}

	if b.Node(gnode.Members[0]).Elem != discr.Elem {
		t.Error("expected instantiations to share the discriminant node")
	}
}

func TestFnPointerMetadata(t *testing.T) {
	f := fullFixture()
	b := f.uc.Builder()

	ft := &types.FuncType{ParamTypes: []types.Type{types.PrimTypeI32}, ReturnType: types.PrimTypeBool}
	node := b.Node(f.uc.typeMetadata(ft, nil).Ref())

	if node.Kind != dib.NKPointerType || node.Name != "fn(i32) -> bool" || node.BitSize != 64 {
		t.Fatalf("expected a pointer wrapping the subroutine; got %+v", node)
	}

	sub := b.Node(node.Elem)
	if sub.Kind != dib.NKSubroutineType || len(sub.Members) != 2 {
		t.Fatalf("subroutine node stored incorrectly: %+v", sub)
	}

	if b.Node(sub.Members[0]).Name != "bool" || b.Node(sub.Members[1]).Name != "i32" {
		t.Error("expected the return type in the first slot followed by the parameters")
	}

	// Unit returns map to the null node.
	unitFn := &types.FuncType{ReturnType: types.PrimTypeUnit}
	usub := b.Node(b.Node(f.uc.typeMetadata(unitFn, nil).Ref()).Elem)
	if len(usub.Members) != 1 || usub.Members[0] != 0 {
		t.Errorf("expected a null return slot for a unit return; got %v", usub.Members)
	}
}

func TestArrayMetadata(t *testing.T) {
	f := fullFixture()
	b := f.uc.Builder()

	at := &types.ArrayType{ElemType: types.PrimTypeU8, Len: 16}
	node := b.Node(f.uc.typeMetadata(at, nil).Ref())

	if node.Kind != dib.NKArrayType || node.BitSize != 128 || node.BitAlign != 8 {
		t.Fatalf("array node stored incorrectly: %+v", node)
	}

	if b.Node(node.Elem).Name != "u8" {
		t.Error("expected the array to reference its element type")
	}

	if len(node.Members) != 1 {
		t.Fatalf("expected one subrange; got %d", len(node.Members))
	}

	if sr := b.Node(node.Members[0]); sr.Kind != dib.NKSubrange || sr.Lo != 0 || sr.Count != 16 {
		t.Errorf("subrange stored incorrectly: %+v", sr)
	}
}

func TestFileMetadataCache(t *testing.T) {
	f := fullFixture()
	b := f.uc.Builder()

	n1 := f.uc.fileMetadataFor(f.file)
	if n2 := f.uc.fileMetadataFor(f.file); n2 != n1 {
		t.Error("expected repeat lookups to return the cached file node")
	}

	node := b.Node(n1.Ref())
	if node.Name != "main.oo" || node.Dir != "main" {
		t.Errorf("file node stored incorrectly: %+v", node)
	}

	// The same representative path compiled into a different unit is a
	// different file.
	other := &depm.Unit{ID: 8, Name: "vendored", RootDir: "/proj/vendor"}
	other.RootDef = &depm.Def{ID: 8, Unit: other, Kind: depm.UnitRootDef, Name: "vendored"}
	clash := other.AddFile("/proj/vendor/main.oo", "main/main.oo")

	if f.uc.fileMetadataFor(clash) == n1 {
		t.Error("expected the same path in different units to get distinct nodes")
	}

	// Synthetic positions share one unknown file node.
	u1 := f.uc.fileMetadataFor(nil)
	if u2 := f.uc.unknownFileMetadata(); u2 != u1 {
		t.Error("expected one shared unknown file node")
	}

	if b.Node(u1.Ref()).Name != unknownFileName {
		t.Errorf("unknown file node stored incorrectly: %+v", b.Node(u1.Ref()))
	}
}

func TestNamespaceChain(t *testing.T) {
	f := fullFixture()
	b := f.uc.Builder()

	geometry := f.addDef(f.unit.RootDef, depm.ModuleDef, "geometry", spanAt(0, 0))
	shapes := f.addDef(geometry, depm.ModuleDef, "shapes", spanAt(1, 0))

	ns := f.uc.namespaceOf(shapes)

	node := b.Node(ns.Ref())
	if node.Kind != dib.NKNamespace || node.Name != "shapes" {
		t.Fatalf("namespace node stored incorrectly: %+v", node)
	}

	parent := b.Node(node.Scope)
	if parent.Kind != dib.NKNamespace || parent.Name != "geometry" {
		t.Fatalf("expected the parent namespace geometry; got %+v", parent)
	}

	root := b.Node(parent.Scope)
	if root.Name != "main" || root.Scope != 0 {
		t.Errorf("expected the chain rooted at the unit namespace; got %+v", root)
	}

	// Memoized on repeat lookups.
	before := b.NumNodes()
	if f.uc.namespaceOf(shapes) != ns || b.NumNodes() != before {
		t.Error("expected namespace lookups to be memoized")
	}
}

func TestUnboundTypesAreICE(t *testing.T) {
	f := fullFixture()

	expectICE(t, "unsubstituted type parameter", func() {
		f.uc.typeMetadata(&types.TypeParam{Idx: 0, Name: "T"}, spanAt(3, 0))
	})

	expectICE(t, "unresolved projection", func() {
		f.uc.typeMetadata(&types.Projection{Root: &types.TypeParam{Idx: 0, Name: "T"}, Name: "Item"}, nil)
	})
}
