package msgconv_test

import (
	"github.com/reoring/msgconv"
)

const testNamespace = "test"

func scalarField(name string, kind msgconv.ScalarKind) *msgconv.FieldStructure {
	return &msgconv.FieldStructure{Name: name, Kind: kind, Namespace: testNamespace}
}

func collectionField(name string, kind msgconv.ScalarKind) *msgconv.FieldStructure {
	return &msgconv.FieldStructure{Name: name, Kind: kind, Collection: true, Namespace: testNamespace}
}

func complexField(name, ref string, collection bool) *msgconv.FieldStructure {
	return &msgconv.FieldStructure{Name: name, Complex: true, Collection: collection, ReferenceName: ref, Namespace: testNamespace}
}

func fields(fs ...*msgconv.FieldStructure) map[string]*msgconv.FieldStructure {
	out := make(map[string]*msgconv.FieldStructure, len(fs))
	for _, f := range fs {
		out[f.Name] = f
	}
	return out
}

// testRegistry describes RootMessage -> SubMessage -> Leaf.
func testRegistry() msgconv.Registry {
	side := scalarField("side", msgconv.KindString)
	side.EnumValues = []msgconv.EnumValue{{Code: "A", Literal: "ALPHA"}, {Code: "B", Literal: "BRAVO"}}
	flagEnum := scalarField("flagEnum", msgconv.KindBoolean)
	flagEnum.EnumValues = []msgconv.EnumValue{{Code: "1", Literal: "true"}, {Code: "0", Literal: "false"}}
	return msgconv.NewRegistry(testNamespace,
		&msgconv.MessageStructure{Name: "RootMessage", Fields: fields(
			scalarField("simple", msgconv.KindString),
			scalarField("byteField", msgconv.KindByte),
			scalarField("shortField", msgconv.KindShort),
			scalarField("num", msgconv.KindInt),
			scalarField("big", msgconv.KindLong),
			scalarField("ratio", msgconv.KindFloat),
			scalarField("amount", msgconv.KindDouble),
			scalarField("price", msgconv.KindDecimal),
			scalarField("flag", msgconv.KindBoolean),
			scalarField("letter", msgconv.KindCharacter),
			scalarField("day", msgconv.KindDate),
			scalarField("at", msgconv.KindTime),
			scalarField("stamp", msgconv.KindDateTime),
			side,
			flagEnum,
			collectionField("ints", msgconv.KindInt),
			collectionField("names", msgconv.KindString),
			complexField("complex", "SubMessage", false),
			complexField("complexList", "SubMessage", true),
		)},
		&msgconv.MessageStructure{Name: "SubMessage", Fields: fields(
			scalarField("field", msgconv.KindString),
			scalarField("value", msgconv.KindInt),
			complexField("inner", "Leaf", false),
		)},
		&msgconv.MessageStructure{Name: "Leaf", Fields: fields(
			scalarField("x", msgconv.KindString),
		)},
	)
}

func schemaConverter(p msgconv.ToTypedParams) *msgconv.Converter {
	return msgconv.NewConverter(msgconv.WithRegistry(testRegistry()), msgconv.WithToTypedParams(p))
}

var (
	sc  = msgconv.Scalar
	num = msgconv.Number
	kv  = msgconv.E
)
