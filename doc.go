// Package msgconv converts message bodies between two trees: the untyped
// Node tree a wire decoder produces (maps, lists, scalar text, nulls) and the
// typed TypedMessage tree whose fields carry concrete scalar kinds.
//
// Conversion toward the typed tree runs in one of two modes:
//
//   - dictionary-driven: a Registry supplies the MessageStructure of every
//     message type; each field is coerced to its declared ScalarKind, enum
//     codes resolve to their literals and numeric literals are narrowed
//     with range checks.
//   - schema-less: the shape of the body decides; nested maps become nested
//     messages named after their field and scalars stay text.
//
// Failures are *Error values carrying a stable code and a dotted path such
// as "Order.legs.[1].price". Messages are rendered through the i18n package.
//
// Flattening (TypedToUntyped) is the inverse direction: every scalar becomes
// canonical text, decimals never round and temporals always carry a 3, 6 or
// 9 digit fraction.
//
// Typical usage:
//
//	reg, err := dictionary.Load("trading.yaml")
//	body, err := msgconv.DecodeJSON(data)
//	c := msgconv.NewConverter(msgconv.WithRegistry(reg))
//	m, err := c.ToTyped("NewOrderSingle", body, true)
//
//	flat := msgconv.TypedToUntyped(m, msgconv.FromTypedParams{})
//	wire, err := msgconv.EncodeJSON(flat)
package msgconv
