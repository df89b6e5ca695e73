// Package binschema implements the binary-via-schema decoder of spec §4.6:
// given a Schema (§4.4) and a byte slice encoded per the binary codec of
// §4.5, Decode drives a binary.Reader and an objpack.Writer in lockstep
// through the token stream, producing the Object tree the data represents
// without a concrete Go type to visit.
//
// This is the schema-driven counterpart to binary.Reader (which needs a
// pack.Value to drive it): it is grounded directly on original_source's
// load_binary, a frame-stack state machine that uses Token's own bracket
// structure (ObjectBegin/End, TupleBegin/End, VariantBegin/Next/End) plus a
// schema-level skip helper (TokensEnd) for the tokens that bracket
// implicitly (Map, List, Optional) to know where to resume once a
// container is exhausted.
package binschema
