// Package schema implements the token alphabet of spec §3 and §4.4: Token,
// Schema, the Definer packer that records one depth-first traversal of a
// type by running it in pack.ModeDefine, and TokensEnd, the self-delimiting
// subtree-skip helper the binschema decoder drives itself with.
package schema
