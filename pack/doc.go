// Package pack defines the packer protocol: the single polymorphic surface
// that every user-defined type visits itself against, and that every
// concrete packer (binary writer/reader, object writer/reader, schema
// definer, random generator, debug printer) implements.
//
// A user type exposes its shape once:
//
//	func (e *Entity) Visit(p pack.Packer) {
//	    p.ObjectBegin()
//	    p.ObjectNext("name")
//	    p.String(&e.Name)
//	    p.ObjectNext("score")
//	    p.I32(&e.Score)
//	    p.ObjectEnd()
//	}
//
// The same Visit method drives all four modes (write, read, define, edit);
// the packer passed in interprets each call according to its mode. Methods
// that touch a value take a pointer to it: writers read through the
// pointer, readers write through it, and the schema definer ignores the
// pointee and only records the shape.
//
// Containers whose length isn't fixed at compile time (List, Map, Optional,
// Variant) need the caller to branch on Mode, or to use one of the generic
// helpers (Slice, StringMap) that do it once for standard Go containers.
package pack
