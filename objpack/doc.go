// Package objpack bridges the packer protocol to the object tree: Writer
// materializes an Object by visiting a value in pack.ModeWrite, and Reader
// walks an existing Object in lockstep with a value's Visit in
// pack.ModeRead. Round-tripping a value through Writer then Reader
// reproduces it exactly (spec testable property 2).
package objpack
