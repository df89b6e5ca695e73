// Package jsonbridge is a thin Object <-> encoding/json adapter. It
// demonstrates the out-of-scope-codec contract of spec §1: a text codec
// only needs to read and write the shared Object tree (package object), not
// reimplement the packer protocol itself. Binary node payloads round-trip
// as base64 strings, since JSON has no native byte-string type.
package jsonbridge
