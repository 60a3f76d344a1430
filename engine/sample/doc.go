// Package sample provides a deterministic biosdk engine that needs no
// vendor SDK. It registers itself as "sample" (extended capability set)
// and "sample-v1" (base capability set).
//
// The engine does no biometric processing. Segments are selected by the
// modalities declared in their BDB headers, quality is the mean of the
// reported header scores, templates are CBOR documents holding a SHA-256
// digest of the source BDB, and two segments match when their digests are
// equal.
package sample
