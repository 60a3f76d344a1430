// Package interfaces defines the biometric data model and the engine
// capability interfaces the service dispatches to, separating interface
// definitions from implementations.
//
// # Engine Interfaces
//
// BioAPI: the base capability set (init, quality check, match, template
// extraction, segmentation and format conversion returning a bare record).
//
// BioAPIV2: the extended capability set, which adds ConvertFormatV2
// returning a full Response envelope.
//
// # Data Model
//
//   - BiometricRecord: a container of BIR segments plus metadata
//   - BIR: one biometric instance (e.g. one fingerprint capture)
//   - Sample: ordered records submitted for processing
//   - Gallery: ordered (id, Sample) match candidates
//   - Response[T]: statusCode, statusMessage and an optional payload
//
// Wire field names follow the biosdk contract and null values are
// serialized explicitly.
package interfaces
