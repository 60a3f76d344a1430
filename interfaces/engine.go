package interfaces

import "context"

// BioAPI is the capability set of a biometric engine. Implementations
// must be safe for concurrent use; a single instance is shared by every
// in-flight call.
type BioAPI interface {
	// Init initializes the engine and reports its identity.
	Init(ctx context.Context, params InitParams) (*SDKInfo, error)

	// CheckQuality scores the quality of the requested modalities of sample.
	CheckQuality(ctx context.Context, sample Sample, modalities Modalities, flags Flags) (*Response[QualityCheck], error)

	// Match compares sample against every gallery entry.
	Match(ctx context.Context, sample Sample, gallery Gallery, modalities Modalities, flags Flags) (*Response[[]MatchDecision], error)

	// ExtractTemplate produces templates for the requested modalities.
	ExtractTemplate(ctx context.Context, sample Sample, modalities Modalities, flags Flags) (*Response[BiometricRecord], error)

	// Segment splits sample into one segment per biometric instance.
	Segment(ctx context.Context, sample Sample, modalities Modalities, flags Flags) (*Response[BiometricRecord], error)

	// ConvertFormat converts sample from sourceFormat to targetFormat and
	// returns the bare converted record.
	ConvertFormat(ctx context.Context, sample Sample, sourceFormat, targetFormat string, sourceParams, targetParams FormatParams, modalities Modalities) (*BiometricRecord, error)
}

// BioAPIV2 is the extended capability set: format conversion reports its
// outcome through a Response envelope.
type BioAPIV2 interface {
	BioAPI

	ConvertFormatV2(ctx context.Context, sample Sample, sourceFormat, targetFormat string, sourceParams, targetParams FormatParams, modalities Modalities) (*Response[BiometricRecord], error)
}
