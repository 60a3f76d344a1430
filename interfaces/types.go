package interfaces

// BiometricType tags the modality of a biometric sample.
type BiometricType string

const (
	Face           BiometricType = "FACE"
	Finger         BiometricType = "FINGER"
	Iris           BiometricType = "IRIS"
	Voice          BiometricType = "VOICE"
	Signature      BiometricType = "SIGNATURE"
	Keystroke      BiometricType = "KEYSTROKE"
	Gait           BiometricType = "GAIT"
	ExceptionPhoto BiometricType = "EXCEPTION_PHOTO"
	UnknownType    BiometricType = "UNKNOWN"
)

// BiometricFunction names an operation an engine may advertise in SDKInfo.
type BiometricFunction string

const (
	FunctionMatch         BiometricFunction = "MATCH"
	FunctionQualityCheck  BiometricFunction = "QUALITY_CHECK"
	FunctionExtract       BiometricFunction = "EXTRACT"
	FunctionConvertFormat BiometricFunction = "CONVERT_FORMAT"
	FunctionSegment       BiometricFunction = "SEGMENT"
)

// Modalities scopes which parts of a sample an operation applies to.
type Modalities []BiometricType

// Flags is passed through to the engine unmodified.
type Flags map[string]string

// InitParams is passed to engine initialization.
type InitParams map[string]string

// FormatParams carries source or target parameters of a format conversion.
type FormatParams map[string]string

// VersionType is a CBEFF major/minor version pair.
type VersionType struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

// RegistryIDType identifies a format or product by organization and type.
type RegistryIDType struct {
	Organization string `json:"organization"`
	Type         string `json:"type"`
}

// QualityType is the quality block of a BDB header.
type QualityType struct {
	Algorithm                *RegistryIDType `json:"algorithm"`
	Score                    int64           `json:"score"`
	QualityCalculationFailed string          `json:"qualityCalculationFailed"`
}

// BDBInfo describes the biometric data block of a segment.
type BDBInfo struct {
	ChallengeResponse []byte          `json:"challengeResponse"`
	Index             string          `json:"index"`
	Format            *RegistryIDType `json:"format"`
	Encryption        *bool           `json:"encryption"`
	CreationDate      string          `json:"creationDate"`
	NotValidBefore    string          `json:"notValidBefore"`
	NotValidAfter     string          `json:"notValidAfter"`
	Type              []BiometricType `json:"type"`
	Subtype           []string        `json:"subtype"`
	Level             string          `json:"level"`
	Product           *RegistryIDType `json:"product"`
	Purpose           string          `json:"purpose"`
	Quality           *QualityType    `json:"quality"`
}

// BIRInfo is the record level header of a BIR or BiometricRecord.
type BIRInfo struct {
	Creator        string `json:"creator"`
	Index          string `json:"index"`
	Payload        []byte `json:"payload"`
	Integrity      *bool  `json:"integrity"`
	CreationDate   string `json:"creationDate"`
	NotValidBefore string `json:"notValidBefore"`
	NotValidAfter  string `json:"notValidAfter"`
}

// SBInfo describes the security block of a segment.
type SBInfo struct {
	Format *RegistryIDType `json:"format"`
}

// BIR is a single segment of a BiometricRecord: one biometric instance,
// e.g. one fingerprint capture.
type BIR struct {
	Version      *VersionType      `json:"version"`
	CbeffVersion *VersionType      `json:"cbeffversion"`
	BirInfo      *BIRInfo          `json:"birInfo"`
	BdbInfo      *BDBInfo          `json:"bdbInfo"`
	Bdb          []byte            `json:"bdb"`
	Sb           []byte            `json:"sb"`
	SbInfo       *SBInfo           `json:"sbInfo"`
	Others       map[string]string `json:"others"`
}

// Modalities reports the biometric types declared in the segment header.
func (b *BIR) Modalities() []BiometricType {
	if b == nil || b.BdbInfo == nil {
		return nil
	}
	return b.BdbInfo.Type
}

// BiometricRecord is a container of zero or more segments plus metadata.
type BiometricRecord struct {
	Version      *VersionType      `json:"version"`
	CbeffVersion *VersionType      `json:"cbeffversion"`
	BirInfo      *BIRInfo          `json:"birInfo"`
	Segments     []BIR             `json:"segments"`
	Others       map[string]string `json:"others"`
}

// Sample is an ordered collection of records submitted for processing.
type Sample []BiometricRecord

// GalleryEntry is one match candidate.
type GalleryEntry struct {
	ID     string `json:"id"`
	Sample Sample `json:"sample"`
}

// Gallery is the ordered list of match candidates.
type Gallery []GalleryEntry

// SDKInfo is the identity descriptor an engine reports from Init.
type SDKInfo struct {
	APIVersion          string                                `json:"apiVersion"`
	SDKVersion          string                                `json:"sdkVersion"`
	SupportedModalities []BiometricType                       `json:"supportedModalities"`
	SupportedMethods    map[BiometricFunction][]BiometricType `json:"supportedMethods"`
	ProductOwner        *RegistryIDType                       `json:"productOwner"`
	OtherInfo           map[string]string                     `json:"otherInfo"`
}

// QualityScore is the quality result for one modality.
type QualityScore struct {
	Score         float32           `json:"score"`
	Errors        []string          `json:"errors"`
	AnalyticsInfo map[string]string `json:"analyticsInfo"`
}

// QualityCheck maps each checked modality to its score.
type QualityCheck struct {
	Scores map[BiometricType]QualityScore `json:"scores"`
}

// Match is the outcome of a single modality comparison.
type Match string

const (
	Matched    Match = "MATCHED"
	NotMatched Match = "NOT_MATCHED"
	MatchError Match = "ERROR"
)

// Decision is the match result for one modality.
type Decision struct {
	Match         Match             `json:"match"`
	Errors        []string          `json:"errors"`
	AnalyticsInfo map[string]string `json:"analyticsInfo"`
}

// MatchDecision holds the decisions for one gallery entry.
type MatchDecision struct {
	GalleryIndex  int                        `json:"galleryIndex"`
	GalleryID     string                     `json:"galleryId"`
	Decisions     map[BiometricType]Decision `json:"decisions"`
	AnalyticsInfo map[string]string          `json:"analyticsInfo"`
}

// ResponseStatus is the engine level status code carried in a Response.
type ResponseStatus int

const (
	StatusSuccess                  ResponseStatus = 200
	StatusInvalidInput             ResponseStatus = 401
	StatusMissingInput             ResponseStatus = 402
	StatusQualityCheckFailed       ResponseStatus = 403
	StatusBiometricNotFoundInCbeff ResponseStatus = 404
	StatusMatchingFailed           ResponseStatus = 405
	StatusPoorDataQuality          ResponseStatus = 406
	StatusUnknownError             ResponseStatus = 500
)

// Message returns the canonical status message.
func (s ResponseStatus) Message() string {
	switch s {
	case StatusSuccess:
		return "OK"
	case StatusInvalidInput:
		return "Invalid Input Parameter"
	case StatusMissingInput:
		return "Missing Input Parameter"
	case StatusQualityCheckFailed:
		return "Quality check of Biometric data failed"
	case StatusBiometricNotFoundInCbeff:
		return "Biometrics not found in CBEFF"
	case StatusMatchingFailed:
		return "Matching of Biometric data failed"
	case StatusPoorDataQuality:
		return "Data provided is of poor quality"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Response is the envelope an engine returns for an operation. Only the
// engine builds successful responses; the dispatcher may only downgrade
// StatusCode.
type Response[T any] struct {
	StatusCode    ResponseStatus `json:"statusCode"`
	StatusMessage string         `json:"statusMessage"`
	Response      *T             `json:"response"`
}

// NewResponse builds a Response with the canonical message for status.
func NewResponse[T any](status ResponseStatus, payload *T) *Response[T] {
	return &Response[T]{
		StatusCode:    status,
		StatusMessage: status.Message(),
		Response:      payload,
	}
}
