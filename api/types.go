package api

import (
	"github.com/ruteri/biosdk-services/interfaces"
)

// RequestDto is the transport envelope every operation receives.
type RequestDto struct {
	// Version optionally pins the service spec version the caller targets.
	Version string `json:"version"`

	// Request is the base64-encoded UTF-8 JSON document of the operation.
	Request string `json:"request"`
}

// InitRequest is the decoded body of an init call.
type InitRequest struct {
	InitParams interfaces.InitParams `json:"initParams"`
}

// CheckQualityRequest is the decoded body of a check-quality call.
type CheckQualityRequest struct {
	Sample            interfaces.Sample     `json:"sample"`
	ModalitiesToCheck interfaces.Modalities `json:"modalitiesToCheck"`
	Flags             interfaces.Flags      `json:"flags"`
}

// MatchRequest is the decoded body of a match call.
type MatchRequest struct {
	Sample            interfaces.Sample     `json:"sample"`
	Gallery           interfaces.Gallery    `json:"gallery"`
	ModalitiesToMatch interfaces.Modalities `json:"modalitiesToMatch"`
	Flags             interfaces.Flags      `json:"flags"`
}

// ExtractTemplateRequest is the decoded body of an extract-template call.
type ExtractTemplateRequest struct {
	Sample              interfaces.Sample     `json:"sample"`
	ModalitiesToExtract interfaces.Modalities `json:"modalitiesToExtract"`
	Flags               interfaces.Flags      `json:"flags"`
}

// SegmentRequest is the decoded body of a segment call.
type SegmentRequest struct {
	Sample              interfaces.Sample     `json:"sample"`
	ModalitiesToSegment interfaces.Modalities `json:"modalitiesToSegment"`
	Flags               interfaces.Flags      `json:"flags"`
}

// ConvertFormatRequest is the decoded body of a convert-format call.
type ConvertFormatRequest struct {
	Sample              interfaces.Sample       `json:"sample"`
	SourceFormat        string                  `json:"sourceFormat"`
	TargetFormat        string                  `json:"targetFormat"`
	SourceParams        interfaces.FormatParams `json:"sourceParams"`
	TargetParams        interfaces.FormatParams `json:"targetParams"`
	ModalitiesToConvert interfaces.Modalities   `json:"modalitiesToConvert"`
}

// ErrorDto is a single error entry of a ResponseDto.
type ErrorDto struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// ResponseDto is the HTTP body returned for every operation. Response
// holds the operation result (SDKInfo, Response or BiometricRecord) and
// is null when Errors is not empty.
type ResponseDto struct {
	Version      string     `json:"version"`
	ResponseTime string     `json:"responsetime"`
	Response     any        `json:"response"`
	Errors       []ErrorDto `json:"errors"`
}

// ServiceStatus is returned by the spec versions endpoint.
type ServiceStatus struct {
	Status       string   `json:"status"`
	SpecVersions []string `json:"specVersions"`
	EngineID     string   `json:"engineId"`
}
