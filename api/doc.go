/*
Package api defines the transport contract of the biosdk service.

Every operation receives a RequestDto envelope whose request field is a
base64-encoded UTF-8 JSON document. Decode unwraps the envelope and the
per-operation request models (InitRequest, CheckQualityRequest,
MatchRequest, ExtractTemplateRequest, SegmentRequest and
ConvertFormatRequest) are deserialized from the decoded text.

Results and errors are returned to callers inside a ResponseDto.

# Subpackages

  - biosdkhandler - HTTP handlers and a client for the biosdk routes
*/
package api
