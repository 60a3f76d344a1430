// Package provider implements the biosdk service provider: the dispatch
// and validation layer between the envelope transport and the engine.
//
// Every operation runs the same pipeline:
//
//  1. decode the base64 envelope (INVALID_REQUEST_BODY on failure, the
//     engine is not called)
//  2. deserialize the operation's request model
//  3. log the request model when request/response logging is enabled
//  4. call the engine; any error or panic becomes BIOSDK_LIB_EXCEPTION
//  5. validate records returned by extract-template and segment
//  6. log the response when enabled
//
// Extract-template aborts with UNCHECKED_EXCEPTION when the returned record
// has no segments. Segment returns the response with its status code set
// to UNKNOWN_ERROR instead, so callers of segment must inspect statusCode.
//
// Two providers exist, one per engine capability set. New picks V2 when
// the engine implements interfaces.BioAPIV2 and V1 otherwise; the choice is
// made once at composition time.
package provider
