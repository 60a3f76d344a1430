// Package biosdkhandler serves the biosdk operations over HTTP and provides
// a matching client.
//
// Every operation is a POST of an api.RequestDto to
// /biosdk-service/<operation>. The reply is always an api.ResponseDto:
// the operation result in "response" on success, a single entry in
// "errors" otherwise. Envelope and version problems are reported with
// 400, every other failure with 500. Engine level outcomes such as
// BIOMETRIC_NOT_FOUND_IN_CBEFF are successful HTTP calls carrying the
// engine status code inside the response.
package biosdkhandler
