package provider

import "github.com/ruteri/biosdk-services/interfaces"

// Validate reports whether resp carries a biometric record with at least
// one segment. It has no side effects; callers decide what a false result
// means for the call.
func Validate(resp *interfaces.Response[interfaces.BiometricRecord]) bool {
	return resp != nil && resp.Response != nil && len(resp.Response.Segments) > 0
}
