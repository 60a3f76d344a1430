// Package main (cmd/httpserver) runs the biosdk HTTP service.
//
// The engine is chosen by identifier at startup and loaded once; the
// process refuses to start when the identifier is blank or unknown. The
// engine's capability set decides the spec version served: engines with
// the extended capability set are served as 2.0, others as 1.0.
//
// Configuration comes from an optional TOML file, overridden by flags
// and their environment variables:
//
//	biosdk_bioapi_impl = "sample"
//	log_request_response = false
//	listen_addr = "0.0.0.0:9099"
//	metrics_addr = "0.0.0.0:8090"
//
//	[log]
//	json = true
//	file = "/var/log/biosdk/biosdk.%Y%m%d.log"
//
// Example usage:
//
//	biosdk-server --config=/etc/biosdk.toml --biosdk-bioapi-impl=sample --log-json
//
// The server shuts down gracefully on SIGINT/SIGTERM.
package main
