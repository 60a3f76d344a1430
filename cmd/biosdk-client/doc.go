// Package main (cmd/biosdk-client) sends one request model to a biosdk
// service and prints the operation result.
//
// Example usage:
//
//	biosdk-client --server-addr=http://127.0.0.1:9099 \
//	    --operation=check-quality --request-file=./check-quality.json
package main
