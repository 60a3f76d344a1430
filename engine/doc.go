// Package engine resolves the biometric engine implementation the service
// dispatches to.
//
// Engines register a Factory under an identifier, usually from an init
// function, and the service resolves the configured identifier once at
// startup:
//
//	import _ "github.com/ruteri/biosdk-services/engine/sample"
//
//	if err := engine.Lookup(cfg.Engine); err != nil {
//	    log.Fatal(err) // blank or unknown identifier
//	}
//	bioAPI, err := engine.Resolve(cfg.Engine)
//
// Resolution is lazy and memoized: the factory runs on the first Resolve
// call for an identifier, under a lock, and every later call returns the
// same instance.
//
// MockBioAPI and MockBioAPIV2 are testify mocks of the engine interfaces
// for use in tests of consuming packages.
package engine
