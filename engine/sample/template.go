package sample

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/ruteri/biosdk-services/interfaces"
)

const templateVersion = 1

// Template is the CBOR payload stored in the BDB of an extracted segment.
type Template struct {
	Version  int                      `cbor:"1,keyasint"`
	Modality interfaces.BiometricType `cbor:"2,keyasint"`
	Digest   []byte                   `cbor:"3,keyasint"`
	Length   int                      `cbor:"4,keyasint"`
}

func newTemplate(modality interfaces.BiometricType, bdb []byte) Template {
	digest := sha256.Sum256(bdb)
	return Template{
		Version:  templateVersion,
		Modality: modality,
		Digest:   digest[:],
		Length:   len(bdb),
	}
}

// EncodeTemplate serializes t to CBOR.
func EncodeTemplate(t Template) ([]byte, error) {
	data, err := cbor.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("could not encode template: %w", err)
	}
	return data, nil
}

// DecodeTemplate parses a CBOR template.
func DecodeTemplate(data []byte) (Template, error) {
	var t Template
	if err := cbor.Unmarshal(data, &t); err != nil {
		return Template{}, fmt.Errorf("could not decode template: %w", err)
	}
	if t.Version != templateVersion {
		return Template{}, fmt.Errorf("unsupported template version %d", t.Version)
	}
	return t, nil
}

func isTemplate(segment *interfaces.BIR) bool {
	return segment.BdbInfo != nil && segment.BdbInfo.Format != nil &&
		segment.BdbInfo.Format.Type == TemplateFormat
}

// digestOf returns the comparable digest of a segment: the template digest
// for extracted segments, the SHA-256 of the BDB otherwise.
func digestOf(segment *interfaces.BIR) (string, error) {
	if isTemplate(segment) {
		t, err := DecodeTemplate(segment.Bdb)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%x", t.Digest), nil
	}
	digest := sha256.Sum256(segment.Bdb)
	return fmt.Sprintf("%x", digest), nil
}
