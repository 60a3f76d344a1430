package engine

import (
	"context"

	"github.com/ruteri/biosdk-services/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockBioAPI mocks the interfaces.BioAPI interface
type MockBioAPI struct {
	mock.Mock
}

// Init mocks the Init method
func (m *MockBioAPI) Init(ctx context.Context, params interfaces.InitParams) (*interfaces.SDKInfo, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.SDKInfo), args.Error(1)
}

// CheckQuality mocks the CheckQuality method
func (m *MockBioAPI) CheckQuality(ctx context.Context, sample interfaces.Sample, modalities interfaces.Modalities, flags interfaces.Flags) (*interfaces.Response[interfaces.QualityCheck], error) {
	args := m.Called(ctx, sample, modalities, flags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.Response[interfaces.QualityCheck]), args.Error(1)
}

// Match mocks the Match method
func (m *MockBioAPI) Match(ctx context.Context, sample interfaces.Sample, gallery interfaces.Gallery, modalities interfaces.Modalities, flags interfaces.Flags) (*interfaces.Response[[]interfaces.MatchDecision], error) {
	args := m.Called(ctx, sample, gallery, modalities, flags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.Response[[]interfaces.MatchDecision]), args.Error(1)
}

// ExtractTemplate mocks the ExtractTemplate method
func (m *MockBioAPI) ExtractTemplate(ctx context.Context, sample interfaces.Sample, modalities interfaces.Modalities, flags interfaces.Flags) (*interfaces.Response[interfaces.BiometricRecord], error) {
	args := m.Called(ctx, sample, modalities, flags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.Response[interfaces.BiometricRecord]), args.Error(1)
}

// Segment mocks the Segment method
func (m *MockBioAPI) Segment(ctx context.Context, sample interfaces.Sample, modalities interfaces.Modalities, flags interfaces.Flags) (*interfaces.Response[interfaces.BiometricRecord], error) {
	args := m.Called(ctx, sample, modalities, flags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.Response[interfaces.BiometricRecord]), args.Error(1)
}

// ConvertFormat mocks the ConvertFormat method
func (m *MockBioAPI) ConvertFormat(ctx context.Context, sample interfaces.Sample, sourceFormat, targetFormat string, sourceParams, targetParams interfaces.FormatParams, modalities interfaces.Modalities) (*interfaces.BiometricRecord, error) {
	args := m.Called(ctx, sample, sourceFormat, targetFormat, sourceParams, targetParams, modalities)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.BiometricRecord), args.Error(1)
}

// MockBioAPIV2 mocks the interfaces.BioAPIV2 interface
type MockBioAPIV2 struct {
	MockBioAPI
}

// ConvertFormatV2 mocks the ConvertFormatV2 method
func (m *MockBioAPIV2) ConvertFormatV2(ctx context.Context, sample interfaces.Sample, sourceFormat, targetFormat string, sourceParams, targetParams interfaces.FormatParams, modalities interfaces.Modalities) (*interfaces.Response[interfaces.BiometricRecord], error) {
	args := m.Called(ctx, sample, sourceFormat, targetFormat, sourceParams, targetParams, modalities)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.Response[interfaces.BiometricRecord]), args.Error(1)
}
