package sample

import (
	"context"
	"testing"

	"github.com/ruteri/biosdk-services/engine"
	"github.com/ruteri/biosdk-services/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segment(modality interfaces.BiometricType, format string, quality int64, bdb string) interfaces.BIR {
	return interfaces.BIR{
		BdbInfo: &interfaces.BDBInfo{
			Type:    []interfaces.BiometricType{modality},
			Format:  &interfaces.RegistryIDType{Organization: "Mosip", Type: format},
			Quality: &interfaces.QualityType{Score: quality},
		},
		Bdb: []byte(bdb),
	}
}

func testSample(segments ...interfaces.BIR) interfaces.Sample {
	return interfaces.Sample{{
		Version:  &interfaces.VersionType{Major: 1, Minor: 1},
		Segments: segments,
	}}
}

func TestRegistered(t *testing.T) {
	extended, err := engine.Resolve(ID)
	require.NoError(t, err)
	_, ok := extended.(interfaces.BioAPIV2)
	assert.True(t, ok)

	base, err := engine.Resolve(IDV1)
	require.NoError(t, err)
	_, ok = base.(interfaces.BioAPIV2)
	assert.False(t, ok)
}

func TestInit(t *testing.T) {
	info, err := New().Init(context.Background(), interfaces.InitParams{"mode": "fast"})
	require.NoError(t, err)

	assert.Equal(t, APIVersion, info.APIVersion)
	assert.Equal(t, SDKVersion, info.SDKVersion)
	assert.Equal(t, "fast", info.OtherInfo["mode"])
	assert.Contains(t, info.SupportedModalities, interfaces.Finger)
}

func TestCheckQuality(t *testing.T) {
	s := testSample(
		segment(interfaces.Finger, "ISO19794_4_2011", 60, "f1"),
		segment(interfaces.Finger, "ISO19794_4_2011", 80, "f2"),
		segment(interfaces.Face, "ISO19794_5_2011", 90, "face"),
	)

	resp, err := New().CheckQuality(context.Background(), s, interfaces.Modalities{interfaces.Finger, interfaces.Iris}, nil)
	require.NoError(t, err)
	require.Equal(t, interfaces.StatusSuccess, resp.StatusCode)

	scores := resp.Response.Scores
	assert.InDelta(t, 70, scores[interfaces.Finger].Score, 0.001)
	assert.NotEmpty(t, scores[interfaces.Iris].Errors)
	assert.NotContains(t, scores, interfaces.Face)
}

func TestCheckQuality_EmptySample(t *testing.T) {
	resp, err := New().CheckQuality(context.Background(), interfaces.Sample{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatusMissingInput, resp.StatusCode)
	assert.Nil(t, resp.Response)
}

func TestExtractTemplateAndMatch(t *testing.T) {
	e := New()
	ctx := context.Background()

	query := testSample(segment(interfaces.Finger, "ISO19794_4_2011", 70, "left-thumb"))
	extracted, err := e.ExtractTemplate(ctx, query, interfaces.Modalities{interfaces.Finger}, nil)
	require.NoError(t, err)
	require.Equal(t, interfaces.StatusSuccess, extracted.StatusCode)
	require.Len(t, extracted.Response.Segments, 1)

	tmpl := extracted.Response.Segments[0]
	assert.Equal(t, TemplateFormat, tmpl.BdbInfo.Format.Type)
	decoded, err := DecodeTemplate(tmpl.Bdb)
	require.NoError(t, err)
	assert.Equal(t, interfaces.Finger, decoded.Modality)
	assert.Equal(t, len("left-thumb"), decoded.Length)

	gallery := interfaces.Gallery{
		{ID: "same", Sample: interfaces.Sample{*extracted.Response}},
		{ID: "other", Sample: testSample(segment(interfaces.Finger, "ISO19794_4_2011", 70, "right-thumb"))},
		{ID: "face-only", Sample: testSample(segment(interfaces.Face, "ISO19794_5_2011", 70, "left-thumb"))},
	}

	resp, err := e.Match(ctx, query, gallery, interfaces.Modalities{interfaces.Finger}, nil)
	require.NoError(t, err)
	require.Equal(t, interfaces.StatusSuccess, resp.StatusCode)

	decisions := *resp.Response
	require.Len(t, decisions, 3)
	assert.Equal(t, interfaces.Matched, decisions[0].Decisions[interfaces.Finger].Match)
	assert.Equal(t, "same", decisions[0].GalleryID)
	assert.Equal(t, interfaces.NotMatched, decisions[1].Decisions[interfaces.Finger].Match)
	assert.Equal(t, 2, decisions[2].GalleryIndex)
	assert.Equal(t, interfaces.NotMatched, decisions[2].Decisions[interfaces.Finger].Match)
	assert.NotEmpty(t, decisions[2].Decisions[interfaces.Finger].Errors)
}

func TestMatch_MissingQuery(t *testing.T) {
	resp, err := New().Match(context.Background(), interfaces.Sample{}, interfaces.Gallery{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatusMissingInput, resp.StatusCode)
}

func TestExtractTemplate_NoSegments(t *testing.T) {
	resp, err := New().ExtractTemplate(context.Background(), interfaces.Sample{}, interfaces.Modalities{interfaces.Finger}, nil)
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatusBiometricNotFoundInCbeff, resp.StatusCode)
	require.NotNil(t, resp.Response)
	assert.Empty(t, resp.Response.Segments)
}

func TestSegment(t *testing.T) {
	iris := segment(interfaces.Iris, "ISO19794_6_2011", 70, "i")
	iris.SbInfo = &interfaces.SBInfo{Format: &interfaces.RegistryIDType{Organization: "Mosip", Type: "sig"}}
	s := testSample(
		segment(interfaces.Finger, "ISO19794_4_2011", 70, "f"),
		iris,
	)

	resp, err := New().Segment(context.Background(), s, interfaces.Modalities{interfaces.Iris}, nil)
	require.NoError(t, err)
	require.Len(t, resp.Response.Segments, 1)
	assert.Equal(t, []byte("i"), resp.Response.Segments[0].Bdb)
	assert.Equal(t, iris.SbInfo, resp.Response.Segments[0].SbInfo)
	assert.Equal(t, s[0].Version, resp.Response.Version)

	all, err := New().Segment(context.Background(), s, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all.Response.Segments, 2)
}

func TestConvertFormat(t *testing.T) {
	s := testSample(
		segment(interfaces.Finger, "ISO19794_4_2011", 70, "f"),
		segment(interfaces.Finger, "IMAGE/JPEG", 70, "g"),
	)
	ctx := context.Background()

	resp, err := New().ConvertFormatV2(ctx, s, "iso19794_4_2011", "IMAGE/PNG", nil,
		interfaces.FormatParams{"dpi": "500"}, interfaces.Modalities{interfaces.Finger})
	require.NoError(t, err)
	require.Equal(t, interfaces.StatusSuccess, resp.StatusCode)
	require.Len(t, resp.Response.Segments, 1)

	out := resp.Response.Segments[0]
	assert.Equal(t, "IMAGE/PNG", out.BdbInfo.Format.Type)
	assert.Equal(t, "ISO19794_4_2011", s[0].Segments[0].BdbInfo.Format.Type, "input must not be mutated")
	assert.Equal(t, "iso19794_4_2011", out.Others["sourceFormat"])
	assert.Equal(t, "500", out.Others["dpi"])

	missing, err := New().ConvertFormatV2(ctx, s, "", "IMAGE/PNG", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatusMissingInput, missing.StatusCode)

	_, err = New().ConvertFormat(ctx, s, "WSQ", "IMAGE/PNG", nil, nil, nil)
	assert.ErrorContains(t, err, "failed")

	record, err := New().ConvertFormat(ctx, s, "IMAGE/JPEG", "IMAGE/PNG", nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, record.Segments, 1)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Segment(ctx, testSample(), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
