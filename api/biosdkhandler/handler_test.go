package biosdkhandler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/biosdk-services/api"
	"github.com/ruteri/biosdk-services/engine"
	"github.com/ruteri/biosdk-services/engine/sample"
	"github.com/ruteri/biosdk-services/interfaces"
	"github.com/ruteri/biosdk-services/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var anything4 = []any{mock.Anything, mock.Anything, mock.Anything, mock.Anything}

func setupRouter(t *testing.T, e interfaces.BioAPI) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	p, err := provider.New(provider.Config{Engine: e, Log: log})
	require.NoError(t, err)

	h := NewHandler(p, "test-engine", log)
	h.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 6000000, time.UTC) }

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func post(t *testing.T, router http.Handler, op string, body string) (*httptest.ResponseRecorder, api.ResponseDto) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, BasePath+"/"+op, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var dto api.ResponseDto
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto), rr.Body.String())
	return rr, dto
}

func envelopeBody(t *testing.T, version, payload string) string {
	t.Helper()
	body, err := json.Marshal(api.RequestDto{
		Version: version,
		Request: base64.StdEncoding.EncodeToString([]byte(payload)),
	})
	require.NoError(t, err)
	return string(body)
}

func TestStatusRoutes(t *testing.T) {
	router := setupRouter(t, sample.New())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, BasePath+"/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "test-engine")

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, BasePath+"/s", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var status api.ServiceStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, []string{provider.SpecVersionV2}, status.SpecVersions)
	assert.Equal(t, "test-engine", status.EngineID)
}

func TestInit(t *testing.T) {
	router := setupRouter(t, sample.New())

	rr, dto := post(t, router, OpInit, envelopeBody(t, "", `{"initParams":{"mode":"fast"}}`))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(SessionIDHeader))
	assert.Equal(t, provider.SpecVersionV2, dto.Version)
	assert.Equal(t, "2026-01-02T03:04:05.006Z", dto.ResponseTime)
	assert.Empty(t, dto.Errors)

	info := dto.Response.(map[string]any)
	assert.Equal(t, sample.APIVersion, info["apiVersion"])
	assert.Equal(t, "fast", info["otherInfo"].(map[string]any)["mode"])
}

func TestErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   provider.ErrorCode
	}{
		{
			name:       "malformed transport json",
			body:       `{"request":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   provider.InvalidRequestBody,
		},
		{
			name:       "invalid base64",
			body:       `{"request":"%%%"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   provider.InvalidRequestBody,
		},
		{
			name:       "unsupported version",
			body:       envelopeBody(t, "9.9", `{"sample":[]}`),
			wantStatus: http.StatusBadRequest,
			wantCode:   provider.UnsupportedVersion,
		},
		{
			name:       "undeserializable model",
			body:       envelopeBody(t, "", `{"sample":{}}`),
			wantStatus: http.StatusInternalServerError,
			wantCode:   provider.BioSDKLibException,
		},
		{
			name:       "no segments extracted",
			body:       envelopeBody(t, "", `{"sample":[],"modalitiesToExtract":["FINGER"],"flags":{}}`),
			wantStatus: http.StatusInternalServerError,
			wantCode:   provider.UncheckedException,
		},
	}

	router := setupRouter(t, sample.New())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, dto := post(t, router, OpExtractTemplate, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
			require.Len(t, dto.Errors, 1)
			assert.Equal(t, string(tt.wantCode), dto.Errors[0].ErrorCode)
			assert.Nil(t, dto.Response)
		})
	}
}

func TestEngineFailure(t *testing.T) {
	e := new(engine.MockBioAPI)
	e.On("Segment", anything4...).Return(nil, errors.New("sdk not licensed")).Once()
	router := setupRouter(t, e)

	rr, dto := post(t, router, OpSegment, envelopeBody(t, provider.SpecVersionV1, `{"sample":[]}`))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Len(t, dto.Errors, 1)
	assert.Equal(t, string(provider.BioSDKLibException), dto.Errors[0].ErrorCode)
	assert.Contains(t, dto.Errors[0].Message, "sdk not licensed")
	assert.Equal(t, provider.SpecVersionV1, dto.Version)
	e.AssertExpectations(t)
}

func TestSegmentWithoutSegmentsIsNotAnHTTPError(t *testing.T) {
	router := setupRouter(t, sample.New())

	rr, dto := post(t, router, OpSegment, envelopeBody(t, "", `{"sample":[],"modalitiesToSegment":["IRIS"]}`))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, dto.Errors)

	resp := dto.Response.(map[string]any)
	assert.EqualValues(t, interfaces.StatusUnknownError, resp["statusCode"])
}

func TestClient(t *testing.T) {
	srv := httptest.NewServer(setupRouter(t, sample.New()))
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()

	status, err := client.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test-engine", status.EngineID)

	info, err := client.Init(ctx, api.InitRequest{InitParams: interfaces.InitParams{"k": "v"}})
	require.NoError(t, err)
	assert.Equal(t, sample.SDKVersion, info.SDKVersion)

	query := interfaces.Sample{{Segments: []interfaces.BIR{{
		BdbInfo: &interfaces.BDBInfo{Type: []interfaces.BiometricType{interfaces.Finger}},
		Bdb:     []byte("thumb"),
	}}}}

	extracted, err := client.ExtractTemplate(ctx, api.ExtractTemplateRequest{Sample: query})
	require.NoError(t, err)
	require.Equal(t, interfaces.StatusSuccess, extracted.StatusCode)
	require.Len(t, extracted.Response.Segments, 1)

	matched, err := client.Match(ctx, api.MatchRequest{
		Sample:  query,
		Gallery: interfaces.Gallery{{ID: "enrolled", Sample: interfaces.Sample{*extracted.Response}}},
	})
	require.NoError(t, err)
	require.Len(t, *matched.Response, 1)
	assert.Equal(t, interfaces.Matched, (*matched.Response)[0].Decisions[interfaces.Finger].Match)

	_, err = client.ExtractTemplate(ctx, api.ExtractTemplateRequest{Sample: interfaces.Sample{}})
	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
	assert.Equal(t, string(provider.UncheckedException), respErr.Errors[0].ErrorCode)

	client.Version = provider.SpecVersionV1
	_, err = client.Segment(ctx, api.SegmentRequest{Sample: query})
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, http.StatusBadRequest, respErr.StatusCode)
}
