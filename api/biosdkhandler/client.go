package biosdkhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ruteri/biosdk-services/api"
	"github.com/ruteri/biosdk-services/interfaces"
)

// Operation route names, relative to BasePath.
const (
	OpInit            = "init"
	OpCheckQuality    = "check-quality"
	OpMatch           = "match"
	OpExtractTemplate = "extract-template"
	OpSegment         = "segment"
	OpConvertFormat   = "convert-format"
)

// Operations lists every dispatchable route name.
var Operations = []string{OpInit, OpCheckQuality, OpMatch, OpExtractTemplate, OpSegment, OpConvertFormat}

// ResponseError is returned by Client when the service answers with errors.
type ResponseError struct {
	StatusCode int
	Errors     []api.ErrorDto
}

func (e *ResponseError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("biosdk service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("biosdk service returned %d: %s: %s", e.StatusCode, e.Errors[0].ErrorCode, e.Errors[0].Message)
}

// Client calls the biosdk routes of a remote service.
type Client struct {
	// ServerAddr is the base URL of the service, without BasePath.
	ServerAddr string

	// Version pins the spec version sent in every envelope. Empty leaves
	// the choice to the server.
	Version string

	HTTPClient *http.Client
}

// NewClient creates a client for serverAddr using http.DefaultClient.
func NewClient(serverAddr string) *Client {
	return &Client{
		ServerAddr: strings.TrimSuffix(serverAddr, "/"),
		HTTPClient: http.DefaultClient,
	}
}

// Call encodes request into an envelope, posts it to op and returns the raw
// response field of the ResponseDto.
func (c *Client) Call(ctx context.Context, op string, request any) (json.RawMessage, error) {
	envelope, err := api.Encode(c.Version, request)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("could not marshal envelope: %w", err)
	}

	url := fmt.Sprintf("%s%s/%s", c.ServerAddr, BasePath, op)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not request %s endpoint: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read %s response: %w", op, err)
	}

	var parsed struct {
		Response json.RawMessage `json:"response"`
		Errors   []api.ErrorDto  `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%s endpoint returned %d: %s", op, resp.StatusCode, string(respBody))
	}
	if resp.StatusCode != http.StatusOK || len(parsed.Errors) > 0 {
		return nil, &ResponseError{StatusCode: resp.StatusCode, Errors: parsed.Errors}
	}
	return parsed.Response, nil
}

func call[T any](ctx context.Context, c *Client, op string, request any) (*T, error) {
	raw, err := c.Call(ctx, op, request)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("could not parse %s response: %w", op, err)
	}
	return &out, nil
}

// Init calls the engine initialisation operation.
func (c *Client) Init(ctx context.Context, req api.InitRequest) (*interfaces.SDKInfo, error) {
	return call[interfaces.SDKInfo](ctx, c, OpInit, req)
}

// CheckQuality requests per-modality quality scores for a sample.
func (c *Client) CheckQuality(ctx context.Context, req api.CheckQualityRequest) (*interfaces.Response[interfaces.QualityCheck], error) {
	return call[interfaces.Response[interfaces.QualityCheck]](ctx, c, OpCheckQuality, req)
}

// Match compares a sample against every gallery entry.
func (c *Client) Match(ctx context.Context, req api.MatchRequest) (*interfaces.Response[[]interfaces.MatchDecision], error) {
	return call[interfaces.Response[[]interfaces.MatchDecision]](ctx, c, OpMatch, req)
}

// ExtractTemplate requests templates for the selected modalities.
func (c *Client) ExtractTemplate(ctx context.Context, req api.ExtractTemplateRequest) (*interfaces.Response[interfaces.BiometricRecord], error) {
	return call[interfaces.Response[interfaces.BiometricRecord]](ctx, c, OpExtractTemplate, req)
}

// Segment requests the segments of the selected modalities.
func (c *Client) Segment(ctx context.Context, req api.SegmentRequest) (*interfaces.Response[interfaces.BiometricRecord], error) {
	return call[interfaces.Response[interfaces.BiometricRecord]](ctx, c, OpSegment, req)
}

// ConvertFormat returns the raw result, whose shape depends on the spec
// version served: a bare record for 1.0, a Response envelope for 2.0.
func (c *Client) ConvertFormat(ctx context.Context, req api.ConvertFormatRequest) (json.RawMessage, error) {
	return c.Call(ctx, OpConvertFormat, req)
}

// Status fetches the service status.
func (c *Client) Status(ctx context.Context) (*api.ServiceStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ServerAddr+BasePath+"/s", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not request status endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status endpoint returned %d", resp.StatusCode)
	}
	var status api.ServiceStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("could not parse status response: %w", err)
	}
	return &status, nil
}
