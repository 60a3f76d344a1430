package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ruteri/biosdk-services/api"
	"github.com/ruteri/biosdk-services/interfaces"
	"github.com/ruteri/biosdk-services/metrics"
)

// Spec versions served by the two provider implementations.
const (
	SpecVersionV1 = "1.0"
	SpecVersionV2 = "2.0"
)

// ServiceProvider dispatches decoded envelopes to the biometric engine.
// Every method returns either a result or a *Error, never a raw engine error.
type ServiceProvider interface {
	SpecVersion() string
	Init(ctx context.Context, request api.RequestDto) (*interfaces.SDKInfo, error)
	CheckQuality(ctx context.Context, request api.RequestDto) (*interfaces.Response[interfaces.QualityCheck], error)
	Match(ctx context.Context, request api.RequestDto) (*interfaces.Response[[]interfaces.MatchDecision], error)
	ExtractTemplate(ctx context.Context, request api.RequestDto) (*interfaces.Response[interfaces.BiometricRecord], error)
	Segment(ctx context.Context, request api.RequestDto) (*interfaces.Response[interfaces.BiometricRecord], error)
	// ConvertFormat returns a *interfaces.BiometricRecord from a 1.0 provider
	// and a *interfaces.Response[interfaces.BiometricRecord] from a 2.0 provider.
	ConvertFormat(ctx context.Context, request api.RequestDto) (any, error)
}

// Config holds the dependencies of a provider. It is read once at
// composition time.
type Config struct {
	// Engine is the resolved engine instance shared by all calls.
	Engine interfaces.BioAPI

	// LogRequestResponse enables debug logging of request models and responses.
	LogRequestResponse bool

	Log     *slog.Logger
	Metrics *metrics.Metrics
}

// New composes the provider matching the capability set of cfg.Engine:
// a 2.0 provider when it implements interfaces.BioAPIV2, 1.0 otherwise.
func New(cfg Config) (ServiceProvider, error) {
	if cfg.Engine == nil {
		return nil, newError(NoProviderFound, errors.New("no engine configured"))
	}
	if v2, ok := cfg.Engine.(interfaces.BioAPIV2); ok {
		return NewV2(cfg, v2), nil
	}
	return NewV1(cfg), nil
}

// dispatcher implements the operations shared by both spec versions.
type dispatcher struct {
	engine             interfaces.BioAPI
	log                *slog.Logger
	logRequestResponse bool
	metrics            *metrics.Metrics
	specVersion        string
}

func newDispatcher(cfg Config, specVersion string) *dispatcher {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &dispatcher{
		engine:             cfg.Engine,
		log:                log,
		logRequestResponse: cfg.LogRequestResponse,
		metrics:            cfg.Metrics,
		specVersion:        specVersion,
	}
}

func (d *dispatcher) SpecVersion() string {
	return d.specVersion
}

func (d *dispatcher) logger(ctx context.Context, op string) *slog.Logger {
	return d.log.With(
		LogSessionIDKey, SessionID(ctx),
		LogIDTypeKey, IDType,
		"operation", op,
	)
}

func (d *dispatcher) observe(op string, start time.Time, err error) {
	outcome := "success"
	if code, ok := CodeOf(err); ok {
		outcome = string(code)
	}
	d.metrics.ObserveOperation(op, outcome, time.Since(start))
}

// materialize decodes the envelope and deserializes it into T.
func materialize[T any](d *dispatcher, log *slog.Logger, request api.RequestDto) (*T, error) {
	if request.Version != "" && request.Version != d.specVersion {
		log.Error("Unsupported spec version", "requested", request.Version, "served", d.specVersion)
		return nil, newError(UnsupportedVersion, fmt.Errorf("%s", request.Version))
	}

	decoded, err := api.Decode(request.Request)
	if err != nil {
		log.Error(string(InvalidRequestBody), "err", err)
		return nil, newError(InvalidRequestBody, err)
	}
	log.Debug("decoding successful")

	var model T
	if err := json.Unmarshal([]byte(decoded), &model); err != nil {
		log.Error("Failed to deserialize request", "err", err)
		return nil, newError(BioSDKLibException, err)
	}
	log.Debug("json to dto successful")
	return &model, nil
}

// invoke runs an engine call. Engine errors and panics are wrapped as
// BIOSDK_LIB_EXCEPTION.
func invoke[T any](log *slog.Logger, call func() (T, error)) (res T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine panic: %v", r)
		}
		if err != nil {
			log.Error("Engine call failed", "err", err)
			var zero T
			res, err = zero, newError(BioSDKLibException, err)
		}
	}()
	return call()
}

func (d *dispatcher) Init(ctx context.Context, request api.RequestDto) (info *interfaces.SDKInfo, err error) {
	const op = "init"
	defer func(start time.Time) { d.observe(op, start, err) }(time.Now())
	log := d.logger(ctx, op)

	req, err := materialize[api.InitRequest](d, log, request)
	if err != nil {
		return nil, err
	}
	logPayload(log, d.logRequestResponse, RequestLogMessage, req)

	info, err = invoke(log, func() (*interfaces.SDKInfo, error) {
		return d.engine.Init(ctx, req.InitParams)
	})
	if err != nil {
		return nil, err
	}
	logPayload(log, d.logRequestResponse, ResponseLogMessage, info)
	return info, nil
}

func (d *dispatcher) CheckQuality(ctx context.Context, request api.RequestDto) (resp *interfaces.Response[interfaces.QualityCheck], err error) {
	const op = "checkQuality"
	defer func(start time.Time) { d.observe(op, start, err) }(time.Now())
	log := d.logger(ctx, op)

	req, err := materialize[api.CheckQualityRequest](d, log, request)
	if err != nil {
		return nil, err
	}
	logPayload(log, d.logRequestResponse, RequestLogMessage, req)

	resp, err = invoke(log, func() (*interfaces.Response[interfaces.QualityCheck], error) {
		return d.engine.CheckQuality(ctx, req.Sample, req.ModalitiesToCheck, req.Flags)
	})
	if err != nil {
		return nil, err
	}
	logPayload(log, d.logRequestResponse, ResponseLogMessage, resp)
	return resp, nil
}

func (d *dispatcher) Match(ctx context.Context, request api.RequestDto) (resp *interfaces.Response[[]interfaces.MatchDecision], err error) {
	const op = "match"
	defer func(start time.Time) { d.observe(op, start, err) }(time.Now())
	log := d.logger(ctx, op)

	req, err := materialize[api.MatchRequest](d, log, request)
	if err != nil {
		return nil, err
	}
	logPayload(log, d.logRequestResponse, RequestLogMessage, req)

	resp, err = invoke(log, func() (*interfaces.Response[[]interfaces.MatchDecision], error) {
		return d.engine.Match(ctx, req.Sample, req.Gallery, req.ModalitiesToMatch, req.Flags)
	})
	if err != nil {
		return nil, err
	}
	logPayload(log, d.logRequestResponse, ResponseLogMessage, resp)
	return resp, nil
}

// ExtractTemplate aborts with UNCHECKED_EXCEPTION when the engine returns
// a record without segments.
func (d *dispatcher) ExtractTemplate(ctx context.Context, request api.RequestDto) (resp *interfaces.Response[interfaces.BiometricRecord], err error) {
	const op = "extractTemplate"
	defer func(start time.Time) { d.observe(op, start, err) }(time.Now())
	log := d.logger(ctx, op)

	req, err := materialize[api.ExtractTemplateRequest](d, log, request)
	if err != nil {
		return nil, err
	}
	logPayload(log, d.logRequestResponse, RequestLogMessage, req)

	resp, err = invoke(log, func() (*interfaces.Response[interfaces.BiometricRecord], error) {
		return d.engine.ExtractTemplate(ctx, req.Sample, req.ModalitiesToExtract, req.Flags)
	})
	if err != nil {
		return nil, err
	}

	if !Validate(resp) {
		logInvalidRecord(log, resp)
		return nil, newError(UncheckedException, nil)
	}
	logPayload(log, d.logRequestResponse, ResponseLogMessage, resp)
	return resp, nil
}

// Segment does not abort on a record without segments: the status code is
// downgraded to UNKNOWN_ERROR and the response is returned as is.
func (d *dispatcher) Segment(ctx context.Context, request api.RequestDto) (resp *interfaces.Response[interfaces.BiometricRecord], err error) {
	const op = "segment"
	defer func(start time.Time) { d.observe(op, start, err) }(time.Now())
	log := d.logger(ctx, op)

	req, err := materialize[api.SegmentRequest](d, log, request)
	if err != nil {
		return nil, err
	}
	logPayload(log, d.logRequestResponse, RequestLogMessage, req)

	resp, err = invoke(log, func() (*interfaces.Response[interfaces.BiometricRecord], error) {
		return d.engine.Segment(ctx, req.Sample, req.ModalitiesToSegment, req.Flags)
	})
	if err != nil {
		return nil, err
	}

	if !Validate(resp) {
		logInvalidRecord(log, resp)
		if resp == nil {
			resp = &interfaces.Response[interfaces.BiometricRecord]{
				StatusMessage: interfaces.StatusUnknownError.Message(),
			}
		}
		resp.StatusCode = interfaces.StatusUnknownError
	}
	logPayload(log, d.logRequestResponse, ResponseLogMessage, resp)
	return resp, nil
}

func (d *dispatcher) convertRequest(log *slog.Logger, request api.RequestDto) (*api.ConvertFormatRequest, error) {
	req, err := materialize[api.ConvertFormatRequest](d, log, request)
	if err != nil {
		return nil, err
	}
	logPayload(log, d.logRequestResponse, RequestLogMessage, req)
	return req, nil
}

// logInvalidRecord reports a segment-less record without its content.
func logInvalidRecord(log *slog.Logger, resp *interfaces.Response[interfaces.BiometricRecord]) {
	if resp == nil {
		log.Debug("Engine returned no response")
		return
	}
	log.Debug("Engine returned a record without segments",
		"statusCode", resp.StatusCode,
		"statusMessage", resp.StatusMessage)
}
