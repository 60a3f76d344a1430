package provider

import (
	"context"
	"time"

	"github.com/ruteri/biosdk-services/api"
	"github.com/ruteri/biosdk-services/interfaces"
)

// V2 serves spec version 2.0 on top of an extended engine. Format
// conversion returns the engine's Response envelope.
type V2 struct {
	*dispatcher
	engineV2 interfaces.BioAPIV2
}

var _ ServiceProvider = (*V2)(nil)

// NewV2 creates a 2.0 provider dispatching to engine.
func NewV2(cfg Config, engine interfaces.BioAPIV2) *V2 {
	cfg.Engine = engine
	return &V2{
		dispatcher: newDispatcher(cfg, SpecVersionV2),
		engineV2:   engine,
	}
}

// ConvertFormat returns a *interfaces.Response[interfaces.BiometricRecord].
func (p *V2) ConvertFormat(ctx context.Context, request api.RequestDto) (_ any, err error) {
	const op = "convertFormat"
	defer func(start time.Time) { p.observe(op, start, err) }(time.Now())
	log := p.logger(ctx, op)

	req, err := p.convertRequest(log, request)
	if err != nil {
		return nil, err
	}

	resp, err := invoke(log, func() (*interfaces.Response[interfaces.BiometricRecord], error) {
		return p.engineV2.ConvertFormatV2(ctx, req.Sample, req.SourceFormat, req.TargetFormat,
			req.SourceParams, req.TargetParams, req.ModalitiesToConvert)
	})
	if err != nil {
		return nil, err
	}
	logPayload(log, p.logRequestResponse, ResponseLogMessage, resp)
	return resp, nil
}
