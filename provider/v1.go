package provider

import (
	"context"
	"time"

	"github.com/ruteri/biosdk-services/api"
	"github.com/ruteri/biosdk-services/interfaces"
)

// V1 serves spec version 1.0 on top of a base engine. Format conversion
// returns the bare converted record.
type V1 struct {
	*dispatcher
}

var _ ServiceProvider = (*V1)(nil)

// NewV1 creates a 1.0 provider. cfg.Engine must not be nil.
func NewV1(cfg Config) *V1 {
	return &V1{dispatcher: newDispatcher(cfg, SpecVersionV1)}
}

// ConvertFormat returns a *interfaces.BiometricRecord.
func (p *V1) ConvertFormat(ctx context.Context, request api.RequestDto) (_ any, err error) {
	const op = "convertFormat"
	defer func(start time.Time) { p.observe(op, start, err) }(time.Now())
	log := p.logger(ctx, op)

	req, err := p.convertRequest(log, request)
	if err != nil {
		return nil, err
	}

	record, err := invoke(log, func() (*interfaces.BiometricRecord, error) {
		return p.engine.ConvertFormat(ctx, req.Sample, req.SourceFormat, req.TargetFormat,
			req.SourceParams, req.TargetParams, req.ModalitiesToConvert)
	})
	if err != nil {
		return nil, err
	}
	logPayload(log, p.logRequestResponse, ResponseLogMessage, record)
	return record, nil
}
