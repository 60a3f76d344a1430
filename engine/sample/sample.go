package sample

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/ruteri/biosdk-services/engine"
	"github.com/ruteri/biosdk-services/interfaces"
)

const (
	// ID registers the extended engine.
	ID = "sample"
	// IDV1 registers the same engine restricted to the base capability set.
	IDV1 = "sample-v1"

	APIVersion = "0.9"
	SDKVersion = "1.0"

	// Organization owns the formats produced by this engine.
	Organization = "ruteri"
	// TemplateFormat is the BDB format type of extracted templates.
	TemplateFormat = "sample-template"
)

var supportedModalities = []interfaces.BiometricType{
	interfaces.Face,
	interfaces.Finger,
	interfaces.Iris,
}

func init() {
	engine.Register(ID, func() (interfaces.BioAPI, error) {
		return New(), nil
	})
	engine.Register(IDV1, func() (interfaces.BioAPI, error) {
		return baseOnly{New()}, nil
	})
}

// baseOnly hides ConvertFormatV2 so the engine resolves as a base engine.
type baseOnly struct {
	interfaces.BioAPI
}

// Engine is a deterministic engine. It compares biometric data blocks by
// digest and performs no biometric processing; it exists so the service
// can run end to end without a vendor SDK.
type Engine struct{}

var _ interfaces.BioAPIV2 = (*Engine)(nil)

// New returns a sample engine.
func New() *Engine {
	return &Engine{}
}

// Init reports the engine versions and the modalities it handles.
func (e *Engine) Init(ctx context.Context, params interfaces.InitParams) (*interfaces.SDKInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	methods := make(map[interfaces.BiometricFunction][]interfaces.BiometricType)
	for _, fn := range []interfaces.BiometricFunction{
		interfaces.FunctionMatch,
		interfaces.FunctionQualityCheck,
		interfaces.FunctionExtract,
		interfaces.FunctionSegment,
		interfaces.FunctionConvertFormat,
	} {
		methods[fn] = supportedModalities
	}

	otherInfo := make(map[string]string, len(params))
	maps.Copy(otherInfo, params)

	return &interfaces.SDKInfo{
		APIVersion:          APIVersion,
		SDKVersion:          SDKVersion,
		SupportedModalities: supportedModalities,
		SupportedMethods:    methods,
		ProductOwner: &interfaces.RegistryIDType{
			Organization: Organization,
			Type:         ID,
		},
		OtherInfo: otherInfo,
	}, nil
}

// CheckQuality scores each requested modality by the mean of its header quality scores.
func (e *Engine) CheckQuality(ctx context.Context, sample interfaces.Sample, modalities interfaces.Modalities, flags interfaces.Flags) (*interfaces.Response[interfaces.QualityCheck], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(sample) == 0 {
		return interfaces.NewResponse[interfaces.QualityCheck](interfaces.StatusMissingInput, nil), nil
	}

	checked := modalities
	if len(checked) == 0 {
		checked = presentModalities(sample)
	}

	scores := make(map[interfaces.BiometricType]interfaces.QualityScore, len(checked))
	for _, modality := range checked {
		scores[modality] = qualityOf(segmentsOf(sample, newModalitySet(interfaces.Modalities{modality})))
	}

	return interfaces.NewResponse(interfaces.StatusSuccess, &interfaces.QualityCheck{Scores: scores}), nil
}

func qualityOf(segments []interfaces.BIR) interfaces.QualityScore {
	if len(segments) == 0 {
		return interfaces.QualityScore{Errors: []string{"no segments for modality"}}
	}

	var total int64
	var scored int
	for i := range segments {
		info := segments[i].BdbInfo
		if info == nil || info.Quality == nil {
			continue
		}
		total += info.Quality.Score
		scored++
	}
	if scored == 0 {
		return interfaces.QualityScore{Errors: []string{"quality not reported"}}
	}
	return interfaces.QualityScore{Score: float32(total) / float32(scored)}
}

// Match compares template digests per modality against each gallery entry.
func (e *Engine) Match(ctx context.Context, sample interfaces.Sample, gallery interfaces.Gallery, modalities interfaces.Modalities, flags interfaces.Flags) (*interfaces.Response[[]interfaces.MatchDecision], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(segmentsOf(sample, newModalitySet(modalities))) == 0 {
		return interfaces.NewResponse[[]interfaces.MatchDecision](interfaces.StatusMissingInput, nil), nil
	}

	compared := modalities
	if len(compared) == 0 {
		compared = presentModalities(sample)
	}

	decisions := make([]interfaces.MatchDecision, 0, len(gallery))
	for i, candidate := range gallery {
		decision := interfaces.MatchDecision{
			GalleryIndex: i,
			GalleryID:    candidate.ID,
			Decisions:    make(map[interfaces.BiometricType]interfaces.Decision, len(compared)),
		}
		for _, modality := range compared {
			only := newModalitySet(interfaces.Modalities{modality})
			decision.Decisions[modality] = compare(segmentsOf(sample, only), segmentsOf(candidate.Sample, only))
		}
		decisions = append(decisions, decision)
	}

	return interfaces.NewResponse(interfaces.StatusSuccess, &decisions), nil
}

func compare(query, candidate []interfaces.BIR) interfaces.Decision {
	if len(query) == 0 || len(candidate) == 0 {
		return interfaces.Decision{
			Match:  interfaces.NotMatched,
			Errors: []string{"modality not present in both samples"},
		}
	}

	queryDigests, err := digests(query)
	if err != nil {
		return interfaces.Decision{Match: interfaces.MatchError, Errors: []string{err.Error()}}
	}
	candidateDigests, err := digests(candidate)
	if err != nil {
		return interfaces.Decision{Match: interfaces.MatchError, Errors: []string{err.Error()}}
	}

	for _, d := range candidateDigests.Values() {
		if queryDigests.Contains(d) {
			return interfaces.Decision{Match: interfaces.Matched}
		}
	}
	return interfaces.Decision{Match: interfaces.NotMatched}
}

func digests(segments []interfaces.BIR) (*hashset.Set, error) {
	set := hashset.New()
	for i := range segments {
		d, err := digestOf(&segments[i])
		if err != nil {
			return nil, err
		}
		set.Add(d)
	}
	return set, nil
}

// ExtractTemplate replaces each selected segment with a CBOR digest template.
func (e *Engine) ExtractTemplate(ctx context.Context, sample interfaces.Sample, modalities interfaces.Modalities, flags interfaces.Flags) (*interfaces.Response[interfaces.BiometricRecord], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	segments := segmentsOf(sample, newModalitySet(modalities))
	if len(segments) == 0 {
		return notFound(), nil
	}

	templates := make([]interfaces.BIR, 0, len(segments))
	for i := range segments {
		if isTemplate(&segments[i]) {
			templates = append(templates, segments[i])
			continue
		}

		modality := interfaces.UnknownType
		if types := segments[i].Modalities(); len(types) > 0 {
			modality = types[0]
		}
		bdb, err := EncodeTemplate(newTemplate(modality, segments[i].Bdb))
		if err != nil {
			return nil, err
		}

		template := withFormat(segments[i], TemplateFormat)
		template.Bdb = bdb
		templates = append(templates, template)
	}

	return interfaces.NewResponse(interfaces.StatusSuccess, recordOf(sample, templates)), nil
}

// Segment returns the segments declaring one of the requested modalities.
func (e *Engine) Segment(ctx context.Context, sample interfaces.Sample, modalities interfaces.Modalities, flags interfaces.Flags) (*interfaces.Response[interfaces.BiometricRecord], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	segments := segmentsOf(sample, newModalitySet(modalities))
	if len(segments) == 0 {
		return notFound(), nil
	}
	return interfaces.NewResponse(interfaces.StatusSuccess, recordOf(sample, segments)), nil
}

// ConvertFormat reports a non-success conversion as an error, the base
// capability set has no other way to carry it.
func (e *Engine) ConvertFormat(ctx context.Context, sample interfaces.Sample, sourceFormat, targetFormat string, sourceParams, targetParams interfaces.FormatParams, modalities interfaces.Modalities) (*interfaces.BiometricRecord, error) {
	resp, err := e.ConvertFormatV2(ctx, sample, sourceFormat, targetFormat, sourceParams, targetParams, modalities)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != interfaces.StatusSuccess {
		return nil, fmt.Errorf("convert format from %q to %q failed: %d %s",
			sourceFormat, targetFormat, resp.StatusCode, resp.StatusMessage)
	}
	return resp.Response, nil
}

// ConvertFormatV2 relabels segments in sourceFormat as targetFormat.
func (e *Engine) ConvertFormatV2(ctx context.Context, sample interfaces.Sample, sourceFormat, targetFormat string, sourceParams, targetParams interfaces.FormatParams, modalities interfaces.Modalities) (*interfaces.Response[interfaces.BiometricRecord], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sourceFormat == "" || targetFormat == "" {
		return interfaces.NewResponse[interfaces.BiometricRecord](interfaces.StatusMissingInput, nil), nil
	}

	var converted []interfaces.BIR
	for _, segment := range segmentsOf(sample, newModalitySet(modalities)) {
		if !hasFormat(segment, sourceFormat) {
			continue
		}
		out := withFormat(segment, targetFormat)
		out.Others["sourceFormat"] = sourceFormat
		maps.Copy(out.Others, targetParams)
		converted = append(converted, out)
	}
	if len(converted) == 0 {
		return notFound(), nil
	}
	return interfaces.NewResponse(interfaces.StatusSuccess, recordOf(sample, converted)), nil
}

// hasFormat matches segments without a declared format against any source.
func hasFormat(segment interfaces.BIR, format string) bool {
	if segment.BdbInfo == nil || segment.BdbInfo.Format == nil || segment.BdbInfo.Format.Type == "" {
		return true
	}
	return strings.EqualFold(segment.BdbInfo.Format.Type, format)
}

func notFound() *interfaces.Response[interfaces.BiometricRecord] {
	return interfaces.NewResponse(interfaces.StatusBiometricNotFoundInCbeff, &interfaces.BiometricRecord{
		Segments: []interfaces.BIR{},
	})
}

// recordOf wraps segments in a record carrying the headers of the first
// record of sample.
func recordOf(sample interfaces.Sample, segments []interfaces.BIR) *interfaces.BiometricRecord {
	record := &interfaces.BiometricRecord{Segments: segments}
	if len(sample) > 0 {
		record.Version = sample[0].Version
		record.CbeffVersion = sample[0].CbeffVersion
		record.BirInfo = sample[0].BirInfo
	}
	return record
}

// withFormat copies segment with its BDB format type replaced.
func withFormat(segment interfaces.BIR, format string) interfaces.BIR {
	bdbInfo := interfaces.BDBInfo{}
	if segment.BdbInfo != nil {
		bdbInfo = *segment.BdbInfo
	}
	bdbInfo.Format = &interfaces.RegistryIDType{Organization: Organization, Type: format}
	segment.BdbInfo = &bdbInfo

	others := make(map[string]string, len(segment.Others)+1)
	maps.Copy(others, segment.Others)
	segment.Others = others
	return segment
}

func newModalitySet(modalities interfaces.Modalities) *hashset.Set {
	set := hashset.New()
	for _, m := range modalities {
		set.Add(m)
	}
	return set
}

// segmentsOf returns the segments of sample whose declared types intersect
// set. An empty set selects every segment.
func segmentsOf(sample interfaces.Sample, set *hashset.Set) []interfaces.BIR {
	var out []interfaces.BIR
	for _, record := range sample {
		for _, segment := range record.Segments {
			if set.Empty() || declares(segment, set) {
				out = append(out, segment)
			}
		}
	}
	return out
}

func declares(segment interfaces.BIR, set *hashset.Set) bool {
	for _, t := range segment.Modalities() {
		if set.Contains(t) {
			return true
		}
	}
	return false
}

func presentModalities(sample interfaces.Sample) interfaces.Modalities {
	seen := hashset.New()
	var out interfaces.Modalities
	for _, segment := range segmentsOf(sample, hashset.New()) {
		for _, t := range segment.Modalities() {
			if !seen.Contains(t) {
				seen.Add(t)
				out = append(out, t)
			}
		}
	}
	return out
}
