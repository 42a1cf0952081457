package extract

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"policyparser/internal/domain"
	"policyparser/internal/port"
	"policyparser/internal/textnorm"
)

// ReadError reports that a document's text could not be extracted.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Result is the terminal outcome of processing one document.
type Result struct {
	File     string
	State    domain.OutcomeState
	Variant  domain.Variant
	Values   Values
	Document Document
	Err      error
}

// ErrorRecord converts a non-successful Result into an error report row.
// It returns false for Success.
func (r Result) ErrorRecord() (domain.ErrorRecord, bool) {
	switch r.State {
	case domain.OutcomeUnidentifiedInsurer:
		return domain.ErrorRecord{File: r.File, Reason: domain.ReasonUnidentifiedInsurer}, true
	case domain.OutcomeInsurerDisabled:
		return domain.ErrorRecord{File: r.File, Reason: domain.ReasonInsurerDisabled, Remarks: r.Variant.DisplayName()}, true
	case domain.OutcomeReadError:
		return domain.ErrorRecord{File: r.File, Reason: fmt.Sprintf("Unable to read PDF. %v.", r.Err)}, true
	default:
		return domain.ErrorRecord{}, false
	}
}

// Engine runs one document through extraction, classification, the optional supplement pass
// and field evaluation. It holds only immutable state and is safe for concurrent use.
type Engine struct {
	classifier *Classifier
	text       port.TextExtractor
	enabled    map[domain.Variant]bool
	logger     *zap.Logger
}

// NewEngine creates an Engine. Only variants in enabled finish as Success.
func NewEngine(classifier *Classifier, text port.TextExtractor, enabled []domain.Variant, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	set := make(map[domain.Variant]bool, len(enabled))
	for _, v := range enabled {
		set[v] = true
	}
	return &Engine{classifier: classifier, text: text, enabled: set, logger: logger}
}

// Enabled reports whether v is enabled for this engine.
func (e *Engine) Enabled(v domain.Variant) bool {
	return e.enabled[v]
}

// Classifier returns the engine's classifier.
func (e *Engine) Classifier() *Classifier {
	return e.classifier
}

// Process extracts path and returns its terminal Result. Only a text extraction failure stops
// a document early; field-level problems resolve to empty values.
func (e *Engine) Process(ctx context.Context, path string, env Env) Result {
	name := filepath.Base(path)
	log := e.logger.With(zap.String("file", name))

	raw, err := e.text.Extract(ctx, path)
	if err != nil {
		log.Warn("text extraction failed", zap.Error(err))
		return Result{File: name, State: domain.OutcomeReadError, Variant: domain.VariantUnknown, Err: &ReadError{Path: path, Err: err}}
	}
	doc := Document{Name: name, Text: textnorm.CleanContent(raw)}

	profile := e.classifier.Classify(doc.Text)
	log = log.With(zap.String("variant", string(profile.Variant)))

	if profile.NeedsAlternate {
		alt, err := e.text.ExtractAlternate(ctx, path)
		if err != nil {
			log.Warn("alternate text extraction failed", zap.Error(err))
			return Result{File: name, State: domain.OutcomeReadError, Variant: profile.Variant, Document: doc, Err: &ReadError{Path: path, Err: err}}
		}
		doc.Supplement = textnorm.CleanContent(alt)
	}

	values := NewExtractor(doc, profile.Table, env, log).ResolveAll(NewCache())
	res := Result{File: name, Variant: profile.Variant, Values: values, Document: doc}
	switch {
	case profile.Variant == domain.VariantUnknown:
		res.State = domain.OutcomeUnidentifiedInsurer
	case !e.enabled[profile.Variant]:
		res.State = domain.OutcomeInsurerDisabled
	default:
		res.State = domain.OutcomeSuccess
	}
	log.Info("document processed", zap.String("state", string(res.State)))
	return res
}
