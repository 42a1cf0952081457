package extract

import (
	"time"

	"go.uber.org/zap"
)

// SupplementSeparator sits between a document's primary text and its supplemental text.
const SupplementSeparator = "\nBEGINLAYOUTTEXT\n"

// Document is the immutable normalized text of one input file.
type Document struct {
	Name       string
	Text       string
	Supplement string
}

// Content returns the text rules are evaluated against: the primary text, followed by the
// supplemental text when present.
func (d Document) Content() string {
	if d.Supplement == "" {
		return d.Text
	}
	return d.Text + SupplementSeparator + d.Supplement
}

// Env carries run-scoped inputs that some formulas fall back to.
type Env struct {
	ProcessingDate time.Time
}

// Extractor resolves Fields of one document against one variant's Table.
// A nil Table yields "" for every Field.
type Extractor struct {
	doc     Document
	content string
	table   *Table
	env     Env
	logger  *zap.Logger
}

// NewExtractor binds a document to a variant table.
func NewExtractor(doc Document, table *Table, env Env, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		doc:     doc,
		content: doc.Content(),
		table:   table,
		env:     env,
		logger:  logger.With(zap.String("document", doc.Name)),
	}
}

// Document returns the bound document.
func (x *Extractor) Document() Document {
	return x.doc
}

// Resolve returns the value of f, possibly "". Rules are tried in declared order and the first
// non-empty capture wins; the Field's formula runs only when no rule produced a value.
// Cacheable Fields are looked up in and stored to c. Evaluation problems never escape:
// they are logged and the Field resolves to "".
func (x *Extractor) Resolve(c *Cache, f Field) string {
	cacheable := f.Cacheable()
	if cacheable {
		if v, ok := c.Get(f); ok {
			return v
		}
	}
	v := x.evaluate(c, f)
	if cacheable {
		c.Put(f, v)
	}
	return v
}

// ResolveAll resolves every declared Field.
func (x *Extractor) ResolveAll(c *Cache) Values {
	out := make(Values, len(AllFields))
	for _, f := range AllFields {
		out[f] = x.Resolve(c, f)
	}
	return out
}

func (x *Extractor) evaluate(c *Cache, f Field) string {
	if x.table == nil {
		return ""
	}
	fr := x.table.Lookup(f)

	v := x.applyRules(f, fr)
	if v != "" && fr.rejects(v) {
		v = ""
	}
	if v != "" {
		n, err := normalize(f.Kind(), v)
		if err != nil {
			x.anomaly(f, err)
		}
		v = n
	}
	if v == "" && fr.Formula != nil {
		v = x.applyFormula(c, f, fr.Formula)
	}
	return v
}

func (x *Extractor) applyRules(f Field, fr FieldRules) string {
	for i, r := range fr.Rules {
		v, err := r.Capture(x.content)
		if err != nil {
			x.logger.Debug("rule evaluation failed",
				zap.String("field", string(f)), zap.Int("rule", i), zap.Error(err))
			continue
		}
		if v != "" {
			return v
		}
	}
	return ""
}

func (x *Extractor) applyFormula(c *Cache, f Field, fm *Formula) string {
	in := &Inputs{x: x, cache: c, deps: fm.Deps}
	v, err := fm.Eval(in)
	if err == nil {
		err = in.err
	}
	if err != nil {
		x.anomaly(f, err)
		return ""
	}
	return v
}

func (x *Extractor) anomaly(f Field, err error) {
	x.logger.Debug("field resolved to empty", zap.String("field", string(f)), zap.Error(err))
}
