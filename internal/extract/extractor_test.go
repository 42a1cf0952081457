package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x "policyparser/internal/extract"
)

func countingFormula(calls *int, value string, deps ...x.Field) *x.Formula {
	return &x.Formula{
		Deps: deps,
		Eval: func(in *x.Inputs) (string, error) {
			*calls++
			return value, nil
		},
	}
}

func newExtractor(t *testing.T, text string, fields map[x.Field]x.FieldRules) *x.Extractor {
	t.Helper()
	table, err := x.NewTable(fields)
	require.NoError(t, err)
	return x.NewExtractor(x.Document{Name: "doc.pdf", Text: text}, table, x.Env{}, nil)
}

func TestRule_Capture(t *testing.T) {
	r := x.MustRule(`Policy\s*No[:\s]*(\w+)`, x.IgnoreCase)

	v, err := r.Capture("POLICY NO:   AB1234  \n")
	require.NoError(t, err)
	assert.Equal(t, "AB1234", v)

	v, err = r.Capture("nothing here")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestRule_Lookbehind(t *testing.T) {
	r := x.MustRule(`(?<!Branch )Address\s*:\s*(\w+)`, x.IgnoreCase)

	v, err := r.Capture("Branch Address: Mumbai\nAddress: Pune")
	require.NoError(t, err)
	assert.Equal(t, "Pune", v)
}

func TestNewRule_InvalidPattern(t *testing.T) {
	_, err := x.NewRule(`(unclosed`, 0)
	assert.Error(t, err)
}

func TestResolve_FirstMatchingRuleWins(t *testing.T) {
	ex := newExtractor(t, "Insured Name: ALICE\nName Of the Insured: BOB", map[x.Field]x.FieldRules{
		x.FieldCustomerName: {Rules: []x.Rule{
			x.MustRule(`Dear\s*(\w+)`, 0),
			x.MustRule(`Insured\s*Name:\s*(\w+)`, 0),
			x.MustRule(`Name Of the Insured:\s*(\w+)`, 0),
		}},
	})

	assert.Equal(t, "ALICE", ex.Resolve(x.NewCache(), x.FieldCustomerName))
}

func TestResolve_EmptyCaptureFallsThrough(t *testing.T) {
	ex := newExtractor(t, "Variant:   \nModel: Swift", map[x.Field]x.FieldRules{
		x.FieldVariant: {Rules: []x.Rule{
			x.MustRule(`Variant:([ ]*)`, 0),
			x.MustRule(`Model:\s*(\w+)`, 0),
		}},
	})

	assert.Equal(t, "Swift", ex.Resolve(x.NewCache(), x.FieldVariant))
}

func TestResolve_FormulaOnlyWhenRulesFail(t *testing.T) {
	calls := 0
	ex := newExtractor(t, "Total Premium: 1,180", map[x.Field]x.FieldRules{
		x.FieldTotalPremium: {
			Rules:   []x.Rule{x.MustRule(`Total Premium:\s*([\d,]+)`, 0)},
			Formula: countingFormula(&calls, "999"),
		},
	})

	assert.Equal(t, "1180", ex.Resolve(x.NewCache(), x.FieldTotalPremium))
	assert.Zero(t, calls)
}

func TestResolve_RejectedCaptureUsesFormula(t *testing.T) {
	calls := 0
	ex := newExtractor(t, "Receipt Number: Reference", map[x.Field]x.FieldRules{
		x.FieldReceiptNumber: {
			Rules:   []x.Rule{x.MustRule(`Receipt Number:\s*(\w+)`, 0)},
			Reject:  []string{"reference", "receipt"},
			Formula: countingFormula(&calls, ""),
		},
	})

	assert.Empty(t, ex.Resolve(x.NewCache(), x.FieldReceiptNumber))
	assert.Equal(t, 1, calls)
}

func TestResolve_NormalizesByKind(t *testing.T) {
	text := "SI: 2,50,000.50\nNCB: 20.9\nRate: 18.00\nTP: 1,000.49"
	ex := newExtractor(t, text, map[x.Field]x.FieldRules{
		x.FieldSumInsured: {Rules: []x.Rule{x.MustRule(`SI:\s*([\d\.,]+)`, 0)}},
		x.FieldNCB:        {Rules: []x.Rule{x.MustRule(`NCB:\s*([\d\.]+)`, 0)}},
		x.FieldTaxRate:    {Rules: []x.Rule{x.MustRule(`Rate:\s*([\d\.]+)`, 0)}},
		x.FieldTPPremium:  {Rules: []x.Rule{x.MustRule(`TP:\s*([\d\.,]+)`, 0)}},
	})
	c := x.NewCache()

	assert.Equal(t, "250001", ex.Resolve(c, x.FieldSumInsured))
	assert.Equal(t, "20", ex.Resolve(c, x.FieldNCB))
	assert.Equal(t, "18", ex.Resolve(c, x.FieldTaxRate))
	assert.Equal(t, "1000", ex.Resolve(c, x.FieldTPPremium))
}

func TestResolve_UnparseableMoneyFallsBackToFormula(t *testing.T) {
	calls := 0
	ex := newExtractor(t, "Net Premium: ...", map[x.Field]x.FieldRules{
		x.FieldNetPremium: {
			Rules:   []x.Rule{x.MustRule(`Net Premium:\s*([\d\.,]+)`, 0)},
			Formula: countingFormula(&calls, "42"),
		},
	})

	assert.Equal(t, "42", ex.Resolve(x.NewCache(), x.FieldNetPremium))
	assert.Equal(t, 1, calls)
}

func TestResolve_CacheableFieldEvaluatedOnce(t *testing.T) {
	calls := 0
	ex := newExtractor(t, "", map[x.Field]x.FieldRules{
		x.FieldTaxRate: {Formula: countingFormula(&calls, "")},
	})
	c := x.NewCache()

	assert.Empty(t, ex.Resolve(c, x.FieldTaxRate))
	assert.Empty(t, ex.Resolve(c, x.FieldTaxRate))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.Len())
}

func TestResolve_NonCacheableFieldReevaluated(t *testing.T) {
	calls := 0
	ex := newExtractor(t, "", map[x.Field]x.FieldRules{
		x.FieldCity: {Formula: countingFormula(&calls, "PUNE")},
	})
	c := x.NewCache()

	ex.Resolve(c, x.FieldCity)
	ex.Resolve(c, x.FieldCity)
	assert.Equal(t, 2, calls)
	assert.Zero(t, c.Len())
}

func TestResolve_SharedDependencyResolvedOnce(t *testing.T) {
	totalCalls := 0
	ex := newExtractor(t, "", map[x.Field]x.FieldRules{
		x.FieldTotalPremium: {Formula: countingFormula(&totalCalls, "1180")},
		x.FieldTaxes: {Formula: &x.Formula{
			Deps: []x.Field{x.FieldTotalPremium},
			Eval: func(in *x.Inputs) (string, error) { return in.Get(x.FieldTotalPremium), nil },
		}},
		x.FieldNetPremium: {Formula: &x.Formula{
			Deps: []x.Field{x.FieldTotalPremium, x.FieldTaxes},
			Eval: func(in *x.Inputs) (string, error) {
				return in.Get(x.FieldTotalPremium) + "/" + in.Get(x.FieldTaxes), nil
			},
		}},
	})

	values := ex.ResolveAll(x.NewCache())
	assert.Equal(t, "1180/1180", values.Get(x.FieldNetPremium))
	assert.Equal(t, 1, totalCalls)
}

func TestResolve_SeparateCachesDoNotShare(t *testing.T) {
	calls := 0
	ex := newExtractor(t, "", map[x.Field]x.FieldRules{
		x.FieldTaxRate: {Formula: countingFormula(&calls, "18")},
	})

	ex.Resolve(x.NewCache(), x.FieldTaxRate)
	ex.Resolve(x.NewCache(), x.FieldTaxRate)
	assert.Equal(t, 2, calls)
}

func TestResolve_UndeclaredDependencyYieldsEmpty(t *testing.T) {
	ex := newExtractor(t, "Policy No: P1", map[x.Field]x.FieldRules{
		x.FieldPolicyNumber: {Rules: []x.Rule{x.MustRule(`Policy No:\s*(\w+)`, 0)}},
		x.FieldPolicyType: {Formula: &x.Formula{
			Eval: func(in *x.Inputs) (string, error) { return "type-" + in.Get(x.FieldPolicyNumber), nil },
		}},
	})

	assert.Empty(t, ex.Resolve(x.NewCache(), x.FieldPolicyType))
}

func TestResolve_FormulaErrorYieldsEmpty(t *testing.T) {
	ex := newExtractor(t, "", map[x.Field]x.FieldRules{
		x.FieldTaxes: {Formula: &x.Formula{
			Eval: func(*x.Inputs) (string, error) { return "1", assert.AnError },
		}},
	})

	assert.Empty(t, ex.Resolve(x.NewCache(), x.FieldTaxes))
}

func TestResolve_SearchBuildsDynamicPattern(t *testing.T) {
	ex := newExtractor(t, "RTO Location: PUNE\nPUNE MH12AB1234", map[x.Field]x.FieldRules{
		x.FieldRTOLocation: {Rules: []x.Rule{x.MustRule(`RTO Location:\s*(\w+)`, 0)}},
		x.FieldRegistrationNo: {Formula: &x.Formula{
			Deps: []x.Field{x.FieldRTOLocation},
			Eval: func(in *x.Inputs) (string, error) {
				return in.Search("^"+in.Get(x.FieldRTOLocation)+`\s+(\w+)`, x.Multiline)
			},
		}},
	})

	assert.Equal(t, "MH12AB1234", ex.Resolve(x.NewCache(), x.FieldRegistrationNo))
}

func TestResolve_EnvAvailableToFormulas(t *testing.T) {
	table := x.MustTable(map[x.Field]x.FieldRules{
		x.FieldReceivedDate: {Formula: &x.Formula{
			Eval: func(in *x.Inputs) (string, error) { return in.Env().ProcessingDate.Format("2006-01-02"), nil },
		}},
	})
	env := x.Env{ProcessingDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}
	ex := x.NewExtractor(x.Document{}, table, env, nil)

	assert.Equal(t, "2024-03-15", ex.Resolve(x.NewCache(), x.FieldReceivedDate))
}

func TestResolve_NilTableYieldsEmpty(t *testing.T) {
	ex := x.NewExtractor(x.Document{Text: "anything"}, nil, x.Env{}, nil)

	values := ex.ResolveAll(x.NewCache())
	assert.Len(t, values, len(x.AllFields))
	for _, f := range x.AllFields {
		assert.Empty(t, values.Get(f), f)
	}
}

func TestResolve_SupplementIsSearched(t *testing.T) {
	table := x.MustTable(map[x.Field]x.FieldRules{
		x.FieldMake: {Rules: []x.Rule{x.MustRule(`Make\s+(\w+)`, 0)}},
	})
	doc := x.Document{Text: "primary", Supplement: "Make HONDA"}
	ex := x.NewExtractor(doc, table, x.Env{}, nil)

	assert.Equal(t, "primary"+x.SupplementSeparator+"Make HONDA", doc.Content())
	assert.Equal(t, "HONDA", ex.Resolve(x.NewCache(), x.FieldMake))
}
