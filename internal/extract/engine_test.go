package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"policyparser/internal/domain"
	x "policyparser/internal/extract"
	"policyparser/mocks"
)

var (
	acmeProfile = x.Profile{
		Variant:    domain.VariantSBI,
		Signatures: []x.Rule{x.MustRule(`Welcome to ACME`, x.IgnoreCase)},
		Table: x.MustTable(map[x.Field]x.FieldRules{
			x.FieldPolicyNumber: {Rules: []x.Rule{x.MustRule(`Policy No:\s*(\w+)`, 0)}},
		}),
	}
	layoutProfile = x.Profile{
		Variant:        domain.VariantICICILombard,
		Signatures:     []x.Rule{x.MustRule(`Layout Insurance`, 0)},
		NeedsAlternate: true,
		Table: x.MustTable(map[x.Field]x.FieldRules{
			x.FieldMake: {Rules: []x.Rule{x.MustRule(`Make\s+(\w+)`, 0)}},
		}),
	}
	// Matches the same boilerplate as acmeProfile; only reachable when listed first.
	greedyProfile = x.Profile{
		Variant:    domain.VariantNewIndia,
		Signatures: []x.Rule{x.MustRule(`ACME`, 0)},
	}
)

func TestClassifier_FirstMatchWins(t *testing.T) {
	text := "Welcome to ACME"

	assert.Equal(t, domain.VariantSBI, x.NewClassifier(acmeProfile, greedyProfile).Classify(text).Variant)
	assert.Equal(t, domain.VariantNewIndia, x.NewClassifier(greedyProfile, acmeProfile).Classify(text).Variant)
}

func TestClassifier_Unknown(t *testing.T) {
	c := x.NewClassifier(acmeProfile, layoutProfile)

	p := c.Classify("some other insurer")
	assert.Equal(t, domain.VariantUnknown, p.Variant)
	assert.Nil(t, p.Table)
	assert.Len(t, c.Profiles(), 2)
}

func newTestEngine(text *mocks.MockTextExtractor, enabled ...domain.Variant) *x.Engine {
	return x.NewEngine(x.NewClassifier(acmeProfile, layoutProfile), text, enabled, nil)
}

func TestEngine_Process_Success(t *testing.T) {
	text := new(mocks.MockTextExtractor)
	text.On("Extract", mock.Anything, "/in/a.pdf").Return("Welcome to ACME\nPolicy No: P123\x0c", nil)
	engine := newTestEngine(text, domain.VariantSBI)

	res := engine.Process(context.Background(), "/in/a.pdf", x.Env{})

	assert.Equal(t, domain.OutcomeSuccess, res.State)
	assert.Equal(t, "a.pdf", res.File)
	assert.Equal(t, domain.VariantSBI, res.Variant)
	assert.Equal(t, "P123", res.Values.Get(x.FieldPolicyNumber))
	assert.Empty(t, res.Document.Supplement)
	_, isErr := res.ErrorRecord()
	assert.False(t, isErr)
	text.AssertNotCalled(t, "ExtractAlternate", mock.Anything, mock.Anything)
}

func TestEngine_Process_InsurerDisabled(t *testing.T) {
	text := new(mocks.MockTextExtractor)
	text.On("Extract", mock.Anything, "b.pdf").Return("Welcome to ACME\nPolicy No: P9", nil)
	engine := newTestEngine(text, domain.VariantICICILombard)

	res := engine.Process(context.Background(), "b.pdf", x.Env{})

	assert.Equal(t, domain.OutcomeInsurerDisabled, res.State)
	assert.Equal(t, "P9", res.Values.Get(x.FieldPolicyNumber))
	rec, isErr := res.ErrorRecord()
	require.True(t, isErr)
	assert.Equal(t, domain.ErrorRecord{
		File:    "b.pdf",
		Reason:  domain.ReasonInsurerDisabled,
		Remarks: domain.VariantSBI.DisplayName(),
	}, rec)
}

func TestEngine_Process_UnidentifiedInsurer(t *testing.T) {
	text := new(mocks.MockTextExtractor)
	text.On("Extract", mock.Anything, "c.pdf").Return("Some other insurer", nil)
	engine := newTestEngine(text, domain.VariantSBI, domain.VariantICICILombard)

	res := engine.Process(context.Background(), "c.pdf", x.Env{})

	assert.Equal(t, domain.OutcomeUnidentifiedInsurer, res.State)
	assert.Equal(t, domain.VariantUnknown, res.Variant)
	rec, isErr := res.ErrorRecord()
	require.True(t, isErr)
	assert.Equal(t, domain.ReasonUnidentifiedInsurer, rec.Reason)
	assert.Empty(t, rec.Remarks)
}

func TestEngine_Process_ReadError(t *testing.T) {
	text := new(mocks.MockTextExtractor)
	text.On("Extract", mock.Anything, "/in/d.pdf").Return("", errors.New("file is damaged"))
	engine := newTestEngine(text, domain.VariantSBI)

	res := engine.Process(context.Background(), "/in/d.pdf", x.Env{})

	assert.Equal(t, domain.OutcomeReadError, res.State)
	var readErr *x.ReadError
	require.ErrorAs(t, res.Err, &readErr)
	assert.Equal(t, "/in/d.pdf", readErr.Path)
	rec, isErr := res.ErrorRecord()
	require.True(t, isErr)
	assert.Equal(t, "d.pdf", rec.File)
	assert.Equal(t, "Unable to read PDF. file is damaged.", rec.Reason)
}

func TestEngine_Process_AppendsAlternateText(t *testing.T) {
	text := new(mocks.MockTextExtractor)
	text.On("Extract", mock.Anything, "e.pdf").Return("Layout Insurance", nil)
	text.On("ExtractAlternate", mock.Anything, "e.pdf").Return("Make   HONDA", nil)
	engine := newTestEngine(text, domain.VariantICICILombard)

	res := engine.Process(context.Background(), "e.pdf", x.Env{})

	assert.Equal(t, domain.OutcomeSuccess, res.State)
	assert.Equal(t, "Make   HONDA", res.Document.Supplement)
	assert.Equal(t, "HONDA", res.Values.Get(x.FieldMake))
	text.AssertExpectations(t)
}

func TestEngine_Process_AlternateFailureIsReadError(t *testing.T) {
	text := new(mocks.MockTextExtractor)
	text.On("Extract", mock.Anything, "f.pdf").Return("Layout Insurance", nil)
	text.On("ExtractAlternate", mock.Anything, "f.pdf").Return("", errors.New("timeout"))
	engine := newTestEngine(text, domain.VariantICICILombard)

	res := engine.Process(context.Background(), "f.pdf", x.Env{})

	assert.Equal(t, domain.OutcomeReadError, res.State)
	assert.Equal(t, domain.VariantICICILombard, res.Variant)
}

func TestEngine_Enabled(t *testing.T) {
	engine := newTestEngine(new(mocks.MockTextExtractor), domain.VariantSBI)

	assert.True(t, engine.Enabled(domain.VariantSBI))
	assert.False(t, engine.Enabled(domain.VariantNewIndia))
}
