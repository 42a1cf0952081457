package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x "policyparser/internal/extract"
)

func dependsOn(deps ...x.Field) *x.Formula {
	return &x.Formula{Deps: deps, Eval: func(*x.Inputs) (string, error) { return "", nil }}
}

func TestNewTable_RejectsCycle(t *testing.T) {
	_, err := x.NewTable(map[x.Field]x.FieldRules{
		x.FieldNetPremium: {Formula: dependsOn(x.FieldTaxes)},
		x.FieldTaxes:      {Formula: dependsOn(x.FieldNetPremium)},
	})

	require.ErrorIs(t, err, x.ErrFormulaCycle)
	assert.Contains(t, err.Error(), "->")
}

func TestNewTable_RejectsSelfDependency(t *testing.T) {
	_, err := x.NewTable(map[x.Field]x.FieldRules{
		x.FieldState: {Formula: dependsOn(x.FieldState)},
	})

	assert.ErrorIs(t, err, x.ErrFormulaCycle)
}

func TestNewTable_AcceptsDiamond(t *testing.T) {
	table, err := x.NewTable(map[x.Field]x.FieldRules{
		x.FieldNetPremium: {Formula: dependsOn(x.FieldTotalPremium, x.FieldTaxes)},
		x.FieldTaxes:      {Formula: dependsOn(x.FieldTotalPremium, x.FieldTaxRate)},
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []x.Field{x.FieldTotalPremium, x.FieldTaxes}, table.Dependencies()[x.FieldNetPremium])
}

func TestNewTable_RejectsUnknownField(t *testing.T) {
	_, err := x.NewTable(map[x.Field]x.FieldRules{
		x.Field("colour"): {},
	})
	assert.Error(t, err)

	_, err = x.NewTable(map[x.Field]x.FieldRules{
		x.FieldState: {Formula: dependsOn(x.Field("colour"))},
	})
	assert.Error(t, err)
}

func TestMustTable_PanicsOnCycle(t *testing.T) {
	assert.Panics(t, func() {
		x.MustTable(map[x.Field]x.FieldRules{
			x.FieldMake:  {Formula: dependsOn(x.FieldModel)},
			x.FieldModel: {Formula: dependsOn(x.FieldMake)},
		})
	})
}

func TestTable_LookupNil(t *testing.T) {
	var table *x.Table
	assert.Empty(t, table.Lookup(x.FieldMake).Rules)
	assert.Empty(t, table.Dependencies())
}

func TestAllFields_Catalogue(t *testing.T) {
	seen := make(map[x.Field]bool)
	for _, f := range x.AllFields {
		assert.True(t, f.Known())
		assert.False(t, seen[f], "duplicate field %s", f)
		seen[f] = true
	}
	assert.False(t, x.Field("colour").Known())
	assert.True(t, x.FieldTotalPremium.Cacheable())
	assert.False(t, x.FieldCity.Cacheable())
	assert.Equal(t, x.KindMoney, x.FieldTaxes.Kind())
	assert.Equal(t, x.KindPercent, x.FieldTaxRate.Kind())
}
