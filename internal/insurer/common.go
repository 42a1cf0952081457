// Package insurer holds the rule tables, derived formulas and signatures of every supported
// insurer variant.
package insurer

import (
	"errors"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/shopspring/decimal"

	x "policyparser/internal/extract"
)

// DefaultTaxRate is the GST percentage assumed when a document states none.
const DefaultTaxRate = "18"

// Pattern option shorthands used by the rule tables.
const (
	reI = x.IgnoreCase
	reM = x.Multiline
	reS = x.DotAll
)

var errZeroTaxBase = errors.New("tax rate makes the gross-up base zero")

// stateByRegistrationPrefix maps the two-letter registration prefix to its state or territory.
var stateByRegistrationPrefix = map[string]string{
	"AN": "Andaman and Nicobar",
	"AP": "Andhra Pradesh",
	"AR": "Arunachal Pradesh",
	"AS": "Assam",
	"BR": "Bihar",
	"CH": "Chandigarh",
	"DN": "Dadra and Nagar Haveli",
	"DD": "Daman and Diu",
	"DL": "Delhi",
	"GA": "Goa",
	"GJ": "Gujarat",
	"HR": "Haryana",
	"HP": "Himachal Pradesh",
	"JK": "Jammu and Kashmir",
	"JH": "Jharkhand",
	"KA": "Karnataka",
	"KL": "Kerala",
	"LD": "Lakshadweep",
	"MP": "Madhya Pradesh",
	"MH": "Maharashtra",
	"MN": "Manipur",
	"ML": "Meghalaya",
	"MZ": "Mizoram",
	"NL": "Nagaland",
	"OR": "Orissa",
	"OD": "Odisha",
	"PY": "Pondicherry",
	"PN": "Punjab",
	"RJ": "Rajasthan",
	"SK": "Sikkim",
	"TN": "Tamil Nadu",
	"TR": "Tripura",
	"UP": "Uttar Pradesh",
	"WB": "West Bengal",
}

// StateForRegistration returns the state encoded in a registration number's first two
// characters, or "" when the prefix is not a known code.
func StateForRegistration(regNo string) string {
	if len(regNo) < 2 {
		return ""
	}
	return stateByRegistrationPrefix[strings.ToUpper(regNo[:2])]
}

func rule(pattern string, opts regexp2.RegexOptions) x.Rule {
	return x.MustRule(pattern, opts)
}

// Formulas shared by every variant.
//
// Dependency graph (edges point from a derived field to its inputs):
//
//	state          -> registration_number
//	customer_type  -> customer_name
//	tax_rate       -> (none)
//	received_date  -> (run processing date)
//	policy_type    -> policy_number
//
// Variant-specific additions are documented next to each table.
var (
	stateFromRegistration = &x.Formula{
		Deps: []x.Field{x.FieldRegistrationNo},
		Eval: func(in *x.Inputs) (string, error) {
			return StateForRegistration(in.Get(x.FieldRegistrationNo)), nil
		},
	}

	customerTypeFromName = &x.Formula{
		Deps: []x.Field{x.FieldCustomerName},
		Eval: func(in *x.Inputs) (string, error) {
			name := strings.ToLower(in.Get(x.FieldCustomerName))
			for _, marker := range []string{"m/s", "llp", "ltd"} {
				if strings.Contains(name, marker) {
					return "corporate", nil
				}
			}
			return "individual", nil
		},
	}

	defaultTaxRate = &x.Formula{
		Eval: func(*x.Inputs) (string, error) { return DefaultTaxRate, nil },
	}

	receivedOnProcessingDate = &x.Formula{
		Eval: func(in *x.Inputs) (string, error) {
			d := in.Env().ProcessingDate
			if d.IsZero() {
				return "", nil
			}
			return d.Format("02/01/2006"), nil
		},
	}
)

// netFromTotalAndTaxes derives net premium as total premium minus taxes.
var netFromTotalAndTaxes = &x.Formula{
	Deps: []x.Field{x.FieldTotalPremium, x.FieldTaxes},
	Eval: func(in *x.Inputs) (string, error) {
		total, taxes := in.Get(x.FieldTotalPremium), in.Get(x.FieldTaxes)
		if total == "" || taxes == "" {
			return "", nil
		}
		t, err := x.ParseAmount(total)
		if err != nil {
			return "", err
		}
		tax, err := x.ParseAmount(taxes)
		if err != nil {
			return "", err
		}
		return x.FormatAmount(t.Sub(tax)), nil
	},
}

// taxesFromTotalAndRate estimates the tax inside a tax-inclusive total:
// total - total*100/(100+rate), rounded half to even. It must not read net premium, whose own
// formula reads taxes.
var taxesFromTotalAndRate = &x.Formula{
	Deps: []x.Field{x.FieldTotalPremium, x.FieldTaxRate},
	Eval: func(in *x.Inputs) (string, error) {
		total := in.Get(x.FieldTotalPremium)
		if total == "" {
			return "", nil
		}
		t, err := x.ParseAmount(total)
		if err != nil {
			return "", err
		}
		rate, err := x.ParseAmount(in.Get(x.FieldTaxRate))
		if err != nil {
			return "", err
		}
		hundred := decimal.NewFromInt(100)
		base := hundred.Add(rate)
		if base.IsZero() {
			return "", errZeroTaxBase
		}
		net := t.Mul(hundred).Div(base)
		return t.Sub(net).RoundBank(0).StringFixed(0), nil
	},
}

// copyOf resolves to another field's value.
func copyOf(f x.Field) *x.Formula {
	return &x.Formula{
		Deps: []x.Field{f},
		Eval: func(in *x.Inputs) (string, error) { return in.Get(f), nil },
	}
}

// policyTypeProbe maps a boilerplate phrase to a SAIBA policy type label. When
// policyNumberContains is set the probe also requires that substring in the policy number.
type policyTypeProbe struct {
	rule                 x.Rule
	label                string
	policyNumberContains string
}

// Policy type labels used by the SAIBA upload.
const (
	PolicyTwoWheeler   = "Motor Two Wheeler Policy"
	PolicyPrivateCar   = "Motor Private Car Package Policy"
	PolicyLiability    = "Motor Liability Policy"
	PolicyStandaloneOD = "Motor Standalone OD Policy"
	PolicyGCV          = "Motor GCV Policy"
	PolicyMisc         = "Motor Misc Policy"
	PolicyPCV          = "Motor PCV Policy"
)

// policyTypeFromProbes returns the label of the first matching probe.
func policyTypeFromProbes(probes []policyTypeProbe) *x.Formula {
	return &x.Formula{
		Deps: []x.Field{x.FieldPolicyNumber},
		Eval: func(in *x.Inputs) (string, error) {
			for _, p := range probes {
				ok, err := in.Matches(p.rule)
				if err != nil {
					return "", err
				}
				if !ok {
					continue
				}
				if p.policyNumberContains != "" && !strings.Contains(in.Get(x.FieldPolicyNumber), p.policyNumberContains) {
					continue
				}
				return p.label, nil
			}
			return "", nil
		},
	}
}

// receiptPlaceholders are table captions that some layouts place where a receipt number
// would be.
var receiptPlaceholders = []string{"reference", "receipt"}

// withCommon adds the shared fallbacks to a variant's field map without overriding anything
// the variant declares itself.
func withCommon(fields map[x.Field]x.FieldRules) map[x.Field]x.FieldRules {
	common := map[x.Field]*x.Formula{
		x.FieldState:        stateFromRegistration,
		x.FieldCustomerType: customerTypeFromName,
		x.FieldTaxRate:      defaultTaxRate,
		x.FieldReceivedDate: receivedOnProcessingDate,
	}
	for f, fm := range common {
		fr := fields[f]
		if fr.Formula == nil {
			fr.Formula = fm
		}
		fields[f] = fr
	}
	return fields
}
