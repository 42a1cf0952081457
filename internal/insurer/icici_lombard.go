package insurer

import (
	"github.com/dlclark/regexp2"

	"policyparser/internal/domain"
	x "policyparser/internal/extract"
)

// registrationPattern matches the registration formats printed by ICICI Lombard.
const registrationPattern = `(NEW|[A-Z]{2}[- ]?[0-9]{1,2}[- ]?[A-Z]+[- ]?[0-9]{1,4}|[A-Z]{2}[ -]?[A-Z0-9]{1,2}[- ]?[0-9]{1,4})`

// fromRTOLocation builds a formula that searches a pattern anchored on the RTO location value.
// Layout text often prints the registration number, make and model right next to it.
func fromRTOLocation(build func(rto string) string) *x.Formula {
	return &x.Formula{
		Deps: []x.Field{x.FieldRTOLocation},
		Eval: func(in *x.Inputs) (string, error) {
			rto := in.Get(x.FieldRTOLocation)
			if rto == "" {
				return "", nil
			}
			return in.Search(build(regexp2.Escape(rto)), reM|reI)
		},
	}
}

// ICICI Lombard documents are read twice; the layout-preserving text is appended. Besides the
// shared fallbacks:
//
//	registration_number -> rto_location
//	make                -> rto_location
//	model               -> rto_location
//	taxes               -> total_premium, tax_rate
//	net_premium         -> total_premium, taxes
//
// state -> registration_number -> rto_location keeps the graph acyclic.
var iciciLombardTable = x.MustTable(withCommon(map[x.Field]x.FieldRules{
	x.FieldCustomerName: {Rules: []x.Rule{
		rule(`Insured\s*Name[\s :]*([\w\.\/\d \t]+?)Policy`, 0),
		rule(`Name\s*Of\s*the\s*Insured[\s :]*([\w\.\/\d \t]+?)Policy`, 0),
		rule(`Dear\s*([\w\.\/\d \t]+),`, 0),
	}},
	x.FieldAddress: {Rules: []x.Rule{
		rule(`Address\s*Partner\s*Code\s*(.+?)CB69117`, reM|reI|reS),
		rule(`(?<!Branch )(?<!Email )Address\s*:\s*(.+?)(?:Tenure|Period)`, reM|reI|reS),
		rule(`(?<!Branch )(?<!Email )Address\s*(.+?)(?:Policy)`, reM|reI|reS),
	}},
	x.FieldCity: {Rules: []x.Rule{
		rule(`RTO\s*Location[:\s]*[\w ]+-([\w ]+)`, reM|reI),
	}},
	x.FieldState: {Rules: []x.Rule{
		rule(`RTO\s*Location[:\s]*([\w ]+)-`, reM|reI),
	}},
	x.FieldMobile: {Rules: []x.Rule{
		rule(`Mobile\s*No[\s:]*([\d]+)`, reM|reI|reS),
		rule(`Mobile\s*Number[\s:]*([\d]+)`, reM|reI|reS),
	}},
	x.FieldRTOLocation: {Rules: []x.Rule{
		rule(`RTO\s*Location\s*:([\-\w ]+)`, reM|reI),
	}},
	x.FieldRegistrationNo: {
		Rules: []x.Rule{
			rule(`Registration\s*(?:No|Number)[\.\s:]*`+registrationPattern, reM|reI|reS),
		},
		Formula: fromRTOLocation(func(rto string) string { return rto + `\s*` + registrationPattern }),
	},
	x.FieldMake: {
		Rules: []x.Rule{
			rule(`Make\s*([ \w\&]+)\s*Trailer`, reM|reI|reS),
		},
		Formula: fromRTOLocation(func(rto string) string { return `^([\w\&\d\. ]+)/[\w\&\d\. \/]+\s*` + rto }),
	},
	x.FieldModel: {
		Rules: []x.Rule{
			rule(`Model\s*([ \d\w\.\-\*\(\)/\+]+)\s*Non`, reM|reI|reS),
		},
		Formula: fromRTOLocation(func(rto string) string { return `/([\w\&\d\. \/]+)\s*` + rto }),
	},
	x.FieldBodyType: {Rules: []x.Rule{
		rule(`Type\s*of\s*Body\s*(\w+)\s*Mfg\s*Yr`, reM|reI),
	}},
	x.FieldYearOfManufacture: {Rules: []x.Rule{
		rule(`(?:Open|Closed|Pillion|Hatchback|Saloon|Sedan)\s*\d+\s*(\d+)`, reM|reI),
	}},
	x.FieldNCB: {Rules: []x.Rule{
		rule(`No\s*Claims?\s*Bonus[:\s]*([\.\d]+)\s*\%`, reM|reI),
	}},
	x.FieldPolicyIssueDate: {Rules: []x.Rule{
		rule(`Policy\s*Issued\s*On\s*: *([ ,\w\d]+)`, reM|reI),
	}},
	x.FieldStartDate: {Rules: []x.Rule{
		rule(`(\w+ *\d+, *\d+)\s*[:\d]+\s*to\s*midnight\s*of`, reM|reI),
	}},
	x.FieldEndDate: {Rules: []x.Rule{
		rule(`to\s*midnight\s*of\s*([ ,\w\d]+)`, reM|reI),
	}},
	x.FieldPolicyNumber: {Rules: []x.Rule{
		rule(`Enclosed\s*Policy\s*No[\.:\s]*([\d\w/]+)`, reM|reI),
	}},
	x.FieldPolicyType: {Formula: policyTypeFromProbes([]policyTypeProbe{
		{rule: rule(`Two\s*Wheeler\s*Vehicles[\w\s]*Policy`, reI), label: PolicyTwoWheeler},
		{rule: rule(`Two\s*wheeler\s*Insurance\s*Policy`, reI), label: PolicyTwoWheeler},
		{rule: rule(`Private\s*Car\s*Package\s*Policy`, reI), label: PolicyPrivateCar},
		{rule: rule(`Private\s*Car\s*Liability\s*Policy`, reI), label: PolicyLiability},
		{rule: rule(`Stand-Alone\s*Own\s*Damage\s*Private\s*Car\s*Insurance\s*Policy`, 0), label: PolicyStandaloneOD},
		{rule: rule(`Goods\s*Carrying\s*Vehicles[\w\s]*Policy`, reI), label: PolicyGCV},
		{rule: rule(`Miscellaneous\s*Vehicles[\w\s]*Policy`, reI), label: PolicyMisc},
		{rule: rule(`Passenger\s*Carrying\s*Vehicles[\w\s]*Policy`, reI), label: PolicyPCV},
	})},
	x.FieldSumInsured: {Rules: []x.Rule{
		rule("Total\\s*IDV *\\(`\\)\\s*([\\d\\.,]+)", reM|reI|reS),
		rule(`Total\s*IDV\s*.+?([\d\.,]+)\s*Premium\s*Details`, reM|reI|reS),
	}},
	x.FieldODPremium: {Rules: []x.Rule{
		rule(`Total\s*Own\s*Damage\s*Premium\s*\([\w\+]+\)[:\s]*([\d\.,]+)`, reM|reI),
	}},
	x.FieldTPPremium: {Rules: []x.Rule{
		rule(`Total\s*Liability\s*Premium\s*(?:\([\w\+]+\))?[:\s]*([\d\.,]+)`, reM|reI),
	}},
	x.FieldNetPremium: {
		Rules: []x.Rule{
			rule(`Total\s*Package\s*Premium\s*\([\w\+]+\)[:\s]*([\d\.,]+)`, reM|reI),
		},
		Formula: netFromTotalAndTaxes,
	},
	x.FieldTotalPremium: {Rules: []x.Rule{
		rule("Total\\s*Premium\\s*Payable(?:\\s*in\\s*`\\s*)?[:\\s]*([\\d\\.,]+)", reM|reI),
	}},
	x.FieldTaxes: {
		Rules: []x.Rule{
			rule("Total\\s*Tax\\s*Payable\\s*in\\s*`[:\\s]*([\\d\\.,]+)", reM|reI),
		},
		Formula: taxesFromTotalAndRate,
	},
	x.FieldInsurerBranch: {Rules: []x.Rule{
		rule(`Policy\s*Issuing\s*Office\s*:\s*(.+?)(Warranted|Product|Agent)`, reS|reI),
	}},
	x.FieldReceiptNumber: {Rules: []x.Rule{
		rule(`Premium\s*Collection\s*No[\.\s:]+(\d+)`, reM|reI),
	}},
	x.FieldReceiptDate: {Rules: []x.Rule{
		rule(`Receipt\s*Date *([- ,\w\d]+)`, reM|reI),
	}},
	x.FieldPaymentAmount: {Rules: []x.Rule{
		rule("Premium\\s*Amount[`:\\s]*([\\d\\.,]+)Receipt", reM|reI),
	}},
}))

// ICICILombard is the ICICI Lombard profile.
var ICICILombard = x.Profile{
	Variant: domain.VariantICICILombard,
	Signatures: []x.Rule{
		rule(`Thank\s*you\s*for\s*choosing\s*ICICI\s*Lombard`, reI),
		rule(`We\s*value\s*your\s*relationship\s*with\s*ICICI\s*Lombard`, reI),
	},
	NeedsAlternate: true,
	Table:          iciciLombardTable,
}
