package insurer

import (
	"policyparser/internal/domain"
	x "policyparser/internal/extract"
)

// New India Assurance documents use only the shared fallbacks.
var newIndiaTable = x.MustTable(withCommon(map[x.Field]x.FieldRules{
	x.FieldCustomerName: {Rules: []x.Rule{
		rule(`Insured(?:'s)?\s*Name[\s:]+([\w\.\/\d \t]+)\s+Customer`, 0),
	}},
	x.FieldAddress: {Rules: []x.Rule{
		rule(`Insured(?:'s)?\s*Address[:\s]*(.+?)Contact Number`, reM|reI|reS),
	}},
	x.FieldCity: {Rules: []x.Rule{
		rule(`Name\s*of\s*registration\s*authority[:\s]*([ \w]+)`, reM|reI),
	}},
	// Masked numbers ("98XXXXXX10") are captured as-is; the report replaces them.
	x.FieldMobile: {Rules: []x.Rule{
		rule(`Contact\s*Number[\s:\/]*([X\d]+)`, reM|reI|reS),
	}},
	x.FieldRegistrationNo: {Rules: []x.Rule{
		rule(`Registration\s*(?:No|Number)[\.\s:]*(NEW)`, reM|reI|reS),
		rule(`Registration\s*(?:No|Number)[\.\s:]*([A-Z]{2}[- ]?[0-9]{1,2}[- ]?[A-Z]+[- ]?[0-9]{1,4})`, reM|reI|reS),
		rule(`Registration\s*(?:No|Number)[\.\s:]*([A-Z]{2}[ -]?[A-Z0-9]{1,2}[- ]?[0-9]{1,4})`, reM|reI|reS),
	}},
	x.FieldMake: {Rules: []x.Rule{
		rule(`Make\s*/\s*Model[\s:]*([ \w\&]+)`, reM|reI|reS),
	}},
	x.FieldModel: {Rules: []x.Rule{
		rule(`Make\s*/\s*Model[\s:]*[\s\w\&]+/\s*([ \d\w\.\-\*\(\)/\+]+)Variant`, reM|reI|reS),
		rule(`Make\s*/\s*Model[\s:]*[\s\w\&]+/\s*([ \d\w\.\-\*\(\)/\+]+)Registration`, reM|reI|reS),
	}},
	x.FieldVariant: {Rules: []x.Rule{
		rule(`Variant[\s:]*([ \d\w\.\-\+\(\)/]+)`, reM|reI),
	}},
	x.FieldYearOfManufacture: {Rules: []x.Rule{
		rule(`Year of Manufacture[:\s]*(\d+)`, reM|reI),
	}},
	x.FieldPolicyIssueDate: {Rules: []x.Rule{
		rule(`Date\s*of\s*Issue[\s:]*([\d\/]+)`, reM|reI),
	}},
	x.FieldStartDate: {Rules: []x.Rule{
		rule(`Period\s+of\s+cover[\s:]*([\d\/]+)`, reM|reI),
	}},
	x.FieldEndDate: {Rules: []x.Rule{
		rule(`Period\s*of\s*cover[\s:]*[\s\(\)\d\/:]*(?:PM|AM)?\s*to\s*([\d\/]+)`, reM|reI),
	}},
	x.FieldPolicyNumber: {Rules: []x.Rule{
		rule(`Policy\s*Number[:\s]*([\d\w]+)`, reM|reI),
		rule(`Policy\s*No[\.: ]*([\d\w]+)`, reM|reI),
	}},
	x.FieldPolicyType: {Formula: policyTypeFromProbes([]policyTypeProbe{
		{rule: rule(`Two\s*Wheeler\s*Package\s*Policy`, reI), label: PolicyTwoWheeler},
		{rule: rule(`Two\s*Wheeler\s*Liability\s*Policy`, reI), label: PolicyTwoWheeler},
		{rule: rule(`Two\s*Wheeler\s*Liability\s*Only\s*Policy`, reI), label: PolicyTwoWheeler},
		{rule: rule(`Private\s*Car\s*Package\s*Policy`, reI), label: PolicyPrivateCar},
		{rule: rule(`Private\s*Car\s*Liability\s*Policy`, reI), label: PolicyLiability},
		{rule: rule(`Private\s*Car\s*Liability\s*Only\s*Policy`, reI), label: PolicyLiability},
		{rule: rule(`A\s*-\s*Goods\s*Carrying`, reI), label: PolicyGCV},
		{rule: rule(`D\s*-\s*Misc\s*-\s*Special\s*Type`, reI), label: PolicyMisc},
		{rule: rule(`C\s*-\s*Passenger\s*Carrying`, reI), label: PolicyPCV},
	})},
	x.FieldSumInsured: {Rules: []x.Rule{
		rule(`INSURED DECLARED VALUE[^0-9]+(?:[\d\.,]+\s+){5}([\d\.,]+)`, reM|reI|reS),
		rule(`For\s*individual\s*covers\s*\(OD\)\s*in\s*RS[:\s]*([\d\.\,]+)`, reM|reI),
	}},
	x.FieldODPremium: {Rules: []x.Rule{
		rule(`Total\s*OD\s*Premium[\s:]+([\d\.,]+)`, reM|reI),
		rule(`Total\s*OD\s*Premium\s*\(Rs\)[\s:]+([\d\.,]+)`, reM|reI),
	}},
	x.FieldTPPremium: {Rules: []x.Rule{
		rule(`Total\s*TP\s*Premium[\s:]+([\d\.,]+)`, reM|reI),
		rule(`Total\s*TP\s*Premium\s*\(Rs\)[\s:]+([\d\.,]+)`, reM|reI),
	}},
	x.FieldNetPremium: {Rules: []x.Rule{
		rule(`Net\s*Premium\s*in\s*Rs[\s:]*([\d\.,]+)`, reM|reI),
		rule(`Net\s*Premium\s*\(Rs\)[\s:]*([\d\.,]+)`, reM|reI),
	}},
	x.FieldTotalPremium: {Rules: []x.Rule{
		rule(`Total\s*Payable\s*in\s*Rs[\s:]*([\d\.,]+)`, reM|reI),
		rule(`Total\s*Payable\s*\(Rs\)[\s:]*([\d\.,]+)`, reM|reI),
	}},
	x.FieldTaxes: {Rules: []x.Rule{
		rule(`GST\s*in\s*Rs[\s:]*([\d\.,]+)`, reM|reI),
		rule(`GST\s*\(Rs\)[\s:]*([\d\.,]+)`, reM|reI),
	}},
	x.FieldInsurerBranch: {Rules: []x.Rule{
		rule(`POLICY\s*ISSUING\s*OFFICE\s*:\s*(.+?)Phone`, reS|reI),
	}},
	x.FieldReceiptNumber: {
		Rules: []x.Rule{
			rule(`Receipt\s*Number[\.\s:]+([\s\d\w\-\/]+)Previous\s*Insurer`, reM|reI),
		},
		Reject: receiptPlaceholders,
	},
}))

// NewIndia is the New India Assurance profile.
var NewIndia = x.Profile{
	Variant: domain.VariantNewIndia,
	Signatures: []x.Rule{
		rule(`THE\s*NEW\s*INDIA\s*ASSURANCE\s*CO.\s*LTD.\s*\(Government\s*of\s*India\s*Undertaking\)`, reI),
	},
	Table: newIndiaTable,
}
