package insurer

import (
	"policyparser/internal/domain"
	x "policyparser/internal/extract"
)

// SBI General documents. Besides the shared fallbacks:
//
//	net_premium       -> total_premium, taxes
//	policy_issue_date -> receipt_date
var sbiTable = x.MustTable(withCommon(map[x.Field]x.FieldRules{
	x.FieldCustomerName: {Rules: []x.Rule{
		rule(`Insured Name\s*:\s*([\w\.\d \t]+)`, 0),
		rule(`Details of Policy Holder:\s*Name:\s*(\w[\w\.\d \t]+)`, 0),
		rule(`^[\w\d\w]*Insured Name\s*([\w\.\d \t]+?)NCB`, reM|reI),
		rule(`Policy\s*Holder\s*Name[\s:\.]*([\w\.\d \t]+)`, 0),
	}},
	x.FieldAddress: {Rules: []x.Rule{
		rule(`Address\s*:\s*(.+?)Customer Contact`, reM|reI|reS),
		rule(`Details\s*of\s*Policy\s*Holder.+Address\s*:\s*(.+?)Policy\s*Holder\s*State`, reM|reI|reS),
		rule(`Proposer\s*Address[:\s]*(.+?)Proposer Contact Number`, reM|reI|reS),
	}},
	x.FieldCity: {Rules: []x.Rule{
		rule(`RTO\s*Location\s*Name\s*(\w+)Insured`, reI),
		rule(`RTO\s*Location\s*Name\s*(\w+)`, 0),
		rule(`RTO\s*Location\s+(\w+)`, 0),
	}},
	x.FieldState: {Rules: []x.Rule{
		rule(`Policy\s*Holder\s*State([\s\w]+)Place`, reM|reI|reS),
		rule(`Policy\s*Holder\s*State([\s\w]+)GSTIN`, reM|reI|reS),
	}},
	x.FieldMobile: {Rules: []x.Rule{
		rule(`Contact\s*Details\s*:?\s*(?:\+91)?(?:-)?(\d+)`, reM|reI|reS),
		rule(`Proposer\s*Contact\s*Number\s*:?\s*(?:\+91)?(?:-)?(\d+)`, reM|reI|reS),
	}},
	x.FieldRegistrationNo: {Rules: []x.Rule{
		rule(`Registration\s*Number[\s:]*(NEW)`, reM|reI|reS),
		rule(`Registration\s*Number[\s:]*([A-Z]{2}[- ]?[0-9]{1,2}[- ]?[A-Z]+[- ]?[0-9]{1,4})`, reM|reI|reS),
		rule(`Registration\s*Number[\s:]*([A-Z]{2}[ -]?[0-9]{1,2}[- ]?[0-9]{1,4})`, reM|reI|reS),
		// Delhi series such as DL-9S-AB-1234.
		rule(`Registration\s*Number[\s:]*(DL[- ]?[A-Z0-9]{1,2}[- ]?[A-Z]+[- ]?[0-9]{1,4})`, reM|reI|reS),
	}},
	x.FieldMake: {Rules: []x.Rule{
		rule(`^Make of vehicle([ \w\&]+)$`, reM|reI),
		rule(`Make of vehicle([\s\w\&]+?)Model`, reM|reI),
		rule(`^Make([\s\w\&]+)Vehicle`, reM|reI|reS),
		rule(`Make ?\& ?Model\s*([ \w\&]+)[, ]+[ \d\w\.\-\*]+?\s*Trailer`, reM|reI|reS),
		rule(`Make([\s\w\.\&]+?)Model`, reM|reI|reS),
		rule(`Make([\s\w\&]+?)Trailer`, reM|reI|reS),
		rule(`^Make([\s\w\&]+)$`, reM|reI|reS),
		rule(`^Vehicle\s*Make\s*([\s\w\&]+?)$`, reM|reI),
	}},
	x.FieldModel: {Rules: []x.Rule{
		rule(`Model *\& *Variant\s*([ \d\w]+)\&+[ \d\w\.\-\*]+$`, reM|reI),
		rule(`Model *\& *Variant\s*([ \d\w]+)-+[ \d\w\.\-\*]+\s*(Year|Trailer)`, reM|reI),
		rule(`Model *\& *Variant\s*([ \d\w\.\-\*]+)\s*(Year|Trailer)`, reM|reI),
		rule(`Make ?\& ?Model\s*[ \w\&]+[, ]+([\s\d\w\.\-\*]+?)\s*Trailer`, reM|reI|reS),
		rule(`Model([\s\d\w]+)Vehicle\s*Variant`, reM|reI),
		rule(`Model([\s\d\w]+)Variant`, reM|reI),
		rule(`Model *([ \d\w]+)`, reM|reI),
	}},
	x.FieldVariant: {Rules: []x.Rule{
		rule(`^Vehicle\s*Variant\s*([ \d\w\.\-]+)$`, reM|reI),
		rule(`Model *\& *Variant[ \d\w]+\&+([ \d\w\.\-\*]+)$`, reM|reI),
		rule(`Model *\& *Variant\s*[ \d\w]+-+([ \d\w\.\-\*]+)\s*(Year|Trailer)`, reM|reI),
		rule(`Model *\& *Variant\s*([ \d\w\.\-\*]+)\s*(Year|Trailer)`, reM|reI),
		rule(`Variant([\s\d\w\.\-\*]+?)Year`, reM|reI),
		rule(`Variant *([ \d\w\.\-]+)`, reM|reI),
	}},
	x.FieldYearOfManufacture: {Rules: []x.Rule{
		rule(`Year\s*of\s*Manufacture\s*(\d+)`, reM|reI),
		rule(`Year\s*of\s*Manufacturing\s*(\d+)`, reM|reI),
	}},
	x.FieldNCB: {Rules: []x.Rule{
		rule(`No\s*Claims?\s*Bonus[:\s%]*([\.\d]+)\s*\%`, reM|reI),
		rule(`No\s*Claims?\s*Bonus\s*\(NCB\)[:\s]*([\.\d]+)\%`, reM|reI),
	}},
	x.FieldStartDate: {Rules: []x.Rule{
		rule(`Period\s*of\s*Insurance[\s:]*From[:\s]+([\d\/]+)00:00\s*Hours\s*`, reM|reI),
		rule(`Period\s*of\s*Insurance[\s:]*From[:\s]+([\d\/]+)\s*`, reM|reI),
		rule(`Period\s*of\s*Insurance\s*for\s*Own\s*Damage\s*Cover[\s:]*From[:\s]*([\d\/]+)\s*`, reM|reI),
		rule(`Period\s*of\s*Insurance\s*OD[\s:]*From[:\s]+([\d\/]+)\s*`, reM|reI),
		rule(`(?<!Previous )(?<!Active )(?<!Active Liability Only )Policy\s*Start\s*Date[:\s]+([\d\/]+)\s*`, reM|reI),
	}},
	x.FieldEndDate: {Rules: []x.Rule{
		rule(`Period\s*of\s*Insurance[\s:]*From[:\s]*[T\s\(\)\d\/:]+\s*(?:hrs)?\s*to[:\s]*([\d\/]+)`, reM|reI),
		rule(`Period\s*of\s*Insurance\s*OD[\s:]*From[:\s]*[T\s\(\)\d\/:]+\s*(?:hrs)?\s*to[:\s]*([\d\/]+)`, reM|reI),
		rule(`Period\s*of\s*Insurance\s*for\s*Own\s*Damage\s*Cover[\s:]*From[:\s]*[T\s\(\)\d\/:]+\s*(?:hrs)?\s*to[:\s]*([\d\/]+)`, reM|reI),
		rule(`Period\s*of\s*Insurance[\s:]*From[:\s]*[T\s\(\)\d\/:]+\s*(?:hours)?\s*to\s*midnight\s*of[:\s]*([\d\/]+)`, reM|reI),
		rule(`(?<!Previous )(?<!Active )(?<!Active Liability Only )Policy\s*End\s*Date[:\s]+([\d\/]+)\s*`, reM|reI),
	}},
	x.FieldPolicyNumber: {Rules: []x.Rule{
		rule(`(?<!Previous )(?<!Active )(?<!Active Liability )Policy\s*Number[:\s]*([\d\w]+)`, reM|reI),
		rule(`Policy\s*No[\.: ]*([\d\w]{1,18})`, reM|reI),
		rule(`Policy\s*Number[:\s]*([\d\w]+)`, reM|reI),
	}},
	x.FieldPolicyType: {Formula: policyTypeFromProbes([]policyTypeProbe{
		{rule: rule(`Two[\s\-]*Wheeler\s*Insurance\s*Policy\s*-\s*Package`, reI|reM), label: PolicyTwoWheeler},
		{rule: rule(`BUNDLED\s*TWO[- ]WHEELER\s*INSURANCE\s*POLICY`, reI|reM), label: PolicyTwoWheeler},
		{rule: rule(`Stand-Alone Motor\s*(own)?\s*Damage Cover for Two[\s\-]*Wheeler`, reI|reM), label: PolicyTwoWheeler},
		{rule: rule(`TWO[\s\-]*WHEELER\s*LIABILITY\s*ONLY\s*POLICY`, reI|reM), label: PolicyTwoWheeler},
		{rule: rule(`Act\s*Only\s*Insurance\s*Policy`, reM), label: PolicyTwoWheeler, policyNumberContains: "POPM2W"},
		{rule: rule(`Private\s*Car\s*Insurance\s*Policy\s*-\s*Package`, reI|reM), label: PolicyPrivateCar},
		{rule: rule(`Act\s*Only\s*Insurance\s*Policy`, reI|reM), label: PolicyLiability, policyNumberContains: "POPMCAR"},
		{rule: rule(`Stand-Alone Motor own Damage Cover for Private Car`, reI|reM), label: PolicyStandaloneOD},
		{rule: rule(`PRIVATE\s*CAR\s*PACKAGE\s*POLICY`, reI|reM), label: PolicyPrivateCar},
		{rule: rule(`Private\s*Motor\s*4\s*wheeler`, reI|reM), label: PolicyPrivateCar},
		{rule: rule(`COMMERCIAL GOODS CARRYING`, reI|reM), label: PolicyGCV},
		{rule: rule(`Commercial Motor Miscellaneous Vehicles`, reI|reM), label: PolicyMisc},
		{rule: rule(`Commercial Motor Passenger Carrying`, reI|reM), label: PolicyPCV},
	})},
	x.FieldSumInsured: {Rules: []x.Rule{
		rule(`IDV[\s:]+([\d\.,]+)`, reM|reI),
		rule(`Insured Declared Value[\s:]+([\d\.,]+)`, reM|reI),
		// Goods carrying vehicles list IDV components before the total.
		rule(`Total IDV[\s:]*[\d\.,]+ +[\d\.,]+ +[\d\.,]+ +[\d\.,]+ +[\d\.,]+ +([\d\.,]+)`, reM|reI),
		rule(`Total IDV[\s:]+[\d\.,]+ +[\d\.,]+ +[\d\.,]+ +[\d\.,]+ +([\d\.,]+)`, reM|reI),
	}},
	x.FieldODPremium: {Rules: []x.Rule{
		rule(`Total\s*Own\s*Damage\s*Premium\s*(?:\(\w\))?[\s:]+([\d\.,]+)`, reM|reI),
		rule(`Total\s*Own\s*Damage\s*(?:\(\w\))?[\s:]+([\d\.,]+)`, reM|reI),
	}},
	x.FieldTPPremium: {Rules: []x.Rule{
		rule(`Total\s*Third\s*Party\s*Liability\s*Premium\s*(?:\(\w\))?[\s:]+([\d\.,]+)`, reM|reI),
		rule(`Total\s*Liability\s*Premium\s*(?:\(\w\))?[\s:]+([\d\.,]+)`, reM|reI),
		rule(`Total\s*Third\s*Party\s*(?:\(\w\))?[\s:]+([\d\.,]+)`, reM|reI),
	}},
	x.FieldNetPremium: {Formula: netFromTotalAndTaxes},
	x.FieldTotalPremium: {Rules: []x.Rule{
		rule(`Total\s*Premium\s*Collected\s*[\s:]+([\d\.,]+)`, reM|reI),
		rule(`Policy\s*premium\s*including\s*Tax[\s:]+([\d\.,]+)`, reM|reI),
		rule(`Final\s*Premium[\s:]+([\d\.,]+)`, reM|reI),
	}},
	x.FieldTaxes: {Rules: []x.Rule{
		rule(`Taxes\s*as\s*applicable[\s:]*([\d\.,]+)`, reM|reI),
		rule(`GST\s*Taxes[\s:]*([\d\.,]+)`, reM|reI),
		rule(`^Tax[\s:]*([\d\.,]+)`, reM|reI),
		rule(`Taxes\s*Applicable[\s:]*([\d\.,]+)`, reM|reI),
	}},
	x.FieldPOSPIdentifier: {Rules: []x.Rule{
		rule(`POSP\s*Agent\s*Pan/Aadhar\s*Card\s*:\s*([\d\w]+)`, reM|reI),
	}},
	x.FieldReceiptNumber: {
		Rules: []x.Rule{
			rule(`Receipt\s*No[\.\s:]+([\d\w]+)`, reM|reI),
			rule(`Receipt\s*Number[\.\s:]+([\d\w]+)`, reM|reI),
		},
		Reject: receiptPlaceholders,
	},
	x.FieldReceiptDate: {Rules: []x.Rule{
		rule(`Receipt\s*Date[:\s]*([\d\/]+)`, reM|reI),
	}},
	x.FieldPolicyIssueDate: {Formula: copyOf(x.FieldReceiptDate)},
	x.FieldPaymentMode: {Rules: []x.Rule{
		rule(`Received\s*with\s*thanks\s*from[\w\s]+an\s*amount\s*of\s*Rs\.?\s*\d+\s*(?:\([\w\s\-\.]+\))?\s*by\s*(EFT|ONLINE|INTERNETBANKING)`, reM|reI),
	}},
	x.FieldPaymentAmount: {Rules: []x.Rule{
		rule(`Received\s*with\s*thanks\s*from[\w\s]+an\s*amount\s*of\s*Rs\.?\s*(\d+)`, reM|reI),
	}},
	x.FieldInsurerBranch: {Rules: []x.Rule{
		rule(`Policy\s*Issuing\s*Office[\s:]*(.+?)Policy`, reS|reI),
		rule(`Policy\s*Servicing\s*Branch[\s:]*(.+?)$`, reM|reI),
	}},
}))

// SBI is the SBI General Insurance profile.
var SBI = x.Profile{
	Variant: domain.VariantSBI,
	Signatures: []x.Rule{
		rule(`Welcome\s*to\s*(the)?\s*SBI\s*General`, reI),
	},
	Table: sbiTable,
}
