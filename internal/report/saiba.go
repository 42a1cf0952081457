// Package report maps extraction results to SAIBA upload rows and writes report files.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"policyparser/internal/domain"
	x "policyparser/internal/extract"
	"policyparser/internal/textnorm"
)

// DefaultMobile replaces missing or masked mobile numbers.
const DefaultMobile = "8826294213"

// OutputDateLayout is the SAIBA date format (mm/dd/yyyy).
const OutputDateLayout = "01/02/2006"

// dateLayouts are tried in order when reformatting an extracted date.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2-Jan-2006",
	"2-January-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan, 2006",
	"2 January, 2006",
	"2006-01-02",
}

// BranchLookup resolves an insurer branch address to its SAIBA branch code.
type BranchLookup interface {
	Lookup(insurer, branch string) (string, error)
}

// Record is one report row keyed by column header.
type Record map[string]string

// Values returns the record's cells in headers order; absent columns are empty.
func (r Record) Values(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = r[h]
	}
	return out
}

// Mapper converts successful extraction results into SAIBA rows.
type Mapper struct {
	branches       BranchLookup
	processingDate time.Time
	defaultMobile  string
}

// NewMapper creates a Mapper. An empty defaultMobile selects DefaultMobile.
func NewMapper(branches BranchLookup, processingDate time.Time, defaultMobile string) *Mapper {
	if defaultMobile == "" {
		defaultMobile = DefaultMobile
	}
	return &Mapper{branches: branches, processingDate: processingDate, defaultMobile: defaultMobile}
}

// BuildRow maps the values of a successfully processed document to a SAIBA row with sequence
// number sno. It fails only when the branch master has no entries for the document's insurer.
func (m *Mapper) BuildRow(variant domain.Variant, file string, v x.Values, sno int) (Record, error) {
	get := v.Get
	clean := func(f x.Field) string { return textnorm.CleanValue(get(f)) }
	or := func(s, def string) string {
		if s == "" {
			return def
		}
		return s
	}
	insurerName := variant.DisplayName()

	branchCode := ""
	if m.branches != nil {
		code, err := m.branches.Lookup(insurerName, get(x.FieldInsurerBranch))
		if err != nil {
			return nil, fmt.Errorf("report.Mapper.BuildRow %s: %w", file, err)
		}
		branchCode = code
	}

	corporate := get(x.FieldCustomerType) == "corporate"
	receiptFirst := FormatDate(or(get(x.FieldReceiptDate), get(x.FieldPolicyIssueDate)))
	received := FormatDate(get(x.FieldReceivedDate))
	if received == "" && !m.processingDate.IsZero() {
		received = m.processingDate.Format(OutputDateLayout)
	}

	r := make(Record, len(Headers))
	for k, val := range constants {
		r[k] = val
	}

	r["Sno"] = strconv.Itoa(sno)
	r["CustName"] = textnorm.CleanValue(strings.ReplaceAll(clean(x.FieldCustomerName), ".", " "))
	r["Address"] = clean(x.FieldAddress)
	r["MobileNo"] = FormatMobile(get(x.FieldMobile), m.defaultMobile)
	r["City"] = clean(x.FieldCity)
	r["State"] = clean(x.FieldState)
	r["Ref/POS/MISP"] = pick(get(x.FieldPOSPIdentifier) != "", "POS", "Ref")
	r["InsurerSAIBA"] = insurerName
	r["InsurerBranchAutoCodeSAIBA"] = branchCode
	r["PolicyTypeSAIBA"] = get(x.FieldPolicyType)
	r["VehicleNo"] = get(x.FieldRegistrationNo)
	r["Make"] = clean(x.FieldMake)
	r["Model"] = clean(x.FieldModel)
	r["Variant"] = clean(x.FieldVariant)
	r["YearofMan"] = clean(x.FieldYearOfManufacture)
	r["NCB"] = or(clean(x.FieldNCB), "0")
	r["ODD"] = or(get(x.FieldODPremium), "0")
	r["StartDate"] = FormatDate(get(x.FieldStartDate))
	r["ExpiryDate"] = FormatDate(get(x.FieldEndDate))
	r["PolicyNo"] = clean(x.FieldPolicyNumber)
	r["PolicyIssueDate"] = FormatDate(or(get(x.FieldPolicyIssueDate), get(x.FieldReceiptDate)))
	r["SumInsured"] = or(get(x.FieldSumInsured), "0")
	r["ODNetPremium"] = or(get(x.FieldODPremium), "0")
	r["Tp/Terroisem Prem"] = or(get(x.FieldTPPremium), "0")
	r["GST/TaxAmount"] = or(get(x.FieldTaxes), "0")
	r["GrossPrem"] = get(x.FieldTotalPremium)
	r["TranAmt"] = clean(x.FieldNetPremium)
	r["TranDated"] = receiptFirst
	r["GST/TaxRate"] = clean(x.FieldTaxRate)
	r["ReceiptNo"] = clean(x.FieldReceiptNumber)
	r["PremiumReceiptNo"] = clean(x.FieldReceiptNumber)
	r["PremiumReceiptDate"] = receiptFirst
	r["VerticalType"] = pick(corporate, "Corporate", "Retail")
	r["BusinessType"] = pick(corporate, "Business", "Service")
	r["OrgType"] = get(x.FieldCustomerType)
	r["PolicyReceiveDate"] = received
	r["BusPropDate"] = received
	r["file"] = file
	return r, nil
}

// ErrorRow renders an error record in ErrorHeaders order.
func ErrorRow(rec domain.ErrorRecord) []string {
	return []string{rec.File, rec.Reason, rec.Remarks}
}

// FormatDate reformats an extracted date to mm/dd/yyyy. Values that match no known layout are
// returned cleaned but otherwise unchanged.
func FormatDate(s string) string {
	cleaned := textnorm.CleanValue(s)
	if cleaned == "" {
		return ""
	}
	candidate := textnorm.CleanValue(strings.ReplaceAll(cleaned, ",", ", "))
	candidate = strings.ReplaceAll(candidate, " ,", ",")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format(OutputDateLayout)
		}
	}
	return cleaned
}

// FormatMobile returns the cleaned mobile number, or def when it is missing or masked.
func FormatMobile(s, def string) string {
	cleaned := textnorm.CleanValue(s)
	if cleaned == "" || strings.Contains(cleaned, "X") {
		return def
	}
	return cleaned
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
