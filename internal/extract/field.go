package extract

// Field names one logical unit of information extracted from a policy document.
type Field string

const (
	FieldCustomerName      Field = "customer_name"
	FieldAddress           Field = "address"
	FieldCity              Field = "city"
	FieldState             Field = "state"
	FieldMobile            Field = "mobile_number"
	FieldRegistrationNo    Field = "registration_number"
	FieldMake              Field = "make"
	FieldModel             Field = "model"
	FieldVariant           Field = "variant"
	FieldYearOfManufacture Field = "year_of_manufacture"
	FieldNCB               Field = "ncb"
	FieldStartDate         Field = "start_date"
	FieldEndDate           Field = "end_date"
	FieldPolicyNumber      Field = "policy_number"
	FieldPolicyType        Field = "policy_type"
	FieldSumInsured        Field = "sum_insured"
	FieldBasicODPremium    Field = "basic_od_premium"
	FieldODPremium         Field = "od_premium"
	FieldTPPremium         Field = "tp_premium"
	FieldNetPremium        Field = "net_premium"
	FieldTotalPremium      Field = "total_premium"
	FieldTaxes             Field = "taxes"
	FieldTaxRate           Field = "tax_rate"
	FieldPOSPIdentifier    Field = "posp_identifier"
	FieldReceiptNumber     Field = "receipt_number"
	FieldReceiptDate       Field = "receipt_date"
	FieldPolicyIssueDate   Field = "policy_issue_date"
	FieldPaymentMode       Field = "payment_mode"
	FieldPaymentAmount     Field = "payment_amount"
	FieldInsurerBranch     Field = "insurer_branch"
	FieldCustomerType      Field = "customer_type"
	FieldBodyType          Field = "body_type"
	FieldRTOLocation       Field = "rto_location"
	FieldReceivedDate      Field = "received_date"
)

// Kind selects the normalization applied to a rule capture.
type Kind int

const (
	// KindText keeps the trimmed capture.
	KindText Kind = iota
	// KindMoney strips thousands separators and rounds to the nearest whole unit.
	KindMoney
	// KindInteger strips thousands separators and truncates the fraction.
	KindInteger
	// KindPercent keeps the decimal value in canonical form ("18.00" -> "18").
	KindPercent
)

type fieldInfo struct {
	kind      Kind
	cacheable bool
}

// catalog declares every Field. Order of AllFields follows this list.
var catalog = []struct {
	field Field
	info  fieldInfo
}{
	{FieldCustomerName, fieldInfo{KindText, false}},
	{FieldAddress, fieldInfo{KindText, false}},
	{FieldCity, fieldInfo{KindText, false}},
	{FieldState, fieldInfo{KindText, true}},
	{FieldMobile, fieldInfo{KindText, true}},
	{FieldRegistrationNo, fieldInfo{KindText, true}},
	{FieldMake, fieldInfo{KindText, true}},
	{FieldModel, fieldInfo{KindText, true}},
	{FieldVariant, fieldInfo{KindText, false}},
	{FieldYearOfManufacture, fieldInfo{KindText, true}},
	{FieldNCB, fieldInfo{KindInteger, false}},
	{FieldStartDate, fieldInfo{KindText, false}},
	{FieldEndDate, fieldInfo{KindText, false}},
	{FieldPolicyNumber, fieldInfo{KindText, true}},
	{FieldPolicyType, fieldInfo{KindText, true}},
	{FieldSumInsured, fieldInfo{KindMoney, false}},
	{FieldBasicODPremium, fieldInfo{KindMoney, false}},
	{FieldODPremium, fieldInfo{KindMoney, false}},
	{FieldTPPremium, fieldInfo{KindMoney, false}},
	{FieldNetPremium, fieldInfo{KindMoney, true}},
	{FieldTotalPremium, fieldInfo{KindMoney, true}},
	{FieldTaxes, fieldInfo{KindMoney, true}},
	{FieldTaxRate, fieldInfo{KindPercent, true}},
	{FieldPOSPIdentifier, fieldInfo{KindText, true}},
	{FieldReceiptNumber, fieldInfo{KindText, false}},
	{FieldReceiptDate, fieldInfo{KindText, true}},
	{FieldPolicyIssueDate, fieldInfo{KindText, false}},
	{FieldPaymentMode, fieldInfo{KindText, false}},
	{FieldPaymentAmount, fieldInfo{KindText, false}},
	{FieldInsurerBranch, fieldInfo{KindText, false}},
	{FieldCustomerType, fieldInfo{KindText, true}},
	{FieldBodyType, fieldInfo{KindText, false}},
	{FieldRTOLocation, fieldInfo{KindText, true}},
	{FieldReceivedDate, fieldInfo{KindText, true}},
}

var (
	fieldIndex = make(map[Field]fieldInfo, len(catalog))
	// AllFields lists every declared Field in catalog order.
	AllFields = make([]Field, 0, len(catalog))
)

func init() {
	for _, c := range catalog {
		fieldIndex[c.field] = c.info
		AllFields = append(AllFields, c.field)
	}
}

// Known reports whether f is a declared Field.
func (f Field) Known() bool {
	_, ok := fieldIndex[f]
	return ok
}

// Kind returns the normalization kind of f.
func (f Field) Kind() Kind {
	return fieldIndex[f].kind
}

// Cacheable reports whether a resolved value of f is memoized per document.
func (f Field) Cacheable() bool {
	return fieldIndex[f].cacheable
}

// Values holds the resolved value of every Field for one document.
type Values map[Field]string

// Get returns the value of f, or "" when absent.
func (v Values) Get(f Field) string {
	return v[f]
}

// Strings converts Values to a plain map keyed by field name.
func (v Values) Strings() map[string]string {
	out := make(map[string]string, len(v))
	for f, s := range v {
		out[string(f)] = s
	}
	return out
}
