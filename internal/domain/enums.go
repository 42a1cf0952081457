package domain

import (
	"fmt"
	"strings"
)

// Variant identifies the insurer-specific document dialect that selects a rule table.
type Variant string

const (
	VariantSBI          Variant = "sbi"
	VariantNewIndia     Variant = "new_india"
	VariantICICILombard Variant = "icici_lombard"
	VariantUnknown      Variant = "unknown"
)

// KnownVariants lists every recognizable variant in classification priority order.
var KnownVariants = []Variant{VariantSBI, VariantNewIndia, VariantICICILombard}

// variantDisplayNames holds the insurer names used in SAIBA uploads and the branch master.
var variantDisplayNames = map[Variant]string{
	VariantSBI:          "SBI General Insurance Company Limited",
	VariantNewIndia:     "The New India Assurance Company Limited",
	VariantICICILombard: "ICICI Lombard General Insurance Company Limited",
	VariantUnknown:      "Not Available",
}

// DisplayName returns the insurer's registered company name.
func (v Variant) DisplayName() string {
	if name, ok := variantDisplayNames[v]; ok {
		return name
	}
	return variantDisplayNames[VariantUnknown]
}

// ParseVariant accepts a variant tag ("icici_lombard"), a loose spelling ("ICICI Lombard")
// or a display name.
func ParseVariant(s string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for _, v := range KnownVariants {
		if key == string(v) || strings.EqualFold(strings.TrimSpace(s), v.DisplayName()) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// OutcomeState is the terminal state of one document's processing.
type OutcomeState string

const (
	OutcomeSuccess             OutcomeState = "success"
	OutcomeInsurerDisabled     OutcomeState = "insurer_disabled"
	OutcomeUnidentifiedInsurer OutcomeState = "unidentified_insurer"
	OutcomeReadError           OutcomeState = "read_error"
)

// Reasons written to the error report.
const (
	ReasonUnidentifiedInsurer = "Unable to identify Insurer"
	ReasonInsurerDisabled     = "Insurer Disabled"
)

// RunStatus represents the lifecycle of a persisted batch run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)
