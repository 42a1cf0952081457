package insurer

import (
	"policyparser/internal/domain"
	x "policyparser/internal/extract"
)

// Profiles returns every supported profile in classification priority order.
// Some signatures could match more than one insurer's boilerplate, so the order matters.
func Profiles() []x.Profile {
	return []x.Profile{SBI, NewIndia, ICICILombard}
}

// NewClassifier returns a classifier over Profiles.
func NewClassifier() *x.Classifier {
	return x.NewClassifier(Profiles()...)
}

// ProfileFor returns the profile of v, or the unknown profile.
func ProfileFor(v domain.Variant) x.Profile {
	for _, p := range Profiles() {
		if p.Variant == v {
			return p
		}
	}
	return x.UnknownProfile
}
