package extract

import "policyparser/internal/domain"

// Profile is everything the engine knows about one variant.
type Profile struct {
	Variant domain.Variant
	// Signatures identify the variant's boilerplate; any one matching selects it.
	Signatures []Rule
	// NeedsAlternate requests the layout-preserving text as a supplement before extraction.
	NeedsAlternate bool
	Table          *Table
}

// UnknownProfile is selected when no signature matches. Its nil Table resolves every Field to "".
var UnknownProfile = Profile{Variant: domain.VariantUnknown}

// Classifier selects a Profile from document text. Profiles are probed in the order given and
// the first whose signature matches wins.
type Classifier struct {
	profiles []Profile
}

// NewClassifier builds a Classifier over profiles in priority order.
func NewClassifier(profiles ...Profile) *Classifier {
	return &Classifier{profiles: append([]Profile(nil), profiles...)}
}

// Classify returns the first matching profile, or UnknownProfile. A signature that cannot be
// evaluated counts as not matching.
func (c *Classifier) Classify(text string) Profile {
	for _, p := range c.profiles {
		for _, sig := range p.Signatures {
			if ok, err := sig.Matches(text); err == nil && ok {
				return p
			}
		}
	}
	return UnknownProfile
}

// Profiles returns the profiles in priority order.
func (c *Classifier) Profiles() []Profile {
	return append([]Profile(nil), c.profiles...)
}
