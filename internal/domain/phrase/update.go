package phrase

// Update carries a partial edit. Nil fields are left unchanged; the
// merged result is validated before it replaces the stored phrase.
type Update struct {
	PhraseStart *float64 `json:"phraseStart,omitempty"`
	PhraseEnd   *float64 `json:"phraseEnd,omitempty"`
	Complete    *bool    `json:"complete,omitempty"`
	Speed       *int     `json:"speed,omitempty"`
	PhraseName  *string  `json:"phraseName,omitempty"`
	Color       *string  `json:"color,omitempty"`
}

// Apply merges the update into a copy of p and validates the result.
// The receiver is never mutated on failure.
func (u Update) Apply(p AudioPhrase) (AudioPhrase, error) {
	if u.PhraseStart != nil {
		p.PhraseStart = *u.PhraseStart
	}
	if u.PhraseEnd != nil {
		p.PhraseEnd = *u.PhraseEnd
	}
	if u.Complete != nil {
		p.Complete = *u.Complete
	}
	if u.Speed != nil {
		p.Speed = *u.Speed
	}
	if u.PhraseName != nil {
		p.PhraseName = *u.PhraseName
	}
	if u.Color != nil {
		p.Color = *u.Color
	}

	if u.PhraseStart != nil || u.PhraseEnd != nil {
		if err := ValidateTiming(p.PhraseStart, p.PhraseEnd); err != nil {
			return AudioPhrase{}, err
		}
	}
	if p.Speed <= 0 {
		return AudioPhrase{}, ErrInvalidInput
	}
	return p, nil
}

// ValidateTiming checks the start >= 0 and end > start invariant.
func ValidateTiming(start, end float64) error {
	if start < 0 || end <= start {
		return ErrInvalidTiming
	}
	return nil
}
