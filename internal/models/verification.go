package models

// VerificationReport compares an original document with its converted form.
// SignsFlipped is only set when inversion was requested, AmountsPreserved only
// when it was not.
type VerificationReport struct {
	RunID string `json:"run_id" yaml:"run_id"`

	TargetFID    string `json:"target_fid" yaml:"target_fid"`
	TargetBID    string `json:"target_bid" yaml:"target_bid"`
	OriginalFID  string `json:"original_fid" yaml:"original_fid"`
	ConvertedFID string `json:"converted_fid" yaml:"converted_fid"`
	OriginalBID  string `json:"original_bid" yaml:"original_bid"`
	ConvertedBID string `json:"converted_bid" yaml:"converted_bid"`
	FIDChanged   bool   `json:"fid_changed" yaml:"fid_changed"`
	BIDChanged   bool   `json:"bid_changed" yaml:"bid_changed"`

	OriginalTransactions  int  `json:"original_transactions" yaml:"original_transactions"`
	ConvertedTransactions int  `json:"converted_transactions" yaml:"converted_transactions"`
	OriginalAmounts       int  `json:"original_amounts" yaml:"original_amounts"`
	ConvertedAmounts      int  `json:"converted_amounts" yaml:"converted_amounts"`
	CountMatch            bool `json:"count_match" yaml:"count_match"`

	SignsFlipped     *bool `json:"signs_flipped,omitempty" yaml:"signs_flipped,omitempty"`
	AmountsPreserved *bool `json:"amounts_preserved,omitempty" yaml:"amounts_preserved,omitempty"`

	SampleDeltas []AmountPair `json:"sample_deltas" yaml:"sample_deltas"`
	// Deltas holds every pair; only the csv rendering uses it.
	Deltas []AmountPair `json:"-" yaml:"-"`

	OverallSuccess bool `json:"overall_success" yaml:"overall_success"`
}

// FailedChecks lists the names of the checks that did not pass.
func (r *VerificationReport) FailedChecks() []string {
	var failed []string
	if !r.FIDChanged {
		failed = append(failed, "FID")
	}
	if !r.BIDChanged {
		failed = append(failed, "INTU.BID")
	}
	if !r.CountMatch {
		failed = append(failed, "transaction count")
	}
	if r.SignsFlipped != nil && !*r.SignsFlipped {
		failed = append(failed, "amount signs")
	}
	if r.AmountsPreserved != nil && !*r.AmountsPreserved {
		failed = append(failed, "amounts preserved")
	}
	return failed
}
