package engine

import "setuprank/pkg/model"

// Tags emitted by the pipeline.
const (
	TagNoOptions       = "NoOptions"
	TagTightSpread     = "TightSpread"
	TagWideSpread      = "WideSpread"
	TagGoodOI          = "GoodOI"
	TagLowOI           = "LowOI"
	TagOptionsOK       = "OptionsOK"
	TagOptionsNotIdeal = "OptionsNotIdeal"
	TagExtended        = "Extended/Climactic"
	TagEarningsNoise   = "EarningsNoise"
)

// ClassifyOptions turns an options snapshot into a tradeable verdict
// plus descriptive tags. No options short-circuits: the only evidence
// emitted is NoOptions.
func (e *Engine) ClassifyOptions(o model.OptionsSnapshot) (bool, []string) {
	if !o.HasOptions {
		return false, []string{TagNoOptions}
	}

	var tags []string
	tightSpread := o.SpreadPct <= e.cfg.OptionsMaxSpreadPct
	if tightSpread {
		tags = append(tags, TagTightSpread)
	} else {
		tags = append(tags, TagWideSpread)
	}

	goodOI := o.OpenInterest >= e.cfg.OptionsMinOI
	if goodOI {
		tags = append(tags, TagGoodOI)
	} else {
		tags = append(tags, TagLowOI)
	}

	return tightSpread && goodOI, tags
}
