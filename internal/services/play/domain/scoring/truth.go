package scoring

import "github.com/NickTran11/masterbait/internal/services/play/domain/catalog"

// Fixed teaching points for modes whose truth is policy, not per message.
var (
	SMSTeachingPoints = []string{
		"Smishing uses urgency + links to steal data.",
		"Safest: report/ignore and verify via official channels.",
	}
	EmailFallbackTeachingPoints = []string{
		"Check sender + domain + link destination.",
	}
	ComboTeachingPoints = []string{
		"Multi-vector attacks mix real + fake signals.",
		"Safest: slow down and verify domains.",
	}
)

// TruthPack is the ground truth a decision is scored against.
type TruthPack struct {
	Truth          catalog.Truth  `json:"truth"`
	BestAction     catalog.Action `json:"best_action"`
	TeachingPoints []string       `json:"teaching_points"`
}

// ResolveTruth decides what the level's ground truth is.
//
// SMS levels are always phishing. Email levels use the loaded message and
// fall back to phishing when none is loaded. Combo levels are phishing when
// any message in the inbox is, regardless of which message was viewed.
func ResolveTruth(mode catalog.Mode, inbox catalog.EmailScenario, active *catalog.EmailMessage) TruthPack {
	switch mode {
	case catalog.ModeSMS:
		return TruthPack{
			Truth:          catalog.TruthPhish,
			BestAction:     catalog.ActionReport,
			TeachingPoints: clone(SMSTeachingPoints),
		}
	case catalog.ModeEmail:
		if active == nil {
			return TruthPack{
				Truth:          catalog.TruthPhish,
				BestAction:     catalog.ActionReport,
				TeachingPoints: clone(EmailFallbackTeachingPoints),
			}
		}
		teach := active.TeachingPoints
		if len(teach) == 0 {
			teach = EmailFallbackTeachingPoints
		}
		return TruthPack{
			Truth:          active.Truth,
			BestAction:     active.BestAction,
			TeachingPoints: clone(teach),
		}
	default:
		pack := TruthPack{
			Truth:          catalog.TruthSafe,
			BestAction:     catalog.ActionIgnore,
			TeachingPoints: clone(ComboTeachingPoints),
		}
		if inbox.HasPhish() {
			pack.Truth = catalog.TruthPhish
			pack.BestAction = catalog.ActionReport
		}
		return pack
	}
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
