// Package maturity maps percentage scores onto maturity tiers, narratives and recommendations.
package maturity

import "fmt"

// Tier is the coarse five-level maturity classification
type Tier int

const (
	TierAdHoc Tier = iota + 1
	TierEmerging
	TierDefined
	TierProactive
	TierAdaptive
)

// Tiers lists every coarse tier in ascending order
var Tiers = []Tier{TierAdHoc, TierEmerging, TierDefined, TierProactive, TierAdaptive}

var tierInfo = map[Tier]struct {
	name        string
	description string
}{
	TierAdHoc:     {"Ad-hoc", "Work is mostly reactive, roles unclear, success depends on a few individuals."},
	TierEmerging:  {"Emerging", "Some routines exist, but they are inconsistent and often bypassed under pressure."},
	TierDefined:   {"Defined", "Ways of working are agreed, most people follow them, issues are discussed openly."},
	TierProactive: {"Proactive", "Team anticipates problems, uses data and feedback, and improves its own process."},
	TierAdaptive:  {"Adaptive", "Team continuously experiments, aligns tightly with stakeholders, and improves faster than its environment."},
}

// CoarseTier classifies a percentage. Bucket widths are uneven: <40, <50, <70, <85, else.
func CoarseTier(percentage int) Tier {
	switch {
	case percentage < 40:
		return TierAdHoc
	case percentage < 50:
		return TierEmerging
	case percentage < 70:
		return TierDefined
	case percentage < 85:
		return TierProactive
	default:
		return TierAdaptive
	}
}

// Name returns the tier's display name
func (t Tier) Name() string {
	if info, ok := tierInfo[t]; ok {
		return info.name
	}
	return fmt.Sprintf("Tier %d", int(t))
}

// Description returns the one-sentence tier description
func (t Tier) Description() string {
	return tierInfo[t].description
}

// String implements fmt.Stringer
func (t Tier) String() string {
	return fmt.Sprintf("Level %d - %s", int(t), t.Name())
}

// FineLevel is a half-step overall maturity narrative
type FineLevel struct {
	Level       string `json:"level"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type fineBand struct {
	below int
	level FineLevel
}

// fineBands are ordered by upper bound; the final band catches everything at or above 90
var fineBands = []fineBand{
	{20, FineLevel{"1.0", "Very low maturity", "You are at a very early stage of maturity. Work is mostly reactive, priorities change frequently, and results depend heavily on external direction rather than a stable way of working."}},
	{30, FineLevel{"1.5", "Low maturity", `You show early signs of structure, but most of the time operate in "firefighting mode". Agreements are fragile and often ignored under pressure.`}},
	{40, FineLevel{"2.0", "Emerging maturity", "You have started to put basic routines and agreements in place. Planning and communication are somewhat clearer, but still inconsistent."}},
	{50, FineLevel{"2.5", "Early developing", "The foundation for a more stable way of working is visible. You follow some shared practices and there is a growing willingness to improve."}},
	{60, FineLevel{"3.0", "Defined maturity", "You have a defined way of working that you understand and follow. Goals and responsibilities are clear enough to deliver reliably in normal conditions."}},
	{70, FineLevel{"3.5", "Solid but uneven", "You operate on a generally solid foundation and can handle typical challenges with reasonable confidence. One or two areas still lag behind."}},
	{80, FineLevel{"4.0", "Proactive maturity", "You are proactive in how you work and improve. You use feedback and reflection to spot problems early and address them before they grow."}},
	{90, FineLevel{"4.5", "High, sustainable performance", "You demonstrate high maturity across most dimensions and perform strongly even under pressure. You continually refine how you deliver value."}},
}

var topLevel = FineLevel{"5.0", "Exceptional, adaptive maturity", "You operate at an exceptional level of maturity. You combine clarity, trust, and discipline with a strong appetite for learning and innovation."}

// FineTier returns the overall-score narrative for a percentage
func FineTier(percentage int) FineLevel {
	for _, b := range fineBands {
		if percentage < b.below {
			return b.level
		}
	}
	return topLevel
}

// FineLevels lists every half-step level in ascending order
func FineLevels() []FineLevel {
	levels := make([]FineLevel, 0, len(fineBands)+1)
	for _, b := range fineBands {
		levels = append(levels, b.level)
	}
	return append(levels, topLevel)
}
