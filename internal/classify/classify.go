// Package classify maps scalar image descriptors to canned fossil labels.
//
// None of this is a trained model: every classifier is a fixed threshold
// table or a static lookup, kept bit-compatible with the reference analysis
// pipeline so that results from different deployments line up.
package classify

// Brightness and variance cut-offs. Each boundary value belongs to the
// higher bracket.
const (
	boneBrightnessMax = 100.0
	woodBrightnessMax = 150.0

	excellentVarianceMin = 1000.0
	goodVarianceMin      = 500.0
)

// Classification pairs a fossil type with its geological period.
type Classification struct {
	FossilType string
	Period     string
}

// ClassifyFossil buckets mean image brightness into a fossil type. Darker
// material reads as permineralized bone, mid-range as petrified wood, and
// bright material as shell fragments.
func ClassifyFossil(brightness float64) Classification {
	switch {
	case brightness < boneBrightnessMax:
		return Classification{FossilType: "Permineralized Bone", Period: "Mesozoic"}
	case brightness < woodBrightnessMax:
		return Classification{FossilType: "Petrified Wood", Period: "Paleozoic"}
	default:
		return Classification{FossilType: "Shell Fragment", Period: "Cenozoic"}
	}
}

// speciesSuggestions is the built-in suggestion table keyed by fossil type.
// The CLI's species database file is a separate collaborator; this table is
// what the classifier itself reports.
var speciesSuggestions = map[string][]string{
	"Permineralized Bone": {
		"Tyrannosaurus Rex",
		"Triceratops",
		"Velociraptor",
	},
	"Petrified Wood": {
		"Araucarioxylon",
		"Archaeopteris",
		"Cordaites",
	},
	"Shell Fragment": {
		"Ammonite",
		"Brachiopod",
		"Trilobite",
	},
}

// SuggestSpecies returns candidate species for a fossil type. Unrecognized
// types get a single "Unknown" entry.
func SuggestSpecies(fossilType string) []string {
	if species, ok := speciesSuggestions[fossilType]; ok {
		return append([]string(nil), species...)
	}
	return []string{"Unknown"}
}

// Preservation pairs a quality rating with its numeric score.
type Preservation struct {
	Quality string
	Score   float64
}

// Fixed preservation assessment text reported with every result.
const (
	PreservationCompleteness = "Partial"
	PreservationAdvice       = "Climate-controlled storage"
)

// AssessPreservation buckets color variance into a preservation rating.
// High variance reads as rich surviving detail.
func AssessPreservation(variance float64) Preservation {
	switch {
	case variance > excellentVarianceMin:
		return Preservation{Quality: "Excellent", Score: 9.2}
	case variance > goodVarianceMin:
		return Preservation{Quality: "Good", Score: 7.5}
	default:
		return Preservation{Quality: "Fair", Score: 5.8}
	}
}

// AgeEstimate is the static dating placeholder. The pipeline has no dating
// logic, so every image gets the same range and disclaimer.
type AgeEstimate struct {
	RangeMillionYears string
	Era               string
	Confidence        string
	Notes             string
}

// EstimateAge returns the fixed placeholder estimate.
func EstimateAge() AgeEstimate {
	return AgeEstimate{
		RangeMillionYears: "65-230",
		Era:               "Mesozoic",
		Confidence:        "Medium",
		Notes:             "Requires laboratory analysis for precise dating",
	}
}
