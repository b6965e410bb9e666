package core

// Dimensions holds the decoded pixel dimensions of an image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ImageProperties holds the raw scalar descriptors of the decoded buffer.
type ImageProperties struct {
	Brightness    float64 `json:"brightness"`
	ColorVariance float64 `json:"color_variance"`
}

// FossilDetection holds the texture and edge based feature flags.
type FossilDetection struct {
	TextureScore           float64 `json:"texture_score"`
	MineralizationDetected bool    `json:"mineralization_detected"`
	BoneStructureVisible   bool    `json:"bone_structure_visible"`
	Confidence             float64 `json:"confidence"`
}

// FossilClassification holds the threshold-derived fossil labels.
type FossilClassification struct {
	PrimaryType      string   `json:"primary_type"`
	GeologicalPeriod string   `json:"geological_period"`
	PossibleSpecies  []string `json:"possible_species"`
	Confidence       float64  `json:"confidence"`
}

// AgeEstimation holds the static dating placeholder.
type AgeEstimation struct {
	EstimatedAgeMillionYears string `json:"estimated_age_million_years"`
	GeologicalEra            string `json:"geological_era"`
	Confidence               string `json:"confidence"`
	Notes                    string `json:"notes"`
}

// PreservationQuality holds the variance-derived preservation assessment.
type PreservationQuality struct {
	QualityRating           string  `json:"quality_rating"`
	PreservationScore       float64 `json:"preservation_score"`
	Completeness            string  `json:"completeness"`
	RecommendedPreservation string  `json:"recommended_preservation"`
}

// AnalysisResult is one record of the analysis history.
//
// A decode failure produces a degraded record carrying only Error and, when a
// file was involved, ImagePath; every other field is omitted from the wire
// shape. That shape is relied on by exports and must not grow extra keys.
type AnalysisResult struct {
	Timestamp      string                `json:"timestamp,omitempty"`
	ImagePath      string                `json:"image_path,omitempty"`
	Dimensions     *Dimensions           `json:"image_dimensions,omitempty"`
	Properties     *ImageProperties      `json:"image_properties,omitempty"`
	Detection      *FossilDetection      `json:"fossil_detection,omitempty"`
	Classification *FossilClassification `json:"classification,omitempty"`
	AgeEstimation  *AgeEstimation        `json:"age_estimation,omitempty"`
	Preservation   *PreservationQuality  `json:"preservation_quality,omitempty"`
	Error          string                `json:"error,omitempty"`
}

// IsDegraded reports whether the result is an error record.
func (r *AnalysisResult) IsDegraded() bool {
	return r.Error != ""
}
