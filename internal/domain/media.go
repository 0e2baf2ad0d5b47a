package domain

type MediaKind string

const (
	MediaImage       MediaKind = "image"
	MediaVideo       MediaKind = "video"
	MediaMergedVideo MediaKind = "merged-video"
)

// MediaAsset is a media file materialized for a single mirroring attempt.
type MediaAsset struct {
	Kind      MediaKind
	Path      string
	SourceURL string
}

// Degradation records one step down the fallback ladder and why.
type Degradation struct {
	Step  string
	Cause string
}

// Resolution is what the resolver hands to the publisher.
type Resolution struct {
	// Shape may be lowered to ShapeGenericLink when no media survived.
	Shape  Shape
	Assets []MediaAsset
	// MediaURL is the direct link to the resolved media, if any.
	MediaURL string
	// AudioURL is set only when the audio track was merged into the asset.
	AudioURL     string
	Degradations []Degradation
}

func (r *Resolution) Degrade(step string, cause error) {
	d := Degradation{Step: step}
	if cause != nil {
		d.Cause = cause.Error()
	}
	r.Degradations = append(r.Degradations, d)
}
