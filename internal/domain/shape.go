package domain

// Shape is the classifier's verdict for a source post.
type Shape int

const (
	ShapeOutOfWindow Shape = iota
	ShapeAlreadyMirrored
	ShapeSelfText
	ShapeGallery
	ShapeHostedVideo
	ShapeDirectImage
	ShapeGenericLink
)

var shapeNames = map[Shape]string{
	ShapeOutOfWindow:     "out_of_window",
	ShapeAlreadyMirrored: "already_mirrored",
	ShapeSelfText:        "self_text",
	ShapeGallery:         "gallery",
	ShapeHostedVideo:     "hosted_video",
	ShapeDirectImage:     "direct_image",
	ShapeGenericLink:     "generic_link",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the post needs no further processing.
func (s Shape) Terminal() bool {
	return s == ShapeOutOfWindow || s == ShapeAlreadyMirrored
}
