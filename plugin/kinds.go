package plugin

// Kind classifies a supported XML tag.
type Kind int

const (
	KindBoolean Kind = iota
	KindInteger
	KindFloat
	KindString
	KindPoint
	KindVector
	KindSpectrum
	KindRGB
	KindColor
	KindTransform
	KindTranslate
	KindMatrix
	KindRotate
	KindScale
	KindLookAt
	KindObject
	KindNamedReference
	KindInclude
	KindAlias
	KindDefault
	KindInvalid
)

var kindNames = [...]string{
	"boolean", "integer", "float", "string", "point", "vector",
	"spectrum", "rgb", "color", "transform", "translate", "matrix",
	"rotate", "scale", "lookat", "object", "ref", "include",
	"alias", "default", "invalid",
}

// String returns the canonical tag spelling of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsTransformOp reports whether the kind is one of the operations permitted
// inside a <transform> element.
func (k Kind) IsTransformOp() bool {
	switch k {
	case KindTranslate, KindRotate, KindScale, KindLookAt, KindMatrix:
		return true
	}
	return false
}

func fixedTags() map[string]Kind {
	return map[string]Kind{
		"boolean":   KindBoolean,
		"integer":   KindInteger,
		"float":     KindFloat,
		"string":    KindString,
		"point":     KindPoint,
		"vector":    KindVector,
		"transform": KindTransform,
		"translate": KindTranslate,
		"matrix":    KindMatrix,
		"rotate":    KindRotate,
		"scale":     KindScale,
		"lookat":    KindLookAt,
		"ref":       KindNamedReference,
		"spectrum":  KindSpectrum,
		"rgb":       KindRGB,
		"color":     KindColor,
		"include":   KindInclude,
		"alias":     KindAlias,
		"default":   KindDefault,
	}
}
