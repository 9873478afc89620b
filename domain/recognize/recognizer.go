// Package recognize converts cropped glyph-region images into strings.
//
// The primary backend is a pretrained CRNN: a convolutional backbone turns a
// fixed-height grayscale image into a sequence of column feature vectors, a
// self-attention encoder mixes the sequence, and a per-position
// classification head is decoded greedily under CTC rules (repeats collapse,
// the blank class is dropped). The model is an opaque ONNX artifact; this
// package only owns the input-normalization contract and the decode.
package recognize

import "image"

// Recognizer decodes one glyph-region image into text. Confidence is the
// product of the per-character class probabilities; no minimum is enforced
// here; thresholding is the caller's policy.
type Recognizer interface {
	Recognize(img image.Image) (text string, confidence float64, err error)
}

// Model input geometry. These mirror the training distribution of the
// weights and must never change independently of them.
const (
	// ModelHeight is the fixed input height in pixels.
	ModelHeight = 32
	// ModelWidth is the fixed padded input width in pixels.
	ModelWidth = 384
	// SeqLen is the number of output positions (one per downsampled column).
	SeqLen = 24
)
