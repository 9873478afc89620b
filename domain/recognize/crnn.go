package recognize

import (
	"fmt"
	"image"
	"sync"

	ort "github.com/getcharzp/onnxruntime_purego"
)

// CRNN runs the pretrained recognition network through ONNX Runtime.
// The session binds one input and one output tensor; Recognize copies the
// preprocessed image into the bound input, so concurrent calls serialize on
// an internal mutex while preprocessing stays parallel.
type CRNN struct {
	mu     sync.Mutex
	sess   *ort.AdvancedSession
	input  *ort.Tensor[float32]
	output *ort.Tensor[float32]
	vocab  Vocab
}

// CRNNOptions configure model loading.
type CRNNOptions struct {
	ModelPath string
	DictPath  string
	// LibPath optionally points at the onnxruntime shared library; empty
	// uses the platform default lookup.
	LibPath string
}

var ortInitOnce sync.Once

// NewCRNN loads the weights and vocabulary and prepares a reusable session.
func NewCRNN(opts CRNNOptions) (*CRNN, error) {
	vocab, err := LoadVocab(opts.DictPath)
	if err != nil {
		return nil, err
	}

	var initErr error
	ortInitOnce.Do(func() {
		if opts.LibPath != "" {
			ort.SetSharedLibraryPath(opts.LibPath)
		}
		initErr = ort.InitializeEnvironment()
	})
	if initErr != nil {
		return nil, fmt.Errorf("onnxruntime init: %w", initErr)
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1, ModelHeight, ModelWidth))
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(SeqLen, 1, int64(len(vocab))))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("output tensor: %w", err)
	}
	sess, err := ort.NewAdvancedSession(opts.ModelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{output}, nil)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("load model %s: %w", opts.ModelPath, err)
	}

	return &CRNN{sess: sess, input: input, output: output, vocab: vocab}, nil
}

// Recognize implements Recognizer.
func (m *CRNN) Recognize(img image.Image) (string, float64, error) {
	data := Preprocess(img)

	m.mu.Lock()
	defer m.mu.Unlock()

	copy(m.input.GetData(), data)
	if err := m.sess.Run(); err != nil {
		return "", 0, fmt.Errorf("inference: %w", err)
	}
	logits := make([]float32, len(m.output.GetData()))
	copy(logits, m.output.GetData())

	text, conf := GreedyDecode(logits, len(m.vocab), m.vocab)
	return text, conf, nil
}

// Close releases the session and its bound tensors.
func (m *CRNN) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess != nil {
		m.sess.Destroy()
		m.sess = nil
	}
	if m.input != nil {
		m.input.Destroy()
		m.input = nil
	}
	if m.output != nil {
		m.output.Destroy()
		m.output = nil
	}
	return nil
}

var _ Recognizer = (*CRNN)(nil)
