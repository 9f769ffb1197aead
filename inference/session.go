package inference

import (
	"context"
	"os"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/lumapix/studioshot/images"
)

// Session is an explicitly constructed BiRefNet inference session.
// Construct once with NewSession, pass by reference into calls, and
// Close when done; there is no lazy global model handle. A Session
// serializes its own Run calls, so independent images may be submitted
// from any goroutine.
type Session struct {
	session     *ort.DynamicAdvancedSession
	inputName   string
	outputNames []string
	inputSize   int
	mu          sync.Mutex
}

// NewSession loads the model and prepares the runtime.
//
// Arguments:
//   - cfg: Session configuration; see Config for defaults.
//
// Returns:
//   - *Session: The ready session.
//   - error: An error if the library or model cannot be loaded.
func NewSession(cfg Config) (*Session, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, errors.Wrapf(err, "model file %s", cfg.ModelPath)
	}

	if !ort.IsInitialized() {
		if _, err := os.Stat(cfg.LibraryPath); err != nil {
			return nil, errors.Wrapf(err, "ONNX Runtime library %s", cfg.LibraryPath)
		}
		ort.SetSharedLibraryPath(cfg.LibraryPath)
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "initialize ONNX Runtime environment")
		}
	}

	inputs, outputs, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, errors.Wrap(err, "read model input/output info")
	}
	if len(inputs) != 1 {
		return nil, errors.Errorf("expected a single model input, got %d", len(inputs))
	}
	if len(outputs) == 0 {
		return nil, errors.New("model declares no outputs")
	}
	// The model emits an ordered sequence of per-scale masks; the last
	// one is authoritative. Bind all of them so the run succeeds, read
	// only the last.
	outputNames := make([]string, len(outputs))
	for i, info := range outputs {
		outputNames[i] = info.Name
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "create session options")
	}
	defer options.Destroy()
	if err := options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended); err != nil {
		return nil, errors.Wrap(err, "set graph optimization level")
	}
	if cfg.IntraOpThreads > 0 {
		if err := options.SetIntraOpNumThreads(cfg.IntraOpThreads); err != nil {
			return nil, errors.Wrap(err, "set intra-op threads")
		}
	}
	if cfg.InterOpThreads > 0 {
		if err := options.SetInterOpNumThreads(cfg.InterOpThreads); err != nil {
			return nil, errors.Wrap(err, "set inter-op threads")
		}
	}

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath, []string{inputs[0].Name}, outputNames, options)
	if err != nil {
		return nil, errors.Wrap(err, "create inference session")
	}

	return &Session{
		session:     session,
		inputName:   inputs[0].Name,
		outputNames: outputNames,
		inputSize:   cfg.InputSize,
	}, nil
}

// Close releases the runtime resources held by the session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	err := s.session.Destroy()
	s.session = nil
	return errors.Wrap(err, "destroy session")
}

// Segment runs the model and returns the photo with its inferred alpha
// channel attached, at the original resolution.
func (s *Session) Segment(ctx context.Context, src *images.Raster) (*images.Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := preprocess(src, s.inputSize)
	shape := ort.NewShape(1, 3, int64(s.inputSize), int64(s.inputSize))
	input, err := ort.NewTensor(shape, data)
	if err != nil {
		return nil, errors.Wrap(err, "create input tensor")
	}
	defer input.Destroy()

	outputs := make([]ort.Value, len(s.outputNames))

	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil, errors.New("session is closed")
	}
	err = s.session.Run([]ort.Value{input}, outputs)
	s.mu.Unlock()
	if err != nil {
		return nil, errors.Wrap(err, "run inference")
	}
	defer func() {
		for _, out := range outputs {
			if out != nil {
				out.Destroy()
			}
		}
	}()

	last, ok := outputs[len(outputs)-1].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.Errorf("authoritative output is %T, want float32 tensor", outputs[len(outputs)-1])
	}

	dims := last.GetShape()
	if len(dims) < 2 {
		return nil, errors.Errorf("unexpected mask shape %v", dims)
	}
	maskH := int(dims[len(dims)-2])
	maskW := int(dims[len(dims)-1])

	alpha := maskFromLogits(last.GetData(), maskW, maskH, src.Width, src.Height)

	out := src.Clone()
	if err := out.SetAlphaPlane(alpha); err != nil {
		return nil, err
	}
	return out, nil
}
