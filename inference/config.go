package inference

import (
	"runtime"

	"github.com/pkg/errors"
)

// Config for a segmentation session.
type Config struct {
	// ModelPath is the BiRefNet ONNX model file. Required; download
	// and caching are the caller's concern.
	ModelPath string
	// LibraryPath is the ONNX Runtime shared library. Empty selects a
	// platform default under third_party/.
	LibraryPath string
	// InputSize is the square model input resolution. BiRefNet uses
	// 1024; zero selects that default.
	InputSize int
	// IntraOpThreads parallelizes execution within graph nodes.
	// Zero keeps the runtime default.
	IntraOpThreads int
	// InterOpThreads parallelizes execution across graph nodes.
	// Zero keeps the runtime default.
	InterOpThreads int
}

// defaultInputSize is BiRefNet's native input resolution.
const defaultInputSize = 1024

// withDefaults fills unset fields and validates the rest.
func (c Config) withDefaults() (Config, error) {
	if c.ModelPath == "" {
		return c, errors.New("model path is required")
	}
	if c.LibraryPath == "" {
		c.LibraryPath = defaultLibraryPath()
	}
	if c.InputSize == 0 {
		c.InputSize = defaultInputSize
	}
	if c.InputSize < 0 {
		return c, errors.Errorf("input size must be positive, got %d", c.InputSize)
	}
	return c, nil
}

// defaultLibraryPath returns the expected ONNX Runtime shared library
// location for the current platform.
func defaultLibraryPath() string {
	switch runtime.GOOS {
	case "windows":
		return "third_party/onnxruntime.dll"
	case "darwin":
		return "third_party/libonnxruntime.dylib"
	default:
		if runtime.GOARCH == "arm64" {
			return "third_party/onnxruntime_arm64.so"
		}
		return "third_party/onnxruntime.so"
	}
}
