//go:build !onnxruntime

package gliner

import "fmt"

func newSession(modelFile string) (session, error) {
	return nil, fmt.Errorf("native onnx backend requires build tag 'onnxruntime' (model: %s)", modelFile)
}
