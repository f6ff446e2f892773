// Package testutil provides mock implementations for interfaces defined in
// pkg/stripper and its subpackages. Configure expectations with the
// testify/mock methods (e.g., .On("Write", ...).Return(...)).
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stackvity/export-fixer/pkg/stripper"
)

// MockSink provides a mock implementation of the stripper.Sink interface.
type MockSink struct {
	mock.Mock
}

// Write mocks the Write method.
func (m *MockSink) Write(ctx context.Context, data []byte) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// Location mocks the Location method.
func (m *MockSink) Location() string {
	args := m.Called()
	return args.String(0)
}

// MockHooks provides a mock implementation of the stripper.Hooks interface.
type MockHooks struct {
	mock.Mock
}

// OnLineProcessed mocks the OnLineProcessed method.
func (m *MockHooks) OnLineProcessed(lineNo int, status stripper.LineStatus, message string) error {
	args := m.Called(lineNo, status, message)
	return args.Error(0)
}

// OnRunComplete mocks the OnRunComplete method.
func (m *MockHooks) OnRunComplete(report stripper.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

// MockEncodingHandler provides a mock implementation of the encoding.Handler interface.
type MockEncodingHandler struct {
	mock.Mock
}

// DetectAndDecode mocks the DetectAndDecode method.
func (m *MockEncodingHandler) DetectAndDecode(content []byte) (utf8Content []byte, detectedEncoding string, certainty bool, err error) {
	args := m.Called(content)
	utf8Content, _ = args.Get(0).([]byte)
	detectedEncoding, _ = args.Get(1).(string)
	certainty, _ = args.Get(2).(bool)
	err = args.Error(3)
	return
}

// IsBinary mocks the IsBinary method.
func (m *MockEncodingHandler) IsBinary(content []byte) bool {
	args := m.Called(content)
	isBinary, _ := args.Get(0).(bool)
	return isBinary
}
