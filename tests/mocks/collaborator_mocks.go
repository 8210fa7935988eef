package mocks

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"
	"github.com/welldanyogia/webrana-msgview/internal/pdu"
	"github.com/welldanyogia/webrana-msgview/internal/slideshow"
)

// MockPDUStore implements message.PDUStore
type MockPDUStore struct {
	mock.Mock
}

// Load returns the stored PDU for uri
func (m *MockPDUStore) Load(ctx context.Context, uri string) (pdu.GenericPdu, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pdu.GenericPdu), args.Error(1)
}

// MockSlideshowDecoder implements message.SlideshowDecoder
type MockSlideshowDecoder struct {
	mock.Mock
}

// Decode lays out a PDU body as slides
func (m *MockSlideshowDecoder) Decode(ctx context.Context, body *pdu.Body) (*slideshow.Slideshow, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slideshow.Slideshow), args.Error(1)
}

// MockContactResolver implements message.ContactResolver
type MockContactResolver struct {
	mock.Mock
}

// Resolve returns the display name for address
func (m *MockContactResolver) Resolve(ctx context.Context, address string, createIfAbsent bool) string {
	args := m.Called(ctx, address, createIfAbsent)
	return args.String(0)
}

// StaticLocalizer implements message.Localizer from a fixed table. Unknown
// keys resolve to themselves.
type StaticLocalizer map[string]string

// String returns the string for key
func (l StaticLocalizer) String(key string) string {
	if s, ok := l[key]; ok {
		return s
	}
	return key
}

// Format fills the template for key
func (l StaticLocalizer) Format(key string, args ...any) string {
	return fmt.Sprintf(l.String(key), args...)
}

// StubFormatter implements message.TimestampFormatter by printing the raw
// milliseconds, which keeps expected labels readable in tests.
type StubFormatter struct{}

// Format renders epochMillis as "@<millis>"
func (StubFormatter) Format(epochMillis int64) string {
	return fmt.Sprintf("@%d", epochMillis)
}
