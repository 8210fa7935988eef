package message

import (
	"fmt"

	apperrors "github.com/welldanyogia/webrana-msgview/internal/errors"
)

// Report flag columns that can produce anomalies.
const (
	FieldDeliveryReport = "d_rpt"
	FieldReadReport     = "rr"
)

// Anomaly records malformed input that was tolerated while building a view.
type Anomaly struct {
	URI   string
	Field string
	Value string
	Err   error
}

func newMalformedFlag(uri, field, value string, cause error) Anomaly {
	return Anomaly{
		URI:   uri,
		Field: field,
		Value: value,
		Err:   fmt.Errorf("%w: %s=%q: %v", apperrors.ErrMalformedFlag, field, value, cause),
	}
}

func (a Anomaly) Error() string {
	return a.Err.Error()
}

func (a Anomaly) Unwrap() error {
	return a.Err
}

// Anomalies is the list of anomalies of one build, nil when the input was clean.
type Anomalies []Anomaly

// Fields lists the affected fields in order.
func (as Anomalies) Fields() []string {
	fields := make([]string, len(as))
	for i, a := range as {
		fields[i] = a.Field
	}
	return fields
}
