package dictionary

import "fmt"

// IngestErrorKind classifies why an ingestion pass failed.
type IngestErrorKind int

const (
	// SourceUnavailable means the payload could not be retrieved.
	SourceUnavailable IngestErrorKind = iota + 1
	// MalformedPayload means the payload was retrieved but has no row structure.
	MalformedPayload
)

func (k IngestErrorKind) String() string {
	switch k {
	case SourceUnavailable:
		return "source unavailable"
	case MalformedPayload:
		return "malformed payload"
	default:
		return fmt.Sprintf("IngestErrorKind(%d)", int(k))
	}
}

// IngestError is returned by Store.Ingest. The store keeps its previous
// snapshot whenever one is returned.
type IngestError struct {
	Kind IngestErrorKind
	Err  error
}

var (
	ErrSourceUnavailable = &IngestError{Kind: SourceUnavailable}
	ErrMalformedPayload  = &IngestError{Kind: MalformedPayload}
)

func (e *IngestError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// Is matches any IngestError of the same kind, so
// errors.Is(err, ErrSourceUnavailable) works on wrapped errors.
func (e *IngestError) Is(target error) bool {
	t, ok := target.(*IngestError)
	return ok && t.Kind == e.Kind
}
