package form

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFormNotFound       = errors.New("form not found")
	ErrFieldNotFound      = errors.New("field not found")
	ErrParentNotPersisted = errors.New("parent form has no id")
	ErrInvalidPosition    = errors.New("field position out of range")
)

// ErrorKind names a violated structural rule.
type ErrorKind string

const (
	KindMissingTitle            ErrorKind = "MissingTitle"
	KindFieldsNotArray          ErrorKind = "FieldsNotArray"
	KindIncompleteField         ErrorKind = "IncompleteField"
	KindUnknownFieldType        ErrorKind = "UnknownFieldType"
	KindMissingOptions          ErrorKind = "MissingOptions"
	KindDuplicateFieldID        ErrorKind = "DuplicateFieldID"
	KindContradictoryValidation ErrorKind = "ContradictoryValidation"
	KindInvalidFieldAttribute   ErrorKind = "InvalidFieldAttribute"
	KindInvalidDescription      ErrorKind = "InvalidDescription"
	KindInvalidSettings         ErrorKind = "InvalidSettings"
)

// Issue is one violated constraint, attributed to a field when possible.
type Issue struct {
	Kind     ErrorKind `json:"kind"`
	Position *int      `json:"position,omitempty"`
	FieldID  string    `json:"fieldId,omitempty"`
	Value    string    `json:"value,omitempty"`
	Message  string    `json:"message"`
}

// ValidationError carries every issue found in a candidate form.
type ValidationError struct {
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		msgs = append(msgs, is.Message)
	}
	return "invalid form: " + strings.Join(msgs, "; ")
}

// Kinds lists the issue kinds in report order.
func (e *ValidationError) Kinds() []ErrorKind {
	kinds := make([]ErrorKind, len(e.Issues))
	for i, is := range e.Issues {
		kinds[i] = is.Kind
	}
	return kinds
}

// Has reports whether at least one issue has the given kind.
func (e *ValidationError) Has(kind ErrorKind) bool {
	for _, is := range e.Issues {
		if is.Kind == kind {
			return true
		}
	}
	return false
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

type issueList []Issue

func (l *issueList) add(kind ErrorKind, msg string, args ...any) {
	*l = append(*l, Issue{Kind: kind, Message: fmt.Sprintf(msg, args...)})
}

func (l *issueList) addField(kind ErrorKind, pos int, id, value, msg string, args ...any) {
	p := pos
	*l = append(*l, Issue{
		Kind:     kind,
		Position: &p,
		FieldID:  id,
		Value:    value,
		Message:  fmt.Sprintf(msg, args...),
	})
}

func (l issueList) err() error {
	if len(l) == 0 {
		return nil
	}
	return &ValidationError{Issues: l}
}
