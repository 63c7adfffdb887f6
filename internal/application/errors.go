package application

import (
	"errors"
	"fmt"

	"github.com/linskybing/formpilot/internal/domain/form"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrForbidden = errors.New("you do not own this form")

// ExternalServiceError is a store or LLM failure. The detail is for logs;
// clients only ever see a generic message.
type ExternalServiceError struct {
	Op     string
	Target string
	Err    error
}

func (e *ExternalServiceError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func external(op, target string, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalServiceError{Op: op, Target: target, Err: err}
}

// storeErr maps a repository miss onto ErrFormNotFound. Anything else is
// logged with the operation and target, then wrapped.
func storeErr(logger *zap.Logger, op, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return form.ErrFormNotFound
	}
	logger.Error("store operation failed",
		zap.String("op", op),
		zap.String("target", id),
		zap.Error(err))
	return external(op, id, err)
}
