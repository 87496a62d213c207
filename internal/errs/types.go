package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// WarehouseError wraps a failure inside the analytical store itself:
// a malformed query, a scan mismatch, a failed join.
type WarehouseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *WarehouseError) Unwrap() error { return e.Err }

// ConnectivityError covers failures reaching the warehouse at all.
// Transient marks conditions worth a user-initiated retry (refused
// connections, timeouts) as opposed to bad credentials or DSNs.
type ConnectivityError struct {
	ErrorMessage
	Transient bool
	Err       error
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewWarehouseError(operation, message string, err error) *WarehouseError {
	return &WarehouseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewConnectivityError(message string, transient bool, err error) *ConnectivityError {
	return &ConnectivityError{
		ErrorMessage: ErrorMessage{Message: message},
		Transient:    transient,
		Err:          err,
	}
}
