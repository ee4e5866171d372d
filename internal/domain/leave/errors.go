package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrApprovalTokenNotFound = errors.New("approval token not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request already processed at this stage")
	ErrLeaveNotEditable      = errors.New("leave request can no longer be edited")
	ErrNIDMismatch           = errors.New("employee NID does not match this request")
)
