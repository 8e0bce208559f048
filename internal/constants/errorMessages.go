package constants

const (
	MsgPartNotFound      = "basic part not found"
	MsgDetailsNotFound   = "part has no manufacturing details"
	MsgValidationFailed  = "validation failed"
	MsgInvalidPartID     = "invalid part id"
	MsgInvalidNumber     = "invalid number"
	MsgInvalidJSON       = "invalid request body"
	MsgInvalidForm       = "invalid form submission"
	MsgCompareIDsMissing = "both id1 and id2 are required"
	MsgInternalError     = "internal error"
	MsgTooManyRequests   = "Too many requests"
)
