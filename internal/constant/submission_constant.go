package constant

// Response statuses shared with the frontend. The status travels inside the
// response body; the HTTP layer answers 200 for both success and pipeline
// failures.
const (
	SubmitResponseStatusPositive  = "success"
	AnswerResponseStatusNegative  = "validation error"
	SubmitResponseError           = "error"
	SubmitResponseCaseCycleError  = "case cycle error"
	SubmitResponseTooManyRequests = "too many requests"
)

// Checkpoint statuses recorded against a form session after a pipeline stage
// succeeds. Audit state only: retries always re-run the pipeline from the top.
const (
	SubmitStatusProcessedXML   = "processed_xml"
	SubmitStatusProcessedStack = "processed_stack"
)

// Notification tags.
const (
	NotificationTagSubmit = "submit"
)

// Lock names.
const (
	UserLockPrefix = "user"
	PurgeLockName  = "purge"
)
