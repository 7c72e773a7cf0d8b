package response

const (
	DateTimeFormat = "2006-01-02 15:04:05"

	MessageSuccess       = "Success"
	MessageInternalError = "Something went wrong"
)
