package domain

type Profile struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// A Result is a user-facing outcome of a storefront operation.
// Rejections (stock limits, validation) are results, not errors.
type Result struct {
	Success bool
	Message string
}

func Accepted(msg string) Result {
	return Result{Success: true, Message: msg}
}

func Rejected(msg string) Result {
	return Result{Success: false, Message: msg}
}
