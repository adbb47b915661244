package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010

	// Wallet codes
	WalletNotConnected Code = 200001
	InvalidSignature   Code = 200002

	// Mint codes
	NotEligible          Code = 300001
	MintInProgress       Code = 300002
	MintSubmissionFailed Code = 300003
	MintExpired          Code = 300004

	// Profile codes
	ProfileFetchFailed Code = 400001
	ProfileUnavailable Code = 400002
)
