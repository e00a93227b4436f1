package code

// 通用基本错误: 1000xx
const (
	// ErrSuccess - 200: OK.
	ErrSuccess int = iota + 100001

	// ErrUnknown - 500: Internal server error.
	ErrUnknown

	// ErrBind - 400: Error occurred while binding the request body to the struct.
	ErrBind

	// ErrValidation - 400: Validation failed.
	ErrValidation

	// ErrPageNotFound - 404: Page not found.
	ErrPageNotFound

	// ErrInvalidArgument - 400: Invalid argument.
	ErrInvalidArgument

	// ErrSequenceExhausted - 429: Sequence exhausted for the current second.
	ErrSequenceExhausted

	// ErrTooManyRequests - 429: Too many requests.
	ErrTooManyRequests
)

// 通用数据库错误: 1001xx
const (
	// ErrDatabase - 500: Database error.
	ErrDatabase int = iota + 100101

	// ErrRecordNotFound - 404: Record not found.
	ErrRecordNotFound

	// ErrRecordAlreadyExist - 409: Record already exists.
	ErrRecordAlreadyExist
)

// 通用加解密错误: 1002xx
const (
	// ErrEncrypt - 500: Error occurred while encrypting.
	ErrEncrypt int = iota + 100201

	// ErrDecrypt - 400: Error occurred while decrypting.
	ErrDecrypt

	// ErrPasswordIncorrect - 401: Password was incorrect.
	ErrPasswordIncorrect
)

// 通用编解码错误: 1003xx
const (
	// ErrEncodingFailed - 500: Encoding failed due to an error with the data.
	ErrEncodingFailed int = iota + 100301

	// ErrDecodingFailed - 400: Decoding failed due to an error with the data.
	ErrDecodingFailed

	// ErrIO - 500: File or stream read/write failed.
	ErrIO
)

// 通用中间件错误: 1004xx
const (
	// ErrKafkaSendFailed - 500: Kafka send failed.
	ErrKafkaSendFailed int = iota + 100401

	// ErrRedisFailed - 500: Redis operation failed.
	ErrRedisFailed
)

// 通用认证错误: 1005xx
const (
	// ErrTokenInvalid - 401: Token invalid.
	ErrTokenInvalid int = iota + 100501

	// ErrExpired - 401: Token expired.
	ErrExpired

	// ErrMissingHeader - 401: The `Authorization` header was empty.
	ErrMissingHeader

	// ErrInvalidAuthHeader - 401: Invalid authorization header.
	ErrInvalidAuthHeader
)

func init() {
	register(ErrSuccess, 200, "OK")
	register(ErrUnknown, 500, "Internal server error")
	register(ErrBind, 400, "Error occurred while binding the request body to the struct")
	register(ErrValidation, 400, "Validation failed")
	register(ErrPageNotFound, 404, "Page not found")
	register(ErrInvalidArgument, 400, "Invalid argument")
	register(ErrSequenceExhausted, 429, "Sequence exhausted for the current second")
	register(ErrTooManyRequests, 429, "Too many requests")

	register(ErrDatabase, 500, "Database error")
	register(ErrRecordNotFound, 404, "Record not found")
	register(ErrRecordAlreadyExist, 409, "Record already exists")

	register(ErrEncrypt, 500, "Error occurred while encrypting")
	register(ErrDecrypt, 400, "Error occurred while decrypting")
	register(ErrPasswordIncorrect, 401, "Password was incorrect")

	register(ErrEncodingFailed, 500, "Encoding failed due to an error with the data")
	register(ErrDecodingFailed, 400, "Decoding failed due to an error with the data")
	register(ErrIO, 500, "File or stream read/write failed")

	register(ErrKafkaSendFailed, 500, "Kafka send failed")
	register(ErrRedisFailed, 500, "Redis operation failed")

	register(ErrTokenInvalid, 401, "Token invalid")
	register(ErrExpired, 401, "Token expired")
	register(ErrMissingHeader, 401, "The `Authorization` header was empty")
	register(ErrInvalidAuthHeader, 401, "Invalid authorization header")
}
