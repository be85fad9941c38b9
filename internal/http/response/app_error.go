package response

// AppError 接口层错误：业务码、文案 key（或已渲染的文案）与原始错误
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

// NewAppError 以文案 key 构造错误，渲染时按请求语言翻译
func NewAppError(code int, key string, err error) *AppError {
	return &AppError{Code: code, Key: key, Err: err}
}

// WithMessage 使用已渲染的文案，跳过翻译
func (e *AppError) WithMessage(msg string) *AppError {
	e.Message = msg
	return e
}

func (e *AppError) Error() string {
	label := e.Message
	if label == "" {
		label = e.Key
	}
	if e.Err == nil {
		return label
	}
	return label + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status HTTP 状态码
func (e *AppError) Status() int {
	return HTTPStatus(e.Code)
}

// Server 是否属于服务端错误
func (e *AppError) Server() bool {
	return e.Status() >= 500
}
