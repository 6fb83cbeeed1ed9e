package domain

import "errors"

// ErrorKind はポーズ転送処理の失敗の種類です。
type ErrorKind string

const (
	KindRead                   ErrorKind = "ReadError"
	KindFetch                  ErrorKind = "FetchError"
	KindMalformedDataReference ErrorKind = "MalformedDataReference"
	KindSafetyBlocked          ErrorKind = "SafetyBlocked"
	KindNoImageProduced        ErrorKind = "NoImageProduced"
	KindInvalidCredential      ErrorKind = "InvalidCredential"
	KindGenerationFailed       ErrorKind = "GenerationFailed"
	KindMissingInput           ErrorKind = "MissingInput"
	KindTemplateNotFound       ErrorKind = "TemplateNotFound"
)

// ユーザーにそのまま表示するメッセージ
const (
	MsgSafetyBlocked     = "Image generation failed due to safety filters. Please try a different image."
	MsgNoImageProduced   = "No image data found in the API response. The model may have been unable to generate an image."
	MsgInvalidCredential = "Invalid API Key. Please check your configuration."
	MsgGenerationFailed  = "Failed to generate image. The model may be unable to process this request."
	MsgMissingInput      = "Please upload your photo and select a pose template."
	MsgUnknown           = "An unknown error occurred during image generation."
)

// PoseError は分類済みのエラーです。Error() はユーザー向けのメッセージをそのまま返します。
type PoseError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *PoseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func (e *PoseError) Unwrap() error {
	return e.Err
}

// Is は種類が一致すれば真を返すので、errors.Is(err, domain.ErrFetch) のように判定できます。
func (e *PoseError) Is(target error) bool {
	t, ok := target.(*PoseError)
	return ok && t.Kind == e.Kind
}

// 種類判定用のセンチネル
var (
	ErrRead                   = &PoseError{Kind: KindRead}
	ErrFetch                  = &PoseError{Kind: KindFetch}
	ErrMalformedDataReference = &PoseError{Kind: KindMalformedDataReference}
	ErrSafetyBlocked          = &PoseError{Kind: KindSafetyBlocked}
	ErrNoImageProduced        = &PoseError{Kind: KindNoImageProduced}
	ErrInvalidCredential      = &PoseError{Kind: KindInvalidCredential}
	ErrGenerationFailed       = &PoseError{Kind: KindGenerationFailed}
	ErrMissingInput           = &PoseError{Kind: KindMissingInput}
	ErrTemplateNotFound       = &PoseError{Kind: KindTemplateNotFound}
)

// NewError は kind と message から PoseError を作成します。
func NewError(kind ErrorKind, message string, cause error) *PoseError {
	return &PoseError{Kind: kind, Message: message, Err: cause}
}

// KindOf は err に含まれる PoseError の種類を返します。分類されていない場合は空文字です。
func KindOf(err error) ErrorKind {
	var pe *PoseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
