package domain

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/smithy-go"
)

/* Sample error envelope:

<?xml version="1.0" encoding="UTF-8"?>
<Error>
	<Code>AccessDenied</Code>
	<Message>Access Denied</Message>
	<Resource>/mybucket/myphoto.jpg</Resource>
	<RequestId>F19772218238A85A</RequestId>
	<HostId>GuWkjyviSiGHizehqpmsD1ndz5NClSP19DOT+s2mv7gXGQ8/X1lhbDGiIJEXpGFD</HostId>
</Error>
*/

// ErrorCode is a service error code as it appears in <Error><Code>.
type ErrorCode string

// CodeUnknown marks a code that is not in the known table. The wire value is kept
// in ServiceError.RawCode.
const CodeUnknown ErrorCode = "Unknown"

// Known service error codes.
const (
	CodeAccessControlListNotSupported     ErrorCode = "AccessControlListNotSupported"
	CodeAccessDenied                      ErrorCode = "AccessDenied"
	CodeAccessPointAlreadyOwnedByYou      ErrorCode = "AccessPointAlreadyOwnedByYou"
	CodeAccountProblem                    ErrorCode = "AccountProblem"
	CodeAllAccessDisabled                 ErrorCode = "AllAccessDisabled"
	CodeAmbiguousGrantByEmailAddress      ErrorCode = "AmbiguousGrantByEmailAddress"
	CodeAuthorizationHeaderMalformed      ErrorCode = "AuthorizationHeaderMalformed"
	CodeBadDigest                         ErrorCode = "BadDigest"
	CodeBucketAlreadyExists               ErrorCode = "BucketAlreadyExists"
	CodeBucketAlreadyOwnedByYou           ErrorCode = "BucketAlreadyOwnedByYou"
	CodeBucketNotEmpty                    ErrorCode = "BucketNotEmpty"
	CodeClientTokenConflict               ErrorCode = "ClientTokenConflict"
	CodeCredentialsNotSupported           ErrorCode = "CredentialsNotSupported"
	CodeCrossLocationLoggingProhibited    ErrorCode = "CrossLocationLoggingProhibited"
	CodeEntityTooSmall                    ErrorCode = "EntityTooSmall"
	CodeEntityTooLarge                    ErrorCode = "EntityTooLarge"
	CodeExpiredToken                      ErrorCode = "ExpiredToken"
	CodeIllegalLocationConstraint         ErrorCode = "IllegalLocationConstraintException"
	CodeIllegalVersioningConfiguration    ErrorCode = "IllegalVersioningConfigurationException"
	CodeIncompleteBody                    ErrorCode = "IncompleteBody"
	CodeIncorrectNumberOfFilesInPost      ErrorCode = "IncorrectNumberOfFilesInPostRequest"
	CodeInlineDataTooLarge                ErrorCode = "InlineDataTooLarge"
	CodeInternalError                     ErrorCode = "InternalError"
	CodeInvalidAccessKeyID                ErrorCode = "InvalidAccessKeyId"
	CodeInvalidArgument                   ErrorCode = "InvalidArgument"
	CodeInvalidBucketName                 ErrorCode = "InvalidBucketName"
	CodeInvalidBucketState                ErrorCode = "InvalidBucketState"
	CodeInvalidDigest                     ErrorCode = "InvalidDigest"
	CodeInvalidEncryptionAlgorithm        ErrorCode = "InvalidEncryptionAlgorithmError"
	CodeInvalidLocationConstraint         ErrorCode = "InvalidLocationConstraint"
	CodeInvalidObjectState                ErrorCode = "InvalidObjectState"
	CodeInvalidPart                       ErrorCode = "InvalidPart"
	CodeInvalidPartOrder                  ErrorCode = "InvalidPartOrder"
	CodeInvalidPayer                      ErrorCode = "InvalidPayer"
	CodeInvalidPolicyDocument             ErrorCode = "InvalidPolicyDocument"
	CodeInvalidRange                      ErrorCode = "InvalidRange"
	CodeInvalidRequest                    ErrorCode = "InvalidRequest"
	CodeInvalidSecurity                   ErrorCode = "InvalidSecurity"
	CodeInvalidSOAPRequest                ErrorCode = "InvalidSOAPRequest"
	CodeInvalidStorageClass               ErrorCode = "InvalidStorageClass"
	CodeInvalidTargetBucketForLogging     ErrorCode = "InvalidTargetBucketForLogging"
	CodeInvalidToken                      ErrorCode = "InvalidToken"
	CodeInvalidURI                        ErrorCode = "InvalidURI"
	CodeKeyTooLong                        ErrorCode = "KeyTooLongError"
	CodeMalformedACL                      ErrorCode = "MalformedACLError"
	CodeMalformedPOSTRequest              ErrorCode = "MalformedPOSTRequest"
	CodeMalformedXML                      ErrorCode = "MalformedXML"
	CodeMaxMessageLengthExceeded          ErrorCode = "MaxMessageLengthExceeded"
	CodeMaxPostPreDataLengthExceeded      ErrorCode = "MaxPostPreDataLengthExceededError"
	CodeMetadataTooLarge                  ErrorCode = "MetadataTooLarge"
	CodeMethodNotAllowed                  ErrorCode = "MethodNotAllowed"
	CodeMissingContentLength              ErrorCode = "MissingContentLength"
	CodeMissingRequestBody                ErrorCode = "MissingRequestBodyError"
	CodeMissingSecurityElement            ErrorCode = "MissingSecurityElement"
	CodeMissingSecurityHeader             ErrorCode = "MissingSecurityHeader"
	CodeNoLoggingStatusForKey             ErrorCode = "NoLoggingStatusForKey"
	CodeNoSuchBucket                      ErrorCode = "NoSuchBucket"
	CodeNoSuchBucketPolicy                ErrorCode = "NoSuchBucketPolicy"
	CodeNoSuchCORSConfiguration           ErrorCode = "NoSuchCORSConfiguration"
	CodeNoSuchKey                         ErrorCode = "NoSuchKey"
	CodeNoSuchLifecycleConfiguration      ErrorCode = "NoSuchLifecycleConfiguration"
	CodeNoSuchObjectLockConfiguration     ErrorCode = "NoSuchObjectLockConfiguration"
	CodeNoSuchTagSet                      ErrorCode = "NoSuchTagSet"
	CodeNoSuchUpload                      ErrorCode = "NoSuchUpload"
	CodeNoSuchVersion                     ErrorCode = "NoSuchVersion"
	CodeNoSuchWebsiteConfiguration        ErrorCode = "NoSuchWebsiteConfiguration"
	CodeNotImplemented                    ErrorCode = "NotImplemented"
	CodeNotSignedUp                       ErrorCode = "NotSignedUp"
	CodeOperationAborted                  ErrorCode = "OperationAborted"
	CodePermanentRedirect                 ErrorCode = "PermanentRedirect"
	CodePreconditionFailed                ErrorCode = "PreconditionFailed"
	CodeRedirect                          ErrorCode = "Redirect"
	CodeRequestIsNotMultiPartContent      ErrorCode = "RequestIsNotMultiPartContent"
	CodeRequestTimeout                    ErrorCode = "RequestTimeout"
	CodeRequestTimeTooSkewed              ErrorCode = "RequestTimeTooSkewed"
	CodeRequestTorrentOfBucket            ErrorCode = "RequestTorrentOfBucketError"
	CodeRestoreAlreadyInProgress          ErrorCode = "RestoreAlreadyInProgress"
	CodeServerSideEncryptionConfigMissing ErrorCode = "ServerSideEncryptionConfigurationNotFoundError"
	CodeServiceUnavailable                ErrorCode = "ServiceUnavailable"
	CodeSignatureDoesNotMatch             ErrorCode = "SignatureDoesNotMatch"
	CodeSlowDown                          ErrorCode = "SlowDown"
	CodeTemporaryRedirect                 ErrorCode = "TemporaryRedirect"
	CodeTokenRefreshRequired              ErrorCode = "TokenRefreshRequired"
	CodeTooManyBuckets                    ErrorCode = "TooManyBuckets"
	CodeUnexpectedContent                 ErrorCode = "UnexpectedContent"
	CodeUnresolvableGrantByEmailAddress   ErrorCode = "UnresolvableGrantByEmailAddress"
	CodeUserKeyMustBeSpecified            ErrorCode = "UserKeyMustBeSpecified"
)

type codeInfo struct {
	status    int
	retryable bool
}

var knownCodes = map[ErrorCode]codeInfo{
	CodeAccessControlListNotSupported:     {http.StatusBadRequest, false},
	CodeAccessDenied:                      {http.StatusForbidden, false},
	CodeAccessPointAlreadyOwnedByYou:      {http.StatusConflict, false},
	CodeAccountProblem:                    {http.StatusForbidden, false},
	CodeAllAccessDisabled:                 {http.StatusForbidden, false},
	CodeAmbiguousGrantByEmailAddress:      {http.StatusBadRequest, false},
	CodeAuthorizationHeaderMalformed:      {http.StatusBadRequest, false},
	CodeBadDigest:                         {http.StatusBadRequest, false},
	CodeBucketAlreadyExists:               {http.StatusConflict, false},
	CodeBucketAlreadyOwnedByYou:           {http.StatusConflict, false},
	CodeBucketNotEmpty:                    {http.StatusConflict, false},
	CodeClientTokenConflict:               {http.StatusConflict, false},
	CodeCredentialsNotSupported:           {http.StatusBadRequest, false},
	CodeCrossLocationLoggingProhibited:    {http.StatusForbidden, false},
	CodeEntityTooSmall:                    {http.StatusBadRequest, false},
	CodeEntityTooLarge:                    {http.StatusBadRequest, false},
	CodeExpiredToken:                      {http.StatusBadRequest, false},
	CodeIllegalLocationConstraint:         {http.StatusBadRequest, false},
	CodeIllegalVersioningConfiguration:    {http.StatusBadRequest, false},
	CodeIncompleteBody:                    {http.StatusBadRequest, false},
	CodeIncorrectNumberOfFilesInPost:      {http.StatusBadRequest, false},
	CodeInlineDataTooLarge:                {http.StatusBadRequest, false},
	CodeInternalError:                     {http.StatusInternalServerError, true},
	CodeInvalidAccessKeyID:                {http.StatusForbidden, false},
	CodeInvalidArgument:                   {http.StatusBadRequest, false},
	CodeInvalidBucketName:                 {http.StatusBadRequest, false},
	CodeInvalidBucketState:                {http.StatusConflict, false},
	CodeInvalidDigest:                     {http.StatusBadRequest, false},
	CodeInvalidEncryptionAlgorithm:        {http.StatusBadRequest, false},
	CodeInvalidLocationConstraint:         {http.StatusBadRequest, false},
	CodeInvalidObjectState:                {http.StatusForbidden, false},
	CodeInvalidPart:                       {http.StatusBadRequest, false},
	CodeInvalidPartOrder:                  {http.StatusBadRequest, false},
	CodeInvalidPayer:                      {http.StatusForbidden, false},
	CodeInvalidPolicyDocument:             {http.StatusBadRequest, false},
	CodeInvalidRange:                      {http.StatusRequestedRangeNotSatisfiable, false},
	CodeInvalidRequest:                    {http.StatusBadRequest, false},
	CodeInvalidSecurity:                   {http.StatusForbidden, false},
	CodeInvalidSOAPRequest:                {http.StatusBadRequest, false},
	CodeInvalidStorageClass:               {http.StatusBadRequest, false},
	CodeInvalidTargetBucketForLogging:     {http.StatusBadRequest, false},
	CodeInvalidToken:                      {http.StatusBadRequest, false},
	CodeInvalidURI:                        {http.StatusBadRequest, false},
	CodeKeyTooLong:                        {http.StatusBadRequest, false},
	CodeMalformedACL:                      {http.StatusBadRequest, false},
	CodeMalformedPOSTRequest:              {http.StatusBadRequest, false},
	CodeMalformedXML:                      {http.StatusBadRequest, false},
	CodeMaxMessageLengthExceeded:          {http.StatusBadRequest, false},
	CodeMaxPostPreDataLengthExceeded:      {http.StatusBadRequest, false},
	CodeMetadataTooLarge:                  {http.StatusBadRequest, false},
	CodeMethodNotAllowed:                  {http.StatusMethodNotAllowed, false},
	CodeMissingContentLength:              {http.StatusLengthRequired, false},
	CodeMissingRequestBody:                {http.StatusBadRequest, false},
	CodeMissingSecurityElement:            {http.StatusBadRequest, false},
	CodeMissingSecurityHeader:             {http.StatusBadRequest, false},
	CodeNoLoggingStatusForKey:             {http.StatusBadRequest, false},
	CodeNoSuchBucket:                      {http.StatusNotFound, false},
	CodeNoSuchBucketPolicy:                {http.StatusNotFound, false},
	CodeNoSuchCORSConfiguration:           {http.StatusNotFound, false},
	CodeNoSuchKey:                         {http.StatusNotFound, false},
	CodeNoSuchLifecycleConfiguration:      {http.StatusNotFound, false},
	CodeNoSuchObjectLockConfiguration:     {http.StatusNotFound, false},
	CodeNoSuchTagSet:                      {http.StatusNotFound, false},
	CodeNoSuchUpload:                      {http.StatusNotFound, false},
	CodeNoSuchVersion:                     {http.StatusNotFound, false},
	CodeNoSuchWebsiteConfiguration:        {http.StatusNotFound, false},
	CodeNotImplemented:                    {http.StatusNotImplemented, false},
	CodeNotSignedUp:                       {http.StatusForbidden, false},
	CodeOperationAborted:                  {http.StatusConflict, true},
	CodePermanentRedirect:                 {http.StatusMovedPermanently, false},
	CodePreconditionFailed:                {http.StatusPreconditionFailed, false},
	CodeRedirect:                          {http.StatusTemporaryRedirect, false},
	CodeRequestIsNotMultiPartContent:      {http.StatusBadRequest, false},
	CodeRequestTimeout:                    {http.StatusBadRequest, true},
	CodeRequestTimeTooSkewed:              {http.StatusForbidden, false},
	CodeRequestTorrentOfBucket:            {http.StatusBadRequest, false},
	CodeRestoreAlreadyInProgress:          {http.StatusConflict, false},
	CodeServerSideEncryptionConfigMissing: {http.StatusNotFound, false},
	CodeServiceUnavailable:                {http.StatusServiceUnavailable, true},
	CodeSignatureDoesNotMatch:             {http.StatusForbidden, false},
	CodeSlowDown:                          {http.StatusServiceUnavailable, true},
	CodeTemporaryRedirect:                 {http.StatusTemporaryRedirect, false},
	CodeTokenRefreshRequired:              {http.StatusBadRequest, false},
	CodeTooManyBuckets:                    {http.StatusBadRequest, false},
	CodeUnexpectedContent:                 {http.StatusBadRequest, false},
	CodeUnresolvableGrantByEmailAddress:   {http.StatusBadRequest, false},
	CodeUserKeyMustBeSpecified:            {http.StatusBadRequest, false},
}

// LookupErrorCode maps a wire code to its table entry. ok is false for codes outside
// the table.
func LookupErrorCode(raw string) (ErrorCode, bool) {
	c := ErrorCode(raw)
	if _, ok := knownCodes[c]; ok {
		return c, true
	}
	return CodeUnknown, false
}

// KnownErrorCodes returns every code in the table, in no particular order.
func KnownErrorCodes() []ErrorCode {
	out := make([]ErrorCode, 0, len(knownCodes))
	for c := range knownCodes {
		out = append(out, c)
	}
	return out
}

// HTTPStatus is the status the service documents for the code, 0 if unknown.
func (c ErrorCode) HTTPStatus() int {
	return knownCodes[c].status
}

// IsRetryable reports whether the service documents the condition as transient.
func (c ErrorCode) IsRetryable() bool {
	return knownCodes[c].retryable
}

// Fault attributes the code to the client or the server.
func (c ErrorCode) Fault() smithy.ErrorFault {
	info, ok := knownCodes[c]
	switch {
	case !ok:
		return smithy.FaultUnknown
	case info.status >= 500:
		return smithy.FaultServer
	default:
		return smithy.FaultClient
	}
}

// ServiceError is a failure the service reported through its XML error envelope.
type ServiceError struct {
	// Code is the table entry for RawCode, or CodeUnknown.
	Code ErrorCode
	// RawCode is the <Code> text as received.
	RawCode string
	// Message is the optional <Message> text, verbatim.
	Message string

	Resource   string
	RequestID  string
	HostID     string
	StatusCode int
}

// NewServiceError builds a ServiceError for a wire code. Codes outside the table map
// to CodeUnknown and keep the wire value in RawCode.
func NewServiceError(raw, message string) *ServiceError {
	code, _ := LookupErrorCode(raw)
	return &ServiceError{
		Code:    code,
		RawCode: raw,
		Message: message,
	}
}

var _ smithy.APIError = (*ServiceError)(nil)

func (e *ServiceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: service error %s", ErrorDomain, e.ErrorCode())
	if e.StatusCode != 0 {
		base += fmt.Sprintf(" (status=%d)", e.StatusCode)
	}
	if e.Message != "" {
		base += ": " + e.Message
	}
	return base
}

// Domain returns ErrorDomain.
func (e *ServiceError) Domain() string { return ErrorDomain }

// ErrorCode returns the wire code.
func (e *ServiceError) ErrorCode() string {
	if e.RawCode != "" {
		return e.RawCode
	}
	return string(e.Code)
}

// ErrorMessage returns the <Message> text.
func (e *ServiceError) ErrorMessage() string { return e.Message }

// ErrorFault attributes the failure to the client or the server.
func (e *ServiceError) ErrorFault() smithy.ErrorFault {
	if e.Code == CodeUnknown && e.StatusCode >= 500 {
		return smithy.FaultServer
	}
	if e.Code == CodeUnknown && e.StatusCode >= 400 {
		return smithy.FaultClient
	}
	return e.Code.Fault()
}

// Is matches another *ServiceError with the same code. Unknown codes also compare the
// raw code unless the target leaves it empty.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok || t == nil {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	if e.Code == CodeUnknown && t.RawCode != "" {
		return t.RawCode == e.RawCode
	}
	return true
}

// IsServiceCode reports whether err carries a ServiceError with the given code.
func IsServiceCode(err error, code ErrorCode) bool {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
