package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string identifier for a specific error condition.
// Codes are grouped by module prefix: COMMON, LIG (ligand), RCP (receptor),
// DCK (docking), EXP (export), SRC (external data source).
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeDatabaseError      ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_011"
	ErrCodeMessageQueueError  ErrorCode = "COMMON_012"
	ErrCodeStorageError       ErrorCode = "COMMON_013"

	ErrCodeUnknown ErrorCode = "UNKNOWN"
	ErrCodeOK      ErrorCode = "OK"
)

// Ligand module error codes.
const (
	ErrCodeLigandInvalidSMILES ErrorCode = "LIG_001"
	ErrCodeLigandNotFound      ErrorCode = "LIG_002"
	ErrCodeLigandAlreadyExists ErrorCode = "LIG_003"
	ErrCodeSimilaritySearch    ErrorCode = "LIG_004"
)

// Receptor module error codes.
const (
	ErrCodeReceptorUnknown      ErrorCode = "RCP_001"
	ErrCodeReceptorInvalidFASTA ErrorCode = "RCP_002"
	ErrCodeReceptorInvalidPDBID ErrorCode = "RCP_003"
)

// Docking module error codes.
const (
	ErrCodePredictionFailed ErrorCode = "DCK_001"
	ErrCodeJobNotFound      ErrorCode = "DCK_002"
	ErrCodeJobStateInvalid  ErrorCode = "DCK_003"
)

// Export module error codes.
const (
	ErrCodeExportFailed      ErrorCode = "EXP_001"
	ErrCodeArtifactNotFound  ErrorCode = "EXP_002"
	ErrCodeArtifactUpload    ErrorCode = "EXP_003"
	ErrCodeFormatUnsupported ErrorCode = "EXP_004"
)

// External data source error codes (PubChem, RCSB, AlphaFold).
const (
	ErrCodeSourceUnavailable ErrorCode = "SRC_001"
	ErrCodeSourceRateLimited ErrorCode = "SRC_002"
	ErrCodeSourceParseError  ErrorCode = "SRC_003"
	ErrCodeStructureNotFound ErrorCode = "SRC_004"
)

// errorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var errorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeMessageQueueError:  http.StatusInternalServerError,
	ErrCodeStorageError:       http.StatusInternalServerError,

	ErrCodeLigandInvalidSMILES: http.StatusBadRequest,
	ErrCodeLigandNotFound:      http.StatusNotFound,
	ErrCodeLigandAlreadyExists: http.StatusConflict,
	ErrCodeSimilaritySearch:    http.StatusInternalServerError,

	ErrCodeReceptorUnknown:      http.StatusNotFound,
	ErrCodeReceptorInvalidFASTA: http.StatusBadRequest,
	ErrCodeReceptorInvalidPDBID: http.StatusBadRequest,

	ErrCodePredictionFailed: http.StatusInternalServerError,
	ErrCodeJobNotFound:      http.StatusNotFound,
	ErrCodeJobStateInvalid:  http.StatusConflict,

	ErrCodeExportFailed:      http.StatusInternalServerError,
	ErrCodeArtifactNotFound:  http.StatusNotFound,
	ErrCodeArtifactUpload:    http.StatusInternalServerError,
	ErrCodeFormatUnsupported: http.StatusBadRequest,

	ErrCodeSourceUnavailable: http.StatusServiceUnavailable,
	ErrCodeSourceRateLimited: http.StatusTooManyRequests,
	ErrCodeSourceParseError:  http.StatusBadGateway,
	ErrCodeStructureNotFound: http.StatusNotFound,
}

// errorCodeMessage maps ErrorCodes to default messages.
var errorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeMessageQueueError:  "message queue error",
	ErrCodeStorageError:       "object storage error",

	ErrCodeLigandInvalidSMILES: "invalid SMILES string",
	ErrCodeLigandNotFound:      "ligand not found",
	ErrCodeLigandAlreadyExists: "ligand already exists",
	ErrCodeSimilaritySearch:    "similarity search failed",

	ErrCodeReceptorUnknown:      "unknown receptor key",
	ErrCodeReceptorInvalidFASTA: "invalid FASTA sequence",
	ErrCodeReceptorInvalidPDBID: "invalid PDB identifier",

	ErrCodePredictionFailed: "affinity prediction failed",
	ErrCodeJobNotFound:      "docking job not found",
	ErrCodeJobStateInvalid:  "docking job is not in a valid state for this operation",

	ErrCodeExportFailed:      "export generation failed",
	ErrCodeArtifactNotFound:  "export artifact not found",
	ErrCodeArtifactUpload:    "failed to upload export artifact",
	ErrCodeFormatUnsupported: "unsupported export format",

	ErrCodeSourceUnavailable: "external data source unavailable",
	ErrCodeSourceRateLimited: "external data source rate limited",
	ErrCodeSourceParseError:  "failed to parse data source response",
	ErrCodeStructureNotFound: "structure not found in any data source",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := errorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError reports whether the ErrorCode maps to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError reports whether the ErrorCode maps to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode ("LIG", "DCK", …).
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
