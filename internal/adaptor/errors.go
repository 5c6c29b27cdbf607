package adaptor

import (
	"net/http"

	"club-booking/internal/usecase"
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps domain error kinds to HTTP responses. Unexpected
// errors never leak their message to the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch usecase.KindOf(err) {
	case usecase.KindNotFound:
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case usecase.KindValidation:
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case usecase.KindConflict:
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case usecase.KindForbidden:
		log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error())

	case usecase.KindGone:
		log.Warn(operation+" failed - gone",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseGone(w, err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
