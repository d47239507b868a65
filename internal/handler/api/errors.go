package api

import (
	"net/http"

	"parking-reservation/internal/handler/httperr"
	"parking-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Checked in order; the first sentinel the error carries wins.
var errorMappings = []errorMapping{
	{errs.ErrMissingParameter, http.StatusBadRequest, "Both date and time_slot parameters are required"},
	{errs.ErrInvalidDateFormat, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD"},
	{errs.ErrInvalidTimeSlot, http.StatusBadRequest, "Invalid time slot"},
	{errs.ErrInvalidStatus, http.StatusBadRequest, "Invalid booking status"},
	{errs.ErrInvalidSlotInput, http.StatusBadRequest, "Invalid parking slot data"},
	{errs.ErrInvalidUserInput, http.StatusBadRequest, "Invalid user data"},
	{errs.ErrInvalidSeedCount, http.StatusBadRequest, "Seed count must be positive"},
	{errs.ErrBookingConflict, http.StatusBadRequest, "This parking slot is already booked for the selected date and time slot"},
	{errs.ErrSlotUnavailable, http.StatusBadRequest, "This parking slot is not available"},
	{errs.ErrInvalidTransition, http.StatusBadRequest, "This status change is not allowed"},
	{errs.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{errs.ErrUserInactive, http.StatusForbidden, "Account is inactive"},
	{errs.ErrBookingForbidden, http.StatusForbidden, "You do not have permission to perform this action"},
	{errs.ErrSlotNotFound, http.StatusNotFound, "Parking slot not found"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{errs.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{errs.ErrDuplicateSlotNumber, http.StatusConflict, "A parking slot with this number already exists"},
	{errs.ErrDuplicateUsername, http.StatusConflict, "A user with this username already exists"},
}

func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	httperr.AbortWithError(c, status, err, msg, nil)
}

func respondBindError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
}

func respondUnauthenticated(c *gin.Context) {
	httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Authentication credentials were not provided", nil)
}
