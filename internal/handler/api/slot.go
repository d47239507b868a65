package api

import (
	"net/http"

	reqdto "parking-reservation/internal/handler/dto/request"
	resdto "parking-reservation/internal/handler/dto/response"
	"parking-reservation/internal/handler/httperr"
	"parking-reservation/internal/usecase/commands"
	"parking-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	cmds commands.SlotCommands
	q    queries.SlotQueries
}

func NewSlotHandler(cmds commands.SlotCommands, q queries.SlotQueries) *SlotHandler {
	return &SlotHandler{cmds: cmds, q: q}
}

// @Summary List parking slots
// @Description List every parking slot ordered by number
// @Tags parking-slots
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.SlotResponse
// @Failure 401 {object} httperr.Response
// @Router /parking-slots/ [get]
func (h *SlotHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeSlots(c, views)
}

// @Summary Available parking slots
// @Description List slots that are free for a date and time slot
// @Tags parking-slots
// @Security BearerAuth
// @Produce json
// @Param date query string true "Booking date (YYYY-MM-DD)"
// @Param time_slot query string true "Time slot label"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /parking-slots/available/ [get]
func (h *SlotHandler) Available(c *gin.Context) {
	var query reqdto.AvailableSlotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	views, err := h.q.Available(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeSlots(c, views)
}

// @Summary Get parking slot
// @Tags parking-slots
// @Security BearerAuth
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /parking-slots/{id}/ [get]
func (h *SlotHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeSlot(c, http.StatusOK, view)
}

// @Summary Create parking slot
// @Description Create a parking slot (admin only)
// @Tags parking-slots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateSlotRequest true "Create slot request"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /parking-slots/ [post]
func (h *SlotHandler) Create(c *gin.Context) {
	var req reqdto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeSlot(c, http.StatusCreated, view)
}

// @Summary Update parking slot availability
// @Description Open or close a parking slot for new bookings (admin only)
// @Tags parking-slots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param request body reqdto.UpdateSlotRequest true "Update slot request"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /parking-slots/{id}/ [patch]
func (h *SlotHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.cmds.SetAvailability(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeSlot(c, http.StatusOK, view)
}

func (h *SlotHandler) writeSlot(c *gin.Context, status int, view *queries.SlotView) {
	res, err := resdto.FromSlotView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, res)
}

func (h *SlotHandler) writeSlots(c *gin.Context, views []*queries.SlotView) {
	res, err := resdto.FromSlotViews(views)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
