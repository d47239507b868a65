//go:build unit

package commands_test

import (
	"context"
	"time"

	"parking-reservation/internal/domain/user"
	reqdto "parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/infra/memstore"
	"parking-reservation/internal/pkg/clock"
	"parking-reservation/internal/pkg/jwt"
	"parking-reservation/internal/pkg/metrics"
	"parking-reservation/internal/usecase/commands"
	"parking-reservation/internal/usecase/queries"
	"parking-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const testPassword = "password123"

// harness wires the command and query sides to one in-memory store.
type harness struct {
	suite.Suite

	ctx      context.Context
	uow      shared.UnitOfWork
	clock    *clock.MockClock
	metrics  *metrics.Metrics
	jwt      *jwt.Service
	auth     commands.AuthCommands
	slots    commands.SlotCommands
	bookings commands.BookingCommands
	slotQ    queries.SlotQueries
	bookingQ queries.BookingQueries
	userQ    queries.UserQueries
}

func (h *harness) SetupTest() {
	h.ctx = context.Background()
	h.uow = memstore.NewUoW(memstore.New())
	h.clock = clock.NewMockClock(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	h.metrics = metrics.New()
	h.jwt = jwt.NewService("test-secret", time.Hour, h.clock)

	h.auth = commands.NewAuthCommands(h.uow, h.jwt, h.clock)
	h.slots = commands.NewSlotCommands(h.uow, h.clock)
	h.bookings = commands.NewBookingCommands(h.uow, h.clock, h.metrics)
	h.slotQ = queries.NewSlotQueries(h.uow)
	h.bookingQ = queries.NewBookingQueries(h.uow)
	h.userQ = queries.NewUserQueries(h.uow)
}

func (h *harness) createUser(username string, role user.Role) uuid.UUID {
	h.T().Helper()
	view, err := h.auth.CreateUser(h.ctx, reqdto.CreateUserRequest{
		Username: username,
		Password: testPassword,
		Role:     role.String(),
	})
	h.Require().NoError(err)
	return view.ID
}

// seedSlots returns the ids of P1..Pn keyed by number.
func (h *harness) seedSlots(n int) map[string]uuid.UUID {
	h.T().Helper()
	_, err := h.slots.Seed(h.ctx, n)
	h.Require().NoError(err)

	views, err := h.slotQ.List(h.ctx)
	h.Require().NoError(err)
	ids := make(map[string]uuid.UUID, len(views))
	for _, v := range views {
		ids[v.Number] = v.ID
	}
	return ids
}

func (h *harness) book(userID, slotID uuid.UUID, date, timeSlot string) (*queries.BookingView, error) {
	return h.bookings.Create(h.ctx, reqdto.CreateBookingRequest{
		ParkingSlot: slotID,
		BookingDate: date,
		TimeSlot:    timeSlot,
	}, userID)
}

func (h *harness) available(date, timeSlot string) []string {
	h.T().Helper()
	views, err := h.slotQ.Available(h.ctx, reqdto.AvailableSlotsQuery{Date: date, TimeSlot: timeSlot})
	h.Require().NoError(err)
	numbers := make([]string, 0, len(views))
	for _, v := range views {
		numbers = append(numbers, v.Number)
	}
	return numbers
}
