//go:build e2e

package parking_test

import (
	"net/http"
	"sync"

	"parking-reservation/internal/domain/user"
	"parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/handler/dto/response"
	"parking-reservation/tests/common/dbtest"
	"parking-reservation/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func (s *parkingSuite) createBooking(token string, slotID uuid.UUID, date, slot string) *http.Response {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
		request.CreateBookingRequest{ParkingSlot: slotID, BookingDate: date, TimeSlot: slot}, token)
	return w.Result()
}

func (s *parkingSuite) TestBookingLifecycle() {
	s.Run("予約から取消し、再予約まで", func() {
		t := s.T()
		alice := s.login("alice", user.RoleMember)
		bob := s.login("bob", user.RoleMember)
		p1 := dbtest.CreateTestSlot(t, s.DB, "P1", "regular", true)
		dbtest.CreateTestSlot(t, s.DB, "P2", "premium", true)

		require.Equal(t, []string{"P1", "P2"}, s.availableNumbers(alice.token, bookingDate, timeSlot))

		// 予約
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{ParkingSlot: p1, BookingDate: bookingDate, TimeSlot: timeSlot}, alice.token)
		var booked response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &booked)
		require.Equal(t, alice.id, booked.UserID)
		require.Equal(t, "alice", booked.User.Username)
		require.Equal(t, p1, booked.SlotID)
		require.Equal(t, "P1 (Regular)", booked.Slot.DisplayName)
		require.Equal(t, bookingDate, booked.BookingDate)
		require.Equal(t, timeSlot, booked.TimeSlot)
		require.Equal(t, "booked", booked.Status)

		require.Equal(t, []string{"P2"}, s.availableNumbers(alice.token, bookingDate, timeSlot))

		// 二重予約は拒否される
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{ParkingSlot: p1, BookingDate: bookingDate, TimeSlot: timeSlot}, bob.token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "already booked")

		// 他人の予約は取消せない
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, bookingURL(booked.ID),
			request.UpdateBookingRequest{Status: "cancelled"}, bob.token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		// 本人は取消せる
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, bookingURL(booked.ID),
			request.UpdateBookingRequest{Status: "cancelled"}, alice.token)
		var cancelled response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		require.Equal(t, "cancelled", cancelled.Status)

		require.Equal(t, []string{"P1", "P2"}, s.availableNumbers(alice.token, bookingDate, timeSlot))

		// 取消し後は他のユーザーが予約できる
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{ParkingSlot: p1, BookingDate: bookingDate, TimeSlot: timeSlot}, bob.token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}

func (s *parkingSuite) TestBookingOwnership() {
	s.Run("一覧と詳細は本人の予約のみ", func() {
		t := s.T()
		alice := s.login("alice", user.RoleMember)
		bob := s.login("bob", user.RoleMember)
		p1 := dbtest.CreateTestSlot(t, s.DB, "P1", "regular", true)
		p2 := dbtest.CreateTestSlot(t, s.DB, "P2", "regular", true)

		require.Equal(t, http.StatusCreated, s.createBooking(alice.token, p1, bookingDate, timeSlot).StatusCode)
		require.Equal(t, http.StatusCreated, s.createBooking(bob.token, p2, bookingDate, timeSlot).StatusCode)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, alice.token)
		var mine []response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &mine)
		require.Len(t, mine, 1)
		require.Equal(t, alice.id, mine[0].UserID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?status=cancelled", nil, alice.token)
		var none []response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &none)
		require.Empty(t, none)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingURL(mine[0].ID), nil, bob.token)
		require.Equal(t, http.StatusForbidden, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingURL(uuid.New()), nil, bob.token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")
	})
}

func (s *parkingSuite) TestBookingValidation() {
	tests := []struct {
		name           string
		build          func(slotID uuid.UUID) request.CreateBookingRequest
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "存在しない日付",
			build: func(slotID uuid.UUID) request.CreateBookingRequest {
				return request.CreateBookingRequest{ParkingSlot: slotID, BookingDate: "2025-13-40", TimeSlot: timeSlot}
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid date format",
		},
		{
			name: "存在しない駐車枠",
			build: func(uuid.UUID) request.CreateBookingRequest {
				return request.CreateBookingRequest{ParkingSlot: uuid.New(), BookingDate: bookingDate, TimeSlot: timeSlot}
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Parking slot not found",
		},
		{
			name: "時間帯が長すぎる",
			build: func(slotID uuid.UUID) request.CreateBookingRequest {
				return request.CreateBookingRequest{ParkingSlot: slotID, BookingDate: bookingDate, TimeSlot: "123456789012345678901"}
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()
			alice := s.login("alice", user.RoleMember)
			p1 := dbtest.CreateTestSlot(t, s.DB, "P1", "regular", true)

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, tt.build(p1), alice.token)
			httptest.AssertErrorResponse(t, w, tt.expectedStatus, tt.expectedMsg)
		})
	}

	s.Run("利用停止中の枠", func() {
		t := s.T()
		alice := s.login("alice", user.RoleMember)
		closed := dbtest.CreateTestSlot(t, s.DB, "P9", "regular", false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{ParkingSlot: closed, BookingDate: bookingDate, TimeSlot: timeSlot}, alice.token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "not available")
	})
}

func (s *parkingSuite) TestDeleteCancelsBooking() {
	s.Run("DELETEは論理取消し", func() {
		t := s.T()
		alice := s.login("alice", user.RoleMember)
		p1 := dbtest.CreateTestSlot(t, s.DB, "P1", "regular", true)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{ParkingSlot: p1, BookingDate: bookingDate, TimeSlot: timeSlot}, alice.token)
		var booked response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &booked)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingURL(booked.ID), nil, alice.token)
		var cancelled response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		require.Equal(t, "cancelled", cancelled.Status)

		// 取消し済みは再度取消せない
		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingURL(booked.ID), nil, alice.token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "not allowed")
	})
}

func (s *parkingSuite) TestConcurrentBooking() {
	s.Run("同時予約は一件のみ成功する", func() {
		t := s.T()
		const attempts = 20

		p1 := dbtest.CreateTestSlot(t, s.DB, "P1", "regular", true)
		actors := make([]actor, attempts)
		for i := range actors {
			actors[i] = s.login(uuid.NewString()[:8], user.RoleMember)
		}

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			statuses = map[int]int{}
		)
		start := make(chan struct{})
		for _, a := range actors {
			wg.Add(1)
			go func(token string) {
				defer wg.Done()
				<-start
				code := s.createBooking(token, p1, bookingDate, timeSlot).StatusCode

				mu.Lock()
				statuses[code]++
				mu.Unlock()
			}(a.token)
		}
		close(start)
		wg.Wait()

		require.Equal(t, map[int]int{http.StatusCreated: 1, http.StatusBadRequest: attempts - 1}, statuses)
		require.Equal(t, 1, dbtest.CountActiveBookings(t, s.DB, p1, bookingDate, timeSlot))
	})
}
