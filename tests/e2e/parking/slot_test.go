//go:build e2e

package parking_test

import (
	"net/http"

	"parking-reservation/internal/domain/user"
	"parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/handler/dto/response"
	"parking-reservation/tests/common/httptest"

	"github.com/stretchr/testify/require"
)

func (s *parkingSuite) TestSlotAdministration() {
	s.Run("管理者は駐車枠を登録できる", func() {
		t := s.T()
		admin := s.login("admin", user.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, slotsURL,
			request.CreateSlotRequest{Number: "E1", ParkingType: "electric"}, admin.token)
		var created response.SlotResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, "E1", created.Number)
		require.Equal(t, "E1 (Electric Charging)", created.DisplayName)
		require.True(t, created.IsAvailable)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, slotURL(created.ID), nil, admin.token)
		var fetched response.SlotResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &fetched)
		require.Equal(t, created.ID, fetched.ID)

		// 同じ番号は登録できない
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, slotsURL,
			request.CreateSlotRequest{Number: "E1", ParkingType: "regular"}, admin.token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already exists")
	})

	s.Run("メンバーは駐車枠を登録できない", func() {
		t := s.T()
		member := s.login("alice", user.RoleMember)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, slotsURL,
			request.CreateSlotRequest{Number: "E2", ParkingType: "electric"}, member.token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("利用停止した枠は空き一覧に出ない", func() {
		t := s.T()
		admin := s.login("admin", user.RoleAdmin)
		for _, number := range []string{"P1", "P2", "P10"} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, slotsURL,
				request.CreateSlotRequest{Number: number, ParkingType: "regular"}, admin.token)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}
		ids := s.slotIDs(admin.token)

		closed := false
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, slotURL(ids["P2"]),
			request.UpdateSlotRequest{IsAvailable: &closed}, admin.token)
		var updated response.SlotResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)
		require.False(t, updated.IsAvailable)

		require.Equal(t, []string{"P1", "P10"}, s.availableNumbers(admin.token, bookingDate, timeSlot))
	})

	s.Run("認証なしでは一覧を取得できない", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, slotsURL, nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Authentication credentials were not provided")
	})
}

func (s *parkingSuite) TestAvailableValidation() {
	tests := []struct {
		name        string
		date        string
		slot        string
		expectedMsg string
	}{
		{name: "日付なし", slot: timeSlot, expectedMsg: "Both date and time_slot parameters are required"},
		{name: "時間帯なし", date: bookingDate, expectedMsg: "Both date and time_slot parameters are required"},
		{name: "存在しない日付", date: "2025-13-40", slot: timeSlot, expectedMsg: "Invalid date format. Use YYYY-MM-DD"},
		{name: "形式違いの日付", date: "06/01/2025", slot: timeSlot, expectedMsg: "Invalid date format. Use YYYY-MM-DD"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()
			member := s.login("alice", user.RoleMember)

			w := httptest.PerformRequest(t, s.Router, http.MethodGet, availableQuery(tt.date, tt.slot), nil, member.token)
			httptest.AssertErrorResponse(t, w, http.StatusBadRequest, tt.expectedMsg)
		})
	}
}
