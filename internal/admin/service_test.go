package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/economy"
)

const (
	adminID    = "100"
	outsiderID = "200"
)

type fixture struct {
	svc      Service
	econ     *MockEconomy
	sessions *MockSessions
	expiry   *MockExpiryScheduler
}

func newFixture() *fixture {
	f := &fixture{
		econ:     &MockEconomy{},
		sessions: &MockSessions{},
		expiry:   &MockExpiryScheduler{},
	}
	f.svc = NewService([]string{adminID, ""}, f.econ, f.sessions, f.expiry)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.econ.AssertExpectations(t)
	f.sessions.AssertExpectations(t)
	f.expiry.AssertExpectations(t)
}

func TestIsAdmin(t *testing.T) {
	f := newFixture()
	assert.True(t, f.svc.IsAdmin(adminID))
	assert.False(t, f.svc.IsAdmin(outsiderID))
	assert.False(t, f.svc.IsAdmin(""), "blank entries in the allow-list must not authorize anyone")
}

func TestNonAdminIsRejectedEverywhere(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.BoostLuck(ctx, outsiderID, BoostRequest{Multiplier: 2, Duration: time.Minute})
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	_, err = f.svc.ResetAll(ctx, outsiderID)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	_, err = f.svc.DeleteUser(ctx, outsiderID, "300")
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	_, err = f.svc.GiveAutoRoll(ctx, outsiderID, TargetAll)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	_, err = f.svc.ListSessions(ctx, outsiderID)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	err = f.svc.SetNotificationChannel(ctx, outsiderID, "555")
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	// nothing downstream may be touched
	f.assertExpectations(t)
}

func TestBoostLuck_SchedulesExpiry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	end := time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC)
	boost := &economy.AdminBoost{Multiplier: 5, Duration: time.Hour, EndsAt: end, Users: 3}

	f.econ.On("ApplyAdminBoost", ctx, 5.0, time.Hour).Return(boost, nil).Once()
	f.expiry.On("ScheduleAt", ctx, end).Return(nil).Once()

	got, err := f.svc.BoostLuck(ctx, adminID, BoostRequest{Multiplier: 5, Duration: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, boost, got)
	f.assertExpectations(t)
}

func TestBoostLuck_ScheduleFailureStillReportsBoost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	boost := &economy.AdminBoost{Multiplier: 2, Duration: time.Minute, EndsAt: time.Unix(100, 0)}

	f.econ.On("ApplyAdminBoost", ctx, 2.0, time.Minute).Return(boost, nil).Once()
	f.expiry.On("ScheduleAt", ctx, boost.EndsAt).Return(errors.New("scheduler down")).Once()

	got, err := f.svc.BoostLuck(ctx, adminID, BoostRequest{Multiplier: 2, Duration: time.Minute})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduler down")
	assert.Equal(t, boost, got)
}

func TestBoostLuck_ValidatesRequest(t *testing.T) {
	tests := []struct {
		name string
		req  BoostRequest
	}{
		{"zero multiplier", BoostRequest{Multiplier: 0, Duration: time.Minute}},
		{"negative multiplier", BoostRequest{Multiplier: -2, Duration: time.Minute}},
		{"absurd multiplier", BoostRequest{Multiplier: 1e13, Duration: time.Minute}},
		{"zero duration", BoostRequest{Multiplier: 2, Duration: 0}},
		{"negative duration", BoostRequest{Multiplier: 2, Duration: -time.Second}},
		{"longer than a week", BoostRequest{Multiplier: 2, Duration: 8 * 24 * time.Hour}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.BoostLuck(context.Background(), adminID, tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			f.econ.AssertNotCalled(t, "ApplyAdminBoost", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestResetAll_DiscardsSessionsBeforeClearingData(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	var order []string

	f.sessions.On("DiscardAll", ctx).Return(2).Run(func(mock.Arguments) { order = append(order, "discard") }).Once()
	f.econ.On("ResetAll", ctx).Return(7, nil).Run(func(mock.Arguments) { order = append(order, "reset") }).Once()

	res, err := f.svc.ResetAll(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, &ResetResult{Users: 7, Sessions: 2}, res)
	assert.Equal(t, []string{"discard", "reset"}, order)
	f.assertExpectations(t)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("discards the session before deleting the record", func(t *testing.T) {
		f := newFixture()
		var order []string
		f.sessions.On("Discard", ctx, "300").Return(true).Run(func(mock.Arguments) { order = append(order, "discard") }).Once()
		f.econ.On("DeleteUser", ctx, "300").Return(true, nil).Run(func(mock.Arguments) { order = append(order, "delete") }).Once()

		res, err := f.svc.DeleteUser(ctx, adminID, "300")
		require.NoError(t, err)
		assert.Equal(t, &DeleteResult{Target: "300", Users: 1, Sessions: 1}, res)
		assert.Equal(t, []string{"discard", "delete"}, order)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture()
		f.sessions.On("Discard", ctx, "404").Return(false).Once()
		f.econ.On("DeleteUser", ctx, "404").Return(false, nil).Once()

		_, err := f.svc.DeleteUser(ctx, adminID, "404")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("all", func(t *testing.T) {
		f := newFixture()
		f.sessions.On("DiscardAll", ctx).Return(1).Once()
		f.econ.On("ResetAll", ctx).Return(4, nil).Once()

		res, err := f.svc.DeleteUser(ctx, adminID, TargetAll)
		require.NoError(t, err)
		assert.Equal(t, &DeleteResult{Target: TargetAll, Users: 4, Sessions: 1}, res)
		f.assertExpectations(t)
	})

	t.Run("empty target", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.DeleteUser(ctx, adminID, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestGiveAutoRoll(t *testing.T) {
	ctx := context.Background()

	t.Run("single user", func(t *testing.T) {
		f := newFixture()
		info := &domain.SessionInfo{UserID: "300", SessionID: "s1", Remaining: 6 * time.Hour}
		f.sessions.On("Start", ctx, "300").Return(info, nil).Once()

		res, err := f.svc.GiveAutoRoll(ctx, adminID, "300")
		require.NoError(t, err)
		assert.Equal(t, []domain.SessionInfo{*info}, res.Started)
	})

	t.Run("single user already running", func(t *testing.T) {
		f := newFixture()
		f.sessions.On("Start", ctx, "300").Return(nil, domain.ErrSessionAlreadyRunning).Once()

		_, err := f.svc.GiveAutoRoll(ctx, adminID, "300")
		assert.ErrorIs(t, err, domain.ErrSessionAlreadyRunning)
	})

	t.Run("all skips running sessions and joins failures", func(t *testing.T) {
		f := newFixture()
		f.econ.On("KnownUsers").Return([]string{"1", "2", "3"}).Once()
		f.sessions.On("Start", ctx, "1").Return(&domain.SessionInfo{UserID: "1"}, nil).Once()
		f.sessions.On("Start", ctx, "2").Return(nil, domain.ErrSessionAlreadyRunning).Once()
		f.sessions.On("Start", ctx, "3").Return(nil, errors.New("disk full")).Once()

		res, err := f.svc.GiveAutoRoll(ctx, adminID, TargetAll)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		require.Len(t, res.Started, 1)
		assert.Equal(t, "1", res.Started[0].UserID)
		assert.Equal(t, []string{"2"}, res.Skipped)
		f.assertExpectations(t)
	})
}

func TestListSessionsAndChannel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sessions := []domain.SessionInfo{{UserID: "1"}, {UserID: "2"}}
	f.sessions.On("List").Return(sessions).Once()
	f.econ.On("SetNotificationChannel", ctx, domain.Snowflake("555")).Return(nil).Once()

	got, err := f.svc.ListSessions(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, sessions, got)

	require.NoError(t, f.svc.SetNotificationChannel(ctx, adminID, "555"))
	f.assertExpectations(t)
}
