package usecase

import (
	"context"
	"testing"

	"jua-kali/internal/data/entity"
	"jua-kali/internal/dto/request"
	"jua-kali/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completedJob walks a job through apply, accept and complete for fundiA.
func (m *marketplace) completedJob(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	jobID := m.postJob(t)
	application, err := m.jobs.Apply(ctx, m.fundiA, jobID, &request.ApplyRequest{})
	require.NoError(t, err)
	_, err = m.jobs.AcceptApplication(ctx, m.client, jobID, application.ID)
	require.NoError(t, err)
	_, err = m.jobs.Complete(ctx, m.client, jobID)
	require.NoError(t, err)
	return jobID
}

func TestReviewCreate_UpdatesRating(t *testing.T) {
	m := newMarketplace(t)
	ctx := context.Background()

	for _, rating := range []int{5, 4} {
		review, err := m.reviews.Create(ctx, m.client, &request.CreateReviewRequest{
			JobID:   m.completedJob(t),
			Rating:  rating,
			Comment: "Quick and tidy",
		})
		require.NoError(t, err)
		assert.Equal(t, m.fundiA.String(), review.ArtisanID)
	}

	artisan, err := m.artisans.Get(ctx, m.fundiA.String())
	require.NoError(t, err)
	assert.Equal(t, 2, artisan.TotalReviews)
	assert.InDelta(t, 4.5, artisan.AverageRating, 0.001)

	var messages []string
	for _, n := range m.store.Notifications(m.fundiA) {
		if n.Type == entity.NotificationNewReview {
			messages = append(messages, n.Message)
		}
	}
	assert.Contains(t, messages, "You received a new 5-star review for job 'Fix kitchen sink'.")

	page, err := m.reviews.ListByArtisan(ctx, m.fundiA.String(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)
}

func TestReviewCreate_Rules(t *testing.T) {
	m := newMarketplace(t)
	ctx := context.Background()

	openJob := m.postJob(t)
	done := m.completedJob(t)

	tests := []struct {
		name   string
		caller uuid.UUID
		req    request.CreateReviewRequest
		want   error
	}{
		{"rating out of range", m.client, request.CreateReviewRequest{JobID: done, Rating: 6}, apperr.ErrValidation},
		{"job not completed", m.client, request.CreateReviewRequest{JobID: openJob, Rating: 5}, apperr.ErrValidation},
		{"not the owner", m.fundiB, request.CreateReviewRequest{JobID: done, Rating: 5}, apperr.ErrForbidden},
		{"unknown job", m.client, request.CreateReviewRequest{JobID: uuid.NewString(), Rating: 5}, apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.reviews.Create(ctx, tt.caller, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("second review of the same job", func(t *testing.T) {
		_, err := m.reviews.Create(ctx, m.client, &request.CreateReviewRequest{JobID: done, Rating: 3})
		require.NoError(t, err)

		_, err = m.reviews.Create(ctx, m.client, &request.CreateReviewRequest{JobID: done, Rating: 4})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestNotifications(t *testing.T) {
	m := newMarketplace(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := m.jobs.Apply(ctx, m.fundiA, m.postJob(t), &request.ApplyRequest{})
		require.NoError(t, err)
	}

	page, err := m.notes.List(ctx, m.client, &request.NotificationListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 3)

	read := true
	first := page.Data[0].ID

	_, err = m.notes.MarkRead(ctx, m.fundiA, first, &request.MarkNotificationRequest{IsRead: &read})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = m.notes.MarkRead(ctx, m.client, first, &request.MarkNotificationRequest{})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	note, err := m.notes.MarkRead(ctx, m.client, first, &request.MarkNotificationRequest{IsRead: &read})
	require.NoError(t, err)
	assert.True(t, note.IsRead)

	unread := false
	page, err = m.notes.List(ctx, m.client, &request.NotificationListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		IsRead:           &unread,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)

	count, err := m.notes.MarkAllRead(ctx, m.client)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
