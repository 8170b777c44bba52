package api

import (
	"github.com/iudanet/todokeeper/internal/models"
	"github.com/iudanet/todokeeper/pkg/api"
)

func userFromDTO(u api.User) models.UserProfile {
	return models.UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		JoinedAt:  u.DateJoined,
		TodoCount: u.TodoCount,
	}
}

func taskFromDTO(t api.Todo) models.Task {
	return models.Task{
		ID:            t.ID,
		OwnerID:       t.User,
		OwnerUsername: t.Username,
		Title:         t.Title,
		Description:   t.Description,
		Completed:     t.Completed,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func pageFromDTO[D, T any](p api.Paginated[D], q PageQuery, conv func(D) T) *models.Page[T] {
	items := make([]T, 0, len(p.Results))
	for _, r := range p.Results {
		items = append(items, conv(r))
	}
	return models.NewPage(items, p.Count, q.Page, q.PageSize)
}
