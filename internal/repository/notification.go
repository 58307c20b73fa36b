package repository

import (
	"context"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/database"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
)

type NotificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, kind, entity_id, title, message, read)
		 VALUES ($1, $2, $3, $4, $5, false)
		 RETURNING notification_id, created_at`,
		n.UserID, n.Kind, n.EntityID, n.Title, n.Message,
	).Scan(&n.NotificationID, &n.CreatedAt)
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Pool.Query(ctx,
		`SELECT notification_id, user_id, kind, entity_id, title, message, read, created_at
		 FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.NotificationID, &n.UserID, &n.Kind, &n.EntityID,
			&n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE notification_id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	return err
}
