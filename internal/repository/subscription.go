package repository

import (
	"context"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/database"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
)

type SubscriptionRepository struct {
	db *database.DB
}

func NewSubscriptionRepository(db *database.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Upsert registers a push endpoint for a user, refreshing the keys if
// the endpoint is already known.
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *models.PushSubscription) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, endpoint) DO UPDATE SET p256dh = $3, auth = $4
		 RETURNING subscription_id, created_at`,
		sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth,
	).Scan(&sub.SubscriptionID, &sub.CreatedAt)
}

func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.PushSubscription, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT subscription_id, user_id, endpoint, p256dh, auth, created_at
		 FROM push_subscriptions WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.PushSubscription
	for rows.Next() {
		sub := &models.PushSubscription{}
		if err := rows.Scan(&sub.SubscriptionID, &sub.UserID, &sub.Endpoint,
			&sub.P256dh, &sub.Auth, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, subscriptionID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM push_subscriptions WHERE subscription_id = $1`,
		subscriptionID,
	)
	return err
}

// DeleteByEndpoint removes a registration by its endpoint URL. Used
// when the browser unsubscribes and only knows the endpoint.
func (r *SubscriptionRepository) DeleteByEndpoint(ctx context.Context, userID int64, endpoint string) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM push_subscriptions WHERE user_id = $1 AND endpoint = $2`,
		userID, endpoint,
	)
	return err
}
