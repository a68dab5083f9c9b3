package database

import "context"

const createSubscription = `
INSERT INTO subscriptions (subscriber_id, author_id)
VALUES ($1, $2)
`

type CreateSubscriptionParams struct {
	SubscriberID int64
	AuthorID     int64
}

func (q *Queries) CreateSubscription(ctx context.Context, arg CreateSubscriptionParams) error {
	_, err := q.db.Exec(ctx, createSubscription, arg.SubscriberID, arg.AuthorID)
	return err
}

const deleteSubscription = `
DELETE FROM subscriptions
WHERE subscriber_id = $1 AND author_id = $2
`

type DeleteSubscriptionParams struct {
	SubscriberID int64
	AuthorID     int64
}

func (q *Queries) DeleteSubscription(ctx context.Context, arg DeleteSubscriptionParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteSubscription, arg.SubscriberID, arg.AuthorID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const subscriptionExists = `
SELECT EXISTS (
    SELECT 1 FROM subscriptions
    WHERE subscriber_id = $1 AND author_id = $2
)
`

type SubscriptionExistsParams struct {
	SubscriberID int64
	AuthorID     int64
}

func (q *Queries) SubscriptionExists(ctx context.Context, arg SubscriptionExistsParams) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, subscriptionExists, arg.SubscriberID, arg.AuthorID).Scan(&exists)
	return exists, err
}

const listSubscribedAuthors = `
SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.password_hash, u.is_admin, u.created_at
FROM subscriptions s
JOIN users u ON u.id = s.author_id
WHERE s.subscriber_id = $1
ORDER BY s.id
LIMIT $2 OFFSET $3
`

type ListSubscribedAuthorsParams struct {
	SubscriberID int64
	Limit        int32
	Offset       int32
}

func (q *Queries) ListSubscribedAuthors(ctx context.Context, arg ListSubscribedAuthorsParams) ([]User, error) {
	rows, err := q.db.Query(ctx, listSubscribedAuthors, arg.SubscriberID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
			&u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const countSubscribedAuthors = `
SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1
`

func (q *Queries) CountSubscribedAuthors(ctx context.Context, subscriberID int64) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countSubscribedAuthors, subscriberID).Scan(&count)
	return count, err
}

const getSubscribedAuthorIDs = `
SELECT author_id FROM subscriptions
WHERE subscriber_id = $1 AND author_id = ANY($2::bigint[])
`

type GetSubscribedAuthorIDsParams struct {
	SubscriberID int64
	AuthorIDs    []int64
}

func (q *Queries) GetSubscribedAuthorIDs(ctx context.Context, arg GetSubscribedAuthorIDsParams) ([]int64, error) {
	rows, err := q.db.Query(ctx, getSubscribedAuthorIDs, arg.SubscriberID, arg.AuthorIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
