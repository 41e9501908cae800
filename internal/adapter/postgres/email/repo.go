// Package email implements EmailMessage persistence.
package email

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/aistomin/andys-backend/internal/adapter/postgres"
	"github.com/aistomin/andys-backend/internal/domain"
)

// messageColumns selects a message joined with both participants.
var messageColumns = []string{
	"m.id", "m.subject", "m.body", "m.status", "m.type", "m.info", "m.created_on",
	"d.id AS d_id", "d.first_name AS d_first_name", "d.last_name AS d_last_name",
	"d.email AS d_email", "d.allow_newsletters AS d_allow_newsletters", "d.created_on AS d_created_on",
	"r.id AS r_id", "r.first_name AS r_first_name", "r.last_name AS r_last_name",
	"r.email AS r_email", "r.allow_newsletters AS r_allow_newsletters", "r.created_on AS r_created_on",
}

type messageRow struct {
	ID        int64     `db:"id"`
	Subject   string    `db:"subject"`
	Body      string    `db:"body"`
	Status    string    `db:"status"`
	Type      string    `db:"type"`
	Info      *string   `db:"info"`
	CreatedOn time.Time `db:"created_on"`

	DID               int64     `db:"d_id"`
	DFirstName        *string   `db:"d_first_name"`
	DLastName         *string   `db:"d_last_name"`
	DEmail            string    `db:"d_email"`
	DAllowNewsletters bool      `db:"d_allow_newsletters"`
	DCreatedOn        time.Time `db:"d_created_on"`

	RID               int64     `db:"r_id"`
	RFirstName        *string   `db:"r_first_name"`
	RLastName         *string   `db:"r_last_name"`
	REmail            string    `db:"r_email"`
	RAllowNewsletters bool      `db:"r_allow_newsletters"`
	RCreatedOn        time.Time `db:"r_created_on"`
}

func (r messageRow) toDomain() *domain.EmailMessage {
	return &domain.EmailMessage{
		ID: r.ID,
		Dispatcher: domain.Person{
			ID: r.DID, FirstName: r.DFirstName, LastName: r.DLastName,
			Email: r.DEmail, AllowNewsletters: r.DAllowNewsletters, CreatedOn: r.DCreatedOn,
		},
		Receptor: domain.Person{
			ID: r.RID, FirstName: r.RFirstName, LastName: r.RLastName,
			Email: r.REmail, AllowNewsletters: r.RAllowNewsletters, CreatedOn: r.RCreatedOn,
		},
		Subject:   r.Subject,
		Body:      r.Body,
		Status:    domain.EmailStatus(r.Status),
		Type:      domain.EmailType(r.Type),
		Info:      r.Info,
		CreatedOn: r.CreatedOn,
	}
}

// Repo provides EmailMessage persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new email message repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts m and returns its generated id.
func (r *Repo) Create(ctx context.Context, m domain.EmailMessage) (int64, error) {
	var id int64
	query := postgres.Builder.Insert("email_messages").
		Columns("dispatcher_id", "receptor_id", "subject", "body", "status", "type", "info", "created_on").
		Values(m.Dispatcher.ID, m.Receptor.ID, m.Subject, m.Body, m.Status.String(), m.Type.String(), m.Info, m.CreatedOn).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "email message", "new")
	}
	return id, nil
}

// GetByID returns the message with both participants loaded.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.EmailMessage, error) {
	var out messageRow
	query := postgres.Builder.Select(messageColumns...).
		From("email_messages m").
		Join("persons d ON d.id = m.dispatcher_id").
		Join("persons r ON r.id = m.receptor_id").
		Where(sq.Eq{"m.id": id})
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query); err != nil {
		return nil, postgres.MapError(err, "email message", id)
	}
	return out.toDomain(), nil
}

// CountDuplicates counts messages with the same participants, subject and
// body created strictly after since.
func (r *Repo) CountDuplicates(ctx context.Context, dispatcherID, receptorID int64, subject, body string, since time.Time) (int, error) {
	var n int
	query := postgres.Builder.Select("count(*)").
		From("email_messages").
		Where(sq.Eq{
			"dispatcher_id": dispatcherID,
			"receptor_id":   receptorID,
			"subject":       subject,
			"body":          body,
		}).
		Where(sq.Gt{"created_on": since})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "email message", "duplicates")
	}
	return n, nil
}

// Claim leases a CREATED message to one consumer until now+lease. It
// reports false when the message is terminal or another lease is still
// active, so concurrent redeliveries reach the mailer at most once.
func (r *Repo) Claim(ctx context.Context, id int64, now time.Time, lease time.Duration) (bool, error) {
	query := postgres.Builder.Update("email_messages").
		Set("claimed_until", now.Add(lease)).
		Where(sq.Eq{"id": id, "status": domain.EmailStatusCreated.String()}).
		Where(sq.Or{sq.Eq{"claimed_until": nil}, sq.Lt{"claimed_until": now}})

	tag, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return false, postgres.MapError(err, "email message", id)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkDelivered moves a CREATED message to a terminal status. It reports
// false when the message is missing or already terminal, which keeps the
// transition single even under redelivery.
func (r *Repo) MarkDelivered(ctx context.Context, id int64, status domain.EmailStatus, info *string) (bool, error) {
	query := postgres.Builder.Update("email_messages").
		Set("status", status.String()).
		Set("info", info).
		Where(sq.Eq{"id": id, "status": domain.EmailStatusCreated.String()})

	tag, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return false, postgres.MapError(err, "email message", id)
	}
	return tag.RowsAffected() == 1, nil
}

// ListStale returns the ids of CREATED messages created before before,
// oldest first.
func (r *Repo) ListStale(ctx context.Context, before time.Time, limit int) ([]int64, error) {
	var ids []int64
	query := postgres.Builder.Select("id").
		From("email_messages").
		Where(sq.Eq{"status": domain.EmailStatusCreated.String()}).
		Where(sq.Lt{"created_on": before}).
		OrderBy("id").
		Limit(uint64(limit))
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &ids, query); err != nil {
		return nil, postgres.MapError(err, "email message", "stale")
	}
	return ids, nil
}
