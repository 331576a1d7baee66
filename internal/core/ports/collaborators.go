package ports

import (
	"context"
	"io"
	"time"
)

// ImageUpload carries a user-supplied image towards the external image host.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageStore abstracts the external image hosting service. Upload returns the
// public URL of the stored image. Implementations must respect ctx deadlines;
// callers wrap the call in a request-scoped timeout so a hung upload aborts
// the enclosing operation before any database write.
type ImageStore interface {
	Upload(ctx context.Context, img ImageUpload) (string, error)
}

// Mailer abstracts outbound email delivery.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ResetTokenStore keeps single-use password-reset tokens with a TTL.
type ResetTokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Lookup returns the user id bound to token, or domain.ErrResetTokenInvalid.
	Lookup(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// OrderNotification describes a status change to be delivered to the customer.
type OrderNotification struct {
	OrderID       string
	CustomerEmail string
	CustomerName  string
	Restaurant    string
	Status        string
}

// OrderNotifier enqueues customer notifications for asynchronous delivery.
type OrderNotifier interface {
	Notify(n OrderNotification)
}
