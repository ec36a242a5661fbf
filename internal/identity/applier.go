package identity

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Store is the persistence surface the applier needs.
type Store interface {
	UpsertUserByExternalID(ctx context.Context, externalID, email string, name, avatarURL *string) (uuid.UUID, error)
	DeleteUserByExternalID(ctx context.Context, externalID string) (bool, error)
}

// Applier applies lifecycle events to the user store, keyed by the
// provider's user id. Apply is idempotent and tolerates out-of-order
// delivery: created and updated both upsert, and deleting an unknown user
// is a no-op.
type Applier struct {
	store Store
}

// NewApplier creates an Applier.
func NewApplier(store Store) *Applier {
	return &Applier{store: store}
}

// Apply processes one verified event.
func (a *Applier) Apply(ctx context.Context, evt *Event) error {
	switch evt.Type {
	case EventUserCreated, EventUserUpdated:
		email := evt.Data.PrimaryEmail()
		if email == "" {
			return fmt.Errorf("%s event for %s has no email address", evt.Type, evt.Data.ID)
		}

		var name, avatarURL *string
		if n := evt.Data.FullName(); n != "" {
			name = &n
		}
		if evt.Data.ImageURL != "" {
			avatarURL = &evt.Data.ImageURL
		}

		if _, err := a.store.UpsertUserByExternalID(ctx, evt.Data.ID, email, name, avatarURL); err != nil {
			return fmt.Errorf("failed to apply %s for %s: %w", evt.Type, evt.Data.ID, err)
		}
		return nil

	case EventUserDeleted:
		existed, err := a.store.DeleteUserByExternalID(ctx, evt.Data.ID)
		if err != nil {
			return fmt.Errorf("failed to apply %s for %s: %w", evt.Type, evt.Data.ID, err)
		}
		if !existed {
			// Delete may arrive before create; nothing to do.
			log.Printf("[identity] delete for unknown user %s ignored", evt.Data.ID)
		}
		return nil

	default:
		// Providers add event types over time; unknown ones are skipped.
		log.Printf("[identity] ignoring event type %s", evt.Type)
		return nil
	}
}
