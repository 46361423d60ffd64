package shop

import (
	"github.com/eazybuy/storefront/internal/domain"
)

// CartOwner is the identity a cart is keyed by: exactly one of an
// authenticated user ID or an anonymous session ID.
type CartOwner struct {
	userID    int64
	sessionID string
}

func UserOwner(userID int64) CartOwner {
	return CartOwner{userID: userID}
}

func SessionOwner(sessionID string) CartOwner {
	return CartOwner{sessionID: sessionID}
}

func (o CartOwner) IsUser() bool {
	return o.userID != 0
}

func (o CartOwner) IsZero() bool {
	return o.userID == 0 && o.sessionID == ""
}

// where returns the gorm condition selecting this owner's cart.
func (o CartOwner) where() (string, interface{}) {
	if o.IsUser() {
		return "user_id = ?", o.userID
	}
	return "session_id = ?", o.sessionID
}

// newCart returns an unsaved cart row keyed by this owner.
func (o CartOwner) newCart() domain.Cart {
	if o.IsUser() {
		uid := o.userID
		return domain.Cart{UserID: &uid}
	}
	sid := o.sessionID
	return domain.Cart{SessionID: &sid}
}
