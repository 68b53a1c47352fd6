package driven

import "github.com/mnemo-labs/mnemo-cli/internal/core/domain"

// CardRouter receives outbound view requests from a collection model.
// Requests are fire-and-forget notifications; the model never awaits a
// response. The indirection keeps the model free of any dependency on
// view creation.
type CardRouter interface {
	// RequestCards asks for a filtered card view to be opened.
	RequestCards(req domain.CardsRequest)

	// RequestNewCard asks for a new-card composition view to be opened.
	RequestNewCard(req domain.NewCardRequest)
}
