package payment

import "context"

// Gateway creates pending charges with an external payment provider and
// returns the client-side confirmation secret. Amounts are in minor currency
// units (cents).
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}
