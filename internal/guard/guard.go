package guard

import (
	"context"
	"net/url"

	"github.com/angelmondragon/storehub-console/internal/session"
	pkgerrors "github.com/angelmondragon/storehub-console/pkg/errors"
	"github.com/angelmondragon/storehub-console/pkg/logger"
)

// Routes the caller is steered to when a check fails. A login redirect is
// the hard variant (local state is untrusted); the customer redirect is the
// soft variant (session is valid, role is wrong).
const (
	LoginRoute    = "/login"
	CustomerRoute = "/customer"
)

// Outcome is the terminal state of one authorization pass.
type Outcome string

const (
	OutcomeAuthorized       Outcome = "authorized"
	OutcomeLoginRedirect    Outcome = "login_redirect"
	OutcomeCustomerRedirect Outcome = "customer_redirect"
)

// Reason explains why a non-authorized outcome was reached.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonNotAdmin        Reason = "not_admin"
	ReasonVerifyFailed    Reason = "verify_failed"
	ReasonVerifyDenied    Reason = "verify_denied"
)

// Decision is what one Authorize call resolves to. Route is empty for the
// authorized outcome.
type Decision struct {
	Outcome Outcome
	Reason  Reason
	Route   string
}

func (d Decision) Authorized() bool {
	return d.Outcome == OutcomeAuthorized
}

type verifyCaller interface {
	Get(ctx context.Context, resource, path string, query url.Values, out any) error
}

type oracle interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// Guard gates admin surfaces: a local session check followed by a backend
// token verification. Failures never surface as errors; they collapse into
// redirect decisions the caller acts on.
type Guard struct {
	oracle oracle
	api    verifyCaller
	logg   *logger.Logger
}

func New(o *session.Oracle, api verifyCaller, logg *logger.Logger) *Guard {
	return &Guard{oracle: o, api: api, logg: logg}
}

// Authorize runs the full admin gate. The verify request is bound to ctx,
// so an abandoned caller cancels the in-flight check instead of acting on a
// stale result.
func (g *Guard) Authorize(ctx context.Context) Decision {
	if !g.oracle.IsAuthenticated() {
		return Decision{Outcome: OutcomeLoginRedirect, Reason: ReasonUnauthenticated, Route: LoginRoute}
	}
	if !g.oracle.IsAdmin() {
		return Decision{Outcome: OutcomeCustomerRedirect, Reason: ReasonNotAdmin, Route: CustomerRoute}
	}

	var verified struct {
		User *session.UserProfile `json:"user"`
	}
	if err := g.api.Get(ctx, "auth", "/auth/verify", nil, &verified); err != nil {
		if g.logg != nil {
			reason := "verify request failed"
			if typed := pkgerrors.As(err); typed != nil {
				reason = reason + ": " + string(typed.Code())
			}
			g.logg.Warn(ctx, reason)
		}
		return Decision{Outcome: OutcomeLoginRedirect, Reason: ReasonVerifyFailed, Route: LoginRoute}
	}

	if verified.User == nil || !verified.User.RoleID.Truthy() {
		return Decision{Outcome: OutcomeCustomerRedirect, Reason: ReasonVerifyDenied, Route: CustomerRoute}
	}
	return Decision{Outcome: OutcomeAuthorized}
}
