package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/services"
	"github.com/dmitrijs2005/finkeeper/internal/client/session"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

// Services bundles the use cases the REPL drives.
type Services struct {
	Auth      services.AuthService
	Profile   services.ProfileService
	Cards     services.CardsService
	Dashboard services.DashboardService
}

type App struct {
	authService      services.AuthService
	profileService   services.ProfileService
	cardsService     services.CardsService
	dashboardService services.DashboardService

	session *session.Session
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	now     func() time.Time

	busy         bool
	selectedCard string
}

// NewApp builds an App reading from stdin and writing to stdout.
func NewApp(svc Services, sess *session.Session, log logging.Logger) *App {
	return &App{
		authService:      svc.Auth,
		profileService:   svc.Profile,
		cardsService:     svc.Cards,
		dashboardService: svc.Dashboard,
		session:          sess,
		log:              log,
		reader:           bufio.NewReader(os.Stdin),
		out:              os.Stdout,
		now:              time.Now,
	}
}

// Run prints the banner and blocks in the REPL until the user exits or
// stdin is closed.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "FinKeeper CLI (type 'help' for commands)")
	if u, ok := a.session.User(); ok {
		fmt.Fprintf(a.out, "Bem-vindo de volta, %s.\n", u.Name)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil && a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := ""
	if u, ok := a.currentUser(); ok {
		s = u
	}
	if a.busy {
		s += "…"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) currentUser() (string, bool) {
	if a.session == nil {
		return "", false
	}
	u, ok := a.session.User()
	if !ok {
		return "", false
	}
	if u.Name != "" {
		return u.Name, true
	}
	return u.Email, true
}

// withBusy marks the app busy while fn runs. The flag is cleared on every
// exit path, including panics.
func (a *App) withBusy(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	a.busy = true
	defer func() { a.busy = false }()

	fmt.Fprintf(a.out, "%s...\n", label)
	err := fn(ctx)
	if err != nil {
		a.log.Debug(ctx, "command failed", "command", label, "error", err)
	}
	return err
}

// fail prints a user-facing message for err and returns err unchanged.
func (a *App) fail(err error) error {
	fmt.Fprintln(a.out, describeError(err))
	return err
}
