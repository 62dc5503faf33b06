package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/vrmarket/vrmarket/internal/client/agent"
	"github.com/vrmarket/vrmarket/internal/client/config"
	"github.com/vrmarket/vrmarket/internal/client/services"
	"github.com/vrmarket/vrmarket/internal/client/session"
	"github.com/vrmarket/vrmarket/internal/logging"
)

// App holds the services behind the interactive marketplace client.
type App struct {
	config  *config.Config
	session *session.Manager
	assets  services.AssetsService
	market  services.MarketplaceService
	users   services.UsersService
	logger  logging.Logger
	reader  *bufio.Reader
}

// NewApp wires the transport, gateway, session and services from config.
func NewApp(cfg *config.Config, logger logging.Logger) *App {
	transport := agent.NewHTTPTransport(cfg.Host, &http.Client{Timeout: cfg.RequestTimeout})
	gw := agent.New(transport, logger)
	gw.RegisterActor(services.ActorAssets, cfg.AssetsCanisterID)
	gw.RegisterActor(services.ActorMarketplace, cfg.MarketplaceCanisterID)
	gw.RegisterActor(services.ActorUsers, cfg.UsersCanisterID)

	reader := bufio.NewReader(os.Stdin)
	sess := session.NewManager(&promptProvider{reader: reader}, gw, logger,
		session.WithIdleTimeout(cfg.IdleTimeout))
	sess.OnIdleTimeout(func() {
		fmt.Println("\nSession expired after inactivity, please sign in again.")
	})

	return &App{
		config:  cfg,
		session: sess,
		assets:  services.NewAssetsService(gw),
		market:  services.NewMarketplaceService(gw),
		users:   services.NewUsersService(gw),
		logger:  logger,
		reader:  reader,
	}
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Printf("Welcome to VR Market (%s network, type 'help' for commands)\n", a.config.Network)
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isSignedIn() bool {
	return a.session.Authenticated()
}

// status renders the prompt suffix: a short principal when signed in.
func (a *App) status() string {
	if !a.isSignedIn() {
		return ""
	}
	p := a.session.Principal()
	if len(p) > 10 {
		p = p[:10] + "..."
	}
	return "(" + p + ")"
}

// report prints an error through the user-message translation; known remote
// rejections come out as friendly text, everything else passes through.
func report(err error) {
	if err == nil {
		return
	}
	fmt.Println(agent.UserMessage(err))
}
