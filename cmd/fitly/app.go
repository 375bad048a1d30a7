package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/raushankrgupta/fitly-wardrobe/api"
	"github.com/raushankrgupta/fitly-wardrobe/cache"
	"github.com/raushankrgupta/fitly-wardrobe/config"
	"github.com/raushankrgupta/fitly-wardrobe/inflight"
	"github.com/raushankrgupta/fitly-wardrobe/scrapers"
	"github.com/raushankrgupta/fitly-wardrobe/session"
	"github.com/raushankrgupta/fitly-wardrobe/storage"
	"github.com/raushankrgupta/fitly-wardrobe/storage/sqlite"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
	"github.com/raushankrgupta/fitly-wardrobe/views"
	"go.uber.org/zap"
)

// app wires one client session: storage, HTTP client, auth context and views.
type app struct {
	cfg     config.Config
	out     io.Writer
	store   storage.Store
	closer  io.Closer
	history *api.History
	svc     *api.Services
	session *session.Provider
	cache   *cache.QueryCache
	guard   *inflight.Guard

	feed     *views.FeedView
	wardrobe *views.WardrobeView
	calendar *views.CalendarView
	styling  *views.StylingView
	chat     *views.ChatView
	studio   *views.StudioView
	profile  *views.ProfileView
	auth     *views.AuthForm
}

func newApp(ctx context.Context, cfg config.Config, out io.Writer) (*app, error) {
	a := &app{cfg: cfg, out: out, cache: cache.New(), guard: &inflight.Guard{}}

	if cfg.StoragePath == "" {
		a.store = storage.NewMemoryStore()
	} else {
		db, err := sqlite.Open(cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		a.store, a.closer = db, db
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	client.LoginPath = cfg.LoginPath
	a.history = api.NewHistory("/")
	a.history.OnRedirect = func(path string) {
		fmt.Fprintln(a.out, "Your session has expired. Run `fitly login` to sign in again.")
	}
	client.SetNavigator(a.history)
	a.svc = api.NewServices(client)

	a.session = session.NewProvider(a.svc.Auth, a.store)
	a.session.OnClear(a.cache.Clear)
	client.SetTokenGetter(a.session.Token)
	if err := a.session.Hydrate(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	crop := 0
	if cfg.CropUploads {
		crop = cfg.CropMaxSide
	}
	a.feed = views.NewFeedView(a.svc.Posts, a.cache, a.guard, cfg.FeedPageSize)
	a.wardrobe = views.NewWardrobeView(a.svc.Wardrobe, a.cache, scrapers.NewImporter(cfg.ImportHeadless), crop)
	a.calendar = views.NewCalendarView(a.svc.Calendar, a.cache)
	a.styling = views.NewStylingView(a.svc.Styling, a.calendar)
	a.chat = views.NewChatView(a.svc.Chat, a.guard)
	a.studio = views.NewStudioView(a.svc.Studio, a.svc.SavedImages, a.cache)
	a.profile = views.NewProfileView(a.svc.Profile, a.session, a.cache, crop)
	a.auth = views.NewAuthForm(a.session)

	utils.Logger.Debug("client ready",
		zap.String("api", cfg.APIBaseURL),
		zap.Bool("persisted", cfg.StoragePath != ""),
		zap.Bool("signed_in", a.session.IsAuthenticated()),
	)
	return a, nil
}

func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"login":     runLogin,
	"signup":    runSignup,
	"logout":    runLogout,
	"whoami":    runWhoami,
	"feed":      runFeed,
	"like":      runLike,
	"save":      runSave,
	"comments":  runComments,
	"comment":   runComment,
	"post":      runPost,
	"wardrobe":  runWardrobe,
	"recommend": runRecommend,
	"calendar":  runCalendar,
	"chat":      runChat,
	"studio":    runStudio,
	"profile":   runProfile,
}

// Run dispatches one command. The route is set to /<name> so a rejected session
// redirects to login, except on the login and signup pages themselves.
func (a *app) Run(ctx context.Context, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		usage()
		return fmt.Errorf("unknown command %q", name)
	}
	a.history.Navigate("/" + name)
	return cmd(ctx, a, args)
}

// requireLogin stops commands that need a signed-in user.
func (a *app) requireLogin() error {
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not signed in, run `fitly login` first")
	}
	return nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func oneArg(args []string, what string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("expected exactly one %s", what)
	}
	return args[0], nil
}
