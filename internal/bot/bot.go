package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/basebot/internal/command"
	"github.com/sglre6355/basebot/internal/reporting"
)

// DefaultExtensions are the modules every bot loads.
var DefaultExtensions = []string{"core", "help"}

// DebugExtension is the owner-only introspection module.
const DebugExtension = "debug"

var (
	ErrExtensionNotFound      = errors.New("extension not found")
	ErrExtensionAlreadyLoaded = errors.New("extension already loaded")
	ErrCommandConflict        = errors.New("command name already registered")
)

// Bot manages the Discord bot lifecycle and module coordination.
type Bot struct {
	config    *Config
	session   *discordgo.Session
	registry  *Registry
	reporter  *reporting.Reporter
	mentions  *discordgo.MessageAllowedMentions
	startedAt time.Time

	// newResponder builds the responder for a channel.
	newResponder func(s *discordgo.Session, channelID string) command.Responder

	resolverMu sync.Mutex
	resolver   *PrefixResolver

	mu       sync.RWMutex
	modules  []Module
	commands map[string]*command.Command
	owners   []string
}

// NewBot creates a new Bot instance with the given configuration. It
// prepares the Discord session and the error reporter without connecting.
func NewBot(cfg *Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsAll
	session.ShouldReconnectOnError = true
	session.LogLevel = discordgoLogLevel(cfg.LogLevel)

	webhook, err := reporting.NewWebhook(session, cfg.LogWebhook)
	if err != nil {
		return nil, fmt.Errorf("failed to create log webhook: %w", err)
	}

	b := &Bot{
		config:    cfg,
		session:   session,
		registry:  globalRegistry,
		reporter:  reporting.NewReporter(webhook),
		mentions:  command.DefaultAllowedMentions(),
		startedAt: time.Now(),
		modules:   make([]Module, 0),
		commands:  make(map[string]*command.Command),
		owners:    slices.Clone(cfg.OwnerIDs),
	}
	b.newResponder = func(s *discordgo.Session, channelID string) command.Responder {
		return command.NewDiscordResponder(s, channelID, b.mentions)
	}

	return b, nil
}

// LoadExtensions loads the named modules from the registry in order. A
// module that fails to load is logged and skipped.
func (b *Bot) LoadExtensions(names ...string) {
	for _, name := range names {
		if err := b.LoadExtension(name); err != nil {
			attrs := []any{"extension", name, "error", err}
			var panicErr *command.PanicError
			if errors.As(err, &panicErr) {
				attrs = append(attrs, "error_type", fmt.Sprintf("%T", panicErr.Value),
					"stack_trace", string(panicErr.Stack()))
			} else {
				attrs = append(attrs, "error_type", fmt.Sprintf("%T", errors.Unwrap(err)))
			}
			slog.Error("failed to load extension", attrs...)
			continue
		}
		slog.Debug("loaded extension", "extension", name)
	}

	slog.Info("loaded extensions", "extensions", b.Extensions())
}

// LoadExtension initializes the named module, registers its commands and
// attaches its event handlers.
func (b *Bot) LoadExtension(name string) (err error) {
	defer func() {
		if rc := recover(); rc != nil {
			err = fmt.Errorf("extension %s panicked: %w", name, command.NewPanicError(rc, debug.Stack()))
		}
	}()

	mod, ok := b.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("failed to load %s: %w", name, ErrExtensionNotFound)
	}
	if slices.Contains(b.Extensions(), name) {
		return fmt.Errorf("failed to load %s: %w", name, ErrExtensionAlreadyLoaded)
	}

	if cm, ok := mod.(ConfigurableModule); ok {
		if err := cm.LoadConfig(); err != nil {
			return fmt.Errorf("failed to load %s module config: %w", name, err)
		}
	}

	deps := ModuleDependencies{
		Session: b.session,
		Config:  b.config,
		Bot:     b,
	}
	if err := mod.Init(deps); err != nil {
		return fmt.Errorf("failed to initialize %s module: %w", name, err)
	}

	if err := b.addCommands(mod); err != nil {
		if shutErr := mod.Shutdown(); shutErr != nil {
			slog.Warn("failed to shutdown module", "module", name, "error", shutErr)
		}
		return err
	}

	b.registerEventHandlers(mod)

	b.mu.Lock()
	b.modules = append(b.modules, mod)
	b.mu.Unlock()

	return nil
}

// addCommands registers all commands of mod, or none of them on conflict.
func (b *Bot) addCommands(mod Module) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cmds := mod.Commands()
	seen := make(map[string]bool)
	for _, cmd := range cmds {
		for _, name := range cmd.Names() {
			if _, ok := b.commands[name]; ok || seen[name] {
				return fmt.Errorf("failed to register command %s of %s module: %w", name, mod.Name(), ErrCommandConflict)
			}
			seen[name] = true
		}
	}

	for _, cmd := range cmds {
		cmd.Module = mod.Name()
		for _, name := range cmd.Names() {
			b.commands[name] = cmd
		}
		slog.Debug("registered command", "command", cmd.Name, "module", mod.Name())
	}
	return nil
}

// registerEventHandlers registers all module event handlers with the session.
func (b *Bot) registerEventHandlers(mod Module) {
	for _, handler := range mod.EventHandlers() {
		guarded, ok := b.guard(handler)
		if !ok {
			slog.Debug("attached unguarded event handler", "module", mod.Name(), "handler", fmt.Sprintf("%T", handler))
			guarded = handler
		}
		b.session.AddHandler(guarded)
	}
}

// Start registers the bot's own handlers and connects to Discord.
func (b *Bot) Start() error {
	b.session.AddHandler(guarded(b, "Ready", b.handleReady))
	b.session.AddHandler(guarded(b, "MessageCreate", b.handleMessage))

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	slog.Info("started bot",
		"user_id", b.session.State.User.ID,
		"username", b.session.State.User.Username,
		"prefix", b.config.Prefix,
	)

	return nil
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() error {
	b.mu.RLock()
	modules := slices.Clone(b.modules)
	b.mu.RUnlock()

	// Shutdown modules
	for _, mod := range modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	// Close Discord session
	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) error {
	slog.Info("bot is ready",
		"user_id", r.User.ID,
		"username", r.User.Username,
		"guilds", len(r.Guilds),
	)

	b.mu.RLock()
	known := len(b.owners) > 0
	b.mu.RUnlock()
	if known {
		return nil
	}

	app, err := s.Application("@me")
	if err != nil {
		return fmt.Errorf("failed to fetch application owner: %w", err)
	}
	owners := applicationOwners(app)

	b.mu.Lock()
	b.owners = owners
	b.mu.Unlock()

	slog.Info("resolved bot owners", "owners", owners)
	return nil
}

// applicationOwners returns the owner of app, or its team members when the
// application belongs to a team.
func applicationOwners(app *discordgo.Application) []string {
	if app.Team != nil {
		owners := make([]string, 0, len(app.Team.Members))
		for _, m := range app.Team.Members {
			if m.User != nil {
				owners = append(owners, m.User.ID)
			}
		}
		return owners
	}
	if app.Owner != nil {
		return []string{app.Owner.ID}
	}
	return nil
}

// Prefix returns the prefix to advertise outside of a message.
func (b *Bot) Prefix() string {
	return b.prefixResolver().Current()
}

// Commands returns the registered commands ordered by module and name.
func (b *Bot) Commands() []*command.Command {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cmds := make([]*command.Command, 0, len(b.commands))
	for name, cmd := range b.commands {
		if name == cmd.Name {
			cmds = append(cmds, cmd)
		}
	}
	sort.Slice(cmds, func(i, j int) bool {
		if cmds[i].Module != cmds[j].Module {
			return cmds[i].Module < cmds[j].Module
		}
		return cmds[i].Name < cmds[j].Name
	})
	return cmds
}

// Extensions returns the names of the loaded modules in load order.
func (b *Bot) Extensions() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, len(b.modules))
	for i, mod := range b.modules {
		names[i] = mod.Name()
	}
	return names
}

// AvailableExtensions returns the names of registered modules that are not
// loaded, sorted by name.
func (b *Bot) AvailableExtensions() []string {
	loaded := b.Extensions()

	var names []string
	for _, mod := range b.registry.Modules() {
		if !slices.Contains(loaded, mod.Name()) {
			names = append(names, mod.Name())
		}
	}
	slices.Sort(names)
	return names
}

// StartedAt returns the time the bot was created.
func (b *Bot) StartedAt() time.Time {
	return b.startedAt
}

// IsOwner reports whether userID belongs to a bot owner.
func (b *Bot) IsOwner(userID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Contains(b.owners, userID)
}

func (b *Bot) command(name string) (*command.Command, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	cmd, ok := b.commands[name]
	return cmd, ok
}
