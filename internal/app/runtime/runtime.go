// Package runtime assembles the bot and owns its lifecycle.
package runtime

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"

	"persoole/internal/app/events"
	"persoole/internal/domain"
	"persoole/internal/infrastructure/config"
	discordinfra "persoole/internal/infrastructure/platform/discord"
	discordadapter "persoole/internal/interface/adapters/discord"
	"persoole/internal/interface/outs"
	"persoole/internal/usecase/commands"
	"persoole/internal/usecase/conversation"
	"persoole/internal/usecase/handle_message"
	"persoole/internal/usecase/notifications"
	"persoole/internal/usecase/pacing"
	"persoole/internal/usecase/roles"
)

type Options struct {
	// Wait replaces the pacing timer. Nil uses the real clock.
	Wait pacing.WaitFunc
}

type Runtime struct {
	ctx     context.Context
	cancel  context.CancelFunc
	cfg     *config.Config
	bus     *events.Bus
	adapter *discordadapter.Adapter
	out     *outs.MultiSender

	pipeline *handle_message.Interactor

	wg      sync.WaitGroup
	done    chan error
	started bool
}

// Start connects to Discord and begins handling direct messages. The gateway
// runs in the background; Done reports when it stops.
func Start(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		return nil, errors.New("runtime: nil config")
	}

	adapter, err := discordadapter.NewAdapter(discordadapter.Config{Token: cfg.DiscordToken})
	if err != nil {
		return nil, err
	}
	directory := discordinfra.NewGuildDirectory(adapter.Session())

	runtimeCtx, cancel := context.WithCancel(ctx)
	run := &Runtime{
		ctx:     runtimeCtx,
		cancel:  cancel,
		cfg:     cfg,
		bus:     events.NewBus(),
		adapter: adapter,
		out:     outs.NewMultiSender(),
		done:    make(chan error, 1),
	}
	run.out.Register(domain.PlatformDiscord, adapter)
	run.pipeline = NewPipeline(run.out, directory, run.bus, cfg, opts)
	adapter.SetPipeline(run.pipeline)

	audit := notifications.NewEventLogger(run.bus, slog.Default())
	run.wg.Add(2)
	go func() {
		defer run.wg.Done()
		audit.Run(runtimeCtx)
	}()
	go func() {
		defer run.wg.Done()
		err := adapter.Start(runtimeCtx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		run.done <- err
	}()

	run.started = true
	slog.Info("persoole starting", "env", cfg.Env, "pace_interval", cfg.PaceInterval)
	return run, nil
}

// NewPipeline wires the conversation pipeline behind out and dir.
func NewPipeline(
	out domain.DirectMessenger,
	dir domain.GuildDirectory,
	bus *events.Bus,
	cfg *config.Config,
	opts Options,
) *handle_message.Interactor {
	var seqOpts []pacing.Option
	if opts.Wait != nil {
		seqOpts = append(seqOpts, pacing.WithWait(opts.Wait))
	}

	state := conversation.NewState()
	seq := pacing.NewSequencer(out, state, cfg.PaceInterval, seqOpts...)
	auth := roles.NewAuthorizer(dir)

	router := commands.NewRouter()
	router.Register(commands.NewHelpCommand(seq, auth))
	router.Register(commands.NewRoleEditCommand(auth, dir, bus))

	return handle_message.NewInteractor(out, router, state, seq, bus)
}

// Done yields the gateway's exit error, nil on a clean shutdown.
func (r *Runtime) Done() <-chan error {
	return r.done
}

func (r *Runtime) Stop() error {
	if r == nil || !r.started {
		return nil
	}
	r.cancel()
	r.wg.Wait()
	r.out.Unregister(domain.PlatformDiscord)
	r.bus.Close()
	r.started = false
	return nil
}

func (r *Runtime) Bus() *events.Bus {
	if r == nil {
		return nil
	}
	return r.bus
}

func (r *Runtime) Config() *config.Config {
	if r == nil {
		return nil
	}
	return r.cfg
}

func (r *Runtime) DispatchMessage(ctx context.Context, msg domain.Message) error {
	if r == nil || r.pipeline == nil {
		return errors.New("pipeline unavailable")
	}
	if ctx == nil {
		ctx = r.ctx
	}
	return r.pipeline.Handle(ctx, msg)
}
