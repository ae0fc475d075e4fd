package handle_message_test

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"persoole/internal/app/events"
	"persoole/internal/domain"
	"persoole/internal/domain/domaintest"
	"persoole/internal/usecase/colour"
	"persoole/internal/usecase/commands"
	"persoole/internal/usecase/conversation"
	"persoole/internal/usecase/handle_message"
	"persoole/internal/usecase/pacing"
	"persoole/internal/usecase/roles"
)

var _ = Describe("Interactor", func() {
	const sender = "u1"

	var (
		ctx   context.Context
		out   *domaintest.Messenger
		dir   *domaintest.Directory
		state *conversation.State
		bus   *events.Bus
		node  *snowflake.Node
		uc    *handle_message.Interactor

		waitMu sync.Mutex
		waits  int
		onWait func(n int)
	)

	message := func(text string) domain.Message {
		return domain.Message{
			Platform:  domain.PlatformDiscord,
			ChannelID: "dm",
			MessageID: node.Generate().String(),
			UserID:    sender,
			Username:  "sender",
			Text:      text,
			IsPrivate: true,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		out = &domaintest.Messenger{}
		state = conversation.NewState()
		bus = events.NewBus()
		var err error
		node, err = snowflake.NewNode(11)
		Expect(err).NotTo(HaveOccurred())

		dir = domaintest.NewDirectory().
			AddGuild("g1", "Guild", 5).
			AddRole("g1", "123", "Old", 0, 1).
			AddMember("g1", sender, "123")

		waits = 0
		onWait = nil
		seq := pacing.NewSequencer(out, state, time.Second, pacing.WithWait(func(context.Context, time.Duration) error {
			waitMu.Lock()
			waits++
			n, hook := waits, onWait
			waitMu.Unlock()
			if hook != nil {
				hook(n)
			}
			return nil
		}))
		auth := roles.NewAuthorizer(dir)
		router := commands.NewRouter()
		router.Register(commands.NewHelpCommand(seq, auth))
		router.Register(commands.NewRoleEditCommand(auth, dir, bus))

		uc = handle_message.NewInteractor(out, router, state, seq, bus)
	})

	It("ignores messages outside private channels", func() {
		msg := message("help")
		msg.IsPrivate = false

		Expect(uc.Handle(ctx, msg)).To(Succeed())
		Expect(out.Sent()).To(BeEmpty())
		Expect(out.TypingCount()).To(Equal(0))
		Expect(state.IsCurrent(sender, msg.MessageID)).To(BeFalse())
	})

	It("ignores its own messages before recording them", func() {
		msg := message("help")
		msg.IsSelf = true

		Expect(uc.Handle(ctx, msg)).To(Succeed())
		Expect(out.Sent()).To(BeEmpty())
		Expect(state.IsCurrent(sender, msg.MessageID)).To(BeFalse())
	})

	It("types, pauses once, then replies to help", func() {
		Expect(uc.Handle(ctx, message("help"))).To(Succeed())

		Expect(out.Contents()).To(Equal([]string{commands.Usage}))
		Expect(out.TypingCount()).To(Equal(1))
		Expect(waits).To(Equal(1))
	})

	It("drops a message overtaken during the initial pause", func() {
		onWait = func(n int) {
			if n == 1 {
				state.Record(sender, node.Generate().String())
			}
		}

		Expect(uc.Handle(ctx, message("123 red"))).To(Succeed())
		Expect(out.Sent()).To(BeEmpty())
		Expect(dir.Edits()).To(BeEmpty())
	})

	It("swallows an interrupted listing", func() {
		onWait = func(n int) {
			if n == 4 {
				state.Record(sender, node.Generate().String())
			}
		}

		Expect(uc.Handle(ctx, message("help colours"))).To(Succeed())
		// one pause before handling, then three steps before the interrupt
		Expect(out.Sent()).To(HaveLen(3))
	})

	It("lets a new message interrupt a running listing", func() {
		gate := make(chan struct{})
		resume := make(chan struct{})
		onWait = func(n int) {
			if n == 3 {
				close(gate)
				<-resume
			}
		}

		done := make(chan error, 1)
		go func() { done <- uc.Handle(ctx, message("help colours")) }()

		Eventually(gate).Should(BeClosed())
		next := message("help")
		state.Record(sender, next.MessageID)
		close(resume)

		Eventually(done).Should(Receive(BeNil()))
		Expect(out.Contents()).NotTo(ContainElement(commands.Confirmation))
		Expect(len(out.Sent())).To(BeNumerically("<", len(colour.Table())))
	})

	It("rejects non-private and own messages at accept", func() {
		public := message("help")
		public.IsPrivate = false
		_, ok := uc.Accept(ctx, public)
		Expect(ok).To(BeFalse())

		own := message("help")
		own.IsSelf = true
		_, ok = uc.Accept(ctx, own)
		Expect(ok).To(BeFalse())

		Expect(state.IsCurrent(sender, public.MessageID)).To(BeFalse())
		Expect(state.IsCurrent(sender, own.MessageID)).To(BeFalse())
	})

	It("keeps the later arrival current whichever message is processed first", func() {
		older := message("123 red")
		newer := message("123 0000ff")

		olderCtx, ok := uc.Accept(ctx, older)
		Expect(ok).To(BeTrue())
		newerCtx, ok := uc.Accept(ctx, newer)
		Expect(ok).To(BeTrue())

		held := make(chan struct{}, 2)
		release := make(chan struct{})
		onWait = func(int) {
			held <- struct{}{}
			<-release
		}

		done := make(chan error, 2)
		go func() { done <- uc.Process(newerCtx, newer) }()
		Eventually(held).Should(Receive())
		go func() { done <- uc.Process(olderCtx, older) }()
		Eventually(held).Should(Receive())
		close(release)

		Eventually(done).Should(Receive(BeNil()))
		Eventually(done).Should(Receive(BeNil()))

		edits := dir.Edits()
		Expect(edits).To(HaveLen(1))
		Expect(edits[0].Edit.Colour).To(Equal(0x0000ff))
		Expect(out.Contents()).To(Equal([]string{commands.Confirmation}))
	})

	It("edits a personal role end to end", func() {
		Expect(uc.Handle(ctx, message("123 ffffff My Role"))).To(Succeed())

		Expect(out.Contents()).To(Equal([]string{"Done!"}))
		role, _ := dir.Role(ctx, "g1", "123")
		Expect(role.Name).To(Equal("My Role"))
		Expect(role.Colour).To(Equal(0xffffff))
	})

	DescribeTable("terminal replies",
		func(text, reply string) {
			Expect(uc.Handle(ctx, message(text))).To(Succeed())
			Expect(out.Contents()).To(Equal([]string{reply}))
			Expect(dir.Edits()).To(BeEmpty())
		},
		Entry("unknown role", "999999999 red", "Invalid role ID. Type \"help\" for more."),
		Entry("missing colour", "123", "No colour provided. Type \"help\" for more."),
		Entry("bad colour", "123 notacolour", "Invalid colour. Type \"help\" for more."),
		Entry("bad help option", "help please", "Invalid option. Type \"help\" for more."),
	)

	It("publishes accepted messages", func() {
		chats, unsub := bus.Subscribe(events.TopicChatMessage)
		defer unsub()

		Expect(uc.Handle(ctx, message("help"))).To(Succeed())

		var got any
		Eventually(chats).Should(Receive(&got))
		Expect(got.(events.ChatMessageDTO).Text).To(Equal("help"))
	})

	It("returns delivery failures", func() {
		out.SendErr = errors.New("cannot send messages to this user")

		err := uc.Handle(ctx, message("help"))
		Expect(err).To(MatchError(ContainSubstring("cannot send messages")))
	})
})
