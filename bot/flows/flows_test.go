package flows

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/EvgenijZaharo/medspravkiBot/bot/payload"
	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

const testAdminID int64 = 900

type fakeContext struct {
	tele.Context
	user  *tele.User
	text  string
	cb    *tele.Callback
	store map[string]interface{}

	sent    []string
	markups []*tele.ReplyMarkup
	edited  []string
}

func newFakeContext(user *tele.User, text string) *fakeContext {
	return &fakeContext{user: user, text: text, store: map[string]interface{}{}}
}

func (f *fakeContext) Sender() *tele.User { return f.user }

func (f *fakeContext) Chat() *tele.Chat {
	if f.user == nil {
		return nil
	}
	return &tele.Chat{ID: f.user.ID}
}

func (f *fakeContext) Text() string { return f.text }

func (f *fakeContext) Callback() *tele.Callback { return f.cb }

func (f *fakeContext) Update() tele.Update { return tele.Update{} }

func (f *fakeContext) Get(key string) interface{} { return f.store[key] }

func (f *fakeContext) Set(key string, val interface{}) { f.store[key] = val }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	text, _ := what.(string)
	f.sent = append(f.sent, text)
	for _, opt := range opts {
		if so, ok := opt.(*tele.SendOptions); ok && so.ReplyMarkup != nil {
			f.markups = append(f.markups, so.ReplyMarkup)
		}
	}
	return nil
}

func (f *fakeContext) Edit(what interface{}, opts ...interface{}) error {
	text, _ := what.(string)
	f.edited = append(f.edited, text)
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error { return nil }

func (f *fakeContext) lastSent(t *testing.T) string {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatalf("no messages sent")
	}
	return f.sent[len(f.sent)-1]
}

type delivery struct {
	chatID int64
	text   string
	markup *tele.ReplyMarkup
}

type fakeCourier struct {
	sendErr    error
	sent       []delivery
	dispatched []delivery
}

func (f *fakeCourier) Send(chatID int64, text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, delivery{chatID: chatID, text: text})
	return nil
}

func (f *fakeCourier) Dispatch(_ tele.Context, chatID int64, text string, markup *tele.ReplyMarkup) {
	f.dispatched = append(f.dispatched, delivery{chatID: chatID, text: text, markup: markup})
}

func newTestFlows() (*Flows, state.Manager, *fakeCourier) {
	states := state.NewMemoryManager()
	courier := &fakeCourier{}
	return New(states, courier, testAdminID), states, courier
}

func replyCallbackContext(userID, target int64) *fakeContext {
	c := newFakeContext(&tele.User{ID: userID}, "")
	c.cb = &tele.Callback{Data: payload.Reply(target)}
	return c
}

func TestContactFlowRelaysMessage(t *testing.T) {
	f, states, courier := newTestFlows()
	user := &tele.User{ID: 42, Username: "ivan"}

	c := newFakeContext(user, MenuContact)
	if err := f.ContactStart(c); err != nil {
		t.Fatalf("ContactStart: %v", err)
	}
	if c.lastSent(t) != TextContactPrompt {
		t.Fatalf("prompt = %q", c.lastSent(t))
	}
	if !states.InProgress(user.ID) {
		t.Fatalf("contact flow not started")
	}

	msg := newFakeContext(user, "мне нужна справка")
	if err := states.Dispatch(msg); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if msg.lastSent(t) != TextContactSent {
		t.Fatalf("confirmation = %q", msg.lastSent(t))
	}
	if states.InProgress(user.ID) {
		t.Fatalf("contact flow still active after completion")
	}

	if len(courier.dispatched) != 1 {
		t.Fatalf("admin notifications = %d, want 1", len(courier.dispatched))
	}
	note := courier.dispatched[0]
	if note.chatID != testAdminID {
		t.Fatalf("notification target = %d", note.chatID)
	}
	if !strings.Contains(note.text, "мне нужна справка") || !strings.Contains(note.text, "ID: 42") {
		t.Fatalf("notification text = %q", note.text)
	}
	if note.markup == nil {
		t.Fatalf("notification has no reply button")
	}
	id, err := payload.ParseReply(note.markup.InlineKeyboard[0][0].Data)
	if err != nil || id != user.ID {
		t.Fatalf("reply button payload = %q (%v)", note.markup.InlineKeyboard[0][0].Data, err)
	}
}

func TestHelpFlowCollectsAllFields(t *testing.T) {
	f, states, courier := newTestFlows()
	user := &tele.User{ID: 7, Username: "petya"}

	start := newFakeContext(user, MenuHelp)
	if err := f.HelpStart(start); err != nil {
		t.Fatalf("HelpStart: %v", err)
	}
	if start.lastSent(t) != TextHelpAskName {
		t.Fatalf("name prompt = %q", start.lastSent(t))
	}

	steps := []struct {
		input string
		reply string
	}{
		{"   ", TextHelpNameEmpty},
		{"Пётр", TextHelpAskPhone},
		{"12345", TextHelpBadPhone},
		{"  +79991234567 ", TextHelpAskText},
		{"нужна справка 086/у", TextHelpSent},
	}
	for _, step := range steps {
		c := newFakeContext(user, step.input)
		if err := states.Dispatch(c); err != nil {
			t.Fatalf("Dispatch(%q): %v", step.input, err)
		}
		if got := c.lastSent(t); got != step.reply {
			t.Fatalf("after %q got %q, want %q", step.input, got, step.reply)
		}
	}

	if states.InProgress(user.ID) {
		t.Fatalf("help flow still active after completion")
	}
	if len(courier.dispatched) != 1 {
		t.Fatalf("admin notifications = %d, want 1", len(courier.dispatched))
	}
	note := courier.dispatched[0].text
	for _, want := range []string{"Имя: Пётр", "Номер: +79991234567", "Запрос: нужна справка 086/у", "ID: 7"} {
		if !strings.Contains(note, want) {
			t.Fatalf("notification %q misses %q", note, want)
		}
	}
}

func TestHelpFlowConsumesMenuLabel(t *testing.T) {
	f, states, _ := newTestFlows()
	user := &tele.User{ID: 8}

	if err := f.HelpStart(newFakeContext(user, MenuHelp)); err != nil {
		t.Fatalf("HelpStart: %v", err)
	}

	// Mid-flow the contact menu label is just text: it becomes the name
	// instead of starting the contact flow.
	c := newFakeContext(user, MenuContact)
	if err := states.Dispatch(c); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if c.lastSent(t) != TextHelpAskPhone {
		t.Fatalf("reply = %q, want phone prompt", c.lastSent(t))
	}
	sess, ok := states.Session(user.ID)
	if !ok || sess.Flow != state.FlowHelp {
		t.Fatalf("active flow = %+v, want help", sess)
	}
	if sess.Scratch.Name != MenuContact {
		t.Fatalf("scratch name = %q", sess.Scratch.Name)
	}
}

func TestEntryIgnoredWhileFlowActive(t *testing.T) {
	f, states, _ := newTestFlows()
	user := &tele.User{ID: 9}

	if err := f.HelpStart(newFakeContext(user, MenuHelp)); err != nil {
		t.Fatalf("HelpStart: %v", err)
	}

	c := newFakeContext(user, "/contact")
	if err := f.ContactStart(c); err != nil {
		t.Fatalf("ContactStart: %v", err)
	}
	if len(c.sent) != 0 {
		t.Fatalf("unexpected reply %q", c.sent)
	}
	if got := states.Active(user.ID); got != state.FlowHelp {
		t.Fatalf("active flow = %q, want help", got)
	}
}

func TestCancelClearsActiveFlow(t *testing.T) {
	f, states, _ := newTestFlows()
	user := &tele.User{ID: 10}

	if err := f.HelpStart(newFakeContext(user, MenuHelp)); err != nil {
		t.Fatalf("HelpStart: %v", err)
	}
	c := newFakeContext(user, "/cancel")
	if err := f.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if c.lastSent(t) != TextCancelled {
		t.Fatalf("reply = %q", c.lastSent(t))
	}
	if len(c.markups) == 0 {
		t.Fatalf("cancel did not restore the main menu")
	}
	if states.InProgress(user.ID) {
		t.Fatalf("flow survived cancel")
	}
}

func TestCancelWithoutFlowStillAcknowledges(t *testing.T) {
	f, _, _ := newTestFlows()
	c := newFakeContext(&tele.User{ID: 11}, "/cancel")
	if err := f.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if c.lastSent(t) != TextCancelled {
		t.Fatalf("reply = %q", c.lastSent(t))
	}
}

func TestReplyCallbackRejectsNonAdmin(t *testing.T) {
	f, states, _ := newTestFlows()

	c := replyCallbackContext(12, 42)
	if err := f.ReplyCallback(c); err != nil {
		t.Fatalf("ReplyCallback: %v", err)
	}
	if len(c.edited) != 1 || c.edited[0] != TextAdminOnly {
		t.Fatalf("edits = %q", c.edited)
	}
	if states.InProgress(12) {
		t.Fatalf("reply flow started for non-admin")
	}
}

func TestAdminReplyDelivers(t *testing.T) {
	f, states, courier := newTestFlows()

	cb := replyCallbackContext(testAdminID, 42)
	if err := f.ReplyCallback(cb); err != nil {
		t.Fatalf("ReplyCallback: %v", err)
	}
	if len(cb.edited) != 1 || cb.edited[0] != TextReplyPrompt {
		t.Fatalf("edits = %q", cb.edited)
	}

	msg := newFakeContext(&tele.User{ID: testAdminID}, "готово, приходите завтра")
	if err := states.Dispatch(msg); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if msg.lastSent(t) != TextReplySent {
		t.Fatalf("confirmation = %q", msg.lastSent(t))
	}
	if len(courier.sent) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(courier.sent))
	}
	got := courier.sent[0]
	if got.chatID != 42 {
		t.Fatalf("delivery target = %d", got.chatID)
	}
	want := "📨 Ответ от администратора:\n\nготово, приходите завтра"
	if got.text != want {
		t.Fatalf("delivery text = %q, want %q", got.text, want)
	}
	if states.InProgress(testAdminID) {
		t.Fatalf("reply flow still active")
	}
}

func TestAdminReplyRetargets(t *testing.T) {
	f, states, courier := newTestFlows()

	if err := f.ReplyCallback(replyCallbackContext(testAdminID, 42)); err != nil {
		t.Fatalf("first ReplyCallback: %v", err)
	}
	second := replyCallbackContext(testAdminID, 77)
	if err := f.ReplyCallback(second); err != nil {
		t.Fatalf("second ReplyCallback: %v", err)
	}
	want := fmt.Sprintf(TextReplyRetargetFmt, 77)
	if len(second.edited) != 1 || second.edited[0] != want {
		t.Fatalf("retarget prompt = %q, want %q", second.edited, want)
	}

	msg := newFakeContext(&tele.User{ID: testAdminID}, "ответ")
	if err := states.Dispatch(msg); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(courier.sent) != 1 || courier.sent[0].chatID != 77 {
		t.Fatalf("delivery = %+v, want target 77", courier.sent)
	}
}

func TestAdminReplyWithoutTarget(t *testing.T) {
	_, states, courier := newTestFlows()

	// Simulate a session that lost its target.
	states.Begin(testAdminID, state.FlowAdminReply, state.StepReplyText)

	msg := newFakeContext(&tele.User{ID: testAdminID}, "ответ")
	if err := states.Dispatch(msg); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if msg.lastSent(t) != TextReplyNoTarget {
		t.Fatalf("reply = %q", msg.lastSent(t))
	}
	if len(courier.sent) != 0 {
		t.Fatalf("unexpected delivery %+v", courier.sent)
	}
	if states.InProgress(testAdminID) {
		t.Fatalf("session survived the error")
	}
}

func TestAdminReplyDeliveryFailure(t *testing.T) {
	f, states, courier := newTestFlows()
	courier.sendErr = errors.New("bot was blocked by the user")

	if err := f.ReplyCallback(replyCallbackContext(testAdminID, 42)); err != nil {
		t.Fatalf("ReplyCallback: %v", err)
	}
	msg := newFakeContext(&tele.User{ID: testAdminID}, "ответ")
	if err := states.Dispatch(msg); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	got := msg.lastSent(t)
	if !strings.HasPrefix(got, "❌ Ошибка при отправке:") || !strings.Contains(got, "blocked") {
		t.Fatalf("failure reply = %q", got)
	}
	if states.InProgress(testAdminID) {
		t.Fatalf("reply flow still active after failure")
	}
}

func TestReplyCallbackBadPayload(t *testing.T) {
	f, states, _ := newTestFlows()

	c := newFakeContext(&tele.User{ID: testAdminID}, "")
	c.cb = &tele.Callback{Data: "reply_to:abc"}
	if err := f.ReplyCallback(c); err != nil {
		t.Fatalf("ReplyCallback: %v", err)
	}
	if len(c.edited) != 0 {
		t.Fatalf("unexpected edit %q", c.edited)
	}
	if states.InProgress(testAdminID) {
		t.Fatalf("flow started on malformed payload")
	}
}

func TestStartShowsMainMenu(t *testing.T) {
	f, _, _ := newTestFlows()
	c := newFakeContext(&tele.User{ID: 13}, "/start")
	if err := f.Start(c); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if c.lastSent(t) != TextWelcome {
		t.Fatalf("reply = %q", c.lastSent(t))
	}
	if len(c.markups) != 1 {
		t.Fatalf("welcome has no keyboard")
	}
	rows := c.markups[0].ReplyKeyboard
	if len(rows) != 1 || len(rows[0]) != 2 {
		t.Fatalf("keyboard shape = %+v", rows)
	}
	if rows[0][0].Text != MenuContact || rows[0][1].Text != MenuHelp {
		t.Fatalf("keyboard labels = %+v", rows[0])
	}
}
