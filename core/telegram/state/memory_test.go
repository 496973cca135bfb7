package state

import "testing"

func TestSessionLifecycle(t *testing.T) {
	m := NewMemoryManager()
	const user = int64(100)

	if m.InProgress(user) {
		t.Fatal("new user should be idle")
	}
	if got := m.Active(user); got != FlowNone {
		t.Fatalf("active flow = %q, expected none", got)
	}

	m.Begin(user, FlowHelp, StepHelpName)
	if !m.InProgress(user) {
		t.Fatal("flow should be in progress after Begin")
	}
	sess, ok := m.Session(user)
	if !ok {
		t.Fatal("expected session")
	}
	if sess.Flow != FlowHelp || sess.Step != StepHelpName {
		t.Fatalf("session = %+v", sess)
	}

	m.Update(user, func(s *Scratch) { s.Name = "Ivan" })
	m.Advance(user, StepHelpPhone)
	sess, _ = m.Session(user)
	if sess.Scratch.Name != "Ivan" {
		t.Fatalf("scratch name = %q", sess.Scratch.Name)
	}
	if sess.Step != StepHelpPhone {
		t.Fatalf("step = %q", sess.Step)
	}

	m.Finish(user)
	if m.InProgress(user) {
		t.Fatal("flow should be cleared after Finish")
	}
	if _, ok := m.Session(user); ok {
		t.Fatal("session should be gone after Finish")
	}
}

func TestBeginReplacesSession(t *testing.T) {
	m := NewMemoryManager()
	const user = int64(7)

	m.Begin(user, FlowHelp, StepHelpName)
	m.Update(user, func(s *Scratch) { s.Name = "Ivan" })

	m.Begin(user, FlowContact, StepContactMessage)
	sess, ok := m.Session(user)
	if !ok {
		t.Fatal("expected session")
	}
	if sess.Flow != FlowContact {
		t.Fatalf("flow = %q", sess.Flow)
	}
	if sess.Scratch != (Scratch{}) {
		t.Fatalf("scratch should be empty after Begin, got %+v", sess.Scratch)
	}
}

func TestSessionCopyIsDetached(t *testing.T) {
	m := NewMemoryManager()
	const user = int64(3)

	m.Begin(user, FlowAdminReply, StepReplyText)
	sess, _ := m.Session(user)
	sess.Scratch.ReplyTo = 999

	fresh, _ := m.Session(user)
	if fresh.Scratch.ReplyTo != 0 {
		t.Fatal("mutating a returned session must not affect the stored one")
	}
}

func TestUpdateIgnoresIdleUser(t *testing.T) {
	m := NewMemoryManager()
	m.Update(55, func(s *Scratch) { s.Phone = "+79991234567" })
	if _, ok := m.Session(55); ok {
		t.Fatal("Update must not create sessions")
	}
}
