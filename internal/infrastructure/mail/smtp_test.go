package mail

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
)

func TestSMTPMailer_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m := NewSMTPMailer(Config{Host: "mail.example.com", Port: "587", From: "noreply@example.com"})
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := m.Send(context.Background(), "alice@example.com", "Hello", "body text")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if gotAddr != "mail.example.com:587" {
		t.Fatalf("unexpected addr %q", gotAddr)
	}
	if gotFrom != "noreply@example.com" || len(gotTo) != 1 || gotTo[0] != "alice@example.com" {
		t.Fatalf("unexpected envelope: from=%q to=%v", gotFrom, gotTo)
	}
	msg := string(gotMsg)
	if !strings.Contains(msg, "Subject: Hello\r\n") || !strings.Contains(msg, "\r\n\r\nbody text") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	m := NewSMTPMailer(Config{Host: "mail.example.com", Port: "587"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatalf("send should not be called")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Send(ctx, "a@x.com", "s", "b"); err == nil {
		t.Fatalf("expected context error")
	}
}
