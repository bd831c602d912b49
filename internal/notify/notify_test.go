package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	slackapi "github.com/slack-go/slack"
)

func testFailure() Failure {
	return Failure{
		CardID: "crd-abc123",
		Errors: []string{"acme/widgets#42: api: 502 bad gateway"},
		When:   time.Now(),
	}
}

// recordingNotifier counts deliveries and optionally fails.
type recordingNotifier struct {
	calls int
	err   error
}

func (r *recordingNotifier) SyncFailure(_ context.Context, _ Failure) error {
	r.calls++
	return r.err
}

func TestMulti_FansOutToAllSinks(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{}

	if err := NewMulti(a, b).SyncFailure(context.Background(), testFailure()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("calls = %d, %d, want 1, 1", a.calls, b.calls)
	}
}

func TestMulti_SinkErrorDoesNotStopDelivery(t *testing.T) {
	a := &recordingNotifier{err: errors.New("boom")}
	b := &recordingNotifier{}

	if err := NewMulti(a, b).SyncFailure(context.Background(), testFailure()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.calls != 1 {
		t.Errorf("second sink calls = %d, want 1 despite first sink failing", b.calls)
	}
}

func TestFailureText(t *testing.T) {
	text := failureText(testFailure())
	if !strings.Contains(text, "crd-abc123") {
		t.Errorf("text = %q, want to contain the card id", text)
	}
	if !strings.Contains(text, "acme/widgets#42") {
		t.Errorf("text = %q, want to contain the failing issue", text)
	}
}

// mockSlackClient records PostMessageContext calls.
type mockSlackClient struct {
	channels []string
	err      error
}

func (m *mockSlackClient) PostMessageContext(_ context.Context, channelID string, _ ...slackapi.MsgOption) (string, string, error) {
	m.channels = append(m.channels, channelID)
	return channelID, "1234.5678", m.err
}

func TestSlack_PostsToConfiguredChannel(t *testing.T) {
	mock := &mockSlackClient{}
	s, err := NewSlack(SlackOpts{ChannelID: "C0123", Client: mock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.SyncFailure(context.Background(), testFailure()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.channels) != 1 || mock.channels[0] != "C0123" {
		t.Errorf("posted to %v, want [C0123]", mock.channels)
	}
}

func TestSlack_PostErrorSurfaces(t *testing.T) {
	mock := &mockSlackClient{err: errors.New("channel_not_found")}
	s, err := NewSlack(SlackOpts{ChannelID: "C0123", Client: mock})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SyncFailure(context.Background(), testFailure()); err == nil {
		t.Error("expected error from failed post")
	}
}

func TestNewSlack_Validation(t *testing.T) {
	if _, err := NewSlack(SlackOpts{ChannelID: "C0123"}); err == nil {
		t.Error("expected error without token or client")
	}
	if _, err := NewSlack(SlackOpts{Client: &mockSlackClient{}}); err == nil {
		t.Error("expected error without channel")
	}
}

// mockDiscordSession records embeds sent.
type mockDiscordSession struct {
	embeds []*discordgo.MessageEmbed
	err    error
}

func (m *mockDiscordSession) ChannelMessageSendEmbed(_ string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.embeds = append(m.embeds, embed)
	return &discordgo.Message{}, m.err
}

func TestDiscord_SendsEmbed(t *testing.T) {
	mock := &mockDiscordSession{}
	d, err := NewDiscord(DiscordOpts{ChannelID: "987", Session: mock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := d.SyncFailure(context.Background(), testFailure()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.embeds) != 1 {
		t.Fatalf("embeds sent = %d, want 1", len(mock.embeds))
	}
	if !strings.Contains(mock.embeds[0].Title, "crd-abc123") {
		t.Errorf("embed title = %q, want to contain the card id", mock.embeds[0].Title)
	}
	if mock.embeds[0].Color != errorEmbedColor {
		t.Errorf("embed color = %#x, want %#x", mock.embeds[0].Color, errorEmbedColor)
	}
}

func TestNewDiscord_Validation(t *testing.T) {
	if _, err := NewDiscord(DiscordOpts{ChannelID: "987"}); err == nil {
		t.Error("expected error without token or session")
	}
	if _, err := NewDiscord(DiscordOpts{Session: &mockDiscordSession{}}); err == nil {
		t.Error("expected error without channel")
	}
}
