// Package bot routes inbound chat commands to gateway actions. Failures
// never propagate out of the router: whatever goes wrong is turned into a
// reply to the sender and a diagnostic log line.
package bot

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ziadkadry99/wa-bridge/internal/gateway"
)

// Sender is the slice of the gateway client the bot depends on.
type Sender interface {
	SendMessage(ctx context.Context, phone, message string, opts gateway.MessageOptions) (*gateway.Response, error)
	SendImage(ctx context.Context, phone, imagePath, imageURL string, opts gateway.MediaOptions) (*gateway.Response, error)
	SendAudio(ctx context.Context, phone, audioPath string, isForwarded bool) (*gateway.Response, error)
	SendFile(ctx context.Context, phone, filePath, caption string, isForwarded bool) (*gateway.Response, error)
	SendVideo(ctx context.Context, phone, videoPath string, opts gateway.MediaOptions) (*gateway.Response, error)
	SendContact(ctx context.Context, phone, contactName, contactPhone string, isForwarded bool) (*gateway.Response, error)
	SendLink(ctx context.Context, phone, link, caption string, isForwarded bool) (*gateway.Response, error)
	SendLocation(ctx context.Context, phone, latitude, longitude string, isForwarded bool) (*gateway.Response, error)
	SendPoll(ctx context.Context, phone, question string, options []string, maxAnswer int) (*gateway.Response, error)
	SendPresence(ctx context.Context, presence gateway.PresenceType) (*gateway.Response, error)
}

// Options configures a Bot.
type Options struct {
	Timezone         *time.Location
	AssetsDir        string
	AllowSelfMessage bool
}

// Bot dispatches recognized text commands. Stateless between messages.
type Bot struct {
	client           Sender
	tz               *time.Location
	assetsDir        string
	allowSelfMessage bool
}

// New creates a Bot. A nil timezone falls back to UTC and an empty assets
// dir to "assets".
func New(client Sender, opts Options) *Bot {
	tz := opts.Timezone
	if tz == nil {
		tz = time.UTC
	}
	assetsDir := opts.AssetsDir
	if assetsDir == "" {
		assetsDir = "assets"
	}
	return &Bot{
		client:           client,
		tz:               tz,
		assetsDir:        assetsDir,
		allowSelfMessage: opts.AllowSelfMessage,
	}
}

const menuText = "Halo! Saya adalah bot WhatsApp. Berikut adalah daftar perintah yang bisa Anda coba:\n\n" +
	"1. `send text <pesan>`: Mengirim pesan teks.\n" +
	"2. `send image`: Mengirim gambar (contoh dari aset lokal).\n" +
	"3. `send file`: Mengirim file (contoh PDF).\n" +
	"4. `send video`: Mengirim video (contoh dari aset lokal).\n" +
	"5. `send contact`: Mengirim kontak.\n" +
	"6. `send link`: Mengirim link dengan preview.\n" +
	"7. `send location`: Mengirim lokasi.\n" +
	"8. `send audio`: Mengirim audio.\n" +
	"9. `send poll`: Mengirim polling.\n" +
	"10. `send presence <type>`: Mengatur status kehadiran (available, unavailable, composing, paused, recording).\n" +
	"11. `ping`: Membalas dengan 'pong'.\n" +
	"12. `time`: Mendapatkan waktu saat ini.\n"

// HandleMessage routes one inbound message. Matching is a case-insensitive
// prefix check on the whole message, first match wins; text that matches
// nothing is ignored. It never returns an error.
func (b *Bot) HandleMessage(ctx context.Context, sender, text string, isSelf bool) {
	if isSelf && !b.allowSelfMessage {
		log.Debug().Str("sender", sender).Msg("ignoring self-message")
		return
	}
	if text == "" {
		return
	}

	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "ping"):
		log.Info().Str("sender", sender).Msg("replying pong")
		b.reply(ctx, sender, "pong")
	case strings.HasPrefix(lower, "menu"):
		b.reply(ctx, sender, menuText)
	case strings.HasPrefix(lower, "send"):
		b.handleSend(ctx, sender, text)
	case strings.HasPrefix(lower, "time"):
		b.sendCurrentTime(ctx, sender)
	}
}

func (b *Bot) sendCurrentTime(ctx context.Context, sender string) {
	now := time.Now().In(b.tz)
	b.reply(ctx, sender, "Current time: "+now.Format("15:04:05 -07:00"))
}

// reply sends a plain text message to the sender; a failed reply is only
// logged, there is nobody left to tell.
func (b *Bot) reply(ctx context.Context, sender, text string) {
	if _, err := b.client.SendMessage(ctx, sender, text, gateway.MessageOptions{}); err != nil {
		log.Error().Err(err).Str("sender", sender).Msg("failed to send reply")
	}
}
