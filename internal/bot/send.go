package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ziadkadry99/wa-bridge/internal/gateway"
)

// SendType is one of the closed set of `send` subcommands.
type SendType string

const (
	SendText     SendType = "text"
	SendImage    SendType = "image"
	SendFile     SendType = "file"
	SendVideo    SendType = "video"
	SendContact  SendType = "contact"
	SendLink     SendType = "link"
	SendLocation SendType = "location"
	SendAudio    SendType = "audio"
	SendPoll     SendType = "poll"
	SendPresence SendType = "presence"
)

// sendHandlers maps each subtype to its handler. rest is everything after
// the subtype token, whitespace preserved.
var sendHandlers = map[SendType]func(b *Bot, ctx context.Context, sender, rest string){
	SendText:     (*Bot).sendSampleText,
	SendImage:    (*Bot).sendSampleImage,
	SendFile:     (*Bot).sendSampleFile,
	SendVideo:    (*Bot).sendSampleVideo,
	SendContact:  (*Bot).sendSampleContact,
	SendLink:     (*Bot).sendSampleLink,
	SendLocation: (*Bot).sendSampleLocation,
	SendAudio:    (*Bot).sendSampleAudio,
	SendPoll:     (*Bot).sendSamplePoll,
	SendPresence: (*Bot).sendSamplePresence,
}

// handleSend parses "send <subtype> <rest>" and dispatches. The message is
// split on whitespace at most twice so rest keeps its internal spacing.
func (b *Bot) handleSend(ctx context.Context, sender, text string) {
	parts := strings.SplitN(text, " ", 3)
	if len(parts) < 2 {
		b.reply(ctx, sender, "Perintah 'send' tidak lengkap. Gunakan `menu` untuk melihat opsi.")
		return
	}

	subtype := SendType(strings.ToLower(parts[1]))
	rest := ""
	if len(parts) > 2 {
		rest = parts[2]
	}

	handler, ok := sendHandlers[subtype]
	if !ok {
		b.reply(ctx, sender, fmt.Sprintf("Tipe pengiriman '%s' tidak dikenal. Gunakan `menu`.", subtype))
		return
	}
	handler(b, ctx, sender, rest)
}

func (b *Bot) sendSampleText(ctx context.Context, sender, rest string) {
	if rest == "" {
		b.reply(ctx, sender, "Mohon berikan pesan untuk dikirim. Contoh: `send text Halo dunia!`")
		return
	}
	log.Info().Str("sender", sender).Msg("sending text message")
	b.reply(ctx, sender, rest)
	b.reply(ctx, sender, fmt.Sprintf("Pesan teks '%s' telah dikirim ke Anda.", rest))
}

func (b *Bot) sendSampleImage(ctx context.Context, sender, _ string) {
	imagePath := filepath.Join(b.assetsDir, "sample_image.jpeg")
	if _, err := os.Stat(imagePath); err != nil {
		b.reply(ctx, sender, "File gambar tidak ditemukan di: "+imagePath)
		return
	}
	opts := gateway.MediaOptions{Caption: "Ini adalah contoh gambar dari aset lokal."}
	if _, err := b.client.SendImage(ctx, sender, imagePath, "", opts); err != nil {
		log.Error().Err(err).Msg("failed to send image")
		b.reply(ctx, sender, fmt.Sprintf("Gagal mengirim gambar: %v", err))
		return
	}
	b.reply(ctx, sender, "Gambar dari aset lokal telah dikirim ke Anda.")
}

func (b *Bot) sendSampleFile(ctx context.Context, sender, _ string) {
	filePath := filepath.Join(b.assetsDir, "sample_document.pdf")
	if _, err := os.Stat(filePath); err != nil {
		b.reply(ctx, sender, "File dokumen tidak ditemukan di: "+filePath)
		return
	}
	if _, err := b.client.SendFile(ctx, sender, filePath, "Ini adalah contoh dokumen PDF dari aset lokal.", false); err != nil {
		log.Error().Err(err).Msg("failed to send file")
		b.reply(ctx, sender, fmt.Sprintf("Gagal mengirim file: %v", err))
		return
	}
	b.reply(ctx, sender, "File dari aset lokal telah dikirim ke Anda.")
}

func (b *Bot) sendSampleVideo(ctx context.Context, sender, _ string) {
	videoPath := filepath.Join(b.assetsDir, "sample_video.mp4")
	if _, err := os.Stat(videoPath); err != nil {
		b.reply(ctx, sender, "File video tidak ditemukan di: "+videoPath)
		return
	}
	opts := gateway.MediaOptions{Caption: "Ini adalah contoh video dari aset lokal."}
	if _, err := b.client.SendVideo(ctx, sender, videoPath, opts); err != nil {
		log.Error().Err(err).Msg("failed to send video")
		b.reply(ctx, sender, fmt.Sprintf("Gagal mengirim video: %v", err))
		return
	}
	b.reply(ctx, sender, "Video dari aset lokal telah dikirim ke Anda.")
}

func (b *Bot) sendSampleContact(ctx context.Context, sender, _ string) {
	const contactName = "John Doe"
	const contactPhone = "6281234567891"
	if _, err := b.client.SendContact(ctx, sender, contactName, contactPhone, false); err != nil {
		log.Error().Err(err).Msg("failed to send contact")
		b.reply(ctx, sender, fmt.Sprintf("Gagal mengirim kontak: %v", err))
		return
	}
	b.reply(ctx, sender, fmt.Sprintf("Kontak '%s' telah dikirim ke Anda.", contactName))
}

func (b *Bot) sendSampleLink(ctx context.Context, sender, _ string) {
	const link = "https://www.google.com"
	if _, err := b.client.SendLink(ctx, sender, link, "Ini adalah contoh link ke Google.", false); err != nil {
		log.Error().Err(err).Msg("failed to send link")
		b.reply(ctx, sender, fmt.Sprintf("Gagal mengirim link: %v", err))
		return
	}
	b.reply(ctx, sender, fmt.Sprintf("Link '%s' telah dikirim ke Anda.", link))
}

func (b *Bot) sendSampleLocation(ctx context.Context, sender, _ string) {
	// Jakarta.
	const latitude = "-6.2088"
	const longitude = "106.8456"
	if _, err := b.client.SendLocation(ctx, sender, latitude, longitude, false); err != nil {
		log.Error().Err(err).Msg("failed to send location")
		b.reply(ctx, sender, fmt.Sprintf("Gagal mengirim lokasi: %v", err))
		return
	}
	b.reply(ctx, sender, fmt.Sprintf("Lokasi (%s, %s) telah dikirim ke Anda.", latitude, longitude))
}

func (b *Bot) sendSamplePoll(ctx context.Context, sender, _ string) {
	question := "Apa warna favoritmu?"
	options := []string{"Merah", "Biru", "Hijau", "Kuning"}
	if _, err := b.client.SendPoll(ctx, sender, question, options, 1); err != nil {
		log.Error().Err(err).Msg("failed to send poll")
		b.reply(ctx, sender, fmt.Sprintf("Gagal mengirim polling: %v", err))
		return
	}
	b.reply(ctx, sender, fmt.Sprintf("Polling '%s' telah dikirim ke Anda.", question))
}

func (b *Bot) sendSamplePresence(ctx context.Context, sender, rest string) {
	presence := strings.ToLower(strings.TrimSpace(rest))
	if !gateway.IsValidPresence(presence) {
		valid := make([]string, len(gateway.ValidPresenceTypes))
		for i, p := range gateway.ValidPresenceTypes {
			valid[i] = string(p)
		}
		b.reply(ctx, sender, fmt.Sprintf("Tipe kehadiran '%s' tidak valid. Gunakan salah satu: %s.", presence, strings.Join(valid, ", ")))
		return
	}
	if _, err := b.client.SendPresence(ctx, gateway.PresenceType(presence)); err != nil {
		log.Error().Err(err).Msg("failed to set presence")
		b.reply(ctx, sender, fmt.Sprintf("Gagal mengatur kehadiran: %v", err))
		return
	}
	b.reply(ctx, sender, fmt.Sprintf("Status kehadiran diatur ke '%s'.", presence))
}
