package bot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// sendSampleAudio transcodes the sample WAV to Opus-in-Ogg with ffmpeg and
// sends the result. The intermediate file gets a unique name and is removed
// on every exit path, so repeated failures cannot accumulate temp files.
func (b *Bot) sendSampleAudio(ctx context.Context, sender, _ string) {
	audioPath := filepath.Join(b.assetsDir, "sample_audio.wav")
	if _, err := os.Stat(audioPath); err != nil {
		b.reply(ctx, sender, "File audio tidak ditemukan di: "+audioPath)
		return
	}

	oggPath := filepath.Join(os.TempDir(), "wabridge-"+uuid.NewString()+".ogg")
	defer os.Remove(oggPath)

	if err := transcodeToOpus(ctx, audioPath, oggPath); err != nil {
		log.Error().Err(err).Msg("audio transcode failed")
		b.reply(ctx, sender, fmt.Sprintf("Gagal mengkonversi audio: %v", err))
		return
	}

	if _, err := b.client.SendAudio(ctx, sender, oggPath, false); err != nil {
		log.Error().Err(err).Msg("failed to send audio")
		b.reply(ctx, sender, fmt.Sprintf("Gagal mengirim audio: %v", err))
		return
	}
	b.reply(ctx, sender, "Audio dari aset lokal telah dikirim ke Anda.")
}

// transcodeToOpus shells out to ffmpeg. On a non-zero exit the returned
// error carries the captured stderr so the user sees the encoder diagnostic.
func transcodeToOpus(ctx context.Context, inPath, outPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", inPath,
		"-c:a", "libopus",
		"-b:a", "64k",
		"-vbr", "on",
		"-compression_level", "10",
		outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, stderr.String())
	}
	return nil
}
