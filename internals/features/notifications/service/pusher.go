package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCM membatasi 500 token per multicast
const fcmMaxTokens = 500

type PushPayload struct {
	Title string
	Body  string
	Data  map[string]string
}

type PushReport struct {
	Success       int
	Failure       int
	InvalidTokens []string // token yang sebaiknya dihapus
}

// Pusher = pengirim push eksternal
type Pusher interface {
	Push(ctx context.Context, tokens []string, p PushPayload) (PushReport, error)
}

/* =========================
   Noop (dev / tanpa kredensial)
   ========================= */

type NoopPusher struct{}

func (NoopPusher) Push(_ context.Context, tokens []string, p PushPayload) (PushReport, error) {
	log.Printf("[PUSH] (noop) %q → %d token", p.Title, len(tokens))
	return PushReport{Success: len(tokens)}, nil
}

/* =========================
   Firebase Cloud Messaging
   ========================= */

// multicastSender = bagian *messaging.Client yang dipakai (diganti fake di test)
type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

type FCMPusher struct {
	client multicastSender
}

// NewFCMPusherFromEnv: GOOGLE_APPLICATION_CREDENTIALS (file) atau FIREBASE_CONFIG (JSON).
// Tanpa kredensial → NoopPusher supaya dev tetap jalan.
func NewFCMPusherFromEnv(ctx context.Context) (Pusher, error) {
	var opts []option.ClientOption
	if path := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	} else if cfg := strings.TrimSpace(os.Getenv("FIREBASE_CONFIG")); cfg != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg)))
	} else {
		log.Println("[PUSH] ⚠️ Kredensial Firebase tidak ada, push memakai noop")
		return NoopPusher{}, nil
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}
	log.Println("[PUSH] ✅ Firebase messaging siap")
	return &FCMPusher{client: client}, nil
}

// Push mengirim per chunk 500 token. Chunk yang gagal dihitung Failure
// dan chunk berikutnya tetap dikirim; error gabungan dikembalikan bersama report parsial.
func (f *FCMPusher) Push(ctx context.Context, tokens []string, p PushPayload) (PushReport, error) {
	var (
		rep  PushReport
		errs []error
	)
	for start := 0; start < len(tokens); start += fcmMaxTokens {
		end := start + fcmMaxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		chunk := tokens[start:end]

		br, err := f.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens: chunk,
			Notification: &messaging.Notification{
				Title: p.Title,
				Body:  p.Body,
			},
			Data: p.Data,
		})
		if err != nil {
			rep.Failure += len(chunk)
			errs = append(errs, fmt.Errorf("chunk %d-%d: %w", start, end, err))
			continue
		}
		rep.Success += br.SuccessCount
		rep.Failure += br.FailureCount
		for i, r := range br.Responses {
			if r.Success || r.Error == nil {
				continue
			}
			if messaging.IsUnregistered(r.Error) || messaging.IsInvalidArgument(r.Error) {
				rep.InvalidTokens = append(rep.InvalidTokens, chunk[i])
			}
		}
	}
	return rep, errors.Join(errs...)
}
