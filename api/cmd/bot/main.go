package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"plant-id/api/internal/client"
	"plant-id/api/internal/config"
	"plant-id/api/internal/photo"
	"plant-id/api/internal/telegram"
)

func main() {
	cfg := config.LoadBot()
	config.SetupLogging(cfg.LogLevel, cfg.LogFormat)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.WithError(err).Fatal("telegram login")
	}
	bot.Debug = false

	var opts []client.Option
	if cfg.ClientTimeout > 0 {
		opts = append(opts, client.WithTimeout(cfg.ClientTimeout))
	}
	norm := photo.New()
	norm.MaxBytes = cfg.MaxImageBytes

	r := &telegram.Router{
		Bot:        bot,
		Client:     client.New(cfg.IdentifyURL, opts...),
		Normalizer: norm,
		Timeout:    cfg.ClientTimeout,
	}

	// ListenForWebhook registers on DefaultServeMux, so health lives there too.
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := "0.0.0.0:" + cfg.Port
	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		startWebhookMode(ctx, addr, bot, r, webhookURL)
	} else {
		startPollingMode(ctx, addr, bot, r)
	}
}

func startWebhookMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string) {
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		log.WithError(err).Fatal("webhook config")
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		log.WithError(err).Fatal("set webhook")
	}

	updates := bot.ListenForWebhook(path)
	go func() {
		for upd := range updates {
			go r.HandleUpdate(upd)
		}
		log.Info("webhook updates channel closed")
	}()

	log.Infof("webhook listening on %s%s", addr, path)
	srv := &http.Server{Addr: addr, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("http server")
	}
}

func startPollingMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, r *telegram.Router) {
	go func() {
		log.Infof("health server listening on %s/healthz", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.WithError(err).Error("health server")
		}
	}()

	runPolling(ctx, bot, func(upd tgbotapi.Update) {
		go r.HandleUpdate(upd)
	})
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

// retryDelayFromError picks the pause after a failed getUpdates call.
func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, handle func(tgbotapi.Update)) {
	offset := 0
	baseDelay := 1 * time.Second
	maxDelay := 15 * time.Second

	for {
		select {
		case <-ctx.Done():
			log.Info("polling: context cancelled")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := min(max(retryDelayFromError(err), baseDelay), maxDelay)
			log.WithError(err).Warnf("polling error, retry in %v", d)
			select {
			case <-ctx.Done():
				return
			case <-time.After(d):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			time.Sleep(200 * time.Millisecond)
		}
	}
}

// shortHash is FNV-1a of s as 16 hex digits, used for the webhook path.
func shortHash(s string) string {
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}
