package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"plant-id/api/internal/catalogue"
	"plant-id/api/internal/client"
	"plant-id/api/internal/photo"
	"plant-id/api/internal/util"
	"plant-id/api/internal/vision/types"
)

// maxMessageBytes keeps replies under the Telegram 4096 limit.
const maxMessageBytes = 3900

// Bot is the part of *tgbotapi.BotAPI the router uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Identifier is the part of *client.Client the router uses.
type Identifier interface {
	Identify(ctx context.Context, payload string) (*types.Identification, error)
	Plants(ctx context.Context, location string) ([]catalogue.Plant, error)
}

type Router struct {
	Bot        Bot
	Client     Identifier
	Normalizer *photo.Normalizer
	HTTP       *http.Client
	// Timeout bounds one photo round trip; 0 means none.
	Timeout time.Duration
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	cid := msg.Chat.ID

	switch {
	case msg.IsCommand():
		r.HandleCommand(msg)
	case len(msg.Photo) > 0:
		r.acceptPhoto(msg)
	case msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/"):
		r.identifyFile(cid, msg.Document.FileID)
	case msg.Location != nil:
		r.acceptLocation(cid, msg.Location.Latitude, msg.Location.Longitude)
	default:
		r.send(cid, "Send me a photo of a plant and I will try to identify it.\nCommands: /plants [region], /health")
	}
}

func (r *Router) HandleCommand(msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	switch msg.Command() {
	case "start", "help":
		r.send(cid, "Send a photo of a plant and I will tell you what it is.\n"+
			"Share your location or use /plants <region> to browse plants native to an area.\n"+
			"Commands: /plants, /health")
	case "health":
		r.send(cid, "✅ OK")
	case "plants":
		region := strings.TrimSpace(msg.CommandArguments())
		if region == "" {
			region = lastRegion(cid)
		}
		r.listPlants(cid, region)
	default:
		r.send(cid, "Unknown command")
	}
}

func (r *Router) acceptPhoto(msg *tgbotapi.Message) {
	// the last size is the largest
	ph := msg.Photo[len(msg.Photo)-1]
	r.identifyFile(msg.Chat.ID, ph.FileID)
}

func (r *Router) identifyFile(cid int64, fileID string) {
	if !startIdentify(cid) {
		r.send(cid, "Still working on your previous photo, please wait.")
		return
	}
	defer finishIdentify(cid)

	logger := log.WithField("chat_id", cid)
	r.send(cid, "🔍 Identifying…")

	ctx := context.Background()
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	url, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		logger.WithError(err).Warn("get file url")
		r.SendError(cid, err)
		return
	}
	raw, err := r.download(ctx, url)
	if err != nil {
		logger.WithError(err).Warn("download photo")
		r.SendError(cid, err)
		return
	}

	payload, err := r.normalizer().Normalize(raw)
	if err != nil {
		logger.WithError(err).Info("normalize photo")
		r.SendError(cid, err)
		return
	}

	res, err := r.Client.Identify(ctx, payload)
	if err != nil {
		logger.WithError(err).Warn("identify")
		r.SendError(cid, err)
		return
	}
	logger.WithFields(log.Fields{
		"common_name": res.CommonName,
		"confidence":  res.Confidence,
	}).Info("identified")
	r.send(cid, FormatIdentification(res))
}

func (r *Router) acceptLocation(cid int64, lat, lng float64) {
	region := catalogue.RegionFor(lat, lng)
	setLastRegion(cid, region)
	if region == catalogue.UnknownRegion {
		r.send(cid, "I could not match your location to a region. Try /plants <region>.")
		return
	}
	r.send(cid, "📍 Region: "+region)
	r.listPlants(cid, region)
}

func (r *Router) listPlants(cid int64, region string) {
	ctx := context.Background()
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	plants, err := r.Client.Plants(ctx, region)
	if err != nil {
		r.SendError(cid, err)
		return
	}
	r.send(cid, FormatPlants(region, plants))
}

func (r *Router) normalizer() *photo.Normalizer {
	if r.Normalizer != nil {
		return r.Normalizer
	}
	return photo.New()
}

func (r *Router) send(chatID int64, text string) {
	text = util.Truncate(text, maxMessageBytes)
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Warn("telegram send")
	}
}

// SendError reports err to the chat in user terms.
func (r *Router) SendError(chatID int64, err error) {
	var ie *client.IdentificationError
	switch {
	case errors.Is(err, photo.ErrDecode):
		r.send(chatID, "❌ That file does not look like an image I can read.")
	case errors.Is(err, photo.ErrTooLarge):
		r.send(chatID, "❌ That image is too large.")
	case errors.As(err, &ie):
		r.send(chatID, "❌ "+ie.Message)
	default:
		r.send(chatID, fmt.Sprintf("❌ Something went wrong: %v", err))
	}
}
