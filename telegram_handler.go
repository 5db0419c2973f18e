package main

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/userbase_dashboard/dataset"
	"github.com/pivolan/userbase_dashboard/domain/models"
	"github.com/pivolan/userbase_dashboard/engine"
	"github.com/pivolan/userbase_dashboard/plot"
	"github.com/pivolan/userbase_dashboard/report"
)

// photos above this size are rejected by telegram, send them as documents
const maxSizePhoto = 150000

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type telegramHandler struct {
	ds      *dataset.Dataset
	options models.DatasetOptions
	api     sender
	log     *slog.Logger
}

func newTelegramHandler(ds *dataset.Dataset, api sender, logger *slog.Logger) *telegramHandler {
	return &telegramHandler{
		ds:      ds,
		options: ds.Options(),
		api:     api,
		log:     logger.With("module", "telegram"),
	}
}

func (h *telegramHandler) run(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		go h.handleText(update.Message)
	}
}

func (h *telegramHandler) handleText(message *tgbotapi.Message) {
	switch message.Command() {
	case "stats":
		sel, err := parseStatsArgs(message.CommandArguments(), h.options)
		if err != nil {
			h.reply(message.Chat.ID, "Cannot parse filter: "+err.Error()+"\n\n"+statsUsage)
			return
		}
		h.sendStats(message.Chat.ID, sel)
	default:
		h.reply(message.Chat.ID, h.welcomeText())
	}
}

const statsUsage = `Usage: /stats tier=Basic,Premium country=United States,Canada age=20-40
Every key is optional, an empty /stats reports the whole userbase.`

func (h *telegramHandler) welcomeText() string {
	return fmt.Sprintf(`Hi! I report on the userbase.

Subscription types: %s
Countries: %s
Ages: %d-%d

%s`,
		strings.Join(h.options.Tiers, ", "),
		strings.Join(h.options.Countries, ", "),
		h.options.AgeMin, h.options.AgeMax,
		statsUsage)
}

func (h *telegramHandler) reply(chatID int64, text string) {
	if _, err := h.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (h *telegramHandler) sendStats(chatID int64, sel models.FilterSelection) {
	bundle := engine.Apply(h.ds, sel)

	msg := tgbotapi.NewMessage(chatID, "<pre>\n"+report.GenerateReport(bundle, report.FormatText)+"</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := h.api.Send(msg); err != nil {
		h.log.Error("send report", "chat_id", chatID, "error", err)
	}

	for _, name := range plot.ChartNames {
		graph, err := plot.DrawChart(bundle, name)
		if errors.Is(err, plot.ErrNoData) {
			continue
		}
		if err != nil {
			h.log.Error("draw chart", "chart", name, "error", err)
			continue
		}
		h.sendGraph(graph, name, chatID)
	}
}

// sendGraph sends a chart as a photo, or as a document when it is too large.
func (h *telegramHandler) sendGraph(graph []byte, name string, chatID int64) {
	pngFile := tgbotapi.FileBytes{
		Name:  fmt.Sprintf("%s_%s.png", name, time.Now().Format("20060102-150405")),
		Bytes: graph,
	}

	var err error
	if len(graph) < maxSizePhoto {
		photo := tgbotapi.NewPhotoUpload(chatID, pngFile)
		photo.Caption = plot.Title(name)
		_, err = h.api.Send(photo)
	} else {
		doc := tgbotapi.NewDocumentUpload(chatID, pngFile)
		doc.Caption = plot.Title(name)
		_, err = h.api.Send(doc)
	}
	if err != nil {
		h.log.Error("send chart", "chart", name, "chat_id", chatID, "error", err)
		h.reply(chatID, fmt.Sprintf("Could not send chart %s: %v", plot.Title(name), err))
	}
}

var statsKey = regexp.MustCompile(`(?i)\b(tier|country|age)\s*=`)

// parseStatsArgs reads "tier=a,b country=x,y age=20-40". Values run until the
// next key so country names may contain spaces.
func parseStatsArgs(args string, options models.DatasetOptions) (models.FilterSelection, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return models.NewFilterSelection(nil, nil, nil), nil
	}

	locs := statsKey.FindAllStringSubmatchIndex(args, -1)
	if len(locs) == 0 || strings.TrimSpace(args[:locs[0][0]]) != "" {
		return models.FilterSelection{}, fmt.Errorf("unexpected %q", args)
	}

	var tiers, countries []string
	var ageRange *models.AgeRange
	for i, loc := range locs {
		key := strings.ToLower(args[loc[2]:loc[3]])
		end := len(args)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		value := strings.TrimSpace(args[loc[1]:end])

		switch key {
		case "tier":
			tiers = append(tiers, splitValues(value)...)
		case "country":
			countries = append(countries, splitValues(value)...)
		case "age":
			r, err := parseAgeRange(value, options)
			if err != nil {
				return models.FilterSelection{}, err
			}
			ageRange = &r
		}
	}
	return models.NewFilterSelection(tiers, countries, ageRange), nil
}

// splitValues reads a comma separated list, dropping blanks.
func splitValues(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseAgeRange accepts "20-40", "20-" and "-40"; an open side takes the dataset bound.
// An inverted range is returned as is and matches no rows.
func parseAgeRange(value string, options models.DatasetOptions) (models.AgeRange, error) {
	low, high, found := strings.Cut(value, "-")
	if !found {
		return models.AgeRange{}, fmt.Errorf("age %q: expected min-max", value)
	}

	r := models.AgeRange{Min: options.AgeMin, Max: options.AgeMax}
	var err error
	if low = strings.TrimSpace(low); low != "" {
		if r.Min, err = strconv.Atoi(low); err != nil {
			return models.AgeRange{}, fmt.Errorf("age %q: %w", value, err)
		}
	}
	if high = strings.TrimSpace(high); high != "" {
		if r.Max, err = strconv.Atoi(high); err != nil {
			return models.AgeRange{}, fmt.Errorf("age %q: %w", value, err)
		}
	}
	return r, nil
}
