package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/giftlists/internal/service"
	"github.com/Kerhoff/giftlists/internal/telegram"
	"github.com/Kerhoff/giftlists/internal/view"
)

// currentLists returns the published lists, loading them first when the
// region has never been loaded. ok is false when the region is in error.
func currentLists(svc *service.Service) (view.Snapshot, bool) {
	snap := svc.Region.Snapshot()
	if snap.State == view.StateIdle {
		_ = svc.Load(context.Background())
		snap = svc.Region.Snapshot()
	}
	return snap, snap.State == view.StateReady
}

func send(bot telegram.Sender, chatID int64, text string) error {
	_, err := bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// ListsHandler handles the /lists command
type ListsHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

func NewListsHandler(svc *service.Service, logger *logrus.Logger) *ListsHandler {
	return &ListsHandler{svc: svc, logger: logger}
}

func (h *ListsHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	snap, ok := currentLists(h.svc)
	if snap.State == view.StateLoading {
		return send(bot, message.Chat.ID, "⏳ The lists are loading, try again in a moment.")
	}
	if !ok {
		return send(bot, message.Chat.ID, "❌ "+view.ErrorMessage)
	}

	var b strings.Builder
	if err := view.TextOverview(&b, snap.Lists); err != nil {
		return fmt.Errorf("failed to render lists: %w", err)
	}
	if err := send(bot, message.Chat.ID, b.String()); err != nil {
		return fmt.Errorf("failed to send lists: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"lists":   len(snap.Lists),
	}).Info("Sent lists overview")

	return nil
}

// ListHandler handles the /list <name> command
type ListHandler struct {
	svc      *service.Service
	renderer *view.Renderer
	logger   *logrus.Logger
}

func NewListHandler(svc *service.Service, renderer *view.Renderer, logger *logrus.Logger) *ListHandler {
	return &ListHandler{svc: svc, renderer: renderer, logger: logger}
}

func (h *ListHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		return send(bot, message.Chat.ID, "Usage: /list <name>")
	}
	name := strings.Join(args, " ")

	snap, ok := currentLists(h.svc)
	if snap.State == view.StateLoading {
		return send(bot, message.Chat.ID, "⏳ The lists are loading, try again in a moment.")
	}
	if !ok {
		return send(bot, message.Chat.ID, "❌ "+view.ErrorMessage)
	}

	list, found := view.FindList(snap.Lists, name)
	if !found {
		return send(bot, message.Chat.ID, fmt.Sprintf("No gift list for %q. Use /lists to see who has one.", name))
	}

	var b strings.Builder
	if err := h.renderer.TextList(&b, list); err != nil {
		return fmt.Errorf("failed to render list: %w", err)
	}
	if err := send(bot, message.Chat.ID, b.String()); err != nil {
		return fmt.Errorf("failed to send list: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id":  message.Chat.ID,
		"owner":    list.Owner,
		"presents": len(list.Presents),
	}).Info("Sent gift list")

	return nil
}

// ReloadHandler handles the /reload command
type ReloadHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

func NewReloadHandler(svc *service.Service, logger *logrus.Logger) *ReloadHandler {
	return &ReloadHandler{svc: svc, logger: logger}
}

func (h *ReloadHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if err := h.svc.Load(context.Background()); err != nil {
		h.logger.WithFields(logrus.Fields{
			"chat_id": message.Chat.ID,
			"outcome": service.Classify(err),
		}).Warn("Reload requested from chat failed")
		return send(bot, message.Chat.ID, "❌ "+view.ErrorMessage)
	}

	n := len(h.svc.Region.Snapshot().Lists)
	return send(bot, message.Chat.ID, fmt.Sprintf("✅ Loaded %d gift lists.", n))
}
