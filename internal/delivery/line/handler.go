// Package line is the LINE webhook delivery layer: it verifies and
// parses webhook events, classifies intent, drives the use cases and
// sends chunked replies.
package line

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
	"github.com/yourusername/line-shop-bot/internal/intent"
	"github.com/yourusername/line-shop-bot/internal/matcher"
	"github.com/yourusername/line-shop-bot/internal/usecase"
)

// LINE replies are chunked at this many characters and capped at five
// messages per reply token.
const (
	replyChunkSize     = 1400
	maxReplyMessages   = 5
	pendingOrderExpiry = 10 * time.Minute
)

// pendingOrder is a multi-match order waiting for the user to pick a
// candidate.
type pendingOrder struct {
	Candidates []entity.Product
	Qty        int
	CreatedAt  time.Time
}

// BotHandler handles LINE webhook events.
type BotHandler struct {
	api           *messaging_api.MessagingApiAPI
	channelSecret string

	catalogUseCase *usecase.CatalogUseCase
	queryUseCase   *usecase.QueryUseCase
	orderUseCase   *usecase.OrderUseCase

	orderMu       sync.RWMutex
	pendingOrders map[string]pendingOrder
}

// NewBotHandler creates the webhook handler.
func NewBotHandler(
	channelSecret string,
	channelToken string,
	catalogUseCase *usecase.CatalogUseCase,
	queryUseCase *usecase.QueryUseCase,
	orderUseCase *usecase.OrderUseCase,
) (*BotHandler, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging api client: %w", err)
	}

	return &BotHandler{
		api:            api,
		channelSecret:  channelSecret,
		catalogUseCase: catalogUseCase,
		queryUseCase:   queryUseCase,
		orderUseCase:   orderUseCase,
		pendingOrders:  make(map[string]pendingOrder),
	}, nil
}

// Callback is the webhook endpoint. ParseRequest verifies the channel
// signature before any event is touched.
func (h *BotHandler) Callback(w http.ResponseWriter, r *http.Request) {
	cb, err := webhook.ParseRequest(h.channelSecret, r)
	if err != nil {
		log.Printf("webhook parse failed: %v", err)
		if errors.Is(err, webhook.ErrInvalidSignature) {
			w.WriteHeader(http.StatusBadRequest)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	for _, event := range cb.Events {
		msgEvent, ok := event.(webhook.MessageEvent)
		if !ok {
			continue
		}
		textMsg, ok := msgEvent.Message.(webhook.TextMessageContent)
		if !ok {
			continue
		}

		h.handleText(r.Context(), msgEvent.ReplyToken, sourceUserID(msgEvent.Source), textMsg.Text)
	}

	w.WriteHeader(http.StatusOK)
}

func sourceUserID(src webhook.SourceInterface) string {
	switch s := src.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	}
	return ""
}

// handleText runs one inbound message through intent classification
// and the use cases.
func (h *BotHandler) handleText(ctx context.Context, replyToken, userID, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	// A pending multi-match order takes the next message as the pick.
	if pending, ok := h.popPendingOrder(userID); ok {
		if h.finishPendingOrder(ctx, replyToken, userID, pending, text) {
			return
		}
		// The message was not a pick; fall through and treat it as a
		// fresh query.
	}

	it := intent.Classify(text)

	snap, err := h.catalogUseCase.Snapshot(ctx)
	if err != nil {
		log.Printf("catalog fetch failed: %v", err)
		h.reply(replyToken, "Sorry, the catalog is unavailable right now. Please try again in a moment.")
		return
	}
	catalog := snap.Products

	switch it.Kind {
	case intent.KindOrder:
		h.handleOrder(ctx, replyToken, userID, catalog, it)
	case intent.KindCode:
		h.reply(replyToken, h.queryUseCase.ResolveCode(catalog, userID, it.Keyword))
	default:
		h.reply(replyToken, h.queryUseCase.ResolveBatch(catalog, userID, it.Keyword, it.WantsPrice, it.WantsStock))
	}
}

// handleOrder places an order, or parks it when the keyword is
// ambiguous.
func (h *BotHandler) handleOrder(ctx context.Context, replyToken, userID string, catalog []entity.Product, it intent.Intent) {
	if it.Qty <= 0 {
		h.reply(replyToken, "Please order with a positive quantity, e.g. \"order Calendar x 2\".")
		return
	}

	// Bare "order" falls back to the user's last matched product.
	if it.Keyword == "" {
		last, ok := h.queryUseCase.LastMatch(userID)
		if !ok {
			h.reply(replyToken, "Which product would you like to order? E.g. \"order Calendar x 2\".")
			return
		}
		h.placeOrder(ctx, replyToken, userID, last, it.Qty)
		return
	}

	outcome := h.queryUseCase.Resolve(catalog, it.Keyword)
	switch outcome.Kind {
	case matcher.SingleMatch:
		h.queryUseCase.RememberMatch(userID, outcome.Product)
		h.placeOrder(ctx, replyToken, userID, outcome.Product, it.Qty)
	case matcher.MultiMatch:
		h.savePendingOrder(userID, pendingOrder{
			Candidates: outcome.Candidates,
			Qty:        it.Qty,
			CreatedAt:  time.Now(),
		})
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("I found several matches for \"%s\":\n", it.Keyword))
		for i, c := range outcome.Candidates {
			if c.Code != "" {
				sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, c.Code, c.Name))
			} else {
				sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, c.Name))
			}
		}
		sb.WriteString("Reply with the code or the number to order.")
		h.reply(replyToken, sb.String())
	default:
		h.reply(replyToken, fmt.Sprintf("Sorry, I could not find \"%s\" in the catalog.", it.Keyword))
	}
}

// finishPendingOrder tries to read the message as a candidate pick.
// Returns false when it is not one, so the caller can treat the text
// as a new query.
func (h *BotHandler) finishPendingOrder(ctx context.Context, replyToken, userID string, pending pendingOrder, text string) bool {
	if time.Since(pending.CreatedAt) > pendingOrderExpiry {
		return false
	}

	pick := strings.TrimSpace(text)

	// Number pick (1-based list position).
	if n, err := strconv.Atoi(pick); err == nil {
		if n < 1 || n > len(pending.Candidates) {
			h.reply(replyToken, fmt.Sprintf("Please pick a number between 1 and %d.", len(pending.Candidates)))
			h.savePendingOrder(userID, pending)
			return true
		}
		h.placeOrder(ctx, replyToken, userID, pending.Candidates[n-1], pending.Qty)
		return true
	}

	// Code pick, case-folded.
	for _, c := range pending.Candidates {
		if c.Code != "" && strings.EqualFold(strings.TrimSpace(pick), c.Code) {
			h.placeOrder(ctx, replyToken, userID, c, pending.Qty)
			return true
		}
	}

	return false
}

func (h *BotHandler) placeOrder(ctx context.Context, replyToken, userID string, p entity.Product, qty int) {
	order, err := h.orderUseCase.Place(ctx, userID, h.displayName(userID), p, qty)
	if err != nil {
		log.Printf("order placement failed: %v", err)
		h.reply(replyToken, "Sorry, I could not record your order. Please try again shortly.")
		return
	}

	h.reply(replyToken, fmt.Sprintf(
		"Order received!\n%s x %d\nTotal: %.2f\nOrder ID: %s\nWe will confirm shortly.",
		order.ProductName, order.Qty, order.Total(), order.ID))
}

// displayName looks up the LINE profile name, falling back to the raw
// user id.
func (h *BotHandler) displayName(userID string) string {
	if userID == "" {
		return "unknown"
	}
	profile, err := h.api.GetProfile(userID)
	if err != nil || profile == nil || profile.DisplayName == "" {
		return userID
	}
	return profile.DisplayName
}

// reply sends text back on the reply token, chunked to the transport
// limit.
func (h *BotHandler) reply(replyToken, text string) {
	chunks := chunkText(text, replyChunkSize)
	if len(chunks) > maxReplyMessages {
		chunks = chunks[:maxReplyMessages]
	}

	messages := make([]messaging_api.MessageInterface, 0, len(chunks))
	for _, c := range chunks {
		messages = append(messages, messaging_api.TextMessage{Text: c})
	}

	_, err := h.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	})
	if err != nil {
		log.Printf("reply failed: %v", err)
	}
}

// chunkText splits text into pieces of at most limit characters,
// breaking on line boundaries where possible.
func chunkText(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = nil
			currentLen = 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		// A single overlong line is hard-split on rune boundaries.
		for utf8.RuneCountInString(line) > limit {
			runes := []rune(line)
			flush()
			chunks = append(chunks, string(runes[:limit]))
			line = string(runes[limit:])
		}

		lineLen := utf8.RuneCountInString(line)
		if currentLen > 0 && currentLen+1+lineLen > limit {
			flush()
		}
		current = append(current, line)
		currentLen += lineLen + 1
	}
	flush()

	return chunks
}

// Pending order session helpers.
func (h *BotHandler) savePendingOrder(userID string, p pendingOrder) {
	if userID == "" {
		return
	}
	h.orderMu.Lock()
	defer h.orderMu.Unlock()

	// Drop expired sessions so the map stays bounded.
	for id, pend := range h.pendingOrders {
		if time.Since(pend.CreatedAt) > pendingOrderExpiry {
			delete(h.pendingOrders, id)
		}
	}
	h.pendingOrders[userID] = p
}

func (h *BotHandler) popPendingOrder(userID string) (pendingOrder, bool) {
	h.orderMu.Lock()
	defer h.orderMu.Unlock()
	p, ok := h.pendingOrders[userID]
	if ok {
		delete(h.pendingOrders, userID)
	}
	return p, ok
}
