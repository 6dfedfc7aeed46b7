// File: internal/handlers/chat_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shayanh/go-chatbox/internal/services"
)

type ChatHandler struct {
	ChatService *services.ChatService
}

func NewChatHandler(cs *services.ChatService) (*ChatHandler, error) {
	if cs == nil {
		return nil, errors.New("chat service is required")
	}
	return &ChatHandler{ChatService: cs}, nil
}

// Home resolves to the most-recently-created chat, or to a fresh chat when
// none exist.
func (h *ChatHandler) Home(w http.ResponseWriter, r *http.Request) {
	latest, err := h.ChatService.LatestChat(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrChatNotFound) {
			http.Redirect(w, r, "/new_chat", http.StatusFound)
			return
		}
		renderErrorPage(w, http.StatusInternalServerError, "Storage Error", "Could not load chats.")
		return
	}

	http.Redirect(w, r, chatURL(latest.ID), http.StatusFound)
}

// ViewChat renders the chat page: the sidebar chat list plus the referenced
// chat's history. An unknown id falls back to Home.
func (h *ChatHandler) ViewChat(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathChatID(r)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	exists, err := h.ChatService.ChatExists(r.Context(), chatID)
	if err != nil {
		renderErrorPage(w, http.StatusInternalServerError, "Storage Error", "Could not load the chat.")
		return
	}
	if !exists {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	chats, err := h.ChatService.ListChats(r.Context())
	if err != nil {
		renderErrorPage(w, http.StatusInternalServerError, "Storage Error", "Could not load chats.")
		return
	}

	messages, err := h.ChatService.ChatMessages(r.Context(), chatID)
	if err != nil {
		renderErrorPage(w, http.StatusInternalServerError, "Storage Error", "Could not load messages.")
		return
	}

	renderTemplate(w, "chat.html", map[string]interface{}{
		"Chats":         chats,
		"CurrentChatID": chatID,
		"Messages":      buildMessageViews(messages),
	})
}

// NewChat creates a chat seeded with the assistant greeting and resolves to
// its view.
func (h *ChatHandler) NewChat(w http.ResponseWriter, r *http.Request) {
	newChat, err := h.ChatService.StartChat(r.Context())
	if err != nil {
		renderErrorPage(w, http.StatusInternalServerError, "Storage Error", "Could not create a chat.")
		return
	}

	http.Redirect(w, r, chatURL(newChat.ID), http.StatusFound)
}

// SendMessage appends the submitted turn and the generated reply, then
// resolves back to the chat view. Blank input is a no-op redirect.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathChatID(r)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, chatURL(chatID), http.StatusSeeOther)
		return
	}

	err = h.ChatService.SendMessage(r.Context(), chatID, r.PostFormValue("message"))
	if err != nil {
		if errors.Is(err, services.ErrChatNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderErrorPage(w, http.StatusInternalServerError, "Storage Error", "Could not store the message.")
		return
	}

	http.Redirect(w, r, chatURL(chatID), http.StatusSeeOther)
}

// DeleteChat removes the chat and resolves to the latest remaining chat, or
// to a fresh one when none remain.
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathChatID(r)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.ChatService.DeleteChat(r.Context(), chatID); err != nil {
		renderErrorPage(w, http.StatusInternalServerError, "Storage Error", "Could not delete the chat.")
		return
	}

	latest, err := h.ChatService.LatestChat(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrChatNotFound) {
			http.Redirect(w, r, "/new_chat", http.StatusSeeOther)
			return
		}
		renderErrorPage(w, http.StatusInternalServerError, "Storage Error", "Could not load chats.")
		return
	}

	http.Redirect(w, r, chatURL(latest.ID), http.StatusSeeOther)
}

func pathChatID(r *http.Request) (uint, error) {
	vars := mux.Vars(r)
	chatID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil || chatID == 0 {
		return 0, errors.New("invalid chat ID")
	}
	return uint(chatID), nil
}

func chatURL(chatID uint) string {
	return fmt.Sprintf("/chat/%d", chatID)
}
