// Package chat answers visitor questions from a fixed keyword table.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adspirelabs/punotes/core"
)

var (
	// errors
	ErrEmptyMessage = errors.New("message cannot be blank")
	ErrNoSuchOption = errors.New("no such chat option")
)

// Message is one line of the conversation.
type Message struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	IsBot       bool      `json:"isBot"`
	Timestamp   time.Time `json:"timestamp"`
	Suggestions []Option  `json:"suggestions,omitempty"`
}

// Exchange is the visitor message and the bot reply to it.
type Exchange struct {
	Question Message `json:"question"`
	Answer   Message `json:"answer"`
}

type Responder struct {
	options []Option
	delay   time.Duration
	nowFunc func() time.Time
}

// NewResponder returns a Responder answering from options after delay. DefaultOptions are used when options is empty.
func NewResponder(delay time.Duration, options ...Option) *Responder {
	if len(options) == 0 {
		options = DefaultOptions
	}
	return &Responder{options: options, delay: delay, nowFunc: time.Now}
}

func (r *Responder) Options() []Option {
	return append([]Option(nil), r.options...)
}

// Welcome is the first bot message of every conversation.
func (r *Responder) Welcome() Message {
	return r.botMessage(WelcomeText)
}

// Match returns the first option with a keyword contained in the lowercased input.
func (r *Responder) Match(input string) (Option, bool) {
	lower := strings.ToLower(input)
	for _, opt := range r.options {
		for _, kw := range opt.Keywords {
			if strings.Contains(lower, kw) {
				return opt, true
			}
		}
	}
	return Option{}, false
}

// Reply answers free text. Blank input is rejected.
func (r *Responder) Reply(ctx context.Context, input string) (Exchange, error) {
	if strings.TrimSpace(input) == "" {
		return Exchange{}, core.NewValidationError(nil, core.FieldError{Field: "message", Error: ErrEmptyMessage.Error()})
	}
	question := r.userMessage(input)

	text := FallbackText
	if opt, ok := r.Match(input); ok {
		text = answer(opt)
	}
	return r.respond(ctx, question, text)
}

// Choose answers a click on the option at index.
func (r *Responder) Choose(ctx context.Context, index int) (Exchange, error) {
	if index < 0 || index >= len(r.options) {
		return Exchange{}, ErrNoSuchOption
	}
	opt := r.options[index]
	return r.respond(ctx, r.userMessage(opt.Text), answer(opt))
}

func answer(opt Option) string {
	if opt.IsContact() {
		return opt.Response + contactSuffix
	}
	return opt.Response
}

func (r *Responder) respond(ctx context.Context, question Message, text string) (Exchange, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Exchange{}, ctx.Err()
		case <-timer.C:
		}
	}
	return Exchange{Question: question, Answer: r.botMessage(text)}, nil
}

func (r *Responder) userMessage(text string) Message {
	return Message{ID: uuid.NewString(), Text: text, Timestamp: r.nowFunc().UTC()}
}

func (r *Responder) botMessage(text string) Message {
	msg := Message{ID: uuid.NewString(), Text: text, IsBot: true, Timestamp: r.nowFunc().UTC()}
	if strings.Contains(text, suggestionTrigger) {
		for _, opt := range r.options {
			if !opt.IsContact() {
				msg.Suggestions = append(msg.Suggestions, opt)
			}
		}
	}
	return msg
}
