package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type serviceStub struct {
	Service
	sendErr error
}

func (s *serviceStub) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &Message{ID: 1, ChatID: req.ChatID, SenderID: req.SenderID, Text: req.Text}, nil
}

func TestSendMessageHandler(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "sent", wantStatus: http.StatusCreated},
		{name: "outsider", err: ErrNotParticipant, wantStatus: http.StatusForbidden},
		{name: "empty", err: ErrEmptyMessage, wantStatus: http.StatusBadRequest},
		{name: "no_chat", err: ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewHandler(&serviceStub{sendErr: tc.err}, zap.NewNop()).RegisterRoutes(r)

			rec := httptest.NewRecorder()
			body := strings.NewReader(`{"chat_id":1,"sender_id":2,"text":"hi"}`)
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/messages", body))
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
