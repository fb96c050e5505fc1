package google_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/actually-app/actually/core/types"
	"github.com/actually-app/actually/integrations/google"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CreateEvent", func() {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	It("posts the event and returns its id", func() {
		var gotAuth string
		var payload map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &payload)
			w.Write([]byte(`{"id":"evt_123"}`))
		}))
		defer server.Close()

		end := start.Add(30 * time.Minute)
		client := google.NewClientWithEndpoints(server.URL, server.URL)
		id, err := client.CreateEvent(context.Background(), "tok", types.CalendarEvent{
			Title:     "Standup",
			StartAt:   start,
			EndAt:     &end,
			Location:  "Room 1",
			Attendees: []string{"a@example.com"},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(id).To(Equal("evt_123"))

		Expect(gotAuth).To(Equal("Bearer tok"))
		Expect(payload["summary"]).To(Equal("Standup"))
		Expect(payload["location"]).To(Equal("Room 1"))
		Expect(payload["start"]).To(HaveKeyWithValue("dateTime", "2026-09-01T09:00:00Z"))
		Expect(payload["end"]).To(HaveKeyWithValue("dateTime", "2026-09-01T09:30:00Z"))
		Expect(payload["attendees"]).To(HaveLen(1))
	})

	It("ends the event at its start when no end is given", func() {
		var payload map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &payload)
			w.Write([]byte(`{"id":"evt_1"}`))
		}))
		defer server.Close()

		client := google.NewClientWithEndpoints(server.URL, server.URL)
		_, err := client.CreateEvent(context.Background(), "tok", types.CalendarEvent{Title: "x", StartAt: start})
		Expect(err).ToNot(HaveOccurred())
		Expect(payload["end"]).To(Equal(payload["start"]))
	})

	It("surfaces a non-2xx response as an error", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("expired token"))
		}))
		defer server.Close()

		client := google.NewClientWithEndpoints(server.URL, server.URL)
		_, err := client.CreateEvent(context.Background(), "tok", types.CalendarEvent{Title: "x", StartAt: start})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("upstream error 401"))
	})
})

var _ = Describe("Send", func() {
	It("posts a base64url-encoded RFC 2822 message", func() {
		var gotAuth string
		var payload map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &payload)
			w.Write([]byte(`{"id":"msg_1"}`))
		}))
		defer server.Close()

		client := google.NewClientWithEndpoints(server.URL, server.URL)
		err := client.Send(context.Background(), "tok", types.Email{
			To:      "a@example.com",
			Subject: "Hello",
			Body:    "Hi there",
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(gotAuth).To(Equal("Bearer tok"))

		decoded, err := base64.RawURLEncoding.DecodeString(payload["raw"])
		Expect(err).ToNot(HaveOccurred())
		Expect(string(decoded)).To(ContainSubstring("To: a@example.com"))
		Expect(string(decoded)).To(ContainSubstring("Subject: Hello"))
		Expect(string(decoded)).To(ContainSubstring("\r\n\r\nHi there"))
	})

	It("surfaces a non-2xx response as an error", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("no scope"))
		}))
		defer server.Close()

		client := google.NewClientWithEndpoints(server.URL, server.URL)
		err := client.Send(context.Background(), "tok", types.Email{To: "a@b.c", Subject: "s", Body: "b"})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("upstream error 403"))
	})
})
