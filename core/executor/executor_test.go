package executor_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/actually-app/actually/core/executor"
	"github.com/actually-app/actually/core/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CollectionFor", func() {
	It("routes job-sounding titles to Jobs", func() {
		Expect(executor.CollectionFor("Senior Engineer job at Acme")).To(Equal("Jobs"))
		Expect(executor.CollectionFor("Grow your career")).To(Equal("Jobs"))
		Expect(executor.CollectionFor("Apply now")).To(Equal("Jobs"))
	})

	It("routes everything else to Reading List", func() {
		Expect(executor.CollectionFor("A nice essay")).To(Equal("Reading List"))
		Expect(executor.CollectionFor("")).To(Equal("Reading List"))
	})
})

var _ = Describe("Executor", func() {
	var (
		userID      uuid.UUID
		fetcher     *fakeFetcher
		savedItems  *fakeSavedItems
		collections *fakeCollections
		reminders   *fakeReminders
		actionLog   *fakeLog
		tokens      *fakeTokens
		calendar    *fakeCalendar
		mail        *fakeMail
		exec        *executor.Executor
	)

	BeforeEach(func() {
		userID = uuid.New()
		fetcher = &fakeFetcher{metadata: map[string]*types.LinkMetadata{}, content: map[string]*types.PageContent{}}
		savedItems = &fakeSavedItems{}
		collections = &fakeCollections{ids: map[string]uuid.UUID{
			"Jobs":         uuid.New(),
			"Reading List": uuid.New(),
		}}
		reminders = &fakeReminders{}
		actionLog = &fakeLog{}
		tokens = &fakeTokens{token: "tok"}
		calendar = &fakeCalendar{eventID: "evt_1"}
		mail = &fakeMail{}
		exec = &executor.Executor{
			Fetcher:     fetcher,
			SavedItems:  savedItems,
			Collections: collections,
			Reminders:   reminders,
			Log:         actionLog,
			Tokens:      tokens,
			Calendar:    calendar,
			Mail:        mail,
		}
	})

	Describe("save_link", func() {
		It("saves with fetched metadata into the heuristic collection", func() {
			fetcher.metadata["https://example.com/post"] = &types.LinkMetadata{
				URL:         "https://example.com/post",
				Title:       "A nice essay",
				Description: "desc",
				Image:       "https://cdn.example.com/i.png",
			}

			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionSaveLink, URL: "https://example.com/post"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(Equal([]string{"Saved link to Reading List."}))

			Expect(savedItems.inserted).To(HaveLen(1))
			item := savedItems.inserted[0]
			Expect(item.UserID).To(Equal(userID))
			Expect(item.Title).To(Equal("A nice essay"))
			Expect(item.Description).To(Equal("desc"))
			Expect(item.ImageURL).To(Equal("https://cdn.example.com/i.png"))
			Expect(item.CollectionID).ToNot(BeNil())
			Expect(*item.CollectionID).To(Equal(collections.ids["Reading List"]))

			Expect(actionLog.entries).To(HaveLen(1))
			Expect(actionLog.entries[0].ActionType).To(Equal("save_link"))
			Expect(actionLog.entries[0].TimeSavedSeconds).To(Equal(30))
		})

		It("routes job postings to the Jobs collection", func() {
			fetcher.metadata["https://jobs.example.com/1"] = &types.LinkMetadata{
				URL:   "https://jobs.example.com/1",
				Title: "Backend Engineer job",
			}

			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionSaveLink, URL: "https://jobs.example.com/1"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(Equal([]string{"Saved link to Jobs."}))
			Expect(*savedItems.inserted[0].CollectionID).To(Equal(collections.ids["Jobs"]))
		})

		It("honors an explicit collection over the heuristic", func() {
			collections.ids["Tools"] = uuid.New()
			fetcher.metadata["https://example.com/tool"] = &types.LinkMetadata{
				URL:   "https://example.com/tool",
				Title: "Great job board tool",
			}

			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionSaveLink, URL: "https://example.com/tool", Collection: "Tools"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(Equal([]string{"Saved link to Tools."}))
			Expect(*savedItems.inserted[0].CollectionID).To(Equal(collections.ids["Tools"]))
		})

		It("creates default collections when the target is missing", func() {
			readingListID := uuid.New()
			collections.ids = map[string]uuid.UUID{}
			collections.ensureProvides = map[string]uuid.UUID{"Reading List": readingListID}

			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionSaveLink, URL: "https://example.com"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(collections.ensured).To(Equal(1))
			Expect(*savedItems.inserted[0].CollectionID).To(Equal(readingListID))
		})

		It("saves without a collection when none can be resolved", func() {
			collections.ids = map[string]uuid.UUID{}
			collections.ensureProvides = map[string]uuid.UUID{}

			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionSaveLink, URL: "https://example.com"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(savedItems.inserted[0].CollectionID).To(BeNil())
		})

		It("falls back to the URL as title when the page is unreachable", func() {
			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionSaveLink, URL: "https://dead.example.com"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(savedItems.inserted[0].Title).To(Equal("https://dead.example.com"))
		})

		It("drops a save_link without a URL silently", func() {
			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionSaveLink, Title: "no url"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(BeEmpty())
			Expect(savedItems.inserted).To(BeEmpty())
			Expect(actionLog.entries).To(BeEmpty())
		})
	})

	Describe("create_reminder", func() {
		It("queues a pending reminder and confirms with a formatted time", func() {
			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionCreateReminder, Title: "Call mom", RemindAt: "2026-09-01T10:00:00Z"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0]).To(HavePrefix("Reminder set for "))

			Expect(reminders.inserted).To(HaveLen(1))
			Expect(reminders.inserted[0].Content).To(Equal("Call mom"))
			Expect(reminders.inserted[0].Status).To(Equal("pending"))
			Expect(reminders.inserted[0].RemindAt.UTC()).To(Equal(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)))

			Expect(actionLog.entries).To(HaveLen(1))
			Expect(actionLog.entries[0].ActionType).To(Equal("reminder"))
			Expect(actionLog.entries[0].TimeSavedSeconds).To(Equal(60))
		})

		It("accepts a date-only timestamp", func() {
			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionCreateReminder, Note: "renew passport", RemindAt: "2026-10-15"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(reminders.inserted[0].Content).To(Equal("renew passport"))
		})

		It("defaults the content when title and note are empty", func() {
			_, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionCreateReminder, RemindAt: "2026-09-01T10:00:00Z"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(reminders.inserted[0].Content).To(Equal("Reminder"))
		})

		It("drops a reminder with an unparseable time silently", func() {
			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionCreateReminder, Title: "x", RemindAt: "next tuesday"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(BeEmpty())
			Expect(reminders.inserted).To(BeEmpty())
			Expect(actionLog.entries).To(BeEmpty())
		})
	})

	Describe("create_calendar_event", func() {
		It("creates an event when Google is connected", func() {
			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionCalendarEvent, Title: "Standup", StartAt: "2026-09-01T09:00:00Z", EndAt: "2026-09-01T09:15:00Z", Attendees: []string{"a@example.com"}},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0]).To(HavePrefix("Calendar event added for "))

			Expect(calendar.events).To(HaveLen(1))
			Expect(calendar.events[0].Title).To(Equal("Standup"))
			Expect(calendar.events[0].EndAt).ToNot(BeNil())
			Expect(calendar.events[0].Attendees).To(Equal([]string{"a@example.com"}))
			Expect(reminders.inserted).To(BeEmpty())

			Expect(actionLog.entries).To(HaveLen(1))
			Expect(actionLog.entries[0].ActionType).To(Equal("calendar"))
			Expect(actionLog.entries[0].TimeSavedSeconds).To(Equal(120))
			Expect(actionLog.entries[0].Metadata).To(HaveKeyWithValue("event_id", "evt_1"))
		})

		It("queues a reminder instead when Google is not connected", func() {
			tokens.token = ""

			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionCalendarEvent, Title: "Dentist", StartAt: "2026-09-02T14:00:00Z"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(Equal([]string{"Google Calendar not connected yet. I queued a reminder instead."}))

			Expect(calendar.events).To(BeEmpty())
			Expect(reminders.inserted).To(HaveLen(1))
			Expect(reminders.inserted[0].Content).To(Equal("Dentist"))
			Expect(actionLog.entries[0].TimeSavedSeconds).To(Equal(120))
		})

		It("drops an event with an unparseable start silently", func() {
			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionCalendarEvent, Title: "x", StartAt: "whenever"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(BeEmpty())
			Expect(calendar.events).To(BeEmpty())
			Expect(reminders.inserted).To(BeEmpty())
		})

		It("aborts the batch on a calendar API error", func() {
			calendar.err = fmt.Errorf("calendar down")

			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionCalendarEvent, Title: "x", StartAt: "2026-09-01T09:00:00Z"},
				{Type: types.ActionCreateReminder, Title: "never runs", RemindAt: "2026-09-01T10:00:00Z"},
			})
			Expect(err).To(HaveOccurred())
			Expect(results).To(BeEmpty())
			Expect(reminders.inserted).To(BeEmpty())
		})
	})

	Describe("send_email", func() {
		It("sends through the mail client when connected", func() {
			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionSendEmail, To: "a@example.com", Subject: "Hello", Body: "Hi there"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(Equal([]string{"Email sent to a@example.com."}))

			Expect(mail.sent).To(HaveLen(1))
			Expect(mail.sent[0].Subject).To(Equal("Hello"))
			Expect(actionLog.entries[0].ActionType).To(Equal("email"))
			Expect(actionLog.entries[0].TimeSavedSeconds).To(Equal(300))
		})

		It("reports when Gmail is not connected without sending", func() {
			tokens.token = ""

			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionSendEmail, To: "a@example.com", Subject: "Hello", Body: "Hi"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(Equal([]string{"Gmail not connected yet. Connect Google to send emails."}))

			Expect(mail.sent).To(BeEmpty())
			Expect(actionLog.entries).To(HaveLen(1))
			Expect(actionLog.entries[0].TimeSavedSeconds).To(Equal(0))
		})

		It("drops an email with missing fields silently", func() {
			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionSendEmail, To: "a@example.com", Subject: "no body"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(BeEmpty())
			Expect(mail.sent).To(BeEmpty())
		})

		It("aborts the batch on a mail API error", func() {
			mail.err = fmt.Errorf("gmail down")

			results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
				{Type: types.ActionSendEmail, To: "a@example.com", Subject: "s", Body: "b"},
				{Type: types.ActionCreateReminder, Title: "never runs", RemindAt: "2026-09-01T10:00:00Z"},
			})
			Expect(err).To(HaveOccurred())
			Expect(results).To(BeEmpty())
			Expect(reminders.inserted).To(BeEmpty())
		})
	})

	It("ignores unknown action types and runs the rest", func() {
		results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
			{Type: "teleport"},
			{Type: types.ActionCreateReminder, Title: "still runs", RemindAt: "2026-09-01T10:00:00Z"},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(results).To(HaveLen(1))
		Expect(reminders.inserted).To(HaveLen(1))
	})

	It("keeps earlier confirmations when a later action fails", func() {
		mail.err = fmt.Errorf("gmail down")

		results, err := exec.Execute(context.Background(), userID, []types.ActionInput{
			{Type: types.ActionCreateReminder, Title: "first", RemindAt: "2026-09-01T10:00:00Z"},
			{Type: types.ActionSendEmail, To: "a@example.com", Subject: "s", Body: "b"},
		})
		Expect(err).To(HaveOccurred())
		Expect(results).To(HaveLen(1))
		Expect(results[0]).To(HavePrefix("Reminder set for "))
	})
})
