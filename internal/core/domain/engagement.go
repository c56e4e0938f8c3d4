package domain

import "time"

type EnquiryStatus string

const (
	EnquiryUnread   EnquiryStatus = "unread"
	EnquiryRead     EnquiryStatus = "read"
	EnquiryArchived EnquiryStatus = "archived"
)

type Enquiry struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    EnquiryStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (e Enquiry) RecordID() string { return e.ID }

type Subscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s Subscriber) RecordID() string { return s.ID }

type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Body       string    `json:"body"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (a Article) RecordID() string { return a.ID }

type TrainingModule struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

func (m TrainingModule) RecordID() string { return m.ID }

// ProductStats is keyed by product id and upserted incrementally.
type ProductStats struct {
	ID           string    `json:"id"`
	Views        int       `json:"views"`
	Clicks       int       `json:"clicks"`
	LastViewedAt time.Time `json:"lastViewedAt"`
}

func (s ProductStats) RecordID() string { return s.ID }

// TrafficEvent is an append-mostly page-view log entry. Events land in
// the traffic collection and, when a broker is configured, on the
// traffic topic for downstream analytics.
type TrafficEvent struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"userAgent"`
	VisitorID string    `json:"visitorId"`
	ProductID string    `json:"productId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e TrafficEvent) RecordID() string { return e.ID }
